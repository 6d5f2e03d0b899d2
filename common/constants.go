package common

const (
	// TileSize is the side length of one map tile in world pixels.
	TileSize = 32

	// BaseWidth and BaseHeight are the logical render resolution.
	BaseWidth  = 1280
	BaseHeight = 720

	// Gravity is the downward acceleration applied by the physics space,
	// in world pixels per second squared.
	Gravity = 1500.0
)
