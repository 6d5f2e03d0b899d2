package main

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/mikkoJakonen/lilja-game/common"
)

// Camera follows a world point with smoothing and clamps the view to the
// level bounds.
type Camera struct {
	PosX float64
	PosY float64

	screenW int
	screenH int
	off     *ebiten.Image

	// smoothing factor (0..1). higher -> faster follow
	smooth float64
	worldW float64
	worldH float64
}

func NewCamera(screenW, screenH int) *Camera {
	return &Camera{
		screenW: screenW,
		screenH: screenH,
		smooth:  0.15,
		PosX:    float64(screenW) / 2.0,
		PosY:    float64(screenH) / 2.0,
	}
}

// SetWorldBounds sets the world pixel dimensions for clamping.
func (c *Camera) SetWorldBounds(w, h float64) {
	c.worldW = w
	c.worldH = h
}

// ViewTopLeft returns the world-space top-left of the current view.
func (c *Camera) ViewTopLeft() (float64, float64) {
	return c.PosX - float64(c.screenW)/2.0, c.PosY - float64(c.screenH)/2.0
}

// Update moves the camera toward the target world coordinate. Call from the
// fixed-rate update loop to get consistent smoothing.
func (c *Camera) Update(targetX, targetY float64) {
	if c.smooth <= 0 {
		c.PosX = targetX
		c.PosY = targetY
	} else {
		c.PosX += (targetX - c.PosX) * c.smooth
		c.PosY += (targetY - c.PosY) * c.smooth
	}

	// snap to integer pixels to keep texels aligned
	c.PosX = math.Round(c.PosX)
	c.PosY = math.Round(c.PosY)
	c.clamp()
}

// SnapTo places the camera immediately, for level starts.
func (c *Camera) SnapTo(x, y float64) {
	c.PosX = math.Round(x)
	c.PosY = math.Round(y)
	c.clamp()
}

func (c *Camera) clamp() {
	halfW := float64(c.screenW) / 2.0
	halfH := float64(c.screenH) / 2.0
	if c.worldW > 0 {
		if c.worldW < float64(c.screenW) {
			c.PosX = c.worldW / 2.0
		} else {
			c.PosX = common.Clamp(c.PosX, halfW, c.worldW-halfW)
		}
	}
	if c.worldH > 0 {
		if c.worldH < float64(c.screenH) {
			c.PosY = c.worldH / 2.0
		} else {
			c.PosY = common.Clamp(c.PosY, halfH, c.worldH-halfH)
		}
	}
}

// Render lets the caller draw the world into an offscreen buffer, then blits
// it to the screen.
func (c *Camera) Render(screen *ebiten.Image, drawWorld func(world *ebiten.Image)) {
	if c.off == nil {
		c.off = ebiten.NewImage(c.screenW, c.screenH)
	}
	c.off.Clear()
	if drawWorld != nil {
		drawWorld(c.off)
	}
	op := &ebiten.DrawImageOptions{}
	op.Filter = ebiten.FilterNearest
	screen.DrawImage(c.off, op)
}
