package level

import (
	"image/color"
	"strconv"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/mikkoJakonen/lilja-game/common"
	"github.com/mikkoJakonen/lilja-game/levels"
)

// Map wraps decoded level data with tile queries and flat-color rendering.
// Solidity comes from the physics layers only.
type Map struct {
	data *levels.Data

	tileImgs []*ebiten.Image
}

func NewMap(data *levels.Data) *Map {
	return &Map{data: data}
}

func (m *Map) Width() int  { return m.data.Width }
func (m *Map) Height() int { return m.data.Height }

// PixelWidth is the world width in pixels.
func (m *Map) PixelWidth() float64 { return float64(m.data.Width * common.TileSize) }

func (m *Map) PixelHeight() float64 { return float64(m.data.Height * common.TileSize) }

// SolidAt reports whether the tile containing the world point is solid.
func (m *Map) SolidAt(worldX, worldY float64) bool {
	tx := int(worldX) / common.TileSize
	ty := int(worldY) / common.TileSize
	if worldX < 0 || worldY < 0 || tx >= m.data.Width || ty >= m.data.Height {
		return false
	}
	idx := ty*m.data.Width + tx
	for li, layer := range m.data.Layers {
		if !m.data.LayerMeta[li].Physics {
			continue
		}
		if layer[idx] != 0 {
			return true
		}
	}
	return false
}

// SolidInRect reports whether any solid tile overlaps the rect. It samples
// every tile the rect touches, so it stays exact for rects larger than a
// tile.
func (m *Map) SolidInRect(r common.Rect) bool {
	x0 := int(r.X) / common.TileSize
	y0 := int(r.Y) / common.TileSize
	x1 := int(r.X+r.Width-1) / common.TileSize
	y1 := int(r.Y+r.Height-1) / common.TileSize
	for ty := y0; ty <= y1; ty++ {
		for tx := x0; tx <= x1; tx++ {
			if m.SolidAt(float64(tx*common.TileSize)+1, float64(ty*common.TileSize)+1) {
				return true
			}
		}
	}
	return false
}

// Draw renders every layer as flat-colored tiles.
func (m *Map) Draw(screen *ebiten.Image, camX, camY float64) {
	if m.tileImgs == nil {
		m.tileImgs = make([]*ebiten.Image, len(m.data.Layers))
		for li := range m.data.Layers {
			img := ebiten.NewImage(common.TileSize, common.TileSize)
			img.Fill(parseHexColor(m.data.LayerMeta[li].Color))
			m.tileImgs[li] = img
		}
	}

	for li, layer := range m.data.Layers {
		for ty := 0; ty < m.data.Height; ty++ {
			for tx := 0; tx < m.data.Width; tx++ {
				if layer[ty*m.data.Width+tx] == 0 {
					continue
				}
				op := &ebiten.DrawImageOptions{}
				op.GeoM.Translate(float64(tx*common.TileSize)-camX, float64(ty*common.TileSize)-camY)
				screen.DrawImage(m.tileImgs[li], op)
			}
		}
	}
}

func parseHexColor(s string) color.RGBA {
	if len(s) == 7 && s[0] == '#' {
		r, errR := strconv.ParseUint(s[1:3], 16, 8)
		g, errG := strconv.ParseUint(s[3:5], 16, 8)
		b, errB := strconv.ParseUint(s[5:7], 16, 8)
		if errR == nil && errG == nil && errB == nil {
			return color.RGBA{R: uint8(r), G: uint8(g), B: uint8(b), A: 0xff}
		}
	}
	return color.RGBA{R: 0x80, G: 0x80, B: 0x80, A: 0xff}
}
