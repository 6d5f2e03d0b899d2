package main

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/mikkoJakonen/lilja-game/common"
	"github.com/mikkoJakonen/lilja-game/level"
	"golang.org/x/image/font/basicfont"
)

// HUD draws the screen-space overlay: health pips, the mission title flash
// and the intro dialogue box.
type HUD struct {
	lvl  *level.Level
	face ebtext.Face
}

func NewHUD(lvl *level.Level) *HUD {
	return &HUD{
		lvl:  lvl,
		face: ebtext.NewGoXFace(basicfont.Face7x13),
	}
}

func (h *HUD) Draw(screen *ebiten.Image) {
	h.drawHealth(screen)
	h.drawMissionFlash(screen)
	h.drawDialogue(screen)
}

func (h *HUD) drawHealth(screen *ebiten.Image) {
	// Health appears once the mission goes active, not during the intro.
	if h.lvl.Sequencer().State() != level.SequencerActive {
		return
	}
	p := h.lvl.Player()
	if p == nil {
		return
	}
	const pipW, pipH, gap = 14, 10, 4
	for i := 0; i < p.MaxHealth(); i++ {
		c := color.RGBA{R: 0x40, G: 0x40, B: 0x40, A: 0xff}
		if i < p.Health() {
			c = color.RGBA{R: 0xd8, G: 0x38, B: 0x48, A: 0xff}
		}
		x := float32(12 + i*(pipW+gap))
		vector.DrawFilledRect(screen, x, 12, pipW, pipH, c, false)
	}
}

func (h *HUD) drawMissionFlash(screen *ebiten.Image) {
	if !h.lvl.Sequencer().FlashOn() {
		return
	}
	msg := "MISSION START"
	w, _ := ebtext.Measure(msg, h.face, 0)
	op := &ebtext.DrawOptions{}
	op.GeoM.Scale(3, 3)
	op.GeoM.Translate(common.BaseWidth/2-w*3/2, common.BaseHeight/3)
	op.ColorScale.ScaleWithColor(color.White)
	ebtext.Draw(screen, msg, h.face, op)
}

func (h *HUD) drawDialogue(screen *ebiten.Image) {
	line, ok := h.lvl.Dialogue().Current()
	if !ok {
		return
	}
	const boxH = 110
	boxY := float32(common.BaseHeight - boxH - 16)
	vector.DrawFilledRect(screen, 16, boxY, common.BaseWidth-32, boxH, color.RGBA{A: 200}, false)

	speaker := &ebtext.DrawOptions{}
	speaker.GeoM.Scale(2, 2)
	speaker.GeoM.Translate(32, float64(boxY)+12)
	speaker.ColorScale.ScaleWithColor(color.RGBA{R: 0xf0, G: 0xc0, B: 0x40, A: 0xff})
	ebtext.Draw(screen, line.Speaker, h.face, speaker)

	body := &ebtext.DrawOptions{}
	body.GeoM.Scale(2, 2)
	body.GeoM.Translate(32, float64(boxY)+46)
	body.ColorScale.ScaleWithColor(color.White)
	ebtext.Draw(screen, line.Text, h.face, body)
}
