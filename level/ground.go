package level

import (
	"github.com/mikkoJakonen/lilja-game/combat"
	"github.com/mikkoJakonen/lilja-game/common"
)

// Ground is the terrain actor for a level. It is registered like any other
// actor so enemies can hold a ground reference by id, and it gives terrain a
// combat target for bullet sweeps.
type Ground struct {
	tiles *Map
}

func NewGround(tiles *Map) *Ground {
	return &Ground{tiles: tiles}
}

func (g *Ground) Kind() combat.Kind { return combat.KindTerrain }

func (g *Ground) Bounds() common.Rect {
	return common.Rect{Width: g.tiles.PixelWidth(), Height: g.tiles.PixelHeight()}
}

func (g *Ground) CombatTarget() combat.Target {
	return combat.Target{Kind: combat.KindTerrain}
}

// Solid reports whether any solid tile overlaps the rect.
func (g *Ground) Solid(r common.Rect) bool { return g.tiles.SolidInRect(r) }
