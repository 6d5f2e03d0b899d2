package level

import (
	"testing"

	"github.com/mikkoJakonen/lilja-game/actor"
	"github.com/mikkoJakonen/lilja-game/audio"
	"github.com/mikkoJakonen/lilja-game/dialogue"
	"github.com/mikkoJakonen/lilja-game/levels"
	"github.com/mikkoJakonen/lilja-game/prefabs"
)

// newCombatLevel builds a small open arena with no data-driven enemies, so
// each test can place its own actors precisely.
func newCombatLevel(t *testing.T, playerSpec prefabs.PlayerSpec) (*Level, *actor.Player) {
	t.Helper()

	const w, h = 10, 10
	solid := make([]int, w*h)
	for x := 0; x < w; x++ {
		solid[(h-1)*w+x] = 1
	}
	data := &levels.Data{
		Name:      "mission1",
		Width:     w,
		Height:    h,
		Layers:    [][]int{solid},
		LayerMeta: []levels.LayerMeta{{Physics: true}},
		SpawnX:    32,
		SpawnY:    32,
	}

	dlgSpec, err := prefabs.LoadDialogueSpec()
	if err != nil {
		t.Fatalf("load dialogue spec: %v", err)
	}
	lvl, err := newLevelFromData(data, dialogue.NewRunner(dlgSpec), audio.NewService(true))
	if err != nil {
		t.Fatalf("new level: %v", err)
	}
	p := actor.NewPlayer(0, 0, playerSpec, nil)
	if err := lvl.Populate(p); err != nil {
		t.Fatalf("populate: %v", err)
	}
	return lvl, p
}

func combatPlayerSpec(health int) prefabs.PlayerSpec {
	return prefabs.PlayerSpec{
		MoveSpeed:   100,
		Width:       24,
		Height:      30,
		Health:      health,
		GraceFrames: 45,
		Bullet: prefabs.BulletSpec{
			Damage: 3, Speed: 360, Width: 8, Height: 8,
			LifeFrames: 90, DecayFrames: 12,
		},
	}
}

func addEnemy(lvl *Level, x, y float64, health, damage int) *actor.Enemy {
	e := actor.NewEnemy(x, y, prefabs.EnemySpec{
		Name: "test", Width: 26, Height: 28, Health: health, Damage: damage,
	}, lvl.registry)
	id := lvl.registry.Register(e)
	e.SetChaseTarget(lvl.playerID)
	e.SetGround(lvl.groundID)
	lvl.enemies = append(lvl.enemies, e)
	lvl.enemyIDs[e] = id
	return e
}

func TestBulletHitsEnemy(t *testing.T) {
	lvl, p := newCombatLevel(t, combatPlayerSpec(10))
	e := addEnemy(lvl, 150, 100, 6, 2)

	b := p.Bullets().Spawn(155, 110, 1, 0)

	lvl.HandleCollisions()

	if got := e.Health(); got != 3 {
		t.Fatalf("enemy health = %d, want 3", got)
	}
	if b.Live() {
		t.Fatal("bullet should be disabled after the hit")
	}
	if !b.Disabled() {
		t.Fatal("bullet should be decaying, not reclaimed")
	}
	if got := p.Health(); got != 10 {
		t.Fatalf("player health = %d, want untouched 10", got)
	}
}

func TestBulletHitsTerrain(t *testing.T) {
	lvl, p := newCombatLevel(t, combatPlayerSpec(10))
	e := addEnemy(lvl, 150, 100, 6, 2)

	// Inside the floor tiles.
	b := p.Bullets().Spawn(100, 9*32+5, 1, 0)

	lvl.HandleCollisions()

	if b.Live() {
		t.Fatal("bullet in terrain should be disabled")
	}
	if got := e.Health(); got != 6 {
		t.Fatalf("enemy health = %d, want untouched 6", got)
	}
}

func TestPlayerHitByTwoEnemiesStacks(t *testing.T) {
	lvl, p := newCombatLevel(t, combatPlayerSpec(20))
	p.SetPosition(100, 100)
	addEnemy(lvl, 95, 100, 6, 5)
	addEnemy(lvl, 110, 100, 6, 7)

	lvl.HandleCollisions()

	if got := p.Health(); got != 8 {
		t.Fatalf("player health = %d, want 20-5-7=8", got)
	}
	if !p.Invincible() {
		t.Fatal("grace window should open after the pass")
	}

	// Still overlapping next frame, but the grace filter absorbs it.
	lvl.HandleCollisions()
	if got := p.Health(); got != 8 {
		t.Fatalf("player health after grace frame = %d, want 8", got)
	}
}

func TestDeadEnemyReaped(t *testing.T) {
	lvl, p := newCombatLevel(t, combatPlayerSpec(10))
	e := addEnemy(lvl, 150, 100, 3, 2)
	id := lvl.enemyIDs[e]

	p.Bullets().Spawn(155, 110, 1, 0)

	lvl.HandleCollisions()

	if e.Alive() {
		t.Fatal("enemy should be dead")
	}
	if len(lvl.Enemies()) != 0 {
		t.Fatalf("enemies = %d, want 0 after reap", len(lvl.Enemies()))
	}
	if lvl.Registry().Get(id) != nil {
		t.Fatal("dead enemy should leave the registry")
	}
}

func TestBulletClipsTerrainAndEnemyOnce(t *testing.T) {
	lvl, p := newCombatLevel(t, combatPlayerSpec(10))
	// Enemy standing so its feet overlap the floor row; the bullet overlaps
	// both the enemy and the terrain.
	e := addEnemy(lvl, 150, 9*32-20, 6, 2)
	b := p.Bullets().Spawn(155, 9*32+2, 1, 0)

	lvl.HandleCollisions()

	if b.Live() {
		t.Fatal("bullet should be disabled")
	}
	// Terrain pass runs first and disables the bullet; the enemy pass then
	// skips it, so no damage lands.
	if got := e.Health(); got != 6 {
		t.Fatalf("enemy health = %d, want 6", got)
	}
}
