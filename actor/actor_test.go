package actor

import (
	"testing"

	"github.com/mikkoJakonen/lilja-game/prefabs"
)

func testBulletSpec() prefabs.BulletSpec {
	return prefabs.BulletSpec{Damage: 3, Speed: 100, Width: 8, Height: 8, LifeFrames: 30, DecayFrames: 5}
}

func testPlayerSpec() prefabs.PlayerSpec {
	return prefabs.PlayerSpec{
		Name: "lilja", MoveSpeed: 140, JumpImpulse: -420,
		Width: 24, Height: 30, Health: 10, GraceFrames: 45,
		FireCooldownFrames: 12, Bullet: testBulletSpec(),
	}
}

func TestBulletDisableIdempotent(t *testing.T) {
	bp := NewBulletPool(testBulletSpec())
	b := bp.Spawn(0, 0, 1, 0)

	if !b.Live() {
		t.Fatalf("freshly spawned bullet should be live")
	}

	b.Disable()
	if b.Live() || !b.Disabled() {
		t.Fatalf("bullet should be disabled after Disable")
	}
	decayBefore := b.decayLeft

	// Hitting an already-disabled bullet again must not restart the decay or
	// change anything else.
	b.Disable()
	if b.decayLeft != decayBefore {
		t.Fatalf("second Disable restarted decay: %d -> %d", decayBefore, b.decayLeft)
	}
}

func TestBulletDecayReclaim(t *testing.T) {
	bp := NewBulletPool(testBulletSpec())
	b := bp.Spawn(0, 0, 1, 0)
	b.Disable()

	// The bullet survives the full decay window, then leaves the active set.
	for i := 0; i < 5; i++ {
		if len(bp.active) != 1 {
			t.Fatalf("bullet reclaimed too early at decay frame %d", i)
		}
		bp.Update(1.0 / 60.0)
	}
	if len(bp.active) != 0 {
		t.Fatalf("bullet not reclaimed after decay, %d still active", len(bp.active))
	}
	if len(bp.Live()) != 0 {
		t.Fatalf("reclaimed bullet still reported live")
	}
}

func TestBulletLifeExpiry(t *testing.T) {
	bp := NewBulletPool(testBulletSpec())
	bp.Spawn(0, 0, 1, 0)

	for i := 0; i < 30+5; i++ {
		bp.Update(1.0 / 60.0)
	}
	if len(bp.active) != 0 {
		t.Fatalf("bullet should decay and be reclaimed after its life frames")
	}
}

func TestPlayerDamageAndGrace(t *testing.T) {
	p := NewPlayer(0, 0, testPlayerSpec(), nil)

	if !p.ApplyDamage(5) {
		t.Fatalf("first hit should land")
	}
	if p.Health() != 5 {
		t.Fatalf("expected health 5, got %d", p.Health())
	}

	// Grace is granted separately from damage application, so several hits
	// resolved in the same frame all land.
	if !p.ApplyDamage(3) {
		t.Fatalf("second same-frame hit should land before grace starts")
	}
	if p.Health() != 2 {
		t.Fatalf("expected health 2, got %d", p.Health())
	}

	p.StartGrace()
	if !p.Invincible() {
		t.Fatalf("expected invincible after StartGrace")
	}
	if p.ApplyDamage(3) {
		t.Fatalf("hit should not land during grace window")
	}
	if p.Health() != 2 {
		t.Fatalf("health changed during grace window: %d", p.Health())
	}
}

func TestPlayerGraceExpires(t *testing.T) {
	p := NewPlayer(0, 0, testPlayerSpec(), nil)
	p.StartGrace()
	for i := 0; i < 45; i++ {
		p.Update(1.0/60.0, InputState{}, false)
	}
	if p.Invincible() {
		t.Fatalf("grace window should have expired")
	}
}

func TestRegistryWeakReferences(t *testing.T) {
	reg := NewRegistry()
	p := NewPlayer(0, 0, testPlayerSpec(), nil)
	id := reg.Register(p)

	e := NewEnemy(100, 0, prefabs.EnemySpec{Name: "walker", MoveSpeed: 60, Width: 26, Height: 28, Health: 6, Damage: 2}, reg)
	e.SetChaseTarget(id)

	if reg.Get(id) == nil {
		t.Fatalf("registered actor should resolve")
	}

	// The enemy chases while the target exists...
	e.Update(1.0 / 60.0)
	if e.X >= 100 {
		t.Fatalf("enemy should have moved toward target, x=%v", e.X)
	}

	// ...and idles once the target is unregistered, with no dangling access.
	reg.Unregister(id)
	if reg.Get(id) != nil {
		t.Fatalf("unregistered actor should not resolve")
	}
	x := e.X
	e.Update(1.0 / 60.0)
	if e.X != x {
		t.Fatalf("enemy should idle without a target")
	}
}

func TestEnemyDamageClamp(t *testing.T) {
	reg := NewRegistry()
	e := NewEnemy(0, 0, prefabs.EnemySpec{Health: 6, Damage: 2, Width: 26, Height: 28}, reg)

	e.ApplyDamage(4)
	if !e.Alive() || e.Health() != 2 {
		t.Fatalf("expected alive with health 2, got %d", e.Health())
	}
	e.ApplyDamage(10)
	if e.Alive() || e.Health() != 0 {
		t.Fatalf("expected dead with health 0, got %d", e.Health())
	}
}
