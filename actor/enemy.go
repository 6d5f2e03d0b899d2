package actor

import (
	"image/color"
	"math"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/jakecoffman/cp"
	"github.com/mikkoJakonen/lilja-game/combat"
	"github.com/mikkoJakonen/lilja-game/common"
	"github.com/mikkoJakonen/lilja-game/prefabs"
)

// Enemy is a level-owned hostile. Its chase target and ground layer are held
// as registry ids, never as owning pointers, so it keeps working (by idling)
// when either disappears.
type Enemy struct {
	X, Y          float64
	Width, Height float64

	spec   prefabs.EnemySpec
	health int

	chaseTarget ID
	ground      ID
	registry    *Registry

	body       *cp.Body
	behavior   *Behavior
	facingLeft bool

	img     *ebiten.Image
	imgOnce sync.Once
}

func NewEnemy(x, y float64, spec prefabs.EnemySpec, registry *Registry) *Enemy {
	e := &Enemy{
		X:        x,
		Y:        y,
		Width:    spec.Width,
		Height:   spec.Height,
		spec:     spec,
		health:   spec.Health,
		registry: registry,
	}
	if spec.Script != "" {
		behavior, err := NewBehavior(spec.Script)
		if err != nil {
			log.Warn("enemy: behavior script unavailable, using built-in chase", "script", spec.Script, "err", err)
		} else {
			e.behavior = behavior
		}
	}
	return e
}

func (e *Enemy) Kind() combat.Kind { return combat.KindEnemy }

// Name returns the prefab marker name this enemy was built from.
func (e *Enemy) Name() string { return e.spec.Name }

func (e *Enemy) Bounds() common.Rect {
	return common.Rect{X: e.X, Y: e.Y, Width: e.Width, Height: e.Height}
}

func (e *Enemy) CombatTarget() combat.Target {
	return combat.Target{Kind: combat.KindEnemy, ContactDamage: e.spec.Damage}
}

// SetChaseTarget points the enemy at the actor id it should pursue.
func (e *Enemy) SetChaseTarget(id ID) { e.chaseTarget = id }

// SetGround records the collidable terrain layer id used by movement logic.
func (e *Enemy) SetGround(id ID) { e.ground = id }

func (e *Enemy) Ground() ID { return e.ground }

func (e *Enemy) Health() int { return e.health }

func (e *Enemy) Alive() bool { return e.health > 0 }

// Damage is the contact damage this enemy deals to the player.
func (e *Enemy) Damage() int { return e.spec.Damage }

// ApplyDamage reduces health, clamping at zero.
func (e *Enemy) ApplyDamage(amount int) {
	if amount <= 0 {
		return
	}
	e.health -= amount
	if e.health < 0 {
		e.health = 0
	}
}

// ApplyTuning re-applies prefab tuning without resetting current health.
func (e *Enemy) ApplyTuning(spec prefabs.EnemySpec) {
	e.spec = spec
	if e.health > spec.Health {
		e.health = spec.Health
	}
}

// AttachBody binds the physics body created by the level's space.
func (e *Enemy) AttachBody(body *cp.Body) { e.body = body }

// Body returns the attached physics body, if any.
func (e *Enemy) Body() *cp.Body { return e.body }

// Update runs one frame of pursuit. The chase target is resolved through the
// registry each frame; a vanished target means the enemy stands still.
func (e *Enemy) Update(dt float64) {
	if !e.Alive() {
		return
	}

	var targetX float64
	hasTarget := false
	if target := e.registry.Get(e.chaseTarget); target != nil {
		b := target.Bounds()
		targetX = b.CenterX()
		hasTarget = true
	}

	moveX := e.decideMoveX(targetX, hasTarget)

	if moveX < 0 {
		e.facingLeft = true
	} else if moveX > 0 {
		e.facingLeft = false
	}

	if e.body != nil {
		vel := e.body.Velocity()
		e.body.SetVelocity(moveX, vel.Y)
	} else {
		e.X += moveX * dt
	}
}

func (e *Enemy) decideMoveX(targetX float64, hasTarget bool) float64 {
	selfX := e.X + e.Width/2

	if e.behavior != nil {
		moveX, err := e.behavior.MoveX(selfX, targetX, hasTarget, e.spec.MoveSpeed)
		if err == nil {
			return moveX
		}
		log.Warn("enemy: behavior script failed, using built-in chase", "script", e.spec.Script, "err", err)
		e.behavior = nil
	}

	// Built-in chase: walk toward the target, stop when roughly on top of it.
	if !hasTarget {
		return 0
	}
	dx := targetX - selfX
	if math.Abs(dx) < 6 {
		return 0
	}
	if dx < 0 {
		return -e.spec.MoveSpeed
	}
	return e.spec.MoveSpeed
}

// SyncFromBody pulls the body position back into the actor rect after a
// physics step.
func (e *Enemy) SyncFromBody() {
	if e.body == nil {
		return
	}
	pos := e.body.Position()
	e.X = pos.X - e.Width/2
	e.Y = pos.Y - e.Height/2
}

// Draw renders the enemy as a placeholder sprite.
func (e *Enemy) Draw(screen *ebiten.Image, camX, camY float64) {
	if !e.Alive() {
		return
	}
	e.imgOnce.Do(func() {
		img := ebiten.NewImage(int(e.Width), int(e.Height))
		img.Fill(color.RGBA{R: 0xc8, G: 0x3c, B: 0x3c, A: 0xff})
		e.img = img
	})
	op := &ebiten.DrawImageOptions{}
	if e.facingLeft {
		op.GeoM.Scale(-1, 1)
		op.GeoM.Translate(e.Width, 0)
	}
	op.GeoM.Translate(math.Round(e.X-camX), math.Round(e.Y-camY))
	op.Filter = ebiten.FilterNearest
	screen.DrawImage(e.img, op)
}
