package actor

import (
	"image/color"
	"math"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/jakecoffman/cp"
	"github.com/mikkoJakonen/lilja-game/combat"
	"github.com/mikkoJakonen/lilja-game/common"
	"github.com/mikkoJakonen/lilja-game/prefabs"
)

// flashInterval is the frame interval for the post-hit blink.
const flashInterval = 4

// InputState is the per-frame control sample handed to the player. The
// session polls devices and fills it; the player never reads hardware.
type InputState struct {
	MoveX       float64
	JumpPressed bool
	FirePressed bool
	FireDirX    float64
	FireDirY    float64
}

// Player is the session-owned playable actor. The level holds a non-owning
// reference to it and to its bullet pool.
type Player struct {
	X, Y          float64
	Width, Height float64

	spec      prefabs.PlayerSpec
	health    int
	maxHealth int

	invincibleLeft   int
	controlsDisabled bool
	fireCooldown     int
	facingLeft       bool
	anim             string

	body    *cp.Body
	bullets *BulletPool
	sfx     Sfx

	img     *ebiten.Image
	imgOnce sync.Once
}

func NewPlayer(x, y float64, spec prefabs.PlayerSpec, sfx Sfx) *Player {
	return &Player{
		X:         x,
		Y:         y,
		Width:     spec.Width,
		Height:    spec.Height,
		spec:      spec,
		health:    spec.Health,
		maxHealth: spec.Health,
		anim:      "idle",
		bullets:   NewBulletPool(spec.Bullet),
		sfx:       sfx,
	}
}

func (p *Player) Kind() combat.Kind { return combat.KindPlayer }

func (p *Player) Bounds() common.Rect {
	return common.Rect{X: p.X, Y: p.Y, Width: p.Width, Height: p.Height}
}

func (p *Player) CombatTarget() combat.Target {
	return combat.Target{Kind: combat.KindPlayer, Invincible: p.Invincible()}
}

// Bullets returns the player-owned bullet pool.
func (p *Player) Bullets() *BulletPool { return p.bullets }

func (p *Player) Health() int    { return p.health }
func (p *Player) MaxHealth() int { return p.maxHealth }
func (p *Player) Dead() bool     { return p.health <= 0 }

func (p *Player) Invincible() bool { return p.invincibleLeft > 0 }

// ApplyDamage reduces health and reports whether the hit landed. Overlaps
// during the grace window are filtered out before this is called; the check
// here only backstops direct callers.
func (p *Player) ApplyDamage(amount int) bool {
	if p.Invincible() || amount <= 0 {
		return false
	}
	p.health -= amount
	if p.health < 0 {
		p.health = 0
	}
	return true
}

// StartGrace opens the post-hit invincibility window. The level grants it
// once per frame, after the whole player-vs-enemy pass has resolved.
func (p *Player) StartGrace() {
	p.invincibleLeft = p.spec.GraceFrames
}

func (p *Player) SetControlsEnabled(enabled bool) {
	p.controlsDisabled = !enabled
}

func (p *Player) ControlsEnabled() bool { return !p.controlsDisabled }

// SetAnimation switches the named animation ("idle", "walk").
func (p *Player) SetAnimation(name string) { p.anim = name }

func (p *Player) Animation() string { return p.anim }

// AttachBody binds the physics body created by the level's space.
func (p *Player) AttachBody(body *cp.Body) { p.body = body }

// SetPosition teleports the player, moving the physics body with it.
func (p *Player) SetPosition(x, y float64) {
	p.X = x
	p.Y = y
	if p.body != nil {
		p.body.SetPosition(cp.Vector{X: x + p.Width/2, Y: y + p.Height/2})
		p.body.SetVelocity(0, 0)
	}
}

// ApplyTuning re-applies prefab tuning without resetting current health.
func (p *Player) ApplyTuning(spec prefabs.PlayerSpec) {
	p.spec = spec
	p.maxHealth = spec.Health
	if p.health > p.maxHealth {
		p.health = p.maxHealth
	}
	p.bullets.SetSpec(spec.Bullet)
}

// Update applies one frame of control and advances bullets and timers.
// grounded comes from the level's physics space.
func (p *Player) Update(dt float64, in InputState, grounded bool) {
	if p.invincibleLeft > 0 {
		p.invincibleLeft--
	}
	if p.fireCooldown > 0 {
		p.fireCooldown--
	}

	if p.controlsDisabled {
		in = InputState{}
	}

	if p.body != nil {
		vel := p.body.Velocity()
		vel.X = in.MoveX * p.spec.MoveSpeed
		if in.JumpPressed && grounded {
			vel.Y = p.spec.JumpImpulse
		}
		p.body.SetVelocity(vel.X, vel.Y)
	}

	if in.MoveX < 0 {
		p.facingLeft = true
	} else if in.MoveX > 0 {
		p.facingLeft = false
	}

	if in.FirePressed && p.fireCooldown == 0 {
		p.fire(in.FireDirX, in.FireDirY)
	}

	p.bullets.Update(dt)
}

func (p *Player) fire(dirX, dirY float64) {
	if dirX == 0 && dirY == 0 {
		dirX = 1
		if p.facingLeft {
			dirX = -1
		}
	}
	cx := p.X + p.Width/2
	cy := p.Y + p.Height/2
	p.bullets.Spawn(cx, cy, dirX, dirY)
	p.fireCooldown = p.spec.FireCooldownFrames
	if p.sfx != nil && p.spec.FireSound != "" {
		p.sfx.Play(p.spec.FireSound)
	}
}

// SyncFromBody pulls the body position back into the actor rect after a
// physics step.
func (p *Player) SyncFromBody() {
	if p.body == nil {
		return
	}
	pos := p.body.Position()
	p.X = pos.X - p.Width/2
	p.Y = pos.Y - p.Height/2
}

// Draw renders the player, blinking while the grace window is open.
func (p *Player) Draw(screen *ebiten.Image, camX, camY float64) {
	if p.invincibleLeft > 0 && (p.invincibleLeft/flashInterval)%2 == 1 {
		return
	}
	p.imgOnce.Do(func() {
		img := ebiten.NewImage(int(p.Width), int(p.Height))
		img.Fill(color.RGBA{R: 0x50, G: 0xc8, B: 0x78, A: 0xff})
		p.img = img
	})
	op := &ebiten.DrawImageOptions{}
	if p.facingLeft {
		op.GeoM.Scale(-1, 1)
		op.GeoM.Translate(p.Width, 0)
	}
	op.GeoM.Translate(math.Round(p.X-camX), math.Round(p.Y-camY))
	op.Filter = ebiten.FilterNearest
	screen.DrawImage(p.img, op)

	p.bullets.Draw(screen, camX, camY)
}
