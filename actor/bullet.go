package actor

import (
	"image/color"
	"math"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/mikkoJakonen/lilja-game/combat"
	"github.com/mikkoJakonen/lilja-game/common"
	"github.com/mikkoJakonen/lilja-game/prefabs"
)

// Bullet is a pooled projectile. On any wall or enemy contact it switches to
// a disabled, inert decay state and is reclaimed by its pool once the decay
// animation has run; it is never freed in the middle of a collision pass.
type Bullet struct {
	X, Y          float64
	VelX, VelY    float64
	Width, Height float64

	damage    int
	active    bool
	disabled  bool
	decayLeft int
	lifeLeft  int
}

func (b *Bullet) Kind() combat.Kind { return combat.KindBullet }

func (b *Bullet) Bounds() common.Rect {
	return common.Rect{X: b.X, Y: b.Y, Width: b.Width, Height: b.Height}
}

func (b *Bullet) CombatTarget() combat.Target {
	return combat.Target{Kind: combat.KindBullet, ContactDamage: b.damage}
}

// Live reports whether the bullet still participates in collision: it is in
// flight and has not entered the decay state.
func (b *Bullet) Live() bool { return b.active && !b.disabled }

// Disabled reports whether the bullet is in its decay state.
func (b *Bullet) Disabled() bool { return b.disabled }

// Disable switches the bullet to the inert decay state. Calling it on an
// already-disabled bullet does nothing, so a bullet that clips both a wall
// and an enemy in one frame decays exactly once.
func (b *Bullet) Disable() {
	if b == nil || !b.active || b.disabled {
		return
	}
	b.disabled = true
	b.VelX = 0
	b.VelY = 0
}

func (b *Bullet) reset(x, y, vx, vy float64, spec prefabs.BulletSpec) {
	b.X = x
	b.Y = y
	b.VelX = vx
	b.VelY = vy
	b.Width = spec.Width
	b.Height = spec.Height
	b.damage = spec.Damage
	b.active = true
	b.disabled = false
	b.decayLeft = spec.DecayFrames
	b.lifeLeft = spec.LifeFrames
}

func (b *Bullet) update(dt float64) {
	if b == nil || !b.active {
		return
	}

	if b.disabled {
		b.decayLeft--
		if b.decayLeft <= 0 {
			b.active = false
		}
		return
	}

	b.X += b.VelX * dt
	b.Y += b.VelY * dt

	if b.lifeLeft > 0 {
		b.lifeLeft--
		if b.lifeLeft == 0 {
			b.Disable()
		}
	}
}

// BulletPool owns every bullet the player can have in flight. Pool lifetime
// matches the player's lifetime.
type BulletPool struct {
	spec prefabs.BulletSpec
	pool sync.Pool

	active []*Bullet

	img     *ebiten.Image
	imgOnce sync.Once
}

func NewBulletPool(spec prefabs.BulletSpec) *BulletPool {
	bp := &BulletPool{spec: spec}
	bp.pool.New = func() any { return &Bullet{} }
	return bp
}

// SetSpec re-applies tuning; bullets already in flight keep their old values.
func (bp *BulletPool) SetSpec(spec prefabs.BulletSpec) {
	bp.spec = spec
}

// Spawn pulls a bullet from the pool and launches it in the given direction.
func (bp *BulletPool) Spawn(x, y, dirX, dirY float64) *Bullet {
	mag := math.Hypot(dirX, dirY)
	if mag == 0 {
		dirX, mag = 1, 1
	}
	b := bp.pool.Get().(*Bullet)
	b.reset(x, y, dirX/mag*bp.spec.Speed, dirY/mag*bp.spec.Speed, bp.spec)
	bp.active = append(bp.active, b)
	return b
}

// Update advances all bullets and reclaims the ones whose decay has finished.
func (bp *BulletPool) Update(dt float64) {
	if len(bp.active) == 0 {
		return
	}
	writeIdx := 0
	for _, b := range bp.active {
		b.update(dt)
		if !b.active {
			bp.pool.Put(b)
			continue
		}
		bp.active[writeIdx] = b
		writeIdx++
	}
	bp.active = bp.active[:writeIdx]
}

// Live returns the bullets that can still collide this frame.
func (bp *BulletPool) Live() []*Bullet {
	out := make([]*Bullet, 0, len(bp.active))
	for _, b := range bp.active {
		if b.Live() {
			out = append(out, b)
		}
	}
	return out
}

// Draw renders all in-flight bullets with the camera transform applied.
func (bp *BulletPool) Draw(screen *ebiten.Image, camX, camY float64) {
	if len(bp.active) == 0 {
		return
	}
	bp.imgOnce.Do(func() {
		img := ebiten.NewImage(8, 8)
		img.Fill(color.RGBA{R: 0xff, G: 0xe0, B: 0x40, A: 0xff})
		bp.img = img
	})
	for _, b := range bp.active {
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Scale(b.Width/8.0, b.Height/8.0)
		if b.disabled {
			op.ColorScale.ScaleAlpha(0.4)
		}
		op.GeoM.Translate(math.Round(b.X-camX), math.Round(b.Y-camY))
		op.Filter = ebiten.FilterNearest
		screen.DrawImage(bp.img, op)
	}
}
