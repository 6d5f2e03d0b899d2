package level

import (
	"github.com/charmbracelet/log"
	"github.com/mikkoJakonen/lilja-game/actor"
	"github.com/mikkoJakonen/lilja-game/combat"
	"github.com/mikkoJakonen/lilja-game/engine"
)

// HandleCollisions runs the per-frame gameplay sweeps in a fixed order:
// player vs enemies, bullets vs terrain, bullets vs enemies, player vs
// terrain, enemies vs terrain. Every pair goes through the combat table and
// the returned effects are applied on the spot, except the player's grace
// window, which opens only after the whole player-vs-enemy pass so contact
// with several enemies in the same frame stacks.
func (l *Level) HandleCollisions() {
	hurt := false
	engine.Collide([]*actor.Player{l.player}, l.enemies,
		func(p *actor.Player, e *actor.Enemy) {
			if l.resolvePair(p, e) {
				hurt = true
			}
		},
		func(_ *actor.Player, e *actor.Enemy) bool { return e.Alive() })
	if hurt {
		l.player.StartGrace()
	}

	for _, b := range l.player.Bullets().Live() {
		if l.ground.Solid(b.Bounds()) {
			l.resolvePair(b, l.ground)
		}
	}

	engine.Collide(l.player.Bullets().Live(), l.enemies,
		func(b *actor.Bullet, e *actor.Enemy) {
			l.resolvePair(b, e)
		},
		func(b *actor.Bullet, e *actor.Enemy) bool { return b.Live() && e.Alive() })

	// Terrain contact for the player and enemies is pure blocking, handled
	// by the physics space. The sweeps still run through the table so the
	// resolution order is complete; the table maps both pairs to ignore.
	if l.ground.Solid(l.player.Bounds()) {
		l.resolvePair(l.player, l.ground)
	}
	for _, e := range l.enemies {
		if e.Alive() && l.ground.Solid(e.Bounds()) {
			l.resolvePair(e, l.ground)
		}
	}

	l.reapEnemies()
}

// resolvePair looks the pair up in the combat table and applies both
// effects. Reports whether the player took damage.
func (l *Level) resolvePair(a, b actor.Actor) bool {
	effA, effB := combat.Resolve(a.CombatTarget(), b.CombatTarget())
	hurtA := l.applyEffect(a, effA)
	hurtB := l.applyEffect(b, effB)
	return hurtA || hurtB
}

func (l *Level) applyEffect(target actor.Actor, eff combat.Effect) bool {
	switch eff.Op {
	case combat.OpIgnore:
		return false
	case combat.OpDamage:
		switch t := target.(type) {
		case *actor.Player:
			return t.ApplyDamage(eff.Amount)
		case *actor.Enemy:
			t.ApplyDamage(eff.Amount)
		}
	case combat.OpDisable:
		if b, ok := target.(*actor.Bullet); ok {
			b.Disable()
		}
	default:
		log.Warn("unhandled combat effect", "op", eff.Op, "kind", target.Kind())
	}
	return false
}

// reapEnemies removes enemies that died this frame, after every sweep has
// finished, so a dead enemy still absorbs the bullet that killed it but
// nothing targets it next frame.
func (l *Level) reapEnemies() {
	n := 0
	for _, e := range l.enemies {
		if e.Alive() {
			l.enemies[n] = e
			n++
			continue
		}
		if id, ok := l.enemyIDs[e]; ok {
			l.registry.Unregister(id)
			delete(l.enemyIDs, e)
		}
		l.world.RemoveBody(e.Body())
		log.Debug("enemy down", "level", l.data.Name)
	}
	l.enemies = l.enemies[:n]
}
