// Package combat holds the pure collision-resolution rules. It maps a pair
// of actor kinds to the gameplay effect applied to each side, with no
// dependency on the engine or on any mutable game state.
package combat

// Kind is the closed set of actor roles that participate in collision.
type Kind int

const (
	KindPlayer Kind = iota
	KindEnemy
	KindBullet
	KindTerrain
)

func (k Kind) String() string {
	switch k {
	case KindPlayer:
		return "player"
	case KindEnemy:
		return "enemy"
	case KindBullet:
		return "bullet"
	case KindTerrain:
		return "terrain"
	}
	return "unknown"
}

// Op is the kind of effect a resolved collision applies to one actor.
type Op int

const (
	OpIgnore Op = iota
	OpDamage
	OpDisable
	OpDestroy
	OpDeflect
)

func (o Op) String() string {
	switch o {
	case OpIgnore:
		return "ignore"
	case OpDamage:
		return "damage"
	case OpDisable:
		return "disable"
	case OpDestroy:
		return "destroy"
	case OpDeflect:
		return "deflect"
	}
	return "unknown"
}

// Effect is what a resolved collision does to one of the two actors.
type Effect struct {
	Op     Op
	Amount int
}

var ignore = Effect{Op: OpIgnore}

// Target is the read-only view of an actor the rules consult. ContactDamage
// is the damage this actor deals on contact (a bullet's configured damage, an
// enemy's contact damage); Invincible gates the player-vs-enemy rule.
type Target struct {
	Kind          Kind
	ContactDamage int
	Invincible    bool
}

// Resolve maps an overlapping actor pair to the effect on each side.
// Dispatch is symmetric: Resolve(a, b) and Resolve(b, a) describe the same
// outcome with the effects swapped. Pairs not covered by the table resolve to
// ignore on both sides. Resolve never mutates anything; callers apply the
// returned effects.
func Resolve(a, b Target) (Effect, Effect) {
	if a.Kind > b.Kind {
		eb, ea := Resolve(b, a)
		return ea, eb
	}

	switch {
	case a.Kind == KindBullet && b.Kind == KindTerrain:
		return Effect{Op: OpDisable}, ignore

	case a.Kind == KindEnemy && b.Kind == KindBullet:
		return Effect{Op: OpDamage, Amount: b.ContactDamage}, Effect{Op: OpDisable}

	case a.Kind == KindPlayer && b.Kind == KindEnemy:
		// Grace-period pre-filter: an invincible player overlaps but takes
		// nothing, and no partial effect is applied anywhere.
		if a.Invincible {
			return ignore, ignore
		}
		return Effect{Op: OpDamage, Amount: b.ContactDamage}, ignore
	}

	// Player/enemy vs terrain is physical blocking handled by the physics
	// space, not a gameplay effect.
	return ignore, ignore
}
