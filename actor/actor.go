// Package actor holds the concrete collidable game entities and the
// level-owned registry used to resolve non-owning references between them.
package actor

import (
	"github.com/mikkoJakonen/lilja-game/combat"
	"github.com/mikkoJakonen/lilja-game/common"
)

// ID identifies a registered actor. The zero ID never resolves.
type ID int

// Actor is any entity that can participate in collision resolution.
type Actor interface {
	Kind() combat.Kind
	Bounds() common.Rect
	// CombatTarget returns the read-only view the collision rules consult.
	CombatTarget() combat.Target
}

// Sfx plays a named one-shot sound effect. Actors receive it as an explicit
// handle from the session; there is no package-level audio state.
type Sfx interface {
	Play(name string)
}

// Registry is the level-owned id table. Back-references between actors (an
// enemy's chase target, its ground layer) are stored as IDs and resolved
// here on use, so a destroyed actor can never dangle.
type Registry struct {
	actors map[ID]Actor
	nextID ID
}

func NewRegistry() *Registry {
	return &Registry{actors: make(map[ID]Actor)}
}

// Register adds an actor and returns its id.
func (r *Registry) Register(a Actor) ID {
	r.nextID++
	r.actors[r.nextID] = a
	return r.nextID
}

// Unregister drops an actor. Lookups of its id return nil afterwards.
func (r *Registry) Unregister(id ID) {
	delete(r.actors, id)
}

// Get resolves an id, returning nil when the actor is gone.
func (r *Registry) Get(id ID) Actor {
	if r == nil {
		return nil
	}
	return r.actors[id]
}
