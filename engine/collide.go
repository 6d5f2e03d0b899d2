package engine

import "github.com/mikkoJakonen/lilja-game/common"

// Collidable is anything with an axis-aligned bounding box in world pixels.
type Collidable interface {
	Bounds() common.Rect
}

// Collide performs a pairwise overlap test between two actor groups and
// invokes onHit once per overlapping pair, in group order. shouldProcess, if
// non-nil, gates each pair before onHit; it must not mutate either actor.
func Collide[A, B Collidable](groupA []A, groupB []B, onHit func(a A, b B), shouldProcess func(a A, b B) bool) {
	for _, a := range groupA {
		ra := a.Bounds()
		for _, b := range groupB {
			rb := b.Bounds()
			if !ra.Intersects(&rb) {
				continue
			}
			if shouldProcess != nil && !shouldProcess(a, b) {
				continue
			}
			onHit(a, b)
			// the hit reaction may have moved or disabled a
			ra = a.Bounds()
		}
	}
}
