package level

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/mikkoJakonen/lilja-game/actor"
	"github.com/mikkoJakonen/lilja-game/common"
	"github.com/mikkoJakonen/lilja-game/levels"
)

const (
	collisionTypeSolid cp.CollisionType = iota + 1
	collisionTypePlayer
	collisionTypeEnemy
	collisionTypeGroundSensor
)

const groundGraceFrames = 6

// GroundState is per-body ground contact, refreshed by the sensor handler
// each physics step. Grace keeps jumps responsive for a few frames after the
// sensor loses contact.
type GroundState struct {
	Grounded bool
	Grace    int
}

func (g *GroundState) OnGround() bool { return g.Grounded || g.Grace > 0 }

// World owns the Chipmunk space and the static collision shapes built from
// the level's physics layers. Gameplay collisions (damage, bullets) resolve
// separately on actor rects; the space only does movement and blocking.
type World struct {
	space *cp.Space

	sensorToState map[*cp.Shape]*GroundState
	states        []*GroundState
}

func NewWorld(data *levels.Data) *World {
	space := cp.NewSpace()
	space.Iterations = 20
	space.SetGravity(cp.Vector{X: 0, Y: common.Gravity})

	w := &World{
		space:         space,
		sensorToState: make(map[*cp.Shape]*GroundState),
	}
	w.buildStaticShapes(data)
	w.setupHandlers()
	return w
}

func (w *World) Space() *cp.Space { return w.space }

// AttachPlayer creates the player's dynamic body and ground sensor and binds
// them to the actor. Returns the ground state the level polls each frame.
func (w *World) AttachPlayer(p *actor.Player) *GroundState {
	body, state := w.addDynamic(p.X, p.Y, p.Width, p.Height, collisionTypePlayer)
	p.AttachBody(body)
	return state
}

// AttachEnemy creates a dynamic body for an enemy and binds it.
func (w *World) AttachEnemy(e *actor.Enemy) *GroundState {
	body, state := w.addDynamic(e.X, e.Y, e.Width, e.Height, collisionTypeEnemy)
	e.AttachBody(body)
	return state
}

// RemoveBody takes a body and all its shapes out of the space.
func (w *World) RemoveBody(body *cp.Body) {
	if body == nil {
		return
	}
	body.EachShape(func(s *cp.Shape) {
		delete(w.sensorToState, s)
		w.space.RemoveShape(s)
	})
	w.space.RemoveBody(body)
}

// Step advances the simulation one frame. Ground states are cleared first so
// only contacts from this step count.
func (w *World) Step(dt float64) {
	for _, st := range w.states {
		st.Grounded = false
		if st.Grace > 0 {
			st.Grace--
		}
	}
	w.space.Step(dt)
}

func (w *World) addDynamic(x, y, width, height float64, ct cp.CollisionType) (*cp.Body, *GroundState) {
	mass := 1.0
	body := cp.NewBody(mass, math.Inf(1))
	body.SetPosition(cp.Vector{X: x + width/2, Y: y + height/2})

	shape := cp.NewBox(body, width, height, 0)
	shape.SetFriction(0)
	shape.SetCollisionType(ct)

	state := &GroundState{}
	bb := cp.BB{
		L: -width * 0.45,
		B: height / 2,
		R: width * 0.45,
		T: height/2 + 2,
	}
	sensor := cp.NewBox2(body, bb, 0)
	sensor.SetSensor(true)
	sensor.SetCollisionType(collisionTypeGroundSensor)

	w.space.AddBody(body)
	w.space.AddShape(shape)
	w.space.AddShape(sensor)
	w.sensorToState[sensor] = state
	w.states = append(w.states, state)
	return body, state
}

func (w *World) buildStaticShapes(data *levels.Data) {
	for li, layer := range data.Layers {
		if !data.LayerMeta[li].Physics {
			continue
		}
		w.mergeLayerTiles(data, layer)
	}

	worldW := float64(data.Width * common.TileSize)
	worldH := float64(data.Height * common.TileSize)
	bounds := [][2]cp.Vector{
		{{X: 0, Y: 0}, {X: worldW, Y: 0}},
		{{X: 0, Y: worldH}, {X: worldW, Y: worldH}},
		{{X: 0, Y: 0}, {X: 0, Y: worldH}},
		{{X: worldW, Y: 0}, {X: worldW, Y: worldH}},
	}
	for _, seg := range bounds {
		shape := cp.NewSegment(w.space.StaticBody, seg[0], seg[1], 1)
		shape.SetFriction(0.8)
		shape.SetCollisionType(collisionTypeSolid)
		w.space.AddShape(shape)
	}
}

// mergeLayerTiles greedily merges runs of solid tiles into box shapes so the
// space holds a handful of rectangles instead of one shape per tile.
func (w *World) mergeLayerTiles(data *levels.Data, layer []int) {
	processed := make([]bool, data.Width*data.Height)
	for y := 0; y < data.Height; y++ {
		for x := 0; x < data.Width; x++ {
			idx := y*data.Width + x
			if processed[idx] || layer[idx] == 0 {
				processed[idx] = true
				continue
			}

			width := 1
			for x+width < data.Width {
				next := y*data.Width + (x + width)
				if processed[next] || layer[next] == 0 {
					break
				}
				width++
			}

			height := 1
		grow:
			for y+height < data.Height {
				for xi := x; xi < x+width; xi++ {
					next := (y+height)*data.Width + xi
					if processed[next] || layer[next] == 0 {
						break grow
					}
				}
				height++
			}

			x0 := float64(x * common.TileSize)
			y0 := float64(y * common.TileSize)
			bb := cp.BB{
				L: x0,
				B: y0,
				R: x0 + float64(width*common.TileSize),
				T: y0 + float64(height*common.TileSize),
			}
			shape := cp.NewBox2(w.space.StaticBody, bb, 0)
			shape.SetFriction(0.8)
			shape.SetCollisionType(collisionTypeSolid)
			w.space.AddShape(shape)

			for yy := y; yy < y+height; yy++ {
				for xx := x; xx < x+width; xx++ {
					processed[yy*data.Width+xx] = true
				}
			}
		}
	}
}

func (w *World) setupHandlers() {
	ground := w.space.NewCollisionHandler(collisionTypeGroundSensor, collisionTypeSolid)
	ground.UserData = w
	ground.PreSolveFunc = func(arb *cp.Arbiter, _ *cp.Space, userData interface{}) bool {
		world := userData.(*World)
		shapeA, shapeB := arb.Shapes()
		state, ok := world.sensorToState[shapeA]
		if !ok {
			state, ok = world.sensorToState[shapeB]
		}
		if ok {
			state.Grounded = true
			state.Grace = groundGraceFrames
		}
		return true
	}

	// Bodies pass through each other; contact damage is resolved on actor
	// rects, not in the space.
	overlap := w.space.NewCollisionHandler(collisionTypePlayer, collisionTypeEnemy)
	overlap.PreSolveFunc = func(*cp.Arbiter, *cp.Space, interface{}) bool { return false }
}
