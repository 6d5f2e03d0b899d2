// Package level owns the per-level runtime: the tile map, the physics space,
// the actor registry, enemy population, gameplay collision resolution and the
// mission intro sequence. A Level is built, started, stepped once per frame,
// and stopped; stopping cancels every pending tween, ticker and dialogue so
// nothing from a dead level fires into the next one.
package level

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/mikkoJakonen/lilja-game/actor"
	"github.com/mikkoJakonen/lilja-game/audio"
	"github.com/mikkoJakonen/lilja-game/dialogue"
	"github.com/mikkoJakonen/lilja-game/engine"
	"github.com/mikkoJakonen/lilja-game/levels"
)

// ErrConfiguration marks setup problems in level or prefab data. It is
// returned before the level runs; once running, a level never fails, it
// absorbs bad event timing as no-ops.
var ErrConfiguration = errors.New("level configuration")

// Level is the running state of one mission.
type Level struct {
	data  *levels.Data
	tiles *Map
	world *World

	registry *actor.Registry
	ground   *Ground
	groundID actor.ID

	player       *actor.Player
	playerID     actor.ID
	playerGround *GroundState

	enemies  []*actor.Enemy
	enemyIDs map[*actor.Enemy]actor.ID

	tweens  engine.Tweens
	tickers engine.Tickers

	dialogue *dialogue.Runner
	sfx      *audio.Service
	seq      *MissionSequencer

	running bool
}

// NewLevel loads the named level and validates everything the intro sequence
// will need, so a missing dialogue key fails here instead of mid-intro.
func NewLevel(name string, dlg *dialogue.Runner, sfx *audio.Service) (*Level, error) {
	data, err := levels.Load(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfiguration, err)
	}
	return newLevelFromData(data, dlg, sfx)
}

func newLevelFromData(data *levels.Data, dlg *dialogue.Runner, sfx *audio.Service) (*Level, error) {
	if !dlg.Has(introDialogueKey(data.Name)) {
		return nil, fmt.Errorf("%w: no dialogue sequence %q", ErrConfiguration, introDialogueKey(data.Name))
	}

	l := &Level{
		data:     data,
		tiles:    NewMap(data),
		registry: actor.NewRegistry(),
		enemyIDs: make(map[*actor.Enemy]actor.ID),
		dialogue: dlg,
		sfx:      sfx,
	}
	l.world = NewWorld(data)
	l.ground = NewGround(l.tiles)
	l.groundID = l.registry.Register(l.ground)
	l.seq = newMissionSequencer(l)
	return l, nil
}

func (l *Level) Name() string { return l.data.Name }

func (l *Level) Player() *actor.Player { return l.player }

func (l *Level) Enemies() []*actor.Enemy { return l.enemies }

func (l *Level) Registry() *actor.Registry { return l.registry }

func (l *Level) Sequencer() *MissionSequencer { return l.seq }

func (l *Level) Dialogue() *dialogue.Runner { return l.dialogue }

func (l *Level) Tiles() *Map { return l.tiles }

func (l *Level) Running() bool { return l.running }

// Start places the player, begins the mission intro and marks the level
// running. Populate must have been called first.
func (l *Level) Start() error {
	if l.player == nil {
		return fmt.Errorf("%w: level started before Populate", ErrConfiguration)
	}
	l.running = true
	l.seq.StartIntro()
	return nil
}

// Update advances the level one frame. The order is fixed: timers and
// dialogue first, then actor control, then the physics step, then gameplay
// collision resolution on the post-step positions.
func (l *Level) Update(dt float64, in actor.InputState) {
	if !l.running {
		return
	}

	l.tweens.Update()
	l.tickers.Update()
	l.dialogue.Update()

	l.player.Update(dt, in, l.playerGround.OnGround())
	for _, e := range l.enemies {
		if e.Alive() {
			e.Update(dt)
		}
	}

	l.world.Step(dt)
	l.player.SyncFromBody()
	for _, e := range l.enemies {
		e.SyncFromBody()
	}

	l.HandleCollisions()

	if l.sfx != nil {
		l.sfx.Update()
	}
}

// SkipDialogue advances the intro dialogue one line, ending it on the last.
// Outside the dialogue phase it does nothing.
func (l *Level) SkipDialogue() {
	if l.seq.State() == SequencerAwaitingDialogue {
		l.dialogue.Skip()
	}
}

// Stop tears the level down. Every pending tween, ticker and dialogue is
// cancelled without firing its completion, music stops, and all actors leave
// the registry. Safe to call twice.
func (l *Level) Stop() {
	if !l.running && l.player == nil {
		return
	}
	l.running = false
	l.seq.stop()
	l.tweens.CancelAll()
	l.tickers.CancelAll()
	l.dialogue.Stop()
	if l.sfx != nil {
		l.sfx.StopMusic()
	}

	for e, id := range l.enemyIDs {
		l.registry.Unregister(id)
		l.world.RemoveBody(e.Body())
	}
	l.enemies = nil
	l.enemyIDs = make(map[*actor.Enemy]actor.ID)
	if l.playerID != 0 {
		l.registry.Unregister(l.playerID)
		l.playerID = 0
	}
	l.player = nil
	log.Debug("level stopped", "level", l.data.Name)
}

// Draw renders the map and every actor with the camera offset applied.
func (l *Level) Draw(screen *ebiten.Image, camX, camY float64) {
	l.tiles.Draw(screen, camX, camY)
	for _, e := range l.enemies {
		if e.Alive() {
			e.Draw(screen, camX, camY)
		}
	}
	if l.player != nil {
		l.player.Draw(screen, camX, camY)
	}
}

func introDialogueKey(levelName string) string { return levelName + "_intro" }
