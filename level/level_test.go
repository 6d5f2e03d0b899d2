package level

import (
	"errors"
	"testing"

	"github.com/mikkoJakonen/lilja-game/actor"
	"github.com/mikkoJakonen/lilja-game/audio"
	"github.com/mikkoJakonen/lilja-game/dialogue"
	"github.com/mikkoJakonen/lilja-game/levels"
	"github.com/mikkoJakonen/lilja-game/prefabs"
)

const testDt = 1.0 / 60.0

func newTestLevel(t *testing.T) (*Level, *actor.Player) {
	t.Helper()

	dlgSpec, err := prefabs.LoadDialogueSpec()
	if err != nil {
		t.Fatalf("load dialogue spec: %v", err)
	}
	sfx := audio.NewService(true)
	lvl, err := NewLevel("mission1", dialogue.NewRunner(dlgSpec), sfx)
	if err != nil {
		t.Fatalf("new level: %v", err)
	}

	playerSpec, err := prefabs.LoadPlayerSpec()
	if err != nil {
		t.Fatalf("load player spec: %v", err)
	}
	p := actor.NewPlayer(0, 0, *playerSpec, sfx)
	if err := lvl.Populate(p); err != nil {
		t.Fatalf("populate: %v", err)
	}
	return lvl, p
}

// stepUntil runs frames until the sequencer reaches the wanted state.
func stepUntil(t *testing.T, lvl *Level, want SequencerState, maxFrames int) int {
	t.Helper()
	for i := 0; i < maxFrames; i++ {
		if lvl.Sequencer().State() == want {
			return i
		}
		lvl.Update(testDt, actor.InputState{})
	}
	if lvl.Sequencer().State() != want {
		t.Fatalf("sequencer stuck in %v after %d frames, want %v", lvl.Sequencer().State(), maxFrames, want)
	}
	return maxFrames
}

func TestNewLevelMissingDialogue(t *testing.T) {
	_, err := NewLevel("mission1", dialogue.NewRunner(&prefabs.DialogueSpec{}), audio.NewService(true))
	if !errors.Is(err, ErrConfiguration) {
		t.Fatalf("NewLevel error = %v, want ErrConfiguration", err)
	}
}

func TestPopulateUnknownMarker(t *testing.T) {
	data := &levels.Data{
		Name:   "mission1",
		Width:  4,
		Height: 4,
		Layers: [][]int{{
			0, 0, 0, 0,
			0, 0, 0, 0,
			0, 0, 0, 0,
			1, 1, 1, 1,
		}},
		LayerMeta: []levels.LayerMeta{{Physics: true}},
		Enemies:   []levels.EnemySpawn{{Marker: "does_not_exist", X: 32, Y: 32}},
	}
	dlgSpec, err := prefabs.LoadDialogueSpec()
	if err != nil {
		t.Fatalf("load dialogue spec: %v", err)
	}
	lvl, err := newLevelFromData(data, dialogue.NewRunner(dlgSpec), audio.NewService(true))
	if err != nil {
		t.Fatalf("new level: %v", err)
	}
	playerSpec, err := prefabs.LoadPlayerSpec()
	if err != nil {
		t.Fatalf("load player spec: %v", err)
	}
	err = lvl.Populate(actor.NewPlayer(0, 0, *playerSpec, nil))
	if !errors.Is(err, ErrConfiguration) {
		t.Fatalf("Populate error = %v, want ErrConfiguration", err)
	}
}

func TestIntroSequenceWalkthrough(t *testing.T) {
	lvl, p := newTestLevel(t)
	if err := lvl.Start(); err != nil {
		t.Fatalf("start: %v", err)
	}

	if got := lvl.Sequencer().State(); got != SequencerIntroWalking {
		t.Fatalf("state after start = %v, want intro_walking", got)
	}
	if p.ControlsEnabled() {
		t.Fatal("controls should be locked during the intro walk")
	}

	stepUntil(t, lvl, SequencerAwaitingDialogue, introWalkFrames+10)
	if !lvl.Dialogue().Playing() {
		t.Fatal("dialogue should be playing after the walk")
	}
	if p.ControlsEnabled() {
		t.Fatal("controls should stay locked during dialogue")
	}

	stepUntil(t, lvl, SequencerMissionFlash, 600)
	sawFlash := false
	for i := 0; i < flashInterval*flashCount+10; i++ {
		if lvl.Sequencer().State() == SequencerActive {
			break
		}
		if lvl.Sequencer().FlashOn() {
			sawFlash = true
		}
		lvl.Update(testDt, actor.InputState{})
	}
	if !sawFlash {
		t.Fatal("mission title never flashed on")
	}
	if got := lvl.Sequencer().State(); got != SequencerActive {
		t.Fatalf("state after flash = %v, want active", got)
	}
	if lvl.Sequencer().FlashOn() {
		t.Fatal("flash should be off once active")
	}
	if !p.ControlsEnabled() {
		t.Fatal("controls should return once active")
	}
}

func TestIntroEventsOutOfPhaseAreNoOps(t *testing.T) {
	lvl, p := newTestLevel(t)
	if err := lvl.Start(); err != nil {
		t.Fatalf("start: %v", err)
	}
	stepUntil(t, lvl, SequencerActive, 900)

	// A second start and stale completion signals must change nothing.
	lvl.Sequencer().StartIntro()
	lvl.Sequencer().walkDone()
	lvl.Sequencer().dialogueDone()
	lvl.Sequencer().activate()

	if got := lvl.Sequencer().State(); got != SequencerActive {
		t.Fatalf("state = %v, want active", got)
	}
	if !p.ControlsEnabled() {
		t.Fatal("controls should stay enabled")
	}
	if lvl.Dialogue().Playing() {
		t.Fatal("dialogue must not restart")
	}
}

func TestSkipDialogueAdvancesToFlash(t *testing.T) {
	lvl, _ := newTestLevel(t)
	if err := lvl.Start(); err != nil {
		t.Fatalf("start: %v", err)
	}
	stepUntil(t, lvl, SequencerAwaitingDialogue, introWalkFrames+10)

	// One skip per line; the intro has three.
	for i := 0; i < 3; i++ {
		if got := lvl.Sequencer().State(); got != SequencerAwaitingDialogue {
			t.Fatalf("state after %d skips = %v, want awaiting_dialogue", i, got)
		}
		lvl.SkipDialogue()
	}
	if got := lvl.Sequencer().State(); got != SequencerMissionFlash {
		t.Fatalf("state after skipping all lines = %v, want mission_flash", got)
	}
	if lvl.Dialogue().Playing() {
		t.Fatal("dialogue should have ended")
	}
}

func TestStopCancelsEverything(t *testing.T) {
	lvl, _ := newTestLevel(t)
	if err := lvl.Start(); err != nil {
		t.Fatalf("start: %v", err)
	}
	for i := 0; i < 10; i++ {
		lvl.Update(testDt, actor.InputState{})
	}

	lvl.Stop()
	if lvl.Running() {
		t.Fatal("level should not be running after stop")
	}
	if got := lvl.Sequencer().State(); got != SequencerIdle {
		t.Fatalf("sequencer state after stop = %v, want idle", got)
	}
	if lvl.Dialogue().Playing() {
		t.Fatal("dialogue should be stopped")
	}
	if len(lvl.Enemies()) != 0 {
		t.Fatalf("enemies after stop = %d, want 0", len(lvl.Enemies()))
	}

	// Updates after stop are inert.
	before := lvl.Sequencer().State()
	lvl.Update(testDt, actor.InputState{})
	if lvl.Sequencer().State() != before {
		t.Fatal("stopped level must not advance")
	}
	lvl.Stop()
}
