package level

import (
	"github.com/charmbracelet/log"
	"github.com/mikkoJakonen/lilja-game/common"
	"github.com/mikkoJakonen/lilja-game/engine"
)

// SequencerState is the phase of the mission intro.
type SequencerState int

const (
	SequencerIdle SequencerState = iota
	SequencerIntroWalking
	SequencerAwaitingDialogue
	SequencerMissionFlash
	SequencerActive
)

func (s SequencerState) String() string {
	switch s {
	case SequencerIdle:
		return "idle"
	case SequencerIntroWalking:
		return "intro_walking"
	case SequencerAwaitingDialogue:
		return "awaiting_dialogue"
	case SequencerMissionFlash:
		return "mission_flash"
	case SequencerActive:
		return "active"
	}
	return "unknown"
}

const (
	introWalkTiles  = 6
	introWalkFrames = 90
	flashInterval   = 12
	flashCount      = 5
)

// MissionSequencer drives the scripted mission opening: the player walks in
// from offscreen with controls locked, the intro dialogue plays, the mission
// title flashes, and control returns. Each transition is guarded by the
// current state, so a completion signal arriving late (after a skip or a
// level stop) falls through as a no-op instead of replaying a phase.
type MissionSequencer struct {
	lvl     *Level
	state   SequencerState
	flashOn bool
}

func newMissionSequencer(lvl *Level) *MissionSequencer {
	return &MissionSequencer{lvl: lvl}
}

func (s *MissionSequencer) State() SequencerState { return s.state }

// FlashOn reports whether the mission title is visible this frame during the
// flash phase.
func (s *MissionSequencer) FlashOn() bool { return s.flashOn }

// StartIntro begins the opening sequence. Only valid from idle; a repeat
// call is ignored.
func (s *MissionSequencer) StartIntro() {
	if s.state != SequencerIdle {
		log.Debug("intro start ignored", "state", s.state)
		return
	}
	s.state = SequencerIntroWalking

	p := s.lvl.player
	p.SetControlsEnabled(false)
	p.SetAnimation("walk")

	if music := s.lvl.data.IntroMusic; music != "" && s.lvl.sfx != nil {
		s.lvl.sfx.PlayMusic(music, true)
	}

	restX := s.lvl.data.SpawnX
	startX := restX - float64(introWalkTiles*common.TileSize)
	y := s.lvl.data.SpawnY
	p.SetPosition(startX, y)
	s.lvl.tweens.Animate(startX, restX, introWalkFrames, engine.EaseOutQuad, func(x float64) {
		p.SetPosition(x, y)
	}).OnComplete(s.walkDone)
}

func (s *MissionSequencer) walkDone() {
	if s.state != SequencerIntroWalking {
		log.Debug("walk completion ignored", "state", s.state)
		return
	}
	s.state = SequencerAwaitingDialogue
	s.lvl.player.SetAnimation("idle")

	key := introDialogueKey(s.lvl.data.Name)
	if err := s.lvl.dialogue.Start(key, s.dialogueDone); err != nil {
		// Validated at construction, so only a hot-reloaded dialogue file
		// can get here. Skip straight to the flash.
		log.Warn("intro dialogue unavailable", "key", key, "err", err)
		s.dialogueDone()
	}
}

func (s *MissionSequencer) dialogueDone() {
	if s.state != SequencerAwaitingDialogue {
		log.Debug("dialogue completion ignored", "state", s.state)
		return
	}
	s.state = SequencerMissionFlash
	s.flashOn = false

	s.lvl.tickers.Repeat(flashInterval, flashCount, func(int) {
		s.flashOn = !s.flashOn
	}).OnDone(s.activate)
}

func (s *MissionSequencer) activate() {
	if s.state != SequencerMissionFlash {
		log.Debug("flash completion ignored", "state", s.state)
		return
	}
	s.state = SequencerActive
	s.flashOn = false
	s.lvl.player.SetControlsEnabled(true)

	if s.lvl.sfx != nil {
		s.lvl.sfx.StopMusic()
		if music := s.lvl.data.Music; music != "" {
			s.lvl.sfx.PlayMusic(music, true)
		}
	}
	log.Info("mission active", "level", s.lvl.data.Name)
}

// stop resets the sequencer. The level cancels the tween and ticker sets, so
// no pending completion can fire after this.
func (s *MissionSequencer) stop() {
	s.state = SequencerIdle
	s.flashOn = false
}
