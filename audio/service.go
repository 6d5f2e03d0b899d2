// Package audio provides the explicit sound-service handle passed into the
// session and the level. There is no package-level playback state; code that
// wants sound holds a *Service.
package audio

import (
	"github.com/charmbracelet/log"
	eaudio "github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/mikkoJakonen/lilja-game/assets"
)

// Service plays one-shot effects and at most one music track at a time. A
// muted service (used headless and by tests) never opens the audio device. A
// track whose asset is missing degrades to a logged warning and a no-op
// handle so the game stays playable without binary assets.
type Service struct {
	muted   bool
	players map[string]*eaudio.Player
	missing map[string]bool

	musicTrack string
	musicLoop  bool
}

func NewService(muted bool) *Service {
	return &Service{
		muted:   muted,
		players: make(map[string]*eaudio.Player),
		missing: make(map[string]bool),
	}
}

// Play fires a one-shot effect, restarting it if already playing.
func (s *Service) Play(name string) {
	p := s.player(name)
	if p == nil {
		return
	}
	if p.IsPlaying() {
		p.Pause()
	}
	_ = p.Rewind()
	p.Play()
}

// PlayMusic starts the named track, replacing the current one. With loop set
// the track restarts whenever it runs out.
func (s *Service) PlayMusic(name string, loop bool) {
	if s.musicTrack == name && s.musicLoop == loop {
		return
	}
	s.StopMusic()
	s.musicTrack = name
	s.musicLoop = loop
	p := s.player(name)
	if p == nil {
		return
	}
	_ = p.Rewind()
	p.Play()
}

// StopMusic stops the current track, if any.
func (s *Service) StopMusic() {
	if s.musicTrack == "" {
		return
	}
	if p := s.players[s.musicTrack]; p != nil && p.IsPlaying() {
		p.Pause()
	}
	s.musicTrack = ""
	s.musicLoop = false
}

// SetVolume adjusts the volume of a loaded track.
func (s *Service) SetVolume(name string, volume float64) {
	if p := s.player(name); p != nil {
		p.SetVolume(volume)
	}
}

// MusicTrack returns the name of the current track ("" when silent).
func (s *Service) MusicTrack() string { return s.musicTrack }

// Update keeps looping music going; call once per frame. A finished looping
// track is rewound and restarted rather than streamed via a loop reader, so
// track switches stay trivial.
func (s *Service) Update() {
	if s.musicTrack == "" || !s.musicLoop {
		return
	}
	p := s.players[s.musicTrack]
	if p == nil || p.IsPlaying() {
		return
	}
	_ = p.Rewind()
	p.Play()
}

func (s *Service) player(name string) *eaudio.Player {
	if s.muted || name == "" || s.missing[name] {
		return nil
	}
	if p, ok := s.players[name]; ok {
		return p
	}
	p, err := assets.LoadAudioPlayer(name)
	if err != nil {
		log.Warn("audio: asset unavailable", "name", name, "err", err)
		s.missing[name] = true
		return nil
	}
	s.players[name] = p
	return p
}
