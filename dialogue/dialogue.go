// Package dialogue plays scripted line sequences, advancing frame by frame
// in step with the rest of the simulation and signalling completion exactly
// once per started sequence.
package dialogue

import (
	"fmt"

	"github.com/mikkoJakonen/lilja-game/prefabs"
)

// Line is one displayed dialogue beat.
type Line struct {
	Speaker string
	Text    string
	Frames  int
}

// Runner owns the loaded sequences and the playback state of at most one
// active sequence.
type Runner struct {
	sequences map[string][]Line

	active     []Line
	lineIdx    int
	lineTimer  int
	playing    bool
	onFinished func()
}

// NewRunner builds a runner from a dialogue spec.
func NewRunner(spec *prefabs.DialogueSpec) *Runner {
	r := &Runner{sequences: make(map[string][]Line)}
	if spec == nil {
		return r
	}
	for key, lines := range spec.Sequences {
		seq := make([]Line, 0, len(lines))
		for _, l := range lines {
			frames := l.Frames
			if frames < 1 {
				frames = 60
			}
			seq = append(seq, Line{Speaker: l.Speaker, Text: l.Text, Frames: frames})
		}
		r.sequences[key] = seq
	}
	return r
}

// Has reports whether a sequence key exists. Level setup uses it to reject a
// level whose intro key is missing before gameplay begins.
func (r *Runner) Has(key string) bool {
	_, ok := r.sequences[key]
	return ok
}

// Start begins playing the named sequence. onFinished fires once, on the
// frame the last line elapses (or on Skip).
func (r *Runner) Start(key string, onFinished func()) error {
	lines, ok := r.sequences[key]
	if !ok {
		return fmt.Errorf("dialogue: unknown sequence %q", key)
	}
	r.active = lines
	r.lineIdx = 0
	r.lineTimer = 0
	r.playing = true
	r.onFinished = onFinished
	if len(lines) == 0 {
		r.finish()
	}
	return nil
}

// Playing reports whether a sequence is currently on screen.
func (r *Runner) Playing() bool { return r.playing }

// Current returns the line being displayed.
func (r *Runner) Current() (Line, bool) {
	if !r.playing || r.lineIdx >= len(r.active) {
		return Line{}, false
	}
	return r.active[r.lineIdx], true
}

// Update advances playback by one frame.
func (r *Runner) Update() {
	if !r.playing {
		return
	}
	r.lineTimer++
	if r.lineTimer < r.active[r.lineIdx].Frames {
		return
	}
	r.lineTimer = 0
	r.lineIdx++
	if r.lineIdx >= len(r.active) {
		r.finish()
	}
}

// Skip advances to the next line immediately, finishing the sequence when on
// the last line.
func (r *Runner) Skip() {
	if !r.playing {
		return
	}
	r.lineTimer = 0
	r.lineIdx++
	if r.lineIdx >= len(r.active) {
		r.finish()
	}
}

// Stop abandons the active sequence without signalling completion.
func (r *Runner) Stop() {
	r.playing = false
	r.active = nil
	r.onFinished = nil
}

func (r *Runner) finish() {
	r.playing = false
	r.active = nil
	fn := r.onFinished
	r.onFinished = nil
	if fn != nil {
		fn()
	}
}
