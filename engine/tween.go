package engine

// Tween animates a single float property from one value to another over a
// fixed number of update ticks. The target property is written through the
// apply callback each step, and OnComplete fires at most once, on the tick
// the tween finishes.
type Tween struct {
	from, to float64
	frames   int
	elapsed  int
	easing   Easing
	apply    func(v float64)

	onComplete func()
	done       bool
	cancelled  bool
}

// Tweens owns a set of running tweens and steps them once per frame.
type Tweens struct {
	active []*Tween
}

// Animate schedules a new tween. frames must be >= 1; shorter requests are
// clamped so the apply callback still runs and completion still fires.
func (ts *Tweens) Animate(from, to float64, frames int, easing Easing, apply func(v float64)) *Tween {
	if frames < 1 {
		frames = 1
	}
	if easing == nil {
		easing = Linear
	}
	tw := &Tween{from: from, to: to, frames: frames, easing: easing, apply: apply}
	ts.active = append(ts.active, tw)
	return tw
}

// Update advances all running tweens by one frame. Completion callbacks fire
// synchronously, in scheduling order, before Update returns.
func (ts *Tweens) Update() {
	if ts == nil || len(ts.active) == 0 {
		return
	}
	writeIdx := 0
	for _, tw := range ts.active {
		tw.step()
		if tw.done || tw.cancelled {
			continue
		}
		ts.active[writeIdx] = tw
		writeIdx++
	}
	ts.active = ts.active[:writeIdx]
}

// CancelAll stops every running tween without firing completion callbacks.
func (ts *Tweens) CancelAll() {
	if ts == nil {
		return
	}
	for _, tw := range ts.active {
		tw.Cancel()
	}
	ts.active = ts.active[:0]
}

// OnComplete registers the single-shot completion callback.
func (tw *Tween) OnComplete(fn func()) *Tween {
	tw.onComplete = fn
	return tw
}

// Cancel stops the tween; the completion callback will not fire.
func (tw *Tween) Cancel() {
	if tw == nil {
		return
	}
	tw.cancelled = true
}

func (tw *Tween) step() {
	if tw == nil || tw.done || tw.cancelled {
		return
	}
	tw.elapsed++
	t := float64(tw.elapsed) / float64(tw.frames)
	if t > 1 {
		t = 1
	}
	if tw.apply != nil {
		tw.apply(tw.from + (tw.to-tw.from)*tw.easing(t))
	}
	if tw.elapsed >= tw.frames {
		tw.done = true
		if tw.onComplete != nil {
			fn := tw.onComplete
			tw.onComplete = nil
			fn()
		}
	}
}
