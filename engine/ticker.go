package engine

// Ticker fires a callback a fixed number of times at a fixed frame interval,
// then stops. Ticks are counted in update frames, not wall time, matching the
// rest of the frame-stepped simulation.
type Ticker struct {
	interval int
	count    int
	fired    int
	timer    int
	fn       func(tick int)

	onDone    func()
	cancelled bool
}

// Tickers owns a set of running tickers and steps them once per frame.
type Tickers struct {
	active []*Ticker
}

// Repeat schedules fn to run count times, once every intervalFrames frames.
// fn receives the 1-based tick number.
func (ts *Tickers) Repeat(intervalFrames, count int, fn func(tick int)) *Ticker {
	if intervalFrames < 1 {
		intervalFrames = 1
	}
	if count < 1 {
		count = 1
	}
	tk := &Ticker{interval: intervalFrames, count: count, fn: fn}
	ts.active = append(ts.active, tk)
	return tk
}

// Update advances all tickers by one frame. A ticker fires at most once per
// frame; after its final tick its OnDone callback fires and it is dropped.
func (ts *Tickers) Update() {
	if ts == nil || len(ts.active) == 0 {
		return
	}
	writeIdx := 0
	for _, tk := range ts.active {
		tk.step()
		if tk.finished() || tk.cancelled {
			continue
		}
		ts.active[writeIdx] = tk
		writeIdx++
	}
	ts.active = ts.active[:writeIdx]
}

// CancelAll stops every running ticker without firing remaining callbacks.
func (ts *Tickers) CancelAll() {
	if ts == nil {
		return
	}
	for _, tk := range ts.active {
		tk.Cancel()
	}
	ts.active = ts.active[:0]
}

// OnDone registers a single-shot callback run after the final tick.
func (tk *Ticker) OnDone(fn func()) *Ticker {
	tk.onDone = fn
	return tk
}

// Cancel stops the ticker; no further callbacks fire.
func (tk *Ticker) Cancel() {
	if tk == nil {
		return
	}
	tk.cancelled = true
}

func (tk *Ticker) finished() bool {
	return tk.fired >= tk.count
}

func (tk *Ticker) step() {
	if tk == nil || tk.cancelled || tk.finished() {
		return
	}
	tk.timer++
	if tk.timer < tk.interval {
		return
	}
	tk.timer = 0
	tk.fired++
	if tk.fn != nil {
		tk.fn(tk.fired)
	}
	if tk.finished() && tk.onDone != nil {
		fn := tk.onDone
		tk.onDone = nil
		fn()
	}
}
