package diorama

import "slices"

type atKind uint8

const (
	atAfterPrev atKind = iota
	atWithPrev
	atAbsolute
)

// At places a timeline step relative to the step appended before it.
type At struct {
	kind   atKind
	offset float32
}

// AfterPrev starts a step offset seconds after the previous step ends.
// Negative offsets overlap the previous step.
func AfterPrev(offset float32) At { return At{atAfterPrev, offset} }

// WithPrev starts a step offset seconds after the previous step starts.
func WithPrev(offset float32) At { return At{atWithPrev, offset} }

// AtTime starts a step at an absolute timeline time.
func AtTime(t float32) At { return At{atAbsolute, t} }

type timelineStep struct {
	start float32
	end   float32
	req   *TweenRequest
	fn    func()
	order int
	fired bool
}

// Timeline is an explicit ordered list of tween steps. Steps fire in start
// order (ties keep append order), so every step's tween is issued before any
// later step's. Time advances by dt*TimeScale; tween durations are divided by
// TimeScale so steps keep their relative pacing.
type Timeline struct {
	TimeScale float32

	tweener Tweener
	steps   []timelineStep
	lastEnd float32
	lastAt  float32
	end     float32
	time    float32
	next    int
	sorted  bool
	onDone  func()
	done    bool
}

// NewTimeline creates an empty timeline issuing its tweens to tw.
func NewTimeline(tw Tweener) *Timeline {
	return &Timeline{TimeScale: 1, tweener: tw}
}

func (tl *Timeline) place(at At, dur float32) float32 {
	var start float32
	switch at.kind {
	case atWithPrev:
		start = tl.lastAt + at.offset
	case atAbsolute:
		start = at.offset
	default:
		start = tl.lastEnd + at.offset
	}
	if start < 0 {
		start = 0
	}
	tl.lastAt = start
	tl.lastEnd = start + dur
	tl.end = max(tl.end, tl.lastEnd)
	tl.sorted = false
	return start
}

// Add appends a tween step.
func (tl *Timeline) Add(req TweenRequest, at At) *Timeline {
	start := tl.place(at, req.Duration)
	r := req
	tl.steps = append(tl.steps, timelineStep{start: start, end: start + req.Duration, req: &r, order: len(tl.steps)})
	return tl
}

// Call appends a callback step.
func (tl *Timeline) Call(fn func(), at At) *Timeline {
	start := tl.place(at, 0)
	tl.steps = append(tl.steps, timelineStep{start: start, end: start, fn: fn, order: len(tl.steps)})
	return tl
}

// OnDone sets a callback run once after the last step has finished.
func (tl *Timeline) OnDone(fn func()) *Timeline {
	tl.onDone = fn
	return tl
}

// Duration returns the unscaled timeline length in seconds.
func (tl *Timeline) Duration() float32 {
	return tl.end
}

// Done reports whether the timeline has played to the end.
func (tl *Timeline) Done() bool {
	return tl.done
}

// Len returns the number of steps.
func (tl *Timeline) Len() int {
	return len(tl.steps)
}

// Update advances the timeline by dt seconds and fires every step whose
// start time has been reached.
func (tl *Timeline) Update(dt float32) {
	if tl.done {
		return
	}
	if !tl.sorted {
		slices.SortStableFunc(tl.steps, func(a, b timelineStep) int {
			switch {
			case a.start < b.start:
				return -1
			case a.start > b.start:
				return 1
			default:
				return a.order - b.order
			}
		})
		tl.sorted = true
	}
	scale := tl.TimeScale
	if scale <= 0 {
		scale = 1
	}
	tl.time += dt * scale
	for tl.next < len(tl.steps) && tl.steps[tl.next].start <= tl.time {
		st := &tl.steps[tl.next]
		tl.next++
		st.fired = true
		if st.fn != nil {
			st.fn()
			continue
		}
		req := *st.req
		req.Duration /= scale
		tl.tweener.Tween(req)
	}
	if tl.next == len(tl.steps) && tl.time >= tl.end {
		tl.done = true
		if tl.onDone != nil {
			tl.onDone()
		}
	}
}
