package diorama

// InjectMove queues a pointer move to the given screen coordinates. Injected
// events are consumed one per tick, in order.
func (s *Scene) InjectMove(x, y float64) {
	s.injectQueue = append(s.injectQueue, PointerEvent{Kind: PointerMove, X: x, Y: y})
}

// InjectClick queues a move to (x, y) followed by a mouse click there.
// Consumes two ticks, so the hover state settles before the click.
func (s *Scene) InjectClick(x, y float64) {
	s.InjectMove(x, y)
	s.injectQueue = append(s.injectQueue, PointerEvent{Kind: PointerClick, X: x, Y: y})
}

// InjectTouchStart queues a finger touching down at (x, y).
func (s *Scene) InjectTouchStart(x, y float64) {
	s.injectQueue = append(s.injectQueue, PointerEvent{Kind: PointerTouchStart, X: x, Y: y})
}

// InjectTouchEnd queues a finger lifting at (x, y) with remaining fingers
// still down.
func (s *Scene) InjectTouchEnd(x, y float64, remaining int) {
	s.injectQueue = append(s.injectQueue, PointerEvent{Kind: PointerTouchEnd, X: x, Y: y, Touches: remaining})
}

// InjectTap queues a single-finger tap: touch down then lift. Consumes two
// ticks.
func (s *Scene) InjectTap(x, y float64) {
	s.InjectTouchStart(x, y)
	s.InjectTouchEnd(x, y, 0)
}

// InjectDrag queues a move sequence from (fromX, fromY) to (toX, toY),
// linearly interpolated over the given number of ticks (minimum 2).
func (s *Scene) InjectDrag(fromX, fromY, toX, toY float64, frames int) {
	if frames < 2 {
		frames = 2
	}
	for i := 0; i < frames; i++ {
		t := float64(i) / float64(frames-1)
		s.InjectMove(fromX+(toX-fromX)*t, fromY+(toY-fromY)*t)
	}
}

// Pending returns the number of injected events not yet consumed.
func (s *Scene) Pending() int {
	return len(s.injectQueue)
}

// drainInjected pops one injected event. When one is consumed it replaces
// the real input of this tick.
func (s *Scene) drainInjected(buf []PointerEvent) []PointerEvent {
	if len(s.injectQueue) == 0 {
		return buf
	}
	ev := s.injectQueue[0]
	copy(s.injectQueue, s.injectQueue[1:])
	s.injectQueue = s.injectQueue[:len(s.injectQueue)-1]
	return append(buf[:0], ev)
}
