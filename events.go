package diorama

// Event is the payload delivered to UI collaborators.
type Event struct {
	Type EventType
	// Node is the entity the event concerns, if any.
	Node  *Node
	Roles RoleSet

	// Action fields (EventAction)
	Action ActionKind
	URL    string
	Modal  ModalKind

	// Cursor is valid for EventCursor.
	Cursor CursorShape
	// Open is valid for EventModal.
	Open bool
	// Night is valid for EventTheme.
	Night bool
	// Muted is valid for EventMute.
	Muted bool
}

// EventSink receives every event the scene emits. Set one on a Scene to
// forward events to an external system (see the ecs sub-module).
type EventSink interface {
	Emit(event Event)
}

// EventSinkFunc adapts a function to EventSink.
type EventSinkFunc func(Event)

// Emit implements EventSink.
func (f EventSinkFunc) Emit(e Event) { f(e) }

type eventHandler struct {
	id uint32
	fn func(Event)
}

type handlerRegistry struct {
	byType [eventTypeCount][]eventHandler
	nextID uint32
}

// CallbackHandle allows removing a registered scene-level callback.
type CallbackHandle struct {
	id    uint32
	reg   *handlerRegistry
	event EventType
}

// Remove unregisters this callback so it no longer fires.
// The entry is removed from the slice to avoid nil iteration waste.
func (h CallbackHandle) Remove() {
	if h.reg == nil || h.event >= eventTypeCount {
		return
	}
	s := h.reg.byType[h.event]
	for i := range s {
		if s[i].id == h.id {
			copy(s[i:], s[i+1:])
			s[len(s)-1] = eventHandler{}
			h.reg.byType[h.event] = s[:len(s)-1]
			return
		}
	}
}

func (r *handlerRegistry) add(t EventType, fn func(Event)) CallbackHandle {
	r.nextID++
	id := r.nextID
	r.byType[t] = append(r.byType[t], eventHandler{id: id, fn: fn})
	return CallbackHandle{id: id, reg: r, event: t}
}

func (r *handlerRegistry) fire(e Event) {
	if e.Type >= eventTypeCount {
		return
	}
	for _, h := range r.byType[e.Type] {
		h.fn(e)
	}
}

// --- Scene-level event registration ---

// On registers a callback for any event type.
func (s *Scene) On(t EventType, fn func(Event)) CallbackHandle {
	return s.handlers.add(t, fn)
}

// OnHoverEnter registers a callback fired when a node gains hover.
func (s *Scene) OnHoverEnter(fn func(Event)) CallbackHandle {
	return s.handlers.add(EventHoverEnter, fn)
}

// OnHoverLeave registers a callback fired when a node loses hover.
func (s *Scene) OnHoverLeave(fn func(Event)) CallbackHandle {
	return s.handlers.add(EventHoverLeave, fn)
}

// OnAction registers a callback fired when a click resolves to an action.
func (s *Scene) OnAction(fn func(Event)) CallbackHandle {
	return s.handlers.add(EventAction, fn)
}

// OnCursor registers a callback fired when the desired cursor changes.
func (s *Scene) OnCursor(fn func(Event)) CallbackHandle {
	return s.handlers.add(EventCursor, fn)
}

// OnTheme registers a callback fired when night mode toggles.
func (s *Scene) OnTheme(fn func(Event)) CallbackHandle {
	return s.handlers.add(EventTheme, fn)
}

// emit delivers e to the scene callbacks and then to the sink.
func (s *Scene) emit(e Event) {
	s.handlers.fire(e)
	if s.sink != nil {
		s.sink.Emit(e)
	}
	if s.debug {
		s.debugEvent(e)
	}
}
