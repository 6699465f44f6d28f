package diorama

import "github.com/go-gl/mathgl/mgl64"

// HoverObserver is notified with the hover machine's target after every
// update. Observers react in parallel to the primary hover feedback and
// never change hover state.
type HoverObserver interface {
	ObserveHover(current *Node)
}

// HoverMachine tracks at most one hovered node. Its states are Idle
// (Current() == nil) and Hovering(n). Transitions fire only when the target
// identity changes; the old node's exit is always issued before the new
// node's enter.
type HoverMachine struct {
	cfg     HoverConfig
	tweener Tweener
	emit    func(Event)

	current   *Node
	observers []HoverObserver

	enters, exits int
}

// NewHoverMachine creates an idle machine issuing feedback tweens to tw.
// emit may be nil.
func NewHoverMachine(tw Tweener, cfg HoverConfig, emit func(Event)) *HoverMachine {
	return &HoverMachine{cfg: cfg, tweener: tw, emit: emit}
}

// AddObserver registers an observer.
func (h *HoverMachine) AddObserver(o HoverObserver) {
	h.observers = append(h.observers, o)
}

// Current returns the hovered node, or nil when idle.
func (h *HoverMachine) Current() *Node {
	return h.current
}

// Idle reports whether nothing is hovered.
func (h *HoverMachine) Idle() bool {
	return h.current == nil
}

// Counts returns how many enter and exit animations have been issued.
func (h *HoverMachine) Counts() (enters, exits int) {
	return h.enters, h.exits
}

// HoverTarget picks the hover target from one intersection result.
//
// The topmost hit wins when it is hoverable. When the topmost hit is not
// hoverable but a hoverable node lies further along the ray, the current
// target is kept. With no hoverable hit at all the result is nil.
func HoverTarget(hits []Hit, current *Node) *Node {
	if len(hits) == 0 {
		return nil
	}
	if top := hits[0].Node; top.Roles.Has(RoleHoverable) {
		return top
	}
	for _, hit := range hits[1:] {
		if hit.Node.Roles.Has(RoleHoverable) {
			return current
		}
	}
	return nil
}

// Update feeds one intersection result to the machine.
// It reports whether the hover target changed.
func (h *HoverMachine) Update(hits []Hit) bool {
	changed := h.set(HoverTarget(hits, h.current))
	h.notify()
	return changed
}

// ForceIdle exits the current hover, if any.
func (h *HoverMachine) ForceIdle() bool {
	changed := h.set(nil)
	h.notify()
	return changed
}

func (h *HoverMachine) set(target *Node) bool {
	if target == h.current {
		return false
	}
	if prev := h.current; prev != nil {
		h.current = nil
		h.exit(prev)
	}
	if target != nil {
		h.current = target
		h.enter(target)
	}
	return true
}

func (h *HoverMachine) notify() {
	for _, o := range h.observers {
		o.ObserveHover(h.current)
	}
}

func (h *HoverMachine) enter(n *Node) {
	h.enters++
	rest := n.Baseline()
	h.tweener.Kill(n, PropScale, PropRotation, PropPosition)

	mult := h.cfg.Scale
	if n.Roles.Has(RoleFish) {
		mult = h.cfg.FishScale
	}
	ez := BackOut(h.cfg.Overshoot)
	dur := h.cfg.EnterDuration
	h.tweener.Tween(TweenRequest{
		Node: n, Property: PropScale, To: rest.Scale.Mul(mult),
		Duration: dur, Ease: ez,
	})
	if n.Roles.Has(RoleTilting) {
		h.tweener.Tween(TweenRequest{
			Node: n, Property: PropRotation, Mask: MaskX,
			To:       mgl64.Vec3{rest.Rotation.X() + n.TiltSign*h.cfg.Tilt, 0, 0},
			Duration: dur, Ease: ez,
		})
	}
	if n.Roles.Has(RoleNameLetter) {
		h.tweener.Tween(TweenRequest{
			Node: n, Property: PropPosition, Mask: MaskY,
			To:       mgl64.Vec3{0, rest.Position.Y() + h.cfg.Lift, 0},
			Duration: dur, Ease: ez,
		})
	}
	if h.emit != nil {
		h.emit(Event{Type: EventHoverEnter, Node: n, Roles: n.Roles})
	}
}

func (h *HoverMachine) exit(n *Node) {
	h.exits++
	rest := n.Baseline()
	h.tweener.Kill(n, PropScale, PropRotation, PropPosition)

	ez := BackOut(h.cfg.Overshoot)
	dur := h.cfg.ExitDuration
	h.tweener.Tween(TweenRequest{
		Node: n, Property: PropScale, To: rest.Scale,
		Duration: dur, Ease: ez,
	})
	if n.Roles.Has(RoleTilting) {
		h.tweener.Tween(TweenRequest{
			Node: n, Property: PropRotation, Mask: MaskX,
			To:       rest.Rotation,
			Duration: dur, Ease: ez,
		})
	}
	if n.Roles.Has(RoleNameLetter) {
		h.tweener.Tween(TweenRequest{
			Node: n, Property: PropPosition, Mask: MaskY,
			To:       rest.Position,
			Duration: dur, Ease: ez,
		})
	}
	if h.emit != nil {
		h.emit(Event{Type: EventHoverLeave, Node: n, Roles: n.Roles})
	}
}
