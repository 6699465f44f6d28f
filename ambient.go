package diorama

import "github.com/go-gl/mathgl/mgl64"

// AmbientChannel scales a target node while a source node is hovered. It
// observes the hover machine and drives its own scale tweens on the target,
// independent of the primary hover feedback.
type AmbientChannel struct {
	Source *Node
	Target *Node

	tweener Tweener
	cfg     HoverConfig
	scale   float64
	rest    mgl64.Vec3
	active  bool
}

// NewAmbientChannel creates a channel growing target to scale (uniformly,
// relative to its current scale) while source is the hover target.
func NewAmbientChannel(tw Tweener, source, target *Node, scale float64, cfg HoverConfig) *AmbientChannel {
	a := &AmbientChannel{Source: source, Target: target, tweener: tw, cfg: cfg, scale: scale}
	if target != nil {
		a.rest = target.Scale
	}
	return a
}

// Active reports whether the target is in its hovered state.
func (a *AmbientChannel) Active() bool {
	return a.active
}

// ObserveHover implements HoverObserver.
func (a *AmbientChannel) ObserveHover(current *Node) {
	if a.Source == nil || a.Target == nil {
		return
	}
	on := current == a.Source
	if on == a.active {
		return
	}
	a.active = on
	a.tweener.Kill(a.Target, PropScale)
	to, dur := a.rest, a.cfg.ExitDuration
	if on {
		to, dur = a.rest.Mul(a.scale), a.cfg.EnterDuration
	}
	a.tweener.Tween(TweenRequest{
		Node: a.Target, Property: PropScale, To: to,
		Duration: dur, Ease: BackOut(a.cfg.Overshoot),
	})
}
