package diorama

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Property names an independently cancellable animated property.
type Property uint8

const (
	PropScale    Property = iota // Node.Scale
	PropRotation                 // Node.Rotation
	PropPosition                 // Node.Position
	PropMixRatio                 // Material.MixRatio (To[0])
	PropColor                    // Material.Color RGB
)

func (p Property) String() string {
	switch p {
	case PropScale:
		return "scale"
	case PropRotation:
		return "rotation"
	case PropPosition:
		return "position"
	case PropMixRatio:
		return "mix-ratio"
	case PropColor:
		return "color"
	default:
		return "unknown"
	}
}

// EaseKind identifies an easing curve.
type EaseKind uint8

const (
	EaseLinear EaseKind = iota
	EaseBackOut
	EaseBackIn
	EaseInOutQuad
	EaseInOutCubic
)

// Ease is an easing identifier with its parameter (overshoot for back
// curves).
type Ease struct {
	Kind  EaseKind
	Param float32
}

// BackOut overshoots the destination by the given amount before settling.
func BackOut(overshoot float32) Ease { return Ease{Kind: EaseBackOut, Param: overshoot} }

// Power2InOut accelerates then decelerates along a cubic curve.
func Power2InOut() Ease { return Ease{Kind: EaseInOutCubic} }

// Func returns the gween easing function for e.
func (e Ease) Func() ease.TweenFunc {
	switch e.Kind {
	case EaseBackOut:
		return backOut(e.Param)
	case EaseBackIn:
		return backIn(e.Param)
	case EaseInOutQuad:
		return ease.InOutQuad
	case EaseInOutCubic:
		return ease.InOutCubic
	default:
		return ease.Linear
	}
}

func backOut(s float32) ease.TweenFunc {
	if s == 0 {
		s = 1.70158
	}
	return func(t, b, c, d float32) float32 {
		t = t/d - 1
		return c*(t*t*((s+1)*t+s)+1) + b
	}
}

func backIn(s float32) ease.TweenFunc {
	if s == 0 {
		s = 1.70158
	}
	return func(t, b, c, d float32) float32 {
		t /= d
		return c*t*t*((s+1)*t-s) + b
	}
}

// TweenRequest is a declarative animation: drive one property of a target to
// To over Duration seconds.
type TweenRequest struct {
	// Node is the target of scale, rotation and position tweens.
	Node *Node
	// Material is the target of mix-ratio and color tweens.
	Material *Material
	Property Property
	To       mgl64.Vec3
	// Mask selects the components written. Zero means all.
	Mask       AxisMask
	Duration   float32
	Ease       Ease
	OnComplete func()
}

// target returns the object the request animates.
func (r *TweenRequest) target() any {
	if r.Property == PropMixRatio || r.Property == PropColor {
		return r.Material
	}
	return r.Node
}

// Tweener is the animation collaborator. Tween starts a request, replacing
// any in-flight tween on the same target and property. Kill cancels the
// in-flight tweens of target on the given properties (all when none are
// given), leaving each property at its last written value.
type Tweener interface {
	Tween(req TweenRequest)
	Kill(target any, props ...Property)
}

type tweenKey struct {
	target any
	prop   Property
}

// tweenTask animates up to 3 float64 fields at once.
type tweenTask struct {
	key        tweenKey
	tweens     [3]*gween.Tween
	fields     [3]*float64
	to         [3]float64
	count      int
	node       *Node
	onComplete func()
	done       bool
}

func (t *tweenTask) update(dt float32) {
	if t.node != nil && t.node.IsDisposed() {
		t.done = true
		return
	}
	allDone := true
	for i := 0; i < t.count; i++ {
		val, finished := t.tweens[i].Update(dt)
		if finished {
			// gween runs in float32; land on the exact target.
			*t.fields[i] = t.to[i]
			continue
		}
		*t.fields[i] = float64(val)
		allDone = false
	}
	t.done = allDone
	if t.node != nil {
		t.node.MarkDirty()
	}
}

// Animator is the default Tweener, backed by gween. There is no global
// animation manager: the owner calls Update once per tick.
type Animator struct {
	tasks []*tweenTask
	byKey map[tweenKey]*tweenTask
}

// NewAnimator creates an empty Animator.
func NewAnimator() *Animator {
	return &Animator{byKey: make(map[tweenKey]*tweenTask)}
}

// Tween implements Tweener.
func (a *Animator) Tween(req TweenRequest) {
	key := tweenKey{target: req.target(), prop: req.Property}
	if key.target == nil || key.target == (*Node)(nil) || key.target == (*Material)(nil) {
		return
	}
	a.Kill(key.target, req.Property)

	fields := requestFields(&req)
	mask := req.Mask
	if mask == 0 {
		mask = MaskXYZ
	}
	task := &tweenTask{key: key, node: req.Node, onComplete: req.OnComplete}
	fn := req.Ease.Func()
	for axis := AxisX; axis <= AxisZ; axis++ {
		if fields[axis] == nil || !mask.Has(axis) {
			continue
		}
		from := *fields[axis]
		if req.Duration <= 0 {
			*fields[axis] = req.To[axis]
			continue
		}
		task.tweens[task.count] = gween.New(float32(from), float32(req.To[axis]), req.Duration, fn)
		task.fields[task.count] = fields[axis]
		task.to[task.count] = req.To[axis]
		task.count++
	}
	if req.Node != nil {
		req.Node.MarkDirty()
	}
	if task.count == 0 {
		if req.OnComplete != nil {
			req.OnComplete()
		}
		return
	}
	a.tasks = append(a.tasks, task)
	a.byKey[key] = task
}

// requestFields returns pointers to the components a request writes.
func requestFields(req *TweenRequest) [3]*float64 {
	switch req.Property {
	case PropScale:
		return [3]*float64{&req.Node.Scale[0], &req.Node.Scale[1], &req.Node.Scale[2]}
	case PropRotation:
		return [3]*float64{&req.Node.Rotation[0], &req.Node.Rotation[1], &req.Node.Rotation[2]}
	case PropPosition:
		return [3]*float64{&req.Node.Position[0], &req.Node.Position[1], &req.Node.Position[2]}
	case PropMixRatio:
		return [3]*float64{&req.Material.MixRatio}
	case PropColor:
		return [3]*float64{&req.Material.Color.R, &req.Material.Color.G, &req.Material.Color.B}
	}
	return [3]*float64{}
}

// Kill implements Tweener.
func (a *Animator) Kill(target any, props ...Property) {
	if len(props) == 0 {
		for p := PropScale; p <= PropColor; p++ {
			a.kill(tweenKey{target, p})
		}
		return
	}
	for _, p := range props {
		a.kill(tweenKey{target, p})
	}
}

func (a *Animator) kill(key tweenKey) {
	t, ok := a.byKey[key]
	if !ok {
		return
	}
	t.done = true
	delete(a.byKey, key)
}

// Active reports whether target has an in-flight tween on prop.
func (a *Animator) Active(target any, prop Property) bool {
	_, ok := a.byKey[tweenKey{target, prop}]
	return ok
}

// Len returns the number of in-flight tweens.
func (a *Animator) Len() int {
	return len(a.byKey)
}

// Update advances every in-flight tween by dt seconds. Completion callbacks
// run after the finished tweens are removed, so a callback may start a new
// tween on the same property.
func (a *Animator) Update(dt float32) {
	var finished []*tweenTask
	live := a.tasks[:0]
	for _, t := range a.tasks {
		if !t.done {
			t.update(dt)
			if t.done {
				finished = append(finished, t)
			}
		}
		if t.done {
			if a.byKey[t.key] == t {
				delete(a.byKey, t.key)
			}
			continue
		}
		live = append(live, t)
	}
	clear(a.tasks[len(live):])
	a.tasks = live
	for _, t := range finished {
		if t.onComplete != nil {
			t.onComplete()
		}
	}
}
