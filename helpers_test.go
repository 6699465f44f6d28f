package diorama

import (
	"math"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl64"
)

const epsilon = 1e-9

func assertNear(t *testing.T, name string, got, want float64) {
	t.Helper()
	if math.Abs(got-want) > epsilon {
		t.Errorf("%s = %v, want %v", name, got, want)
	}
}

func assertVec(t *testing.T, name string, got, want mgl64.Vec3, tol float64) {
	t.Helper()
	for i := range got {
		if math.Abs(got[i]-want[i]) > tol {
			t.Errorf("%s = %v, want %v", name, got, want)
			return
		}
	}
}

// tweenCall records one Tweener call. Kill calls have a nil req.
type tweenCall struct {
	req    *TweenRequest
	target any
	props  []Property
}

// recordingTweener is a Tweener that records calls and animates nothing.
type recordingTweener struct {
	calls []tweenCall
}

func (r *recordingTweener) Tween(req TweenRequest) {
	r.calls = append(r.calls, tweenCall{req: &req, target: req.target()})
}

func (r *recordingTweener) Kill(target any, props ...Property) {
	r.calls = append(r.calls, tweenCall{target: target, props: props})
}

// tweens returns the recorded tween requests in order.
func (r *recordingTweener) tweens() []TweenRequest {
	var out []TweenRequest
	for _, c := range r.calls {
		if c.req != nil {
			out = append(out, *c.req)
		}
	}
	return out
}

func (r *recordingTweener) reset() {
	r.calls = r.calls[:0]
}

// boxAt creates a unit cube mesh centered at (x, y, z).
func boxAt(name string, x, y, z float64) *Node {
	n := NewMesh(name, Box(mgl64.Vec3{}, mgl64.Vec3{0.5, 0.5, 0.5}))
	n.SetPosition(x, y, z)
	return n
}

// newTestScene readies a scene over the given meshes with a 200x200
// viewport and the camera on +Z looking at the origin, so the screen center
// (100, 100) casts a ray down -Z through the origin.
func newTestScene(t *testing.T, meshes ...*Node) *Scene {
	t.Helper()
	root := NewGroup("Scene")
	for _, m := range meshes {
		root.AddChild(m)
	}
	s := NewScene(nil)
	s.SetViewport(200, 200)
	s.Camera().LookAt(mgl64.Vec3{0, 0, 10}, mgl64.Vec3{})
	if err := s.Ready(root); err != nil {
		t.Fatalf("Ready: %v", err)
	}
	return s
}

// testClock feeds Scene.Tick with 16ms frames.
type testClock struct {
	now time.Time
}

func newTestClock() *testClock {
	return &testClock{now: time.Date(2024, 3, 1, 10, 30, 0, 0, time.UTC)}
}

func (c *testClock) tick(s *Scene, n int) {
	for i := 0; i < n; i++ {
		c.now = c.now.Add(16 * time.Millisecond)
		s.Tick(c.now)
	}
}

// eventLog collects every event of a scene.
type eventLog struct {
	events []Event
}

func (l *eventLog) Emit(e Event) { l.events = append(l.events, e) }

func (l *eventLog) ofType(t EventType) []Event {
	var out []Event
	for _, e := range l.events {
		if e.Type == t {
			out = append(out, e)
		}
	}
	return out
}
