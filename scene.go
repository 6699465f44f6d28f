package diorama

import (
	"errors"
	"math/rand/v2"
	"time"

	"github.com/go-gl/mathgl/mgl64"
)

var (
	// ErrNoScene is returned by Ready when the asset graph is missing.
	ErrNoScene = errors.New("diorama: no scene graph")
	// ErrNotReady is returned by Enter before Ready has succeeded.
	ErrNotReady = errors.New("diorama: scene is not ready")
)

// maxTickDelta caps the tween step after a stall (tab suspended, debugger).
const maxTickDelta = 0.25

// InteractionContext is the mutable interaction state of a session. Only the
// scene's tick and its synchronous handlers write it.
type InteractionContext struct {
	// Pointer is the last sampled pointer position in NDC.
	Pointer mgl64.Vec2
	// PointerActive is false until the first pointer sample and again after
	// the last touch lifts.
	PointerActive bool
	// ModalOpen suspends pointer sampling and picking.
	ModalOpen bool
	Modal     ModalKind
	// Suspended is true from Ready until Enter (the loading screen).
	Suspended bool
	// Hits is this tick's intersection result, topmost first.
	Hits   []Hit
	Cursor CursorShape
}

// Blocked reports whether pointer input is currently ignored.
func (c *InteractionContext) Blocked() bool {
	return c.ModalOpen || c.Suspended
}

// Scene is the top-level session object. It owns the asset graph, the
// classified registry, the interaction state, and every animation source.
type Scene struct {
	profile   *Profile
	root      *Node
	camera    *Camera
	materials *MaterialLibrary
	registry  *Registry

	ctx      InteractionContext
	resolver Resolver
	hover    *HoverMachine
	ambient  *AmbientChannel
	driver   *Driver

	animator  *Animator
	tweener   Tweener
	timelines []*Timeline

	smoke *Node
	theme themeState
	prefs *PrefsStore

	input       InputSource
	injectQueue []PointerEvent
	eventBuf    []PointerEvent

	handlers handlerRegistry
	sink     EventSink
	debug    bool
	rng      *rand.Rand

	// ClearColor is the background the host clears to each frame.
	ClearColor Color

	testRunner      *TestRunner
	screenshotQueue []string
	// ScreenshotDir is the directory screenshots are written to.
	ScreenshotDir string

	ready   bool
	entered bool
	start   time.Time
	last    time.Time
	frames  uint64
}

// NewScene creates a scene for the given profile (nil uses DefaultProfile).
// The scene does nothing until Ready is called with the loaded graph.
func NewScene(p *Profile) *Scene {
	if p == nil {
		p = DefaultProfile()
	}
	anim := NewAnimator()
	s := &Scene{
		profile:       p,
		camera:        NewCamera(p.Camera, Rect{Width: 1280, Height: 720}),
		animator:      anim,
		tweener:       anim,
		input:         noInput{},
		ClearColor:    Hex(p.Theme.DayClear),
		ScreenshotDir: "screenshots",
	}
	s.ctx.Suspended = true
	return s
}

// Profile returns the scene's profile.
func (s *Scene) Profile() *Profile { return s.profile }

// Root returns the asset graph root, or nil before Ready.
func (s *Scene) Root() *Node { return s.root }

// Camera returns the scene camera.
func (s *Scene) Camera() *Camera { return s.camera }

// Registry returns the classified registry, or nil before Ready.
func (s *Scene) Registry() *Registry { return s.registry }

// Materials returns the material library, or nil before Ready.
func (s *Scene) Materials() *MaterialLibrary { return s.materials }

// Hover returns the hover machine, or nil before Ready.
func (s *Scene) Hover() *HoverMachine { return s.hover }

// Driver returns the animation driver, or nil before Ready.
func (s *Scene) Driver() *Driver { return s.driver }

// Animator returns the built-in tween engine.
func (s *Scene) Animator() *Animator { return s.animator }

// Smoke returns the smoke plume node, or nil when the graph has no smoke
// source.
func (s *Scene) Smoke() *Node { return s.smoke }

// Context returns the interaction state. The returned pointer MUST NOT be
// written by the caller.
func (s *Scene) Context() *InteractionContext { return &s.ctx }

// IsReady reports whether Ready has succeeded.
func (s *Scene) IsReady() bool { return s.ready }

// SetTweener replaces the tween collaborator. The built-in Animator keeps
// being advanced by Tick but receives no new requests.
func (s *Scene) SetTweener(tw Tweener) {
	if tw == nil {
		tw = s.animator
	}
	s.tweener = tw
}

// SetEventSink sets the optional event forwarder.
func (s *Scene) SetEventSink(sink EventSink) {
	s.sink = sink
}

// SetInputSource sets where pointer events are sampled from.
func (s *Scene) SetInputSource(in InputSource) {
	if in == nil {
		in = noInput{}
	}
	s.input = in
}

// SetRand sets the random source for particles. Must be called before Ready.
func (s *Scene) SetRand(rng *rand.Rand) {
	s.rng = rng
}

// SetDebugMode enables or disables debug mode. When enabled, classification
// counts, events, and periodic tick stats are logged to stderr.
func (s *Scene) SetDebugMode(enabled bool) {
	s.debug = enabled
}

// SetViewport resizes the camera viewport.
func (s *Scene) SetViewport(width, height float64) {
	s.camera.SetViewport(Rect{Width: width, Height: height})
}

// Ready classifies the loaded graph and prepares every subsystem. It is the
// "all assets ready" signal: Tick does nothing until Ready succeeds. The
// scene stays suspended (pointer input ignored) until Enter.
func (s *Scene) Ready(root *Node) error {
	if root == nil {
		return ErrNoScene
	}
	if s.ready {
		return errors.New("diorama: scene already initialized")
	}
	s.root = root
	s.materials = NewMaterialLibrary(s.profile.TextureSets)
	s.registry = Classify(root, s.profile, s.materials)

	s.hover = NewHoverMachine(s.tweener, s.profile.Hover, s.emit)
	s.smoke = s.attachSmoke()
	if s.smoke != nil {
		s.ambient = NewAmbientChannel(s.tweener, s.registry.SmokeSource(), s.smoke, s.profile.Smoke.HoverScale, s.profile.Hover)
		s.hover.AddObserver(s.ambient)
	}
	s.driver = NewDriver(s.registry, s.profile, s.rng)
	s.driver.SmokeMaterial = s.materials.Smoke
	root.UpdateWorld()

	s.restorePrefs()
	s.ready = true
	s.debugClassification()
	s.emit(Event{Type: EventReady})
	return nil
}

// attachSmoke creates the smoke plume beside the smoke source.
func (s *Scene) attachSmoke() *Node {
	src := s.registry.SmokeSource()
	if src == nil {
		return nil
	}
	smoke := NewMesh("Smoke", AABB{
		Min: mgl64.Vec3{-0.165, 0, -0.165},
		Max: mgl64.Vec3{0.165, 1, 0.165},
	})
	smoke.Material = s.materials.Smoke
	smoke.Position = src.Position.Add(mgl64.Vec3(s.profile.Smoke.Offset))
	parent := src.Parent
	if parent == nil {
		parent = s.root
	}
	if parent == src {
		return nil
	}
	parent.AddChild(smoke)
	return smoke
}

// Enter leaves the loading screen: pointer input is accepted and the intro
// reveal plays. Calling Enter twice is a no-op.
func (s *Scene) Enter() error {
	if !s.ready {
		return ErrNotReady
	}
	if s.entered {
		return nil
	}
	s.entered = true
	s.ctx.Suspended = false
	s.playIntro()
	return nil
}

// OpenModal opens a modal: hover is forced idle, hits are cleared, the
// cursor resets, orbiting stops, and pointer sampling is suspended until
// CloseModal.
func (s *Scene) OpenModal(kind ModalKind) {
	if s.hover != nil {
		s.hover.ForceIdle()
	}
	s.ctx.Hits = nil
	s.ctx.ModalOpen = true
	s.ctx.Modal = kind
	s.setCursor(CursorDefault)
	s.camera.OrbitEnabled = false
	s.emit(Event{Type: EventModal, Modal: kind, Open: true})
}

// CloseModal closes the open modal and resumes pointer sampling.
func (s *Scene) CloseModal() {
	if !s.ctx.ModalOpen {
		return
	}
	kind := s.ctx.Modal
	s.ctx.ModalOpen = false
	s.ctx.Modal = ModalNone
	s.camera.OrbitEnabled = true
	s.emit(Event{Type: EventModal, Modal: kind, Open: false})
}

// ModalOpen reports whether a modal is open.
func (s *Scene) ModalOpen() bool {
	return s.ctx.ModalOpen
}

// Tick runs one frame of the session: input sampling, picking, hover,
// click dispatch, procedural animation, then tweens and timelines. now is
// the frame timestamp; the first Tick starts the session clock.
func (s *Scene) Tick(now time.Time) {
	if !s.ready {
		return
	}
	if s.start.IsZero() {
		s.start = now
		s.last = now
	}
	dt := float32(now.Sub(s.last).Seconds())
	if dt < 0 {
		dt = 0
	}
	if dt > maxTickDelta {
		dt = maxTickDelta
	}
	s.last = now
	s.frames++

	if s.testRunner != nil {
		s.testRunner.step(s)
	}

	s.root.UpdateWorld()
	s.eventBuf = s.input.Poll(s.eventBuf[:0])
	s.eventBuf = s.drainInjected(s.eventBuf)
	s.interact(&s.ctx, s.eventBuf)

	s.driver.Step(now, now.Sub(s.start).Seconds())
	s.camera.update(dt)
	s.animator.Update(dt)
	s.updateTimelines(dt)
	s.root.UpdateWorld()

	s.debugTick()
}

// pendingClick is a click or touch-end waiting for this tick's hit result.
type pendingClick struct {
	touch   bool
	touches int
}

// interact applies this tick's pointer events, resolves hits and hover,
// then dispatches clicks against the fresh result.
func (s *Scene) interact(ctx *InteractionContext, events []PointerEvent) {
	var clicks [4]pendingClick
	pending := clicks[:0]
	for _, ev := range events {
		switch ev.Kind {
		case PointerMove:
			ctx.Pointer = s.ndc(ev)
			ctx.PointerActive = true
		case PointerTouchStart:
			if ctx.Blocked() {
				continue
			}
			ctx.Pointer = s.ndc(ev)
			ctx.PointerActive = true
		case PointerClick:
			if ctx.Blocked() {
				continue
			}
			ctx.Pointer = s.ndc(ev)
			ctx.PointerActive = true
			pending = append(pending, pendingClick{})
		case PointerTouchEnd:
			if ctx.Blocked() {
				continue
			}
			pending = append(pending, pendingClick{touch: true, touches: ev.Touches})
		}
	}

	if ctx.Blocked() {
		ctx.Hits = nil
		return
	}
	if ctx.PointerActive {
		ray := s.camera.Ray(ctx.Pointer.X(), ctx.Pointer.Y())
		ctx.Hits = s.resolver.Intersect(ray, s.registry.InteractionSet())
		s.hover.Update(ctx.Hits)
		s.updateCursor(ctx)
	}

	for _, c := range pending {
		s.dispatchClick(ctx)
		if ctx.ModalOpen {
			return
		}
		if c.touch && c.touches == 0 {
			s.hover.ForceIdle()
			ctx.PointerActive = false
			ctx.Hits = nil
			s.setCursor(CursorDefault)
		}
	}
}

func (s *Scene) ndc(ev PointerEvent) mgl64.Vec2 {
	x, y := s.camera.ScreenToNDC(ev.X, ev.Y)
	return mgl64.Vec2{x, y}
}

func (s *Scene) updateCursor(ctx *InteractionContext) {
	shape := CursorDefault
	if len(ctx.Hits) > 0 && ctx.Hits[0].Node.Roles.Has(RolePointerCursor) {
		shape = CursorPointer
	}
	s.setCursor(shape)
}

func (s *Scene) setCursor(shape CursorShape) {
	if s.ctx.Cursor == shape {
		return
	}
	s.ctx.Cursor = shape
	s.emit(Event{Type: EventCursor, Cursor: shape})
}

// dispatchClick turns a click on the topmost hit into actions.
func (s *Scene) dispatchClick(ctx *InteractionContext) {
	if len(ctx.Hits) == 0 {
		return
	}
	n := ctx.Hits[0].Node
	if n.Roles.Has(RoleButton) {
		s.emit(Event{Type: EventAction, Node: n, Roles: n.Roles, Action: ActionButtonSound})
	}
	if n.Roles.Has(RoleSocialLink) {
		if url := s.linkURL(n.LinkKey); url != "" {
			s.emit(Event{Type: EventAction, Node: n, Roles: n.Roles, Action: ActionOpenLink, URL: url})
		}
	}
	if n.Roles.Has(RoleModalTrigger) && n.Modal != ModalNone {
		s.emit(Event{Type: EventAction, Node: n, Roles: n.Roles, Action: ActionOpenModal, Modal: n.Modal})
		s.OpenModal(n.Modal)
	}
}

func (s *Scene) linkURL(key string) string {
	for _, l := range s.profile.Links {
		if l.Key == key {
			return l.URL
		}
	}
	return ""
}

// play starts a timeline on the next tick.
func (s *Scene) play(tl *Timeline) {
	s.timelines = append(s.timelines, tl)
}

func (s *Scene) updateTimelines(dt float32) {
	running := s.timelines
	s.timelines = nil
	var live []*Timeline
	for _, tl := range running {
		tl.Update(dt)
		if !tl.Done() {
			live = append(live, tl)
		}
	}
	// Timelines started by callbacks during this update run from next tick.
	s.timelines = append(live, s.timelines...)
}

// Playing reports whether any timeline is still running.
func (s *Scene) Playing() bool {
	return len(s.timelines) > 0
}
