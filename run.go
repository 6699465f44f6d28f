package diorama

import (
	"fmt"
	"os"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// RunConfig configures the window opened by Run.
type RunConfig struct {
	Title   string
	Width   int
	Height  int
	ShowFPS bool
	// OnEvent, if set, receives every scene event before Run's own
	// handling (cursor shape, link logging).
	OnEvent func(Event)
}

// orbitSpeed is radians of orbit per dragged pixel.
const orbitSpeed = 0.005

type gameShell struct {
	scene *Scene
	cfg   RunConfig
	fps   *fpsWidget

	dragging     bool
	dragX, dragY int
	lastTick     time.Time
	w, h         int
}

// Run opens a window and drives the scene with Ebitengine until the window
// closes. The scene must be Ready; Run calls Enter, samples mouse and touch
// input, and maps cursor events to the OS cursor. Keys: T toggles the
// theme, M toggles mute, Escape closes the open modal. Right-drag orbits
// the camera and the wheel dollies it.
func Run(scene *Scene, cfg RunConfig) error {
	if !scene.IsReady() {
		return ErrNotReady
	}
	if cfg.Width <= 0 {
		cfg.Width = 1280
	}
	if cfg.Height <= 0 {
		cfg.Height = 720
	}
	g := &gameShell{scene: scene, cfg: cfg}
	if cfg.ShowFPS {
		g.fps = newFPSWidget()
	}
	if _, ok := scene.input.(noInput); ok {
		scene.SetInputSource(NewEbitenInput())
	}
	scene.On(EventCursor, g.onCursor)
	scene.On(EventAction, g.onAction)
	if cfg.OnEvent != nil {
		for t := EventType(0); t < eventTypeCount; t++ {
			scene.On(t, cfg.OnEvent)
		}
	}
	if err := scene.Enter(); err != nil {
		return err
	}

	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	if err := ebiten.RunGame(g); err != nil {
		return fmt.Errorf("run: %w", err)
	}
	return nil
}

func (g *gameShell) onCursor(e Event) {
	if e.Cursor == CursorPointer {
		ebiten.SetCursorShape(ebiten.CursorShapePointer)
		return
	}
	ebiten.SetCursorShape(ebiten.CursorShapeDefault)
}

func (g *gameShell) onAction(e Event) {
	if e.Action == ActionOpenLink && g.cfg.OnEvent == nil {
		_, _ = fmt.Fprintf(os.Stderr, "[diorama] open %s\n", e.URL)
	}
}

func (g *gameShell) Update() error {
	s := g.scene
	if inpututil.IsKeyJustPressed(ebiten.KeyT) {
		s.ToggleTheme()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyM) {
		s.ToggleMute()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		s.CloseModal()
	}
	g.updateOrbit()

	now := time.Now()
	s.Tick(now)
	if g.fps != nil {
		dt := 0.0
		if !g.lastTick.IsZero() {
			dt = now.Sub(g.lastTick).Seconds()
		}
		g.fps.update(dt, s)
	}
	g.lastTick = now
	return nil
}

func (g *gameShell) updateOrbit() {
	cam := g.scene.camera
	mx, my := ebiten.CursorPosition()
	if ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight) {
		if g.dragging {
			cam.Orbit(-float64(mx-g.dragX)*orbitSpeed, -float64(my-g.dragY)*orbitSpeed)
		}
		g.dragging = true
		g.dragX, g.dragY = mx, my
	} else {
		g.dragging = false
	}
	if _, wy := ebiten.Wheel(); wy != 0 {
		cam.Dolly(1 - wy*0.1)
	}
}

func (g *gameShell) Draw(screen *ebiten.Image) {
	g.scene.Draw(screen)
	if g.fps != nil {
		g.fps.draw(screen)
	}
}

func (g *gameShell) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != g.w || outsideHeight != g.h {
		g.w, g.h = outsideWidth, outsideHeight
		g.scene.SetViewport(float64(outsideWidth), float64(outsideHeight))
	}
	return outsideWidth, outsideHeight
}
