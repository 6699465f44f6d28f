package diorama

import (
	"slices"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// PointerKind identifies a pointer event.
type PointerKind uint8

const (
	PointerMove       PointerKind = iota // the pointer moved (mouse)
	PointerClick                         // mouse click released
	PointerTouchStart                    // a finger touched down
	PointerTouchEnd                      // a finger lifted
)

func (k PointerKind) String() string {
	switch k {
	case PointerMove:
		return "move"
	case PointerClick:
		return "click"
	case PointerTouchStart:
		return "touch-start"
	case PointerTouchEnd:
		return "touch-end"
	default:
		return "unknown"
	}
}

// PointerEvent is one sampled pointer event in screen coordinates.
type PointerEvent struct {
	Kind PointerKind
	X, Y float64
	// Touches is the number of fingers still down after a touch-end.
	Touches int
}

// InputSource supplies the pointer events of one tick.
type InputSource interface {
	// Poll appends this tick's events to buf and returns it.
	Poll(buf []PointerEvent) []PointerEvent
}

// ebitenInput reads mouse and touch state from Ebitengine.
type ebitenInput struct {
	lastX, lastY int
	seen         bool
	touchBuf     []ebiten.TouchID
}

// NewEbitenInput returns the InputSource backed by Ebitengine's mouse and
// touch state.
func NewEbitenInput() InputSource {
	return &ebitenInput{}
}

// Poll implements InputSource.
func (in *ebitenInput) Poll(buf []PointerEvent) []PointerEvent {
	mx, my := ebiten.CursorPosition()
	if !in.seen || mx != in.lastX || my != in.lastY {
		// Ebitengine reports (0, 0) before the cursor ever enters the window.
		if in.seen || mx != 0 || my != 0 {
			buf = append(buf, PointerEvent{Kind: PointerMove, X: float64(mx), Y: float64(my)})
			in.seen = true
		}
		in.lastX, in.lastY = mx, my
	}
	if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) {
		buf = append(buf, PointerEvent{Kind: PointerClick, X: float64(mx), Y: float64(my)})
	}

	in.touchBuf = inpututil.AppendJustPressedTouchIDs(in.touchBuf[:0])
	for _, id := range in.touchBuf {
		tx, ty := ebiten.TouchPosition(id)
		buf = append(buf, PointerEvent{Kind: PointerTouchStart, X: float64(tx), Y: float64(ty)})
	}

	in.touchBuf = inpututil.AppendJustReleasedTouchIDs(in.touchBuf[:0])
	if len(in.touchBuf) > 0 {
		ids := slices.Clone(in.touchBuf)
		remaining := len(ebiten.AppendTouchIDs(in.touchBuf[:0]))
		for _, id := range ids {
			tx, ty := inpututil.TouchPositionInPreviousTick(id)
			buf = append(buf, PointerEvent{
				Kind: PointerTouchEnd, X: float64(tx), Y: float64(ty), Touches: remaining,
			})
		}
	}
	return buf
}

// scriptedInput replays a fixed queue of events, one tick at a time.
// Used by tests and the test runner when no window is present.
type scriptedInput struct {
	ticks [][]PointerEvent
}

// Poll implements InputSource.
func (in *scriptedInput) Poll(buf []PointerEvent) []PointerEvent {
	if len(in.ticks) == 0 {
		return buf
	}
	buf = append(buf, in.ticks[0]...)
	in.ticks = in.ticks[1:]
	return buf
}

// noInput never produces events.
type noInput struct{}

func (noInput) Poll(buf []PointerEvent) []PointerEvent { return buf }
