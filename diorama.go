package diorama

import (
	"image/color"
	"math/rand/v2"
)

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
type Color struct {
	R, G, B, A float64
}

// ColorWhite is the default material tint.
var ColorWhite = Color{1, 1, 1, 1}

// Hex builds an opaque Color from a 0xRRGGBB value.
func Hex(rgb uint32) Color {
	return Color{
		R: float64((rgb>>16)&0xff) / 255,
		G: float64((rgb>>8)&0xff) / 255,
		B: float64(rgb&0xff) / 255,
		A: 1,
	}
}

// RGBA converts the color to a premultiplied color.RGBA.
func (c Color) RGBA() color.RGBA {
	return color.RGBA{
		R: uint8(clamp01(c.R*c.A) * 255),
		G: uint8(clamp01(c.G*c.A) * 255),
		B: uint8(clamp01(c.B*c.A) * 255),
		A: uint8(clamp01(c.A) * 255),
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// Range is a general-purpose min/max range.
type Range struct {
	Min, Max float64
}

// Random returns a random float64 in [Min, Max].
func (r Range) Random() float64 {
	if r.Min == r.Max {
		return r.Min
	}
	return r.Min + rand.Float64()*(r.Max-r.Min)
}

// randomFrom returns a random float64 in [Min, Max] drawn from rng.
func (r Range) randomFrom(rng *rand.Rand) float64 {
	if r.Min == r.Max {
		return r.Min
	}
	return r.Min + rng.Float64()*(r.Max-r.Min)
}

// Axis selects one of the three local rotation axes.
type Axis uint8

const (
	AxisX Axis = iota
	AxisY
	AxisZ
)

func (a Axis) String() string {
	switch a {
	case AxisX:
		return "x"
	case AxisY:
		return "y"
	case AxisZ:
		return "z"
	default:
		return "?"
	}
}

// AxisMask selects which components of a vector property a tween writes.
type AxisMask uint8

const (
	MaskX AxisMask = 1 << iota
	MaskY
	MaskZ

	MaskXYZ = MaskX | MaskY | MaskZ
)

// Has reports whether the mask includes the component for axis a.
func (m AxisMask) Has(a Axis) bool {
	return m&(1<<a) != 0
}

// EventType identifies a kind of event emitted to UI collaborators.
type EventType uint8

const (
	EventHoverEnter EventType = iota // the pointer started hovering a node
	EventHoverLeave                  // the hovered node lost hover
	EventAction                      // a click resolved to an action (link, modal, sound)
	EventCursor                      // the desired cursor shape changed
	EventModal                       // a modal opened or closed
	EventTheme                       // night mode toggled
	EventMute                        // mute toggled
	EventReady                       // classification finished, scene is steady-state capable
	eventTypeCount
)

func (t EventType) String() string {
	switch t {
	case EventHoverEnter:
		return "hover-enter"
	case EventHoverLeave:
		return "hover-leave"
	case EventAction:
		return "action"
	case EventCursor:
		return "cursor"
	case EventModal:
		return "modal"
	case EventTheme:
		return "theme"
	case EventMute:
		return "mute"
	case EventReady:
		return "ready"
	default:
		return "unknown"
	}
}

// ActionKind identifies what a click on an interactive node asks the UI to do.
type ActionKind uint8

const (
	ActionNone        ActionKind = iota
	ActionButtonSound            // play the button click sound
	ActionOpenLink               // open an external link (Event.URL)
	ActionOpenModal              // open a modal (Event.Modal)
)

func (a ActionKind) String() string {
	switch a {
	case ActionButtonSound:
		return "button-sound"
	case ActionOpenLink:
		return "open-link"
	case ActionOpenModal:
		return "open-modal"
	default:
		return "none"
	}
}

// ModalKind names one of the room's modals.
type ModalKind uint8

const (
	ModalNone ModalKind = iota
	ModalWork
	ModalAbout
	ModalContact
)

func (m ModalKind) String() string {
	switch m {
	case ModalWork:
		return "work"
	case ModalAbout:
		return "about"
	case ModalContact:
		return "contact"
	default:
		return "none"
	}
}

// CursorShape is the cursor the host should display.
type CursorShape uint8

const (
	CursorDefault CursorShape = iota
	CursorPointer
)
