package diorama

import "strings"

// Role tags a node with a behavior. Roles are derived from node names during
// classification and never change afterwards.
type Role uint8

const (
	RoleSocialLink     Role = iota // opens an external link on click
	RoleModalTrigger               // opens a modal on click
	RoleHoverable                  // eligible for hover feedback
	RoleRotatingFan                // spins every tick (Node.FanAxis)
	RoleClockHand                  // follows the wall clock (Node.ClockHand)
	RoleNameLetter                 // bouncing name letter (Node.LetterIndex)
	RoleParticleAnchor             // hosts a flame emitter
	RoleWaterSurface               // translucent water material
	RoleGlassSurface               // shared glass material
	RoleScreenSurface              // video screen (Node.ScreenChannel)
	RoleLightFixture               // emissive bulb with a point light
	RoleInteractive                // raycastable without hover feedback
	RolePointerCursor              // shows the pointer cursor when topmost
	RoleButton                     // plays the click sound
	RoleTilting                    // tilts about X on hover (Node.TiltSign)
	RoleFish                       // uses the reduced hover multiplier
	RoleSmokeSource                // the coffee cup the smoke follows
	RoleChair                      // oscillating chair top
	RoleSlowSpin                   // slow continuous X spin
	RoleRoomSurface                // day/night texture-set material
	roleCount
)

var roleNames = [roleCount]string{
	RoleSocialLink:     "social-link",
	RoleModalTrigger:   "modal-trigger",
	RoleHoverable:      "hoverable",
	RoleRotatingFan:    "rotating-fan",
	RoleClockHand:      "clock-hand",
	RoleNameLetter:     "name-letter",
	RoleParticleAnchor: "particle-anchor",
	RoleWaterSurface:   "water",
	RoleGlassSurface:   "glass",
	RoleScreenSurface:  "screen",
	RoleLightFixture:   "light",
	RoleInteractive:    "interactive",
	RolePointerCursor:  "pointer-cursor",
	RoleButton:         "button",
	RoleTilting:        "tilting",
	RoleFish:           "fish",
	RoleSmokeSource:    "smoke-source",
	RoleChair:          "chair",
	RoleSlowSpin:       "slow-spin",
	RoleRoomSurface:    "room-surface",
}

func (r Role) String() string {
	if r < roleCount {
		return roleNames[r]
	}
	return "unknown"
}

// RoleSet is a bitmask of roles. The zero value is the empty set.
type RoleSet uint32

// Roles builds a set from the given roles.
func Roles(rs ...Role) RoleSet {
	var s RoleSet
	for _, r := range rs {
		s = s.With(r)
	}
	return s
}

// Has reports whether r is in the set.
func (s RoleSet) Has(r Role) bool {
	return s&(1<<r) != 0
}

// With returns the set with r added.
func (s RoleSet) With(r Role) RoleSet {
	return s | 1<<r
}

// Empty reports whether the set holds no roles.
func (s RoleSet) Empty() bool {
	return s == 0
}

// Each calls fn for every role in the set in ascending order.
func (s RoleSet) Each(fn func(Role)) {
	for r := Role(0); r < roleCount; r++ {
		if s.Has(r) {
			fn(r)
		}
	}
}

func (s RoleSet) String() string {
	var parts []string
	s.Each(func(r Role) { parts = append(parts, r.String()) })
	return "{" + strings.Join(parts, ",") + "}"
}

// ClockHandKind distinguishes the hands of the wall clock.
type ClockHandKind uint8

const (
	HourHand ClockHandKind = iota
	MinuteHand
)

// ScreenChannel identifies which video feed a screen surface shows.
type ScreenChannel uint8

const (
	ScreenMain ScreenChannel = iota
	ScreenPortrait
	ScreenCPU
	ScreenMini
	ScreenTV
	ScreenPhone
)

// RevealGroup names the intro timeline a zeroed node belongs to.
type RevealGroup uint8

const (
	RevealNone RevealGroup = iota
	RevealSocial
	RevealFlowers
	RevealBoxes
	RevealLetters
)
