package diorama

import "github.com/go-gl/mathgl/mgl64"

// themeState holds the user toggles that outlive a tick.
type themeState struct {
	night bool
	muted bool
}

// Night reports whether night mode is on.
func (s *Scene) Night() bool { return s.theme.night }

// Muted reports whether sound is muted.
func (s *Scene) Muted() bool { return s.theme.muted }

// ToggleTheme flips between day and night, blending the room textures over
// the configured duration. It plays the button sound like any button.
func (s *Scene) ToggleTheme() {
	s.emit(Event{Type: EventAction, Action: ActionButtonSound})
	s.SetNight(!s.theme.night, true)
}

// SetNight switches night mode. With animate the room blend and water tint
// tween to the new palette; otherwise they jump. The background switches
// immediately either way.
func (s *Scene) SetNight(night, animate bool) {
	changed := s.theme.night != night
	s.theme.night = night
	s.applyTheme(animate)
	if changed {
		s.emit(Event{Type: EventTheme, Night: night})
		s.savePrefs()
	}
}

func (s *Scene) applyTheme(animate bool) {
	cfg := s.profile.Theme
	mix, water, clear := 0.0, Hex(cfg.DayWater), Hex(cfg.DayClear)
	if s.theme.night {
		mix, water, clear = 1, Hex(cfg.NightWater), Hex(cfg.NightClear)
	}
	s.ClearColor = clear
	if s.materials == nil {
		return
	}
	dur := cfg.Duration
	if !animate {
		dur = 0
	}
	for _, m := range s.materials.Room {
		s.tweener.Tween(TweenRequest{
			Material: m, Property: PropMixRatio,
			To: mgl64.Vec3{mix}, Mask: MaskX,
			Duration: dur, Ease: Power2InOut(),
		})
	}
	for _, m := range s.materials.Waters() {
		s.tweener.Tween(TweenRequest{
			Material: m, Property: PropColor,
			To:       mgl64.Vec3{water.R, water.G, water.B},
			Duration: dur, Ease: Power2InOut(),
		})
	}
}

// ToggleMute flips the mute flag and plays the button sound (audible only
// when unmuting).
func (s *Scene) ToggleMute() {
	s.SetMuted(!s.theme.muted)
	s.emit(Event{Type: EventAction, Action: ActionButtonSound})
}

// SetMuted sets the mute flag.
func (s *Scene) SetMuted(muted bool) {
	if s.theme.muted == muted {
		return
	}
	s.theme.muted = muted
	s.emit(Event{Type: EventMute, Muted: muted})
	s.savePrefs()
}
