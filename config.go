package diorama

import (
	"errors"
	"fmt"
	"math"
	"os"
	"slices"

	"gopkg.in/yaml.v3"
)

// Profile carries every tunable of a room: naming tokens, animation rates,
// hover feedback, intro and theme timings, and camera placement. Start from
// DefaultProfile and override fields, or load a YAML file over the defaults
// with LoadProfile.
type Profile struct {
	// TextureSets are the room material keys, in texture-set order. A mesh
	// whose name contains a key gets that set's shared material.
	TextureSets []string `yaml:"texture_sets"`
	// SlowSpinToken marks meshes that spin slowly about X.
	SlowSpinToken string  `yaml:"slow_spin_token"`
	SlowSpinRate  float64 `yaml:"slow_spin_rate"`

	Fans   FanConfig    `yaml:"fans"`
	Hover  HoverConfig  `yaml:"hover"`
	Links  []LinkConfig `yaml:"links"`
	Fish   FishConfig   `yaml:"fish"`
	Smoke  SmokeConfig  `yaml:"smoke"`
	Flames FlameConfig  `yaml:"flames"`
	Clock  ClockConfig  `yaml:"clock"`
	Chair  ChairConfig  `yaml:"chair"`
	Intro  IntroConfig  `yaml:"intro"`
	Theme  ThemeConfig  `yaml:"theme"`
	Camera CameraConfig `yaml:"camera"`
}

// FanConfig partitions fan indices into rotation groups. Rates are the
// per-tick decrement applied to the group's axis.
type FanConfig struct {
	XIndices []int   `yaml:"x_indices"`
	YIndices []int   `yaml:"y_indices"`
	XRate    float64 `yaml:"x_rate"`
	YRate    float64 `yaml:"y_rate"`
	ZRate    float64 `yaml:"z_rate"`
	// ZAxis is the axis the remaining fans spin about.
	ZAxis Axis `yaml:"z_axis"`
}

// HoverConfig controls hover enter/exit feedback.
type HoverConfig struct {
	Scale         float64 `yaml:"scale"`
	FishScale     float64 `yaml:"fish_scale"`
	EnterDuration float32 `yaml:"enter_duration"`
	ExitDuration  float32 `yaml:"exit_duration"`
	Overshoot     float32 `yaml:"overshoot"`
	// Tilt is the rotation.x offset (radians) applied to tilting buttons.
	Tilt float64 `yaml:"tilt"`
	// Lift is the position.y offset applied to name letters.
	Lift float64 `yaml:"lift"`
}

// LinkConfig maps a name token to an external URL.
type LinkConfig struct {
	Key string `yaml:"key"`
	URL string `yaml:"url"`
}

// FishConfig holds the fish position correction applied before its rest
// state is captured.
type FishConfig struct {
	Token string     `yaml:"token"`
	Nudge [3]float64 `yaml:"nudge,flow"`
}

// SmokeConfig places the smoke plume above the coffee cup.
type SmokeConfig struct {
	Offset     [3]float64 `yaml:"offset,flow"`
	HoverScale float64    `yaml:"hover_scale"`
}

// FlameConfig sizes the flame emitters and names their anchors.
type FlameConfig struct {
	Count      int                 `yaml:"count"`
	Spread     float64             `yaml:"spread"`
	Lower      float64             `yaml:"lower"`
	Upper      float64             `yaml:"upper"`
	RiseMin    float64             `yaml:"rise_min"`
	RiseJitter float64             `yaml:"rise_jitter"`
	Anchors    []FlameAnchorConfig `yaml:"anchors"`
}

// FlameAnchorConfig names a mesh that hosts a flame and the flame's rotation.
type FlameAnchorConfig struct {
	Name     string     `yaml:"name"`
	Rotation [3]float64 `yaml:"rotation,flow"`
}

// ClockConfig adjusts the wall clock reading.
type ClockConfig struct {
	HourOffset float64 `yaml:"hour_offset"`
	HourPhase  float64 `yaml:"hour_phase"`
}

// ChairConfig shapes the chair oscillation.
type ChairConfig struct {
	Amplitude float64 `yaml:"amplitude"`
	Frequency float64 `yaml:"frequency"`
	Damping   float64 `yaml:"damping"`
}

// IntroConfig times the reveal sequence.
type IntroConfig struct {
	TimeScale      float32 `yaml:"time_scale"`
	Duration       float32 `yaml:"duration"`
	Overshoot      float32 `yaml:"overshoot"`
	LetterLift     float64 `yaml:"letter_lift"`
	LetterDuration float32 `yaml:"letter_duration"`
}

// ThemeConfig holds the day and night palette.
type ThemeConfig struct {
	Duration   float32 `yaml:"duration"`
	DayWater   uint32  `yaml:"day_water"`
	NightWater uint32  `yaml:"night_water"`
	DayClear   uint32  `yaml:"day_clear"`
	NightClear uint32  `yaml:"night_clear"`
}

// CameraConfig places the perspective camera.
type CameraConfig struct {
	FOV              float64    `yaml:"fov"`
	Near             float64    `yaml:"near"`
	Far              float64    `yaml:"far"`
	Position         [3]float64 `yaml:"position,flow"`
	Target           [3]float64 `yaml:"target,flow"`
	MobilePosition   [3]float64 `yaml:"mobile_position,flow"`
	MobileTarget     [3]float64 `yaml:"mobile_target,flow"`
	MobileBreakpoint int        `yaml:"mobile_breakpoint"`
	MinDistance      float64    `yaml:"min_distance"`
	MaxDistance      float64    `yaml:"max_distance"`
}

// DefaultProfile returns the profile of the stock room.
func DefaultProfile() *Profile {
	return &Profile{
		TextureSets:   []string{"First", "Second", "Third", "Fourth", "Fifth", "Sixth"},
		SlowSpinToken: "Second",
		SlowSpinRate:  0.0005,
		Fans: FanConfig{
			XIndices: []int{2, 4, 6, 7},
			YIndices: []int{1, 3, 5},
			XRate:    0.03,
			YRate:    0.04,
			ZRate:    0.03,
			ZAxis:    AxisZ,
		},
		Hover: HoverConfig{
			Scale:         1.4,
			FishScale:     1.2,
			EnterDuration: 0.5,
			ExitDuration:  0.3,
			Overshoot:     2,
			Tilt:          math.Pi / 10,
			Lift:          0.2,
		},
		Links: []LinkConfig{
			{Key: "GitHub", URL: "https://github.com/#"},
			{Key: "YouTube", URL: "https://instagram.com/razornez"},
		},
		Fish: FishConfig{Token: "Fish_Fourth", Nudge: [3]float64{0.04, 0, -0.03}},
		Smoke: SmokeConfig{
			Offset:     [3]float64{0, 0.2, 0},
			HoverScale: 1.4,
		},
		Flames: FlameConfig{
			Count:      200,
			Spread:     0.4,
			Lower:      -1.2,
			Upper:      0.2,
			RiseMin:    0.003,
			RiseJitter: 0.002,
			Anchors: []FlameAnchorConfig{
				{Name: "First_Flame1", Rotation: [3]float64{math.Pi / 2, 0, 0}},
				{Name: "First_Flame2", Rotation: [3]float64{math.Pi / 2, math.Pi / 4, 0}},
				{Name: "First_Flame3", Rotation: [3]float64{math.Pi / 2, -math.Pi / 4, 0}},
			},
		},
		Clock: ClockConfig{HourOffset: 1.5, HourPhase: 0.8},
		Chair: ChairConfig{Amplitude: math.Pi / 8, Frequency: 0.5, Damping: 0.3},
		Intro: IntroConfig{
			TimeScale:      0.8,
			Duration:       0.8,
			Overshoot:      1.8,
			LetterLift:     0.3,
			LetterDuration: 0.4,
		},
		Theme: ThemeConfig{
			Duration:   1.5,
			DayWater:   0x558bc8,
			NightWater: 0x0a1e3f,
			DayClear:   0xd9cad1,
			NightClear: 0x0a0a23,
		},
		Camera: CameraConfig{
			FOV:              35,
			Near:             5.1,
			Far:              100000,
			Position:         [3]float64{32.49173098423395, 11.108969527553887, 22.850992894238058},
			Target:           [3]float64{20.4624746759408973, 13.5719940043010387, 5.3300979125494505},
			MobilePosition:   [3]float64{72.49173098423395, 41.108969527553887, 72.850992894238058},
			MobileTarget:     [3]float64{30.4624746759408973, 13.5719940043010387, 5.3300979125494505},
			MobileBreakpoint: 768,
			MinDistance:      5,
			MaxDistance:      85,
		},
	}
}

// LoadProfile reads a YAML profile from path and applies it over the defaults.
func LoadProfile(path string) (*Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read profile: %w", err)
	}
	return ParseProfile(data)
}

// ParseProfile decodes YAML profile data over the defaults and validates it.
func ParseProfile(data []byte) (*Profile, error) {
	p := DefaultProfile()
	if err := yaml.Unmarshal(data, p); err != nil {
		return nil, fmt.Errorf("parse profile: %w", err)
	}
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("validate profile: %w", err)
	}
	return p, nil
}

// Validate reports the first inconsistency found in the profile.
func (p *Profile) Validate() error {
	for _, i := range p.Fans.XIndices {
		if slices.Contains(p.Fans.YIndices, i) {
			return fmt.Errorf("fan index %d is in both x and y groups", i)
		}
	}
	if p.Hover.Scale <= 0 || p.Hover.FishScale <= 0 {
		return errors.New("hover scale must be positive")
	}
	if p.Hover.EnterDuration <= 0 || p.Hover.ExitDuration <= 0 {
		return errors.New("hover durations must be positive")
	}
	if p.Flames.Count < 0 {
		return fmt.Errorf("flame count %d is negative", p.Flames.Count)
	}
	if p.Flames.Lower >= p.Flames.Upper {
		return fmt.Errorf("flame bounds [%g, %g] are empty", p.Flames.Lower, p.Flames.Upper)
	}
	if p.Flames.RiseMin < 0 || p.Flames.RiseJitter < 0 {
		return errors.New("flame rise must not be negative")
	}
	if p.Intro.TimeScale <= 0 {
		return errors.New("intro time scale must be positive")
	}
	if p.Camera.Near <= 0 || p.Camera.Far <= p.Camera.Near {
		return fmt.Errorf("camera clip range [%g, %g] is invalid", p.Camera.Near, p.Camera.Far)
	}
	if p.Camera.FOV <= 0 || p.Camera.FOV >= 180 {
		return fmt.Errorf("camera fov %g out of range", p.Camera.FOV)
	}
	for _, l := range p.Links {
		if l.Key == "" {
			return errors.New("link with empty key")
		}
	}
	return nil
}

// fanAxis returns the rotation group of a fan index.
func (c *FanConfig) fanAxis(index int, ok bool) Axis {
	if ok {
		if slices.Contains(c.XIndices, index) {
			return AxisX
		}
		if slices.Contains(c.YIndices, index) {
			return AxisY
		}
	}
	return AxisZ
}

// rate returns the per-tick decrement for a fan group.
func (c *FanConfig) rate(group Axis) float64 {
	switch group {
	case AxisX:
		return c.XRate
	case AxisY:
		return c.YRate
	default:
		return c.ZRate
	}
}

// spinAxis returns the axis a fan group rotates about.
func (c *FanConfig) spinAxis(group Axis) Axis {
	if group == AxisZ {
		return c.ZAxis
	}
	return group
}

// UnmarshalYAML accepts "x", "y", or "z".
func (a *Axis) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	switch s {
	case "x", "X":
		*a = AxisX
	case "y", "Y":
		*a = AxisY
	case "z", "Z":
		*a = AxisZ
	default:
		return fmt.Errorf("unknown axis %q", s)
	}
	return nil
}

// MarshalYAML writes the axis as its letter.
func (a Axis) MarshalYAML() (any, error) {
	return a.String(), nil
}
