package diorama

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestDefaultProfileValid(t *testing.T) {
	if err := DefaultProfile().Validate(); err != nil {
		t.Fatalf("DefaultProfile invalid: %v", err)
	}
}

func TestParseProfileOverrides(t *testing.T) {
	p, err := ParseProfile([]byte(`
fans:
  x_indices: [1]
  y_indices: [2]
  z_axis: y
hover:
  scale: 1.1
links:
  - key: Mastodon
    url: https://example.org/@room
`))
	if err != nil {
		t.Fatal(err)
	}
	if len(p.Fans.XIndices) != 1 || p.Fans.XIndices[0] != 1 {
		t.Errorf("XIndices = %v, want [1]", p.Fans.XIndices)
	}
	if p.Fans.ZAxis != AxisY {
		t.Errorf("ZAxis = %s, want y", p.Fans.ZAxis)
	}
	assertNear(t, "hover scale", p.Hover.Scale, 1.1)
	// Untouched fields keep their defaults.
	assertNear(t, "fish scale", p.Hover.FishScale, 1.2)
	if p.Fans.XRate != 0.03 {
		t.Errorf("XRate = %v, want default 0.03", p.Fans.XRate)
	}
	if len(p.Links) != 1 || p.Links[0].Key != "Mastodon" {
		t.Errorf("Links = %+v, want the override only", p.Links)
	}
}

func TestParseProfileErrors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want string
	}{
		{"syntax", "fans: [", "parse profile"},
		{"bad axis", "fans:\n  z_axis: w\n", `unknown axis "w"`},
		{"overlapping fans", "fans:\n  x_indices: [1, 2]\n  y_indices: [2]\n", "fan index 2"},
		{"zero hover scale", "hover:\n  scale: 0\n", "hover scale"},
		{"zero durations", "hover:\n  exit_duration: 0\n", "hover durations"},
		{"negative flames", "flames:\n  count: -1\n", "flame count"},
		{"empty flame bounds", "flames:\n  lower: 1\n  upper: 1\n", "flame bounds"},
		{"negative rise", "flames:\n  rise_min: -0.01\n", "flame rise"},
		{"negative jitter", "flames:\n  rise_jitter: -0.01\n", "flame rise"},
		{"zero time scale", "intro:\n  time_scale: 0\n", "time scale"},
		{"clip range", "camera:\n  far: 1\n", "clip range"},
		{"fov", "camera:\n  fov: 180\n", "fov"},
		{"empty link key", "links:\n  - url: https://example.org\n", "empty key"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseProfile([]byte(tt.yaml))
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("err = %v, want it to mention %q", err, tt.want)
			}
		})
	}
}

func TestLoadProfile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "room.yaml")
	if err := os.WriteFile(path, []byte("slow_spin_rate: 0.01\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	p, err := LoadProfile(path)
	if err != nil {
		t.Fatal(err)
	}
	assertNear(t, "slow spin rate", p.SlowSpinRate, 0.01)

	if _, err := LoadProfile(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("missing profile loaded")
	}
}

func TestAxisYAML(t *testing.T) {
	for _, a := range []Axis{AxisX, AxisY, AxisZ} {
		data, err := yaml.Marshal(struct {
			A Axis `yaml:"a"`
		}{a})
		if err != nil {
			t.Fatal(err)
		}
		if want := "a: " + a.String() + "\n"; string(data) != want {
			t.Errorf("Marshal(%s) = %q, want %q", a, data, want)
		}
		var back struct {
			A Axis `yaml:"a"`
		}
		if err := yaml.Unmarshal(data, &back); err != nil || back.A != a {
			t.Errorf("Unmarshal(%q) = %v, %v", data, back.A, err)
		}
	}
}

func TestFanConfigGroups(t *testing.T) {
	c := DefaultProfile().Fans
	tests := []struct {
		index int
		ok    bool
		want  Axis
	}{
		{2, true, AxisX},
		{3, true, AxisY},
		{9, true, AxisZ},
		{2, false, AxisZ},
	}
	for _, tt := range tests {
		if got := c.fanAxis(tt.index, tt.ok); got != tt.want {
			t.Errorf("fanAxis(%d, %v) = %s, want %s", tt.index, tt.ok, got, tt.want)
		}
	}
	if c.spinAxis(AxisZ) != c.ZAxis || c.spinAxis(AxisX) != AxisX {
		t.Error("spinAxis mismatch")
	}
	if c.rate(AxisY) != c.YRate {
		t.Error("rate mismatch")
	}
}
