package diorama

import (
	"math"
	"testing"
	"time"
)

func TestClockAngles(t *testing.T) {
	cfg := DefaultProfile().Clock
	tests := []struct {
		name         string
		h, m, s      int
		hour, minute float64
	}{
		{"half past ten", 10, 30, 0, 1.5*math.Pi + 0.8, math.Pi},
		{"quarter past", 4, 15, 30, (2.5+0.25)*math.Pi/6 + 0.8, (15 + 0.5) * math.Pi / 30},
		{"before offset", 1, 0, 0, -0.5*math.Pi/6 + 0.8, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			now := time.Date(2024, 1, 1, tt.h, tt.m, tt.s, 0, time.UTC)
			hour, minute := ClockAngles(now, cfg)
			assertNear(t, "hour", hour, tt.hour)
			assertNear(t, "minute", minute, tt.minute)
		})
	}
}

func TestDriverSetsClockHands(t *testing.T) {
	reg, nodes := classifyNames(t, nil, "Clock_Hour_Hand", "Clock_Minute_Hand")
	d := NewDriver(reg, DefaultProfile(), nil)
	now := time.Date(2024, 1, 1, 10, 30, 0, 0, time.UTC)
	d.Step(now, 0)
	assertNear(t, "minute z", nodes["Clock_Minute_Hand"].Rotation.Z(), -math.Pi)
	assertNear(t, "hour z", nodes["Clock_Hour_Hand"].Rotation.Z(), -(1.5*math.Pi + 0.8))

	// Absolute, not accumulated: the same time gives the same angle.
	d.Step(now, 0)
	assertNear(t, "minute z again", nodes["Clock_Minute_Hand"].Rotation.Z(), -math.Pi)
}

func TestDriverClockNeedsBothHands(t *testing.T) {
	reg, nodes := classifyNames(t, nil, "Clock_Hour_Hand")
	NewDriver(reg, DefaultProfile(), nil).Step(time.Date(2024, 1, 1, 10, 30, 0, 0, time.UTC), 0)
	if z := nodes["Clock_Hour_Hand"].Rotation.Z(); z != 0 {
		t.Errorf("lone hour hand rotated to %v", z)
	}
}

func TestChairOffset(t *testing.T) {
	cfg := DefaultProfile().Chair
	assertNear(t, "t=0", ChairOffset(0, cfg), 0)
	// sin(0.5t) peaks at t = pi, where the damping flattens the swing.
	assertNear(t, "peak", ChairOffset(math.Pi, cfg), cfg.Amplitude*(1-cfg.Damping))
	assertNear(t, "trough", ChairOffset(3*math.Pi, cfg), -cfg.Amplitude*(1-cfg.Damping))

	for ts := 0.0; ts < 30; ts += 0.1 {
		if v := ChairOffset(ts, cfg); math.Abs(v) > cfg.Amplitude {
			t.Fatalf("ChairOffset(%v) = %v exceeds amplitude", ts, v)
		}
	}
}

func TestDriverChairFromRest(t *testing.T) {
	root := NewGroup("Scene")
	chair := boxAt("Chair_Top", 0, 0, 0)
	chair.SetRotation(0, 0.5, 0)
	root.AddChild(chair)
	p := DefaultProfile()
	reg := Classify(root, p, nil)
	d := NewDriver(reg, p, nil)

	d.Step(time.Now(), math.Pi)
	assertNear(t, "rotation.y", chair.Rotation.Y(), 0.5+p.Chair.Amplitude*(1-p.Chair.Damping))
	d.Step(time.Now(), 0)
	assertNear(t, "rotation.y at t=0", chair.Rotation.Y(), 0.5)
}

func TestDriverSmokeTime(t *testing.T) {
	reg, _ := classifyNames(t, nil, "Plant_Hover")
	d := NewDriver(reg, DefaultProfile(), nil)
	m := &Material{Kind: MaterialSmoke}
	d.SmokeMaterial = m
	d.Step(time.Now(), 12.5)
	assertNear(t, "smoke time", m.Time, 12.5)
}
