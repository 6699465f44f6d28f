package diorama

import (
	"math"
	"math/rand/v2"
	"time"
)

// Driver advances the procedural motion of every registered animated
// entity. It is independent of hover state.
type Driver struct {
	reg   *Registry
	clock ClockConfig
	chair ChairConfig

	emitters []*FlameEmitter
	// SmokeMaterial receives the elapsed time every tick.
	SmokeMaterial *Material

	ticks uint64
}

// NewDriver creates a driver over a sealed registry and attaches a flame
// emitter to every flame anchor. rng may be nil.
func NewDriver(reg *Registry, p *Profile, rng *rand.Rand) *Driver {
	d := &Driver{reg: reg, clock: p.Clock, chair: p.Chair}
	for _, anchor := range reg.FlameAnchors() {
		e := anchor.Emitter
		if e == nil {
			e = AttachFlame(anchor, p.Flames, rng)
		}
		d.emitters = append(d.emitters, e)
	}
	return d
}

// Emitters returns the flame emitters in anchor order.
func (d *Driver) Emitters() []*FlameEmitter {
	return d.emitters
}

// Ticks returns how many times Step has run.
func (d *Driver) Ticks() uint64 {
	return d.ticks
}

// Step advances one tick. now is the wall clock reading used by the clock
// hands; elapsed is the session time in seconds used by time-based motion.
// Spin rates are per tick, not per second: a faster frame rate spins faster.
func (d *Driver) Step(now time.Time, elapsed float64) {
	d.ticks++
	for g := AxisX; g <= AxisZ; g++ {
		spin(d.reg.Fans(g))
	}
	spin(d.reg.SlowSpinners())

	d.updateClock(now)
	d.updateChair(elapsed)

	for _, e := range d.emitters {
		e.step()
	}
	if d.SmokeMaterial != nil {
		d.SmokeMaterial.Time = elapsed
	}
}

func spin(ss []Spinner) {
	for _, s := range ss {
		s.Node.Rotation[s.Axis] -= s.Rate
		s.Node.MarkDirty()
	}
}

// ClockAngles returns the hour and minute hand angles (radians, clockwise
// positive) for wall time now.
func ClockAngles(now time.Time, cfg ClockConfig) (hour, minute float64) {
	hours := math.Mod(float64(now.Hour())-cfg.HourOffset, 12)
	minutes := float64(now.Minute())
	seconds := float64(now.Second())
	minute = (minutes + seconds/60) * (2 * math.Pi / 60)
	hour = (hours+minutes/60)*(2*math.Pi/12) + cfg.HourPhase
	return hour, minute
}

func (d *Driver) updateClock(now time.Time) {
	hourHand := d.reg.ClockHand(HourHand)
	minuteHand := d.reg.ClockHand(MinuteHand)
	if hourHand == nil || minuteHand == nil {
		return
	}
	hour, minute := ClockAngles(now, d.clock)
	minuteHand.Rotation[AxisZ] = -minute
	hourHand.Rotation[AxisZ] = -hour
	minuteHand.MarkDirty()
	hourHand.MarkDirty()
}

// ChairOffset returns the chair's rotation.y offset from rest at time t
// seconds: a sinusoid whose peaks are flattened by the damping factor.
func ChairOffset(t float64, cfg ChairConfig) float64 {
	s := math.Sin(t * cfg.Frequency)
	return cfg.Amplitude * s * (1 - math.Abs(s)*cfg.Damping)
}

func (d *Driver) updateChair(elapsed float64) {
	chair := d.reg.Chair()
	if chair == nil || chair.Rest == nil {
		return
	}
	chair.Rotation[AxisY] = chair.Rest.Rotation.Y() + ChairOffset(elapsed, d.chair)
	chair.MarkDirty()
}
