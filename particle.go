package diorama

import (
	"math/rand/v2"

	"github.com/go-gl/mathgl/mgl64"
)

// flameParticle holds per-particle state. Unexported; managed by FlameEmitter.
type flameParticle struct {
	x, y, z float64
	size    float64
}

// FlameEmitter is a fixed-capacity particle pool rising along local +Y.
// Particles that climb past the upper bound respawn below the emitter; the
// pool never grows or shrinks.
type FlameEmitter struct {
	// Node is the points node the particles are drawn relative to.
	Node *Node

	cfg       FlameConfig
	particles []flameParticle
	respawn   Range
	rng       *rand.Rand
}

// NewFlameEmitter creates an emitter with cfg.Count particles scattered
// below the origin. rng may be nil to use the global source.
func NewFlameEmitter(cfg FlameConfig, rng *rand.Rand) *FlameEmitter {
	count := cfg.Count
	if count < 0 {
		count = 0
	}
	e := &FlameEmitter{
		cfg:       cfg,
		particles: make([]flameParticle, count),
		respawn:   Range{Min: cfg.Lower, Max: min(max(0, cfg.Lower), cfg.Upper)},
		rng:       rng,
	}
	spread := Range{Min: -cfg.Spread / 2, Max: cfg.Spread / 2}
	size := Range{Min: 10, Max: 20}
	for i := range e.particles {
		p := &e.particles[i]
		p.x = e.random(spread)
		p.y = e.random(e.respawn)
		p.z = e.random(spread)
		p.size = e.random(size)
	}
	return e
}

// AttachFlame creates a flame emitter under anchor: a points node rotated by
// the anchor's EmitterRotation, added as the anchor's child.
func AttachFlame(anchor *Node, cfg FlameConfig, rng *rand.Rand) *FlameEmitter {
	e := NewFlameEmitter(cfg, rng)
	pts := &Node{Name: anchor.Name + "_Flame", Type: NodeTypePoints}
	nodeDefaults(pts)
	pts.Rotation = anchor.EmitterRotation
	pts.Emitter = e
	e.Node = pts
	anchor.AddChild(pts)
	anchor.Emitter = e
	return e
}

func (e *FlameEmitter) random(r Range) float64 {
	if e.rng != nil {
		return r.randomFrom(e.rng)
	}
	return r.Random()
}

// Len returns the pool size.
func (e *FlameEmitter) Len() int {
	return len(e.particles)
}

// Bounds returns the vertical range every particle stays within.
func (e *FlameEmitter) Bounds() (lower, upper float64) {
	return e.cfg.Lower, e.cfg.Upper
}

// Particle returns the local position of particle i.
func (e *FlameEmitter) Particle(i int) mgl64.Vec3 {
	p := &e.particles[i]
	return mgl64.Vec3{p.x, p.y, p.z}
}

// Size returns the point size of particle i.
func (e *FlameEmitter) Size(i int) float64 {
	return e.particles[i].size
}

// step advances every particle by one tick.
func (e *FlameEmitter) step() {
	rise := Range{Min: e.cfg.RiseMin, Max: e.cfg.RiseMin + e.cfg.RiseJitter}
	for i := range e.particles {
		p := &e.particles[i]
		p.y += e.random(rise)
		if p.y > e.cfg.Upper {
			p.y = e.random(e.respawn)
		}
	}
}
