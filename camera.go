package diorama

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Rect is an axis-aligned screen rectangle.
type Rect struct {
	X, Y, Width, Height float64
}

// Ray is a half-line in world space. Dir is unit length.
type Ray struct {
	Origin mgl64.Vec3
	Dir    mgl64.Vec3
}

// At returns the point at distance t along the ray.
func (r Ray) At(t float64) mgl64.Vec3 {
	return r.Origin.Add(r.Dir.Mul(t))
}

// flyAnim holds active fly-to tweens for camera position and target.
type flyAnim struct {
	from, toPos mgl64.Vec3
	fromT, toT  mgl64.Vec3
	tween       *gween.Tween
}

// Camera is a perspective camera orbiting a target point.
type Camera struct {
	Position mgl64.Vec3
	Target   mgl64.Vec3
	Up       mgl64.Vec3

	// FOV is the vertical field of view in degrees.
	FOV       float64
	Near, Far float64
	// Viewport is the screen-space rectangle this camera renders into.
	Viewport Rect

	// OrbitEnabled gates Orbit and Dolly. The scene disables it while a
	// modal is open.
	OrbitEnabled bool
	MinDistance  float64
	MaxDistance  float64
	// Polar and azimuth limits, radians.
	MinPolar, MaxPolar     float64
	MinAzimuth, MaxAzimuth float64

	view, proj, invViewProj mgl64.Mat4
	dirty                   bool

	fly *flyAnim
}

// NewCamera creates a camera from profile camera settings.
func NewCamera(cfg CameraConfig, viewport Rect) *Camera {
	c := &Camera{
		Up:           mgl64.Vec3{0, 1, 0},
		FOV:          cfg.FOV,
		Near:         cfg.Near,
		Far:          cfg.Far,
		Viewport:     viewport,
		OrbitEnabled: true,
		MinDistance:  cfg.MinDistance,
		MaxDistance:  cfg.MaxDistance,
		MinPolar:     math.Pi / 4,
		MaxPolar:     math.Pi / 2,
		MinAzimuth:   0,
		MaxAzimuth:   math.Pi / 2,
		dirty:        true,
	}
	c.Position, c.Target = cameraPreset(cfg, viewport.Width)
	return c
}

// cameraPreset picks the desktop or mobile placement for a viewport width.
func cameraPreset(cfg CameraConfig, width float64) (pos, target mgl64.Vec3) {
	if cfg.MobileBreakpoint > 0 && width < float64(cfg.MobileBreakpoint) {
		return mgl64.Vec3(cfg.MobilePosition), mgl64.Vec3(cfg.MobileTarget)
	}
	return mgl64.Vec3(cfg.Position), mgl64.Vec3(cfg.Target)
}

// Aspect returns the viewport aspect ratio, or 1 for an empty viewport.
func (c *Camera) Aspect() float64 {
	if c.Viewport.Height <= 0 {
		return 1
	}
	return c.Viewport.Width / c.Viewport.Height
}

// SetViewport resizes the camera viewport.
func (c *Camera) SetViewport(vp Rect) {
	c.Viewport = vp
	c.dirty = true
}

// LookAt places the camera and its target immediately, cancelling any flight.
func (c *Camera) LookAt(pos, target mgl64.Vec3) {
	c.Position = pos
	c.Target = target
	c.fly = nil
	c.dirty = true
}

// FlyTo animates position and target over duration seconds.
func (c *Camera) FlyTo(pos, target mgl64.Vec3, duration float32, easeFn ease.TweenFunc) {
	c.fly = &flyAnim{
		from: c.Position, toPos: pos,
		fromT: c.Target, toT: target,
		tween: gween.New(0, 1, duration, easeFn),
	}
}

// Flying reports whether a FlyTo is in progress.
func (c *Camera) Flying() bool {
	return c.fly != nil
}

// update advances an active flight. Called from Scene.Tick.
func (c *Camera) update(dt float32) {
	if c.fly == nil {
		return
	}
	t, done := c.fly.tween.Update(dt)
	f := float64(t)
	c.Position = c.fly.from.Add(c.fly.toPos.Sub(c.fly.from).Mul(f))
	c.Target = c.fly.fromT.Add(c.fly.toT.Sub(c.fly.fromT).Mul(f))
	if done {
		c.Position, c.Target = c.fly.toPos, c.fly.toT
		c.fly = nil
	}
	c.dirty = true
}

// Distance returns the distance from the camera to its target.
func (c *Camera) Distance() float64 {
	return c.Position.Sub(c.Target).Len()
}

// Orbit rotates the camera about its target by the given azimuth and polar
// deltas (radians), clamped to the configured limits. No-op while
// OrbitEnabled is false.
func (c *Camera) Orbit(dAzimuth, dPolar float64) {
	if !c.OrbitEnabled {
		return
	}
	r, polar, azimuth := c.spherical()
	polar = clamp(polar+dPolar, c.MinPolar, c.MaxPolar)
	azimuth = clamp(azimuth+dAzimuth, c.MinAzimuth, c.MaxAzimuth)
	c.setSpherical(r, polar, azimuth)
}

// Dolly scales the distance to the target by factor, clamped to
// [MinDistance, MaxDistance]. No-op while OrbitEnabled is false.
func (c *Camera) Dolly(factor float64) {
	if !c.OrbitEnabled || factor <= 0 {
		return
	}
	r, polar, azimuth := c.spherical()
	c.setSpherical(clamp(r*factor, c.MinDistance, c.MaxDistance), polar, azimuth)
}

// spherical returns the camera offset from the target as radius, polar angle
// from +Y, and azimuth about +Y measured from +Z.
func (c *Camera) spherical() (r, polar, azimuth float64) {
	off := c.Position.Sub(c.Target)
	r = off.Len()
	if r == 0 {
		return 0, 0, 0
	}
	polar = math.Acos(clamp(off.Y()/r, -1, 1))
	azimuth = math.Atan2(off.X(), off.Z())
	return r, polar, azimuth
}

func (c *Camera) setSpherical(r, polar, azimuth float64) {
	sp := math.Sin(polar)
	off := mgl64.Vec3{
		r * sp * math.Sin(azimuth),
		r * math.Cos(polar),
		r * sp * math.Cos(azimuth),
	}
	c.Position = c.Target.Add(off)
	c.dirty = true
}

func (c *Camera) computeMatrices() {
	if !c.dirty {
		return
	}
	c.view = mgl64.LookAtV(c.Position, c.Target, c.Up)
	c.proj = mgl64.Perspective(mgl64.DegToRad(c.FOV), c.Aspect(), c.Near, c.Far)
	c.invViewProj = c.proj.Mul4(c.view).Inv()
	c.dirty = false
}

// MarkDirty forces matrix recomputation after fields were set directly.
func (c *Camera) MarkDirty() {
	c.dirty = true
}

// ViewProjection returns projection * view.
func (c *Camera) ViewProjection() mgl64.Mat4 {
	c.computeMatrices()
	return c.proj.Mul4(c.view)
}

// Ray builds the world-space ray through normalized device coordinates
// (ndcX, ndcY), both in [-1, 1] with +Y up. The ray starts at the camera
// position, so hit distances are measured from the eye.
func (c *Camera) Ray(ndcX, ndcY float64) Ray {
	c.computeMatrices()
	p := c.invViewProj.Mul4x1(mgl64.Vec4{ndcX, ndcY, 0.5, 1})
	if p.W() != 0 {
		p = p.Mul(1 / p.W())
	}
	dir := p.Vec3().Sub(c.Position)
	if dir.Len() == 0 {
		dir = c.Target.Sub(c.Position)
	}
	return Ray{Origin: c.Position, Dir: dir.Normalize()}
}

// ScreenToNDC converts viewport-relative screen coordinates to NDC.
func (c *Camera) ScreenToNDC(sx, sy float64) (x, y float64) {
	vp := c.Viewport
	if vp.Width <= 0 || vp.Height <= 0 {
		return 0, 0
	}
	x = (sx-vp.X)/vp.Width*2 - 1
	y = -((sy-vp.Y)/vp.Height*2 - 1)
	return x, y
}

// Project maps a world point to screen coordinates. ok is false when the
// point is behind the camera.
func (c *Camera) Project(p mgl64.Vec3) (sx, sy float64, ok bool) {
	clip := c.ViewProjection().Mul4x1(p.Vec4(1))
	if clip.W() <= 0 {
		return 0, 0, false
	}
	ndc := clip.Vec3().Mul(1 / clip.W())
	vp := c.Viewport
	sx = vp.X + (ndc.X()+1)/2*vp.Width
	sy = vp.Y + (1-ndc.Y())/2*vp.Height
	return sx, sy, true
}

func clamp(v, lo, hi float64) float64 {
	if lo > hi {
		return v
	}
	return math.Max(lo, math.Min(hi, v))
}
