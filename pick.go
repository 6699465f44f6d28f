package diorama

import (
	"math"
	"slices"

	"github.com/go-gl/mathgl/mgl64"
)

// AABB is an axis-aligned box in a node's local space.
type AABB struct {
	Min, Max mgl64.Vec3
}

// Box returns the AABB centered at c with the given half extents.
func Box(c, half mgl64.Vec3) AABB {
	return AABB{Min: c.Sub(half), Max: c.Add(half)}
}

// Empty reports whether the box encloses no volume.
func (b AABB) Empty() bool {
	return b.Max.X() < b.Min.X() || b.Max.Y() < b.Min.Y() || b.Max.Z() < b.Min.Z() || b == AABB{}
}

// Center returns the midpoint of the box.
func (b AABB) Center() mgl64.Vec3 {
	return b.Min.Add(b.Max).Mul(0.5)
}

// Corners returns the eight corners of the box.
func (b AABB) Corners() [8]mgl64.Vec3 {
	var out [8]mgl64.Vec3
	for i := range out {
		for a := 0; a < 3; a++ {
			if i&(1<<a) != 0 {
				out[i][a] = b.Max[a]
			} else {
				out[i][a] = b.Min[a]
			}
		}
	}
	return out
}

// IntersectRay returns the entry distance of a local-space ray into the box
// (slab test). A ray starting inside the box hits at its exit distance.
func (b AABB) IntersectRay(origin, dir mgl64.Vec3) (float64, bool) {
	if b.Empty() {
		return 0, false
	}
	tmin, tmax := math.Inf(-1), math.Inf(1)
	for a := 0; a < 3; a++ {
		if dir[a] == 0 {
			if origin[a] < b.Min[a] || origin[a] > b.Max[a] {
				return 0, false
			}
			continue
		}
		inv := 1 / dir[a]
		t1 := (b.Min[a] - origin[a]) * inv
		t2 := (b.Max[a] - origin[a]) * inv
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tmin = math.Max(tmin, t1)
		tmax = math.Min(tmax, t2)
		if tmin > tmax {
			return 0, false
		}
	}
	if tmax < 0 {
		return 0, false
	}
	if tmin < 0 {
		return tmax, true
	}
	return tmin, true
}

// HitVolume is a custom local-space ray test. It replaces a node's Bounds
// test when set on Node.Hit. dir need not be unit length; t is in units of dir.
type HitVolume interface {
	IntersectRay(origin, dir mgl64.Vec3) (t float64, ok bool)
}

// HitSphere is a sphere hit volume in local space.
type HitSphere struct {
	Center mgl64.Vec3
	Radius float64
}

// IntersectRay implements HitVolume.
func (s HitSphere) IntersectRay(origin, dir mgl64.Vec3) (float64, bool) {
	oc := origin.Sub(s.Center)
	a := dir.Dot(dir)
	if a == 0 {
		return 0, false
	}
	b := oc.Dot(dir)
	c := oc.Dot(oc) - s.Radius*s.Radius
	disc := b*b - a*c
	if disc < 0 {
		return 0, false
	}
	sq := math.Sqrt(disc)
	t := (-b - sq) / a
	if t < 0 {
		t = (-b + sq) / a
	}
	if t < 0 {
		return 0, false
	}
	return t, true
}

// Hit is one ray intersection.
type Hit struct {
	Node *Node
	// Distance is measured in world units from the ray origin.
	Distance float64
	Point    mgl64.Vec3
}

// Resolver intersects rays against an interaction set. It keeps one result
// buffer that is reused every call; results are only valid until the next
// Intersect.
type Resolver struct {
	hits []Hit
}

// Intersect tests ray against every visible node in set and returns the hits
// sorted by ascending distance. Ties keep set order. Nodes outside set are
// never tested. The result is empty (not nil-checked by callers) when
// nothing is hit.
func (r *Resolver) Intersect(ray Ray, set []*Node) []Hit {
	r.hits = r.hits[:0]
	for _, n := range set {
		if n == nil || !n.Visible || n.IsDisposed() {
			continue
		}
		if d, ok := intersectNode(ray, n); ok {
			r.hits = append(r.hits, Hit{Node: n, Distance: d, Point: ray.At(d)})
		}
	}
	slices.SortStableFunc(r.hits, func(a, b Hit) int {
		switch {
		case a.Distance < b.Distance:
			return -1
		case a.Distance > b.Distance:
			return 1
		default:
			return 0
		}
	})
	return r.hits
}

// intersectNode transforms the ray into n's local space, runs the local
// test, and converts the hit back to a world distance. A node whose world
// matrix is singular (scaled to zero) cannot be hit.
func intersectNode(ray Ray, n *Node) (float64, bool) {
	m := n.worldMatrix
	if !invertible(m) {
		return 0, false
	}
	inv := m.Inv()
	lo := mgl64.TransformCoordinate(ray.Origin, inv)
	ld := mgl64.TransformNormal(ray.Dir, inv)

	var t float64
	var ok bool
	if n.Hit != nil {
		t, ok = n.Hit.IntersectRay(lo, ld)
	} else {
		t, ok = n.Bounds.IntersectRay(lo, ld)
	}
	if !ok {
		return 0, false
	}
	world := mgl64.TransformCoordinate(lo.Add(ld.Mul(t)), m)
	return world.Sub(ray.Origin).Len(), true
}
