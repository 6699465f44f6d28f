package diorama

import "github.com/go-gl/mathgl/mgl64"

// computeLocalMatrix composes the node's local transform.
//
// Composition order matches Euler XYZ:
//
//	Translate(Position) * Rx * Ry * Rz * Scale
func computeLocalMatrix(n *Node) mgl64.Mat4 {
	rot := mgl64.HomogRotate3DX(n.Rotation.X()).
		Mul4(mgl64.HomogRotate3DY(n.Rotation.Y())).
		Mul4(mgl64.HomogRotate3DZ(n.Rotation.Z()))
	return mgl64.Translate3D(n.Position.X(), n.Position.Y(), n.Position.Z()).
		Mul4(rot).
		Mul4(mgl64.Scale3D(n.Scale.X(), n.Scale.Y(), n.Scale.Z()))
}

// updateWorldTransform recomputes a node's worldMatrix.
// parentRecomputed indicates whether the parent was recomputed this frame,
// which forces recomputation of this node even if it's not dirty.
func updateWorldTransform(n *Node, parent mgl64.Mat4, parentRecomputed bool) {
	recompute := n.transformDirty || parentRecomputed
	if recompute {
		n.worldMatrix = parent.Mul4(computeLocalMatrix(n))
		n.transformDirty = false
	}
	for _, child := range n.children {
		updateWorldTransform(child, n.worldMatrix, recompute)
	}
}

// UpdateWorld refreshes the world matrices of n and its subtree, treating n's
// parent chain as already up to date.
func (n *Node) UpdateWorld() {
	parent := mgl64.Ident4()
	if n.Parent != nil {
		parent = n.Parent.worldMatrix
	}
	updateWorldTransform(n, parent, false)
}

// --- Transform property setters ---

// SetPosition sets the node's local position and marks it dirty.
func (n *Node) SetPosition(x, y, z float64) {
	n.Position = mgl64.Vec3{x, y, z}
	n.transformDirty = true
}

// SetScale sets the node's local scale and marks it dirty.
func (n *Node) SetScale(x, y, z float64) {
	n.Scale = mgl64.Vec3{x, y, z}
	n.transformDirty = true
}

// SetRotation sets the node's Euler rotation (radians) and marks it dirty.
func (n *Node) SetRotation(x, y, z float64) {
	n.Rotation = mgl64.Vec3{x, y, z}
	n.transformDirty = true
}

// MarkDirty marks the node's transform as dirty, forcing recomputation
// on the next frame. Useful after bulk-setting fields directly.
func (n *Node) MarkDirty() {
	n.transformDirty = true
}

// --- Coordinate conversion ---

// WorldMatrix returns the cached world matrix from the last update.
func (n *Node) WorldMatrix() mgl64.Mat4 {
	return n.worldMatrix
}

// WorldPosition returns the node's origin in world space.
func (n *Node) WorldPosition() mgl64.Vec3 {
	return n.worldMatrix.Col(3).Vec3()
}

// LocalToWorld converts a local-space point to world space.
func (n *Node) LocalToWorld(p mgl64.Vec3) mgl64.Vec3 {
	return mgl64.TransformCoordinate(p, n.worldMatrix)
}

// WorldToLocal converts a world-space point to this node's local space.
// Returns the point unchanged if the world matrix is singular (for example a
// node scaled to zero during the intro).
func (n *Node) WorldToLocal(p mgl64.Vec3) mgl64.Vec3 {
	if !invertible(n.worldMatrix) {
		return p
	}
	return mgl64.TransformCoordinate(p, n.worldMatrix.Inv())
}

func invertible(m mgl64.Mat4) bool {
	det := m.Det()
	return det < -1e-12 || det > 1e-12
}

// setComponent writes one axis of v.
func setComponent(v *mgl64.Vec3, a Axis, val float64) {
	v[a] = val
}
