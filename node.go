package diorama

import "github.com/go-gl/mathgl/mgl64"

// NodeType distinguishes how a Node participates in classification and drawing.
type NodeType uint8

const (
	NodeTypeGroup  NodeType = iota // transform-only node, never classified
	NodeTypeMesh                   // geometry-bearing node, classified by name
	NodeTypePoints                 // point cloud owned by a flame emitter
)

// RestState is a node's baseline transform, captured once at classification
// time. Every hover-exit animation returns to these values.
type RestState struct {
	Scale    mgl64.Vec3
	Position mgl64.Vec3
	Rotation mgl64.Vec3
}

// nodeIDCounter is a plain counter (no atomic, diorama is single-threaded).
var nodeIDCounter uint32

func nextNodeID() uint32 {
	nodeIDCounter++
	return nodeIDCounter
}

// Node is the scene graph element. A single flat struct is used for every
// node type; role details are plain fields that are meaningful only when the
// matching role is in Roles.
type Node struct {
	// Identity
	ID   uint32
	Name string
	Type NodeType

	// Hierarchy
	Parent   *Node
	children []*Node

	// Transform (local). Rotation is Euler XYZ in radians.
	Position mgl64.Vec3
	Rotation mgl64.Vec3
	Scale    mgl64.Vec3

	worldMatrix    mgl64.Mat4
	transformDirty bool

	Visible bool

	// Bounds is the local-space box used for ray tests when Hit is nil.
	Bounds AABB
	Hit    HitVolume

	Material *Material
	UserData any

	// Classification output
	Rest          *RestState
	Roles         RoleSet
	FanAxis       Axis
	ClockHand     ClockHandKind
	LetterIndex   int
	ScreenChannel ScreenChannel
	TiltSign      float64
	LinkKey       string
	Modal         ModalKind
	Reveal        RevealGroup

	// Emitter is set on particle anchors once their flame is attached.
	Emitter         *FlameEmitter
	EmitterRotation mgl64.Vec3

	disposed bool
}

func nodeDefaults(n *Node) {
	n.ID = nextNodeID()
	n.Scale = mgl64.Vec3{1, 1, 1}
	n.Visible = true
	n.transformDirty = true
	n.worldMatrix = mgl64.Ident4()
}

// NewGroup creates a transform-only node.
func NewGroup(name string) *Node {
	n := &Node{Name: name, Type: NodeTypeGroup}
	nodeDefaults(n)
	return n
}

// NewMesh creates a mesh node with the given local bounds.
func NewMesh(name string, bounds AABB) *Node {
	n := &Node{Name: name, Type: NodeTypeMesh, Bounds: bounds}
	nodeDefaults(n)
	return n
}

// IsMesh reports whether the node carries geometry.
func (n *Node) IsMesh() bool {
	return n.Type == NodeTypeMesh
}

// Baseline returns the rest snapshot taken at classification. A node without
// one reports its current transform; Rest itself is never written here.
func (n *Node) Baseline() RestState {
	if n.Rest != nil {
		return *n.Rest
	}
	return n.snapshot()
}

func (n *Node) snapshot() RestState {
	return RestState{Scale: n.Scale, Position: n.Position, Rotation: n.Rotation}
}

// --- Tree manipulation ---

// AddChild appends child to this node's children.
// If child already has a parent, it is removed from that parent first.
// Panics if child is nil or child is an ancestor of this node (cycle).
func (n *Node) AddChild(child *Node) {
	if child == nil {
		panic("diorama: cannot add nil child")
	}
	if isAncestor(child, n) {
		panic("diorama: adding child would create a cycle")
	}
	if child.Parent != nil {
		child.Parent.removeChildByPtr(child)
	}
	child.Parent = n
	n.children = append(n.children, child)
	markSubtreeDirty(child)
}

// RemoveChild detaches child from this node.
// Panics if child.Parent != n.
func (n *Node) RemoveChild(child *Node) {
	if child.Parent != n {
		panic("diorama: child's parent is not this node")
	}
	n.removeChildByPtr(child)
	child.Parent = nil
	markSubtreeDirty(child)
}

// RemoveFromParent detaches this node from its parent.
// No-op if this node has no parent.
func (n *Node) RemoveFromParent() {
	if n.Parent == nil {
		return
	}
	n.Parent.RemoveChild(n)
}

// Children returns the child list. The returned slice MUST NOT be mutated by the caller.
func (n *Node) Children() []*Node {
	return n.children
}

// NumChildren returns the number of children.
func (n *Node) NumChildren() int {
	return len(n.children)
}

// ChildAt returns the child at the given index.
func (n *Node) ChildAt(index int) *Node {
	return n.children[index]
}

// Walk visits n and its descendants depth-first, children in order.
// Returning false from fn skips that node's subtree.
func (n *Node) Walk(fn func(*Node) bool) {
	if !fn(n) {
		return
	}
	for _, child := range n.children {
		child.Walk(fn)
	}
}

// FindByName returns the first node in depth-first order whose name equals
// name exactly, or nil.
func (n *Node) FindByName(name string) *Node {
	var found *Node
	n.Walk(func(c *Node) bool {
		if found != nil {
			return false
		}
		if c.Name == name {
			found = c
			return false
		}
		return true
	})
	return found
}

// --- Disposal ---

// Dispose removes this node from its parent, marks it as disposed,
// and recursively disposes all descendants.
func (n *Node) Dispose() {
	if n.disposed {
		return
	}
	n.RemoveFromParent()
	n.dispose()
}

func (n *Node) dispose() {
	n.disposed = true
	n.ID = 0
	for _, child := range n.children {
		child.Parent = nil
		child.dispose()
	}
	n.children = nil
	n.Parent = nil
	n.Hit = nil
	n.Material = nil
	n.Emitter = nil
	n.UserData = nil
}

// IsDisposed returns true if this node has been disposed.
func (n *Node) IsDisposed() bool {
	return n.disposed
}

// --- Helpers ---

func isAncestor(candidate, node *Node) bool {
	for p := node; p != nil; p = p.Parent {
		if p == candidate {
			return true
		}
	}
	return false
}

// removeChildByPtr removes child from n.children without clearing child.Parent.
// Uses copy+nil to avoid retaining a dangling pointer in the backing array.
func (n *Node) removeChildByPtr(child *Node) {
	for i, c := range n.children {
		if c == child {
			copy(n.children[i:], n.children[i+1:])
			n.children[len(n.children)-1] = nil
			n.children = n.children[:len(n.children)-1]
			return
		}
	}
}

func markSubtreeDirty(node *Node) {
	node.transformDirty = true
	for _, child := range node.children {
		markSubtreeDirty(child)
	}
}
