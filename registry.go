package diorama

// Spinner is a node rotated by a fixed amount every tick.
type Spinner struct {
	Node *Node
	Axis Axis
	// Rate is subtracted from the axis rotation once per tick.
	Rate float64
}

// Registry holds the classified nodes of one scene graph. It is filled once
// by Classify and is read-only afterwards. Every slice it hands out is in
// classification (depth-first) order and MUST NOT be mutated by the caller.
type Registry struct {
	nodes  []*Node
	byRole [roleCount][]*Node
	byName map[string]*Node

	interaction []*Node
	fans        [3][]Spinner
	spinners    []Spinner
	clock       [2]*Node
	chair       *Node
	fish        *Node
	smoke       *Node
	reveal      [RevealLetters + 1][]*Node

	sealed bool
}

func newRegistry() *Registry {
	return &Registry{byName: make(map[string]*Node)}
}

// add registers a classified node. Panics once the registry is sealed.
func (r *Registry) add(n *Node) {
	if r.sealed {
		panic("diorama: registry is sealed")
	}
	r.nodes = append(r.nodes, n)
	if _, ok := r.byName[n.Name]; !ok {
		r.byName[n.Name] = n
	}
	n.Roles.Each(func(role Role) {
		r.byRole[role] = append(r.byRole[role], n)
	})
	if n.Roles.Has(RoleInteractive) || n.Roles.Has(RoleHoverable) {
		r.interaction = append(r.interaction, n)
	}
	if n.Reveal != RevealNone {
		r.reveal[n.Reveal] = append(r.reveal[n.Reveal], n)
	}
	if n.Roles.Has(RoleClockHand) && r.clock[n.ClockHand] == nil {
		r.clock[n.ClockHand] = n
	}
	if n.Roles.Has(RoleChair) && r.chair == nil {
		r.chair = n
	}
	if n.Roles.Has(RoleFish) && r.fish == nil {
		r.fish = n
	}
	if n.Roles.Has(RoleSmokeSource) && r.smoke == nil {
		r.smoke = n
	}
}

func (r *Registry) addFan(s Spinner, group Axis) {
	if r.sealed {
		panic("diorama: registry is sealed")
	}
	r.fans[group] = append(r.fans[group], s)
}

func (r *Registry) addSpinner(s Spinner) {
	if r.sealed {
		panic("diorama: registry is sealed")
	}
	r.spinners = append(r.spinners, s)
}

func (r *Registry) seal() {
	r.sealed = true
}

// Sealed reports whether classification has finished.
func (r *Registry) Sealed() bool {
	return r.sealed
}

// Len returns the number of classified nodes.
func (r *Registry) Len() int {
	return len(r.nodes)
}

// Nodes returns every classified node.
func (r *Registry) Nodes() []*Node {
	return r.nodes
}

// ByRole returns the nodes holding role.
func (r *Registry) ByRole(role Role) []*Node {
	if role >= roleCount {
		return nil
	}
	return r.byRole[role]
}

// Lookup returns the first classified node with the exact name, or nil.
func (r *Registry) Lookup(name string) *Node {
	return r.byName[name]
}

// InteractionSet returns the raycastable nodes: every node that is
// interactive or hoverable.
func (r *Registry) InteractionSet() []*Node {
	return r.interaction
}

// Hoverables returns the nodes eligible for hover feedback.
func (r *Registry) Hoverables() []*Node {
	return r.byRole[RoleHoverable]
}

// Fans returns the fans of a rotation group. Group AxisZ holds every fan
// whose index is in neither the X nor the Y partition.
func (r *Registry) Fans(group Axis) []Spinner {
	if group > AxisZ {
		return nil
	}
	return r.fans[group]
}

// SlowSpinners returns the slowly spinning decorations.
func (r *Registry) SlowSpinners() []Spinner {
	return r.spinners
}

// ClockHand returns the hand of the given kind, or nil.
func (r *Registry) ClockHand(kind ClockHandKind) *Node {
	if int(kind) >= len(r.clock) {
		return nil
	}
	return r.clock[kind]
}

// Chair returns the oscillating chair top, or nil.
func (r *Registry) Chair() *Node { return r.chair }

// Fish returns the fish, or nil.
func (r *Registry) Fish() *Node { return r.fish }

// SmokeSource returns the node the smoke plume follows, or nil.
func (r *Registry) SmokeSource() *Node { return r.smoke }

// Letters returns the name letters ordered by LetterIndex.
func (r *Registry) Letters() []*Node {
	return r.byRole[RoleNameLetter]
}

// SocialLinks returns the nodes that open external links.
func (r *Registry) SocialLinks() []*Node {
	return r.byRole[RoleSocialLink]
}

// ModalTriggers returns the nodes that open modals.
func (r *Registry) ModalTriggers() []*Node {
	return r.byRole[RoleModalTrigger]
}

// FlameAnchors returns the nodes hosting flame emitters.
func (r *Registry) FlameAnchors() []*Node {
	return r.byRole[RoleParticleAnchor]
}

// Reveal returns the nodes hidden until the given intro group plays.
func (r *Registry) Reveal(group RevealGroup) []*Node {
	if int(group) >= len(r.reveal) {
		return nil
	}
	return r.reveal[group]
}
