package diorama

import (
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
)

// matchKind selects how a name pattern compares against a node name.
type matchKind uint8

const (
	matchContains matchKind = iota
	matchPrefix
	matchExact
)

// namePattern is one name predicate of the classification table.
type namePattern struct {
	kind  matchKind
	token string
}

func contains(token string) namePattern { return namePattern{matchContains, token} }
func prefix(token string) namePattern   { return namePattern{matchPrefix, token} }
func exact(token string) namePattern    { return namePattern{matchExact, token} }

func (p namePattern) match(name string) bool {
	if p.token == "" {
		return false
	}
	switch p.kind {
	case matchPrefix:
		return strings.HasPrefix(name, p.token)
	case matchExact:
		return name == p.token
	default:
		return strings.Contains(name, p.token)
	}
}

// noRole marks rules that only fill details (reveal group, material).
const noRole = roleCount

// rule pairs a name pattern with the role it grants. apply, when set, fills
// the role's detail fields on the pending classification.
type rule struct {
	pattern namePattern
	role    Role
	apply   func(c *classification)
}

// ruleGroup is a list of rules. In an exclusive group only the first match
// applies; otherwise every matching rule applies.
type ruleGroup struct {
	name      string
	exclusive bool
	rules     []rule
}

// classification is the pending result for one node. Nothing touches the
// node's transform until every rule has been evaluated.
type classification struct {
	name     string
	roles    RoleSet
	fanGroup Axis
	clock    ClockHandKind
	screen   ScreenChannel
	tilt     float64
	linkKey  string
	modal    ModalKind
	reveal   RevealGroup
	material func(*MaterialLibrary) *Material
	flameRot mgl64.Vec3
}

func (c *classification) empty() bool {
	return c.roles.Empty() && c.reveal == RevealNone && c.material == nil
}

// classifier evaluates the rule table built from a profile.
type classifier struct {
	profile *Profile
	lib     *MaterialLibrary
	reg     *Registry
	groups  []ruleGroup
	letters int
}

// Classify walks every mesh under root once, depth-first, and returns the
// sealed registry of classified nodes. Matching nodes receive their roles,
// materials and rest state; intro nodes are hidden by zero scale after their
// rest state is captured. Names that match nothing are left untouched.
// A nil profile uses DefaultProfile; a nil library is created from the
// profile's texture sets.
func Classify(root *Node, p *Profile, lib *MaterialLibrary) *Registry {
	if p == nil {
		p = DefaultProfile()
	}
	if lib == nil {
		lib = NewMaterialLibrary(p.TextureSets)
	}
	c := &classifier{profile: p, lib: lib, reg: newRegistry()}
	c.groups = buildRules(p)
	if root != nil {
		root.Walk(func(n *Node) bool {
			if n.IsMesh() {
				c.classify(n)
			}
			return true
		})
	}
	c.reg.seal()
	return c.reg
}

func (c *classifier) classify(n *Node) {
	pending := classification{name: n.Name}
	for i := range c.groups {
		g := &c.groups[i]
		for _, r := range g.rules {
			if !r.pattern.match(n.Name) {
				continue
			}
			if r.role != noRole {
				pending.roles = pending.roles.With(r.role)
			}
			if r.apply != nil {
				r.apply(&pending)
			}
			if g.exclusive {
				break
			}
		}
	}
	if pending.empty() {
		return
	}

	p := c.profile
	if p.Fish.Token != "" && strings.Contains(n.Name, p.Fish.Token) {
		n.Position = n.Position.Add(mgl64.Vec3(p.Fish.Nudge))
		n.MarkDirty()
	}

	// Rest state first: zeroing below must never leak into it.
	if c.needsRest(n, &pending) {
		rest := n.snapshot()
		n.Rest = &rest
	}

	n.Roles = pending.roles
	n.ClockHand = pending.clock
	n.ScreenChannel = pending.screen
	n.TiltSign = pending.tilt
	n.LinkKey = pending.linkKey
	n.Modal = pending.modal
	n.Reveal = pending.reveal
	if pending.roles.Has(RoleNameLetter) {
		n.LetterIndex = c.letters
		c.letters++
	}
	if pending.material != nil {
		n.Material = pending.material(c.lib)
	}
	if pending.reveal != RevealNone {
		n.Scale = mgl64.Vec3{}
		n.MarkDirty()
	}

	c.reg.add(n)

	if pending.roles.Has(RoleRotatingFan) {
		axis := p.Fans.spinAxis(pending.fanGroup)
		n.FanAxis = axis
		c.reg.addFan(Spinner{Node: n, Axis: axis, Rate: p.Fans.rate(pending.fanGroup)}, pending.fanGroup)
	}
	if pending.roles.Has(RoleSlowSpin) {
		c.reg.addSpinner(Spinner{Node: n, Axis: AxisX, Rate: p.SlowSpinRate})
	}
	if pending.roles.Has(RoleParticleAnchor) {
		n.EmitterRotation = pending.flameRot
	}
}

func (c *classifier) needsRest(n *Node, pending *classification) bool {
	if strings.Contains(n.Name, "Hover") || strings.Contains(n.Name, "Key") {
		return true
	}
	if pending.reveal != RevealNone {
		return true
	}
	r := pending.roles
	return r.Has(RoleHoverable) || r.Has(RoleChair) || r.Has(RoleClockHand) ||
		r.Has(RoleFish) || r.Has(RoleTilting)
}

// buildRules assembles the classification table for a profile. Group order
// matters only for readability: groups are independent of each other.
func buildRules(p *Profile) []ruleGroup {
	tilt := func(sign float64) func(*classification) {
		return func(c *classification) { c.tilt = sign }
	}
	modal := func(m ModalKind) func(*classification) {
		return func(c *classification) { c.modal = m }
	}
	reveal := func(g RevealGroup) func(*classification) {
		return func(c *classification) { c.reveal = g }
	}
	screen := func(ch ScreenChannel) func(*classification) {
		return func(c *classification) {
			c.screen = ch
			c.material = func(l *MaterialLibrary) *Material { return l.screen(ch) }
		}
	}
	fan := p.Fans

	groups := []ruleGroup{
		{name: "traits", rules: []rule{
			{pattern: contains("Hover"), role: RoleHoverable},
			{pattern: contains("Raycaster"), role: RoleInteractive},
			{pattern: contains("Pointer"), role: RolePointerCursor},
			{pattern: contains("Button"), role: RoleButton},
			{pattern: contains("Fish"), role: RoleFish},
			{pattern: contains("Coffee"), role: RoleSmokeSource},
			{pattern: contains("Chair_Top"), role: RoleChair},
			{pattern: contains("Fan"), role: RoleRotatingFan, apply: func(c *classification) {
				idx, ok := parseFanIndex(c.name)
				c.fanGroup = fan.fanAxis(idx, ok)
			}},
		}},
		{name: "clock", exclusive: true, rules: []rule{
			{pattern: contains("Hour_Hand"), role: RoleClockHand, apply: func(c *classification) { c.clock = HourHand }},
			{pattern: contains("Minute_Hand"), role: RoleClockHand, apply: func(c *classification) { c.clock = MinuteHand }},
		}},
		{name: "modal", exclusive: true, rules: []rule{
			{pattern: contains("Work_Button"), role: RoleModalTrigger, apply: modal(ModalWork)},
			{pattern: contains("About_Button"), role: RoleModalTrigger, apply: modal(ModalAbout)},
			{pattern: contains("Twitter_Button"), role: RoleModalTrigger, apply: modal(ModalContact)},
		}},
		{name: "tilt", exclusive: true, rules: []rule{
			{pattern: contains("About_Button"), role: RoleTilting, apply: tilt(-1)},
			{pattern: contains("Contact_Button"), role: RoleTilting, apply: tilt(1)},
			{pattern: contains("My_Work_Button"), role: RoleTilting, apply: tilt(1)},
			{pattern: contains("GitHub"), role: RoleTilting, apply: tilt(1)},
			{pattern: contains("YouTube"), role: RoleTilting, apply: tilt(1)},
			{pattern: contains("Twitter"), role: RoleTilting, apply: tilt(1)},
		}},
		{name: "reveal", exclusive: true, rules: []rule{
			{pattern: contains("GitHub"), role: noRole, apply: reveal(RevealSocial)},
			{pattern: contains("YouTube"), role: noRole, apply: reveal(RevealSocial)},
			{pattern: contains("Twitter"), role: noRole, apply: reveal(RevealSocial)},
			{pattern: prefix("Name_Letter_"), role: RoleNameLetter, apply: reveal(RevealLetters)},
			{pattern: contains("Flower_1"), role: noRole, apply: reveal(RevealFlowers)},
			{pattern: contains("Flower_2"), role: noRole, apply: reveal(RevealFlowers)},
			{pattern: contains("Box_1"), role: noRole, apply: reveal(RevealBoxes)},
			{pattern: contains(p.SlowSpinToken), role: RoleSlowSpin},
		}},
	}

	links := ruleGroup{name: "links", exclusive: true}
	for _, l := range p.Links {
		key := l.Key
		links.rules = append(links.rules, rule{
			pattern: contains(key),
			role:    RoleSocialLink,
			apply:   func(c *classification) { c.linkKey = key },
		})
	}
	groups = append(groups, links)

	flames := ruleGroup{name: "flames", exclusive: true}
	for _, a := range p.Flames.Anchors {
		rot := mgl64.Vec3(a.Rotation)
		flames.rules = append(flames.rules, rule{
			pattern: exact(a.Name),
			role:    RoleParticleAnchor,
			apply:   func(c *classification) { c.flameRot = rot },
		})
	}
	groups = append(groups, flames)

	materials := ruleGroup{name: "materials", exclusive: true, rules: []rule{
		{pattern: contains("Water"), role: RoleWaterSurface, apply: func(c *classification) {
			day := Hex(p.Theme.DayWater)
			c.material = func(l *MaterialLibrary) *Material { return l.water(day) }
		}},
		{pattern: contains("Glass"), role: RoleGlassSurface, apply: func(c *classification) {
			c.material = func(l *MaterialLibrary) *Material { return l.Glass }
		}},
		{pattern: exact("Screen_Main"), role: RoleScreenSurface, apply: screen(ScreenMain)},
		{pattern: exact("Screen_Potrait"), role: RoleScreenSurface, apply: screen(ScreenPortrait)},
		{pattern: exact("Screen_CPU"), role: RoleScreenSurface, apply: screen(ScreenCPU)},
		{pattern: exact("Screen_Mini"), role: RoleScreenSurface, apply: screen(ScreenMini)},
		{pattern: exact("Screen_TV"), role: RoleScreenSurface, apply: screen(ScreenTV)},
		{pattern: exact("Screen_Hp"), role: RoleScreenSurface, apply: screen(ScreenPhone)},
		{pattern: contains("Top_Bulb"), role: RoleLightFixture, apply: func(c *classification) {
			c.material = func(l *MaterialLibrary) *Material { return l.bulb() }
		}},
	}}
	for i, key := range p.TextureSets {
		set := i
		materials.rules = append(materials.rules, rule{
			pattern: contains(key),
			role:    RoleRoomSurface,
			apply: func(c *classification) {
				c.material = func(l *MaterialLibrary) *Material {
					if set < len(l.Room) {
						return l.Room[set]
					}
					return nil
				}
			},
		})
	}
	groups = append(groups, materials)

	return groups
}

// parseFanIndex reads the decimal index following "Fan_" in name.
// ok is false when the name has no "Fan_" token or no digits follow it.
func parseFanIndex(name string) (index int, ok bool) {
	i := strings.Index(name, "Fan_")
	if i < 0 {
		return 0, false
	}
	rest := name[i+len("Fan_"):]
	end := 0
	for end < len(rest) && rest[end] >= '0' && rest[end] <= '9' {
		end++
	}
	if end == 0 {
		return 0, false
	}
	v, err := strconv.Atoi(rest[:end])
	if err != nil {
		return 0, false
	}
	return v, true
}
