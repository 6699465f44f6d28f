package diorama

import (
	"math"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl64"
)

func classifyNames(t *testing.T, p *Profile, names ...string) (*Registry, map[string]*Node) {
	t.Helper()
	root := NewGroup("Scene")
	byName := make(map[string]*Node, len(names))
	for i, name := range names {
		n := boxAt(name, float64(i), 1, 2)
		root.AddChild(n)
		byName[name] = n
	}
	return Classify(root, p, nil), byName
}

func TestClassifyFanGroups(t *testing.T) {
	tests := []struct {
		name  string
		group Axis
	}{
		{"Fan_2", AxisX},
		{"Fan_4", AxisX},
		{"Fan_6", AxisX},
		{"Fan_7", AxisX},
		{"Fan_1", AxisY},
		{"Fan_3", AxisY},
		{"Fan_5", AxisY},
		{"Fan_8", AxisZ},
		{"Fan_12", AxisZ},
		{"Fan_Base", AxisZ},
		{"Ceiling_Fan", AxisZ},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reg, nodes := classifyNames(t, nil, tt.name)
			n := nodes[tt.name]
			if !n.Roles.Has(RoleRotatingFan) {
				t.Fatalf("roles = %s, want rotating-fan", n.Roles)
			}
			fans := reg.Fans(tt.group)
			if len(fans) != 1 || fans[0].Node != n {
				t.Fatalf("Fans(%s) = %v, want [%s]", tt.group, fans, tt.name)
			}
			if n.FanAxis != tt.group {
				t.Errorf("FanAxis = %s, want %s", n.FanAxis, tt.group)
			}
		})
	}
}

func TestClassifyFanPartitionIsComplete(t *testing.T) {
	names := []string{"Fan_1", "Fan_2", "Fan_3", "Fan_4", "Fan_5", "Fan_6", "Fan_7", "Fan_8", "Fan_9"}
	reg, _ := classifyNames(t, nil, names...)
	total := 0
	seen := map[*Node]bool{}
	for g := AxisX; g <= AxisZ; g++ {
		for _, s := range reg.Fans(g) {
			if seen[s.Node] {
				t.Errorf("%s is in more than one fan group", s.Node.Name)
			}
			seen[s.Node] = true
			total++
		}
	}
	if total != len(names) {
		t.Errorf("fan groups hold %d fans, want %d", total, len(names))
	}
}

func TestFanStepRotatesOwnAxis(t *testing.T) {
	reg, nodes := classifyNames(t, nil, "Fan_2", "Fan_3", "Fan_8")
	d := NewDriver(reg, DefaultProfile(), nil)
	d.Step(time.Now(), 0)

	assertVec(t, "Fan_2 rotation", nodes["Fan_2"].Rotation, mgl64.Vec3{-0.03, 0, 0}, epsilon)
	assertVec(t, "Fan_3 rotation", nodes["Fan_3"].Rotation, mgl64.Vec3{0, -0.04, 0}, epsilon)
	assertVec(t, "Fan_8 rotation", nodes["Fan_8"].Rotation, mgl64.Vec3{0, 0, -0.03}, epsilon)
}

func TestFanZAxisConfigurable(t *testing.T) {
	p := DefaultProfile()
	p.Fans.ZAxis = AxisY
	reg, nodes := classifyNames(t, p, "Fan_9")
	if len(reg.Fans(AxisZ)) != 1 {
		t.Fatalf("Fans(z) = %d, want 1", len(reg.Fans(AxisZ)))
	}
	NewDriver(reg, p, nil).Step(time.Now(), 0)
	assertVec(t, "rotation", nodes["Fan_9"].Rotation, mgl64.Vec3{0, -0.03, 0}, epsilon)
}

func TestClassifySocialButton(t *testing.T) {
	reg, nodes := classifyNames(t, nil, "GitHub_Button_Hover")
	n := nodes["GitHub_Button_Hover"]

	for _, r := range []Role{RoleSocialLink, RoleHoverable} {
		if !n.Roles.Has(r) {
			t.Errorf("roles %s missing %s", n.Roles, r)
		}
	}
	if n.LinkKey != "GitHub" {
		t.Errorf("LinkKey = %q, want GitHub", n.LinkKey)
	}
	if n.Rest == nil {
		t.Fatal("Rest not captured")
	}
	assertVec(t, "Rest.Scale", n.Rest.Scale, mgl64.Vec3{1, 1, 1}, epsilon)
	assertVec(t, "Scale", n.Scale, mgl64.Vec3{}, epsilon)
	if got := reg.Reveal(RevealSocial); len(got) != 1 || got[0] != n {
		t.Errorf("Reveal(social) = %v", got)
	}
	if !n.Roles.Has(RoleTilting) || n.TiltSign != 1 {
		t.Errorf("tilt = %v (roles %s), want +1", n.TiltSign, n.Roles)
	}
}

func TestClassifyNameLetters(t *testing.T) {
	reg, nodes := classifyNames(t, nil, "Name_Letter_A", "Name_Letter_B")
	a, b := nodes["Name_Letter_A"], nodes["Name_Letter_B"]

	if a.Roles != Roles(RoleNameLetter) {
		t.Errorf("roles = %s, want {name-letter}", a.Roles)
	}
	if a.LetterIndex != 0 || b.LetterIndex != 1 {
		t.Errorf("letter indices = %d, %d, want 0, 1", a.LetterIndex, b.LetterIndex)
	}
	assertVec(t, "Scale", a.Scale, mgl64.Vec3{}, epsilon)
	assertVec(t, "Rest.Scale", a.Rest.Scale, mgl64.Vec3{1, 1, 1}, epsilon)
	assertVec(t, "Rest.Position", a.Rest.Position, mgl64.Vec3{0, 1, 2}, epsilon)
	if got := reg.Letters(); len(got) != 2 || got[0] != a || got[1] != b {
		t.Errorf("Letters() = %v", got)
	}
}

func TestClassifyUnmatchedUntouched(t *testing.T) {
	reg, nodes := classifyNames(t, nil, "Desk", "Lamp_Base")
	if reg.Len() != 0 {
		t.Errorf("Len = %d, want 0", reg.Len())
	}
	for name, n := range nodes {
		if !n.Roles.Empty() || n.Rest != nil || n.Material != nil {
			t.Errorf("%s was modified: roles %s", name, n.Roles)
		}
		assertVec(t, name+" scale", n.Scale, mgl64.Vec3{1, 1, 1}, epsilon)
	}
}

func TestClassifySkipsGroups(t *testing.T) {
	root := NewGroup("Scene")
	g := NewGroup("Fan_2")
	root.AddChild(g)
	reg := Classify(root, nil, nil)
	if reg.Len() != 0 || !g.Roles.Empty() {
		t.Errorf("group was classified: roles %s", g.Roles)
	}
}

func TestClassifyClockAndChair(t *testing.T) {
	reg, nodes := classifyNames(t, nil, "Clock_Hour_Hand", "Clock_Minute_Hand", "Chair_Top")
	if reg.ClockHand(HourHand) != nodes["Clock_Hour_Hand"] {
		t.Error("hour hand not registered")
	}
	if reg.ClockHand(MinuteHand) != nodes["Clock_Minute_Hand"] {
		t.Error("minute hand not registered")
	}
	if reg.Chair() != nodes["Chair_Top"] || nodes["Chair_Top"].Rest == nil {
		t.Error("chair not registered with rest state")
	}
}

func TestClassifyModalTriggers(t *testing.T) {
	tests := []struct {
		name  string
		modal ModalKind
		tilt  float64
	}{
		{"My_Work_Button", ModalWork, 1},
		{"About_Button", ModalAbout, -1},
		{"Twitter_Button", ModalContact, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, nodes := classifyNames(t, nil, tt.name)
			n := nodes[tt.name]
			if !n.Roles.Has(RoleModalTrigger) || n.Modal != tt.modal {
				t.Errorf("modal = %s (roles %s), want %s", n.Modal, n.Roles, tt.modal)
			}
			if !n.Roles.Has(RoleButton) {
				t.Errorf("roles %s missing button", n.Roles)
			}
			if n.TiltSign != tt.tilt {
				t.Errorf("TiltSign = %v, want %v", n.TiltSign, tt.tilt)
			}
		})
	}
}

func TestClassifyMaterials(t *testing.T) {
	lib := NewMaterialLibrary(DefaultProfile().TextureSets)
	root := NewGroup("Scene")
	names := []string{"Water_1", "Water_2", "Glass_1", "Glass_2", "Screen_Main", "Screen_Hp", "Top_Bulb", "Wall_Third", "Desk_Third"}
	nodes := map[string]*Node{}
	for _, name := range names {
		n := boxAt(name, 0, 0, 0)
		root.AddChild(n)
		nodes[name] = n
	}
	Classify(root, nil, lib)

	if nodes["Water_1"].Material == nodes["Water_2"].Material {
		t.Error("water materials are shared, want one per node")
	}
	if nodes["Glass_1"].Material != lib.Glass || nodes["Glass_2"].Material != lib.Glass {
		t.Error("glass material is not the shared one")
	}
	if m := nodes["Screen_Main"].Material; m.Kind != MaterialScreen || m.Channel != ScreenMain {
		t.Errorf("Screen_Main material = %+v", m)
	}
	if m := nodes["Screen_Hp"].Material; m.Channel != ScreenPhone || m.Opacity != 1 {
		t.Errorf("Screen_Hp material = %+v", m)
	}
	if !nodes["Top_Bulb"].Roles.Has(RoleLightFixture) || nodes["Top_Bulb"].Material.Kind != MaterialEmissive {
		t.Error("bulb not classified as light fixture")
	}
	if nodes["Wall_Third"].Material != lib.Room[2] || nodes["Desk_Third"].Material != lib.Room[2] {
		t.Error("texture set 3 material not shared")
	}
	if got := len(lib.Waters()); got != 2 {
		t.Errorf("Waters() = %d, want 2", got)
	}
}

func TestClassifyFishNudgedBeforeRest(t *testing.T) {
	_, nodes := classifyNames(t, nil, "Fish_Fourth")
	n := nodes["Fish_Fourth"]
	want := mgl64.Vec3{0.04, 1, 1.97}
	assertVec(t, "Position", n.Position, want, 1e-12)
	assertVec(t, "Rest.Position", n.Rest.Position, want, 1e-12)
	if !n.Roles.Has(RoleFish) {
		t.Errorf("roles %s missing fish", n.Roles)
	}
}

func TestClassifyFlameAnchors(t *testing.T) {
	reg, nodes := classifyNames(t, nil, "First_Flame1", "First_Flame2", "First_Flame")
	if got := len(reg.FlameAnchors()); got != 2 {
		t.Fatalf("FlameAnchors = %d, want 2", got)
	}
	assertVec(t, "EmitterRotation", nodes["First_Flame2"].EmitterRotation,
		mgl64.Vec3{math.Pi / 2, math.Pi / 4, 0}, epsilon)
	if nodes["First_Flame"].Roles.Has(RoleParticleAnchor) {
		t.Error("inexact anchor name matched")
	}
}

func TestClassifySlowSpin(t *testing.T) {
	reg, nodes := classifyNames(t, nil, "Globe_Second")
	if len(reg.SlowSpinners()) != 1 {
		t.Fatalf("SlowSpinners = %d, want 1", len(reg.SlowSpinners()))
	}
	NewDriver(reg, DefaultProfile(), nil).Step(time.Now(), 0)
	assertNear(t, "rotation.x", nodes["Globe_Second"].Rotation.X(), -0.0005)
}

func TestClassifyEmptyTokenNeverMatches(t *testing.T) {
	p := DefaultProfile()
	p.SlowSpinToken = ""
	reg, _ := classifyNames(t, p, "Globe_Second", "Anything")
	if len(reg.SlowSpinners()) != 0 {
		t.Errorf("SlowSpinners = %d, want 0", len(reg.SlowSpinners()))
	}
}

func TestClassifyInteractionSet(t *testing.T) {
	reg, nodes := classifyNames(t, nil, "Plant_Hover", "Poster_Raycaster", "Fan_2", "Lamp_Pointer")
	set := reg.InteractionSet()
	if len(set) != 2 || set[0] != nodes["Plant_Hover"] || set[1] != nodes["Poster_Raycaster"] {
		t.Errorf("InteractionSet = %v", set)
	}
}

func TestRegistrySealed(t *testing.T) {
	reg, _ := classifyNames(t, nil, "Plant_Hover")
	if !reg.Sealed() {
		t.Fatal("registry not sealed after Classify")
	}
	defer func() {
		if recover() == nil {
			t.Error("add after seal did not panic")
		}
	}()
	reg.add(NewMesh("Late_Hover", AABB{}))
}

func TestRegistryLookupFirstWins(t *testing.T) {
	root := NewGroup("Scene")
	first := boxAt("Plant_Hover", 0, 0, 0)
	second := boxAt("Plant_Hover", 1, 0, 0)
	root.AddChild(first)
	root.AddChild(second)
	reg := Classify(root, nil, nil)
	if reg.Lookup("Plant_Hover") != first {
		t.Error("Lookup did not return the first node in walk order")
	}
	if reg.Len() != 2 {
		t.Errorf("Len = %d, want 2", reg.Len())
	}
}

func TestParseFanIndex(t *testing.T) {
	tests := []struct {
		name  string
		index int
		ok    bool
	}{
		{"Fan_2", 2, true},
		{"Fan_12_Blade", 12, true},
		{"Desk_Fan_7", 7, true},
		{"Fan_", 0, false},
		{"Fan_X", 0, false},
		{"Fan2", 0, false},
		{"Desk", 0, false},
	}
	for _, tt := range tests {
		idx, ok := parseFanIndex(tt.name)
		if idx != tt.index || ok != tt.ok {
			t.Errorf("parseFanIndex(%q) = %d, %v; want %d, %v", tt.name, idx, ok, tt.index, tt.ok)
		}
	}
}
