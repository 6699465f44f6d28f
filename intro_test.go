package diorama

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestIntroHidesRevealNodes(t *testing.T) {
	_, nodes := classifyNames(t, nil, "Twitter_Icon", "Flower_1", "Box_1", "Name_Letter_1", "Plant_Hover")
	for _, name := range []string{"Twitter_Icon", "Flower_1", "Box_1", "Name_Letter_1"} {
		n := nodes[name]
		if n.Scale != (mgl64.Vec3{}) {
			t.Errorf("%s scale = %v, want zero", name, n.Scale)
		}
		if n.Rest == nil || n.Rest.Scale != (mgl64.Vec3{1, 1, 1}) {
			t.Errorf("%s rest scale not captured before hiding", name)
		}
	}
	if nodes["Plant_Hover"].Scale != (mgl64.Vec3{1, 1, 1}) {
		t.Error("non-intro node hidden")
	}
}

func TestIntroSocialOrder(t *testing.T) {
	reg, nodes := classifyNames(t, nil, "Twitter_Icon", "GitHub_Icon", "YouTube_Icon")
	rec := &recordingTweener{}
	tls := IntroTimelines(reg, DefaultProfile().Intro, rec)
	if len(tls) != 1 {
		t.Fatalf("timelines = %d, want 1", len(tls))
	}
	tl := tls[0]
	if tl.TimeScale != 0.8 {
		t.Errorf("TimeScale = %v, want 0.8", tl.TimeScale)
	}

	// Steps start at 0, 0.2 and 0.4 on the timeline clock.
	tl.Update(0.01)
	assertNames(t, firedNames(rec), "GitHub_Icon")
	tl.Update(0.25)
	assertNames(t, firedNames(rec), "GitHub_Icon", "YouTube_Icon")
	tl.Update(0.25)
	assertNames(t, firedNames(rec), "GitHub_Icon", "YouTube_Icon", "Twitter_Icon")

	for _, req := range rec.tweens() {
		if req.Property != PropScale || req.To != nodes[req.Node.Name].Rest.Scale {
			t.Errorf("%s: %s to %v, want scale to rest", req.Node.Name, req.Property, req.To)
		}
		if req.Ease.Kind != EaseBackOut || req.Ease.Param != 1.8 {
			t.Errorf("%s: ease = %+v, want back-out 1.8", req.Node.Name, req.Ease)
		}
	}
}

func TestIntroGrowsToRestScale(t *testing.T) {
	root := NewGroup("Scene")
	box := boxAt("Box_1", 0, 0, 0)
	box.SetScale(2, 3, 4)
	root.AddChild(box)
	reg := Classify(root, nil, nil)

	rec := &recordingTweener{}
	for _, tl := range IntroTimelines(reg, DefaultProfile().Intro, rec) {
		tl.Update(10)
	}
	reqs := rec.tweens()
	if len(reqs) != 1 {
		t.Fatalf("tweens = %d, want 1", len(reqs))
	}
	assertVec(t, "to", reqs[0].To, mgl64.Vec3{2, 3, 4}, epsilon)
}

func TestIntroFlowerOrder(t *testing.T) {
	reg, _ := classifyNames(t, nil, "Flower_1", "Flower_2")
	rec := &recordingTweener{}
	for _, tl := range IntroTimelines(reg, DefaultProfile().Intro, rec) {
		tl.Update(10)
	}
	assertNames(t, firedNames(rec), "Flower_2", "Flower_1")
}

func TestIntroLetterBounce(t *testing.T) {
	reg, _ := classifyNames(t, nil, "Name_Letter_1", "Name_Letter_2")
	cfg := DefaultProfile().Intro
	rec := &recordingTweener{}
	tls := IntroTimelines(reg, cfg, rec)
	if len(tls) != 1 {
		t.Fatalf("timelines = %d, want 1", len(tls))
	}
	tls[0].Update(10)

	type step struct {
		name string
		prop Property
		y    float64
	}
	// Letter 1 starts at 0.5, letter 2 rises at 0.6 before letter 1 drops
	// at 0.7.
	want := []step{
		{"Name_Letter_1", PropPosition, 1 + cfg.LetterLift},
		{"Name_Letter_1", PropScale, 1},
		{"Name_Letter_2", PropPosition, 1 + cfg.LetterLift},
		{"Name_Letter_2", PropScale, 1},
		{"Name_Letter_1", PropPosition, 1},
		{"Name_Letter_2", PropPosition, 1},
	}
	reqs := rec.tweens()
	if len(reqs) != len(want) {
		t.Fatalf("tweens = %d, want %d", len(reqs), len(want))
	}
	for i, w := range want {
		r := reqs[i]
		if r.Node.Name != w.name || r.Property != w.prop {
			t.Fatalf("step %d = %s %s, want %s %s", i, r.Node.Name, r.Property, w.name, w.prop)
		}
		assertNear(t, "y", r.To.Y(), w.y)
		if r.Property == PropPosition && r.Mask != MaskY {
			t.Errorf("step %d mask = %v, want MaskY", i, r.Mask)
		}
	}
}

func TestIntroNothingToReveal(t *testing.T) {
	reg, _ := classifyNames(t, nil, "Plant_Hover")
	if tls := IntroTimelines(reg, DefaultProfile().Intro, &recordingTweener{}); len(tls) != 0 {
		t.Errorf("timelines = %d, want 0", len(tls))
	}
}

func TestOrderByTokens(t *testing.T) {
	nodes := []*Node{NewGroup("c"), NewGroup("x_b"), NewGroup("a_1"), NewGroup("other")}
	got := orderByTokens(nodes, "a_", "b", "c")
	var names []string
	for _, n := range got {
		names = append(names, n.Name)
	}
	assertNames(t, names, "a_1", "x_b", "c", "other")
	if nodes[0].Name != "c" {
		t.Error("input slice reordered")
	}
}
