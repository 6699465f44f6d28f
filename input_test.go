package diorama

import "testing"

func TestPointerKindString(t *testing.T) {
	tests := []struct {
		kind PointerKind
		want string
	}{
		{PointerMove, "move"},
		{PointerClick, "click"},
		{PointerTouchStart, "touch-start"},
		{PointerTouchEnd, "touch-end"},
		{PointerKind(99), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("%d.String() = %q, want %q", tt.kind, got, tt.want)
		}
	}
}

func TestScriptedInputOneTickAtATime(t *testing.T) {
	in := &scriptedInput{ticks: [][]PointerEvent{
		{{Kind: PointerMove, X: 1, Y: 2}},
		{{Kind: PointerMove, X: 3, Y: 4}, {Kind: PointerClick, X: 3, Y: 4}},
	}}
	buf := in.Poll(nil)
	if len(buf) != 1 || buf[0].X != 1 {
		t.Fatalf("first poll = %+v", buf)
	}
	buf = in.Poll(buf[:0])
	if len(buf) != 2 || buf[1].Kind != PointerClick {
		t.Fatalf("second poll = %+v", buf)
	}
	if buf = in.Poll(buf[:0]); len(buf) != 0 {
		t.Errorf("exhausted poll = %+v, want empty", buf)
	}
}

func TestNoInput(t *testing.T) {
	if buf := (noInput{}).Poll(nil); len(buf) != 0 {
		t.Errorf("noInput produced %+v", buf)
	}
}

func TestSceneReadsInputSource(t *testing.T) {
	plant := boxAt("Plant_Hover", 0, 0, 0)
	s := newTestScene(t, plant)
	if err := s.Enter(); err != nil {
		t.Fatal(err)
	}
	s.SetInputSource(&scriptedInput{ticks: [][]PointerEvent{
		{{Kind: PointerMove, X: 100, Y: 100}},
	}})
	clk := newTestClock()
	clk.tick(s, 1)
	if s.Hover().Current() != plant {
		t.Error("scripted move did not hover")
	}
	p := s.Context().Pointer
	assertNear(t, "ndc x", p.X(), 0)
	assertNear(t, "ndc y", p.Y(), 0)
}

func TestInjectedInputReplacesRealInput(t *testing.T) {
	plant := boxAt("Plant_Hover", 0, 0, 0)
	s := newTestScene(t, plant)
	if err := s.Enter(); err != nil {
		t.Fatal(err)
	}
	s.SetInputSource(&scriptedInput{ticks: [][]PointerEvent{
		{{Kind: PointerMove, X: 0, Y: 0}},
	}})
	s.InjectMove(100, 100)
	clk := newTestClock()
	clk.tick(s, 1)
	if s.Hover().Current() != plant {
		t.Error("real input overrode the injected move")
	}
}

func TestSetInputSourceNil(t *testing.T) {
	s := newTestScene(t)
	s.SetInputSource(nil)
	newTestClock().tick(s, 1)
	if s.Context().PointerActive {
		t.Error("nil input source produced a pointer")
	}
}
