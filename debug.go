package diorama

import (
	"fmt"
	"os"
	"strings"
)

// debugTickInterval is how many ticks pass between periodic stat lines.
const debugTickInterval = 300

// debugClassification prints how many nodes each role claimed.
func (s *Scene) debugClassification() {
	if !s.debug {
		return
	}
	reg := s.registry
	var b strings.Builder
	for r := Role(0); r < roleCount; r++ {
		if n := len(reg.ByRole(r)); n > 0 {
			fmt.Fprintf(&b, " %s=%d", r, n)
		}
	}
	_, _ = fmt.Fprintf(os.Stderr, "[diorama] classified %d nodes:%s\n", reg.Len(), b.String())
	_, _ = fmt.Fprintf(os.Stderr, "[diorama] fans x=%d y=%d z=%d | spinners: %d | flames: %d\n",
		len(reg.Fans(AxisX)), len(reg.Fans(AxisY)), len(reg.Fans(AxisZ)),
		len(reg.SlowSpinners()), len(reg.FlameAnchors()))
	s.root.Walk(func(n *Node) bool {
		debugCheckTreeDepth(n)
		debugCheckChildCount(n)
		return true
	})
}

// debugEvent prints one emitted event.
func (s *Scene) debugEvent(e Event) {
	name := ""
	if e.Node != nil {
		name = e.Node.Name
	}
	switch e.Type {
	case EventAction:
		_, _ = fmt.Fprintf(os.Stderr, "[diorama] %s %q action=%s url=%q modal=%s\n",
			e.Type, name, e.Action, e.URL, e.Modal)
	case EventHoverEnter, EventHoverLeave:
		_, _ = fmt.Fprintf(os.Stderr, "[diorama] %s %q roles=%s\n", e.Type, name, e.Roles)
	default:
		_, _ = fmt.Fprintf(os.Stderr, "[diorama] %s\n", e.Type)
	}
}

// debugTick prints periodic interaction and animation stats.
func (s *Scene) debugTick() {
	if !s.debug || s.frames%debugTickInterval != 0 {
		return
	}
	hovered := "-"
	if cur := s.hover.Current(); cur != nil {
		hovered = cur.Name
	}
	enters, exits := s.hover.Counts()
	_, _ = fmt.Fprintf(os.Stderr,
		"[diorama] frame %d | hits: %d | hover: %s (%d/%d) | tweens: %d | timelines: %d\n",
		s.frames, len(s.ctx.Hits), hovered, enters, exits, s.animator.Len(), len(s.timelines))
}

// debugMaxTreeDepth is the depth past which a warning is printed.
const debugMaxTreeDepth = 32

func debugCheckTreeDepth(n *Node) {
	depth := 0
	for p := n; p != nil; p = p.Parent {
		depth++
	}
	if depth > debugMaxTreeDepth {
		_, _ = fmt.Fprintf(os.Stderr, "[diorama] warning: tree depth %d exceeds %d (node %q)\n",
			depth, debugMaxTreeDepth, n.Name)
	}
}

// debugMaxChildCount is the child count past which a warning is printed.
const debugMaxChildCount = 1000

func debugCheckChildCount(n *Node) {
	if len(n.children) > debugMaxChildCount {
		_, _ = fmt.Fprintf(os.Stderr, "[diorama] warning: node %q has %d children (threshold %d)\n",
			n.Name, len(n.children), debugMaxChildCount)
	}
}
