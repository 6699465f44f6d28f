package diorama

import (
	"slices"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
)

// IntroTimelines builds the reveal timelines for the hidden intro nodes of
// reg: social buttons, flowers, boxes, and the bouncing name letters. Every
// node grows back to its rest scale. The timelines issue their tweens to tw.
func IntroTimelines(reg *Registry, cfg IntroConfig, tw Tweener) []*Timeline {
	ez := BackOut(cfg.Overshoot)
	grow := func(n *Node, dur float32) TweenRequest {
		return TweenRequest{Node: n, Property: PropScale, To: n.Baseline().Scale, Duration: dur, Ease: ez}
	}
	newTL := func() *Timeline {
		tl := NewTimeline(tw)
		tl.TimeScale = cfg.TimeScale
		return tl
	}

	var out []*Timeline

	social := orderByTokens(reg.Reveal(RevealSocial), "GitHub", "YouTube", "Twitter")
	if len(social) > 0 {
		tl := newTL()
		for i, n := range social {
			at := AfterPrev(-0.6)
			if i == 0 {
				at = AfterPrev(-0.5)
			}
			tl.Add(grow(n, cfg.Duration), at)
		}
		out = append(out, tl)
	}

	flowers := orderByTokens(reg.Reveal(RevealFlowers), "Flower_2", "Flower_1")
	if len(flowers) > 0 {
		tl := newTL()
		for _, n := range flowers {
			tl.Add(grow(n, cfg.Duration), AfterPrev(-0.5))
		}
		out = append(out, tl)
	}

	if boxes := reg.Reveal(RevealBoxes); len(boxes) > 0 {
		tl := newTL()
		for _, n := range boxes {
			tl.Add(grow(n, cfg.Duration), AfterPrev(0))
		}
		out = append(out, tl)
	}

	if letters := reg.Reveal(RevealLetters); len(letters) > 0 {
		tl := newTL()
		d := cfg.LetterDuration
		for i, n := range letters {
			rest := n.Baseline()
			at := AfterPrev(-0.5)
			if i == 0 {
				at = AtTime(0.5)
			}
			tl.Add(TweenRequest{
				Node: n, Property: PropPosition, Mask: MaskY,
				To:       mgl64.Vec3{0, rest.Position.Y() + cfg.LetterLift, 0},
				Duration: d, Ease: ez,
			}, at)
			tl.Add(grow(n, d), WithPrev(0))
			tl.Add(TweenRequest{
				Node: n, Property: PropPosition, Mask: MaskY,
				To:       rest.Position,
				Duration: d, Ease: ez,
			}, AfterPrev(-0.2))
		}
		out = append(out, tl)
	}
	return out
}

// playIntro starts every reveal timeline.
func (s *Scene) playIntro() {
	for _, tl := range IntroTimelines(s.registry, s.profile.Intro, s.tweener) {
		s.play(tl)
	}
}

// orderByTokens sorts nodes by the first token their name contains. Nodes
// matching no token keep their order after the matched ones.
func orderByTokens(nodes []*Node, tokens ...string) []*Node {
	rank := func(n *Node) int {
		for i, t := range tokens {
			if strings.Contains(n.Name, t) {
				return i
			}
		}
		return len(tokens)
	}
	out := slices.Clone(nodes)
	slices.SortStableFunc(out, func(a, b *Node) int {
		return rank(a) - rank(b)
	})
	return out
}
