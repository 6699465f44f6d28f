package diorama

import (
	"image/color"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// boxEdges lists the corner index pairs of an AABB's twelve edges, using
// the bit order of AABB.Corners.
var boxEdges = [12][2]int{
	{0, 1}, {2, 3}, {4, 5}, {6, 7},
	{0, 2}, {1, 3}, {4, 6}, {5, 7},
	{0, 4}, {1, 5}, {2, 6}, {3, 7},
}

var (
	edgeDay         = color.RGBA{0x6b, 0x5b, 0x63, 0xff}
	edgeNight       = color.RGBA{0x9a, 0xa8, 0xd0, 0xff}
	edgeInteractive = color.RGBA{0x3a, 0x7b, 0xd5, 0xff}
	edgeHovered     = color.RGBA{0xff, 0xcc, 0x33, 0xff}
	flameColor      = color.RGBA{0xff, 0xaa, 0x33, 0xff}
)

// Draw renders a wireframe preview of the scene into screen: every visible
// mesh's bounds, the hovered node highlighted, and the flame particles.
// Queued screenshots are captured at the end.
func (s *Scene) Draw(screen *ebiten.Image) {
	screen.Fill(s.ClearColor.RGBA())
	if s.ready {
		var hovered *Node
		if s.hover != nil {
			hovered = s.hover.Current()
		}
		s.root.Walk(func(n *Node) bool {
			if !n.Visible || n.IsDisposed() {
				return false
			}
			if n.IsMesh() && !n.Bounds.Empty() && !collapsed(n) {
				s.drawBounds(screen, n, s.edgeColor(n, hovered))
			}
			return true
		})
		for _, e := range s.driver.Emitters() {
			s.drawFlame(screen, e)
		}
	}
	s.flushScreenshots(screen)
}

func (s *Scene) edgeColor(n, hovered *Node) color.RGBA {
	switch {
	case n == hovered:
		return edgeHovered
	case n.Roles.Has(RoleInteractive):
		return edgeInteractive
	case s.theme.night:
		return edgeNight
	default:
		return edgeDay
	}
}

// collapsed reports whether the node is scaled to nothing on some axis
// (an intro node that has not been revealed yet).
func collapsed(n *Node) bool {
	return n.Scale.X() == 0 || n.Scale.Y() == 0 || n.Scale.Z() == 0
}

func (s *Scene) drawBounds(screen *ebiten.Image, n *Node, clr color.RGBA) {
	var pts [8][2]float32
	for i, c := range n.Bounds.Corners() {
		x, y, ok := s.camera.Project(n.LocalToWorld(c))
		if !ok {
			return
		}
		pts[i] = [2]float32{float32(x), float32(y)}
	}
	width := float32(1)
	if clr == edgeHovered {
		width = 2
	}
	for _, e := range boxEdges {
		a, b := pts[e[0]], pts[e[1]]
		vector.StrokeLine(screen, a[0], a[1], b[0], b[1], width, clr, true)
	}
}

func (s *Scene) drawFlame(screen *ebiten.Image, e *FlameEmitter) {
	if e.Node == nil || !e.Node.Visible {
		return
	}
	for i := 0; i < e.Len(); i++ {
		x, y, ok := s.camera.Project(e.Node.LocalToWorld(e.Particle(i)))
		if !ok {
			continue
		}
		sz := float32(e.Size(i) / 10)
		vector.DrawFilledRect(screen, float32(x)-sz/2, float32(y)-sz/2, sz, sz, flameColor, true)
	}
}

// ScreenPoint returns the screen position of node's bounds center, for
// aiming scripted input. ok is false when the node is behind the camera.
func (s *Scene) ScreenPoint(n *Node) (x, y float64, ok bool) {
	c := mgl64.Vec3{}
	if !n.Bounds.Empty() {
		c = n.Bounds.Center()
	}
	return s.camera.Project(n.LocalToWorld(c))
}
