package diorama

import (
	"errors"
	"fmt"
	"os"

	"github.com/go-gl/mathgl/mgl64"
	"gopkg.in/yaml.v3"
)

// graphNode is the manifest form of one node. Rotation is in degrees.
type graphNode struct {
	Name     string       `yaml:"name"`
	Type     string       `yaml:"type,omitempty"`
	Position *[3]float64  `yaml:"position,flow,omitempty"`
	Rotation *[3]float64  `yaml:"rotation,flow,omitempty"`
	Scale    *[3]float64  `yaml:"scale,flow,omitempty"`
	Size     *[3]float64  `yaml:"size,flow,omitempty"`
	Min      *[3]float64  `yaml:"min,flow,omitempty"`
	Max      *[3]float64  `yaml:"max,flow,omitempty"`
	Hidden   bool         `yaml:"hidden,omitempty"`
	Children []*graphNode `yaml:"children,omitempty"`
}

// LoadGraph reads a scene manifest from path. See ParseGraph.
func LoadGraph(path string) (*Node, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read graph: %w", err)
	}
	return ParseGraph(data)
}

// ParseGraph builds a node tree from a YAML scene manifest. Each entry has a
// name, an optional type (group or mesh), a local transform (position,
// rotation in degrees, scale), and children. A mesh's box is either size
// (centered) or min and max. Entries with a box default to mesh, the rest
// to group.
func ParseGraph(data []byte) (*Node, error) {
	var root graphNode
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("parse graph: %w", err)
	}
	n, err := root.build("")
	if err != nil {
		return nil, fmt.Errorf("parse graph: %w", err)
	}
	return n, nil
}

func (g *graphNode) build(path string) (*Node, error) {
	if g.Name == "" {
		return nil, fmt.Errorf("unnamed node under %q", path)
	}
	path += "/" + g.Name

	box, hasBox, err := g.bounds()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	var n *Node
	switch g.Type {
	case "mesh":
		n = NewMesh(g.Name, box)
	case "group":
		if hasBox {
			return nil, fmt.Errorf("%s: group with bounds", path)
		}
		n = NewGroup(g.Name)
	case "":
		if hasBox {
			n = NewMesh(g.Name, box)
		} else {
			n = NewGroup(g.Name)
		}
	default:
		return nil, fmt.Errorf("%s: unknown type %q", path, g.Type)
	}

	if g.Position != nil {
		n.Position = mgl64.Vec3(*g.Position)
	}
	if g.Rotation != nil {
		r := *g.Rotation
		n.Rotation = mgl64.Vec3{mgl64.DegToRad(r[0]), mgl64.DegToRad(r[1]), mgl64.DegToRad(r[2])}
	}
	if g.Scale != nil {
		n.Scale = mgl64.Vec3(*g.Scale)
	}
	n.Visible = !g.Hidden

	for _, c := range g.Children {
		child, err := c.build(path)
		if err != nil {
			return nil, err
		}
		n.AddChild(child)
	}
	return n, nil
}

func (g *graphNode) bounds() (AABB, bool, error) {
	switch {
	case g.Size != nil && (g.Min != nil || g.Max != nil):
		return AABB{}, false, errors.New("both size and min/max given")
	case g.Size != nil:
		return Box(mgl64.Vec3{}, mgl64.Vec3(*g.Size).Mul(0.5)), true, nil
	case g.Min != nil && g.Max != nil:
		box := AABB{Min: mgl64.Vec3(*g.Min), Max: mgl64.Vec3(*g.Max)}
		if box.Empty() {
			return AABB{}, false, errors.New("min exceeds max")
		}
		return box, true, nil
	case g.Min != nil || g.Max != nil:
		return AABB{}, false, errors.New("min and max must be given together")
	}
	return AABB{}, false, nil
}
