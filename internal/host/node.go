package host

import (
	"image/color"
	"math"

	"github.com/plus3/orbit/ecs/components"
)

type Shape int

const (
	ShapeCube Shape = iota
	ShapeTile
)

// Node is the host's visual object. The render-sync system writes transforms
// into it; the renderer reads them in Draw.
type Node struct {
	Position components.Vec3
	Rotation components.Vec3
	Scale    components.Vec3
	Color    color.RGBA
	Shape    Shape
}

func NewNode(shape Shape, c color.RGBA) *Node {
	return &Node{
		Scale: components.Vec3{1, 1, 1},
		Color: c,
		Shape: shape,
	}
}

func (n *Node) SetPosition(v components.Vec3) { n.Position = v }
func (n *Node) SetRotation(v components.Vec3) { n.Rotation = v }
func (n *Node) SetScale(v components.Vec3)    { n.Scale = v }

func (n *Node) SetHSL(h, s, l float64) {
	n.Color = HSL(h, s, l)
}

// NodeSet holds every node the renderer draws.
type NodeSet struct {
	nodes []*Node
}

func (s *NodeSet) Add(n *Node) {
	s.nodes = append(s.nodes, n)
}

func (s *NodeSet) Clear() {
	clear(s.nodes)
	s.nodes = s.nodes[:0]
}

func (s *NodeSet) Len() int {
	return len(s.nodes)
}

func (s *NodeSet) All() []*Node {
	return s.nodes
}

// HSL converts hue, saturation and lightness, each in [0, 1], to an opaque RGBA.
func HSL(h, sat, l float64) color.RGBA {
	h = math.Mod(math.Mod(h, 1)+1, 1)
	if sat == 0 {
		v := uint8(math.Round(l * 255))
		return color.RGBA{v, v, v, 255}
	}

	var q float64
	if l < 0.5 {
		q = l * (1 + sat)
	} else {
		q = l + sat - l*sat
	}
	p := 2*l - q

	channel := func(t float64) uint8 {
		t = math.Mod(t+1, 1)
		var v float64
		switch {
		case t < 1.0/6:
			v = p + (q-p)*6*t
		case t < 0.5:
			v = q
		case t < 2.0/3:
			v = p + (q-p)*(2.0/3-t)*6
		default:
			v = p
		}
		return uint8(math.Round(v * 255))
	}

	return color.RGBA{channel(h + 1.0/3), channel(h), channel(h - 1.0/3), 255}
}
