package host

import (
	"image/color"
	"sort"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

var (
	backgroundColor = color.RGBA{24, 26, 32, 255}
	gridColor       = color.RGBA{60, 64, 72, 255}
)

type projectedTile struct {
	x, y  float32
	size  float32
	depth float64
	color color.RGBA
}

// Renderer draws a NodeSet through a Camera. Cubes are drawn as wireframes and
// tiles as depth-sorted filled squares.
type Renderer struct {
	Camera Camera
	tiles  []projectedTile
}

func NewRenderer(camera Camera) *Renderer {
	return &Renderer{Camera: camera}
}

func (r *Renderer) Draw(screen *ebiten.Image, nodes *NodeSet) {
	screen.Fill(backgroundColor)
	width, height := screen.Bounds().Dx(), screen.Bounds().Dy()

	r.drawGrid(screen, width, height)

	r.tiles = r.tiles[:0]
	for _, n := range nodes.All() {
		switch n.Shape {
		case ShapeCube:
			r.drawCube(screen, n, width, height)
		case ShapeTile:
			if tile, ok := r.projectTile(n, width, height); ok {
				r.tiles = append(r.tiles, tile)
			}
		}
	}

	sort.Slice(r.tiles, func(i, j int) bool {
		return r.tiles[i].depth > r.tiles[j].depth
	})
	for _, t := range r.tiles {
		vector.DrawFilledRect(screen, t.x-t.size/2, t.y-t.size/2, t.size, t.size, t.color, false)
	}
}

func (r *Renderer) drawCube(screen *ebiten.Image, n *Node, width, height int) {
	var xs, ys [8]float32
	var visible [8]bool
	for i, corner := range cubeCorners {
		xs[i], ys[i], _, visible[i] = r.Camera.Project(toWorld(corner, n), width, height)
	}

	for _, edge := range cubeEdges {
		a, b := edge[0], edge[1]
		if !visible[a] || !visible[b] {
			continue
		}
		vector.StrokeLine(screen, xs[a], ys[a], xs[b], ys[b], 2, n.Color, true)
	}
}

func (r *Renderer) projectTile(n *Node, width, height int) (projectedTile, bool) {
	x, y, depth, ok := r.Camera.Project(n.Position, width, height)
	if !ok {
		return projectedTile{}, false
	}
	if x < 0 || y < 0 || x > float32(width) || y > float32(height) {
		return projectedTile{}, false
	}

	// Apparent size of a unit edge at this depth.
	_, top, _, _ := r.Camera.Project(toWorld([3]float64{0, 0.5, 0}, n), width, height)
	size := max(2*abs32(y-top), 1)

	return projectedTile{x: x, y: y, size: size, depth: depth, color: n.Color}, true
}

func (r *Renderer) drawGrid(screen *ebiten.Image, width, height int) {
	const half = 25
	for i := -half; i <= half; i++ {
		f := float64(i)
		r.line(screen, [3]float64{f, 0, -half}, [3]float64{f, 0, half}, width, height)
		r.line(screen, [3]float64{-half, 0, f}, [3]float64{half, 0, f}, width, height)
	}
}

func (r *Renderer) line(screen *ebiten.Image, a, b [3]float64, width, height int) {
	x0, y0, _, ok0 := r.Camera.Project(a, width, height)
	x1, y1, _, ok1 := r.Camera.Project(b, width, height)
	if !ok0 || !ok1 {
		return
	}
	vector.StrokeLine(screen, x0, y0, x1, y1, 1, gridColor, false)
}

func abs32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
