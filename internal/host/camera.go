package host

import (
	"math"

	"github.com/plus3/orbit/ecs/components"
)

// Camera is a fixed perspective camera looking from Eye at Target with +Y up.
type Camera struct {
	Eye    components.Vec3
	Target components.Vec3
	FOV    float64 // vertical, radians
	Near   float64
}

// DefaultCamera matches the small demo scenes: a cube at the origin seen from
// above and to the side.
func DefaultCamera() Camera {
	return Camera{
		Eye:    components.Vec3{4, 3, 6},
		Target: components.Vec3{0, 0.5, 0},
		FOV:    60 * math.Pi / 180,
		Near:   0.1,
	}
}

// OverviewCamera frames the performance grid.
func OverviewCamera() Camera {
	return Camera{
		Eye:    components.Vec3{0, 30, 45},
		Target: components.Vec3{0, 0, 0},
		FOV:    60 * math.Pi / 180,
		Near:   0.1,
	}
}

func sub(a, b components.Vec3) components.Vec3 {
	return components.Vec3{a[0] - b[0], a[1] - b[1], a[2] - b[2]}
}

func dot(a, b components.Vec3) float64 {
	return a[0]*b[0] + a[1]*b[1] + a[2]*b[2]
}

func cross(a, b components.Vec3) components.Vec3 {
	return components.Vec3{
		a[1]*b[2] - a[2]*b[1],
		a[2]*b[0] - a[0]*b[2],
		a[0]*b[1] - a[1]*b[0],
	}
}

func normalize(v components.Vec3) components.Vec3 {
	l := math.Sqrt(dot(v, v))
	if l == 0 {
		return v
	}
	return components.Vec3{v[0] / l, v[1] / l, v[2] / l}
}

// Project maps a world-space point to screen pixels. depth is the distance
// along the view direction; ok is false for points behind the near plane.
func (c Camera) Project(p components.Vec3, width, height int) (x, y float32, depth float64, ok bool) {
	forward := normalize(sub(c.Target, c.Eye))
	right := normalize(cross(forward, components.Vec3{0, 1, 0}))
	up := cross(right, forward)

	v := sub(p, c.Eye)
	depth = dot(v, forward)
	if depth <= c.Near {
		return 0, 0, depth, false
	}

	focal := float64(height) / 2 / math.Tan(c.FOV/2)
	sx := float64(width)/2 + dot(v, right)/depth*focal
	sy := float64(height)/2 - dot(v, up)/depth*focal
	return float32(sx), float32(sy), depth, true
}

// rotate applies Euler angles in X, Y, Z order, so the Z rotation is applied
// to the point first.
func rotate(v, euler components.Vec3) components.Vec3 {
	sx, cx := math.Sincos(euler[0])
	sy, cy := math.Sincos(euler[1])
	sz, cz := math.Sincos(euler[2])

	x := v[0]*cz - v[1]*sz
	y := v[0]*sz + v[1]*cz
	z := v[2]

	x, z = x*cy+z*sy, -x*sy+z*cy

	y, z = y*cx-z*sx, y*sx+z*cx

	return components.Vec3{x, y, z}
}

// toWorld scales, rotates and then translates a local point by n's transform.
func toWorld(local components.Vec3, n *Node) components.Vec3 {
	scaled := components.Vec3{local[0] * n.Scale[0], local[1] * n.Scale[1], local[2] * n.Scale[2]}
	r := rotate(scaled, n.Rotation)
	return components.Vec3{r[0] + n.Position[0], r[1] + n.Position[1], r[2] + n.Position[2]}
}

var cubeCorners = [8]components.Vec3{
	{-0.5, -0.5, -0.5}, {0.5, -0.5, -0.5}, {0.5, 0.5, -0.5}, {-0.5, 0.5, -0.5},
	{-0.5, -0.5, 0.5}, {0.5, -0.5, 0.5}, {0.5, 0.5, 0.5}, {-0.5, 0.5, 0.5},
}

var cubeEdges = [12][2]int{
	{0, 1}, {1, 2}, {2, 3}, {3, 0},
	{4, 5}, {5, 6}, {6, 7}, {7, 4},
	{0, 4}, {1, 5}, {2, 6}, {3, 7},
}
