package host

import (
	"image/color"
	"math"
	"testing"

	"github.com/plus3/orbit/ecs/components"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProject(t *testing.T) {
	cam := Camera{
		Eye:    components.Vec3{0, 0, 10},
		Target: components.Vec3{0, 0, 0},
		FOV:    math.Pi / 2,
		Near:   0.1,
	}

	t.Run("target lands in the centre", func(t *testing.T) {
		x, y, depth, ok := cam.Project(components.Vec3{}, 800, 600)
		require.True(t, ok)
		assert.InDelta(t, 400, x, 1e-3)
		assert.InDelta(t, 300, y, 1e-3)
		assert.InDelta(t, 10, depth, 1e-9)
	})

	t.Run("up is up and right is right", func(t *testing.T) {
		x, y, _, ok := cam.Project(components.Vec3{1, 1, 0}, 800, 600)
		require.True(t, ok)
		assert.Greater(t, x, float32(400))
		assert.Less(t, y, float32(300))

		// With a 90 degree FOV the half height maps to depth.
		_, top, _, _ := cam.Project(components.Vec3{0, 10, 0}, 800, 600)
		assert.InDelta(t, 0, top, 1e-3)
	})

	t.Run("points behind the camera are rejected", func(t *testing.T) {
		_, _, _, ok := cam.Project(components.Vec3{0, 0, 20}, 800, 600)
		assert.False(t, ok)
	})

	t.Run("farther points are smaller", func(t *testing.T) {
		xNear, _, _, _ := cam.Project(components.Vec3{1, 0, 5}, 800, 600)
		xFar, _, _, _ := cam.Project(components.Vec3{1, 0, -5}, 800, 600)
		assert.Greater(t, xNear-400, xFar-400)
	})
}

func TestRotate(t *testing.T) {
	tests := []struct {
		name  string
		point components.Vec3
		euler components.Vec3
		want  components.Vec3
	}{
		{"identity", components.Vec3{1, 2, 3}, components.Vec3{}, components.Vec3{1, 2, 3}},
		{"yaw quarter turn", components.Vec3{1, 0, 0}, components.Vec3{0, math.Pi / 2, 0}, components.Vec3{0, 0, -1}},
		{"pitch quarter turn", components.Vec3{0, 1, 0}, components.Vec3{math.Pi / 2, 0, 0}, components.Vec3{0, 0, 1}},
		{"roll quarter turn", components.Vec3{1, 0, 0}, components.Vec3{0, 0, math.Pi / 2}, components.Vec3{0, 1, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := rotate(tt.point, tt.euler)
			for i := range got {
				assert.InDelta(t, tt.want[i], got[i], 1e-9, "axis %d", i)
			}
		})
	}
}

func TestToWorld(t *testing.T) {
	n := NewNode(ShapeCube, color.RGBA{})
	n.SetPosition(components.Vec3{10, 0, 0})
	n.SetScale(components.Vec3{2, 2, 2})
	n.SetRotation(components.Vec3{0, math.Pi, 0})

	got := toWorld(components.Vec3{0.5, 0, 0}, n)
	assert.InDelta(t, 9, got[0], 1e-9)
	assert.InDelta(t, 0, got[1], 1e-9)
	assert.InDelta(t, 0, got[2], 1e-9)
}

func TestHSL(t *testing.T) {
	assert.Equal(t, color.RGBA{255, 0, 0, 255}, HSL(0, 1, 0.5))
	assert.Equal(t, color.RGBA{0, 255, 0, 255}, HSL(1.0/3, 1, 0.5))
	assert.Equal(t, color.RGBA{128, 128, 128, 255}, HSL(0.7, 0, 0.5))
	assert.Equal(t, HSL(0.25, 0.6, 0.5), HSL(1.25, 0.6, 0.5))
}

func TestNodeSet(t *testing.T) {
	var set NodeSet
	set.Add(NewNode(ShapeCube, color.RGBA{}))
	set.Add(NewNode(ShapeTile, color.RGBA{}))
	assert.Equal(t, 2, set.Len())

	set.Clear()
	assert.Equal(t, 0, set.Len())
	assert.Empty(t, set.All())
}

func TestNodeSetHSL(t *testing.T) {
	n := NewNode(ShapeTile, color.RGBA{})
	var tint components.Tintable = n
	tint.SetHSL(0, 1, 0.5)
	assert.Equal(t, color.RGBA{255, 0, 0, 255}, n.Color)
}
