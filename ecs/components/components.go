// Package components defines the component schemas shared by the simulation
// systems and the host.
package components

import (
	"maps"
	"math"

	"github.com/plus3/orbit/ecs"
)

// Vec3 is an (x, y, z) triple.
type Vec3 [3]float64

// Transform places an entity in simulation space. Rotation holds Euler angles
// in radians (pitch, yaw, roll) and is never normalised.
type Transform struct {
	Position Vec3
	Rotation Vec3
	Scale    Vec3
}

// NewTransform returns a transform at position with no rotation and unit scale.
func NewTransform(position Vec3) Transform {
	return Transform{
		Position: position,
		Scale:    Vec3{1, 1, 1},
	}
}

// Spin is an angular velocity in radians per second, added to
// Transform.Rotation every frame.
type Spin struct {
	Speed Vec3
}

// Renderable is the external visual node a RenderHandleRef points at.
type Renderable interface {
	SetPosition(Vec3)
	SetRotation(Vec3)
	SetScale(Vec3)
}

// Tintable is implemented by render nodes whose colour can be driven from the
// simulation.
type Tintable interface {
	SetHSL(h, s, l float64)
}

// RenderHandleRef holds the renderable node for an entity. Node may be nil
// until the presentation layer has attached one.
type RenderHandleRef struct {
	Node Renderable
}

// MouseState is the mouse part of InputState.
type MouseState struct {
	Buttons map[int]bool
	Delta   [2]float64
	Wheel   float64
}

// InputState is a per-frame input mailbox. Keys and Mouse.Buttons carry level
// state; Mouse.Delta and Mouse.Wheel only hold what accumulated since the
// previous frame.
type InputState struct {
	Keys  map[string]bool
	Mouse MouseState
}

// Clone returns a copy whose maps do not alias s.
func (s InputState) Clone() InputState {
	out := s
	out.Keys = maps.Clone(s.Keys)
	out.Mouse.Buttons = maps.Clone(s.Mouse.Buttons)
	return out
}

// AnyButtonHeld reports whether any mouse button is currently pressed.
func (s InputState) AnyButtonHeld() bool {
	for _, pressed := range s.Mouse.Buttons {
		if pressed {
			return true
		}
	}
	return false
}

// PlayerControlled marks entities driven by the input systems.
type PlayerControlled struct{}

// Bob oscillates an entity's Y position around BaseY. Elapsed is advanced by
// the bob system so the phase survives between frames.
type Bob struct {
	Phase     float64
	Amplitude float64
	Frequency float64
	BaseY     float64
	Elapsed   float64
}

// ColorCycle drifts an entity's hue by Rate turns per second starting from
// Hue. Elapsed is advanced by the color-cycle system.
type ColorCycle struct {
	Hue        float64
	Rate       float64
	Saturation float64
	Lightness  float64
	Elapsed    float64
}

// CurrentHue returns Hue+Elapsed*Rate wrapped into [0, 1).
func (c ColorCycle) CurrentHue() float64 {
	return math.Mod(math.Mod(c.Hue+c.Elapsed*c.Rate, 1)+1, 1)
}

var (
	TransformType        = ecs.Define[Transform]("Transform")
	SpinType             = ecs.Define[Spin]("Spin")
	RenderHandleRefType  = ecs.Define[RenderHandleRef]("RenderHandleRef")
	InputStateType       = ecs.Define[InputState]("InputState")
	PlayerControlledType = ecs.Define[PlayerControlled]("PlayerControlled")
	BobType              = ecs.Define[Bob]("Bob")
	ColorCycleType       = ecs.Define[ColorCycle]("ColorCycle")
)
