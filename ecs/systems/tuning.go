// Package systems holds the per-frame simulation systems. Every system is a
// function of (world, dt) and keeps no state between frames.
package systems

import "math"

// Tuning holds the constants of the input-driven systems.
type Tuning struct {
	// MoveSpeed is in units per second.
	MoveSpeed float64
	// RotateSensitivity is radians per pixel of pointer travel.
	RotateSensitivity float64
	// WheelSensitivity scales wheel delta before exponentiation.
	WheelSensitivity float64
	MinScale         float64
	MaxScale         float64
	// PitchLimit bounds |pitch| so the view never flips over the pole.
	PitchLimit float64
}

// DefaultTuning returns the reference constants.
func DefaultTuning() Tuning {
	return Tuning{
		MoveSpeed:         3,
		RotateSensitivity: 0.005,
		WheelSensitivity:  0.001,
		MinScale:          0.2,
		MaxScale:          5,
		PitchLimit:        math.Pi/2 - 0.01,
	}
}
