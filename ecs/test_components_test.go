package ecs_test

import "github.com/plus3/orbit/ecs"

// Common test component types
type Position struct {
	X, Y float32
}

type Velocity struct {
	DX, DY float32
}

type Name struct {
	Value string
}

type Health struct {
	Current int
	Max     int
}

type PlayerController struct{}

type Score int32

type Inventory struct {
	Items []string
}

var (
	PositionType         = ecs.Define[Position]("Position")
	VelocityType         = ecs.Define[Velocity]("Velocity")
	NameType             = ecs.Define[Name]("Name")
	HealthType           = ecs.Define[Health]("Health")
	PlayerControllerType = ecs.Define[PlayerController]("PlayerController")
	ScoreType            = ecs.Define[Score]("Score")
	InventoryType        = ecs.Define[Inventory]("Inventory")
)

func mustAdd[T any](w *ecs.World, id ecs.EntityId, ct ecs.ComponentType[T], value T) {
	if _, err := ecs.AddComponent(w, id, ct, value); err != nil {
		panic(err)
	}
}
