package host

import (
	"math"
	"testing"

	"github.com/plus3/orbit/ecs"
	"github.com/plus3/orbit/ecs/components"
	"github.com/plus3/orbit/ecs/systems"
	"github.com/plus3/orbit/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestSimulation(t *testing.T, mutate func(*config.Config)) *Simulation {
	t.Helper()
	cfg := config.Defaults()
	cfg.Performance.Count = 250
	cfg.Performance.Columns = 10
	if mutate != nil {
		mutate(cfg)
	}
	return NewSimulation(cfg, zap.NewNop(), 1)
}

func systemNames(w *ecs.World) []string {
	var names []string
	for _, sys := range w.Stats().Systems {
		names = append(names, sys.Name)
	}
	return names
}

func TestSetModeUnknown(t *testing.T) {
	sim := newTestSimulation(t, nil)
	assert.Error(t, sim.SetMode("warp"))
	assert.Equal(t, "", sim.Mode())
}

func TestSpinMode(t *testing.T) {
	sim := newTestSimulation(t, nil)
	require.NoError(t, sim.SetMode(ModeSpin))

	assert.Equal(t, []string{"ingest-input", "spin", "render-sync"}, systemNames(sim.World))
	require.Equal(t, 1, sim.Nodes.Len())

	for i := 0; i < 4; i++ {
		sim.Step(0.5)
	}

	node := sim.Nodes.All()[0]
	assert.InDelta(t, 2.0, node.Rotation[1], 1e-9)
	assert.Equal(t, components.Vec3{0, 0.5, 0}, node.Position)
}

func TestScaleMode(t *testing.T) {
	sim := newTestSimulation(t, nil)
	require.NoError(t, sim.SetMode(ModeScale))

	sim.Input.Wheel(-100)
	sim.Step(1.0 / 60)

	node := sim.Nodes.All()[0]
	assert.InDelta(t, 1.10517, node.Scale[0], 1e-4)

	sim.Step(1.0 / 60)
	assert.InDelta(t, 1.10517, node.Scale[0], 1e-4, "wheel is consumed once")
}

func TestComboMode(t *testing.T) {
	sim := newTestSimulation(t, nil)
	require.NoError(t, sim.SetMode(ModeCombo))
	assert.Equal(t, []string{"ingest-input", "move", "rotate", "scale", "render-sync"}, systemNames(sim.World))

	sim.Input.KeyDown(systems.KeyForward)
	sim.Step(0.5)
	sim.Input.KeyUp(systems.KeyForward)
	sim.Step(0.5)

	node := sim.Nodes.All()[0]
	assert.InDelta(t, -1.5, node.Position[2], 1e-9)

	sim.Input.ButtonDown(0)
	sim.Input.PointerMove(100, 0)
	sim.Step(0.1)
	assert.InDelta(t, -0.5, node.Rotation[1], 1e-9)
}

func TestPerformanceMode(t *testing.T) {
	sim := newTestSimulation(t, nil)
	require.NoError(t, sim.SetMode(ModePerformance))

	assert.Equal(t, []string{"ingest-input", "spin", "bob", "render-sync"}, systemNames(sim.World))
	assert.Len(t, sim.World.QueryEntities(components.TransformType, components.RenderHandleRefType), 250)
	assert.Equal(t, 250, sim.Nodes.Len())

	before := sim.World.QueryEntities(components.BobType)
	require.NotEmpty(t, before)

	sim.Step(0.25)

	stats := sim.World.Stats()
	for _, sys := range stats.Systems {
		assert.Equal(t, int64(1), sys.ExecutionCount, sys.Name)
	}

	for _, node := range sim.Nodes.All() {
		assert.LessOrEqual(t, node.Position[1], sim.cfg.Performance.BobAmplitude+1e-9)
		assert.Equal(t, tileScale, node.Scale[0])
	}
}

func TestPerformanceModeToggles(t *testing.T) {
	sim := newTestSimulation(t, func(cfg *config.Config) {
		cfg.Performance.Rotate = false
		cfg.Performance.Bob = false
	})
	require.NoError(t, sim.SetMode(ModePerformance))

	assert.Equal(t, []string{"ingest-input", "render-sync"}, systemNames(sim.World))
	assert.Empty(t, sim.World.QueryEntities(components.SpinType))
	assert.Empty(t, sim.World.QueryEntities(components.BobType))
	assert.Empty(t, sim.World.QueryEntities(components.ColorCycleType))
}

func TestSwitchingModesTearsDown(t *testing.T) {
	sim := newTestSimulation(t, nil)
	baseline := sim.World.EntityCount()

	for _, mode := range []string{ModePerformance, ModeCombo, ModeSpin, ModeSpin} {
		require.NoError(t, sim.SetMode(mode))
		sim.Step(1.0 / 60)
	}

	assert.Equal(t, ModeSpin, sim.Mode())
	assert.Equal(t, baseline+1, sim.World.EntityCount())
	assert.Equal(t, 1, sim.Nodes.Len())
	assert.Equal(t, []string{"ingest-input", "spin", "render-sync"}, systemNames(sim.World))
	assert.Empty(t, sim.World.QueryEntities(components.PlayerControlledType))
	assert.Empty(t, sim.World.QueryEntities(components.BobType))

	// Input survives mode changes.
	_, _, ok := ecs.Singleton(sim.World, components.InputStateType)
	assert.True(t, ok)
}

func TestTuningFromConfig(t *testing.T) {
	cfg := config.Defaults().Tuning
	cfg.MoveSpeed = 9
	cfg.MaxScale = 2

	tuning := TuningFromConfig(cfg)
	assert.Equal(t, 9.0, tuning.MoveSpeed)
	assert.Equal(t, 2.0, tuning.MaxScale)
	assert.Equal(t, systems.DefaultTuning().PitchLimit, tuning.PitchLimit)
}

func TestPerformanceColorCycle(t *testing.T) {
	sim := newTestSimulation(t, func(cfg *config.Config) {
		cfg.Performance.ColorCycle = true
		cfg.Performance.Speed = 2
	})
	require.NoError(t, sim.SetMode(ModePerformance))
	assert.Equal(t, []string{"ingest-input", "spin", "bob", "color-cycle", "render-sync"}, systemNames(sim.World))

	ids := sim.World.QueryEntities(components.ColorCycleType)
	require.Len(t, ids, 250)

	before := make(map[ecs.EntityId]float64, len(ids))
	for _, id := range ids {
		c, _ := ecs.GetComponent(sim.World, id, components.ColorCycleType)
		before[id] = c.CurrentHue()
	}

	const dt = 0.25
	sim.Step(dt)

	for _, id := range ids {
		c, _ := ecs.GetComponent(sim.World, id, components.ColorCycleType)
		want := math.Mod(before[id]+hueDrift*dt*2, 1)
		assert.InDelta(t, want, c.CurrentHue(), 1e-9)

		ref, _ := ecs.GetComponent(sim.World, id, components.RenderHandleRefType)
		assert.Equal(t, HSL(c.CurrentHue(), tileSaturation, tileLightness), ref.Node.(*Node).Color)
	}
}

func TestPerformanceAnimateOff(t *testing.T) {
	sim := newTestSimulation(t, func(cfg *config.Config) {
		cfg.Performance.Animate = false
		cfg.Performance.ColorCycle = true
	})
	require.NoError(t, sim.SetMode(ModePerformance))

	assert.False(t, sim.Animating())
	assert.Equal(t, []string{"ingest-input", "render-sync"}, systemNames(sim.World))

	id := sim.World.QueryEntities(components.SpinType)[0]
	before := transformFor(t, sim.World, id)
	sim.Step(0.5)
	assert.Equal(t, before, transformFor(t, sim.World, id))
}

func TestSetAnimate(t *testing.T) {
	sim := newTestSimulation(t, nil)
	require.NoError(t, sim.SetMode(ModePerformance))
	running := []string{"ingest-input", "spin", "bob", "render-sync"}
	require.Equal(t, running, systemNames(sim.World))

	id := sim.World.QueryEntities(components.SpinType)[0]

	sim.SetAnimate(false)
	assert.Equal(t, []string{"ingest-input", "render-sync"}, systemNames(sim.World))
	paused := transformFor(t, sim.World, id)
	sim.Step(0.5)
	assert.Equal(t, paused, transformFor(t, sim.World, id))

	sim.SetAnimate(true)
	assert.Equal(t, running, systemNames(sim.World))
	sim.Step(0.5)
	assert.InDelta(t, paused.Rotation[1]+0.25, transformFor(t, sim.World, id).Rotation[1], 1e-9)

	t.Run("outside performance mode the setting carries over", func(t *testing.T) {
		require.NoError(t, sim.SetMode(ModeSpin))
		sim.SetAnimate(false)
		assert.Equal(t, []string{"ingest-input", "spin", "render-sync"}, systemNames(sim.World))

		require.NoError(t, sim.SetMode(ModePerformance))
		assert.Equal(t, []string{"ingest-input", "render-sync"}, systemNames(sim.World))
	})
}

func transformFor(t *testing.T, w *ecs.World, id ecs.EntityId) components.Transform {
	t.Helper()
	tr, ok := ecs.GetComponent(w, id, components.TransformType)
	require.True(t, ok)
	return tr
}
