package host

import (
	"image/color"
	"math"
	"math/rand/v2"

	"github.com/plus3/orbit/ecs"
	"github.com/plus3/orbit/ecs/components"
	"github.com/plus3/orbit/ecs/systems"
	"github.com/plus3/orbit/internal/config"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
)

const (
	ModeSpin        = "spin"
	ModeScale       = "scale"
	ModeCombo       = "combo"
	ModePerformance = "performance"
)

// Modes lists the demo modes in hotkey order.
var Modes = []string{ModeSpin, ModeScale, ModeCombo, ModePerformance}

var (
	cubeColor   = color.RGBA{255, 140, 66, 255}
	playerColor = color.RGBA{102, 204, 255, 255}
)

const (
	tileScale      = 0.45
	tileSaturation = 0.6
	tileLightness  = 0.5
	// hueDrift is turns per second at speed 1.
	hueDrift       = 0.05
)

// scene remembers what a mode created so it can be torn down.
type scene struct {
	entities []ecs.EntityId
	systems  []ecs.SystemHandle
}

// Simulation owns the World and the demo modes. It never touches ebiten, so
// the stress command can drive it headless.
type Simulation struct {
	World *ecs.World
	Input *systems.InputAccumulator
	Nodes *NodeSet

	cfg         *config.Config
	tuning      systems.Tuning
	logger      *zap.Logger
	rng         *rand.Rand
	inputEntity ecs.EntityId
	mode        string
	animate     bool
	scene       scene
}

// TuningFromConfig overlays the configured constants on the default tuning.
func TuningFromConfig(cfg config.TuningConfig) systems.Tuning {
	tuning := systems.DefaultTuning()
	tuning.MoveSpeed = cfg.MoveSpeed
	tuning.RotateSensitivity = cfg.RotateSensitivity
	tuning.WheelSensitivity = cfg.WheelSensitivity
	tuning.MinScale = cfg.MinScale
	tuning.MaxScale = cfg.MaxScale
	return tuning
}

func NewSimulation(cfg *config.Config, logger *zap.Logger, seed uint64) *Simulation {
	world := ecs.NewWorld(ecs.WithLogger(logger), ecs.WithCapacity(cfg.Performance.Count+16))

	s := &Simulation{
		World:   world,
		Input:   systems.NewInputAccumulator(),
		Nodes:   &NodeSet{},
		cfg:     cfg,
		tuning:  TuningFromConfig(cfg.Tuning),
		logger:  logger,
		rng:     rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		animate: cfg.Performance.Animate,
	}

	s.inputEntity = systems.NewInputEntity(world)
	world.AddSystem(systems.IngestInput(s.Input, s.inputEntity))
	return s
}

func (s *Simulation) Mode() string {
	return s.mode
}

// SetMode tears down the current mode and builds name. Selecting the active
// mode rebuilds it.
func (s *Simulation) SetMode(name string) error {
	if !config.ValidMode(name) {
		return eris.Errorf("unknown mode %q", name)
	}

	s.teardown()

	switch name {
	case ModeSpin:
		s.setupSpin()
	case ModeScale:
		s.setupScale()
	case ModeCombo:
		s.setupCombo()
	case ModePerformance:
		s.setupPerformance()
	}
	s.mode = name

	s.logger.Info("mode started",
		zap.String("mode", name),
		zap.Int("entities", len(s.scene.entities)),
		zap.Int("systems", len(s.scene.systems)))
	return nil
}

func (s *Simulation) Animating() bool {
	return s.animate
}

// SetAnimate pauses or resumes the performance scene's per-tile systems. Tiles
// keep their state while paused. Outside performance mode it only records the
// setting for the next time that mode starts.
func (s *Simulation) SetAnimate(on bool) {
	if s.animate == on {
		return
	}
	s.animate = on

	if s.mode == ModePerformance {
		s.removeSystems()
		s.addSystems(s.performanceSystems()...)
	}
	s.logger.Info("animation toggled", zap.Bool("animate", on))
}

// Step advances the World by dt seconds.
func (s *Simulation) Step(dt float64) {
	s.World.Update(dt)
}

func (s *Simulation) teardown() {
	for _, id := range s.scene.entities {
		s.World.DestroyEntity(id)
	}
	s.removeSystems()
	s.scene = scene{}
	s.Nodes.Clear()
}

func (s *Simulation) removeSystems() {
	for _, handle := range s.scene.systems {
		s.World.RemoveSystem(handle)
	}
	s.scene.systems = nil
}

func (s *Simulation) addSystems(list ...ecs.System) {
	for _, sys := range list {
		s.scene.systems = append(s.scene.systems, s.World.AddSystem(sys))
	}
}

func (s *Simulation) spawnNode(transform components.Transform, node *Node) ecs.EntityId {
	id := s.World.CreateEntity()
	ecs.Must(ecs.AddComponent(s.World, id, components.TransformType, transform))
	ecs.Must(ecs.AddComponent(s.World, id, components.RenderHandleRefType, components.RenderHandleRef{Node: node}))
	s.Nodes.Add(node)
	s.scene.entities = append(s.scene.entities, id)
	return id
}

func (s *Simulation) spawnPlayer() ecs.EntityId {
	id := s.spawnNode(components.NewTransform(components.Vec3{0, 0.5, 0}), NewNode(ShapeCube, playerColor))
	ecs.Must(ecs.AddComponent(s.World, id, components.PlayerControlledType, components.PlayerControlled{}))
	return id
}

func (s *Simulation) setupSpin() {
	id := s.spawnNode(components.NewTransform(components.Vec3{0, 0.5, 0}), NewNode(ShapeCube, cubeColor))
	ecs.Must(ecs.AddComponent(s.World, id, components.SpinType, components.Spin{Speed: components.Vec3{0, 1, 0}}))

	s.addSystems(ecs.NewSystem("spin", systems.Spin), ecs.NewSystem("render-sync", systems.RenderSync))
}

func (s *Simulation) setupScale() {
	s.spawnPlayer()
	s.addSystems(systems.Scale(s.tuning), ecs.NewSystem("render-sync", systems.RenderSync))
}

func (s *Simulation) setupCombo() {
	s.spawnPlayer()
	s.addSystems(
		systems.Move(s.tuning),
		systems.Rotate(s.tuning),
		systems.Scale(s.tuning),
		ecs.NewSystem("render-sync", systems.RenderSync),
	)
}

// setupPerformance lays Count tiles on a grid centred on the origin. Each tile
// gets a random phase shared by its spin and bob so neighbours drift apart.
func (s *Simulation) setupPerformance() {
	perf := s.cfg.Performance
	rows := (perf.Count + perf.Columns - 1) / perf.Columns
	s.scene.entities = make([]ecs.EntityId, 0, perf.Count)

	for i := 0; i < perf.Count; i++ {
		x := float64(i%perf.Columns) - float64(perf.Columns)/2
		z := float64(i/perf.Columns) - float64(rows)/2
		phase := s.rng.Float64() * 2 * math.Pi
		hue := s.rng.Float64()

		transform := components.Transform{
			Position: components.Vec3{x * perf.Spacing, 0, z * perf.Spacing},
			Scale:    components.Vec3{tileScale, tileScale, tileScale},
		}
		if perf.Rotate {
			transform.Rotation[1] = phase * 0.5
		}

		id := s.spawnNode(transform, NewNode(ShapeTile, HSL(hue, tileSaturation, tileLightness)))

		if perf.Rotate {
			ecs.Must(ecs.AddComponent(s.World, id, components.SpinType, components.Spin{
				Speed: components.Vec3{0, 0.5 * perf.Speed, 0},
			}))
		}
		if perf.Bob {
			ecs.Must(ecs.AddComponent(s.World, id, components.BobType, components.Bob{
				Phase:     phase,
				Amplitude: perf.BobAmplitude,
				Frequency: perf.Speed,
			}))
		}
		if perf.ColorCycle {
			ecs.Must(ecs.AddComponent(s.World, id, components.ColorCycleType, components.ColorCycle{
				Hue:        hue,
				Rate:       hueDrift * perf.Speed,
				Saturation: tileSaturation,
				Lightness:  tileLightness,
			}))
		}
	}

	s.addSystems(s.performanceSystems()...)
}

// performanceSystems lists the enabled per-tile systems followed by
// render-sync. While paused only render-sync runs.
func (s *Simulation) performanceSystems() []ecs.System {
	perf := s.cfg.Performance
	list := make([]ecs.System, 0, 4)
	if s.animate {
		if perf.Rotate {
			list = append(list, ecs.NewSystem("spin", systems.Spin))
		}
		if perf.Bob {
			list = append(list, ecs.NewSystem("bob", systems.Bob))
		}
		if perf.ColorCycle {
			list = append(list, ecs.NewSystem("color-cycle", systems.ColorCycle))
		}
	}
	return append(list, ecs.NewSystem("render-sync", systems.RenderSync))
}
