package host

import (
	"fmt"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/plus3/orbit/ecs/debugui"
	debugui_ebiten "github.com/plus3/orbit/ecs/debugui/ebiten"
	"github.com/plus3/orbit/internal/config"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
)

var modeKeys = []ebiten.Key{ebiten.Key1, ebiten.Key2, ebiten.Key3, ebiten.Key4}

// Game implements ebiten.Game around a Simulation.
type Game struct {
	sim      *Simulation
	capture  *InputCapture
	renderer *Renderer
	imgui    *debugui_ebiten.ImguiBackend
	dt       float64
}

func (g *Game) Update() error {
	world := g.sim.World
	wantsKeyboard := debugui.WantsKeyboard(world)

	if !wantsKeyboard {
		if ebiten.IsKeyPressed(ebiten.KeyQ) || ebiten.IsKeyPressed(ebiten.KeyEscape) {
			return ebiten.Termination
		}
		if inpututil.IsKeyJustPressed(ebiten.KeyP) {
			g.sim.SetAnimate(!g.sim.Animating())
		}
		for i, key := range modeKeys {
			if inpututil.IsKeyJustPressed(key) {
				if err := g.switchMode(Modes[i]); err != nil {
					return err
				}
			}
		}
	}

	g.capture.Poll(debugui.WantsMouse(world), wantsKeyboard)

	if g.imgui != nil {
		g.imgui.BeginFrame()
	}
	g.sim.Step(g.dt)
	if g.imgui != nil {
		g.imgui.EndFrame()
	}

	return nil
}

func (g *Game) switchMode(mode string) error {
	if err := g.sim.SetMode(mode); err != nil {
		return err
	}
	if mode == ModePerformance {
		g.renderer.Camera = OverviewCamera()
	} else {
		g.renderer.Camera = DefaultCamera()
	}
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.renderer.Draw(screen, g.sim.Nodes)

	ebitenutil.DebugPrint(screen, fmt.Sprintf(
		"mode: %s  entities: %d  TPS: %.0f  FPS: %.0f\n[1] spin [2] scale [3] combo [4] performance  [P] pause  [Q] quit",
		g.sim.Mode(), g.sim.World.EntityCount(), ebiten.ActualTPS(), ebiten.ActualFPS()))

	if g.imgui != nil {
		g.imgui.Draw(screen)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if g.imgui != nil {
		g.imgui.Layout(outsideWidth, outsideHeight)
	}
	return outsideWidth, outsideHeight
}

// Run opens the window and blocks until it is closed.
func Run(cfg *config.Config, logger *zap.Logger, debugUI bool) error {
	ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	ebiten.SetWindowTitle(cfg.Window.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(cfg.Simulation.TickRate)

	sim := NewSimulation(cfg, logger, uint64(time.Now().UnixNano()))
	game := &Game{
		sim:      sim,
		capture:  NewInputCapture(sim.Input),
		renderer: NewRenderer(DefaultCamera()),
		dt:       1 / float64(cfg.Simulation.TickRate),
	}

	if debugUI {
		game.imgui = debugui_ebiten.NewImguiBackend(cfg.Window.Title, cfg.Window.Width, cfg.Window.Height)
		debugui.Spawn(sim.World)
		sim.World.AddSystem(debugui.System())
	}

	if err := game.switchMode(cfg.Simulation.Mode); err != nil {
		return err
	}

	logger.Info("window opening",
		zap.String("mode", cfg.Simulation.Mode),
		zap.Int("tps", cfg.Simulation.TickRate),
		zap.Bool("debug_ui", debugUI))

	if err := ebiten.RunGame(game); err != nil {
		return eris.Wrap(err, "run game")
	}
	return nil
}
