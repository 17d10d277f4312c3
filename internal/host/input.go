package host

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/orbit/ecs/systems"
)

// keyBindings maps physical keys to the codes the movement system reads.
// Arrow keys alias WASD.
var keyBindings = map[ebiten.Key]string{
	ebiten.KeyW:          systems.KeyForward,
	ebiten.KeyArrowUp:    systems.KeyForward,
	ebiten.KeyS:          systems.KeyBack,
	ebiten.KeyArrowDown:  systems.KeyBack,
	ebiten.KeyA:          systems.KeyLeft,
	ebiten.KeyArrowLeft:  systems.KeyLeft,
	ebiten.KeyD:          systems.KeyRight,
	ebiten.KeyArrowRight: systems.KeyRight,
}

// buttonBindings numbers mouse buttons the way browsers do.
var buttonBindings = map[ebiten.MouseButton]int{
	ebiten.MouseButtonLeft:   0,
	ebiten.MouseButtonMiddle: 1,
	ebiten.MouseButtonRight:  2,
}

// wheelScale converts ebiten's wheel ticks (positive = up) into pixel deltas
// where positive means scrolling down.
const wheelScale = -100

// resolveKeys folds every binding into one state per code. A code is down if
// any key bound to it is down.
func resolveKeys(pressed func(ebiten.Key) bool) map[string]bool {
	states := make(map[string]bool, 4)
	for key, code := range keyBindings {
		states[code] = states[code] || pressed(key)
	}
	return states
}

// InputCapture polls ebiten once per tick and feeds the accumulator.
type InputCapture struct {
	acc     *systems.InputAccumulator
	lastX   int
	lastY   int
	hasLast bool
}

func NewInputCapture(acc *systems.InputAccumulator) *InputCapture {
	return &InputCapture{acc: acc}
}

// Poll reads devices. When the debug UI owns the mouse or keyboard, those
// devices are reported as idle so the simulation does not react to UI work.
func (c *InputCapture) Poll(uiWantsMouse, uiWantsKeyboard bool) {
	if uiWantsKeyboard {
		for _, code := range keyBindings {
			c.acc.KeyUp(code)
		}
	} else {
		for code, down := range resolveKeys(ebiten.IsKeyPressed) {
			if down {
				c.acc.KeyDown(code)
			} else {
				c.acc.KeyUp(code)
			}
		}
	}

	x, y := ebiten.CursorPosition()
	for button, index := range buttonBindings {
		if !uiWantsMouse && ebiten.IsMouseButtonPressed(button) {
			c.acc.ButtonDown(index)
		} else {
			c.acc.ButtonUp(index)
		}
	}

	if c.hasLast && !uiWantsMouse {
		c.acc.PointerMove(float64(x-c.lastX), float64(y-c.lastY))
	}
	c.lastX, c.lastY, c.hasLast = x, y, true

	if _, dy := ebiten.Wheel(); dy != 0 && !uiWantsMouse {
		c.acc.Wheel(dy * wheelScale)
	}
}
