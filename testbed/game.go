package testbed

import (
	"fmt"

	"github.com/spaghettifunk/tesseract/engine"
	"github.com/spaghettifunk/tesseract/engine/core"
)

// A scripted tour: spin in the hyper planes, drift forward, dip into ana,
// spin in the spatial planes, then snap back to the identity orientation.
const (
	phaseHyper   = 0
	phaseForward = 60
	phaseAna     = 100
	phaseSpatial = 130
	phaseReset   = 200
	tourLength   = 240
)

type TestGame struct {
	*engine.Game
}

type gameState struct {
	// Mouse delta pushed each frame while dragging.
	dragX float64
	dragY float64

	frames   uint64
	resets   int
	maxDrift float64
}

func NewTestGame(app *engine.ApplicationConfig) (*TestGame, error) {
	if app == nil {
		return nil, fmt.Errorf("testbed needs an application config")
	}
	tg := &TestGame{
		Game: &engine.Game{
			ApplicationConfig: app,
			State: &gameState{
				dragX: 3,
				dragY: 1.5,
			},
		},
	}

	tg.FnBoot = tg.Boot
	tg.FnInitialize = tg.Initialize
	tg.FnUpdate = tg.Update
	tg.FnRender = tg.Render
	tg.FnShutdown = tg.Shutdown

	return tg, nil
}

func (g *TestGame) Boot() error {
	core.LogInfo("booting testbed...")
	return nil
}

func (g *TestGame) Initialize() error {
	core.LogDebug("testbed autopilot tour is %d frames long", tourLength)
	return nil
}

// Update pushes the scripted events for this frame.
func (g *TestGame) Update(input *core.Input, frame uint64, deltaTime float64) error {
	state, ok := g.State.(*gameState)
	if !ok {
		return fmt.Errorf("unexpected testbed state %T", g.State)
	}

	var events []core.InputEvent
	switch frame % tourLength {
	case phaseHyper:
		events = append(events,
			core.ButtonPressed(core.BUTTON_LEFT),
			core.KeyPressed(core.KEY_SHIFT))
	case phaseForward:
		events = append(events,
			core.KeyReleased(core.KEY_SHIFT),
			core.ButtonReleased(core.BUTTON_LEFT),
			core.KeyPressed(core.KEY_W))
	case phaseAna:
		events = append(events,
			core.KeyReleased(core.KEY_W),
			core.KeyPressed(core.KEY_Q))
	case phaseSpatial:
		events = append(events,
			core.KeyReleased(core.KEY_Q),
			core.ButtonPressed(core.BUTTON_LEFT))
	case phaseReset:
		events = append(events,
			core.ButtonReleased(core.BUTTON_LEFT),
			core.KeyPressed(core.KEY_R))
	case phaseReset + 1:
		events = append(events, core.KeyReleased(core.KEY_R))
	}
	events = append(events, core.MouseMoved(state.dragX, state.dragY))

	for _, e := range events {
		if err := input.Push(e); err != nil {
			return err
		}
	}
	return nil
}

func (g *TestGame) Render(packet *engine.FramePacket) error {
	state := g.State.(*gameState)
	state.frames = packet.Frame + 1
	if drift := packet.State.Orientation.Deviation(); drift > state.maxDrift {
		state.maxDrift = drift
	}
	if packet.Frame%tourLength == phaseReset {
		state.resets++
	}
	return nil
}

func (g *TestGame) Shutdown() error {
	state := g.State.(*gameState)
	core.Logger().Info("testbed done", "frames", state.frames, "resets", state.resets, "max_drift", state.maxDrift)
	return nil
}
