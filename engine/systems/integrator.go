package systems

import (
	"fmt"
	m "math"

	"github.com/spaghettifunk/tesseract/engine/components"
	"github.com/spaghettifunk/tesseract/engine/core"
	"github.com/spaghettifunk/tesseract/engine/math"
)

/** @brief The frame integrator configuration. */
type IntegratorConfig struct {
	/** @brief Observer speed in units per second. */
	MoveSpeed float64
	/** @brief Radians of rotation per unit of input delta. */
	RotationSensitivity float64
	/**
	 * @brief NOTE: dt is clamped to this so a stalled frame does not
	 * teleport the observer. 0 disables the clamp.
	 */
	MaxDeltaTime float64
}

func DefaultIntegratorConfig() *IntegratorConfig {
	return &IntegratorConfig{
		MoveSpeed:           1.0,
		RotationSensitivity: 0.01,
		MaxDeltaTime:        0.25,
	}
}

// Integrator advances the observer state once per frame.
type Integrator struct {
	Config *IntegratorConfig
}

func NewIntegrator(config *IntegratorConfig) (*Integrator, error) {
	if config == nil {
		config = DefaultIntegratorConfig()
	}
	if !math.IsFinite(config.MoveSpeed) || config.MoveSpeed < 0 {
		err := fmt.Errorf("func NewIntegrator - config.MoveSpeed must be finite and >= 0, got %v", config.MoveSpeed)
		core.LogError("%s", err)
		return nil, err
	}
	if !math.IsFinite(config.RotationSensitivity) {
		err := fmt.Errorf("func NewIntegrator - config.RotationSensitivity must be finite, got %v", config.RotationSensitivity)
		core.LogError("%s", err)
		return nil, err
	}
	if !math.IsFinite(config.MaxDeltaTime) || config.MaxDeltaTime < 0 {
		err := fmt.Errorf("func NewIntegrator - config.MaxDeltaTime must be finite and >= 0, got %v", config.MaxDeltaTime)
		core.LogError("%s", err)
		return nil, err
	}
	return &Integrator{Config: config}, nil
}

var defaultIntegrator = &Integrator{Config: DefaultIntegratorConfig()}

// Advance runs one frame with the default integrator configuration.
func Advance(state components.State, dt float64, in core.FrameInput) (components.State, error) {
	return defaultIntegrator.Advance(state, dt, in)
}

// Advance returns the state after dt seconds of the given input.
//
// Non-finite dt or rotation deltas are rejected: the state comes back
// unchanged together with an error wrapping core.ErrNonFiniteInput. A
// negative dt counts as zero.
//
// Rotation increments are composed in local space, horizontal first:
// orientation' = orientation · R_horizontal · R_vertical.
//
// Movement uses the orientation's local axes (x = right, z = forward,
// w = ana). The summed direction is normalized before scaling, so two
// intents at once move exactly MoveSpeed·dt.
func (ig *Integrator) Advance(state components.State, dt float64, in core.FrameInput) (components.State, error) {
	if !math.IsFinite(dt) {
		return state, fmt.Errorf("%w: dt=%v", core.ErrNonFiniteInput, dt)
	}
	if !math.IsFinite(in.Rotation.Horizontal) || !math.IsFinite(in.Rotation.Vertical) {
		return state, fmt.Errorf("%w: rotation=(%v, %v)", core.ErrNonFiniteInput, in.Rotation.Horizontal, in.Rotation.Vertical)
	}
	if ig.Config.MaxDeltaTime > 0 {
		dt = math.Clamp(dt, 0, ig.Config.MaxDeltaTime)
	} else {
		dt = m.Max(dt, 0)
	}

	next := state
	if in.Reset {
		next.Orientation.Reset()
	}

	hPlane, vPlane := in.Rotation.Planes.Planes()
	if in.Rotation.Horizontal != 0 {
		next.Orientation.Rotate(hPlane.Rotation(in.Rotation.Horizontal * ig.Config.RotationSensitivity))
	}
	if in.Rotation.Vertical != 0 {
		next.Orientation.Rotate(vPlane.Rotation(in.Rotation.Vertical * ig.Config.RotationSensitivity))
	}

	if direction := localDirection(in.Intents); direction != math.NewVec4Zero() {
		world := next.Orientation.Apply(direction.Normalize())
		next.Move(world, ig.Config.MoveSpeed*dt)
	}

	if !next.IsFinite() {
		return state, fmt.Errorf("%w: position=%+v", core.ErrStateCorrupted, next.Position)
	}
	return next, nil
}

// localDirection sums the held intents in object-local axes. Opposite
// intents cancel.
func localDirection(intents core.Intents) math.Vec4 {
	var d math.Vec4
	if intents.Has(core.StrafeRight) {
		d.X++
	}
	if intents.Has(core.StrafeLeft) {
		d.X--
	}
	if intents.Has(core.MoveForward) {
		d.Z++
	}
	if intents.Has(core.MoveBack) {
		d.Z--
	}
	if intents.Has(core.MoveAna) {
		d.W++
	}
	if intents.Has(core.MoveKata) {
		d.W--
	}
	return d
}
