package engine

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/spaghettifunk/tesseract/engine/components"
	"github.com/spaghettifunk/tesseract/engine/config"
	"github.com/spaghettifunk/tesseract/engine/core"
	"github.com/spaghettifunk/tesseract/engine/geometry"
	"github.com/spaghettifunk/tesseract/engine/projection"
	"github.com/spaghettifunk/tesseract/engine/renderer"
	"github.com/spaghettifunk/tesseract/engine/systems"
)

type Stage uint8

const (
	// Engine is in an uninitialized state
	EngineStageUninitialized Stage = iota
	// Engine initialization is complete
	EngineStageInitialized
	// Engine is currently running
	EngineStageRunning
	// Engine is in the process of shutting down
	EngineStageShuttingDown
)

const inputQueueSize = 256

type Engine struct {
	currentStage Stage
	gameInstance *Game
	isRunning    atomic.Bool
	sessionID    uuid.UUID

	config     *config.Config
	updates    <-chan *config.Config
	hypercube  *geometry.Hypercube
	integrator *systems.Integrator
	mode       projection.Mode
	params     projection.Params

	state   components.State
	input   *core.Input
	backend renderer.RendererBackend
	clock   *core.Clock
	metrics *core.Metrics

	lines []float32
	axes  []int
	frame uint64
}

func New(g *Game, cfg *config.Config, backend renderer.RendererBackend) (*Engine, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	if err := cfg.Validate(); err != nil {
		core.LogError("%s", err)
		return nil, err
	}
	if backend == nil {
		backend = &renderer.NullBackend{}
	}
	integrator, err := systems.NewIntegrator(cfg.IntegratorConfig())
	if err != nil {
		return nil, err
	}
	mode, params, err := cfg.ProjectionParams()
	if err != nil {
		return nil, err
	}

	return &Engine{
		currentStage: EngineStageUninitialized,
		gameInstance: g,
		sessionID:    uuid.New(),
		config:       cfg,
		integrator:   integrator,
		mode:         mode,
		params:       params,
		state:        components.NewStateWithPolicy(cfg.Integrator.RenormalizeEvery, cfg.Integrator.DriftTolerance),
		input:        core.NewInput(inputQueueSize, nil),
		backend:      backend,
		clock:        core.NewClock(),
		metrics:      core.NewMetrics(),
	}, nil
}

// Initialize builds the static topology and starts the renderer backend.
func (e *Engine) Initialize() error {
	if e.currentStage != EngineStageUninitialized {
		return fmt.Errorf("engine already initialized")
	}
	e.hypercube = geometry.NewHypercube(e.config.Hypercube.Size)
	e.axes = e.hypercube.Axes()
	core.LogInfo("session %s: hypercube size %g, %d vertices, %d edges, %s projection",
		e.sessionID, e.hypercube.Size, len(e.hypercube.Vertices), len(e.hypercube.Edges), e.mode)

	if e.gameInstance != nil && e.gameInstance.FnBoot != nil {
		if err := e.gameInstance.FnBoot(); err != nil {
			core.LogError("game boot failed: %s", err)
			return err
		}
	}

	app := e.appConfig()
	if err := e.backend.Initialize(app.Name, app.Width, app.Height); err != nil {
		return err
	}

	if e.gameInstance != nil && e.gameInstance.FnInitialize != nil {
		if err := e.gameInstance.FnInitialize(); err != nil {
			return err
		}
	}
	e.currentStage = EngineStageInitialized
	return nil
}

func (e *Engine) appConfig() *ApplicationConfig {
	if e.gameInstance != nil && e.gameInstance.ApplicationConfig != nil {
		return e.gameInstance.ApplicationConfig
	}
	return &ApplicationConfig{
		Name:    e.config.Application.Name,
		Width:   uint32(e.config.Output.Width),
		Height:  uint32(e.config.Output.Height),
		Workers: e.config.Application.Workers,
	}
}

// WatchConfig makes the engine apply configs received on updates between
// frames.
func (e *Engine) WatchConfig(updates <-chan *config.Config) {
	e.updates = updates
}

// Input is where the host pushes raw events. Safe for concurrent use.
func (e *Engine) Input() *core.Input {
	return e.input
}

// State returns a copy of the current observer state.
func (e *Engine) State() components.State {
	return e.state
}

func (e *Engine) Hypercube() *geometry.Hypercube {
	return e.hypercube
}

func (e *Engine) SessionID() uuid.UUID {
	return e.sessionID
}

// Run steps frames at a fixed 1/frame_rate until the configured frame
// count is reached, ctx is done, Shutdown is called or the input asks to quit.
func (e *Engine) Run(ctx context.Context) error {
	if e.currentStage != EngineStageInitialized {
		return core.ErrNotRunning
	}
	e.currentStage = EngineStageRunning
	e.isRunning.Store(true)
	e.clock.Start()
	lastTime := 0.0

	for e.isRunning.Load() {
		if err := ctx.Err(); err != nil {
			break
		}
		if limit := e.config.Application.Frames; limit > 0 && e.frame >= uint64(limit) {
			break
		}

		e.applyConfigUpdates()

		delta := 1.0 / e.config.Application.FrameRate
		if err := e.Step(ctx, delta); err != nil {
			core.LogError("frame %d failed, shutting down: %s", e.frame, err)
			e.isRunning.Store(false)
			return err
		}
		if e.input.QuitRequested() {
			core.LogInfo("quit requested, shutting down.")
			break
		}

		e.clock.Update()
		currentTime := e.clock.Elapsed()
		e.metrics.Update(currentTime - lastTime)
		lastTime = currentTime

		if e.frame%120 == 0 {
			fps, ms := e.metrics.Frame()
			core.Logger().Debug("frame", "n", e.frame, "fps", fps, "ms", ms,
				"position", e.state.Position, "drift", e.state.Orientation.Deviation())
		}
	}
	e.isRunning.Store(false)
	return nil
}

// Step advances one frame of dt seconds and hands the projected lines to
// the backend. Non-finite input is logged and the frame keeps the previous
// state.
func (e *Engine) Step(ctx context.Context, dt float64) error {
	if e.gameInstance != nil && e.gameInstance.FnUpdate != nil {
		if err := e.gameInstance.FnUpdate(e.input, e.frame, dt); err != nil {
			return err
		}
	}

	frameInput := e.input.Frame()
	next, err := e.integrator.Advance(e.state, dt, frameInput)
	switch {
	case errors.Is(err, core.ErrNonFiniteInput), errors.Is(err, core.ErrStateCorrupted):
		core.LogWarn("frame %d: %s", e.frame, err)
	case err != nil:
		return err
	}
	e.state = next

	// One snapshot per frame: the projection pass never sees a half updated state.
	snap := e.state.Snapshot()
	if workers := e.appConfig().Workers; workers > 1 {
		lines, err := projection.ProjectEdgesParallel(ctx, e.lines, e.hypercube.Vertices, e.hypercube.Edges, snap, e.mode, e.params, workers)
		if err != nil {
			return err
		}
		e.lines = lines
	} else {
		e.lines = projection.ProjectEdges(e.lines, e.hypercube.Vertices, e.hypercube.Edges, snap, e.mode, e.params)
	}

	if err := e.backend.BeginFrame(dt); err != nil {
		return err
	}
	if err := e.backend.DrawLines(e.lines, e.axes); err != nil {
		return err
	}
	if err := e.backend.EndFrame(dt); err != nil {
		return err
	}

	if e.gameInstance != nil && e.gameInstance.FnRender != nil {
		packet := &FramePacket{
			Frame:     e.frame,
			DeltaTime: dt,
			State:     e.state,
			Lines:     e.lines,
			Axes:      e.axes,
		}
		if err := e.gameInstance.FnRender(packet); err != nil {
			return err
		}
	}
	e.frame++
	return nil
}

func (e *Engine) applyConfigUpdates() {
	if e.updates == nil {
		return
	}
	select {
	case cfg := <-e.updates:
		if err := e.ApplyConfig(cfg); err != nil {
			core.LogError("ignoring config update: %s", err)
		}
	default:
	}
}

// ApplyConfig swaps the tunables of a running engine. The hypercube size is
// fixed for the lifetime of the engine.
func (e *Engine) ApplyConfig(next *config.Config) error {
	if err := next.Validate(); err != nil {
		return err
	}
	// The engine keeps its own copy; the caller's value is never modified.
	c := *next
	cfg := &c
	integrator, err := systems.NewIntegrator(cfg.IntegratorConfig())
	if err != nil {
		return err
	}
	mode, params, err := cfg.ProjectionParams()
	if err != nil {
		return err
	}
	if err := core.SetLogLevel(cfg.Application.LogLevel); err != nil {
		return err
	}
	if cfg.Hypercube.Size != e.config.Hypercube.Size {
		core.LogWarn("hypercube size change to %g needs a restart, keeping %g", cfg.Hypercube.Size, e.config.Hypercube.Size)
		cfg.Hypercube.Size = e.config.Hypercube.Size
	}
	e.integrator = integrator
	e.mode, e.params = mode, params
	e.state.Orientation.RenormalizeEvery = cfg.Integrator.RenormalizeEvery
	e.state.Orientation.DriftTolerance = cfg.Integrator.DriftTolerance
	e.config = cfg
	core.LogInfo("config applied: %s projection, move speed %g", mode, cfg.Integrator.MoveSpeed)
	return nil
}

// Shutdown stops the frame loop and releases the renderer backend.
func (e *Engine) Shutdown() error {
	e.isRunning.Store(false)
	e.currentStage = EngineStageShuttingDown
	var errs []error
	if e.gameInstance != nil && e.gameInstance.FnShutdown != nil {
		errs = append(errs, e.gameInstance.FnShutdown())
	}
	errs = append(errs, e.backend.Shutdown())
	return errors.Join(errs...)
}
