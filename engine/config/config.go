package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
	"github.com/spaghettifunk/tesseract/engine/math"
	"github.com/spaghettifunk/tesseract/engine/projection"
	"github.com/spaghettifunk/tesseract/engine/renderer"
	"github.com/spaghettifunk/tesseract/engine/systems"
)

var ErrInvalidConfig = errors.New("invalid configuration")

type ApplicationConfig struct {
	// The application name used in logs and output metadata.
	Name     string `toml:"name"`
	LogLevel string `toml:"log_level"`
	// Number of frames to simulate. 0 runs until interrupted.
	Frames    int     `toml:"frames"`
	FrameRate float64 `toml:"frame_rate"`
	// Projection workers. 0 or 1 projects on the frame loop goroutine.
	Workers int `toml:"workers"`
}

type HypercubeConfig struct {
	Size float64 `toml:"size"`
}

type ProjectionConfig struct {
	Mode          string  `toml:"mode"`
	Shear         float64 `toml:"shear"`
	FocalDistance float64 `toml:"focal_distance"`
	Epsilon       float64 `toml:"epsilon"`
}

type IntegratorConfig struct {
	MoveSpeed           float64 `toml:"move_speed"`
	RotationSensitivity float64 `toml:"rotation_sensitivity"`
	MaxDeltaTime        float64 `toml:"max_delta_time"`
	RenormalizeEvery    int     `toml:"renormalize_every"`
	DriftTolerance      float64 `toml:"drift_tolerance"`
}

type OutputConfig struct {
	// Path of the animated GIF to write. Empty disables rendering. Needs
	// application.frames > 0.
	GIF    string `toml:"gif"`
	Width  int    `toml:"width"`
	Height int    `toml:"height"`
	// Frame delay in 100ths of a second.
	Delay int `toml:"delay"`
	// Pixels per projected unit.
	Scale float64 `toml:"scale"`
	// Record every Nth simulated frame.
	Every int `toml:"every"`
}

type Config struct {
	Application ApplicationConfig `toml:"application"`
	Hypercube   HypercubeConfig   `toml:"hypercube"`
	Projection  ProjectionConfig  `toml:"projection"`
	Integrator  IntegratorConfig  `toml:"integrator"`
	Output      OutputConfig      `toml:"output"`
}

func Default() *Config {
	return &Config{
		Application: ApplicationConfig{
			Name:      "Tesseract",
			LogLevel:  "info",
			Frames:    240,
			FrameRate: 60,
		},
		Hypercube: HypercubeConfig{Size: 2},
		Projection: ProjectionConfig{
			Mode:          projection.ModePerspective.String(),
			Shear:         projection.DefaultShear,
			FocalDistance: projection.DefaultFocalDistance,
			Epsilon:       projection.DefaultEpsilon,
		},
		Integrator: IntegratorConfig{
			MoveSpeed:           1,
			RotationSensitivity: 0.01,
			MaxDeltaTime:        0.25,
			RenormalizeEvery:    math.DefaultRenormalizeEvery,
			DriftTolerance:      math.DefaultDriftTolerance,
		},
		Output: OutputConfig{
			Width:  320,
			Height: 320,
			Delay:  4,
			Scale:  60,
			Every:  2,
		},
	}
}

// Load reads a TOML file on top of the defaults. Unknown keys are an error.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func Parse(data []byte) (*Config, error) {
	cfg := Default()
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Encode writes cfg as TOML.
func (c *Config) Encode() ([]byte, error) {
	return toml.Marshal(c)
}

func (c *Config) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...interface{}) {
		if !ok {
			errs = append(errs, fmt.Errorf("%w: "+format, append([]interface{}{ErrInvalidConfig}, args...)...))
		}
	}
	finite := math.IsFinite

	check(finite(c.Hypercube.Size) && c.Hypercube.Size >= 0, "hypercube.size must be >= 0, got %v", c.Hypercube.Size)
	_, err := projection.ParseMode(c.Projection.Mode)
	check(err == nil, "projection.mode %q", c.Projection.Mode)
	check(finite(c.Projection.Shear), "projection.shear must be finite")
	check(finite(c.Projection.FocalDistance) && c.Projection.FocalDistance > 0, "projection.focal_distance must be > 0, got %v", c.Projection.FocalDistance)
	check(finite(c.Projection.Epsilon) && c.Projection.Epsilon > 0, "projection.epsilon must be > 0, got %v", c.Projection.Epsilon)
	check(finite(c.Integrator.MoveSpeed) && c.Integrator.MoveSpeed >= 0, "integrator.move_speed must be >= 0")
	check(finite(c.Integrator.RotationSensitivity), "integrator.rotation_sensitivity must be finite")
	check(finite(c.Integrator.MaxDeltaTime) && c.Integrator.MaxDeltaTime >= 0, "integrator.max_delta_time must be >= 0")
	check(c.Integrator.RenormalizeEvery > 0, "integrator.renormalize_every must be > 0")
	check(finite(c.Integrator.DriftTolerance) && c.Integrator.DriftTolerance > 0, "integrator.drift_tolerance must be > 0")
	check(c.Application.Frames >= 0, "application.frames must be >= 0")
	check(finite(c.Application.FrameRate) && c.Application.FrameRate > 0, "application.frame_rate must be > 0")
	check(c.Application.Workers >= 0, "application.workers must be >= 0")
	if c.Output.GIF != "" {
		check(c.Output.Width > 0 && c.Output.Height > 0, "output size must be positive, got %dx%d", c.Output.Width, c.Output.Height)
		check(c.Output.Delay >= 0, "output.delay must be >= 0")
		check(finite(c.Output.Scale) && c.Output.Scale > 0, "output.scale must be > 0")
		check(c.Output.Every > 0, "output.every must be > 0")
		// Recorded frames stay in memory until shutdown.
		check(c.Application.Frames > 0, "output.gif needs a bounded application.frames")
	}
	return errors.Join(errs...)
}

// ProjectionParams converts the projection section. Call Validate first.
func (c *Config) ProjectionParams() (projection.Mode, projection.Params, error) {
	mode, err := projection.ParseMode(c.Projection.Mode)
	if err != nil {
		return 0, projection.Params{}, err
	}
	params := projection.DefaultParams()
	params.Shear = c.Projection.Shear
	params.FocalDistance = c.Projection.FocalDistance
	params.Epsilon = c.Projection.Epsilon
	return mode, params, nil
}

// RendererType is GIF when an output file is configured, Null otherwise.
func (c *Config) RendererType() renderer.RendererType {
	if c.Output.GIF != "" {
		return renderer.GIF
	}
	return renderer.Null
}

// Renderer builds the backend selected by RendererType.
func (c *Config) Renderer() (renderer.RendererBackend, error) {
	return renderer.NewBackend(c.RendererType(), c.Output.GIF, c.Output.Delay, c.Output.Every, c.Output.Scale)
}

func (c *Config) IntegratorConfig() *systems.IntegratorConfig {
	return &systems.IntegratorConfig{
		MoveSpeed:           c.Integrator.MoveSpeed,
		RotationSensitivity: c.Integrator.RotationSensitivity,
		MaxDeltaTime:        c.Integrator.MaxDeltaTime,
	}
}
