package config

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spaghettifunk/tesseract/engine/projection"
	"github.com/spaghettifunk/tesseract/engine/renderer"
)

const sample = `
[application]
name = "test"
frames = 10

[hypercube]
size = 3.0

[projection]
mode = "parallel"
shear = 0.3

[integrator]
move_speed = 2.5
renormalize_every = 8
`

func TestDefaultIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatal(err)
	}
	mode, params, err := Default().ProjectionParams()
	if err != nil {
		t.Fatal(err)
	}
	if mode != projection.ModePerspective {
		t.Fatalf("default mode = %v", mode)
	}
	if params.Epsilon != projection.DefaultEpsilon {
		t.Fatalf("default epsilon = %g", params.Epsilon)
	}
}

func TestParseOverridesDefaults(t *testing.T) {
	cfg, err := Parse([]byte(sample))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Application.Name != "test" || cfg.Application.Frames != 10 {
		t.Fatalf("application = %+v", cfg.Application)
	}
	if cfg.Hypercube.Size != 3 {
		t.Fatalf("size = %g", cfg.Hypercube.Size)
	}
	// untouched keys keep their defaults
	if cfg.Projection.FocalDistance != projection.DefaultFocalDistance {
		t.Fatalf("focal distance = %g", cfg.Projection.FocalDistance)
	}
	mode, params, err := cfg.ProjectionParams()
	if err != nil || mode != projection.ModeParallel || params.Shear != 0.3 {
		t.Fatalf("projection = %v %+v %v", mode, params, err)
	}
	if ic := cfg.IntegratorConfig(); ic.MoveSpeed != 2.5 {
		t.Fatalf("integrator = %+v", ic)
	}
}

func TestParseRejects(t *testing.T) {
	cases := map[string]string{
		"unknown key":      "[hypercube]\nsides = 4\n",
		"negative size":    "[hypercube]\nsize = -1.0\n",
		"bad mode":         "[projection]\nmode = \"fisheye\"\n",
		"zero focal":       "[projection]\nfocal_distance = 0.0\n",
		"zero cadence":     "[integrator]\nrenormalize_every = 0\n",
		"gif without size": "[output]\ngif = \"out.gif\"\nwidth = 0\n",
		"gif unbounded":    "[application]\nframes = 0\n[output]\ngif = \"out.gif\"\n",
	}
	for name, doc := range cases {
		if _, err := Parse([]byte(doc)); err == nil {
			t.Fatalf("%s: accepted", name)
		}
	}
	_, err := Parse([]byte("[hypercube]\nsize = -1.0\n"))
	if !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("expected ErrInvalidConfig, got %v", err)
	}
}

func TestEncodeRoundTrip(t *testing.T) {
	data, err := Default().Encode()
	if err != nil {
		t.Fatal(err)
	}
	cfg, err := Parse(data)
	if err != nil {
		t.Fatalf("parse encoded defaults: %v\n%s", err, data)
	}
	if *cfg != *Default() {
		t.Fatalf("round trip mismatch:\n%+v\n%+v", cfg, Default())
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tesseract.toml")
	if err := os.WriteFile(path, []byte(sample), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Integrator.RenormalizeEvery != 8 {
		t.Fatalf("renormalize_every = %d", cfg.Integrator.RenormalizeEvery)
	}
	if _, err := Load(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Fatal("missing file accepted")
	}
}

func TestWatcherReloads(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tesseract.toml")
	if err := os.WriteFile(path, []byte(sample), 0o644); err != nil {
		t.Fatal(err)
	}
	w, err := NewWatcher(path)
	if err != nil {
		t.Fatal(err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	w.Start(ctx)

	// unrelated files are ignored
	if err := os.WriteFile(filepath.Join(dir, "other.toml"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("[hypercube]\nsize = 5.0\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	deadline := time.After(5 * time.Second)
	for {
		select {
		case cfg := <-w.Updates():
			// a write may surface as several events; wait for the full content
			if cfg.Hypercube.Size == 5 {
				_ = w.Close()
				return
			}
		case <-w.Errors():
			// partial writes can be observed mid-way; keep waiting
		case <-deadline:
			t.Fatal("no reload observed")
		}
	}
}

func TestRendererSelection(t *testing.T) {
	cfg := Default()
	if cfg.RendererType() != renderer.Null {
		t.Fatalf("default renderer = %s", cfg.RendererType())
	}
	b, err := cfg.Renderer()
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := b.(*renderer.NullBackend); !ok {
		t.Fatalf("default backend %T", b)
	}

	cfg.Output.GIF = filepath.Join(t.TempDir(), "out.gif")
	if err := cfg.Validate(); err != nil {
		t.Fatal(err)
	}
	if cfg.RendererType() != renderer.GIF {
		t.Fatalf("renderer with gif path = %s", cfg.RendererType())
	}
	if b, err = cfg.Renderer(); err != nil {
		t.Fatal(err)
	}
	if _, ok := b.(*renderer.GIFBackend); !ok {
		t.Fatalf("gif backend %T", b)
	}

	cfg.Application.Frames = 0
	if err := cfg.Validate(); !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("gif with unbounded frames: %v", err)
	}
}
