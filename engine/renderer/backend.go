package renderer

import (
	"errors"
	"fmt"
)

// RendererBackend consumes the projected line buffer once per frame.
// lines holds 6 floats per edge (x0 y0 z0 x1 y1 z1) in edge order and
// axes holds the axis (0..3) each edge runs along.
type RendererBackend interface {
	Initialize(appName string, appWidth, appHeight uint32) error
	Shutdown() error
	BeginFrame(deltaTime float64) error
	DrawLines(lines []float32, axes []int) error
	EndFrame(deltaTime float64) error
}

type RendererType uint8

const (
	// Discards every frame. Used when no output is configured.
	Null RendererType = iota
	// Rasterizes frames into an animated GIF.
	GIF
)

func (rt RendererType) String() string {
	switch rt {
	case Null:
		return "null"
	case GIF:
		return "gif"
	}
	return fmt.Sprintf("renderer(%d)", uint8(rt))
}

// NewBackend creates the backend for rt. path, delay, every and scale only
// apply to GIF.
func NewBackend(rt RendererType, path string, delay, every int, scale float64) (RendererBackend, error) {
	switch rt {
	case Null:
		return &NullBackend{}, nil
	case GIF:
		if path == "" {
			return nil, errors.New("gif renderer needs an output path")
		}
		return NewGIFBackend(path, delay, every, scale), nil
	}
	return nil, fmt.Errorf("unknown renderer type %s", rt)
}

// NullBackend accepts frames and draws nothing.
type NullBackend struct {
	Frames int
}

func (n *NullBackend) Initialize(appName string, appWidth, appHeight uint32) error { return nil }
func (n *NullBackend) Shutdown() error                                           { return nil }
func (n *NullBackend) BeginFrame(deltaTime float64) error                        { return nil }
func (n *NullBackend) DrawLines(lines []float32, axes []int) error               { return nil }
func (n *NullBackend) EndFrame(deltaTime float64) error {
	n.Frames++
	return nil
}
