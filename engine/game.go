package engine

import (
	"github.com/spaghettifunk/tesseract/engine/components"
	"github.com/spaghettifunk/tesseract/engine/core"
)

// FramePacket is what the engine hands to the game after each frame.
// Lines and Axes are reused by the next frame; copy them to keep them.
type FramePacket struct {
	Frame     uint64
	DeltaTime float64
	State     components.State
	Lines     []float32
	Axes      []int
}

type Game struct {
	ApplicationConfig *ApplicationConfig
	State             interface{}
	FnBoot            Boot
	FnInitialize      Initialize
	FnUpdate          Update
	FnRender          Render
	FnShutdown        Shutdown
}

// Boot runs before the renderer backend starts.
type Boot func() error
type Initialize func() error

// Update runs before input is drained; games push their events here.
type Update func(input *core.Input, frame uint64, deltaTime float64) error
type Render func(packet *FramePacket) error
type Shutdown func() error
