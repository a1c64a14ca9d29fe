package renderer

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/gif"
	"os"
	"runtime"
	"sync"

	"github.com/spaghettifunk/tesseract/engine/core"
	"github.com/spaghettifunk/tesseract/engine/systems"
)

const paletteSteps = 12

// GIFBackend records every Every-th frame and writes an animated GIF on
// Shutdown. Recorded frames are rasterized on a job system so the frame
// loop only copies the line buffer. Every recorded frame is held in memory
// until Shutdown, so runs feeding it must be bounded.
type GIFBackend struct {
	Path  string
	Delay int
	Every int
	Scale float64
	// Rasterization workers.
	Workers int

	palette    color.Palette
	wireframes sync.Pool
	jobs       *systems.JobSystem

	mutex     sync.Mutex
	images    []*image.Paletted
	jobErr    error
	frame     int
	recording bool
}

func NewGIFBackend(path string, delay, every int, scale float64) *GIFBackend {
	if every < 1 {
		every = 1
	}
	return &GIFBackend{
		Path:    path,
		Delay:   delay,
		Every:   every,
		Scale:   scale,
		Workers: runtime.GOMAXPROCS(0),
	}
}

func (g *GIFBackend) Initialize(appName string, appWidth, appHeight uint32) error {
	if appWidth == 0 || appHeight == 0 {
		return fmt.Errorf("gif backend: invalid size %dx%d", appWidth, appHeight)
	}
	width, height := int(appWidth), int(appHeight)
	wf := NewWireframe(width, height, g.Scale)
	g.palette = framePalette(wf.Background, wf.Palette, paletteSteps)
	g.wireframes.New = func() interface{} {
		return NewWireframe(width, height, g.Scale)
	}
	g.wireframes.Put(wf)

	workers := g.Workers
	if workers < 1 {
		workers = 1
	}
	jobs, err := systems.NewJobSystem(workers, workers*2)
	if err != nil {
		return err
	}
	g.jobs = jobs
	core.LogInfo("%s: recording %dx%d frames to %s with %d workers", appName, appWidth, appHeight, g.Path, workers)
	return nil
}

func (g *GIFBackend) BeginFrame(deltaTime float64) error {
	if g.jobs == nil {
		return errors.New("gif backend not initialized")
	}
	g.recording = g.frame%g.Every == 0
	return nil
}

func (g *GIFBackend) DrawLines(lines []float32, axes []int) error {
	if !g.recording {
		return nil
	}
	// The engine reuses both buffers next frame.
	l := append([]float32(nil), lines...)
	a := append([]int(nil), axes...)

	g.mutex.Lock()
	slot := len(g.images)
	g.images = append(g.images, nil)
	g.mutex.Unlock()

	return g.jobs.Submit(systems.JobTask{
		OnStart: func() error {
			wf := g.wireframes.Get().(*Wireframe)
			defer g.wireframes.Put(wf)
			canvas := wf.Draw(l, a)
			paletted := image.NewPaletted(canvas.Bounds(), g.palette)
			draw.Draw(paletted, paletted.Bounds(), canvas, image.Point{}, draw.Src)

			g.mutex.Lock()
			g.images[slot] = paletted
			g.mutex.Unlock()
			return nil
		},
		OnFailure: func(err error) {
			g.mutex.Lock()
			g.jobErr = errors.Join(g.jobErr, fmt.Errorf("frame %d: %w", slot, err))
			g.mutex.Unlock()
		},
	})
}

func (g *GIFBackend) EndFrame(deltaTime float64) error {
	g.frame++
	return nil
}

// Frames returns the number of recorded frames.
func (g *GIFBackend) Frames() int {
	g.mutex.Lock()
	defer g.mutex.Unlock()
	return len(g.images)
}

// Shutdown waits for pending frames and writes the file.
func (g *GIFBackend) Shutdown() error {
	if g.jobs == nil {
		return nil
	}
	if err := g.jobs.Shutdown(); err != nil {
		return err
	}
	if g.jobErr != nil {
		return g.jobErr
	}
	if len(g.images) == 0 {
		core.LogWarn("gif backend: nothing recorded, %s not written", g.Path)
		return nil
	}

	out := &gif.GIF{
		Image:     g.images,
		Delay:     make([]int, len(g.images)),
		LoopCount: 0,
	}
	for i := range out.Delay {
		out.Delay[i] = g.Delay
	}

	f, err := os.Create(g.Path)
	if err != nil {
		return err
	}
	if err := gif.EncodeAll(f, out); err != nil {
		_ = f.Close()
		return fmt.Errorf("encode %s: %w", g.Path, err)
	}
	core.LogInfo("wrote %d frames to %s", len(g.images), g.Path)
	return f.Close()
}
