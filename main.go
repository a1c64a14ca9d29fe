/*
This is an example of application that will use the
engine package to fly the observer around a tesseract
*/
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/spaghettifunk/tesseract/engine"
	"github.com/spaghettifunk/tesseract/engine/config"
	"github.com/spaghettifunk/tesseract/engine/core"
	"github.com/spaghettifunk/tesseract/testbed"
)

func main() {
	var (
		configPath = flag.String("config", "", "TOML config file (defaults are used when empty)")
		watch      = flag.Bool("watch", false, "reload the config file while running")
		frames     = flag.Int("frames", -1, "frames to simulate, 0 runs until interrupted")
		gifPath    = flag.String("gif", "", "write the wireframe to this animated GIF")
		mode       = flag.String("mode", "", "projection mode: perspective or parallel")
		logLevel   = flag.String("log-level", "", "debug, info, warn or error")
	)
	flag.Parse()

	if err := run(*configPath, *watch, *frames, *gifPath, *mode, *logLevel); err != nil {
		core.LogError("%s", err)
		os.Exit(1)
	}
}

func run(configPath string, watch bool, frames int, gifPath, mode, logLevel string) error {
	cfg := config.Default()
	if configPath != "" {
		loaded, err := config.Load(configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}
	if frames >= 0 {
		cfg.Application.Frames = frames
	}
	if gifPath != "" {
		cfg.Output.GIF = gifPath
	}
	if mode != "" {
		cfg.Projection.Mode = mode
	}
	if logLevel != "" {
		cfg.Application.LogLevel = logLevel
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	if err := core.SetLogLevel(cfg.Application.LogLevel); err != nil {
		return err
	}

	backend, err := cfg.Renderer()
	if err != nil {
		return err
	}
	core.LogDebug("using the %s renderer", cfg.RendererType())

	tb, err := testbed.NewTestGame(&engine.ApplicationConfig{
		Name:    cfg.Application.Name,
		Width:   uint32(cfg.Output.Width),
		Height:  uint32(cfg.Output.Height),
		Workers: cfg.Application.Workers,
	})
	if err != nil {
		return err
	}

	e, err := engine.New(tb.Game, cfg, backend)
	if err != nil {
		return err
	}
	if err := e.Initialize(); err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if watch && configPath != "" {
		watcher, err := config.NewWatcher(configPath)
		if err != nil {
			return err
		}
		defer watcher.Close()
		watcher.Start(ctx)
		e.WatchConfig(watcher.Updates())
		go func() {
			for {
				select {
				case err := <-watcher.Errors():
					core.LogWarn("config reload: %s", err)
				case <-ctx.Done():
					return
				}
			}
		}()
	}

	// signal channel to capture system calls
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGTERM, syscall.SIGINT, syscall.SIGQUIT)

	// start shutdown goroutine
	go func() {
		// capture sigterm and other system call here
		select {
		case <-sigCh:
			cancel()
		case <-ctx.Done():
		}
	}()

	runErr := e.Run(ctx)
	if err := e.Shutdown(); err != nil {
		return err
	}
	return runErr
}
