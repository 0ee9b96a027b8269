// Command holy-triangle draws the first tutorial: one flat, vertex-colored
// triangle.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/toxichemicals/GO/holy-webgl/config"
	"github.com/toxichemicals/GO/holy-webgl/core"
	"github.com/toxichemicals/GO/holy-webgl/gltfio"
	"github.com/toxichemicals/GO/holy-webgl/logging"
	"github.com/toxichemicals/GO/holy-webgl/loop"
	"github.com/toxichemicals/GO/holy-webgl/scene"
	"github.com/toxichemicals/GO/holy-webgl/tutorial"
)

const windowTitle = "Holy Triangle"

func init() {
	runtime.LockOSThread()
}

func main() {
	configPath := flag.String("config", "", "YAML config file")
	debug := flag.Bool("debug", false, "log at debug level")
	exportPath := flag.String("export-gltf", "", "write the triangle to a .gltf/.glb file and exit")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	if *debug {
		cfg.Log.Level = "debug"
	}
	logger, err := logging.New(cfg.Log.Level, os.Stderr)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	if *exportPath != "" {
		if err := gltfio.Save(scene.Triangle(), "triangle", *exportPath); err != nil {
			logger.Error("export failed", "err", err)
			os.Exit(1)
		}
		return
	}

	if err := run(logger, cfg); err != nil {
		logger.Error("triangle demo failed", "err", err)
		os.Exit(1)
	}
}

func run(logger *slog.Logger, cfg config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	win, err := core.OpenWindow(core.WindowConfig{
		Width:  cfg.Window.Width,
		Height: cfg.Window.Height,
		Title:  cfg.WindowTitle(windowTitle),
		VSync:  cfg.Window.VSync,
	}, logger)
	if err != nil {
		return fmt.Errorf("window initialization failed: %w", err)
	}
	defer win.Destroy()

	dev, err := core.NewDevice(logger)
	if err != nil {
		return err
	}
	defer dev.Release()

	dev.Viewport(win.FramebufferSize())
	tri, err := tutorial.NewTriangle(dev, tutorial.Options{
		Background: cfg.BackgroundColor(),
		Validate:   cfg.Shaders.Validate,
		Strict:     cfg.Shaders.Strict,
	}, logger)
	if err != nil {
		return fmt.Errorf("triangle setup failed: %w", err)
	}
	win.OnResize(tri.Resize)

	if _, err := loop.Run(ctx, win, loop.SinceStart(), tri.Frame); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
