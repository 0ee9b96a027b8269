// Command holy-cube renders the spinning, face-colored cube in a desktop
// window.
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
	"time"

	"github.com/toxichemicals/GO/holy-webgl/config"
	"github.com/toxichemicals/GO/holy-webgl/core"
	"github.com/toxichemicals/GO/holy-webgl/gltfio"
	"github.com/toxichemicals/GO/holy-webgl/logging"
	"github.com/toxichemicals/GO/holy-webgl/loop"
	"github.com/toxichemicals/GO/holy-webgl/scene"
	"github.com/toxichemicals/GO/holy-webgl/tutorial"
)

const windowTitle = "Holy Rotating Cube"

func init() {
	// GLFW and OpenGL calls must all come from the main thread.
	runtime.LockOSThread()
}

func main() {
	configPath := flag.String("config", "", "YAML config file")
	debug := flag.Bool("debug", false, "log at debug level")
	exportPath := flag.String("export-gltf", "", "write the cube to a .gltf/.glb file and exit")
	modelPath := flag.String("model", "", "spin the first mesh of this .gltf/.glb file instead of the cube")
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
		if err := gltfio.Save(scene.Cube(), "cube", *exportPath); err != nil {
			logger.Error("export failed", "err", err)
			os.Exit(1)
		}
		logger.Info("cube exported", "path", *exportPath)
		return
	}

	var model *scene.Mesh
	if *modelPath != "" {
		m, err := gltfio.Load(*modelPath)
		if err != nil {
			logger.Error("model load failed", "err", err)
			os.Exit(1)
		}
		logger.Info("model loaded", "path", *modelPath, "vertices", m.VertexCount(), "indices", len(m.Indices))
		model = &m
	}

	if err := run(logger, cfg, model); err != nil {
		logger.Error("cube demo failed", "err", err)
		os.Exit(1)
	}
}

func run(logger *slog.Logger, cfg config.Config, model *scene.Mesh) error {
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

	width, height := win.FramebufferSize()
	dev.Viewport(width, height)

	session := scene.NewSession(cfg.SceneCamera(), cfg.SceneLens(), cfg.SceneSpin(), scene.Aspect(width, height))
	cube, err := tutorial.NewCube(dev, session, tutorial.Options{
		Background: cfg.BackgroundColor(),
		Validate:   cfg.Shaders.Validate,
		Strict:     cfg.Shaders.Strict,
		Model:      model,
	}, logger)
	if err != nil {
		return fmt.Errorf("cube setup failed: %w", err)
	}
	win.OnResize(func(w, h int) { cube.Resize(session, w, h) })

	logger.Info("starting main loop")
	start := time.Now()
	frames, err := loop.Run(ctx, win, loop.SinceStart(), func(elapsed time.Duration) {
		cube.Frame(session, elapsed)
	})
	logger.Info("shutting down", "frames", frames, "uptime", time.Since(start).Round(time.Millisecond))
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
