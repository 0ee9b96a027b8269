//go:build js && wasm

// Command holy-cube-web runs the rotating cube in the browser. Build with
// GOOS=js GOARCH=wasm and serve next to index.html and wasm_exec.js.
package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/toxichemicals/GO/holy-webgl/config"
	"github.com/toxichemicals/GO/holy-webgl/logging"
	"github.com/toxichemicals/GO/holy-webgl/loop"
	"github.com/toxichemicals/GO/holy-webgl/scene"
	"github.com/toxichemicals/GO/holy-webgl/tutorial"
	"github.com/toxichemicals/GO/holy-webgl/webgl"
)

func main() {
	cfg := config.Default()
	logger, err := logging.New(cfg.Log.Level, os.Stdout)
	if err != nil {
		logger = slog.Default()
	}

	canvas, err := webgl.OpenCanvas(webgl.CanvasID, logger)
	if err != nil {
		logger.Error("webgl unavailable", "err", err)
		return
	}
	defer canvas.Close()

	dev := canvas.Device()
	width, height := canvas.Size()
	dev.Viewport(width, height)

	session := scene.NewSession(cfg.SceneCamera(), cfg.SceneLens(), cfg.SceneSpin(), scene.Aspect(width, height))
	cube, err := tutorial.NewCube(dev, session, tutorial.Options{
		Background: cfg.BackgroundColor(),
		Validate:   cfg.Shaders.Validate,
		Strict:     cfg.Shaders.Strict,
	}, logger)
	if err != nil {
		logger.Error("cube setup failed", "err", err)
		return
	}
	canvas.OnResize(func(w, h int) { cube.Resize(session, w, h) })

	if _, err := loop.Run(context.Background(), canvas, canvas.Clock(), func(elapsed time.Duration) {
		cube.Frame(session, elapsed)
	}); err != nil {
		logger.Error("render loop stopped", "err", err)
	}
}
