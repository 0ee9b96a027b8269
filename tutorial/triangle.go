package tutorial

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/toxichemicals/GO/holy-webgl/gfx"
	"github.com/toxichemicals/GO/holy-webgl/scene"
)

// Triangle is the first tutorial: three colored vertices, no transforms.
type Triangle struct {
	dev  gfx.Device
	geom gfx.Geometry
	opts Options
}

// NewTriangle builds the flat program and uploads the three vertices. No
// index list or uniforms are involved.
func NewTriangle(dev gfx.Device, opts Options, logger *slog.Logger) (*Triangle, error) {
	dev.Clear(opts.Background)

	src, err := Shaders("triangle", dev.Dialect())
	if err != nil {
		return nil, err
	}
	prog, report := gfx.BuildProgram(dev, src, gfx.BuildOptions{Validate: opts.Validate}, logger)
	if opts.Strict && !report.OK() {
		return nil, fmt.Errorf("triangle program: %w", report.Err())
	}

	mesh := scene.Triangle()
	geom := gfx.Upload(dev, mesh.Layout, mesh.Data, nil)
	table, err := gfx.Bind(dev, prog, mesh.Layout, nil, logger)
	if err != nil && opts.Strict {
		return nil, fmt.Errorf("triangle bindings: %w", err)
	}
	mesh.Layout.Apply(dev, table)

	logger.Info("triangle ready", "vertices", geom.Count)
	return &Triangle{dev: dev, geom: geom, opts: opts}, nil
}

// Frame clears and draws the triangle. The picture does not depend on time.
func (t *Triangle) Frame(time.Duration) {
	t.dev.Clear(t.opts.Background)
	t.geom.Draw(t.dev)
}

// Resize follows a framebuffer size change.
func (t *Triangle) Resize(width, height int) { t.dev.Viewport(width, height) }
