package tutorial

import (
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/toxichemicals/GO/holy-webgl/gfx"
	"github.com/toxichemicals/GO/holy-webgl/matfmt"
	"github.com/toxichemicals/GO/holy-webgl/scene"
)

// Uniform slots of the cube program, in the order of cubeUniforms.
const (
	UniformWorld gfx.UniformSlot = iota
	UniformView
	UniformProjection
)

var cubeUniforms = []string{"mWorld", "mView", "mProj"}

// Options are shared by every demo.
type Options struct {
	Background mgl32.Vec4
	// Validate runs the advisory program validation pass.
	Validate bool
	// Strict makes any shader or binding problem a setup error.
	Strict bool
	// Model replaces the cube mesh. It must use scene.CubeLayout.
	Model *scene.Mesh
}

// Cube owns the device resources of the spinning cube demo. Animation state
// lives in the scene.Session the caller passes to every call.
type Cube struct {
	dev    gfx.Device
	table  *gfx.Table
	geom   gfx.Geometry
	opts   Options
	logger *slog.Logger
}

// NewCube builds the program, uploads the cube, binds its attributes and
// submits the session's world, view and projection matrices.
func NewCube(dev gfx.Device, s *scene.Session, opts Options, logger *slog.Logger) (*Cube, error) {
	dev.EnableDepthAndCulling()
	dev.Clear(opts.Background)

	src, err := Shaders("cube", dev.Dialect())
	if err != nil {
		return nil, err
	}
	prog, report := gfx.BuildProgram(dev, src, gfx.BuildOptions{Validate: opts.Validate}, logger)
	if opts.Strict && !report.OK() {
		return nil, fmt.Errorf("cube program: %w", report.Err())
	}

	mesh := scene.Cube()
	if opts.Model != nil {
		mesh = *opts.Model
		if !slices.Equal(mesh.Layout, scene.CubeLayout) {
			return nil, fmt.Errorf("%w: model layout %v", scene.ErrMalformed, mesh.Layout.Names())
		}
	}
	if err := mesh.Validate(); err != nil {
		return nil, err
	}
	geom := gfx.Upload(dev, mesh.Layout, mesh.Data, mesh.Indices)

	table, err := gfx.Bind(dev, prog, mesh.Layout, cubeUniforms, logger)
	if err != nil && opts.Strict {
		return nil, fmt.Errorf("cube bindings: %w", err)
	}
	mesh.Layout.Apply(dev, table)

	c := &Cube{dev: dev, table: table, geom: geom, opts: opts, logger: logger}
	table.SetMatrix(dev, UniformWorld, &s.World)
	table.SetMatrix(dev, UniformView, &s.View)
	table.SetMatrix(dev, UniformProjection, &s.Projection)

	matfmt.Log(logger, "view", s.View[:])
	matfmt.Log(logger, "projection", s.Projection[:])
	logger.Info("cube ready", "vertices", mesh.VertexCount(), "indices", geom.Count)
	return c, nil
}

// Frame advances s to elapsed, re-submits only the world matrix, clears and
// draws the cube once.
func (c *Cube) Frame(s *scene.Session, elapsed time.Duration) {
	world := s.Advance(elapsed)
	c.table.SetMatrix(c.dev, UniformWorld, world)
	c.dev.Clear(c.opts.Background)
	c.geom.Draw(c.dev)
}

// Resize follows a framebuffer size change.
func (c *Cube) Resize(s *scene.Session, width, height int) {
	c.dev.Viewport(width, height)
	c.table.SetMatrix(c.dev, UniformProjection, s.Reproject(scene.Aspect(width, height)))
}

// Table is the cube program's resolved bindings.
func (c *Cube) Table() *gfx.Table { return c.table }
