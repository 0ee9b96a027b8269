package tutorial

import (
	"bytes"
	"log/slog"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/toxichemicals/GO/holy-webgl/gfx"
	"github.com/toxichemicals/GO/holy-webgl/gfx/gfxtest"
	"github.com/toxichemicals/GO/holy-webgl/scene"
)

var bg = mgl32.Vec4{0.75, 0.85, 0.8, 1}

func newLogger() (*slog.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	return slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})), &buf
}

func newSession() *scene.Session {
	return scene.NewSession(scene.DefaultCamera(), scene.DefaultLens(), scene.DefaultSpin(), 4.0/3)
}

func TestShadersPerDialect(t *testing.T) {
	for _, name := range []string{"cube", "triangle"} {
		desktop, err := Shaders(name, gfx.GLSL330)
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(desktop.Vertex, "#version 330 core"))
		assert.True(t, strings.HasPrefix(desktop.Fragment, "#version 330 core"))

		web, err := Shaders(name, gfx.GLSLES100)
		require.NoError(t, err)
		assert.Contains(t, web.Vertex, "attribute vec3 vertColor;")
		assert.Contains(t, web.Fragment, "gl_FragColor")
	}
	cube, _ := Shaders("cube", gfx.GLSL330)
	for _, u := range cubeUniforms {
		assert.Contains(t, cube.Vertex, "uniform mat4 "+u+";")
	}
	_, err := Shaders("torus", gfx.GLSL330)
	assert.Error(t, err)
}

func TestCubeSetup(t *testing.T) {
	dev := gfxtest.New(gfx.GLSL330)
	logger, buf := newLogger()
	s := newSession()

	c, err := NewCube(dev, s, Options{Background: bg, Validate: true}, logger)
	require.NoError(t, err)

	assert.Equal(t, 1, dev.Count("EnableDepthAndCulling"))
	assert.Equal(t, 1, dev.Count("ValidateProgram"))

	// geometry uploaded once: 24 vertices x 6 floats, 36 indices
	require.Len(t, dev.Vertices, 1)
	require.Len(t, dev.Indices, 1)
	for _, v := range dev.Vertices {
		assert.Len(t, v, 144)
	}
	for _, idx := range dev.Indices {
		assert.Len(t, idx, 36)
	}

	// both attributes declared with a 24 byte stride
	var strides, offsets []int
	for _, call := range dev.Calls {
		if call.Op == "VertexAttribFloat" {
			strides = append(strides, call.Args[2].(int))
			offsets = append(offsets, call.Args[3].(int))
		}
	}
	assert.Equal(t, []int{24, 24}, strides)
	assert.Equal(t, []int{0, 12}, offsets)

	// world, view and projection submitted once each
	assert.Equal(t, 3, dev.Count("UniformMatrix4"))
	view, _ := c.Table().Uniform(UniformView)
	proj, _ := c.Table().Uniform(UniformProjection)
	world, _ := c.Table().Uniform(UniformWorld)
	assert.Equal(t, s.View, dev.Uniforms[view])
	assert.Equal(t, s.Projection, dev.Uniforms[proj])
	assert.Equal(t, mgl32.Ident4(), dev.Uniforms[world])

	assert.Contains(t, buf.String(), "matrix view")
	assert.Contains(t, buf.String(), "cube ready")
}

func TestCubeFrameResubmitsOnlyWorld(t *testing.T) {
	dev := gfxtest.New(gfx.GLSL330)
	logger, _ := newLogger()
	s := newSession()
	c, err := NewCube(dev, s, Options{Background: bg}, logger)
	require.NoError(t, err)
	world, _ := c.Table().Uniform(UniformWorld)

	mark := len(dev.Calls)
	c.Frame(s, 3*time.Second)

	assert.Equal(t, []gfxtest.Call{
		{Op: "UniformMatrix4", Args: []any{world}},
		{Op: "Clear", Args: []any{bg}},
		{Op: "DrawIndexed", Args: []any{36}},
	}, dev.Since(mark))
	assert.Equal(t, math.Pi, s.Angles.Primary)
	assert.Equal(t, math.Pi/4, s.Angles.Secondary)
	assert.Equal(t, s.World, dev.Uniforms[world])

	c.Frame(s, 6*time.Second)
	assert.Equal(t, 2, s.Frames)
	assert.Equal(t, 2, dev.Count("DrawIndexed"))
}

func TestCubeResize(t *testing.T) {
	dev := gfxtest.New(gfx.GLSL330)
	logger, _ := newLogger()
	s := newSession()
	c, err := NewCube(dev, s, Options{Background: bg}, logger)
	require.NoError(t, err)
	proj, _ := c.Table().Uniform(UniformProjection)

	c.Resize(s, 1600, 900)

	assert.Equal(t, 1, dev.Count("Viewport"))
	want := scene.DefaultLens().Projection(16.0 / 9)
	assert.True(t, dev.Uniforms[proj].ApproxFuncEqual(want, func(a, b float32) bool { return mgl32.Abs(a-b) < 1e-6 }))
}

func TestCubeContinuesAfterShaderFailure(t *testing.T) {
	dev := gfxtest.New(gfx.GLSL330)
	dev.FailCompile = map[gfx.Stage]string{gfx.FragmentStage: "ERROR: 0:4: 'outColor' : undeclared identifier"}
	logger, buf := newLogger()
	s := newSession()

	c, err := NewCube(dev, s, Options{Background: bg}, logger)
	require.NoError(t, err)
	c.Frame(s, time.Second)

	assert.Contains(t, buf.String(), "compile fragment")
	assert.Contains(t, buf.String(), "undeclared identifier")
	assert.Equal(t, 1, dev.Count("DrawIndexed"))
}

func TestCubeStrictFailsOnShaderError(t *testing.T) {
	dev := gfxtest.New(gfx.GLSL330)
	dev.FailLink = "link error"
	logger, _ := newLogger()

	_, err := NewCube(dev, newSession(), Options{Background: bg, Strict: true}, logger)
	assert.ErrorIs(t, err, gfx.ErrLink)
	assert.Zero(t, dev.Count("UploadVertices"))
}

func TestCubeStrictFailsOnMissingUniform(t *testing.T) {
	dev := gfxtest.New(gfx.GLSL330)
	dev.Locations = map[string]int32{"vertPosition": 0, "vertColor": 1, "mWorld": 0, "mView": 1}
	logger, _ := newLogger()

	_, err := NewCube(dev, newSession(), Options{Background: bg, Strict: true}, logger)
	assert.ErrorIs(t, err, gfx.ErrUnbound)

	// lenient mode draws anyway and skips the missing projection upload
	dev = gfxtest.New(gfx.GLSL330)
	dev.Locations = map[string]int32{"vertPosition": 0, "vertColor": 1, "mWorld": 0, "mView": 1}
	_, err = NewCube(dev, newSession(), Options{Background: bg}, logger)
	require.NoError(t, err)
	assert.Equal(t, 2, dev.Count("UniformMatrix4"))
}

func TestCubeUsesDialectShaders(t *testing.T) {
	dev := gfxtest.New(gfx.GLSLES100)
	logger, _ := newLogger()

	_, err := NewCube(dev, newSession(), Options{Background: bg}, logger)
	require.NoError(t, err)
	for _, src := range dev.Sources {
		assert.Contains(t, src, "precision mediump float;")
	}
}

func TestCubeWithModel(t *testing.T) {
	dev := gfxtest.New(gfx.GLSL330)
	logger, _ := newLogger()
	s := newSession()

	model := scene.Mesh{
		Layout: scene.CubeLayout,
		Data: []float32{
			0, 1, 0, 1, 0, 0,
			-1, -1, 0, 0, 1, 0,
			1, -1, 0, 0, 0, 1,
		},
		Indices: []uint16{0, 1, 2},
	}
	c, err := NewCube(dev, s, Options{Background: bg, Model: &model}, logger)
	require.NoError(t, err)
	for _, v := range dev.Vertices {
		assert.Equal(t, model.Data, v)
	}

	mark := len(dev.Calls)
	c.Frame(s, time.Second)
	assert.Contains(t, dev.Since(mark), gfxtest.Call{Op: "DrawIndexed", Args: []any{3}})

	flat := scene.Triangle()
	_, err = NewCube(gfxtest.New(gfx.GLSL330), s, Options{Background: bg, Model: &flat}, logger)
	assert.ErrorIs(t, err, scene.ErrMalformed)
}

func TestTriangle(t *testing.T) {
	dev := gfxtest.New(gfx.GLSL330)
	logger, _ := newLogger()

	tri, err := NewTriangle(dev, Options{Background: bg}, logger)
	require.NoError(t, err)
	assert.Zero(t, dev.Count("UploadIndices"))
	assert.Zero(t, dev.Count("EnableDepthAndCulling"))

	var strides []int
	for _, call := range dev.Calls {
		if call.Op == "VertexAttribFloat" {
			strides = append(strides, call.Args[2].(int))
		}
	}
	assert.Equal(t, []int{20, 20}, strides)

	mark := len(dev.Calls)
	tri.Frame(0)
	assert.Equal(t, []gfxtest.Call{
		{Op: "Clear", Args: []any{bg}},
		{Op: "DrawTriangles", Args: []any{0, 3}},
	}, dev.Since(mark))

	tri.Resize(640, 480)
	assert.Equal(t, 1, dev.Count("Viewport"))
}
