package gfx_test

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/toxichemicals/GO/holy-webgl/gfx"
	"github.com/toxichemicals/GO/holy-webgl/gfx/gfxtest"
)

func bufLogger() (*slog.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	return slog.New(slog.NewTextHandler(&buf, nil)), &buf
}

var src = gfx.Source{Vertex: "void main() {}", Fragment: "void main() {}"}

func TestBuildProgramSuccess(t *testing.T) {
	dev := gfxtest.New(gfx.GLSL330)
	logger, buf := bufLogger()

	prog, report := gfx.BuildProgram(dev, src, gfx.BuildOptions{Validate: true}, logger)

	assert.NotZero(t, prog)
	assert.True(t, report.OK())
	assert.NoError(t, report.Err())
	assert.True(t, report.VertexCompiled)
	assert.True(t, report.FragmentCompiled)
	assert.True(t, report.Linked)
	assert.True(t, report.Validated)
	assert.Empty(t, buf.String())
	assert.Equal(t, []string{
		"CreateShader", "CompileShader",
		"CreateShader", "CompileShader",
		"CreateProgram", "AttachShader", "AttachShader",
		"LinkProgram", "UseProgram", "ValidateProgram",
	}, dev.Ops())
}

func TestBuildProgramSkipsValidation(t *testing.T) {
	dev := gfxtest.New(gfx.GLSL330)
	logger, _ := bufLogger()

	_, report := gfx.BuildProgram(dev, src, gfx.BuildOptions{}, logger)

	assert.True(t, report.OK())
	assert.False(t, report.Validated)
	assert.Zero(t, dev.Count("ValidateProgram"))
}

func TestBuildProgramContinuesAfterCompileFailure(t *testing.T) {
	dev := gfxtest.New(gfx.GLSL330)
	dev.FailCompile = map[gfx.Stage]string{gfx.VertexStage: "0:1: syntax error\x00"}
	logger, buf := bufLogger()

	prog, report := gfx.BuildProgram(dev, src, gfx.BuildOptions{Validate: true}, logger)

	assert.NotZero(t, prog)
	assert.False(t, report.VertexCompiled)
	assert.True(t, report.FragmentCompiled)
	// the fake links regardless; every later step still ran
	assert.Equal(t, 1, dev.Count("LinkProgram"))
	assert.Equal(t, 1, dev.Count("ValidateProgram"))
	require.Len(t, report.Failures, 1)
	assert.Equal(t, "compile vertex", report.Failures[0].Step)
	assert.Equal(t, "0:1: syntax error", report.Failures[0].Log)
	assert.True(t, errors.Is(report.Err(), gfx.ErrCompile))
	assert.Contains(t, buf.String(), "compile vertex")
	assert.Contains(t, buf.String(), "syntax error")
}

func TestBuildProgramRecordsEveryFailure(t *testing.T) {
	dev := gfxtest.New(gfx.GLSL330)
	dev.FailCompile = map[gfx.Stage]string{gfx.FragmentStage: "bad fragment"}
	dev.FailLink = "unresolved varying"
	dev.FailValidate = "no vertex array bound"
	logger, _ := bufLogger()

	_, report := gfx.BuildProgram(dev, src, gfx.BuildOptions{Validate: true}, logger)

	require.Len(t, report.Failures, 3)
	err := report.Err()
	assert.ErrorIs(t, err, gfx.ErrCompile)
	assert.ErrorIs(t, err, gfx.ErrLink)
	assert.ErrorIs(t, err, gfx.ErrValidate)
	assert.Zero(t, dev.Count("UseProgram"), "a program that failed to link is not made current")

	var se *gfx.StageError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, "compile fragment", se.Step)
}

func TestBuildProgramPassesSources(t *testing.T) {
	dev := gfxtest.New(gfx.GLSL330)
	logger, _ := bufLogger()

	gfx.BuildProgram(dev, gfx.Source{Vertex: "vs", Fragment: "fs"}, gfx.BuildOptions{}, logger)

	assert.ElementsMatch(t, []string{"vs", "fs"}, []string{dev.Sources[1], dev.Sources[2]})
}
