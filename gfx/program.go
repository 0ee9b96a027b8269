package gfx

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
)

var (
	ErrCompile  = errors.New("shader compile failed")
	ErrLink     = errors.New("program link failed")
	ErrValidate = errors.New("program validation failed")
)

// StageError carries the driver diagnostic of one failed build step.
type StageError struct {
	Step string // "compile vertex", "compile fragment", "link", "validate"
	Log  string
	err  error
}

func (e *StageError) Error() string {
	if e.Log == "" {
		return fmt.Sprintf("%s: %v", e.Step, e.err)
	}
	return fmt.Sprintf("%s: %v:\n%s", e.Step, e.err, e.Log)
}

func (e *StageError) Unwrap() error { return e.err }

// Source is a vertex/fragment pair for one program.
type Source struct {
	Vertex   string
	Fragment string
}

// BuildOptions tunes BuildProgram.
type BuildOptions struct {
	// Validate runs the advisory validation pass after linking.
	Validate bool
}

// BuildReport records the outcome of every step of BuildProgram.
type BuildReport struct {
	VertexCompiled   bool
	FragmentCompiled bool
	Linked           bool
	Validated        bool // false when validation failed or was skipped
	Failures         []*StageError
}

// OK reports whether no step failed.
func (r *BuildReport) OK() bool { return len(r.Failures) == 0 }

// Err joins every recorded failure, or returns nil.
func (r *BuildReport) Err() error {
	if r.OK() {
		return nil
	}
	errs := make([]error, len(r.Failures))
	for i, f := range r.Failures {
		errs[i] = f
	}
	return errors.Join(errs...)
}

// BuildProgram compiles both stages, links them, and optionally validates the
// result. A failing step is logged and recorded in the report but does not stop
// the remaining steps, so the returned program may be unusable. Callers that
// want a hard failure check report.Err().
func BuildProgram(dev Device, src Source, opts BuildOptions, logger *slog.Logger) (Program, *BuildReport) {
	report := &BuildReport{}
	fail := func(step string, sentinel error, infoLog string) {
		infoLog = strings.TrimRight(infoLog, "\x00\n ")
		logger.Error("shader program step failed", "step", step, "log", infoLog)
		report.Failures = append(report.Failures, &StageError{Step: step, Log: infoLog, err: sentinel})
	}

	vs := dev.CreateShader(VertexStage)
	if ok, infoLog := dev.CompileShader(vs, src.Vertex); ok {
		report.VertexCompiled = true
	} else {
		fail("compile "+VertexStage.String(), ErrCompile, infoLog)
	}

	fs := dev.CreateShader(FragmentStage)
	if ok, infoLog := dev.CompileShader(fs, src.Fragment); ok {
		report.FragmentCompiled = true
	} else {
		fail("compile "+FragmentStage.String(), ErrCompile, infoLog)
	}

	prog := dev.CreateProgram()
	dev.AttachShader(prog, vs)
	dev.AttachShader(prog, fs)
	if ok, infoLog := dev.LinkProgram(prog); ok {
		report.Linked = true
		dev.UseProgram(prog)
	} else {
		fail("link", ErrLink, infoLog)
	}

	if opts.Validate {
		if ok, infoLog := dev.ValidateProgram(prog); ok {
			report.Validated = true
		} else {
			fail("validate", ErrValidate, infoLog)
		}
	}

	if report.OK() {
		logger.Debug("shader program ready", "program", prog, "validated", report.Validated)
	}
	return prog, report
}
