// Package gfxtest provides a recording gfx.Device for tests.
package gfxtest

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/toxichemicals/GO/holy-webgl/gfx"
)

// Call is one recorded device call.
type Call struct {
	Op   string
	Args []any
}

func (c Call) String() string { return fmt.Sprintf("%s%v", c.Op, c.Args) }

// Device records every call it receives. Compile, link and validate succeed
// unless the matching Fail* field holds a log message.
type Device struct {
	Lang gfx.Dialect

	FailCompile  map[gfx.Stage]string
	FailLink     string
	FailValidate string

	// Locations overrides name lookups. When nil, every name resolves to the
	// next free location; when set, names absent from the map resolve to -1.
	Locations map[string]int32

	Calls    []Call
	Sources  map[gfx.Shader]string
	Vertices map[gfx.Buffer][]float32
	Indices  map[gfx.Buffer][]uint16
	Uniforms map[int32]mgl32.Mat4

	next     uint32
	nextLoc  int32
	autoLocs map[string]int32
	stages   map[gfx.Shader]gfx.Stage
}

// New returns an empty recording device speaking dialect d.
func New(d gfx.Dialect) *Device {
	return &Device{
		Lang:     d,
		Sources:  make(map[gfx.Shader]string),
		Vertices: make(map[gfx.Buffer][]float32),
		Indices:  make(map[gfx.Buffer][]uint16),
		Uniforms: make(map[int32]mgl32.Mat4),
		autoLocs: make(map[string]int32),
		stages:   make(map[gfx.Shader]gfx.Stage),
	}
}

func (d *Device) record(op string, args ...any) {
	d.Calls = append(d.Calls, Call{Op: op, Args: args})
}

func (d *Device) id() uint32 {
	d.next++
	return d.next
}

// Ops returns the recorded operation names in order.
func (d *Device) Ops() []string {
	ops := make([]string, len(d.Calls))
	for i, c := range d.Calls {
		ops[i] = c.Op
	}
	return ops
}

// Count returns how many times op was called.
func (d *Device) Count(op string) int {
	n := 0
	for _, c := range d.Calls {
		if c.Op == op {
			n++
		}
	}
	return n
}

// Since returns the calls recorded after the first n.
func (d *Device) Since(n int) []Call {
	return append([]Call(nil), d.Calls[n:]...)
}

func (d *Device) Dialect() gfx.Dialect { return d.Lang }

func (d *Device) CreateShader(stage gfx.Stage) gfx.Shader {
	s := gfx.Shader(d.id())
	d.stages[s] = stage
	d.record("CreateShader", stage)
	return s
}

func (d *Device) CompileShader(s gfx.Shader, source string) (bool, string) {
	d.Sources[s] = source
	d.record("CompileShader", s)
	if msg, ok := d.FailCompile[d.stages[s]]; ok {
		return false, msg
	}
	return true, ""
}

func (d *Device) CreateProgram() gfx.Program {
	p := gfx.Program(d.id())
	d.record("CreateProgram")
	return p
}

func (d *Device) AttachShader(p gfx.Program, s gfx.Shader) { d.record("AttachShader", p, s) }

func (d *Device) LinkProgram(p gfx.Program) (bool, string) {
	d.record("LinkProgram", p)
	return d.FailLink == "", d.FailLink
}

func (d *Device) ValidateProgram(p gfx.Program) (bool, string) {
	d.record("ValidateProgram", p)
	return d.FailValidate == "", d.FailValidate
}

func (d *Device) UseProgram(p gfx.Program) { d.record("UseProgram", p) }

func (d *Device) lookup(name string) int32 {
	if d.Locations != nil {
		if loc, ok := d.Locations[name]; ok {
			return loc
		}
		return -1
	}
	if loc, ok := d.autoLocs[name]; ok {
		return loc
	}
	loc := d.nextLoc
	d.nextLoc++
	d.autoLocs[name] = loc
	return loc
}

func (d *Device) AttribLocation(p gfx.Program, name string) int32 {
	d.record("AttribLocation", name)
	return d.lookup(name)
}

func (d *Device) UniformLocation(p gfx.Program, name string) int32 {
	d.record("UniformLocation", name)
	return d.lookup(name)
}

func (d *Device) UploadVertices(data []float32) gfx.Buffer {
	b := gfx.Buffer(d.id())
	d.Vertices[b] = append([]float32(nil), data...)
	d.record("UploadVertices", len(data))
	return b
}

func (d *Device) UploadIndices(data []uint16) gfx.Buffer {
	b := gfx.Buffer(d.id())
	d.Indices[b] = append([]uint16(nil), data...)
	d.record("UploadIndices", len(data))
	return b
}

func (d *Device) VertexAttribFloat(loc uint32, size, strideBytes, offsetBytes int) {
	d.record("VertexAttribFloat", loc, size, strideBytes, offsetBytes)
}

func (d *Device) EnableVertexAttrib(loc uint32) { d.record("EnableVertexAttrib", loc) }

func (d *Device) UniformMatrix4(loc int32, m *mgl32.Mat4) {
	d.Uniforms[loc] = *m
	d.record("UniformMatrix4", loc)
}

func (d *Device) EnableDepthAndCulling() { d.record("EnableDepthAndCulling") }

func (d *Device) Viewport(width, height int) { d.record("Viewport", width, height) }

func (d *Device) Clear(color mgl32.Vec4) { d.record("Clear", color) }

func (d *Device) DrawIndexed(count int) { d.record("DrawIndexed", count) }

func (d *Device) DrawTriangles(first, count int) { d.record("DrawTriangles", first, count) }

var _ gfx.Device = (*Device)(nil)
