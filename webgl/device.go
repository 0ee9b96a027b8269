//go:build js && wasm

// Package webgl is the browser platform: a WebGL 1 context on a <canvas>
// element and a gfx.Device that forwards to it through syscall/js.
package webgl

import (
	"encoding/binary"
	"math"
	"syscall/js"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/toxichemicals/GO/holy-webgl/gfx"
)

// Device implements gfx.Device on a WebGLRenderingContext. WebGL hands out
// objects rather than integer names, so the device keeps a table from the
// gfx handles it returns to the JS objects behind them.
type Device struct {
	gl js.Value

	objects map[uint32]js.Value
	next    uint32

	uniforms    map[int32]js.Value
	nextUniform int32

	// GL enums read off the context once.
	floatType, ushortType        int
	arrayBuffer, elementBuffer   int
	staticDraw, triangles        int
	colorBit, depthBit           int
	depthTest, cullFace          int
	back, ccw                    int
	compileStatus, linkStatus    int
	validateStatus               int
	vertexShader, fragmentShader int
}

func newDevice(ctx js.Value) *Device {
	c := func(name string) int { return ctx.Get(name).Int() }
	return &Device{
		gl:             ctx,
		objects:        make(map[uint32]js.Value),
		uniforms:       make(map[int32]js.Value),
		floatType:      c("FLOAT"),
		ushortType:     c("UNSIGNED_SHORT"),
		arrayBuffer:    c("ARRAY_BUFFER"),
		elementBuffer:  c("ELEMENT_ARRAY_BUFFER"),
		staticDraw:     c("STATIC_DRAW"),
		triangles:      c("TRIANGLES"),
		colorBit:       c("COLOR_BUFFER_BIT"),
		depthBit:       c("DEPTH_BUFFER_BIT"),
		depthTest:      c("DEPTH_TEST"),
		cullFace:       c("CULL_FACE"),
		back:           c("BACK"),
		ccw:            c("CCW"),
		compileStatus:  c("COMPILE_STATUS"),
		linkStatus:     c("LINK_STATUS"),
		validateStatus: c("VALIDATE_STATUS"),
		vertexShader:   c("VERTEX_SHADER"),
		fragmentShader: c("FRAGMENT_SHADER"),
	}
}

func (d *Device) store(v js.Value) uint32 {
	d.next++
	d.objects[d.next] = v
	return d.next
}

func (d *Device) obj(id uint32) js.Value {
	if v, ok := d.objects[id]; ok {
		return v
	}
	return js.Null()
}

func (d *Device) Dialect() gfx.Dialect { return gfx.GLSLES100 }

func (d *Device) CreateShader(stage gfx.Stage) gfx.Shader {
	kind := d.vertexShader
	if stage == gfx.FragmentStage {
		kind = d.fragmentShader
	}
	return gfx.Shader(d.store(d.gl.Call("createShader", kind)))
}

func (d *Device) CompileShader(s gfx.Shader, source string) (bool, string) {
	sh := d.obj(uint32(s))
	d.gl.Call("shaderSource", sh, source)
	d.gl.Call("compileShader", sh)
	if d.gl.Call("getShaderParameter", sh, d.compileStatus).Bool() {
		return true, ""
	}
	return false, d.gl.Call("getShaderInfoLog", sh).String()
}

func (d *Device) CreateProgram() gfx.Program {
	return gfx.Program(d.store(d.gl.Call("createProgram")))
}

func (d *Device) AttachShader(p gfx.Program, s gfx.Shader) {
	d.gl.Call("attachShader", d.obj(uint32(p)), d.obj(uint32(s)))
}

func (d *Device) LinkProgram(p gfx.Program) (bool, string) {
	prog := d.obj(uint32(p))
	d.gl.Call("linkProgram", prog)
	return d.programStatus(prog, d.linkStatus)
}

func (d *Device) ValidateProgram(p gfx.Program) (bool, string) {
	prog := d.obj(uint32(p))
	d.gl.Call("validateProgram", prog)
	return d.programStatus(prog, d.validateStatus)
}

func (d *Device) programStatus(prog js.Value, pname int) (bool, string) {
	if d.gl.Call("getProgramParameter", prog, pname).Bool() {
		return true, ""
	}
	return false, d.gl.Call("getProgramInfoLog", prog).String()
}

func (d *Device) UseProgram(p gfx.Program) { d.gl.Call("useProgram", d.obj(uint32(p))) }

func (d *Device) AttribLocation(p gfx.Program, name string) int32 {
	return int32(d.gl.Call("getAttribLocation", d.obj(uint32(p)), name).Int())
}

// UniformLocation returns -1 for a uniform the program does not have, like
// the desktop API does; WebGL itself answers null.
func (d *Device) UniformLocation(p gfx.Program, name string) int32 {
	loc := d.gl.Call("getUniformLocation", d.obj(uint32(p)), name)
	if loc.IsNull() {
		return -1
	}
	id := d.nextUniform
	d.nextUniform++
	d.uniforms[id] = loc
	return id
}

func (d *Device) UploadVertices(data []float32) gfx.Buffer {
	buf := make([]byte, 4*len(data))
	for i, f := range data {
		binary.LittleEndian.PutUint32(buf[4*i:], math.Float32bits(f))
	}
	return d.upload(d.arrayBuffer, buf, "Float32Array", len(data))
}

func (d *Device) UploadIndices(data []uint16) gfx.Buffer {
	buf := make([]byte, 2*len(data))
	for i, v := range data {
		binary.LittleEndian.PutUint16(buf[2*i:], v)
	}
	return d.upload(d.elementBuffer, buf, "Uint16Array", len(data))
}

// upload copies raw little-endian bytes into a JS typed array view of the
// given kind and hands that to bufferData.
func (d *Device) upload(target int, raw []byte, kind string, n int) gfx.Buffer {
	bytes := js.Global().Get("Uint8Array").New(len(raw))
	js.CopyBytesToJS(bytes, raw)
	view := js.Global().Get(kind).New(bytes.Get("buffer"), 0, n)

	b := d.gl.Call("createBuffer")
	d.gl.Call("bindBuffer", target, b)
	d.gl.Call("bufferData", target, view, d.staticDraw)
	return gfx.Buffer(d.store(b))
}

func (d *Device) VertexAttribFloat(loc uint32, size, strideBytes, offsetBytes int) {
	d.gl.Call("vertexAttribPointer", loc, size, d.floatType, false, strideBytes, offsetBytes)
}

func (d *Device) EnableVertexAttrib(loc uint32) { d.gl.Call("enableVertexAttribArray", loc) }

func (d *Device) UniformMatrix4(loc int32, m *mgl32.Mat4) {
	u, ok := d.uniforms[loc]
	if !ok {
		return
	}
	vals := make([]any, len(m))
	for i, f := range m {
		vals[i] = f
	}
	d.gl.Call("uniformMatrix4fv", u, false, js.ValueOf(vals))
}

func (d *Device) EnableDepthAndCulling() {
	d.gl.Call("enable", d.depthTest)
	d.gl.Call("enable", d.cullFace)
	d.gl.Call("cullFace", d.back)
	d.gl.Call("frontFace", d.ccw)
}

func (d *Device) Viewport(width, height int) { d.gl.Call("viewport", 0, 0, width, height) }

func (d *Device) Clear(c mgl32.Vec4) {
	d.gl.Call("clearColor", c[0], c[1], c[2], c[3])
	d.gl.Call("clear", d.colorBit|d.depthBit)
}

func (d *Device) DrawIndexed(count int) {
	d.gl.Call("drawElements", d.triangles, count, d.ushortType, 0)
}

func (d *Device) DrawTriangles(first, count int) {
	d.gl.Call("drawArrays", d.triangles, first, count)
}

var _ gfx.Device = (*Device)(nil)
