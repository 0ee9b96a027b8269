package core

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/toxichemicals/GO/holy-webgl/gfx"
)

// Device issues gfx calls to the OpenGL context current on this thread.
type Device struct {
	vao      uint32
	shaders  []uint32
	programs []uint32
	buffers  []uint32
}

// NewDevice loads the OpenGL function pointers for the current context and
// binds the vertex array object every core-profile draw needs.
func NewDevice(logger *slog.Logger) (*Device, error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}
	logger.Info("OpenGL ready",
		"version", gl.GoStr(gl.GetString(gl.VERSION)),
		"renderer", gl.GoStr(gl.GetString(gl.RENDERER)))

	d := &Device{}
	gl.GenVertexArrays(1, &d.vao)
	gl.BindVertexArray(d.vao)
	return d, nil
}

func (d *Device) Dialect() gfx.Dialect { return gfx.GLSL330 }

func (d *Device) CreateShader(stage gfx.Stage) gfx.Shader {
	kind := uint32(gl.VERTEX_SHADER)
	if stage == gfx.FragmentStage {
		kind = gl.FRAGMENT_SHADER
	}
	s := gl.CreateShader(kind)
	d.shaders = append(d.shaders, s)
	return gfx.Shader(s)
}

func (d *Device) CompileShader(s gfx.Shader, source string) (bool, string) {
	glShaderSource(uint32(s), source)
	gl.CompileShader(uint32(s))

	var status int32
	gl.GetShaderiv(uint32(s), gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		return false, shaderInfoLog(uint32(s))
	}
	return true, ""
}

func (d *Device) CreateProgram() gfx.Program {
	p := gl.CreateProgram()
	d.programs = append(d.programs, p)
	return gfx.Program(p)
}

func (d *Device) AttachShader(p gfx.Program, s gfx.Shader) {
	gl.AttachShader(uint32(p), uint32(s))
}

func (d *Device) LinkProgram(p gfx.Program) (bool, string) {
	gl.LinkProgram(uint32(p))
	return programStatus(uint32(p), gl.LINK_STATUS)
}

func (d *Device) ValidateProgram(p gfx.Program) (bool, string) {
	gl.ValidateProgram(uint32(p))
	return programStatus(uint32(p), gl.VALIDATE_STATUS)
}

func (d *Device) UseProgram(p gfx.Program) { gl.UseProgram(uint32(p)) }

func (d *Device) AttribLocation(p gfx.Program, name string) int32 {
	return gl.GetAttribLocation(uint32(p), gl.Str(name+"\x00"))
}

func (d *Device) UniformLocation(p gfx.Program, name string) int32 {
	return gl.GetUniformLocation(uint32(p), gl.Str(name+"\x00"))
}

func (d *Device) UploadVertices(data []float32) gfx.Buffer {
	var vbo uint32
	gl.GenBuffers(1, &vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(data)*4, gl.Ptr(data), gl.STATIC_DRAW)
	d.buffers = append(d.buffers, vbo)
	return gfx.Buffer(vbo)
}

func (d *Device) UploadIndices(data []uint16) gfx.Buffer {
	var ebo uint32
	gl.GenBuffers(1, &ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(data)*2, gl.Ptr(data), gl.STATIC_DRAW)
	d.buffers = append(d.buffers, ebo)
	return gfx.Buffer(ebo)
}

func (d *Device) VertexAttribFloat(loc uint32, size, strideBytes, offsetBytes int) {
	gl.VertexAttribPointer(loc, int32(size), gl.FLOAT, false, int32(strideBytes), gl.PtrOffset(offsetBytes))
}

func (d *Device) EnableVertexAttrib(loc uint32) { gl.EnableVertexAttribArray(loc) }

func (d *Device) UniformMatrix4(loc int32, m *mgl32.Mat4) {
	gl.UniformMatrix4fv(loc, 1, false, &m[0])
}

func (d *Device) EnableDepthAndCulling() {
	gl.Enable(gl.DEPTH_TEST)
	gl.Enable(gl.CULL_FACE)
	gl.CullFace(gl.BACK)
	gl.FrontFace(gl.CCW)
}

func (d *Device) Viewport(width, height int) {
	gl.Viewport(0, 0, int32(width), int32(height))
}

func (d *Device) Clear(c mgl32.Vec4) {
	gl.ClearColor(c[0], c[1], c[2], c[3])
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

func (d *Device) DrawIndexed(count int) {
	gl.DrawElements(gl.TRIANGLES, int32(count), gl.UNSIGNED_SHORT, gl.PtrOffset(0))
}

func (d *Device) DrawTriangles(first, count int) {
	gl.DrawArrays(gl.TRIANGLES, int32(first), int32(count))
}

// Release deletes every object the device created.
func (d *Device) Release() {
	for _, p := range d.programs {
		gl.DeleteProgram(p)
	}
	for _, s := range d.shaders {
		gl.DeleteShader(s)
	}
	if len(d.buffers) > 0 {
		gl.DeleteBuffers(int32(len(d.buffers)), &d.buffers[0])
	}
	gl.DeleteVertexArrays(1, &d.vao)
	d.programs, d.shaders, d.buffers = nil, nil, nil
}

// glShaderSource passes Go source text to OpenGL as a C string.
func glShaderSource(shader uint32, source string) {
	csources, free := gl.Strs(source + "\x00")
	gl.ShaderSource(shader, 1, csources, nil)
	free()
}

func shaderInfoLog(shader uint32) string {
	var logLength int32
	gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)
	log := strings.Repeat("\x00", int(logLength+1))
	gl.GetShaderInfoLog(shader, logLength, nil, gl.Str(log))
	return log
}

func programStatus(program uint32, pname uint32) (bool, string) {
	var status int32
	gl.GetProgramiv(program, pname, &status)
	if status != gl.FALSE {
		return true, ""
	}
	var logLength int32
	gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)
	log := strings.Repeat("\x00", int(logLength+1))
	gl.GetProgramInfoLog(program, logLength, nil, gl.Str(log))
	return false, log
}

var _ gfx.Device = (*Device)(nil)
