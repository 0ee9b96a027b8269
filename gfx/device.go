// Package gfx is the small slice of a GL-style rendering API that the
// tutorials need, expressed as an interface so the same setup and frame code
// runs against desktop OpenGL, browser WebGL, or a recording fake in tests.
package gfx

import "github.com/go-gl/mathgl/mgl32"

// Stage identifies a shader pipeline stage.
type Stage int

const (
	VertexStage Stage = iota
	FragmentStage
)

func (s Stage) String() string {
	switch s {
	case VertexStage:
		return "vertex"
	case FragmentStage:
		return "fragment"
	}
	return "unknown"
}

// Dialect is the shading language flavour a Device accepts.
type Dialect int

const (
	// GLSL330 is desktop GLSL "#version 330 core".
	GLSL330 Dialect = iota
	// GLSLES100 is the GLSL ES 1.00 accepted by WebGL 1.
	GLSLES100
)

func (d Dialect) String() string {
	if d == GLSLES100 {
		return "glsl-es-100"
	}
	return "glsl-330"
}

// Opaque handles. Zero is never a valid object.
type (
	Shader  uint32
	Program uint32
	Buffer  uint32
)

// Device is a current rendering context. Methods must be called from the
// goroutine (and OS thread) that owns the context.
type Device interface {
	Dialect() Dialect

	CreateShader(stage Stage) Shader
	// CompileShader sets the source of s, compiles it, and reports the
	// compile status together with the driver's info log.
	CompileShader(s Shader, source string) (ok bool, infoLog string)
	CreateProgram() Program
	AttachShader(p Program, s Shader)
	LinkProgram(p Program) (ok bool, infoLog string)
	ValidateProgram(p Program) (ok bool, infoLog string)
	UseProgram(p Program)

	// AttribLocation and UniformLocation return -1 for unknown names.
	AttribLocation(p Program, name string) int32
	UniformLocation(p Program, name string) int32

	// UploadVertices and UploadIndices create a buffer and fill it once with
	// a static usage hint.
	UploadVertices(data []float32) Buffer
	UploadIndices(data []uint16) Buffer

	// VertexAttribFloat declares a non-normalized float attribute.
	VertexAttribFloat(loc uint32, size, strideBytes, offsetBytes int)
	EnableVertexAttrib(loc uint32)
	UniformMatrix4(loc int32, m *mgl32.Mat4)

	EnableDepthAndCulling()
	Viewport(width, height int)
	Clear(color mgl32.Vec4)
	// DrawIndexed draws count unsigned-short indices as triangles.
	DrawIndexed(count int)
	// DrawTriangles draws count vertices as triangles without an index list.
	DrawTriangles(first, count int)
}
