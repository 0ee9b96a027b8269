// Package tutorial contains the demos themselves: a flat triangle and a
// spinning cube, written once against gfx.Device so they run on desktop
// OpenGL and in the browser alike.
package tutorial

import (
	"embed"
	"fmt"

	"github.com/toxichemicals/GO/holy-webgl/gfx"
)

//go:embed shaders
var shaderFS embed.FS

func suffix(d gfx.Dialect) string {
	if d == gfx.GLSLES100 {
		return "es100"
	}
	return "330"
}

// Shaders returns the embedded vertex/fragment pair of the named demo in the
// requested dialect.
func Shaders(name string, d gfx.Dialect) (gfx.Source, error) {
	base := "shaders/" + name + "." + suffix(d)
	vs, err := shaderFS.ReadFile(base + ".vert")
	if err != nil {
		return gfx.Source{}, fmt.Errorf("%s vertex shader: %w", name, err)
	}
	fs, err := shaderFS.ReadFile(base + ".frag")
	if err != nil {
		return gfx.Source{}, fmt.Errorf("%s fragment shader: %w", name, err)
	}
	return gfx.Source{Vertex: string(vs), Fragment: string(fs)}, nil
}
