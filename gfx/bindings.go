package gfx

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
)

var ErrUnbound = errors.New("name not bound in program")

// AttribSlot indexes Table.Attributes; slot i is attribute i of the layout the
// table was built from.
type AttribSlot int

// UniformSlot indexes Table.Uniforms in the order the names were given to Bind.
type UniformSlot int

// Binding is a resolved name. Location is -1 when the program does not
// expose the name.
type Binding struct {
	Name     string
	Location int32
}

// Table maps attribute and uniform names to locations once, right after the
// program is built, so per-frame code never looks anything up by name.
type Table struct {
	Attributes []Binding
	Uniforms   []Binding
}

// Bind resolves every attribute of layout and every uniform name against
// prog. Unresolved names are logged and reported through an error matching
// ErrUnbound; the returned table is usable either way and writes to unbound
// slots are dropped.
func Bind(dev Device, prog Program, layout Layout, uniforms []string, logger *slog.Logger) (*Table, error) {
	t := &Table{
		Attributes: make([]Binding, len(layout)),
		Uniforms:   make([]Binding, len(uniforms)),
	}
	var missing []string
	for i, a := range layout {
		loc := dev.AttribLocation(prog, a.Name)
		t.Attributes[i] = Binding{Name: a.Name, Location: loc}
		if loc < 0 {
			missing = append(missing, "attribute "+a.Name)
		}
	}
	for i, name := range uniforms {
		loc := dev.UniformLocation(prog, name)
		t.Uniforms[i] = Binding{Name: name, Location: loc}
		if loc < 0 {
			missing = append(missing, "uniform "+name)
		}
	}
	if len(missing) > 0 {
		logger.Warn("program is missing bindings", "names", missing)
		return t, fmt.Errorf("%w: %s", ErrUnbound, strings.Join(missing, ", "))
	}
	return t, nil
}

// Attrib returns the location for slot s and whether it is bound.
func (t *Table) Attrib(s AttribSlot) (int32, bool) {
	if int(s) < 0 || int(s) >= len(t.Attributes) {
		return -1, false
	}
	loc := t.Attributes[s].Location
	return loc, loc >= 0
}

// Uniform returns the location for slot s and whether it is bound.
func (t *Table) Uniform(s UniformSlot) (int32, bool) {
	if int(s) < 0 || int(s) >= len(t.Uniforms) {
		return -1, false
	}
	loc := t.Uniforms[s].Location
	return loc, loc >= 0
}

// SetMatrix uploads m to the uniform in slot s. Unbound slots are ignored.
func (t *Table) SetMatrix(dev Device, s UniformSlot, m *mgl32.Mat4) {
	if loc, ok := t.Uniform(s); ok {
		dev.UniformMatrix4(loc, m)
	}
}
