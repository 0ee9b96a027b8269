package gfx

const floatSize = 4

// Attribute is one float vector inside an interleaved vertex record.
type Attribute struct {
	Name string
	Size int // number of float32 components
}

// Layout describes an interleaved vertex record. Attributes appear in memory
// in the order given; stride and offsets are derived from that order.
type Layout []Attribute

// Stride is the number of float32 components per vertex.
func (l Layout) Stride() int {
	n := 0
	for _, a := range l {
		n += a.Size
	}
	return n
}

// StrideBytes is the distance in bytes between consecutive vertices.
func (l Layout) StrideBytes() int { return l.Stride() * floatSize }

// OffsetBytes is the byte offset of attribute i inside a vertex record.
func (l Layout) OffsetBytes(i int) int {
	n := 0
	for _, a := range l[:i] {
		n += a.Size
	}
	return n * floatSize
}

// Names returns the attribute names in layout order.
func (l Layout) Names() []string {
	names := make([]string, len(l))
	for i, a := range l {
		names[i] = a.Name
	}
	return names
}

// Index returns the position of the named attribute, or -1.
func (l Layout) Index(name string) int {
	for i, a := range l {
		if a.Name == name {
			return i
		}
	}
	return -1
}

// Apply declares and enables every bound attribute of the layout. Attributes
// the program does not expose are skipped.
func (l Layout) Apply(dev Device, t *Table) {
	stride := l.StrideBytes()
	for i, a := range l {
		loc, ok := t.Attrib(AttribSlot(i))
		if !ok {
			continue
		}
		dev.VertexAttribFloat(uint32(loc), a.Size, stride, l.OffsetBytes(i))
		dev.EnableVertexAttrib(uint32(loc))
	}
}
