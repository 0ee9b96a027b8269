package gfx

// Geometry is vertex (and optionally index) data resident on the device.
type Geometry struct {
	Vertices Buffer
	Indices  Buffer // zero when the geometry is not indexed
	// Count is the number of indices, or of vertices for non-indexed data.
	Count int
}

// Indexed reports whether the geometry carries an index buffer.
func (g Geometry) Indexed() bool { return g.Indices != 0 }

// Upload copies the interleaved vertex data and optional index list to the
// device once. There is no update path; geometry is immutable after upload.
func Upload(dev Device, layout Layout, data []float32, indices []uint16) Geometry {
	g := Geometry{Vertices: dev.UploadVertices(data)}
	if len(indices) > 0 {
		g.Indices = dev.UploadIndices(indices)
		g.Count = len(indices)
	} else if stride := layout.Stride(); stride > 0 {
		g.Count = len(data) / stride
	}
	return g
}

// Draw issues one draw call covering the whole geometry.
func (g Geometry) Draw(dev Device) {
	if g.Indexed() {
		dev.DrawIndexed(g.Count)
		return
	}
	dev.DrawTriangles(0, g.Count)
}
