package gltfio

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/toxichemicals/GO/holy-webgl/scene"
)

func TestLoadCubeRoundTrip(t *testing.T) {
	for _, name := range []string{"cube.glb", "cube.gltf"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), name)
			require.NoError(t, Save(scene.Cube(), "cube", path))

			mesh, err := Load(path)
			require.NoError(t, err)

			// the cube already spans -1..1 so normalizing leaves it unchanged
			want := scene.Cube()
			assert.Equal(t, want.Indices, mesh.Indices)
			require.Len(t, mesh.Data, len(want.Data))
			for i := range want.Data {
				assert.InDelta(t, want.Data[i], mesh.Data[i], 1e-6, "float %d", i)
			}
		})
	}
}

func TestLoadTrianglePadsToCubeLayout(t *testing.T) {
	path := filepath.Join(t.TempDir(), "triangle.glb")
	require.NoError(t, Save(scene.Triangle(), "triangle", path))

	mesh, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, scene.CubeLayout, mesh.Layout)
	assert.Equal(t, 3, mesh.VertexCount())
	assert.Empty(t, mesh.Indices)

	assert.Equal(t, []float32{1, 0.5, 0.3}, mesh.Data[3:6])
}

func TestDecodeDefaultsToWhite(t *testing.T) {
	doc := gltf.NewDocument()
	pos := modeler.WritePosition(doc, [][3]float32{{0, 0, 0}, {4, 0, 0}, {0, 2, 0}})
	doc.Meshes = []*gltf.Mesh{{Primitives: []*gltf.Primitive{{
		Attributes: map[string]int{gltf.POSITION: pos},
		Mode:       gltf.PrimitiveTriangles,
	}}}}

	mesh, err := Decode(doc)
	require.NoError(t, err)
	assert.Equal(t, []float32{
		-1, -0.5, 0, 1, 1, 1,
		1, -0.5, 0, 1, 1, 1,
		-1, 0.5, 0, 1, 1, 1,
	}, mesh.Data)
}

func TestDecodeRejects(t *testing.T) {
	_, err := Decode(gltf.NewDocument())
	assert.ErrorIs(t, err, ErrUnsupported)

	doc := gltf.NewDocument()
	pos := modeler.WritePosition(doc, [][3]float32{{0, 0, 0}, {1, 0, 0}})
	doc.Meshes = []*gltf.Mesh{{Primitives: []*gltf.Primitive{{
		Attributes: map[string]int{gltf.POSITION: pos},
		Mode:       gltf.PrimitiveLines,
	}}}}
	_, err = Decode(doc)
	assert.ErrorIs(t, err, ErrUnsupported)

	doc.Meshes[0].Primitives[0].Attributes = map[string]int{}
	doc.Meshes[0].Primitives[0].Mode = gltf.PrimitiveTriangles
	_, err = Decode(doc)
	assert.ErrorIs(t, err, ErrUnsupported)
}

func TestDecodeRejectsDanglingAccessors(t *testing.T) {
	newDoc := func() (*gltf.Document, *gltf.Primitive) {
		doc := gltf.NewDocument()
		pos := modeler.WritePosition(doc, [][3]float32{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}})
		prim := &gltf.Primitive{Attributes: map[string]int{gltf.POSITION: pos}, Mode: gltf.PrimitiveTriangles}
		doc.Meshes = []*gltf.Mesh{{Primitives: []*gltf.Primitive{prim}}}
		return doc, prim
	}

	doc, prim := newDoc()
	prim.Attributes[gltf.POSITION] = 7
	_, err := Decode(doc)
	assert.ErrorIs(t, err, ErrUnsupported)

	doc, prim = newDoc()
	prim.Attributes[gltf.COLOR_0] = 9
	_, err = Decode(doc)
	assert.ErrorIs(t, err, ErrUnsupported)

	doc, prim = newDoc()
	prim.Indices = gltf.Index(-1)
	_, err = Decode(doc)
	assert.ErrorIs(t, err, ErrUnsupported)
}

func TestLoadMalformedAssetFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.gltf")
	asset := `{"asset":{"version":"2.0"},"meshes":[{"primitives":[{"attributes":{"POSITION":7}}]}]}`
	require.NoError(t, os.WriteFile(path, []byte(asset), 0o644))

	var err error
	assert.NotPanics(t, func() { _, err = Load(path) })
	assert.ErrorIs(t, err, ErrUnsupported)
}

func TestNormalize(t *testing.T) {
	out := normalize([][3]float32{{10, 10, 10}, {14, 12, 10}})
	assert.Equal(t, [][3]float32{{-1, -0.5, 0}, {1, 0.5, 0}}, out)
	assert.Empty(t, normalize(nil))
}
