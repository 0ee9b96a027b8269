// Package gltfio moves meshes between the tutorials and glTF 2.0 assets:
// the authored meshes can be written out for inspection in any model viewer,
// and a colored model can be read in to spin in place of the cube.
package gltfio

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"

	"github.com/toxichemicals/GO/holy-webgl/scene"
)

// Build converts mesh into a single-node document. Two-component positions
// are placed on the z = 0 plane.
func Build(mesh scene.Mesh, name string) (*gltf.Document, error) {
	if err := mesh.Validate(); err != nil {
		return nil, err
	}
	positions, err := mesh.Components(scene.AttribPosition)
	if err != nil {
		return nil, err
	}
	colors, err := mesh.Components(scene.AttribColor)
	if err != nil {
		return nil, err
	}

	doc := gltf.NewDocument()
	attrs := map[string]int{
		gltf.POSITION: modeler.WritePosition(doc, vec3s(positions)),
		gltf.COLOR_0:  modeler.WriteColor(doc, vec3s(colors)),
	}
	prim := &gltf.Primitive{Attributes: attrs, Mode: gltf.PrimitiveTriangles}
	if len(mesh.Indices) > 0 {
		prim.Indices = gltf.Index(modeler.WriteIndices(doc, mesh.Indices))
	}

	doc.Meshes = append(doc.Meshes, &gltf.Mesh{Name: name, Primitives: []*gltf.Primitive{prim}})
	doc.Nodes = append(doc.Nodes, &gltf.Node{Name: name, Mesh: gltf.Index(len(doc.Meshes) - 1)})
	doc.Scenes[0].Nodes = append(doc.Scenes[0].Nodes, len(doc.Nodes)-1)
	return doc, nil
}

// Save builds mesh and writes it to path, as binary glTF when path ends in
// ".glb" and as JSON with embedded buffers otherwise.
func Save(mesh scene.Mesh, name, path string) error {
	doc, err := Build(mesh, name)
	if err != nil {
		return fmt.Errorf("export %s: %w", name, err)
	}
	if strings.EqualFold(filepath.Ext(path), ".glb") {
		err = gltf.SaveBinary(doc, path)
	} else {
		for _, b := range doc.Buffers {
			if b.URI == "" {
				b.EmbeddedResource()
			}
		}
		err = gltf.Save(doc, path)
	}
	if err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

func vec3s(in [][]float32) [][3]float32 {
	out := make([][3]float32, len(in))
	for i, v := range in {
		copy(out[i][:], v)
	}
	return out
}
