package gltfio

import (
	"errors"
	"fmt"
	"math"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"

	"github.com/toxichemicals/GO/holy-webgl/scene"
)

var ErrUnsupported = errors.New("unsupported glTF content")

// Load reads the first primitive of the first mesh in the asset at path
// (.gltf or .glb). See Decode.
func Load(path string) (scene.Mesh, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return scene.Mesh{}, fmt.Errorf("open %s: %w", path, err)
	}
	mesh, err := Decode(doc)
	if err != nil {
		return scene.Mesh{}, fmt.Errorf("load %s: %w", path, err)
	}
	return mesh, nil
}

// Decode converts the first primitive of the first mesh into a mesh with
// scene.CubeLayout. Node transforms are ignored. Vertices without COLOR_0
// are white. The result is centered on the origin and scaled so its largest
// extent is 2, the size of the tutorial cube.
func Decode(doc *gltf.Document) (scene.Mesh, error) {
	if len(doc.Meshes) == 0 || len(doc.Meshes[0].Primitives) == 0 {
		return scene.Mesh{}, fmt.Errorf("%w: no mesh primitives", ErrUnsupported)
	}
	prim := doc.Meshes[0].Primitives[0]
	if prim.Mode != gltf.PrimitiveTriangles {
		return scene.Mesh{}, fmt.Errorf("%w: primitive mode %v", ErrUnsupported, prim.Mode)
	}

	posIdx, ok := prim.Attributes[gltf.POSITION]
	if !ok {
		return scene.Mesh{}, fmt.Errorf("%w: primitive has no POSITION", ErrUnsupported)
	}
	posAcr, err := accessor(doc, posIdx)
	if err != nil {
		return scene.Mesh{}, err
	}
	positions, err := modeler.ReadPosition(doc, posAcr, nil)
	if err != nil {
		return scene.Mesh{}, fmt.Errorf("read positions: %w", err)
	}
	if len(positions) > math.MaxUint16+1 {
		return scene.Mesh{}, fmt.Errorf("%w: %d vertices exceed 16-bit indices", ErrUnsupported, len(positions))
	}

	colors := make([][3]float32, len(positions))
	if colIdx, ok := prim.Attributes[gltf.COLOR_0]; ok {
		colAcr, err := accessor(doc, colIdx)
		if err != nil {
			return scene.Mesh{}, err
		}
		if colors, err = readColors(doc, colAcr); err != nil {
			return scene.Mesh{}, err
		}
		if len(colors) != len(positions) {
			return scene.Mesh{}, fmt.Errorf("%w: %d colors for %d positions", scene.ErrMalformed, len(colors), len(positions))
		}
	} else {
		for i := range colors {
			colors[i] = [3]float32{1, 1, 1}
		}
	}

	mesh := scene.Mesh{Layout: scene.CubeLayout, Data: make([]float32, 0, 6*len(positions))}
	for i, p := range normalize(positions) {
		mesh.Data = append(mesh.Data, p[0], p[1], p[2], colors[i][0], colors[i][1], colors[i][2])
	}

	if prim.Indices != nil {
		idxAcr, err := accessor(doc, *prim.Indices)
		if err != nil {
			return scene.Mesh{}, err
		}
		indices, err := modeler.ReadIndices(doc, idxAcr, nil)
		if err != nil {
			return scene.Mesh{}, fmt.Errorf("read indices: %w", err)
		}
		mesh.Indices = make([]uint16, len(indices))
		for i, v := range indices {
			if v > math.MaxUint16 {
				return scene.Mesh{}, fmt.Errorf("%w: index %d out of range", scene.ErrMalformed, v)
			}
			mesh.Indices[i] = uint16(v)
		}
	}
	return mesh, mesh.Validate()
}

// accessor looks up an accessor reference, which gltf.Open does not check.
func accessor(doc *gltf.Document, idx int) (*gltf.Accessor, error) {
	if idx < 0 || idx >= len(doc.Accessors) || doc.Accessors[idx] == nil {
		return nil, fmt.Errorf("%w: accessor %d out of range", ErrUnsupported, idx)
	}
	return doc.Accessors[idx], nil
}

func readColors(doc *gltf.Document, acr *gltf.Accessor) ([][3]float32, error) {
	raw, err := modeler.ReadAccessor(doc, acr, nil)
	if err != nil {
		return nil, fmt.Errorf("read colors: %w", err)
	}
	var out [][3]float32
	switch v := raw.(type) {
	case [][3]float32:
		out = v
	case [][4]float32:
		for _, c := range v {
			out = append(out, [3]float32{c[0], c[1], c[2]})
		}
	case [][3]uint8:
		for _, c := range v {
			out = append(out, [3]float32{float32(c[0]) / 255, float32(c[1]) / 255, float32(c[2]) / 255})
		}
	case [][4]uint8:
		for _, c := range v {
			out = append(out, [3]float32{float32(c[0]) / 255, float32(c[1]) / 255, float32(c[2]) / 255})
		}
	case [][3]uint16:
		for _, c := range v {
			out = append(out, [3]float32{float32(c[0]) / 65535, float32(c[1]) / 65535, float32(c[2]) / 65535})
		}
	case [][4]uint16:
		for _, c := range v {
			out = append(out, [3]float32{float32(c[0]) / 65535, float32(c[1]) / 65535, float32(c[2]) / 65535})
		}
	default:
		return nil, fmt.Errorf("%w: COLOR_0 of type %T", ErrUnsupported, raw)
	}
	return out, nil
}

// normalize centers the bounding box on the origin and scales its largest
// side to 2.
func normalize(in [][3]float32) [][3]float32 {
	if len(in) == 0 {
		return in
	}
	lo, hi := in[0], in[0]
	for _, p := range in[1:] {
		for k := 0; k < 3; k++ {
			lo[k] = min(lo[k], p[k])
			hi[k] = max(hi[k], p[k])
		}
	}
	var center [3]float32
	extent := float32(0)
	for k := 0; k < 3; k++ {
		center[k] = (lo[k] + hi[k]) / 2
		extent = max(extent, hi[k]-lo[k])
	}
	scale := float32(1)
	if extent > 0 {
		scale = 2 / extent
	}
	out := make([][3]float32, len(in))
	for i, p := range in {
		for k := 0; k < 3; k++ {
			out[i][k] = (p[k] - center[k]) * scale
		}
	}
	return out
}
