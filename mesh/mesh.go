// Package mesh defines the packed output buffers a build hands back to
// its caller.
//
// Grounded on github.com/arl/go-detour/recast/polymesh.go's PolyMesh: a
// tightly packed flat buffer plus scalar counts, owned outright by
// whoever receives it, with no back-reference into the builder that
// produced it.
package mesh

import "github.com/tidewave/wavemesh/triangulate"

// Mesh is the final tightly packed triangulated surface: 6 float32 per
// vertex (x, y, amplitude, breaking, phaseOffset, blendWeight) and a flat
// triangle index list.
type Mesh struct {
	Vertices     []float32 // len == 6 * VertexCount
	Indices      []uint32  // len == 3 * triangle count
	VertexCount  int
	IndexCount   int
	CoverageQuad [4][2]float32
}

// FromTriangulated packs a triangulate.Mesh into the tight output layout.
func FromTriangulated(tm triangulate.Mesh, quad [4][2]float32) Mesh {
	out := Mesh{
		Vertices:     make([]float32, 0, len(tm.Vertices)*6),
		Indices:      make([]uint32, len(tm.Indices)),
		VertexCount:  len(tm.Vertices),
		IndexCount:   len(tm.Indices),
		CoverageQuad: quad,
	}
	for _, v := range tm.Vertices {
		out.Vertices = append(out.Vertices, v.X, v.Y, v.Amplitude, v.Breaking, v.Phase, v.BlendWeight)
	}
	for i, idx := range tm.Indices {
		out.Indices[i] = uint32(idx)
	}
	return out
}
