package terrain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tidewave/wavemesh/internal/terraintest"
	"github.com/tidewave/wavemesh/terrain"
)

func TestOpenOceanIsTotalAndDefault(t *testing.T) {
	tr := terraintest.OpenOcean(-50)
	pts := [][2]float32{{0, 0}, {1e6, -1e6}, {-123.4, 987.6}}
	for _, p := range pts {
		h := tr.Height(p[0], p[1])
		assert.Equal(t, float32(-50), h)
	}
}

func TestSingleIslandCenterIsCoastlineHeight(t *testing.T) {
	tr := terraintest.SingleIsland(0, 0, 100, -50)
	h := tr.Height(0, 0)
	assert.InDelta(t, 0, h, 1e-3)
}

func TestSingleIslandOutsideIsDefaultDepth(t *testing.T) {
	tr := terraintest.SingleIsland(0, 0, 100, -50)
	h := tr.Height(1000, 1000)
	assert.Equal(t, float32(-50), h)
}

func TestNestedShelvesMonotoneRefinement(t *testing.T) {
	tr := terraintest.NestedShelves(-50, []terraintest.Shelf{
		{Radius: 400, Height: -30},
		{Radius: 200, Height: -10},
		{Radius: 100, Height: 0},
	})

	center := tr.Height(0, 0)
	assert.InDelta(t, 0, center, 1e-2, "center should report the deepest (coastline) height")

	mid1 := tr.Height(150, 0) // between radius 100 and 200
	assert.Greater(t, mid1, float32(-10), "blended height should lean toward the coastline child")
	assert.Less(t, mid1, float32(0))

	mid2 := tr.Height(300, 0) // between radius 200 and 400
	assert.Greater(t, mid2, float32(-30))
	assert.Less(t, mid2, float32(-10))

	outside := tr.Height(1000, 0)
	assert.Equal(t, float32(-50), outside)
}

func TestHeightAndGradientIsFiniteEverywhere(t *testing.T) {
	tr := terraintest.SingleIsland(0, 0, 100, -50)
	pts := [][2]float32{{0, 0}, {99, 0}, {150, 150}, {-500, 500}}
	for _, p := range pts {
		h, gx, gy := tr.HeightAndGradient(p[0], p[1], terrain.GradientDelta(30))
		assert.False(t, isNaNOrInf(h))
		assert.False(t, isNaNOrInf(gx))
		assert.False(t, isNaNOrInf(gy))
	}
}

func isNaNOrInf(f float32) bool {
	return f != f || f > 3.4e38 || f < -3.4e38
}

func TestDecodeRejectsOutOfRangePointers(t *testing.T) {
	// A single contour record claiming more points than the vertex
	// buffer holds.
	contourData := make([]byte, 52)
	putU32(contourData[0:4], 0)  // pointStart
	putU32(contourData[4:8], 10) // pointCount: too large
	putU32(contourData[12:16], 0xFFFFFFFF) // parentIndex -1

	_, err := terrain.Decode(make([]byte, 8), contourData, nil, 1, -50)
	assert.Error(t, err)
}

func putU32(b []byte, v uint32) {
	b[0] = byte(v)
	b[1] = byte(v >> 8)
	b[2] = byte(v >> 16)
	b[3] = byte(v >> 24)
}
