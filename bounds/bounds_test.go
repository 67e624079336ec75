package bounds_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tidewave/wavemesh/bounds"
	"github.com/tidewave/wavemesh/config"
	"github.com/tidewave/wavemesh/internal/terraintest"
)

func TestSolveFallsBackToHalfSideSquareWithNoTerrain(t *testing.T) {
	empty := terraintest.OpenOcean(-50)
	b := bounds.Solve(empty, 0, 100, config.Default())
	assert.Equal(t, -config.FallbackBoundsHalfSide, b.MinProj)
	assert.Equal(t, config.FallbackBoundsHalfSide, b.MaxProj)
	assert.Equal(t, -config.FallbackBoundsHalfSide, b.MinPerp)
	assert.Equal(t, config.FallbackBoundsHalfSide, b.MaxPerp)
}

func TestSolveCoversEveryRootContourCorner(t *testing.T) {
	terr := terraintest.SingleIsland(0, 0, 150, -40)
	cfg := config.Default()
	b := bounds.Solve(terr, 0, 100, cfg)

	for _, c := range terr.Contours {
		if c.Parent != -1 {
			continue
		}
		corners := [4][2]float32{
			{c.BBoxMin[0], c.BBoxMin[1]},
			{c.BBoxMax[0], c.BBoxMin[1]},
			{c.BBoxMax[0], c.BBoxMax[1]},
			{c.BBoxMin[0], c.BBoxMax[1]},
		}
		for _, corner := range corners {
			assert.True(t, b.Contains(corner[0], corner[1]))
		}
	}
}

func TestSolveMarginsRespectMinimumFloor(t *testing.T) {
	terr := terraintest.SingleIsland(0, 0, 50, -10)
	cfg := config.Default()
	lambda := float32(1) // tiny wavelength, so marginMultiplier*lambda < MinimumMarginFeet
	b := bounds.Solve(terr, 0, lambda, cfg)

	root := terr.Contours[0]
	assert.LessOrEqual(t, b.MinProj, root.BBoxMin[0]-config.MinimumMarginFeet+1)
	assert.GreaterOrEqual(t, b.MaxProj, root.BBoxMax[0]+config.MinimumMarginFeet-1)
}

func TestCoverageQuadIsCounterClockwiseFromMinCorner(t *testing.T) {
	frame := bounds.NewFrame(0)
	b := bounds.Bounds{Frame: frame, MinProj: -10, MaxProj: 10, MinPerp: -5, MaxPerp: 5}
	quad := b.CoverageQuad()

	assert.InDelta(t, -10, quad[0][0], 1e-4)
	assert.InDelta(t, -5, quad[0][1], 1e-4)
	assert.InDelta(t, 10, quad[1][0], 1e-4)
	assert.InDelta(t, -5, quad[1][1], 1e-4)
	assert.InDelta(t, 10, quad[2][0], 1e-4)
	assert.InDelta(t, 5, quad[2][1], 1e-4)
	assert.InDelta(t, -10, quad[3][0], 1e-4)
	assert.InDelta(t, 5, quad[3][1], 1e-4)
}

func TestFrameProjectUnprojectRoundTrips(t *testing.T) {
	frame := bounds.NewFrame(0.7)
	p, q := frame.Project(37, -12)
	x, y := frame.Unproject(p, q)
	assert.InDelta(t, 37, x, 1e-3)
	assert.InDelta(t, -12, y, 1e-3)
}
