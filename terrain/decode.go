package terrain

import (
	"encoding/binary"
	"math"

	"github.com/tidewave/wavemesh/waveerr"
)

// contourRecordSize is the 13 × 4-byte fixed-offset record layout used
// for one contour entry in contourData.
const contourRecordSize = 13 * 4

// Decode parses the packed terrain buffers into a Terrain.
//
// Adapted from github.com/arl/go-detour/detour/navmeshcreate.go's
// fixed-offset little-endian tile (de)serialization: both read flat byte
// buffers into typed records via encoding/binary at constant strides, and
// both reject structurally out-of-range offsets rather than panicking.
func Decode(vertexData, contourData, childrenData []byte, contourCount uint32, defaultDepth float32) (*Terrain, error) {
	if uint64(contourCount)*contourRecordSize != uint64(len(contourData)) {
		return nil, waveerr.New(waveerr.TerrainInvalid,
			"contourData length %d does not match contourCount %d (want %d bytes)",
			len(contourData), contourCount, uint64(contourCount)*contourRecordSize)
	}
	if len(vertexData)%8 != 0 {
		return nil, waveerr.New(waveerr.TerrainInvalid, "vertexData length %d is not a multiple of 8", len(vertexData))
	}
	if len(childrenData)%4 != 0 {
		return nil, waveerr.New(waveerr.TerrainInvalid, "childrenData length %d is not a multiple of 4", len(childrenData))
	}

	nFloats := len(vertexData) / 4
	verts := make([]float32, nFloats)
	for i := range verts {
		verts[i] = readF32(vertexData, i*4)
	}

	nChildren := len(childrenData) / 4
	children := make([]uint32, nChildren)
	for i := range children {
		children[i] = binary.LittleEndian.Uint32(childrenData[i*4:])
	}

	contours := make([]Contour, contourCount)
	for i := range contours {
		off := i * contourRecordSize
		rec := contourData[off : off+contourRecordSize]

		pointStart := binary.LittleEndian.Uint32(rec[0:4])
		pointCount := binary.LittleEndian.Uint32(rec[4:8])
		height := readF32(rec, 8)
		parentIndex := int32(binary.LittleEndian.Uint32(rec[12:16]))
		depth := binary.LittleEndian.Uint32(rec[16:20])
		childStart := binary.LittleEndian.Uint32(rec[20:24])
		childCount := binary.LittleEndian.Uint32(rec[24:28])
		isCoastline := binary.LittleEndian.Uint32(rec[28:32])
		bboxMinX := readF32(rec, 32)
		bboxMinY := readF32(rec, 36)
		bboxMaxX := readF32(rec, 40)
		bboxMaxY := readF32(rec, 44)
		skipCount := binary.LittleEndian.Uint32(rec[48:52])

		if uint64(pointStart+pointCount)*2 > uint64(nFloats) {
			return nil, waveerr.New(waveerr.TerrainInvalid,
				"contour %d: point range [%d,%d) exceeds vertex buffer of %d points",
				i, pointStart, pointStart+pointCount, nFloats/2)
		}
		if pointCount < 3 {
			return nil, waveerr.New(waveerr.TerrainInvalid, "contour %d: polygon has %d < 3 points", i, pointCount)
		}
		if uint64(childStart+childCount) > uint64(nChildren) {
			return nil, waveerr.New(waveerr.TerrainInvalid,
				"contour %d: child range [%d,%d) exceeds children buffer of %d entries",
				i, childStart, childStart+childCount, nChildren)
		}
		if parentIndex < -1 || parentIndex >= int32(contourCount) {
			return nil, waveerr.New(waveerr.TerrainInvalid, "contour %d: parent index %d out of range", i, parentIndex)
		}

		contours[i] = Contour{
			PointStart: int32(pointStart),
			PointCount: int32(pointCount),
			Height:     height,
			Parent:     parentIndex,
			Depth:      depth,
			ChildStart: childStart,
			ChildCount: childCount,
			Coastline:  isCoastline != 0,
			BBoxMin:    [2]float32{bboxMinX, bboxMinY},
			BBoxMax:    [2]float32{bboxMaxX, bboxMaxY},
			SkipCount:  skipCount,
		}
	}

	for _, c := range children {
		if c >= contourCount {
			return nil, waveerr.New(waveerr.TerrainInvalid, "child index %d exceeds contour count %d", c, contourCount)
		}
	}

	return &Terrain{
		Verts:        verts,
		Contours:     contours,
		Children:     children,
		DefaultDepth: defaultDepth,
	}, nil
}

func readF32(b []byte, off int) float32 {
	return math.Float32frombits(binary.LittleEndian.Uint32(b[off : off+4]))
}
