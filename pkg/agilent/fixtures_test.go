package agilent

import (
	"encoding/binary"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// headerBytes builds a synthetic header image with the spectral fields at
// their fixed offsets. If ts is non-empty the timestamp field is populated
// too, terminated with 0x04 and trailed by junk padding.
func headerBytes(startPoint, numPoints int32, pointSep float64, ts string) []byte {
	b := make([]byte, 17000)
	binary.LittleEndian.PutUint32(b[offStartPoint:], uint32(startPoint))
	binary.LittleEndian.PutUint32(b[offNumPoints:], uint32(numPoints))
	binary.LittleEndian.PutUint64(b[offPointSeparation:], math.Float64bits(pointSep))
	if ts != "" {
		copy(b[offTimestamp:], ts)
		b[offTimestamp+len(ts)] = timestampTerminator
		copy(b[offTimestamp+len(ts)+1:], "garbage after terminator")
	}
	return b
}

// tileFloats builds a raw tile buffer: 255 zero preamble elements followed by
// spectral-major data where element (k, a, b) = fill(k, a, b).
func tileFloats(side, numPoints int, fill func(k, a, b int) float32) []float32 {
	raw := make([]float32, preambleElements+side*side*numPoints)
	for k := 0; k < numPoints; k++ {
		for a := 0; a < side; a++ {
			for b := 0; b < side; b++ {
				raw[preambleElements+k*side*side+a*side+b] = fill(k, a, b)
			}
		}
	}
	return raw
}

// floatBytes serializes values as the on-disk little-endian float32 stream.
func floatBytes(vals []float32) []byte {
	b := make([]byte, 4*len(vals))
	for i, v := range vals {
		binary.LittleEndian.PutUint32(b[i*4:], math.Float32bits(v))
	}
	return b
}

func writeFile(t *testing.T, path string, b []byte) {
	t.Helper()
	if err := os.WriteFile(path, b, 0o644); err != nil {
		t.Fatalf("writing fixture %s: %v", path, err)
	}
}

// writeSingleTile lays down the .seq/.dat/.bsp sibling set for one synthetic
// single-tile acquisition and returns the .seq path.
func writeSingleTile(t *testing.T, dir string, startPoint, numPoints int32, pointSep float64, ts string, side int, fill func(k, a, b int) float32) string {
	t.Helper()
	base := filepath.Join(dir, "sample.seq")
	writeFile(t, base, nil)
	writeFile(t, withExt(base, ".bsp"), headerBytes(startPoint, numPoints, pointSep, ts))
	writeFile(t, withExt(base, ".dat"), floatBytes(tileFloats(side, int(numPoints), fill)))
	return base
}

// mosaicFixture describes a synthetic mosaic acquisition.
type mosaicFixture struct {
	stem       string // base filename without extension, e.g. "Mosaic 4X"
	startPoint int32
	numPoints  int32
	pointSep   float64
	side       int
	xTiles     int
	yTiles     int

	// value returns the constant fill for tile (x, y)
	value func(x, y int) float32

	// skip lists grid positions whose .dmd file is not written
	skip map[placement]bool
}

// writeMosaic lays down the .dms/.dmt/.drd/.dmd sibling set and returns the
// .dms path.
func writeMosaic(t *testing.T, dir string, fx mosaicFixture) string {
	t.Helper()
	base := filepath.Join(dir, fx.stem+".dms")
	writeFile(t, base, nil)
	// The writing software always lowercases the .dmt filename.
	writeFile(t, filepath.Join(dir, strings.ToLower(fx.stem)+".dmt"),
		headerBytes(fx.startPoint, fx.numPoints, fx.pointSep, ""))
	writeFile(t, tilePath(base, 0, 0, ".drd"), nil)

	for y := 0; y < fx.yTiles; y++ {
		for x := 0; x < fx.xTiles; x++ {
			if fx.skip[placement{x: x, y: y}] {
				continue
			}
			v := fx.value(x, y)
			raw := tileFloats(fx.side, int(fx.numPoints), func(_, _, _ int) float32 { return v })
			writeFile(t, tilePath(base, x, y, tileExt), floatBytes(raw))
		}
	}
	return base
}
