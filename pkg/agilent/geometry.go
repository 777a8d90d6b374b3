package agilent

import (
	"fmt"
	"math"
)

// preambleElements is the fixed number of float32 elements prefixed to every
// raw tile buffer. The preamble carries no pixel data and is discarded.
const preambleElements = 255

// fpaSizes lists the square detector side lengths the format is known to
// produce.
var fpaSizes = []int{32, 64, 128}

// InferFPASize derives the side length of the square focal-plane array from
// the element count of a raw tile buffer and the header's spectral point
// count: side = round(sqrt((rawElements-255)/numPoints)).
//
// Besides sizing the tile, this is the primary consistency check between
// header and tile file: a numPoints that does not match the file size lands
// outside the known detector sizes and is rejected with
// ErrUnsupportedGeometry rather than silently accepted.
func InferFPASize(rawElements int, numPoints int) (int, error) {
	if numPoints <= 0 {
		return 0, fmt.Errorf("%w: non-positive point count %d", ErrUnsupportedGeometry, numPoints)
	}
	side := int(math.Round(math.Sqrt(float64(rawElements-preambleElements) / float64(numPoints))))
	for _, s := range fpaSizes {
		if side == s {
			return side, nil
		}
	}
	return 0, fmt.Errorf("%w: inferred side %d from %d elements and %d points (want one of %v)",
		ErrUnsupportedGeometry, side, rawElements, numPoints, fpaSizes)
}
