package agilent

import (
	"encoding/binary"
	"fmt"
	"math"
	"os"

	"agilentfpa/pkg/cube"
)

// DecodeTile converts one raw tile buffer into a cube in canonical
// orientation. The buffer layout on disk is a 255-element preamble followed by
// spectral-major data: element (k, a, b) of the (numPoints, side, side) block
// sits at preamble + k*side² + a*side + b.
//
// Decoding reorders to spatial-major (side, side, numPoints) and then applies
// the orientation normalization described on normalizeOrientation.
func DecodeTile(raw []float32, side, numPoints int) (*cube.Cube, error) {
	want := preambleElements + side*side*numPoints
	if len(raw) != want {
		return nil, fmt.Errorf("%w: %d elements, want %d (side %d, %d points)",
			ErrBufferSizeMismatch, len(raw), want, side, numPoints)
	}
	body := raw[preambleElements:]

	t := cube.New(side, side, numPoints)
	for k := 0; k < numPoints; k++ {
		plane := body[k*side*side : (k+1)*side*side]
		for a := 0; a < side; a++ {
			for b := 0; b < side; b++ {
				t.Set(a, b, k, plane[a*side+b])
			}
		}
	}
	normalizeOrientation(t)
	return t, nil
}

// normalizeOrientation maps the on-disk spatial layout onto the orientation
// the vendor software displays. The vendor transform is a 180° rotation of
// the spatial plane followed by a horizontal mirror; composed, the column
// reversals cancel and the net effect is reversing the row axis only.
// Verified against a reference acquisition — a wrong composition produces no
// error, just a subtly wrong image.
func normalizeOrientation(t *cube.Cube) {
	t.ReverseRows()
}

// readRawTile reads an entire tile file as a flat little-endian float32
// sequence.
func readRawTile(path string) ([]float32, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if len(b)%4 != 0 {
		return nil, fmt.Errorf("%w: %s: %d bytes is not a whole number of float32s",
			ErrBufferSizeMismatch, path, len(b))
	}
	raw := make([]float32, len(b)/4)
	for i := range raw {
		raw[i] = math.Float32frombits(binary.LittleEndian.Uint32(b[i*4:]))
	}
	return raw, nil
}
