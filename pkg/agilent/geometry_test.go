package agilent

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInferFPASizeKnownSizes(t *testing.T) {
	for _, side := range []int{32, 64, 128} {
		for _, numPoints := range []int{1, 10, 728} {
			t.Run(fmt.Sprintf("side=%d points=%d", side, numPoints), func(t *testing.T) {
				got, err := InferFPASize(preambleElements+side*side*numPoints, numPoints)
				require.NoError(t, err)
				assert.Equal(t, side, got)
			})
		}
	}
}

func TestInferFPASizeRejectsUnknownSizes(t *testing.T) {
	cases := []struct {
		name        string
		rawElements int
		numPoints   int
	}{
		{"side 10", preambleElements + 10*10*5, 5},
		{"side 256", preambleElements + 256*256*5, 5},
		{"header/tile mismatch", preambleElements + 64*64*10, 7},
		{"zero points", preambleElements + 64*64, 0},
		{"negative points", preambleElements + 64*64, -3},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := InferFPASize(tc.rawElements, tc.numPoints)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrUnsupportedGeometry)
		})
	}
}
