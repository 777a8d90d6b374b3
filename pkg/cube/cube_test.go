package cube

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewIsZeroInitialized(t *testing.T) {
	c := New(3, 4, 5)
	assert.Equal(t, 3, c.Rows())
	assert.Equal(t, 4, c.Cols())
	assert.Equal(t, 5, c.Points())
	for _, v := range c.Raw() {
		require.Zero(t, v)
	}
}

func TestAtSetSpectrum(t *testing.T) {
	c := New(2, 2, 3)
	c.Set(1, 0, 2, 7.5)
	assert.Equal(t, float32(7.5), c.At(1, 0, 2))

	spec := c.Spectrum(1, 0)
	require.Len(t, spec, 3)
	assert.Equal(t, float32(7.5), spec[2])

	// Spectrum is a view, not a copy.
	spec[0] = 1.25
	assert.Equal(t, float32(1.25), c.At(1, 0, 0))
}

func TestSetRegionPlacesDisjointBlocks(t *testing.T) {
	dst := New(4, 4, 2)
	for i, fill := range []float32{1, 2, 3, 4} {
		src := New(2, 2, 2)
		for j := range src.Raw() {
			src.Raw()[j] = fill
		}
		rowOff := (i / 2) * 2
		colOff := (i % 2) * 2
		require.NoError(t, dst.SetRegion(rowOff, colOff, src))
	}

	for r := 0; r < 4; r++ {
		for col := 0; col < 4; col++ {
			want := float32((r/2)*2 + col/2 + 1)
			for k := 0; k < 2; k++ {
				assert.Equal(t, want, dst.At(r, col, k), "pixel (%d,%d,%d)", r, col, k)
			}
		}
	}
}

func TestSetRegionRejectsBadGeometry(t *testing.T) {
	dst := New(4, 4, 2)

	wrongDepth := New(2, 2, 3)
	assert.Error(t, dst.SetRegion(0, 0, wrongDepth))

	tooBig := New(3, 3, 2)
	assert.Error(t, dst.SetRegion(2, 2, tooBig))
	assert.Error(t, dst.SetRegion(-1, 0, New(2, 2, 2)))
}

func TestReverseRows(t *testing.T) {
	c := New(3, 2, 1)
	for r := 0; r < 3; r++ {
		for col := 0; col < 2; col++ {
			c.Set(r, col, 0, float32(10*r+col))
		}
	}
	c.ReverseRows()
	for r := 0; r < 3; r++ {
		for col := 0; col < 2; col++ {
			assert.Equal(t, float32(10*(2-r)+col), c.At(r, col, 0))
		}
	}
}

func TestBandSumAndMeanSpectrum(t *testing.T) {
	c := New(2, 2, 2)
	// Pixel i gets spectrum {i, 2i}.
	for i := 0; i < 4; i++ {
		r, col := i/2, i%2
		c.Set(r, col, 0, float32(i))
		c.Set(r, col, 1, float32(2*i))
	}

	sum := c.BandSum()
	require.Len(t, sum, 4)
	for i := 0; i < 4; i++ {
		assert.InDelta(t, float64(3*i), sum[i], 1e-9)
	}

	mean := c.MeanSpectrum()
	require.Len(t, mean, 2)
	assert.InDelta(t, 1.5, mean[0], 1e-9) // (0+1+2+3)/4
	assert.InDelta(t, 3.0, mean[1], 1e-9)
}
