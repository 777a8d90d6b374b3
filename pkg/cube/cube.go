// Package cube provides the hyperspectral data cube container shared by the
// decoding and rendering packages. A Cube is a dense 3-D array of float32
// values in canonical (row, column, spectral point) order, stored as a single
// flat slice.
package cube

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
)

// Cube is a row-major hyperspectral cube. The element at spatial position
// (r, c) and spectral index k lives at data[(r*cols+c)*points + k], so the
// spectrum of one pixel is contiguous in memory.
type Cube struct {
	// data holds rows*cols*points values, spatial-major, spectral-minor
	data []float32

	// rows and cols are the spatial dimensions in pixels
	rows int
	cols int

	// points is the number of spectral points per pixel
	points int
}

// New allocates a zero-initialized cube with the given dimensions.
// All dimensions must be positive.
func New(rows, cols, points int) *Cube {
	if rows <= 0 || cols <= 0 || points <= 0 {
		panic(fmt.Sprintf("cube: invalid dimensions %dx%dx%d", rows, cols, points))
	}
	return &Cube{
		data:   make([]float32, rows*cols*points),
		rows:   rows,
		cols:   cols,
		points: points,
	}
}

// Rows returns the number of spatial rows.
func (c *Cube) Rows() int { return c.rows }

// Cols returns the number of spatial columns.
func (c *Cube) Cols() int { return c.cols }

// Points returns the number of spectral points per pixel.
func (c *Cube) Points() int { return c.points }

// At returns the value at row r, column col, spectral index k.
func (c *Cube) At(r, col, k int) float32 {
	return c.data[(r*c.cols+col)*c.points+k]
}

// Set stores v at row r, column col, spectral index k.
func (c *Cube) Set(r, col, k int, v float32) {
	c.data[(r*c.cols+col)*c.points+k] = v
}

// Spectrum returns the spectrum of the pixel at (r, col) as a view into the
// cube's backing storage. Mutating the returned slice mutates the cube.
func (c *Cube) Spectrum(r, col int) []float32 {
	off := (r*c.cols + col) * c.points
	return c.data[off : off+c.points]
}

// Raw exposes the flat backing slice. Intended for bulk export; the layout is
// the one documented on Cube.
func (c *Cube) Raw() []float32 {
	return c.data
}

// SetRegion copies src into the rectangular region whose top-left corner is
// (rowOff, colOff). The source must have the same spectral depth and must fit
// entirely inside the destination. Regions written by different SetRegion
// calls with disjoint rectangles never overlap in the backing slice, so
// concurrent placement of disjoint tiles is safe.
func (c *Cube) SetRegion(rowOff, colOff int, src *Cube) error {
	if src.points != c.points {
		return fmt.Errorf("cube: spectral depth mismatch: src %d, dst %d", src.points, c.points)
	}
	if rowOff < 0 || colOff < 0 || rowOff+src.rows > c.rows || colOff+src.cols > c.cols {
		return fmt.Errorf("cube: region %dx%d at (%d,%d) exceeds %dx%d cube",
			src.rows, src.cols, rowOff, colOff, c.rows, c.cols)
	}
	for r := 0; r < src.rows; r++ {
		srcRow := src.data[r*src.cols*src.points : (r+1)*src.cols*src.points]
		dstOff := ((rowOff+r)*c.cols + colOff) * c.points
		copy(c.data[dstOff:dstOff+len(srcRow)], srcRow)
	}
	return nil
}

// ReverseRows reverses the order of the spatial rows in place, leaving column
// and spectral order untouched.
func (c *Cube) ReverseRows() {
	rowLen := c.cols * c.points
	tmp := make([]float32, rowLen)
	for top, bot := 0, c.rows-1; top < bot; top, bot = top+1, bot-1 {
		a := c.data[top*rowLen : (top+1)*rowLen]
		b := c.data[bot*rowLen : (bot+1)*rowLen]
		copy(tmp, a)
		copy(a, b)
		copy(b, tmp)
	}
}

// BandSum sums each pixel's spectrum, returning a rows*cols row-major image.
// This is the standard quicklook projection of a hyperspectral cube.
func (c *Cube) BandSum() []float64 {
	out := make([]float64, c.rows*c.cols)
	for i := range out {
		spec := c.data[i*c.points : (i+1)*c.points]
		var sum float64
		for _, v := range spec {
			sum += float64(v)
		}
		out[i] = sum
	}
	return out
}

// MeanSpectrum averages the spectra of all pixels into a single spectrum of
// length Points.
func (c *Cube) MeanSpectrum() []float64 {
	acc := make([]float64, c.points)
	n := c.rows * c.cols
	for i := 0; i < n; i++ {
		spec := c.data[i*c.points : (i+1)*c.points]
		for k, v := range spec {
			acc[k] += float64(v)
		}
	}
	floats.Scale(1/float64(n), acc)
	return acc
}
