// Package visualization renders quicklook summaries of a decoded
// hyperspectral image: a band-sum grayscale raster of the spatial plane and a
// plot of the spatially averaged spectrum. It is display glue only; no result
// of this package feeds back into decoding.
package visualization

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"sort"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"agilentfpa/pkg/agilent"
)

// Quicklook renders summaries of one decoded image.
type Quicklook struct {
	img *agilent.Image

	// lowQ and highQ are the quantiles the band-sum grayscale range is
	// stretched between; intensities outside are clipped
	lowQ  float64
	highQ float64
}

// NewQuicklook creates a quicklook renderer with the given contrast-stretch
// quantiles. Out-of-order or out-of-range quantiles fall back to 0.01/0.99.
func NewQuicklook(img *agilent.Image, lowQ, highQ float64) *Quicklook {
	if !(lowQ >= 0 && highQ <= 1 && lowQ < highQ) {
		lowQ, highQ = 0.01, 0.99
	}
	return &Quicklook{img: img, lowQ: lowQ, highQ: highQ}
}

// BandSumImage sums every pixel's spectrum and maps the sums onto a 16-bit
// grayscale raster, stretched between the configured quantiles.
func (q *Quicklook) BandSumImage() *image.Gray16 {
	sums := q.img.Data.BandSum()

	sorted := make([]float64, len(sums))
	copy(sorted, sums)
	sort.Float64s(sorted)
	lo := stat.Quantile(q.lowQ, stat.Empirical, sorted, nil)
	hi := stat.Quantile(q.highQ, stat.Empirical, sorted, nil)

	rows, cols := q.img.Data.Rows(), q.img.Data.Cols()
	out := image.NewGray16(image.Rect(0, 0, cols, rows))
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			v := sums[r*cols+c]
			var scaled float64
			if hi > lo {
				scaled = (v - lo) / (hi - lo)
			}
			if scaled < 0 {
				scaled = 0
			} else if scaled > 1 {
				scaled = 1
			}
			out.SetGray16(c, r, color.Gray16{Y: uint16(scaled * 65535)})
		}
	}
	return out
}

// SaveBandSumPNG writes the band-sum raster to path as PNG.
func (q *Quicklook) SaveBandSumPNG(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating quicklook file: %w", err)
	}
	if err := png.Encode(f, q.BandSumImage()); err != nil {
		f.Close()
		return fmt.Errorf("encoding quicklook PNG: %w", err)
	}
	return f.Close()
}

// MeanSpectrumPlot plots the spatially averaged spectrum against the
// wavenumber axis.
func (q *Quicklook) MeanSpectrumPlot() (*plot.Plot, error) {
	mean := q.img.Data.MeanSpectrum()
	axis := q.img.Wavenumbers

	pts := make(plotter.XYs, len(mean))
	for i := range pts {
		pts[i].X = axis[i]
		pts[i].Y = mean[i]
	}
	line, err := plotter.NewLine(pts)
	if err != nil {
		return nil, fmt.Errorf("building spectrum line: %w", err)
	}

	p := plot.New()
	p.Title.Text = "Mean spectrum"
	p.X.Label.Text = "Wavenumber (1/cm)"
	p.Y.Label.Text = "Intensity"
	p.Add(line)
	return p, nil
}

// SaveMeanSpectrumPNG renders the mean-spectrum plot to path.
func (q *Quicklook) SaveMeanSpectrumPNG(path string) error {
	p, err := q.MeanSpectrumPlot()
	if err != nil {
		return err
	}
	return p.Save(8*vg.Inch, 5*vg.Inch, path)
}
