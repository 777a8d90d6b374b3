package agilent

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"agilentfpa/pkg/cube"
)

// Image is the decoded result of either acquisition layout: the header
// parameters, the derived wavenumber axis, and the hyperspectral cube. Single
// tiles and mosaics differ only in how the cube was produced, so both
// construction paths return this one type.
type Image struct {
	// Header holds the spectral parameters read from the header file.
	Header AcquisitionHeader

	// Wavenumbers is the spectral axis, one entry per point of Data.
	Wavenumbers []float64

	// Width and Height are the spatial dimensions in pixels
	// (Width = columns, Height = rows).
	Width  int
	Height int

	// Data is the cube in canonical (row, column, spectral point) order.
	Data *cube.Cube

	// Timestamp is the acquisition time string. Empty for mosaics, whose
	// header layout has no verified timestamp field.
	Timestamp string
}

// ReadImage decodes a single-tile acquisition. The path names the
// acquisition by any of its sibling files, conventionally the .seq file; the
// header is read from the .bsp sibling and the tile from the .dat sibling.
func ReadImage(path string, opts ...Option) (*Image, error) {
	o := newOptions(opts)

	if err := CheckSiblings(path, singleTileExts); err != nil {
		return nil, err
	}
	o.logger.Debug("siblings verified", zap.String("path", path), zap.Strings("exts", singleTileExts))

	hdr, ts, err := readBSPHeader(withExt(path, ".bsp"))
	if err != nil {
		return nil, err
	}
	o.logger.Debug("header parsed",
		zap.Int32("startPoint", hdr.StartPoint),
		zap.Int32("numPoints", hdr.NumPoints),
		zap.Float64("pointSeparation", hdr.PointSeparation),
		zap.String("timestamp", ts))
	hdr.Timestamp = ts

	datPath := withExt(path, ".dat")
	raw, err := readRawTile(datPath)
	if err != nil {
		return nil, fmt.Errorf("reading tile %s: %w", datPath, err)
	}
	side, err := InferFPASize(len(raw), int(hdr.NumPoints))
	if err != nil {
		return nil, err
	}
	o.logger.Debug("geometry inferred", zap.Int("fpaSize", side))

	tile, err := DecodeTile(raw, side, int(hdr.NumPoints))
	if err != nil {
		return nil, err
	}

	return &Image{
		Header:      hdr,
		Wavenumbers: hdr.Wavenumbers(),
		Width:       side,
		Height:      side,
		Data:        tile,
		Timestamp:   ts,
	}, nil
}

// readBSPHeader reads the spectral parameters and timestamp from a
// single-tile .bsp header file.
func readBSPHeader(path string) (AcquisitionHeader, string, error) {
	f, err := os.Open(path)
	if err != nil {
		return AcquisitionHeader{}, "", err
	}
	defer f.Close()

	hdr, err := ReadHeader(f)
	if err != nil {
		return AcquisitionHeader{}, "", fmt.Errorf("header %s: %w", path, err)
	}
	ts, err := ReadTimestamp(f)
	if err != nil {
		return AcquisitionHeader{}, "", fmt.Errorf("header %s: %w", path, err)
	}
	return hdr, ts, nil
}
