// Package agilent decodes Agilent FTIR focal-plane-array acquisitions, both
// single-tile images (.seq/.dat/.bsp) and multi-tile mosaics
// (.dms/.dmt/.dmd/.drd), into an in-memory hyperspectral cube with a derived
// wavenumber axis.
package agilent

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"math"
)

// Fixed byte offsets of the header fields, little-endian. These are empirical
// format constants verified against ResPro-written sample files; they are not
// derived from any record structure, so a format revision means changing the
// constants here and nowhere else.
const (
	offPointSeparation = 2216 // float64
	offStartPoint      = 2228 // int32
	offNumPoints       = 2236 // int32

	// The timestamp field has only been verified for the single-tile .bsp
	// layout. Mosaic .dmt headers are not read at this offset.
	offTimestamp = 16489
	timestampLen = 46
)

// timestampTerminator ends the timestamp field; bytes from the first
// occurrence onward are padding.
const timestampTerminator = 0x04

// AcquisitionHeader holds the spectral parameters of one acquisition. It is
// read once per header file and never mutated afterwards.
type AcquisitionHeader struct {
	// StartPoint is the index of the first spectral point.
	StartPoint int32

	// NumPoints is the number of spectral points per pixel.
	NumPoints int32

	// PointSeparation is the wavenumber step between consecutive points.
	PointSeparation float64

	// Timestamp is the acquisition time string, present only for the
	// single-tile header layout.
	Timestamp string
}

// Wavenumbers builds the wavenumber axis for this header.
func (h AcquisitionHeader) Wavenumbers() []float64 {
	return BuildWavenumbers(h.StartPoint, h.NumPoints, h.PointSeparation)
}

// BuildWavenumbers returns the axis of numPoints wavenumbers where element i
// is pointSeparation*(startPoint+i). Strictly increasing whenever
// pointSeparation is positive.
func BuildWavenumbers(startPoint, numPoints int32, pointSeparation float64) []float64 {
	axis := make([]float64, numPoints)
	for i := range axis {
		axis[i] = pointSeparation * float64(int(startPoint)+i)
	}
	return axis
}

// ReadHeader reads the spectral parameters from a header byte source. The
// source only needs to be positionally readable; nothing is read beyond the
// fixed field offsets.
func ReadHeader(r io.ReaderAt) (AcquisitionHeader, error) {
	var h AcquisitionHeader
	var err error
	if h.StartPoint, err = readInt32At(r, offStartPoint); err != nil {
		return AcquisitionHeader{}, err
	}
	if h.NumPoints, err = readInt32At(r, offNumPoints); err != nil {
		return AcquisitionHeader{}, err
	}
	if h.PointSeparation, err = readFloat64At(r, offPointSeparation); err != nil {
		return AcquisitionHeader{}, err
	}
	return h, nil
}

// ReadTimestamp reads the acquisition timestamp from a single-tile .bsp
// header. The field is a fixed 46-byte region truncated at the first 0x04
// byte. There is deliberately no fallback search: the offset is a format
// constant, fragile by nature, and a scan would hide layout drift instead of
// surfacing it.
func ReadTimestamp(r io.ReaderAt) (string, error) {
	buf := make([]byte, timestampLen)
	if _, err := r.ReadAt(buf, offTimestamp); err != nil {
		return "", fmt.Errorf("%w: %d bytes at offset %d: %v", ErrFormatRead, timestampLen, offTimestamp, err)
	}
	if i := bytes.IndexByte(buf, timestampTerminator); i >= 0 {
		buf = buf[:i]
	}
	return string(buf), nil
}

func readInt32At(r io.ReaderAt, off int64) (int32, error) {
	var b [4]byte
	if _, err := r.ReadAt(b[:], off); err != nil {
		return 0, fmt.Errorf("%w: int32 at offset %d: %v", ErrFormatRead, off, err)
	}
	return int32(binary.LittleEndian.Uint32(b[:])), nil
}

func readFloat64At(r io.ReaderAt, off int64) (float64, error) {
	var b [8]byte
	if _, err := r.ReadAt(b[:], off); err != nil {
		return 0, fmt.Errorf("%w: float64 at offset %d: %v", ErrFormatRead, off, err)
	}
	return math.Float64frombits(binary.LittleEndian.Uint64(b[:])), nil
}
