package agilent

import "errors"

// Error kinds surfaced by the reader. Call sites wrap these with file and
// offset context; match with errors.Is.
var (
	// ErrMissingSibling reports that a companion file required by the
	// acquisition (header, tile, or marker file) does not exist. It is
	// raised before any decoding starts.
	ErrMissingSibling = errors.New("missing sibling file")

	// ErrFormatRead reports that the header source ended before a
	// fixed-offset field could be read in full.
	ErrFormatRead = errors.New("short read at format offset")

	// ErrUnsupportedGeometry reports an inferred FPA size outside the
	// known detector sizes. It usually means the header's point count does
	// not match the tile file on disk.
	ErrUnsupportedGeometry = errors.New("unsupported FPA size")

	// ErrBufferSizeMismatch reports a raw tile buffer whose length is
	// inconsistent with the expected preamble + side²×points layout.
	ErrBufferSizeMismatch = errors.New("tile buffer size mismatch")
)
