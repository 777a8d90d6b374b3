package agilent

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Sibling extension sets for the two acquisition layouts. The base path names
// the acquisition; every extension must resolve to an existing file before
// decoding starts.
var (
	singleTileExts = []string{".seq", ".dat", ".bsp"}
	mosaicExts     = []string{".dms", ".dmt", ".drd", ".dmd"}
)

// CheckSiblings verifies that every companion file the acquisition needs
// exists, returning ErrMissingSibling for the first absent one. Nothing is
// decoded here; this runs before any byte of any tile is read.
//
// Two naming quirks of the writing software are honoured: the .dmt header
// filename is always lowercased, and the per-tile .drd/.dmd files always have
// at least the _0000_0000 tile.
func CheckSiblings(path string, exts []string) error {
	for _, ext := range exts {
		p := siblingPath(path, ext)
		if _, err := os.Stat(p); err != nil {
			return fmt.Errorf("%w: %s", ErrMissingSibling, p)
		}
	}
	return nil
}

func siblingPath(path, ext string) string {
	switch ext {
	case ".dmt":
		return filepath.Join(filepath.Dir(path), strings.ToLower(filepath.Base(withExt(path, ext))))
	case ".drd", ".dmd":
		return tilePath(path, 0, 0, ext)
	default:
		return withExt(path, ext)
	}
}

// withExt replaces the extension of path, keeping directory and stem.
func withExt(path, ext string) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + ext
}

// tilePath builds the path of the tile at grid position (x, y) following the
// 4-digit zero-padded naming convention <stem>_XXXX_YYYY<ext>.
func tilePath(path string, x, y int, ext string) string {
	return fmt.Sprintf("%s_%04d_%04d%s", strings.TrimSuffix(path, filepath.Ext(path)), x, y, ext)
}
