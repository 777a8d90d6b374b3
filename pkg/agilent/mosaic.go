package agilent

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"go.uber.org/zap"

	"agilentfpa/pkg/cube"
)

// tileExt is the extension of mosaic tile files.
const tileExt = ".dmd"

// ReadMosaic decodes a multi-tile acquisition named by its .dms file. The
// shared header is read from the lowercased .dmt sibling, the grid extent is
// discovered from the tile file naming convention, and every tile is decoded
// and placed into one contiguous canvas.
//
// Tiles are decoded on a bounded worker pool (see WithWorkers); each tile
// writes a disjoint canvas region, and any decode failure aborts the whole
// assembly after the pool settles. A tile expected by the grid but absent on
// disk leaves its region zero-filled unless WithFailOnMissingTile is set.
func ReadMosaic(path string, opts ...Option) (*Image, error) {
	o := newOptions(opts)

	if err := CheckSiblings(path, mosaicExts); err != nil {
		return nil, err
	}
	o.logger.Debug("siblings verified", zap.String("path", path), zap.Strings("exts", mosaicExts))

	hdr, err := readDMTHeader(siblingPath(path, ".dmt"))
	if err != nil {
		return nil, err
	}
	o.logger.Debug("header parsed",
		zap.Int32("startPoint", hdr.StartPoint),
		zap.Int32("numPoints", hdr.NumPoints),
		zap.Float64("pointSeparation", hdr.PointSeparation))

	xTiles, yTiles, err := discoverGrid(path)
	if err != nil {
		return nil, err
	}
	o.logger.Debug("grid discovered", zap.Int("xTiles", xTiles), zap.Int("yTiles", yTiles))

	// The _0000_0000 tile is mandatory (sibling check guarantees it) and
	// sizes the FPA from its byte count alone.
	primary := tilePath(path, 0, 0, tileExt)
	fi, err := os.Stat(primary)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrMissingSibling, primary)
	}
	side, err := InferFPASize(int(fi.Size()/4), int(hdr.NumPoints))
	if err != nil {
		return nil, err
	}
	o.logger.Debug("geometry inferred", zap.Int("fpaSize", side))

	canvas := cube.New(yTiles*side, xTiles*side, int(hdr.NumPoints))
	if err := placeTiles(path, canvas, xTiles, yTiles, side, int(hdr.NumPoints), o); err != nil {
		return nil, err
	}
	o.logger.Debug("mosaic assembled",
		zap.Int("height", canvas.Rows()), zap.Int("width", canvas.Cols()))

	return &Image{
		Header:      hdr,
		Wavenumbers: hdr.Wavenumbers(),
		Width:       xTiles * side,
		Height:      yTiles * side,
		Data:        canvas,
	}, nil
}

// readDMTHeader reads the shared mosaic header. The .dmt layout has no
// verified timestamp offset, so none is read.
func readDMTHeader(path string) (AcquisitionHeader, error) {
	f, err := os.Open(path)
	if err != nil {
		return AcquisitionHeader{}, err
	}
	defer f.Close()

	hdr, err := ReadHeader(f)
	if err != nil {
		return AcquisitionHeader{}, fmt.Errorf("header %s: %w", path, err)
	}
	return hdr, nil
}

// discoverGrid derives the mosaic extent from the tile naming convention:
// the number of files matching <stem>_XXXX_0000.dmd gives the x extent and
// <stem>_0000_YYYY.dmd the y extent, both 4-digit zero-padded and 0-based.
func discoverGrid(path string) (xTiles, yTiles int, err error) {
	stem := strings.TrimSuffix(path, filepath.Ext(path))
	xs, err := filepath.Glob(stem + "_[0-9][0-9][0-9][0-9]_0000" + tileExt)
	if err != nil {
		return 0, 0, err
	}
	ys, err := filepath.Glob(stem + "_0000_[0-9][0-9][0-9][0-9]" + tileExt)
	if err != nil {
		return 0, 0, err
	}
	return len(xs), len(ys), nil
}

// placement is one tile's grid position.
type placement struct {
	x, y int
}

// placeTiles decodes every tile of the grid and writes it into its canvas
// region. The canvas is fully allocated before any worker starts, and the
// file-name index order (x, y) maps to canvas block (row=y, col=x) — the axis
// swap is a format convention.
func placeTiles(path string, canvas *cube.Cube, xTiles, yTiles, side, numPoints int, o *options) error {
	jobs := make(chan placement)
	errc := make(chan error, xTiles*yTiles)

	var wg sync.WaitGroup
	workers := o.workers
	if n := xTiles * yTiles; workers > n {
		workers = n
	}
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for p := range jobs {
				if err := placeTile(path, canvas, p, side, numPoints, o); err != nil {
					errc <- err
				}
			}
		}()
	}

	for y := 0; y < yTiles; y++ {
		for x := 0; x < xTiles; x++ {
			jobs <- placement{x: x, y: y}
		}
	}
	close(jobs)
	wg.Wait()
	close(errc)

	// Surface the first failure only after all workers settle, so no
	// goroutine is left writing into an abandoned canvas.
	for err := range errc {
		if err != nil {
			return err
		}
	}
	return nil
}

// placeTile decodes the tile at grid position p and writes it into rows
// [p.y*side, (p.y+1)*side) and columns [p.x*side, (p.x+1)*side).
func placeTile(path string, canvas *cube.Cube, p placement, side, numPoints int, o *options) error {
	tp := tilePath(path, p.x, p.y, tileExt)
	raw, err := readRawTile(tp)
	if os.IsNotExist(err) {
		if o.failOnMissingTile {
			return fmt.Errorf("%w: tile %s", ErrMissingSibling, tp)
		}
		// Historical behaviour: the region stays zero-filled.
		o.logger.Warn("tile missing, region left zero-filled",
			zap.Int("x", p.x), zap.Int("y", p.y), zap.String("file", tp))
		return nil
	}
	if err != nil {
		return fmt.Errorf("reading tile %s: %w", tp, err)
	}

	tile, err := DecodeTile(raw, side, numPoints)
	if err != nil {
		return fmt.Errorf("tile %s: %w", tp, err)
	}
	if err := canvas.SetRegion(p.y*side, p.x*side, tile); err != nil {
		return fmt.Errorf("tile %s: %w", tp, err)
	}
	o.logger.Debug("tile placed", zap.Int("x", p.x), zap.Int("y", p.y))
	return nil
}
