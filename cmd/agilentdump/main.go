package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"agilentfpa/pkg/agilent"
	"agilentfpa/pkg/config"
	"agilentfpa/pkg/visualization"
)

func main() {
	// Parse command line arguments
	inputPath := flag.String("input", "", "Path to a .seq (single tile) or .dms (mosaic) acquisition")
	configPath := flag.String("config", "agilentdump.yaml", "Optional YAML configuration file")
	workers := flag.Int("workers", 0, "Number of tiles to decode concurrently (0: use config)")
	failMissing := flag.Bool("fail-on-missing-tile", false, "Abort mosaic assembly when a grid tile file is absent")
	quicklookDir := flag.String("quicklook", "", "Directory to write quicklook images to (empty: disabled)")
	verbose := flag.Bool("v", false, "Enable checkpoint logging")
	flag.Parse()

	// Validate inputs
	if *inputPath == "" {
		flag.Usage()
		os.Exit(1)
	}

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Flags override the config file
	if *workers > 0 {
		cfg.Reader.Workers = *workers
	}
	if *failMissing {
		cfg.Reader.FailOnMissingTile = true
	}
	if *quicklookDir != "" {
		cfg.Quicklook.Enabled = true
		cfg.Quicklook.OutputDir = *quicklookDir
	}
	if *verbose {
		cfg.Reader.Verbose = true
	}

	logger := zap.NewNop()
	if cfg.Reader.Verbose {
		logger, err = zap.NewDevelopment()
		if err != nil {
			log.Fatalf("Failed to build logger: %v", err)
		}
	}
	defer logger.Sync()

	// The extension decides the acquisition layout
	var img *agilent.Image
	opts := cfg.ReaderOptions(logger)
	switch ext := strings.ToLower(filepath.Ext(*inputPath)); ext {
	case ".dms":
		img, err = agilent.ReadMosaic(*inputPath, opts...)
	case ".seq":
		img, err = agilent.ReadImage(*inputPath, opts...)
	default:
		log.Fatalf("Unrecognized acquisition extension %q (want .seq or .dms)", ext)
	}
	if err != nil {
		log.Fatalf("Decoding failed: %v", err)
	}

	fmt.Printf("Decoded %s\n", *inputPath)
	fmt.Printf("Dimensions: %d x %d pixels, %d spectral points (%d spectra)\n",
		img.Width, img.Height, len(img.Wavenumbers), img.Width*img.Height)
	if n := len(img.Wavenumbers); n > 0 {
		fmt.Printf("Wavenumber range: %.2f .. %.2f (1/cm), step %.4f\n",
			img.Wavenumbers[0], img.Wavenumbers[n-1], img.Header.PointSeparation)
	}
	if img.Timestamp != "" {
		fmt.Printf("Acquired: %s\n", img.Timestamp)
	}

	if cfg.Quicklook.Enabled {
		if err := os.MkdirAll(cfg.Quicklook.OutputDir, 0755); err != nil {
			log.Fatalf("Failed to create quicklook directory: %v", err)
		}
		ql := visualization.NewQuicklook(img, cfg.Quicklook.LowQuantile, cfg.Quicklook.HighQuantile)

		bandPath := filepath.Join(cfg.Quicklook.OutputDir, "bandsum.png")
		if err := ql.SaveBandSumPNG(bandPath); err != nil {
			log.Fatalf("Failed to write band-sum quicklook: %v", err)
		}
		specPath := filepath.Join(cfg.Quicklook.OutputDir, "mean_spectrum.png")
		if err := ql.SaveMeanSpectrumPNG(specPath); err != nil {
			log.Fatalf("Failed to write spectrum quicklook: %v", err)
		}
		fmt.Printf("Quicklook images written to: %s\n", cfg.Quicklook.OutputDir)
	}
}
