package report

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"svgpalette/internal/imaging"
)

// Defaults applied by Config.withDefaults, matching the standard icon
// pipeline parameters.
const (
	DefaultOutputName = "color-palettes.json"
	DefaultMaxColors  = 5
	DefaultMinPixels  = 100
)

// Config carries everything a report run needs. There is no ambient state:
// the directory, output name, and extraction parameters all travel through
// this struct.
//
// Zero-valued fields fall back to the defaults above (Dir falls back to the
// current directory). Pass a negative MinPixels to disable the pixel-count
// threshold entirely, since zero means "unset" here.
type Config struct {
	// Dir is the directory scanned for *.svg assets. The report is written
	// into the same directory.
	Dir string

	// OutputName is the report filename within Dir.
	OutputName string

	// MaxColors is the maximum number of palette entries per asset.
	MaxColors int

	// MinPixels is the minimum pixel count for a color to qualify.
	MinPixels int

	// MaxDimension, when positive, downsamples rasters so neither side
	// exceeds it before extraction. Zero leaves images untouched.
	MaxDimension int
}

func (c Config) withDefaults() Config {
	if c.Dir == "" {
		c.Dir = "."
	}
	if c.OutputName == "" {
		c.OutputName = DefaultOutputName
	}
	if c.MaxColors == 0 {
		c.MaxColors = DefaultMaxColors
	}
	if c.MinPixels == 0 {
		c.MinPixels = DefaultMinPixels
	}
	return c
}

// AssetPalette is the per-asset entry in the report.
type AssetPalette struct {
	Colors     []imaging.PaletteEntry `json:"colors"`
	ColorCount int                    `json:"colorCount"`
}

// Summary describes a completed run.
type Summary struct {
	// Processed is the number of assets that made it into the report.
	Processed int

	// Failed is the number of assets skipped due to decode failures.
	Failed int

	// OutputPath is where the report was written.
	OutputPath string

	// Assets is the report content, keyed by asset identifier.
	Assets map[string]AssetPalette
}

// Run scans cfg.Dir for SVG icon assets, extracts a color palette from each
// asset's embedded raster, and writes the consolidated JSON report.
//
// Assets are processed in lexicographic filename order; the filename stem is
// the asset identifier. A failure to decode one asset is logged with the
// asset identifier and excluded from the report without aborting the batch.
// Only run-level failures (unreadable directory, unwritable output) return
// an error.
//
// The report maps asset identifier to {"colors": [...], "colorCount": N}
// and is pretty-printed. encoding/json emits map keys in sorted order, which
// is exactly the processing order since discovery is sorted and failed
// assets are dropped.
func Run(cfg Config, logger *slog.Logger) (*Summary, error) {
	cfg = cfg.withDefaults()
	if logger == nil {
		logger = slog.Default()
	}

	entries, err := os.ReadDir(cfg.Dir)
	if err != nil {
		return nil, fmt.Errorf("scan asset directory: %w", err)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".svg" {
			continue
		}
		names = append(names, entry.Name())
	}
	logger.Info("found assets", "count", len(names), "dir", cfg.Dir)

	assets := make(map[string]AssetPalette, len(names))
	var processed []string
	failed := 0

	for _, name := range names {
		id := strings.TrimSuffix(name, ".svg")
		logger.Info("processing", "asset", id)

		img, err := imaging.LoadEmbeddedImage(filepath.Join(cfg.Dir, name))
		if err != nil {
			logger.Error("skipping asset", "asset", id, "error", err)
			failed++
			continue
		}

		img = imaging.Downsample(img, cfg.MaxDimension)
		palette := imaging.ExtractPalette(img, cfg.MaxColors, cfg.MinPixels)

		assets[id] = AssetPalette{Colors: palette, ColorCount: len(palette)}
		processed = append(processed, id)
		logger.Info("extracted", "asset", id, "colors", len(palette))
	}

	data, err := json.MarshalIndent(assets, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode report: %w", err)
	}
	data = append(data, '\n')

	outPath := filepath.Join(cfg.Dir, cfg.OutputName)
	if err := os.WriteFile(outPath, data, 0o644); err != nil {
		return nil, fmt.Errorf("write report: %w", err)
	}

	logger.Info("palette report written",
		"assets", len(processed), "failed", failed, "output", outPath)

	// One example palette, the way the report's first entry will read.
	if len(processed) > 0 {
		first := processed[0]
		for _, entry := range assets[first].Colors {
			logger.Info("example", "asset", first,
				"color", entry.Color, "percentage", entry.Percentage)
		}
	}

	return &Summary{
		Processed:  len(processed),
		Failed:     failed,
		OutputPath: outPath,
		Assets:     assets,
	}, nil
}
