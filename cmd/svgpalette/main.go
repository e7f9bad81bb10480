package main

import (
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"svgpalette/internal/report"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	GitCommit = "unknown"
)

var cli struct {
	Dir string `arg:"" optional:"" default:"." type:"existingdir" help:"Directory containing SVG icon assets."`

	Output       string `default:"color-palettes.json" help:"Report filename, written inside DIR."`
	MaxColors    int    `default:"5" help:"Maximum palette entries per asset."`
	MinPixels    int    `default:"100" help:"Minimum pixel count for a color to qualify (negative disables)."`
	MaxDimension int    `default:"0" help:"Downsample rasters larger than this before extraction (0 disables)."`
	Verbose      bool   `short:"v" help:"Include debug output."`

	Version kong.VersionFlag `help:"Print version information."`
}

func main() {
	kong.Parse(&cli,
		kong.Name("svgpalette"),
		kong.Description("Extract dominant color palettes from SVG-wrapped icon assets into one JSON report."),
		kong.Vars{"version": Version + " (" + GitCommit + ")"},
	)

	level := slog.LevelInfo
	if cli.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	cfg := report.Config{
		Dir:          cli.Dir,
		OutputName:   cli.Output,
		MaxColors:    cli.MaxColors,
		MinPixels:    cli.MinPixels,
		MaxDimension: cli.MaxDimension,
	}

	if _, err := report.Run(cfg, logger); err != nil {
		logger.Error("run failed", "error", err)
		os.Exit(1)
	}
}
