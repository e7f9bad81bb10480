// Package report assembles per-asset color palettes into one JSON report.
//
// Run drives the whole batch: discover SVG assets in a directory, decode
// each asset's embedded raster, extract its dominant colors, and write a
// single pretty-printed report file. Broken assets are logged and skipped;
// only run-level I/O problems abort the batch.
package report
