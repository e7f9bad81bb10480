// Package imaging loads icon assets and extracts dominant color palettes.
//
// An icon asset is an SVG container wrapping a base64-encoded raster image
// in an href attribute. LoadEmbeddedImage pulls that raster out;
// ExtractPalette reduces it to its dominant colors.
//
// # Palette Extraction
//
// Extraction works on opaque pixels only (alpha above 127). Colors are
// quantized to 15-unit buckets per channel so near-identical shades merge,
// then counted and ranked by frequency. See ExtractPalette for the exact
// contract, including the minimum-pixel threshold and tie-breaking.
//
// # Error Handling
//
// Loading failures are asset-scoped and reported as *DecodeError values, so
// batch callers can skip a broken asset and keep going. Extraction itself
// cannot fail: it is a pure function over the decoded image, and an image
// with no opaque pixels simply yields an empty palette.
package imaging
