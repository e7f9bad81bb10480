package imaging

import (
	"fmt"
	"image"
	"math"
	"sort"

	"github.com/disintegration/imaging"
)

// bucketSize is the channel quantization step. Channel values within half a
// bucket of each other collapse to the same quantized color, which merges
// near-identical shades (anti-aliasing fringes, subtle gradients) before
// frequency counting.
const bucketSize = 15

// opacityThreshold is the minimum alpha for a pixel to count as opaque.
// Pixels at or below this value (50% opacity or less) are ignored entirely.
const opacityThreshold = 127

// PaletteEntry is one dominant color in an extracted palette.
type PaletteEntry struct {
	// Color is the quantized color as "#RRGGBB" with uppercase hex digits.
	Color string `json:"color"`

	// PixelCount is the number of opaque pixels that quantized to this color.
	PixelCount int `json:"pixelCount"`

	// Percentage is PixelCount relative to all opaque pixels in the image
	// (0-100), rounded to 2 decimal places.
	Percentage float64 `json:"percentage"`
}

// quantizedColor is the grouping key for frequency counting. Channels are
// always multiples of bucketSize (except 255, which 255/15 hits exactly).
type quantizedColor struct {
	r, g, b uint8
}

// packed returns the color as a single 24-bit value for ordering.
func (c quantizedColor) packed() int {
	return int(c.r)<<16 | int(c.g)<<8 | int(c.b)
}

// ExtractPalette extracts the dominant colors from an image.
//
// Parameters:
//   - img: The source image. Any color model is accepted; pixels are
//     normalized to 8-bit non-premultiplied RGBA before analysis. Images
//     without an alpha channel are treated as fully opaque.
//   - maxColors: Maximum number of palette entries to return. A value of
//     zero (or less) always yields an empty palette.
//   - minPixels: Minimum number of pixels a quantized color must occupy to
//     qualify. Zero disables the threshold.
//
// Returns the palette sorted by pixel count descending. The result is never
// nil; an image with no opaque pixels yields an empty palette, which is a
// valid outcome rather than an error.
//
// # Algorithm
//
// Pixels with alpha <= 127 are discarded first. Each remaining pixel is
// quantized by rounding every channel to the nearest multiple of 15
// (half rounds away from zero, though integer channels never land exactly
// on a half). Quantized colors are counted, colors below minPixels are
// dropped, and the survivors are ranked by count. Percentages are computed
// against the opaque pixel total before thresholding, so entries filtered
// by minPixels or maxColors still account for the missing share.
//
// # Ordering
//
// Colors with equal pixel counts are ordered by ascending quantized RGB
// value (R<<16 | G<<8 | B), so output is deterministic for identical input.
//
// ExtractPalette performs no I/O and touches no shared state; it is safe to
// call concurrently on different images.
func ExtractPalette(img image.Image, maxColors, minPixels int) []PaletteEntry {
	// Non-premultiplied 8-bit pixels; alpha-less sources come back opaque.
	nrgba := imaging.Clone(img)

	w := nrgba.Rect.Dx()
	h := nrgba.Rect.Dy()

	counts := make(map[quantizedColor]int)
	opaqueTotal := 0

	for y := 0; y < h; y++ {
		row := nrgba.Pix[y*nrgba.Stride : y*nrgba.Stride+w*4]
		for x := 0; x < w*4; x += 4 {
			if row[x+3] <= opacityThreshold {
				continue
			}
			opaqueTotal++
			counts[quantizedColor{
				r: quantize(row[x]),
				g: quantize(row[x+1]),
				b: quantize(row[x+2]),
			}]++
		}
	}

	if opaqueTotal == 0 || maxColors <= 0 {
		return []PaletteEntry{}
	}

	type colorCount struct {
		color quantizedColor
		count int
	}
	ranked := make([]colorCount, 0, len(counts))
	for c, n := range counts {
		if n < minPixels {
			continue
		}
		ranked = append(ranked, colorCount{color: c, count: n})
	}

	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].count != ranked[j].count {
			return ranked[i].count > ranked[j].count
		}
		return ranked[i].color.packed() < ranked[j].color.packed()
	})

	if len(ranked) > maxColors {
		ranked = ranked[:maxColors]
	}

	palette := make([]PaletteEntry, 0, len(ranked))
	for _, cc := range ranked {
		percentage := float64(cc.count) / float64(opaqueTotal) * 100
		palette = append(palette, PaletteEntry{
			Color:      fmt.Sprintf("#%02X%02X%02X", cc.color.r, cc.color.g, cc.color.b),
			PixelCount: cc.count,
			Percentage: math.Round(percentage*100) / 100,
		})
	}

	return palette
}

// quantize rounds a channel value to the nearest multiple of bucketSize.
// 255 maps to itself (255/15 = 17 exactly), so no clamping is needed.
func quantize(v uint8) uint8 {
	return uint8(math.Round(float64(v)/bucketSize) * bucketSize)
}
