package imaging

import (
	"image"

	"github.com/anthonynsimon/bild/transform"
)

// Downsample shrinks an image so neither side exceeds maxDim, preserving
// aspect ratio. A maxDim of zero (or less) disables downsampling, and images
// already within the bound are returned unchanged.
//
// Resampling uses nearest-neighbor so every output pixel is an input pixel:
// no blended in-between colors appear, and color frequencies stay roughly
// proportional for palette extraction.
func Downsample(img image.Image, maxDim int) image.Image {
	if maxDim <= 0 {
		return img
	}

	bounds := img.Bounds()
	w := bounds.Dx()
	h := bounds.Dy()
	if w <= maxDim && h <= maxDim {
		return img
	}

	if w >= h {
		h = h * maxDim / w
		w = maxDim
	} else {
		w = w * maxDim / h
		h = maxDim
	}
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}

	return transform.Resize(img, w, h, transform.NearestNeighbor)
}
