package imaging

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	_ "image/gif"  // Register GIF format decoder
	_ "image/jpeg" // Register JPEG format decoder
	_ "image/png"  // Register PNG format decoder
	"os"
	"regexp"

	_ "golang.org/x/image/bmp"  // Register BMP format decoder
	_ "golang.org/x/image/tiff" // Register TIFF format decoder
	_ "golang.org/x/image/webp" // Register WebP format decoder
)

// ErrNoEmbeddedImage indicates a container file carries no base64 image
// payload in an href attribute.
var ErrNoEmbeddedImage = errors.New("no embedded image payload found")

// DecodeError is an asset-scoped loading failure: the container could not
// be read, held no embedded payload, or its payload did not decode. It
// wraps the underlying cause, so errors.Is(err, ErrNoEmbeddedImage) works
// through it.
type DecodeError struct {
	Path string // Container file the failure belongs to
	Err  error  // Underlying cause
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode %s: %v", e.Path, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// hrefPattern matches the base64 image payload embedded in an SVG container,
// e.g. href="data:image/png;base64,iVBOR...". The capture group is the raw
// base64 data.
var hrefPattern = regexp.MustCompile(`href="data:image/[A-Za-z0-9.+-]+;base64,([^"]+)"`)

// DecodeEmbeddedImage extracts and decodes the raster image embedded in
// container bytes.
//
// The container is expected to contain an attribute of the form
// href="data:image/<type>;base64,<DATA>" somewhere in its content. The
// payload is usually PNG, but any registered raster format decodes.
//
// Returns ErrNoEmbeddedImage when the pattern is absent, or a wrapped error
// when the payload is not valid base64 or not a valid raster image.
func DecodeEmbeddedImage(data []byte) (image.Image, error) {
	match := hrefPattern.FindSubmatch(data)
	if match == nil {
		return nil, ErrNoEmbeddedImage
	}

	raw, err := base64.StdEncoding.DecodeString(string(match[1]))
	if err != nil {
		return nil, fmt.Errorf("invalid base64 payload: %w", err)
	}

	img, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("invalid raster payload: %w", err)
	}

	return img, nil
}

// LoadEmbeddedImage reads a container file and decodes its embedded raster
// image. All failures come back as a *DecodeError carrying the path, so a
// batch caller can log and skip the one asset without aborting.
func LoadEmbeddedImage(path string) (image.Image, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &DecodeError{Path: path, Err: err}
	}

	img, err := DecodeEmbeddedImage(data)
	if err != nil {
		return nil, &DecodeError{Path: path, Err: err}
	}

	return img, nil
}
