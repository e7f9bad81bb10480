package imaging

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

// encodePNG encodes an image to PNG bytes, failing the test on error.
func encodePNG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("failed to encode test PNG: %v", err)
	}
	return buf.Bytes()
}

// svgContainer wraps PNG bytes in a minimal SVG with a base64 data URI.
func svgContainer(t *testing.T, pngData []byte) []byte {
	t.Helper()
	encoded := base64.StdEncoding.EncodeToString(pngData)
	svg := fmt.Sprintf(
		`<svg xmlns="http://www.w3.org/2000/svg" width="16" height="16"><image href="data:image/png;base64,%s"/></svg>`,
		encoded)
	return []byte(svg)
}

func TestDecodeEmbeddedImage(t *testing.T) {
	src := solidImage(3, 2, color.NRGBA{10, 20, 30, 255})
	container := svgContainer(t, encodePNG(t, src))

	img, err := DecodeEmbeddedImage(container)
	if err != nil {
		t.Fatalf("DecodeEmbeddedImage failed: %v", err)
	}

	bounds := img.Bounds()
	if bounds.Dx() != 3 || bounds.Dy() != 2 {
		t.Errorf("dimensions: got %dx%d, want 3x2", bounds.Dx(), bounds.Dy())
	}

	r, g, b, _ := img.At(0, 0).RGBA()
	if uint8(r>>8) != 10 || uint8(g>>8) != 20 || uint8(b>>8) != 30 {
		t.Errorf("pixel (0,0): got (%d,%d,%d), want (10,20,30)",
			uint8(r>>8), uint8(g>>8), uint8(b>>8))
	}
}

func TestDecodeEmbeddedImage_Failures(t *testing.T) {
	tests := []struct {
		name          string
		data          []byte
		wantNoPayload bool
	}{
		{
			name:          "no href attribute",
			data:          []byte(`<svg xmlns="http://www.w3.org/2000/svg"><rect width="4" height="4"/></svg>`),
			wantNoPayload: true,
		},
		{
			name:          "empty file",
			data:          []byte{},
			wantNoPayload: true,
		},
		{
			name: "invalid base64",
			data: []byte(`<svg><image href="data:image/png;base64,@@@not-base64@@@"/></svg>`),
		},
		{
			name: "payload is not a raster image",
			data: []byte(`<svg><image href="data:image/png;base64,` +
				base64.StdEncoding.EncodeToString([]byte("definitely not a PNG")) + `"/></svg>`),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeEmbeddedImage(tt.data)
			if err == nil {
				t.Fatal("expected an error")
			}
			if tt.wantNoPayload != errors.Is(err, ErrNoEmbeddedImage) {
				t.Errorf("errors.Is(err, ErrNoEmbeddedImage) = %v, want %v: %v",
					!tt.wantNoPayload, tt.wantNoPayload, err)
			}
		})
	}
}

func TestLoadEmbeddedImage(t *testing.T) {
	dir := t.TempDir()
	src := solidImage(4, 4, color.NRGBA{200, 10, 5, 255})
	path := filepath.Join(dir, "asset.svg")
	if err := os.WriteFile(path, svgContainer(t, encodePNG(t, src)), 0o644); err != nil {
		t.Fatalf("failed to write test asset: %v", err)
	}

	img, err := LoadEmbeddedImage(path)
	if err != nil {
		t.Fatalf("LoadEmbeddedImage failed: %v", err)
	}
	if img.Bounds().Dx() != 4 || img.Bounds().Dy() != 4 {
		t.Errorf("dimensions: got %dx%d, want 4x4", img.Bounds().Dx(), img.Bounds().Dy())
	}
}

func TestLoadEmbeddedImage_MissingFile(t *testing.T) {
	_, err := LoadEmbeddedImage(filepath.Join(t.TempDir(), "nope.svg"))
	if err == nil {
		t.Fatal("expected an error for a missing file")
	}

	var decodeErr *DecodeError
	if !errors.As(err, &decodeErr) {
		t.Fatalf("expected *DecodeError, got %T: %v", err, err)
	}
}

func TestLoadEmbeddedImage_WrapsCause(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "empty.svg")
	if err := os.WriteFile(path, []byte(`<svg></svg>`), 0o644); err != nil {
		t.Fatalf("failed to write test asset: %v", err)
	}

	_, err := LoadEmbeddedImage(path)
	if err == nil {
		t.Fatal("expected an error")
	}

	var decodeErr *DecodeError
	if !errors.As(err, &decodeErr) {
		t.Fatalf("expected *DecodeError, got %T: %v", err, err)
	}
	if decodeErr.Path != path {
		t.Errorf("Path: got %s, want %s", decodeErr.Path, path)
	}
	if !errors.Is(err, ErrNoEmbeddedImage) {
		t.Errorf("expected ErrNoEmbeddedImage through the DecodeError, got %v", err)
	}
}
