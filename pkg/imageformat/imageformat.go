// Package imageformat encodes screenshots in one of the supported formats.
package imageformat

import (
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"

	"golang.org/x/image/bmp"
)

// ErrUnsupported is returned for a format name outside the supported set.
var ErrUnsupported = errors.New("unsupported image format")

// Format is a supported output format.
type Format string

const (
	PNG  Format = "PNG"
	JPEG Format = "JPEG"
	BMP  Format = "BMP"
)

// DefaultJPEGQuality is used when Encode gets a quality outside 1-100.
const DefaultJPEGQuality = jpeg.DefaultQuality

// Supported returns the supported formats in display order.
func Supported() []Format {
	return []Format{PNG, JPEG, BMP}
}

// Parse maps a configured name to a Format. Names are matched exactly.
func Parse(name string) (Format, error) {
	for _, f := range Supported() {
		if string(f) == name {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w: %s", ErrUnsupported, name)
}

// Extension returns the file extension for f, including the dot.
func (f Format) Extension() string {
	switch f {
	case JPEG:
		return ".jpg"
	case BMP:
		return ".bmp"
	default:
		return ".png"
	}
}

// Encode writes img to w in format f. quality only applies to JPEG.
func Encode(w io.Writer, img image.Image, f Format, quality int) error {
	switch f {
	case PNG:
		return png.Encode(w, img)
	case JPEG:
		if quality < 1 || quality > 100 {
			quality = DefaultJPEGQuality
		}
		return jpeg.Encode(w, img, &jpeg.Options{Quality: quality})
	case BMP:
		return bmp.Encode(w, img)
	default:
		return fmt.Errorf("%w: %s", ErrUnsupported, f)
	}
}

// Decode reads a PNG, JPEG or BMP image.
func Decode(r io.Reader) (image.Image, Format, error) {
	img, name, err := image.Decode(r)
	if err != nil {
		return nil, "", fmt.Errorf("failed to decode image: %w", err)
	}

	switch name {
	case "png":
		return img, PNG, nil
	case "jpeg":
		return img, JPEG, nil
	case "bmp":
		return img, BMP, nil
	default:
		return nil, "", fmt.Errorf("%w: %s", ErrUnsupported, name)
	}
}
