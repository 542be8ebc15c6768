package pdf

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"strings"

	"go-imagepdf/internal/probe"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/webp"
)

// Encoding selects how images are stored inside the PDF.
type Encoding string

const (
	// EncodingPreserve keeps JPEG data as is and stores PNG and WEBP
	// losslessly as PNG, alpha included.
	EncodingPreserve Encoding = "preserve"
	// EncodingJPEG stores every image as JPEG. Transparent areas are
	// flattened onto white.
	EncodingJPEG Encoding = "jpeg"
)

// JPEGQuality is used when an image is re-encoded as JPEG.
const JPEGQuality = 75

// MaxDecodePixels bounds the images prepareImage is willing to decode in
// full. Images passed through untouched are not limited.
const MaxDecodePixels = 50_000_000

// ErrTooManyPixels is wrapped in the DecodeError for images above
// MaxDecodePixels.
var ErrTooManyPixels = errors.New("image too large to re-encode")

// ParseEncoding accepts "preserve" or "jpeg". An empty string selects
// EncodingPreserve.
func ParseEncoding(s string) (Encoding, error) {
	switch Encoding(strings.ToLower(strings.TrimSpace(s))) {
	case "", EncodingPreserve:
		return EncodingPreserve, nil
	case EncodingJPEG:
		return EncodingJPEG, nil
	}
	return "", fmt.Errorf("unknown encoding %q", s)
}

// prepareImage returns the bytes to embed and the fpdf image type. dims are
// the header dimensions of data.
func prepareImage(data []byte, dims probe.Dimensions, enc Encoding) ([]byte, string, error) {
	format := dims.Format
	if format == "jpeg" {
		return data, "JPG", nil
	}
	if enc == EncodingPreserve && format == "png" && plainPNG(data) {
		return data, "PNG", nil
	}

	if pixels := int64(dims.Width) * int64(dims.Height); pixels > MaxDecodePixels {
		return nil, "", &probe.DecodeError{
			Format: format,
			Err:    fmt.Errorf("%w: %dx%d", ErrTooManyPixels, dims.Width, dims.Height),
		}
	}

	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, "", &probe.DecodeError{Format: format, Err: err}
	}

	var buf bytes.Buffer
	switch enc {
	case EncodingJPEG:
		b := img.Bounds()
		flat := imaging.New(b.Dx(), b.Dy(), color.White)
		flat = imaging.Overlay(flat, img, image.Pt(0, 0), 1.0)
		err = imaging.Encode(&buf, flat, imaging.JPEG, imaging.JPEGQuality(JPEGQuality))
		if err != nil {
			return nil, "", fmt.Errorf("%w: %v", ErrEmbed, err)
		}
		return buf.Bytes(), "JPG", nil
	default:
		// 8-bit non-interlaced PNG is all fpdf reads
		nrgba, ok := img.(*image.NRGBA)
		if !ok {
			nrgba = imaging.Clone(img)
		}
		if err := imaging.Encode(&buf, nrgba, imaging.PNG); err != nil {
			return nil, "", fmt.Errorf("%w: %v", ErrEmbed, err)
		}
		return buf.Bytes(), "PNG", nil
	}
}

// plainPNG reports whether the IHDR chunk declares 8-bit samples without
// interlacing.
func plainPNG(data []byte) bool {
	const (
		bitDepth  = 24
		interlace = 28
	)
	if len(data) <= interlace || string(data[12:16]) != "IHDR" {
		return false
	}
	return data[bitDepth] == 8 && data[interlace] == 0
}
