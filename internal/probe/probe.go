// Package probe reads the intrinsic pixel size of an encoded image.
//
// Only the image header is decoded; the raster itself is never held.
// Supported formats are JPEG, PNG and WEBP.
package probe

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"

	_ "golang.org/x/image/webp"
)

// ErrDecode is matched by every *DecodeError.
var ErrDecode = errors.New("image could not be decoded")

// DecodeError reports an image whose bytes could not be decoded.
type DecodeError struct {
	Format string // detected format, empty when unknown
	Err    error
}

func (e *DecodeError) Error() string {
	if e.Format != "" {
		return fmt.Sprintf("decode %s image: %v", e.Format, e.Err)
	}
	return fmt.Sprintf("decode image: %v", e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

func (e *DecodeError) Is(target error) bool { return target == ErrDecode }

// Dimensions is the intrinsic pixel size of an image.
type Dimensions struct {
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Format string `json:"format"`
}

// AspectRatio returns width divided by height.
func (d Dimensions) AspectRatio() float64 {
	return float64(d.Width) / float64(d.Height)
}

// Prober resolves image dimensions.
type Prober interface {
	Probe(ctx context.Context, r io.Reader) (Dimensions, error)
}

// Header is the Prober backed by the registered image decoders.
type Header struct{}

// Probe implements Prober.
func (Header) Probe(ctx context.Context, r io.Reader) (Dimensions, error) {
	return Probe(ctx, r)
}

// Probe decodes the image header read from r.
func Probe(ctx context.Context, r io.Reader) (Dimensions, error) {
	if err := ctx.Err(); err != nil {
		return Dimensions{}, err
	}
	cfg, format, err := image.DecodeConfig(r)
	if err != nil {
		return Dimensions{}, &DecodeError{Format: format, Err: err}
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return Dimensions{}, &DecodeError{
			Format: format,
			Err:    fmt.Errorf("empty image %dx%d", cfg.Width, cfg.Height),
		}
	}
	return Dimensions{Width: cfg.Width, Height: cfg.Height, Format: format}, nil
}

// ProbeBytes is Probe over an in-memory image.
func ProbeBytes(ctx context.Context, data []byte) (Dimensions, error) {
	return Probe(ctx, bytes.NewReader(data))
}
