// Package intake filters uploaded files before they reach the PDF
// generator: only JPEG, PNG and WEBP images up to MaxImageSize are let
// through.
package intake

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"slices"
	"strings"
)

// MaxImageSize is the per-file ceiling.
const MaxImageSize = 10 * 1024 * 1024

// AcceptedTypes lists the accepted media types.
var AcceptedTypes = []string{"image/jpeg", "image/jpg", "image/png", "image/webp"}

var (
	ErrUnsupportedType = errors.New("unsupported file type")
	ErrTooLarge        = errors.New("file too large")
)

// File is a candidate upload.
type File struct {
	Name        string
	ContentType string
	Data        []byte
}

// Rejection explains why a file was left out.
type Rejection struct {
	Name string
	Err  error
}

// Validator checks files against the accept list and a size ceiling.
type Validator struct {
	MaxSize int64
}

// NewValidator returns a Validator with the given ceiling. A non-positive
// maxSize selects MaxImageSize.
func NewValidator(maxSize int64) Validator {
	if maxSize <= 0 {
		maxSize = MaxImageSize
	}
	return Validator{MaxSize: maxSize}
}

// Validate reports whether a file of the given type and size is accepted.
func (v Validator) Validate(name, contentType string, size int64) error {
	if !slices.Contains(AcceptedTypes, strings.ToLower(contentType)) {
		return fmt.Errorf("%w: %s (%s)", ErrUnsupportedType, name, contentType)
	}
	if size > v.MaxSize {
		return fmt.Errorf("%w: %s is %d bytes, limit %d", ErrTooLarge, name, size, v.MaxSize)
	}
	return nil
}

// Filter splits files into accepted and rejected, keeping input order.
// An empty ContentType is sniffed from the data.
func (v Validator) Filter(files []File) (accepted []File, rejected []Rejection) {
	for _, f := range files {
		if f.ContentType == "" {
			f.ContentType = DetectContentType(f.Data)
		}
		if err := v.Validate(f.Name, f.ContentType, int64(len(f.Data))); err != nil {
			rejected = append(rejected, Rejection{Name: f.Name, Err: err})
			continue
		}
		accepted = append(accepted, f)
	}
	return accepted, rejected
}

// DetectContentType sniffs the media type of the first bytes of a file.
func DetectContentType(header []byte) string {
	if len(header) >= 12 && bytes.Equal(header[:4], []byte("RIFF")) && bytes.Equal(header[8:12], []byte("WEBP")) {
		return "image/webp"
	}
	return http.DetectContentType(header)
}
