// Package pdf assembles images into a multi-page PDF.
//
// Functions:
//   - Generator.Generate: writes one page per image, in input order.
//     Inputs: ordered images, Options (orientation, fill mode, file name, encoding).
//     Output: the PDF bytes on an io.Writer and a Result.
//   - FinalFileName: the download name for a requested base name.
//   - PageSizes: the page sizes of an existing PDF, in millimetres.
//
// Pages are drawn with fpdf and the finished document is passed through
// pdfcpu, which adds the document properties and optimizes it.
package pdf

import (
	"bytes"
	"fmt"
	"io"

	pdfapi "github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
)

const mmPerPoint = 25.4 / 72

func newConfiguration() *model.Configuration {
	config := model.NewDefaultConfiguration()
	config.ValidationMode = model.ValidationRelaxed
	return config
}

// finalize adds properties to the raw document, optimizes it and writes
// the result to w.
func finalize(raw []byte, properties map[string]string, w io.Writer) error {
	var withProps bytes.Buffer
	if err := pdfapi.AddProperties(bytes.NewReader(raw), &withProps, properties, newConfiguration()); err != nil {
		return fmt.Errorf("failed to set document properties: %w", err)
	}
	if err := pdfapi.Optimize(bytes.NewReader(withProps.Bytes()), w, newConfiguration()); err != nil {
		return fmt.Errorf("failed to optimize PDF: %w", err)
	}
	return nil
}

// PageSizes returns the width and height of every page of a PDF in
// millimetres.
func PageSizes(rs io.ReadSeeker) ([]types.Dim, error) {
	dims, err := pdfapi.PageDims(rs, newConfiguration())
	if err != nil {
		return nil, fmt.Errorf("failed to read page dimensions: %w", err)
	}
	for i := range dims {
		dims[i].Width *= mmPerPoint
		dims[i].Height *= mmPerPoint
	}
	return dims, nil
}
