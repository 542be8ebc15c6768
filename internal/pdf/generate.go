package pdf

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"go-imagepdf/internal/layout"
	"go-imagepdf/internal/probe"

	"github.com/go-pdf/fpdf"
)

// DefaultBaseName is used when the requested file name is blank.
const DefaultBaseName = "combined-document"

var (
	// ErrEmptyInput is returned when no images are supplied.
	ErrEmptyInput = errors.New("no images to process")
	// ErrEmbed is returned when the PDF writer rejects an image.
	ErrEmbed = errors.New("image could not be embedded")
)

// Source is one input image.
type Source struct {
	Name string
	Data []byte
	Size int64
}

// Options configure one document. Zero values select the defaults:
// portrait, fit, "combined-document.pdf", preserved encoding.
type Options struct {
	Orientation layout.Orientation `json:"orientation"`
	FillMode    layout.FillMode    `json:"fillMode"`
	FileName    string             `json:"fileName"`
	Encoding    Encoding           `json:"encoding"`
}

// Result describes a generated document.
type Result struct {
	FileName string `json:"fileName"`
	Pages    int    `json:"pages"`
	Bytes    int64  `json:"bytes"`
}

// FinalFileName trims name, falls back to DefaultBaseName when nothing is
// left and appends ".pdf" unless name already ends with it.
func FinalFileName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		name = DefaultBaseName
	}
	if strings.HasSuffix(name, ".pdf") {
		return name
	}
	return name + ".pdf"
}

// Generator turns an ordered list of images into a PDF, one page per
// image. A Generator holds no per-document state and may be shared.
type Generator struct {
	Prober  probe.Prober
	Creator string
}

// NewGenerator returns a Generator probing image headers with the
// registered decoders.
func NewGenerator() *Generator {
	return &Generator{Prober: probe.Header{}, Creator: "go-imagepdf"}
}

// Generate writes a PDF with one page per image, in order, to w.
//
// The document is assembled in memory and written to w only after every
// image has been placed, so a failure never leaves a partial file behind.
// ctx is checked between images.
func (g *Generator) Generate(ctx context.Context, images []Source, opts Options, w io.Writer) (Result, error) {
	if len(images) == 0 {
		return Result{}, ErrEmptyInput
	}
	orientation, err := layout.ParseOrientation(string(opts.Orientation))
	if err != nil {
		return Result{}, err
	}
	mode, err := layout.ParseFillMode(string(opts.FillMode))
	if err != nil {
		return Result{}, err
	}
	encoding, err := ParseEncoding(string(opts.Encoding))
	if err != nil {
		return Result{}, err
	}
	geom, err := layout.NewGeometry(orientation, mode)
	if err != nil {
		return Result{}, err
	}
	fileName := FinalFileName(opts.FileName)

	doc := newDocument(orientation, fileName, g.Creator)
	for i, img := range images {
		if err := ctx.Err(); err != nil {
			return Result{}, err
		}
		if err := g.addPage(ctx, doc, geom, encoding, i, img); err != nil {
			return Result{}, fmt.Errorf("image %d (%s): %w", i+1, img.Name, err)
		}
	}

	var raw bytes.Buffer
	if err := doc.Output(&raw); err != nil {
		return Result{}, fmt.Errorf("failed to write PDF: %w", err)
	}
	var out bytes.Buffer
	props := map[string]string{
		"Orientation": string(orientation),
		"FillMode":    string(mode),
		"Images":      strconv.Itoa(len(images)),
	}
	if err := finalize(raw.Bytes(), props, &out); err != nil {
		return Result{}, err
	}
	n, err := out.WriteTo(w)
	if err != nil {
		return Result{}, fmt.Errorf("failed to emit PDF: %w", err)
	}
	return Result{FileName: fileName, Pages: len(images), Bytes: n}, nil
}

// GenerateFile is Generate writing to dir under the final file name. The
// file is only created once the document is complete.
func (g *Generator) GenerateFile(ctx context.Context, images []Source, opts Options, dir string) (string, Result, error) {
	var buf bytes.Buffer
	res, err := g.Generate(ctx, images, opts, &buf)
	if err != nil {
		return "", Result{}, err
	}
	path := filepath.Join(dir, res.FileName)
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return "", Result{}, fmt.Errorf("failed to save %s: %w", path, err)
	}
	return path, res, nil
}

func newDocument(orientation layout.Orientation, title, creator string) *fpdf.Fpdf {
	orientationStr := "P"
	if orientation == layout.Landscape {
		orientationStr = "L"
	}
	doc := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: orientationStr,
		UnitStr:        "mm",
		Size:           fpdf.SizeType{Wd: layout.A4Width, Ht: layout.A4Height},
	})
	doc.SetAutoPageBreak(false, 0)
	doc.SetTitle(title, true)
	doc.SetCreator(creator, true)
	doc.AddPage()
	return doc
}

func (g *Generator) addPage(ctx context.Context, doc *fpdf.Fpdf, geom layout.Geometry, enc Encoding, i int, img Source) error {
	var prober probe.Prober = probe.Header{}
	if g.Prober != nil {
		prober = g.Prober
	}
	dims, err := prober.Probe(ctx, bytes.NewReader(img.Data))
	if err != nil {
		return err
	}
	place, err := geom.Place(dims.AspectRatio())
	if err != nil {
		return err
	}
	data, imageType, err := prepareImage(img.Data, dims, enc)
	if err != nil {
		return err
	}

	if i > 0 {
		doc.AddPage()
	}
	name := fmt.Sprintf("img-%d", i)
	opts := fpdf.ImageOptions{ImageType: imageType, AllowNegativePosition: true}
	doc.RegisterImageOptionsReader(name, opts, bytes.NewReader(data))
	doc.ImageOptions(name, place.X, place.Y, place.Width, place.Height, false, opts, 0, "")
	if err := doc.Error(); err != nil {
		return fmt.Errorf("%w: %v", ErrEmbed, err)
	}
	return nil
}
