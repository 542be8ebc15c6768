package pdf

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"io"
	"math"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"testing"

	"go-imagepdf/internal/layout"
	"go-imagepdf/internal/probe"

	pdfapi "github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
)

func pngSource(t *testing.T, name string, w, h int) Source {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		img.Set(x, x%h, color.NRGBA{R: 200, G: 40, B: 40, A: 180})
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("png.Encode: %v", err)
	}
	return Source{Name: name, Data: buf.Bytes(), Size: int64(buf.Len())}
}

func jpegSource(t *testing.T, name string, w, h int) Source {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		img.Set(y%w, y, color.RGBA{G: 255, A: 255})
	}
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: 90}); err != nil {
		t.Fatalf("jpeg.Encode: %v", err)
	}
	return Source{Name: name, Data: buf.Bytes(), Size: int64(buf.Len())}
}

func TestFinalFileName(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"  my doc  ", "my doc.pdf"},
		{"report.pdf", "report.pdf"},
		{"   ", "combined-document.pdf"},
		{"", "combined-document.pdf"},
		{"scan.PDF", "scan.PDF.pdf"},
		{"notes", "notes.pdf"},
	}
	for _, tt := range tests {
		if got := FinalFileName(tt.in); got != tt.want {
			t.Errorf("FinalFileName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestGenerate(t *testing.T) {
	images := []Source{
		pngSource(t, "wide.png", 80, 40),
		jpegSource(t, "tall.jpg", 30, 90),
		pngSource(t, "square.png", 50, 50),
	}
	tests := []struct {
		name  string
		opts  Options
		pageW float64
		pageH float64
	}{
		{"defaults", Options{}, 210, 297},
		{"landscape fill", Options{Orientation: layout.Landscape, FillMode: layout.Fill}, 297, 210},
		{"portrait fill jpeg", Options{FillMode: layout.Fill, Encoding: EncodingJPEG}, 210, 297},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			res, err := NewGenerator().Generate(context.Background(), images, tt.opts, &buf)
			if err != nil {
				t.Fatalf("Generate: %v", err)
			}
			if res.Pages != len(images) {
				t.Errorf("Pages = %d, want %d", res.Pages, len(images))
			}
			if res.Bytes != int64(buf.Len()) {
				t.Errorf("Bytes = %d, wrote %d", res.Bytes, buf.Len())
			}
			if res.FileName != "combined-document.pdf" {
				t.Errorf("FileName = %q", res.FileName)
			}

			n, err := pdfapi.PageCount(bytes.NewReader(buf.Bytes()), newConfiguration())
			if err != nil {
				t.Fatalf("PageCount: %v", err)
			}
			if n != len(images) {
				t.Errorf("page count = %d, want %d", n, len(images))
			}
			dims, err := PageSizes(bytes.NewReader(buf.Bytes()))
			if err != nil {
				t.Fatal(err)
			}
			for i, d := range dims {
				if math.Abs(d.Width-tt.pageW) > 0.5 || math.Abs(d.Height-tt.pageH) > 0.5 {
					t.Errorf("page %d is %.1fx%.1f mm, want %vx%v", i+1, d.Width, d.Height, tt.pageW, tt.pageH)
				}
			}
		})
	}
}

func TestGenerateEmptyInput(t *testing.T) {
	var buf bytes.Buffer
	_, err := NewGenerator().Generate(context.Background(), nil, Options{}, &buf)
	if !errors.Is(err, ErrEmptyInput) {
		t.Fatalf("expected ErrEmptyInput, got %v", err)
	}
	if buf.Len() != 0 {
		t.Errorf("wrote %d bytes for empty input", buf.Len())
	}
}

func TestGenerateDecodeErrorWritesNothing(t *testing.T) {
	images := []Source{
		pngSource(t, "ok.png", 10, 10),
		{Name: "broken.png", Data: []byte("not an image"), Size: 12},
	}
	var buf bytes.Buffer
	_, err := NewGenerator().Generate(context.Background(), images, Options{}, &buf)
	if !errors.Is(err, probe.ErrDecode) {
		t.Fatalf("expected probe.ErrDecode, got %v", err)
	}
	if buf.Len() != 0 {
		t.Errorf("wrote %d bytes after a decode failure", buf.Len())
	}
}

func TestGenerateInvalidOptions(t *testing.T) {
	images := []Source{pngSource(t, "a.png", 10, 10)}
	_, err := NewGenerator().Generate(context.Background(), images, Options{FillMode: "stretch"}, io.Discard)
	if !errors.Is(err, layout.ErrInvalidLayoutInput) {
		t.Fatalf("expected ErrInvalidLayoutInput, got %v", err)
	}
	if _, err := NewGenerator().Generate(context.Background(), images, Options{Encoding: "gif"}, io.Discard); err == nil {
		t.Fatal("expected error for unknown encoding")
	}
}

type fixedProber struct {
	dims  probe.Dimensions
	names []string
}

func (p *fixedProber) Probe(_ context.Context, r io.Reader) (probe.Dimensions, error) {
	data, _ := io.ReadAll(r)
	p.names = append(p.names, string(data))
	return p.dims, nil
}

func TestGenerateInvalidDimensions(t *testing.T) {
	g := &Generator{Prober: &fixedProber{dims: probe.Dimensions{Width: 0, Height: 10, Format: "png"}}}
	_, err := g.Generate(context.Background(), []Source{{Name: "zero", Data: []byte("x")}}, Options{}, io.Discard)
	if !errors.Is(err, layout.ErrInvalidLayoutInput) {
		t.Fatalf("expected ErrInvalidLayoutInput, got %v", err)
	}
}

func TestGenerateStopsAtFirstFailure(t *testing.T) {
	p := &fixedProber{dims: probe.Dimensions{Width: 1, Height: 1, Format: "other"}}
	g := &Generator{Prober: p}
	images := []Source{{Data: []byte("first")}, {Data: []byte("second")}, {Data: []byte("third")}}
	// the fake dimensions pass probing but the bytes cannot be embedded
	_, err := g.Generate(context.Background(), images, Options{}, io.Discard)
	if !errors.Is(err, probe.ErrDecode) {
		t.Fatalf("expected probe.ErrDecode, got %v", err)
	}
	if len(p.names) != 1 || p.names[0] != "first" {
		t.Errorf("probed %v, want only [first]", p.names)
	}
}

func TestGenerateCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	var buf bytes.Buffer
	_, err := NewGenerator().Generate(ctx, []Source{pngSource(t, "a.png", 4, 4)}, Options{}, &buf)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if buf.Len() != 0 {
		t.Errorf("wrote %d bytes after cancellation", buf.Len())
	}
}

func TestGenerateFile(t *testing.T) {
	dir := t.TempDir()
	images := []Source{jpegSource(t, "a.jpg", 20, 10)}
	path, res, err := NewGenerator().GenerateFile(context.Background(), images, Options{FileName: " holiday "}, dir)
	if err != nil {
		t.Fatalf("GenerateFile: %v", err)
	}
	if filepath.Base(path) != "holiday.pdf" || res.FileName != "holiday.pdf" {
		t.Errorf("unexpected path %q / %q", path, res.FileName)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF-")) {
		t.Error("output is not a PDF")
	}
}

func TestGenerateFileFailureCreatesNothing(t *testing.T) {
	dir := t.TempDir()
	_, _, err := NewGenerator().GenerateFile(context.Background(), nil, Options{}, dir)
	if !errors.Is(err, ErrEmptyInput) {
		t.Fatalf("expected ErrEmptyInput, got %v", err)
	}
	entries, _ := os.ReadDir(dir)
	if len(entries) != 0 {
		t.Errorf("expected empty dir, found %d entries", len(entries))
	}
}

var imageMatrix = regexp.MustCompile(`(-?[\d.]+) 0 0 (-?[\d.]+) (-?[\d.]+) (-?[\d.]+) cm /I`)

// drawnMatrices returns the image transformation matrix of every page, in
// page order.
func drawnMatrices(t *testing.T, data []byte) [][4]float64 {
	t.Helper()
	ctx, err := pdfapi.ReadValidateAndOptimize(bytes.NewReader(data), newConfiguration())
	if err != nil {
		t.Fatalf("read PDF: %v", err)
	}
	var out [][4]float64
	for page := 1; page <= ctx.PageCount; page++ {
		r, err := pdfcpu.ExtractPageContent(ctx, page)
		if err != nil {
			t.Fatalf("page %d content: %v", page, err)
		}
		content, _ := io.ReadAll(r)
		m := imageMatrix.FindSubmatch(content)
		if m == nil {
			t.Fatalf("page %d draws no image: %q", page, content)
		}
		var v [4]float64
		for i := range v {
			v[i], _ = strconv.ParseFloat(string(m[i+1]), 64)
		}
		out = append(out, v)
	}
	return out
}

func TestGenerateDrawsPlacementsInOrder(t *testing.T) {
	const k = 72 / 25.4
	tests := []struct {
		name string
		opts Options
	}{
		{"portrait fill", Options{FillMode: layout.Fill}},
		{"portrait fit", Options{FillMode: layout.Fit}},
		{"landscape fill", Options{Orientation: layout.Landscape, FillMode: layout.Fill}},
		{"landscape fit", Options{Orientation: layout.Landscape, FillMode: layout.Fit}},
	}
	images := []Source{pngSource(t, "wide.png", 80, 40), jpegSource(t, "tall.jpg", 30, 90)}
	aspects := []float64{2, 1.0 / 3}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			if _, err := NewGenerator().Generate(context.Background(), images, tt.opts, &buf); err != nil {
				t.Fatalf("Generate: %v", err)
			}
			orientation, _ := layout.ParseOrientation(string(tt.opts.Orientation))
			geom, err := layout.NewGeometry(orientation, tt.opts.FillMode)
			if err != nil {
				t.Fatal(err)
			}
			got := drawnMatrices(t, buf.Bytes())
			if len(got) != len(aspects) {
				t.Fatalf("got %d pages, want %d", len(got), len(aspects))
			}
			for i, aspect := range aspects {
				p, err := geom.Place(aspect)
				if err != nil {
					t.Fatal(err)
				}
				want := [4]float64{
					p.Width * k,
					p.Height * k,
					p.X * k,
					(geom.PageHeight - p.Y - p.Height) * k,
				}
				for j := range want {
					if math.Abs(got[i][j]-want[j]) > 0.02 {
						t.Errorf("page %d: cm %v, want %v", i+1, got[i], want)
						break
					}
				}
			}
		})
	}

	// wide then tall on a portrait page, fill
	var buf bytes.Buffer
	if _, err := NewGenerator().Generate(context.Background(), images, Options{FillMode: layout.Fill}, &buf); err != nil {
		t.Fatal(err)
	}
	got := drawnMatrices(t, buf.Bytes())
	want := [][4]float64{
		{1683.78, 841.89, -544.25, 0},
		{595.28, 1785.83, 0, -471.97},
	}
	for i := range want {
		for j := range want[i] {
			if math.Abs(got[i][j]-want[i][j]) > 0.02 {
				t.Errorf("page %d: cm %v, want %v", i+1, got[i], want[i])
				break
			}
		}
	}
}
