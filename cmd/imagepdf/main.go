// Command imagepdf combines image files into one PDF, one page per image,
// in argument order.
//
//	imagepdf -orientation landscape -fill fill -name trip photos/*.jpg
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"go-imagepdf/internal/intake"
	"go-imagepdf/internal/layout"
	"go-imagepdf/internal/pdf"
)

func main() {
	orientation := flag.String("orientation", string(layout.Portrait), "page orientation: portrait or landscape")
	fillMode := flag.String("fill", string(layout.Fit), "fill mode: fit or fill")
	name := flag.String("name", pdf.DefaultBaseName, "output file name")
	encoding := flag.String("encoding", string(pdf.EncodingPreserve), "image encoding: preserve or jpeg")
	outDir := flag.String("out", ".", "output directory")
	timeout := flag.Duration("timeout", 0, "abort when generation takes longer (0 disables)")
	verbose := flag.Bool("v", false, "print the size of every page")
	flag.Parse()

	if flag.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "usage: imagepdf [flags] image...")
		flag.PrintDefaults()
		os.Exit(2)
	}

	opts := pdf.Options{
		Orientation: layout.Orientation(*orientation),
		FillMode:    layout.FillMode(*fillMode),
		FileName:    *name,
		Encoding:    pdf.Encoding(*encoding),
	}

	ctx, stop := context.WithCancel(context.Background())
	defer stop()
	if *timeout > 0 {
		ctx, stop = context.WithTimeout(ctx, *timeout)
		defer stop()
	}

	path, err := run(ctx, flag.Args(), opts, *outDir, *verbose)
	if err != nil {
		log.Fatalf("Could not generate document: %v", err)
	}
	fmt.Println(path)
}

func run(ctx context.Context, paths []string, opts pdf.Options, outDir string, verbose bool) (string, error) {
	files := make([]intake.File, 0, len(paths))
	for _, p := range paths {
		data, err := os.ReadFile(p)
		if err != nil {
			return "", err
		}
		files = append(files, intake.File{Name: filepath.Base(p), Data: data})
	}

	accepted, rejected := intake.NewValidator(0).Filter(files)
	for _, r := range rejected {
		log.Printf("Skipping %s: %v", r.Name, r.Err)
	}

	sources := make([]pdf.Source, len(accepted))
	for i, f := range accepted {
		sources[i] = pdf.Source{Name: f.Name, Data: f.Data, Size: int64(len(f.Data))}
	}

	start := time.Now()
	out, res, err := pdf.NewGenerator().GenerateFile(ctx, sources, opts, outDir)
	if err != nil {
		if errors.Is(err, pdf.ErrEmptyInput) && len(rejected) > 0 {
			return "", fmt.Errorf("all %d files were rejected: %w", len(rejected), err)
		}
		return "", err
	}
	log.Printf("Wrote %d pages (%d bytes) in %s", res.Pages, res.Bytes, time.Since(start).Round(time.Millisecond))

	if verbose {
		if err := printPageSizes(out); err != nil {
			return "", err
		}
	}
	return out, nil
}

func printPageSizes(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	dims, err := pdf.PageSizes(f)
	if err != nil {
		return err
	}
	for i, d := range dims {
		fmt.Printf("page %d: %.1f x %.1f mm\n", i+1, d.Width, d.Height)
	}
	return nil
}
