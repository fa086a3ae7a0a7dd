// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package convert turns a PDF into per-page JPEG slides by delegating the
// rendering to an external rasterizer.
package convert

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pdiddy/pdf-slides/internal/poppler"
	"github.com/pdiddy/pdf-slides/pkg/types"
)

// ErrPDFNotFound is returned when the input PDF does not exist.
var ErrPDFNotFound = errors.New("PDF file not found")

// Rasterizer renders PDF pages to image files. *poppler.Pdftoppm implements
// it; tests substitute a fake.
type Rasterizer interface {
	// Check reports whether the rasterizer can run at all.
	Check() error

	// Rasterize renders every page of req.PDFPath and blocks until done.
	Rasterize(req poppler.Request) error
}

// Result holds the outcome of a successful conversion.
type Result struct {
	// PDFPath is the absolute path of the source PDF.
	PDFPath string
	// OutputDir is the absolute path of the output directory.
	OutputDir string
	// Prefix is the filename stem the slides were written with.
	Prefix string
	// Slides lists the generated images ordered by page.
	Slides []types.Slide
	// ManifestPath is set when a manifest was written.
	ManifestPath string
	// Warnings holds problems met after the rasterizer succeeded. They do
	// not fail the conversion.
	Warnings []error
}

// ConvertSlides runs the whole conversion for cfg: it checks the rasterizer,
// resolves and checks the PDF, creates the output directory, and runs the
// rasterizer once. Any failure is returned without cleanup; files the
// rasterizer may have written are left in place. Once the rasterizer has
// succeeded, listing and manifest problems are recorded as warnings.
func ConvertSlides(r Rasterizer, cfg types.SlidesConfig) (*Result, error) {
	if err := r.Check(); err != nil {
		return nil, err
	}

	pdfPath, err := ResolvePDF(cfg.PDFPath)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating output directory %s: %w", cfg.OutputDir, err)
	}

	// Images already present before the run; a failed listing filters nothing.
	before, _ := ListSlides(cfg.OutputDir, cfg.Prefix)

	req := poppler.Request{
		PDFPath:      pdfPath,
		OutputPrefix: filepath.Join(cfg.OutputDir, cfg.Prefix),
		DPI:          cfg.DPI,
	}
	if err := r.Rasterize(req); err != nil {
		return nil, err
	}

	outDir, err := filepath.Abs(cfg.OutputDir)
	if err != nil {
		return nil, fmt.Errorf("resolving output directory %s: %w", cfg.OutputDir, err)
	}

	result := &Result{
		PDFPath:   pdfPath,
		OutputDir: outDir,
		Prefix:    cfg.Prefix,
	}

	after, err := ListSlides(outDir, cfg.Prefix)
	if err != nil {
		result.Warnings = append(result.Warnings, err)
		return result, nil
	}
	result.Slides = writtenSince(before, after)

	if cfg.Manifest {
		path, err := WriteManifest(outDir, newManifest(result, cfg.DPI))
		if err != nil {
			result.Warnings = append(result.Warnings, err)
			return result, nil
		}
		result.ManifestPath = path
	}

	return result, nil
}

// ResolvePDF returns the absolute form of path, or an error wrapping
// ErrPDFNotFound when nothing exists there.
func ResolvePDF(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolving PDF path %s: %w", path, err)
	}
	if _, err := os.Stat(abs); err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("%w: %s", ErrPDFNotFound, abs)
		}
		return "", fmt.Errorf("checking PDF %s: %w", abs, err)
	}
	return abs, nil
}
