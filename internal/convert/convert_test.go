// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/pdf-slides/internal/poppler"
	"github.com/pdiddy/pdf-slides/pkg/types"
)

// fakeRasterizer implements Rasterizer for testing. It records the request
// and writes the configured number of pages the way pdftoppm names them.
type fakeRasterizer struct {
	checkErr     error
	runErr       error
	pages        int
	removeOutput bool // delete the output directory after rendering

	called bool
	got    poppler.Request
}

func (f *fakeRasterizer) Check() error { return f.checkErr }

func (f *fakeRasterizer) Rasterize(req poppler.Request) error {
	f.called = true
	f.got = req
	if f.runErr != nil {
		return f.runErr
	}
	width := len(fmt.Sprint(f.pages))
	for i := 1; i <= f.pages; i++ {
		name := fmt.Sprintf("%s-%0*d.jpg", req.OutputPrefix, width, i)
		if err := os.WriteFile(name, []byte("jpeg"), 0o644); err != nil {
			return err
		}
	}
	if f.removeOutput {
		return os.RemoveAll(filepath.Dir(req.OutputPrefix))
	}
	return nil
}

// setupPDF creates a temporary PDF file and returns its path and the temp dir.
func setupPDF(t *testing.T) (pdfPath, tmpDir string) {
	t.Helper()
	tmpDir = t.TempDir()
	pdfPath = filepath.Join(tmpDir, "portfolio.pdf")
	require.NoError(t, os.WriteFile(pdfPath, []byte("%PDF-1.7"), 0o644))
	return pdfPath, tmpDir
}

func testConfig(pdfPath, outDir string) types.SlidesConfig {
	cfg := types.DefaultSlidesConfig()
	cfg.PDFPath = pdfPath
	cfg.OutputDir = outDir
	return cfg
}

func TestConvertSlides(t *testing.T) {
	pdfPath, tmpDir := setupPDF(t)
	outDir := filepath.Join(tmpDir, "imgs", "slides")
	r := &fakeRasterizer{pages: 3}

	result, err := ConvertSlides(r, testConfig(pdfPath, outDir))
	require.NoError(t, err)

	assert.Equal(t, poppler.Request{
		PDFPath:      pdfPath,
		OutputPrefix: filepath.Join(outDir, "portfolio-page"),
		DPI:          150,
	}, r.got)
	assert.DirExists(t, outDir)
	assert.Equal(t, outDir, result.OutputDir)
	assert.Equal(t, pdfPath, result.PDFPath)
	assert.Equal(t, "portfolio-page", result.Prefix)
	require.Len(t, result.Slides, 3)
	assert.Equal(t, "portfolio-page-1.jpg", result.Slides[0].File)
	assert.Empty(t, result.ManifestPath)
}

func TestConvertSlides_Failures(t *testing.T) {
	tests := []struct {
		name       string
		rasterizer *fakeRasterizer
		missingPDF bool
		wantIs     error
		wantMsg    string
		wantCalled bool
	}{
		{
			name:       "rasterizer unavailable",
			rasterizer: &fakeRasterizer{checkErr: fmt.Errorf("required tool %q was %w", "pdftoppm", poppler.ErrToolNotFound)},
			wantIs:     poppler.ErrToolNotFound,
			wantMsg:    "not found in PATH",
		},
		{
			name:       "missing PDF",
			rasterizer: &fakeRasterizer{},
			missingPDF: true,
			wantIs:     ErrPDFNotFound,
			wantMsg:    "PDF file not found",
		},
		{
			name:       "rasterizer exits non-zero",
			rasterizer: &fakeRasterizer{runErr: &poppler.ExitError{Code: 2}},
			wantMsg:    "exit code 2",
			wantCalled: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pdfPath, tmpDir := setupPDF(t)
			if tt.missingPDF {
				pdfPath = filepath.Join(tmpDir, "missing.pdf")
			}

			_, err := ConvertSlides(tt.rasterizer, testConfig(pdfPath, filepath.Join(tmpDir, "out")))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantMsg)
			if tt.wantIs != nil {
				assert.True(t, errors.Is(err, tt.wantIs), "error %v should wrap %v", err, tt.wantIs)
			}
			assert.Equal(t, tt.wantCalled, tt.rasterizer.called)
		})
	}
}

func TestConvertSlides_ToolCheckedBeforeInput(t *testing.T) {
	tmpDir := t.TempDir()
	r := &fakeRasterizer{checkErr: poppler.ErrToolNotFound}

	_, err := ConvertSlides(r, testConfig(filepath.Join(tmpDir, "missing.pdf"), filepath.Join(tmpDir, "out")))
	require.Error(t, err)
	assert.ErrorIs(t, err, poppler.ErrToolNotFound)
	assert.NoDirExists(t, filepath.Join(tmpDir, "out"))
}

func TestConvertSlides_ExistingOutputDir(t *testing.T) {
	pdfPath, tmpDir := setupPDF(t)
	outDir := filepath.Join(tmpDir, "slides")
	require.NoError(t, os.MkdirAll(outDir, 0o755))

	_, err := ConvertSlides(&fakeRasterizer{pages: 1}, testConfig(pdfPath, outDir))
	require.NoError(t, err)
}

func TestConvertSlides_Manifest(t *testing.T) {
	pdfPath, tmpDir := setupPDF(t)
	outDir := filepath.Join(tmpDir, "slides")
	cfg := testConfig(pdfPath, outDir)
	cfg.Prefix = "deck"
	cfg.DPI = 200
	cfg.Manifest = true

	result, err := ConvertSlides(&fakeRasterizer{pages: 12}, cfg)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(outDir, "deck.yaml"), result.ManifestPath)

	data, err := os.ReadFile(result.ManifestPath)
	require.NoError(t, err)

	var m types.SlideManifest
	require.NoError(t, yaml.Unmarshal(data, &m))
	assert.Equal(t, pdfPath, m.SourcePDF)
	assert.Equal(t, 200, m.DPI)
	assert.Equal(t, "deck", m.Prefix)
	assert.NotEmpty(t, m.GeneratedAt)
	require.Len(t, m.Slides, 12)
	assert.Equal(t, types.Slide{Page: 1, File: "deck-01.jpg"}, m.Slides[0])
	assert.Equal(t, types.Slide{Page: 12, File: "deck-12.jpg"}, m.Slides[11])
	assert.False(t, strings.Contains(string(data), outDir+"/"), "manifest should store base names only")
}

func slideFiles(slides []types.Slide) []string {
	files := make([]string, len(slides))
	for i, s := range slides {
		files[i] = s.File
	}
	return files
}

func TestConvertSlides_IgnoresEarlierRuns(t *testing.T) {
	pdfPath, tmpDir := setupPDF(t)
	outDir := filepath.Join(tmpDir, "slides")
	cfg := testConfig(pdfPath, outDir)
	cfg.Prefix = "deck"
	cfg.Manifest = true

	first, err := ConvertSlides(&fakeRasterizer{pages: 12}, cfg)
	require.NoError(t, err)
	require.Len(t, first.Slides, 12)

	second, err := ConvertSlides(&fakeRasterizer{pages: 3}, cfg)
	require.NoError(t, err)
	assert.Equal(t, []string{"deck-1.jpg", "deck-2.jpg", "deck-3.jpg"}, slideFiles(second.Slides))

	data, err := os.ReadFile(second.ManifestPath)
	require.NoError(t, err)
	var m types.SlideManifest
	require.NoError(t, yaml.Unmarshal(data, &m))
	assert.Len(t, m.Slides, 3)
}

func TestConvertSlides_OverwrittenPagesCount(t *testing.T) {
	pdfPath, tmpDir := setupPDF(t)
	outDir := filepath.Join(tmpDir, "slides")
	cfg := testConfig(pdfPath, outDir)

	_, err := ConvertSlides(&fakeRasterizer{pages: 5}, cfg)
	require.NoError(t, err)

	// Age the first run's images so rewrites are visible in their mtime.
	old := time.Now().Add(-time.Hour)
	entries, err := os.ReadDir(outDir)
	require.NoError(t, err)
	for _, e := range entries {
		require.NoError(t, os.Chtimes(filepath.Join(outDir, e.Name()), old, old))
	}

	result, err := ConvertSlides(&fakeRasterizer{pages: 3}, cfg)
	require.NoError(t, err)
	assert.Equal(t, []string{"portfolio-page-1.jpg", "portfolio-page-2.jpg", "portfolio-page-3.jpg"}, slideFiles(result.Slides))
}

func TestConvertSlides_ListingFailureIsWarning(t *testing.T) {
	pdfPath, tmpDir := setupPDF(t)
	cfg := testConfig(pdfPath, filepath.Join(tmpDir, "slides"))
	cfg.Manifest = true

	result, err := ConvertSlides(&fakeRasterizer{pages: 2, removeOutput: true}, cfg)
	require.NoError(t, err)
	require.Len(t, result.Warnings, 1)
	assert.Contains(t, result.Warnings[0].Error(), "listing slides")
	assert.Empty(t, result.Slides)
	assert.Empty(t, result.ManifestPath)
}

func TestResolvePDF(t *testing.T) {
	pdfPath, tmpDir := setupPDF(t)

	got, err := ResolvePDF(pdfPath)
	require.NoError(t, err)
	assert.True(t, filepath.IsAbs(got))

	missing := filepath.Join(tmpDir, "nope.pdf")
	_, err = ResolvePDF(missing)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrPDFNotFound)
	assert.Contains(t, err.Error(), "PDF file not found: "+missing)
}
