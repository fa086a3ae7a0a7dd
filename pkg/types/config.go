// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types holds the data shared between the CLI and the conversion
// packages.
package types

const (
	// DefaultOutputDir is where slide images are written when no directory is given.
	DefaultOutputDir = "imgs/slides"

	// DefaultPrefix is the filename stem for generated slides.
	DefaultPrefix = "portfolio-page"

	// DefaultDPI is the horizontal and vertical resolution passed to pdftoppm.
	DefaultDPI = 150
)

// SlidesConfig holds the parameters of a single conversion run.
type SlidesConfig struct {
	// PDFPath is the source PDF. It is resolved to an absolute path before use.
	PDFPath string `json:"pdf" yaml:"pdf"`

	// OutputDir is the directory that receives the JPEG files (default imgs/slides).
	OutputDir string `json:"output_dir" yaml:"output_dir"`

	// Prefix is the filename stem; pdftoppm appends -<page>.jpg (default portfolio-page).
	Prefix string `json:"prefix" yaml:"prefix"`

	// DPI is used for both -rx and -ry (default 150).
	DPI int `json:"dpi" yaml:"dpi"`

	// Manifest controls whether a <prefix>.yaml listing is written next to the slides.
	Manifest bool `json:"manifest" yaml:"manifest"`
}

// DefaultSlidesConfig returns a config populated with the documented defaults
// and no PDF path.
func DefaultSlidesConfig() SlidesConfig {
	return SlidesConfig{
		OutputDir: DefaultOutputDir,
		Prefix:    DefaultPrefix,
		DPI:       DefaultDPI,
	}
}
