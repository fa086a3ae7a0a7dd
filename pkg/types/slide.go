package types

import "time"

// Slide is one page image produced by pdftoppm.
type Slide struct {
	// Page is the 1-based page number parsed from the filename suffix.
	Page int `json:"page" yaml:"page"`

	// File is the base name of the image, e.g. "portfolio-page-03.jpg".
	File string `json:"file" yaml:"file"`

	// Path is the full path of the image on disk.
	Path string `json:"-" yaml:"-"`

	// ModTime is the image's modification time when it was listed.
	ModTime time.Time `json:"-" yaml:"-"`
}

// SlideManifest records what a conversion run produced.
type SlideManifest struct {
	SourcePDF   string  `json:"source_pdf" yaml:"source_pdf"`
	DPI         int     `json:"dpi" yaml:"dpi"`
	Prefix      string  `json:"prefix" yaml:"prefix"`
	GeneratedAt string  `json:"generated_at" yaml:"generated_at"`
	Slides      []Slide `json:"slides" yaml:"slides"`
}
