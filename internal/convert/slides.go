// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/pdiddy/pdf-slides/pkg/types"
)

const slideExt = ".jpg"

// ListSlides returns the images in dir named <prefix>-<page>.jpg, ordered by
// page number and then file name. pdftoppm zero-pads the page number to the
// width of the page count, so "deck-7.jpg" and "deck-07.jpg" are both accepted.
func ListSlides(dir, prefix string) ([]types.Slide, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("listing slides in %s: %w", dir, err)
	}

	var slides []types.Slide
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		page, ok := slidePage(entry.Name(), prefix)
		if !ok {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			return nil, fmt.Errorf("listing slides in %s: %w", dir, err)
		}
		slides = append(slides, types.Slide{
			Page:    page,
			File:    entry.Name(),
			Path:    filepath.Join(dir, entry.Name()),
			ModTime: info.ModTime(),
		})
	}

	sort.Slice(slides, func(i, j int) bool {
		if slides[i].Page != slides[j].Page {
			return slides[i].Page < slides[j].Page
		}
		return slides[i].File < slides[j].File
	})
	return slides, nil
}

// writtenSince returns the slides in after that are absent from before or
// whose modification time changed, so images left by an earlier run of the
// same prefix are not reported as part of this one.
func writtenSince(before, after []types.Slide) []types.Slide {
	prior := make(map[string]time.Time, len(before))
	for _, s := range before {
		prior[s.File] = s.ModTime
	}

	var fresh []types.Slide
	for _, s := range after {
		if mt, ok := prior[s.File]; ok && mt.Equal(s.ModTime) {
			continue
		}
		fresh = append(fresh, s)
	}
	return fresh
}

// slidePage extracts the page number from name, reporting false when name is
// not a slide for prefix.
func slidePage(name, prefix string) (int, bool) {
	stem := prefix + "-"
	if !strings.HasPrefix(name, stem) || !strings.HasSuffix(name, slideExt) {
		return 0, false
	}
	digits := strings.TrimSuffix(strings.TrimPrefix(name, stem), slideExt)
	if digits == "" {
		return 0, false
	}
	for _, c := range digits {
		if c < '0' || c > '9' {
			return 0, false
		}
	}
	page, err := strconv.Atoi(digits)
	if err != nil {
		return 0, false
	}
	return page, true
}
