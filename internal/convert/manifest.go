// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/pdf-slides/pkg/types"
)

const manifestExt = ".yaml"

func newManifest(r *Result, dpi int) types.SlideManifest {
	return types.SlideManifest{
		SourcePDF:   r.PDFPath,
		DPI:         dpi,
		Prefix:      r.Prefix,
		GeneratedAt: time.Now().UTC().Format(time.RFC3339),
		Slides:      r.Slides,
	}
}

// WriteManifest writes m to <dir>/<prefix>.yaml and returns the file path.
func WriteManifest(dir string, m types.SlideManifest) (string, error) {
	data, err := yaml.Marshal(m)
	if err != nil {
		return "", fmt.Errorf("marshaling manifest: %w", err)
	}
	path := filepath.Join(dir, m.Prefix+manifestExt)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("writing manifest %s: %w", path, err)
	}
	return path, nil
}

