//go:build mage

// Package main contains Mage build targets for pdf-slides developer tooling.
package main

import (
	"bufio"
	"bytes"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const (
	binDir  = "bin"
	binName = "pdf-slides"
	cmdPkg  = "./cmd/pdf-slides"

	// slidesDir matches the CLI's default --output-dir.
	slidesDir = "imgs/slides"

	// sourceEnv names the PDF that Slides regenerates from.
	sourceEnv = "PDF_SLIDES_SOURCE"
)

// Init creates the default slide output directory.
func Init() error {
	if err := os.MkdirAll(slidesDir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", slidesDir, err)
	}
	fmt.Println("  ", slidesDir)
	fmt.Println("Slide directory initialized.")
	return nil
}

// Build compiles the CLI binary into bin/, stamping the version from
// $VERSION when set.
func Build() error {
	if err := os.MkdirAll(binDir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", binDir, err)
	}
	out := filepath.Join(binDir, binName)
	args := []string{"build", "-o", out}
	if v := os.Getenv("VERSION"); v != "" {
		args = append(args, "-ldflags", "-X main.version="+v)
	}
	args = append(args, cmdPkg)
	if err := sh.RunV(mg.GoCmd(), args...); err != nil {
		return fmt.Errorf("go build: %w", err)
	}
	fmt.Printf("Built %s\n", out)
	return nil
}

// Test runs the unit tests.
func Test() error {
	return sh.RunV(mg.GoCmd(), "test", "./...")
}

// Slides rebuilds the CLI and regenerates imgs/slides from $PDF_SLIDES_SOURCE,
// writing a manifest alongside the images.
func Slides() error {
	mg.Deps(Build, Init)

	src := os.Getenv(sourceEnv)
	if src == "" {
		return mg.Fatalf(2, "%s must name the source PDF", sourceEnv)
	}
	return sh.RunV(filepath.Join(binDir, binName), "--manifest", src)
}

// Stats prints project metrics: Go production and test LOC.
func Stats() error {
	prod, test, err := countGoLines(".")
	if err != nil {
		return err
	}
	fmt.Printf("Lines of code (Go, production): %d\n", prod)
	fmt.Printf("Lines of code (Go, tests):      %d\n", test)
	return nil
}

// countGoLines counts non-blank lines in .go files under root, split into
// production and _test.go totals. Underscore-prefixed directories are skipped
// the same way the go tool skips them.
func countGoLines(root string) (prod, test int, err error) {
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != root && strings.HasPrefix(d.Name(), "_") {
				return filepath.SkipDir
			}
			return nil
		}
		if filepath.Ext(path) != ".go" {
			return nil
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}
		n := nonBlankLines(data)
		if strings.HasSuffix(path, "_test.go") {
			test += n
		} else {
			prod += n
		}
		return nil
	})
	return prod, test, err
}

func nonBlankLines(data []byte) int {
	n := 0
	sc := bufio.NewScanner(bytes.NewReader(data))
	for sc.Scan() {
		if len(bytes.TrimSpace(sc.Bytes())) > 0 {
			n++
		}
	}
	return n
}
