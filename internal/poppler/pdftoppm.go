// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package poppler locates and runs the Poppler command-line tools.
package poppler

import (
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strconv"
)

// BinPdftoppm is the rasterization tool used for slide generation.
const BinPdftoppm = "pdftoppm"

// ErrToolNotFound is returned when a Poppler binary cannot be resolved on PATH.
var ErrToolNotFound = errors.New("not found in PATH")

// ExitError reports a pdftoppm run that finished with a non-zero status.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("%s failed with exit code %d", BinPdftoppm, e.Code)
}

func (e *ExitError) Unwrap() error { return e.Err }

// Request describes one pdftoppm invocation producing JPEG output.
type Request struct {
	// PDFPath is the input document.
	PDFPath string
	// OutputPrefix is the output directory joined with the filename prefix.
	OutputPrefix string
	// DPI is passed as both -rx and -ry.
	DPI int
}

// Args returns the pdftoppm argument list for r.
func (r Request) Args() []string {
	dpi := strconv.Itoa(r.DPI)
	return []string{"-jpeg", "-rx", dpi, "-ry", dpi, r.PDFPath, r.OutputPrefix}
}

// executor abstracts command execution for testing.
type executor interface {
	LookPath(file string) (string, error)
	Run(name string, args []string, stdout, stderr io.Writer) error
}

// osExecutor is the production executor backed by os/exec.
type osExecutor struct{}

func (o *osExecutor) LookPath(file string) (string, error) {
	return exec.LookPath(file)
}

func (o *osExecutor) Run(name string, args []string, stdout, stderr io.Writer) error {
	cmd := exec.Command(name, args...)
	cmd.Stdout = stdout
	cmd.Stderr = stderr
	return cmd.Run()
}

// Pdftoppm runs the pdftoppm binary. The zero value is not usable; build one
// with NewPdftoppm.
type Pdftoppm struct {
	bin    string
	exec   executor
	stdout io.Writer
	stderr io.Writer
}

// NewPdftoppm returns a runner for the pdftoppm binary on PATH. The child's
// output streams are forwarded to stdout and stderr; nil discards them.
func NewPdftoppm(stdout, stderr io.Writer) *Pdftoppm {
	return newPdftoppm(defaultExec, stdout, stderr)
}

func newPdftoppm(exec executor, stdout, stderr io.Writer) *Pdftoppm {
	if stdout == nil {
		stdout = io.Discard
	}
	if stderr == nil {
		stderr = io.Discard
	}
	return &Pdftoppm{bin: BinPdftoppm, exec: exec, stdout: stdout, stderr: stderr}
}

var defaultExec = &osExecutor{}

// Check verifies the binary resolves on PATH.
func (p *Pdftoppm) Check() error {
	if _, err := p.exec.LookPath(p.bin); err != nil {
		return fmt.Errorf("required tool %q was %w; install poppler-utils", p.bin, ErrToolNotFound)
	}
	return nil
}

// Rasterize runs pdftoppm for req and blocks until it exits. A non-zero exit
// is reported as *ExitError.
func (p *Pdftoppm) Rasterize(req Request) error {
	err := p.exec.Run(p.bin, req.Args(), p.stdout, p.stderr)
	if err == nil {
		return nil
	}

	var coded interface{ ExitCode() int }
	if errors.As(err, &coded) {
		return &ExitError{Code: coded.ExitCode(), Err: err}
	}
	return fmt.Errorf("running %s: %w", p.bin, err)
}
