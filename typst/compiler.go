// Package typst typesets Typst markup into vector graphics and composites
// the rasterized result into rendered frames.
package typst

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// Preamble gives every document a transparent page that fits its content.
const Preamble = "#set page(fill: none, height: auto, width: auto, margin: 0pt)"

// A VectorCompiler turns Typst source into a single-page SVG document.
type VectorCompiler interface {
	Compile(ctx context.Context, source []byte) ([]byte, error)
}

// Source prefixes markup with Preamble.
func Source(markup string) []byte {
	return []byte(Preamble + "\n" + markup + "\n")
}

// Compiler runs the typst command line tool.
type Compiler struct {
	// Path of the typst binary. Defaults to "typst".
	Path string
}

// NewCompiler creates a Compiler using typst from $PATH.
func NewCompiler() *Compiler {
	return &Compiler{Path: "typst"}
}

// Args returns the typst command line: read stdin, write page 1 as SVG to stdout.
func (c *Compiler) Args() []string {
	return []string{"compile", "-", "--format", "svg", "--pages", "1", "-"}
}

// Compile feeds source to typst and returns the SVG it prints.
func (c *Compiler) Compile(ctx context.Context, source []byte) ([]byte, error) {
	cmd := exec.CommandContext(ctx, c.Path, c.Args()...)
	cmd.Stdin = bytes.NewReader(source)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return nil, fmt.Errorf("typst: %w: %s", err, msg)
		}
		return nil, fmt.Errorf("typst: %w", err)
	}
	return stdout.Bytes(), nil
}
