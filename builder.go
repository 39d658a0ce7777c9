// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/texdoc

package texdoc

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// Builder compiles an accumulated LaTeX document into one output artifact.
// Each builder instance is independent; there is no shared state.
type Builder struct {
	outputPath string
	opt        Options
}

// New prepares a builder for the given output artifact path.
// No filesystem side effects happen until [Builder.Run].
func New(outputPath string, opt Options) (*Builder, error) {
	outputPath = strings.TrimSpace(outputPath)
	if outputPath == "" {
		return nil, ErrEmptyOutputPath
	}

	return &Builder{outputPath: outputPath, opt: opt}, nil
}

// Run executes body against a fresh document scope.
//
// The compiler runs at most once, and only when body returns nil. When body
// returns an error or panics the compiler is never started. The temporary
// workspace with the generated source and all compiler intermediates is
// removed on every exit path; cleanup failures are logged and never mask the
// primary error.
func (builder *Builder) Run(body func(doc *Document) error) error {
	workDir, err := os.MkdirTemp("", "texdoc-")
	if err != nil {
		return fmt.Errorf("%w: %w", ErrWorkspace, err)
	}
	defer removeWorkspace(workDir)

	doc, err := newDocument(workDir, jobName(builder.outputPath), builder.opt)
	if err != nil {
		return err
	}
	defer doc.markClosed()

	if err := body(doc); err != nil {
		return err
	}

	doc.markClosed()
	if err := doc.writeSource(); err != nil {
		return err
	}

	return builder.compile(workDir, doc.job)
}

// jobName derives the compiler job name from the output artifact path.
func jobName(outputPath string) string {
	base := filepath.Base(outputPath)
	name := strings.TrimSuffix(base, filepath.Ext(base))
	if strings.TrimSpace(name) == "" {
		return "document"
	}

	return name
}

// removeWorkspace removes the temporary workspace best-effort.
func removeWorkspace(dir string) {
	if err := os.RemoveAll(dir); err != nil {
		slog.Warn("cleanup temp workspace", "dir", dir, "error", err)
	}
}
