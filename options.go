// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/texdoc

package texdoc

import (
	"strings"
	"time"
)

const (
	// defaultCompiler is used when caller does not provide compiler binary name.
	defaultCompiler = "pdflatex"
	// defaultFontSize is the base document font size in points.
	defaultFontSize = 11
	// defaultPreambleName is used when caller does not provide preamble name.
	defaultPreambleName = "article"
)

// Options configures one document build.
type Options struct {
	// Compiler is the external LaTeX compiler binary name or path.
	Compiler string
	// PreambleName selects a built-in preamble ("article" or "report").
	PreambleName string
	// PreambleText is custom preamble template text and overrides PreambleName.
	PreambleText string
	// FontSize is the base font size in points.
	FontSize int
	// KeepSource copies the generated .tex file next to the output artifact.
	// The copy is written before the compiler runs, so it survives
	// compilation failures and can be used for debugging.
	KeepSource bool
	// CompileTimeout bounds the blocking wait on the compiler subprocess.
	// Zero waits indefinitely.
	CompileTimeout time.Duration
}

// normalizeCompiler validates compiler name and falls back to default.
func normalizeCompiler(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return defaultCompiler
	}

	return value
}

// normalizeFontSize validates font size and falls back to default.
func normalizeFontSize(value int) int {
	if value <= 0 {
		return defaultFontSize
	}

	return value
}

// normalizePreambleName normalizes built-in preamble identifiers.
func normalizePreambleName(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return defaultPreambleName
	}

	return name
}
