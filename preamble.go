// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/texdoc

package texdoc

import (
	"embed"
	"fmt"
	"sort"
	"strings"
	"text/template"
)

// preambleFS stores built-in LaTeX preamble templates embedded into the package.
//
//go:embed templates/*.tex.gotmpl
var preambleFS embed.FS

const (
	preambleArticleName = "article"
	preambleReportName  = "report"
)

// builtInPreambleFiles maps preamble aliases to embedded file paths.
var builtInPreambleFiles = map[string]string{
	preambleArticleName: "templates/article.tex.gotmpl",
	preambleReportName:  "templates/report.tex.gotmpl",
}

// preambleData is the view model passed to preamble templates.
type preambleData struct {
	FontSize int
}

// BuiltinPreambleNames returns all available built-in preamble names.
func BuiltinPreambleNames() []string {
	names := make([]string, 0, len(builtInPreambleFiles))
	for name := range builtInPreambleFiles {
		names = append(names, name)
	}

	sort.Strings(names)
	return names
}

// BuiltinPreamble returns one built-in preamble template by name.
func BuiltinPreamble(name string) (string, error) {
	name = normalizePreambleName(name)
	path, ok := builtInPreambleFiles[name]
	if !ok {
		return "", fmt.Errorf("%w %q", ErrUnknownPreamble, name)
	}

	data, err := preambleFS.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrReadPreamble, err)
	}

	return string(data), nil
}

// resolvePreamble renders either custom or built-in preamble template text.
func resolvePreamble(opt Options) (string, error) {
	parsed, err := parsePreambleTemplate(opt)
	if err != nil {
		return "", err
	}

	var out strings.Builder
	data := preambleData{FontSize: normalizeFontSize(opt.FontSize)}
	if err := parsed.Execute(&out, data); err != nil {
		return "", fmt.Errorf("%w: %w", ErrExecutePreamble, err)
	}

	return ensureTrailingNewline(out.String()), nil
}

// parsePreambleTemplate resolves custom or built-in template text into a parsed template.
func parsePreambleTemplate(opt Options) (*template.Template, error) {
	templateText := strings.TrimSpace(opt.PreambleText)
	if templateText != "" {
		parsed, err := template.New("custom").Parse(templateText)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrParsePreamble, err)
		}

		return parsed, nil
	}

	preambleName := normalizePreambleName(opt.PreambleName)
	templateText, err := BuiltinPreamble(preambleName)
	if err != nil {
		return nil, err
	}

	parsed, err := template.New(preambleName).Parse(templateText)
	if err != nil {
		return nil, fmt.Errorf("%w %q: %w", ErrParsePreamble, preambleName, err)
	}

	return parsed, nil
}

// ensureTrailingNewline guarantees exactly one trailing newline in output.
func ensureTrailingNewline(value string) string {
	value = strings.TrimRight(value, "\n")
	return value + "\n"
}
