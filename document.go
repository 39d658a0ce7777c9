// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/texdoc

package texdoc

import (
	"fmt"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"strings"
)

// Document accumulates LaTeX fragments for one builder scope.
//
// A document is only valid inside the body function passed to [Builder.Run];
// every write after the scope ends fails with [ErrDocumentClosed].
type Document struct {
	job          string
	workDir      string
	basePreamble string

	preamble  []string
	title     string
	fragments []string

	started bool
	closed  bool
}

// newDocument prepares an open document inside the given workspace.
// Preamble template problems surface here, before the scope body runs.
func newDocument(workDir, job string, opt Options) (*Document, error) {
	rendered, err := resolvePreamble(opt)
	if err != nil {
		return nil, err
	}

	return &Document{
		job:          job,
		workDir:      workDir,
		basePreamble: rendered,
	}, nil
}

// SetTitle sets document title and optional subtitle.
// Must be called before any body-producing operation.
func (doc *Document) SetTitle(title, subtitle string) error {
	if err := doc.checkHeaderWritable(); err != nil {
		return err
	}

	title = strings.TrimSpace(title)
	subtitle = strings.TrimSpace(subtitle)
	if subtitle != "" {
		doc.title = fmt.Sprintf("\\title{%s\\\\[10pt]%s}\n\\date{\\today}", title, subtitle)
		return nil
	}

	doc.title = fmt.Sprintf("\\title{%s}\n\\date{\\today}", title)
	return nil
}

// InjectPreamble appends raw LaTeX text to the document preamble.
// Must be called before any body-producing operation.
func (doc *Document) InjectPreamble(text string) error {
	if err := doc.checkHeaderWritable(); err != nil {
		return err
	}

	doc.preamble = append(doc.preamble, text)
	return nil
}

// Append adds one raw body fragment. Markup correctness is not validated
// here; the external compiler is the authority on that.
func (doc *Document) Append(text string) error {
	if doc.closed {
		return ErrDocumentClosed
	}

	doc.started = true
	doc.fragments = append(doc.fragments, text)
	return nil
}

// Section starts a new named section.
func (doc *Document) Section(title string) error {
	return doc.Append(fmt.Sprintf("\\section{%s}", title))
}

// PageBreak forces a page break.
func (doc *Document) PageBreak() error {
	return doc.Append("\\pagebreak")
}

// AppendTable renders a named-column table as a LaTeX table fragment.
// Fails with [ErrTableShape] when the table is empty or has ragged columns.
func (doc *Document) AppendTable(table Table, caption string, style TableStyle) error {
	if doc.closed {
		return ErrDocumentClosed
	}

	fragment, err := renderTable(table, caption, style)
	if err != nil {
		return err
	}

	return doc.Append(fragment)
}

// Figure embeds one image with a caption. A missing figure file is logged
// and skipped rather than failing the whole document.
func (doc *Document) Figure(caption, path string) error {
	if doc.closed {
		return ErrDocumentClosed
	}

	if _, err := os.Stat(path); err != nil {
		slog.Warn("figure file not found, skipping", "path", path)
		return nil
	}

	return doc.Append(fmt.Sprintf(
		"\\begin{figure}[H]\n\\centering\n\\includegraphics[width=0.8\\linewidth]{%s}\n\\caption{%s}\n\\end{figure}",
		bracedFigurePath(path), caption))
}

// Figures embeds multiple images in a square minipage grid under one caption.
func (doc *Document) Figures(caption string, paths ...string) error {
	if doc.closed {
		return ErrDocumentClosed
	}

	if len(paths) == 0 {
		return ErrNoFigures
	}

	if len(paths) == 1 {
		return doc.Figure(caption, paths[0])
	}

	return doc.Append(figureGridFragment(caption, paths))
}

// render assembles the complete LaTeX source for this document.
func (doc *Document) render() string {
	var out strings.Builder
	out.WriteString(doc.basePreamble)

	for _, line := range doc.preamble {
		out.WriteString(line)
		out.WriteString("\n")
	}

	if doc.title != "" {
		out.WriteString(doc.title)
		out.WriteString("\n")
	}

	out.WriteString("\\begin{document}\n")
	if doc.title != "" {
		out.WriteString("\\maketitle\n")
	}

	for _, fragment := range doc.fragments {
		out.WriteString(fragment)
		out.WriteString("\n")
	}

	out.WriteString("\\end{document}\n")
	return out.String()
}

// sourcePath returns the workspace path of the generated .tex file.
func (doc *Document) sourcePath() string {
	return filepath.Join(doc.workDir, doc.job+".tex")
}

// writeSource writes the assembled document source into the workspace.
func (doc *Document) writeSource() error {
	if err := os.WriteFile(doc.sourcePath(), []byte(doc.render()), 0o600); err != nil {
		return fmt.Errorf("%w: %w", ErrWriteSource, err)
	}

	return nil
}

// markClosed rejects all further document writes.
func (doc *Document) markClosed() {
	doc.closed = true
}

// checkHeaderWritable verifies header operations are still permitted.
func (doc *Document) checkHeaderWritable() error {
	if doc.closed {
		return ErrDocumentClosed
	}

	if doc.started {
		return ErrHeaderDone
	}

	return nil
}

// figureGridFragment lays out figures row by row in equal-width minipages.
func figureGridFragment(caption string, paths []string) string {
	rank := gridRank(len(paths))
	width := fmt.Sprintf("%.2f\\linewidth", 0.96/float64(rank))

	var out strings.Builder
	out.WriteString("\\begin{figure}[H]\n\\centering\n")
	for index, path := range paths {
		out.WriteString(fmt.Sprintf(
			"\\begin{minipage}{%s}\n\\centering\n\\includegraphics[width=0.9\\linewidth]{%s}\n\\end{minipage}%%\n",
			width, bracedFigurePath(path)))
		if (index+1)%rank == 0 && index != len(paths)-1 {
			out.WriteString("\\\\\n")
		}
	}

	out.WriteString(fmt.Sprintf("\\caption{%s}\n\\end{figure}", caption))
	return out.String()
}

// gridRank returns the square grid side length for n figures.
func gridRank(n int) int {
	rank := int(math.Sqrt(float64(n)))
	if rank*rank < n {
		rank++
	}

	return rank
}

// bracedFigurePath shields dots in the base name from graphicx extension parsing.
func bracedFigurePath(path string) string {
	ext := filepath.Ext(path)
	if ext == "" {
		return path
	}

	return "{" + strings.TrimSuffix(path, ext) + "}" + ext
}
