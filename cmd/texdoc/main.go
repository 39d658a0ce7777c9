// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/texdoc

// texdoc builds PDF documents from YAML manifests via an external LaTeX compiler.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/jessevdk/go-flags"
	"gopkg.in/yaml.v3"

	"github.com/woozymasta/texdoc"
)

var (
	Version    = "dev"
	Commit     = "unknown"
	BuildTime  = time.Unix(0, 0)
	URL        = "https://github.com/woozymasta/texdoc"
	_buildTime string
)

// cliOptions describes texdoc CLI flags and subcommands.
type cliOptions struct {
	Version  versionCommand  `command:"version" description:"Print version information"`
	Build    buildCommand    `command:"build" description:"Build PDF document from YAML manifest"`
	Preamble preambleCommand `command:"preamble" description:"Print built-in LaTeX preamble template"`
}

// compileFlags groups external compiler selection flags.
type compileFlags struct {
	Compiler    string        `short:"c" long:"compiler" description:"External LaTeX compiler binary" default:"pdflatex"`
	Timeout     time.Duration `long:"timeout" description:"Bound on the compiler wait (for example 30s); zero waits indefinitely"`
	KeepSource  bool          `short:"k" long:"keep-source" description:"Keep generated .tex file next to the output artifact"`
	PreambleSel string        `short:"p" long:"preamble" description:"Built-in preamble style" choice:"article" choice:"report" default:"article"`
	FontSize    int           `long:"font-size" description:"Base font size in points" default:"11"`
}

// buildCommand builds one PDF from a YAML manifest.
type buildCommand struct {
	runner *cliRunner
	Args   struct {
		Manifest string `positional-arg-name:"manifest" description:"Input YAML manifest path" required:"yes"`
		Output   string `positional-arg-name:"output" description:"Output PDF path" required:"yes"`
	} `positional-args:"yes"`

	CompileFlags compileFlags `group:"Compile"`
}

// Execute runs build subcommand.
func (command *buildCommand) Execute(_ []string) error {
	return command.runner.runBuild(command.Args.Manifest, command.Args.Output, command.CompileFlags)
}

// preambleCommand exports built-in preamble template.
type preambleCommand struct {
	runner *cliRunner
	Args   struct {
		Output string `positional-arg-name:"output" description:"Output template file path (optional; stdout when omitted)"`
	} `positional-args:"yes"`

	PreambleSel string `short:"p" long:"preamble" description:"Built-in preamble style" choice:"article" choice:"report" default:"article"`
}

// Execute runs preamble subcommand.
func (command *preambleCommand) Execute(_ []string) error {
	return command.runner.runPreamble(command.PreambleSel, command.Args.Output)
}

// versionCommand prints version information.
type versionCommand struct {
}

// Execute runs version subcommand.
func (command *versionCommand) Execute(_ []string) error {
	printVersionInfo()
	return nil
}

// cliRunner executes CLI operations with custom IO streams.
type cliRunner struct {
	stdout      io.Writer
	stderr      io.Writer
	programName string
}

// buildManifest describes one document build in YAML form.
type buildManifest struct {
	Title    string          `yaml:"title"`
	Subtitle string          `yaml:"subtitle"`
	Preamble []string        `yaml:"preamble"`
	Blocks   []manifestBlock `yaml:"blocks"`
}

// manifestBlock is one ordered document body element.
// Exactly one field is expected to be set per block.
type manifestBlock struct {
	Text      string           `yaml:"text,omitempty"`
	Section   string           `yaml:"section,omitempty"`
	PageBreak bool             `yaml:"pagebreak,omitempty"`
	Table     *manifestTable   `yaml:"table,omitempty"`
	Figure    *manifestFigure  `yaml:"figure,omitempty"`
	Figures   *manifestFigures `yaml:"figures,omitempty"`
}

// manifestTable describes one named-column table block.
type manifestTable struct {
	Caption           string           `yaml:"caption"`
	Columns           []manifestColumn `yaml:"columns"`
	NoFirstColumnRule bool             `yaml:"no_first_column_rule"`
	PlainRows         bool             `yaml:"plain_rows"`
	ColumnFormat      string           `yaml:"column_format"`
}

// manifestColumn is one named table column.
type manifestColumn struct {
	Name   string   `yaml:"name"`
	Values []string `yaml:"values"`
}

// manifestFigure describes one captioned figure block.
type manifestFigure struct {
	Caption string `yaml:"caption"`
	Path    string `yaml:"path"`
}

// manifestFigures describes one captioned figure grid block.
type manifestFigures struct {
	Caption string   `yaml:"caption"`
	Paths   []string `yaml:"paths"`
}

func init() {
	if _buildTime != "" {
		if t, err := time.Parse(time.RFC3339, _buildTime); err == nil {
			BuildTime = t.UTC()
		}
	}
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes CLI logic and returns process exit code.
func run(args []string, stdout, stderr io.Writer) int {
	programName := strings.TrimSpace(os.Args[0])
	if programName == "" {
		programName = "texdoc"
	}

	programName = filepath.Base(programName)
	runner := cliRunner{
		programName: programName,
		stdout:      stdout,
		stderr:      stderr,
	}

	return runner.run(args)
}

// run parses CLI args and maps errors to process exit codes.
func (runner *cliRunner) run(args []string) int {
	err := parseCLIArgs(args, runner)
	if err == nil {
		return 0
	}

	var flagErr *flags.Error
	if errors.As(err, &flagErr) {
		if flagErr.Type == flags.ErrHelp {
			writeCLIError(runner.stdout, err)
			return 0
		}

		writeCLIError(runner.stderr, err)
		return 2
	}

	writeCLIError(runner.stderr, err)
	return 1
}

// runBuild decodes the manifest and drives one scoped document build.
func (runner *cliRunner) runBuild(manifestPath, outputPath string, compile compileFlags) error {
	data, err := os.ReadFile(manifestPath)
	if err != nil {
		return fmt.Errorf("read manifest file %q: %w", manifestPath, err)
	}

	var manifest buildManifest
	if err := yaml.Unmarshal(data, &manifest); err != nil {
		return fmt.Errorf("decode manifest %q: %w", manifestPath, err)
	}

	builder, err := texdoc.New(outputPath, texdoc.Options{
		Compiler:       compile.Compiler,
		PreambleName:   compile.PreambleSel,
		FontSize:       compile.FontSize,
		KeepSource:     compile.KeepSource,
		CompileTimeout: compile.Timeout,
	})
	if err != nil {
		return fmt.Errorf("prepare builder for %q: %w", outputPath, err)
	}

	if err := builder.Run(func(doc *texdoc.Document) error {
		return applyManifest(doc, manifest)
	}); err != nil {
		return fmt.Errorf("build document %q: %w", outputPath, err)
	}

	return nil
}

// applyManifest replays manifest content onto an open document.
func applyManifest(doc *texdoc.Document, manifest buildManifest) error {
	if strings.TrimSpace(manifest.Title) != "" {
		if err := doc.SetTitle(manifest.Title, manifest.Subtitle); err != nil {
			return fmt.Errorf("set title: %w", err)
		}
	}

	for _, line := range manifest.Preamble {
		if err := doc.InjectPreamble(line); err != nil {
			return fmt.Errorf("inject preamble: %w", err)
		}
	}

	for index, block := range manifest.Blocks {
		if err := applyManifestBlock(doc, block); err != nil {
			return fmt.Errorf("apply block %d: %w", index, err)
		}
	}

	return nil
}

// applyManifestBlock maps one manifest block to a document operation.
func applyManifestBlock(doc *texdoc.Document, block manifestBlock) error {
	switch {
	case block.Table != nil:
		columns := make([]texdoc.Column, 0, len(block.Table.Columns))
		for _, column := range block.Table.Columns {
			columns = append(columns, texdoc.Column{Name: column.Name, Values: column.Values})
		}

		return doc.AppendTable(texdoc.NewTable(columns...), block.Table.Caption, texdoc.TableStyle{
			NoFirstColumnRule: block.Table.NoFirstColumnRule,
			PlainRows:         block.Table.PlainRows,
			ColumnFormat:      block.Table.ColumnFormat,
		})
	case block.Figure != nil:
		return doc.Figure(block.Figure.Caption, block.Figure.Path)
	case block.Figures != nil:
		return doc.Figures(block.Figures.Caption, block.Figures.Paths...)
	case strings.TrimSpace(block.Section) != "":
		return doc.Section(block.Section)
	case block.PageBreak:
		return doc.PageBreak()
	case block.Text != "":
		return doc.Append(block.Text)
	default:
		return errors.New("empty manifest block")
	}
}

// runPreamble writes selected built-in preamble template to stdout or file.
func (runner *cliRunner) runPreamble(preambleName, outputPath string) error {
	tpl, err := texdoc.BuiltinPreamble(preambleName)
	if err != nil {
		return fmt.Errorf("load built-in preamble %q: %w", preambleName, err)
	}

	if strings.TrimSpace(outputPath) == "" {
		if _, err := io.WriteString(runner.stdout, tpl); err != nil {
			return fmt.Errorf("write preamble to stdout: %w", err)
		}

		return nil
	}

	if err := os.WriteFile(outputPath, []byte(tpl), 0o600); err != nil {
		return fmt.Errorf("write preamble file %q: %w", outputPath, err)
	}

	return nil
}

// writeCLIError writes a plain-text CLI error line to the selected stream.
func writeCLIError(output io.Writer, err error) {
	if err == nil {
		return
	}

	_, _ = fmt.Fprintln(output, err.Error())
}

// parseCLIArgs parses CLI arguments and triggers selected subcommand execution.
func parseCLIArgs(args []string, runner *cliRunner) error {
	options := &cliOptions{}
	options.Build.runner = runner
	options.Preamble.runner = runner

	parser := flags.NewParser(options, flags.HelpFlag)
	parser.Name = runner.programName
	applyCommandLongDescriptions(parser, runner.programName)

	_, err := parser.ParseArgs(args)
	if err != nil {
		return err
	}

	return nil
}

// applyCommandLongDescriptions configures detailed command help text with examples.
func applyCommandLongDescriptions(parser *flags.Parser, programName string) {
	descriptions := map[string]string{
		"build": strings.TrimSpace(fmt.Sprintf(`
Build one PDF document from a YAML manifest.
The manifest lists title, extra preamble lines, and ordered body blocks
(text, section, pagebreak, table, figure, figures).
The external compiler runs once inside a private temp workspace; all
intermediate files are removed afterwards.

Examples:
> $ %s build report.yaml report.pdf
> $ %s build --keep-source --timeout 60s report.yaml out/report.pdf
`, programName, programName)),
		"preamble": strings.TrimSpace(fmt.Sprintf(`
Print built-in LaTeX preamble template text (`+"`article` or `report`"+`).
Use it as a starting point for a custom preamble.

Examples:
> $ %s preamble > article.tex.gotmpl
> $ %s preamble -p report preambles/report.tex.gotmpl
`, programName, programName)),
	}

	for commandName, description := range descriptions {
		command := parser.Find(commandName)
		if command == nil {
			continue
		}

		command.LongDescription = description
	}
}

func printVersionInfo() {
	fmt.Printf(`url:      %s
file:     %s
version:  %s
commit:   %s
built:    %s
`, URL, os.Args[0], Version, Commit, BuildTime)
}
