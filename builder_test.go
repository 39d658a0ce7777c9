// SPDX-License-Identifier: AGPL-3.0-only
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/texdoc

package texdoc

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// fakeCompiler writes an executable stub that appends one line to markerPath
// per invocation, emits the expected pdf artifact, and exits with exitCode.
func fakeCompiler(t *testing.T, markerPath string, exitCode int) string {
	t.Helper()

	script := fmt.Sprintf(`#!/bin/sh
echo invoked >> %q
for arg in "$@"; do source="$arg"; done
printf 'fake compiler processed %%s\n' "$source"
if [ %d -eq 0 ]; then
  : > "${source%%.tex}.pdf"
fi
exit %d
`, markerPath, exitCode, exitCode)

	return writeCompilerScript(t, script)
}

// slowCompiler writes an executable stub that sleeps past any sane test timeout.
func slowCompiler(t *testing.T) string {
	t.Helper()
	return writeCompilerScript(t, "#!/bin/sh\nsleep 10\n")
}

// writeCompilerScript stores one executable shell script in a test temp dir.
func writeCompilerScript(t *testing.T, script string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "fake-compiler")
	if err := os.WriteFile(path, []byte(script), 0o700); err != nil {
		t.Fatalf("write fake compiler: %v", err)
	}

	return path
}

// invocationCount counts recorded fake compiler invocations.
func invocationCount(t *testing.T, markerPath string) int {
	t.Helper()

	data, err := os.ReadFile(markerPath)
	if errors.Is(err, os.ErrNotExist) {
		return 0
	}

	if err != nil {
		t.Fatalf("read invocation marker: %v", err)
	}

	return len(strings.Split(strings.TrimSpace(string(data)), "\n"))
}

func TestNewEmptyOutputPath(t *testing.T) {
	t.Parallel()

	if _, err := New("   ", Options{}); !errors.Is(err, ErrEmptyOutputPath) {
		t.Fatalf("New error = %v, want ErrEmptyOutputPath", err)
	}
}

func TestRunInvokesCompilerOnceOnSuccess(t *testing.T) {
	t.Parallel()

	outDir := t.TempDir()
	marker := filepath.Join(t.TempDir(), "invocations")
	outputPath := filepath.Join(outDir, "report.pdf")

	builder, err := New(outputPath, Options{Compiler: fakeCompiler(t, marker, 0)})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	err = builder.Run(func(doc *Document) error {
		return doc.Append("hello")
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if got := invocationCount(t, marker); got != 1 {
		t.Fatalf("compiler invocations = %d, want 1", got)
	}

	if _, err := os.Stat(outputPath); err != nil {
		t.Fatalf("output artifact missing: %v", err)
	}
}

func TestRunSkipsCompilerOnBodyError(t *testing.T) {
	t.Parallel()

	marker := filepath.Join(t.TempDir(), "invocations")
	outputPath := filepath.Join(t.TempDir(), "report.pdf")

	builder, err := New(outputPath, Options{Compiler: fakeCompiler(t, marker, 0)})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	bodyErr := errors.New("body failed")
	err = builder.Run(func(doc *Document) error {
		if err := doc.Append("partial"); err != nil {
			return err
		}

		return bodyErr
	})
	if !errors.Is(err, bodyErr) {
		t.Fatalf("Run error = %v, want body error", err)
	}

	if got := invocationCount(t, marker); got != 0 {
		t.Fatalf("compiler invocations = %d, want 0", got)
	}

	if _, err := os.Stat(outputPath); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("output artifact should not exist, stat err = %v", err)
	}
}

func TestRunSkipsCompilerOnPanic(t *testing.T) {
	t.Parallel()

	marker := filepath.Join(t.TempDir(), "invocations")
	var workDir string

	builder, err := New(filepath.Join(t.TempDir(), "report.pdf"), Options{
		Compiler: fakeCompiler(t, marker, 0),
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	defer func() {
		if recover() == nil {
			t.Fatal("expected panic to propagate")
		}

		if got := invocationCount(t, marker); got != 0 {
			t.Fatalf("compiler invocations = %d, want 0", got)
		}

		if _, err := os.Stat(workDir); !errors.Is(err, os.ErrNotExist) {
			t.Fatalf("workspace should be removed, stat err = %v", err)
		}
	}()

	_ = builder.Run(func(doc *Document) error {
		workDir = doc.workDir
		panic("boom")
	})
}

func TestRunCleansWorkspace(t *testing.T) {
	t.Parallel()

	marker := filepath.Join(t.TempDir(), "invocations")
	outputPath := filepath.Join(t.TempDir(), "report.pdf")

	builder, err := New(outputPath, Options{Compiler: fakeCompiler(t, marker, 0)})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	var workDir string
	err = builder.Run(func(doc *Document) error {
		workDir = doc.workDir
		return doc.Append("content")
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if _, err := os.Stat(workDir); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("workspace should be removed, stat err = %v", err)
	}
}

func TestRunCleansWorkspaceOnCompileFailure(t *testing.T) {
	t.Parallel()

	marker := filepath.Join(t.TempDir(), "invocations")
	outputPath := filepath.Join(t.TempDir(), "report.pdf")

	builder, err := New(outputPath, Options{Compiler: fakeCompiler(t, marker, 2)})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	var workDir string
	err = builder.Run(func(doc *Document) error {
		workDir = doc.workDir
		return doc.Append("content")
	})
	if !errors.Is(err, ErrCompile) {
		t.Fatalf("Run error = %v, want ErrCompile", err)
	}

	if _, err := os.Stat(workDir); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("workspace should be removed, stat err = %v", err)
	}
}

func TestCompileFailureSurfacesOutput(t *testing.T) {
	t.Parallel()

	marker := filepath.Join(t.TempDir(), "invocations")
	builder, err := New(filepath.Join(t.TempDir(), "report.pdf"), Options{
		Compiler: fakeCompiler(t, marker, 2),
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	err = builder.Run(func(doc *Document) error {
		return doc.Append("content")
	})
	if !errors.Is(err, ErrCompile) {
		t.Fatalf("Run error = %v, want ErrCompile", err)
	}

	var compileErr *CompileError
	if !errors.As(err, &compileErr) {
		t.Fatalf("Run error = %v, want CompileError detail", err)
	}

	if !strings.Contains(compileErr.Output, "fake compiler processed") {
		t.Fatalf("compiler output not captured: %+v", compileErr)
	}
}

func TestUnwritableOutputDirFailsBeforeSpawn(t *testing.T) {
	t.Parallel()

	if os.Geteuid() == 0 {
		t.Skip("directory permissions are not enforced for root")
	}

	readOnlyDir := filepath.Join(t.TempDir(), "ro")
	if err := os.Mkdir(readOnlyDir, 0o500); err != nil {
		t.Fatalf("mkdir read-only dir: %v", err)
	}

	marker := filepath.Join(t.TempDir(), "invocations")
	builder, err := New(filepath.Join(readOnlyDir, "report.pdf"), Options{
		Compiler: fakeCompiler(t, marker, 0),
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	err = builder.Run(func(doc *Document) error {
		return doc.Append("content")
	})
	if !errors.Is(err, ErrOutputPath) {
		t.Fatalf("Run error = %v, want ErrOutputPath", err)
	}

	if got := invocationCount(t, marker); got != 0 {
		t.Fatalf("compiler invocations = %d, want 0", got)
	}
}

func TestCompilerNotFound(t *testing.T) {
	t.Parallel()

	builder, err := New(filepath.Join(t.TempDir(), "report.pdf"), Options{
		Compiler: "texdoc-no-such-compiler-binary",
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	err = builder.Run(func(doc *Document) error {
		return doc.Append("content")
	})
	if !errors.Is(err, ErrCompilerNotFound) {
		t.Fatalf("Run error = %v, want ErrCompilerNotFound", err)
	}
}

func TestKeepSourceSurvivesCompileFailure(t *testing.T) {
	t.Parallel()

	outDir := t.TempDir()
	marker := filepath.Join(t.TempDir(), "invocations")
	builder, err := New(filepath.Join(outDir, "report.pdf"), Options{
		Compiler:   fakeCompiler(t, marker, 2),
		KeepSource: true,
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	err = builder.Run(func(doc *Document) error {
		return doc.Append("content")
	})
	if !errors.Is(err, ErrCompile) {
		t.Fatalf("Run error = %v, want ErrCompile", err)
	}

	if _, err := os.Stat(filepath.Join(outDir, "report.tex")); err != nil {
		t.Fatalf("kept source missing: %v", err)
	}
}

func TestRunRoundTripsFragmentOrder(t *testing.T) {
	t.Parallel()

	outDir := t.TempDir()
	marker := filepath.Join(t.TempDir(), "invocations")
	builder, err := New(filepath.Join(outDir, "report.pdf"), Options{
		Compiler:   fakeCompiler(t, marker, 0),
		KeepSource: true,
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	err = builder.Run(func(doc *Document) error {
		if err := doc.Append("first fragment"); err != nil {
			return err
		}

		return doc.Append("second fragment")
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(outDir, "report.tex"))
	if err != nil {
		t.Fatalf("read kept source: %v", err)
	}

	source := string(data)
	first := strings.Index(source, "first fragment")
	second := strings.Index(source, "second fragment")
	if first < 0 || second < 0 || second < first {
		t.Fatalf("fragment order broken in source:\n%s", source)
	}

	if !strings.HasSuffix(strings.TrimSpace(source), "\\end{document}") {
		t.Fatalf("source does not end document:\n%s", source)
	}
}

func TestDocumentClosedAfterScope(t *testing.T) {
	t.Parallel()

	marker := filepath.Join(t.TempDir(), "invocations")
	builder, err := New(filepath.Join(t.TempDir(), "report.pdf"), Options{
		Compiler: fakeCompiler(t, marker, 0),
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	var escaped *Document
	err = builder.Run(func(doc *Document) error {
		escaped = doc
		return doc.Append("content")
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if err := escaped.Append("late write"); !errors.Is(err, ErrDocumentClosed) {
		t.Fatalf("Append after scope = %v, want ErrDocumentClosed", err)
	}
}

func TestCompileTimeout(t *testing.T) {
	t.Parallel()

	builder, err := New(filepath.Join(t.TempDir(), "report.pdf"), Options{
		Compiler:       slowCompiler(t),
		CompileTimeout: 200 * time.Millisecond,
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	start := time.Now()
	err = builder.Run(func(doc *Document) error {
		return doc.Append("content")
	})
	if !errors.Is(err, ErrCompile) {
		t.Fatalf("Run error = %v, want ErrCompile", err)
	}

	if elapsed := time.Since(start); elapsed > 5*time.Second {
		t.Fatalf("timeout not enforced, run took %s", elapsed)
	}
}

func TestJobNameDerivation(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"out/report.pdf": "report",
		"report.pdf":     "report",
		"report":         "report",
		".pdf":           "document",
	}

	for input, want := range cases {
		if got := jobName(input); got != want {
			t.Fatalf("jobName(%q) = %q, want %q", input, got, want)
		}
	}
}
