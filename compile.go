// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/texdoc

package texdoc

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// CompileError carries captured compiler output for a failed run.
type CompileError struct {
	// Compiler is the binary name that was invoked.
	Compiler string
	// Detail is the process-level failure description (exit status, signal).
	Detail string
	// Output is the combined stdout and stderr of the compiler.
	Output string
}

// Error formats compiler failure with captured output when present.
func (e *CompileError) Error() string {
	if e.Output == "" {
		return fmt.Sprintf("%s: %s", e.Compiler, e.Detail)
	}

	return fmt.Sprintf("%s: %s\n%s", e.Compiler, e.Detail, e.Output)
}

// compile runs the external compiler over the workspace source and places the
// produced artifact at the builder output path.
func (builder *Builder) compile(workDir, job string) error {
	if err := ensureWritableTarget(builder.outputPath); err != nil {
		return err
	}

	if builder.opt.KeepSource {
		source := filepath.Join(workDir, job+".tex")
		target := filepath.Join(filepath.Dir(builder.outputPath), job+".tex")
		if err := copyFile(source, target); err != nil {
			return fmt.Errorf("%w: %w", ErrOutputPath, err)
		}
	}

	compiler := normalizeCompiler(builder.opt.Compiler)
	compilerPath, err := exec.LookPath(compiler)
	if err != nil {
		return fmt.Errorf("%w: %q", ErrCompilerNotFound, compiler)
	}

	ctx := context.Background()
	if builder.opt.CompileTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, builder.opt.CompileTimeout)
		defer cancel()
	}

	command := exec.CommandContext(ctx, compilerPath, "-interaction=nonstopmode", "-halt-on-error", job+".tex")
	command.Dir = workDir

	var output bytes.Buffer
	command.Stdout = &output
	command.Stderr = &output

	if err := command.Run(); err != nil {
		return fmt.Errorf("%w: %w", ErrCompile, &CompileError{
			Compiler: compiler,
			Detail:   err.Error(),
			Output:   strings.TrimSpace(output.String()),
		})
	}

	product := filepath.Join(workDir, job+".pdf")
	data, err := os.ReadFile(product)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrCompile, &CompileError{
			Compiler: compiler,
			Detail:   "compiler exited 0 but produced no artifact",
			Output:   strings.TrimSpace(output.String()),
		})
	}

	if err := os.WriteFile(builder.outputPath, data, 0o600); err != nil {
		return fmt.Errorf("%w: %w", ErrOutputPath, err)
	}

	return nil
}

// ensureWritableTarget probes the output directory for writability before any
// subprocess is spawned.
func ensureWritableTarget(outputPath string) error {
	dir := filepath.Dir(outputPath)
	probe, err := os.CreateTemp(dir, ".texdoc-probe-*")
	if err != nil {
		return fmt.Errorf("%w %q: %w", ErrOutputPath, dir, err)
	}

	name := probe.Name()
	_ = probe.Close()
	if err := os.Remove(name); err != nil {
		slog.Warn("remove writability probe", "path", name, "error", err)
	}

	return nil
}

// copyFile copies one regular file, overwriting the target.
func copyFile(source, target string) error {
	data, err := os.ReadFile(source)
	if err != nil {
		return fmt.Errorf("read %q: %w", source, err)
	}

	if err := os.WriteFile(target, data, 0o600); err != nil {
		return fmt.Errorf("write %q: %w", target, err)
	}

	return nil
}
