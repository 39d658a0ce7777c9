// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/texdoc

package texdoc

import "errors"

var (
	// ErrEmptyOutputPath is returned when builder is constructed without output path.
	ErrEmptyOutputPath = errors.New("empty output path")
	// ErrWorkspace is returned when temporary workspace creation fails.
	ErrWorkspace = errors.New("create temp workspace")
	// ErrWriteSource is returned when generated document source cannot be written.
	ErrWriteSource = errors.New("write document source")
	// ErrOutputPath is returned when output target is not writable.
	ErrOutputPath = errors.New("output path not writable")
	// ErrCompilerNotFound is returned when configured compiler binary is not in PATH.
	ErrCompilerNotFound = errors.New("compiler not found")
	// ErrCompile is returned when external compiler run fails.
	ErrCompile = errors.New("compile document")
	// ErrTableShape is returned when table input is empty or has ragged columns.
	ErrTableShape = errors.New("malformed table shape")
	// ErrDocumentClosed is returned when document is written after its scope ended.
	ErrDocumentClosed = errors.New("document scope already closed")
	// ErrHeaderDone is returned when title or preamble is set after document body started.
	ErrHeaderDone = errors.New("document body already started")
	// ErrNoFigures is returned when figure grid is requested without figure paths.
	ErrNoFigures = errors.New("no figure paths given")
	// ErrUnknownPreamble is returned when requested built-in preamble name is not registered.
	ErrUnknownPreamble = errors.New("unknown built-in preamble")
	// ErrReadPreamble is returned when built-in preamble file loading fails.
	ErrReadPreamble = errors.New("read built-in preamble")
	// ErrParsePreamble is returned when preamble template parsing fails.
	ErrParsePreamble = errors.New("parse preamble template")
	// ErrExecutePreamble is returned when preamble template execution fails.
	ErrExecutePreamble = errors.New("execute preamble template")
)
