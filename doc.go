// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/texdoc

/*
Package texdoc builds LaTeX source text from Go and compiles it with an
external LaTeX compiler inside a scoped temporary workspace.

The central type is [Builder]: it owns one output artifact path and runs the
caller body against a [Document] handle. The compiler is invoked at most once
per scope, and only when the body completes without error; the temporary
workspace with the generated source and all compiler intermediates is removed
on every exit path.

Basic report build:

	builder, err := texdoc.New("report.pdf", texdoc.Options{})
	if err != nil {
		return err
	}

	err = builder.Run(func(doc *texdoc.Document) error {
		if err := doc.SetTitle("Weekly Report", "automated"); err != nil {
			return err
		}

		if err := doc.Section("Results"); err != nil {
			return err
		}

		return doc.Append("All systems nominal.")
	})
	if err != nil {
		return err
	}

Append a table from named columns:

	table := texdoc.TableFromMap(map[string][]string{
		"a": {"1", "2"},
		"b": {"3", "4"},
	})

	err = doc.AppendTable(table, "Counts", texdoc.TableStyle{})

Keep the generated source next to the output for debugging:

	builder, err := texdoc.New("report.pdf", texdoc.Options{KeepSource: true})

Use built-in preambles:

	names := texdoc.BuiltinPreambleNames()
	fmt.Println(strings.Join(names, ", "))

	tpl, err := texdoc.BuiltinPreamble("article")
	if err != nil {
		return err
	}

	fmt.Println(len(tpl) > 0)

Compilation failures surface the captured compiler output:

	var compileErr *texdoc.CompileError
	if errors.As(err, &compileErr) {
		fmt.Println(compileErr.Output)
	}
*/
package texdoc
