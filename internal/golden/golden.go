// Package golden implements a small golden-file test harness for full
// scanner→parser→resolver→interp pipeline runs against `.lox` fixtures,
// comparing produced stdout/stderr against checked-in `.out`/`.err`
// files, using github.com/kylelemons/godebug/diff for a readable
// unified diff on mismatch. A -test.update-golden flag rewrites golden
// files when behavior intentionally changes.
package golden

import (
	"bytes"
	"flag"
	"os"
	"path/filepath"
	"testing"

	"github.com/kylelemons/godebug/diff"

	"github.com/loxlang/golox/internal/diag"
	"github.com/loxlang/golox/internal/interp"
	"github.com/loxlang/golox/internal/parser"
	"github.com/loxlang/golox/internal/resolver"
	"github.com/loxlang/golox/internal/scanner"
	"github.com/loxlang/golox/internal/token"
)

// update, when set via `-test.update-golden`, rewrites golden files with
// the actual output instead of comparing against them.
var update = flag.Bool("test.update-golden", false, "rewrite golden .out/.err files with actual output")

// Result is one pipeline run's captured output.
type Result struct {
	Stdout string
	Stderr string
}

// Run scans, parses, resolves and interprets src, capturing everything
// it would print to stdout/stderr — including diagnostics formatted the
// way cmd/golox formats them, so golden comparisons see exactly what a
// user running the binary would.
func Run(src string) Result {
	var stdout, stderr bytes.Buffer

	var hadErr bool
	toks := scanner.New(src, func(line int, msg string) {
		hadErr = true
		stderr.WriteString(diag.FormatScanError(line, msg) + "\n")
	}).Scan()

	report := func(tok token.Token, msg string) {
		hadErr = true
		stderr.WriteString(diag.FormatCompileError(tok, msg) + "\n")
	}

	p := parser.New(toks, report)
	prog := p.Parse()
	if hadErr || p.HadError() {
		return Result{Stdout: stdout.String(), Stderr: stderr.String()}
	}

	res := resolver.New(report)
	res.Resolve(prog)
	if hadErr || res.HadError() {
		return Result{Stdout: stdout.String(), Stderr: stderr.String()}
	}

	it := interp.New(&stdout, res.Locals())
	if err := it.Run(prog); err != nil {
		if rerr, ok := err.(*interp.RuntimeError); ok {
			stderr.WriteString(diag.FormatRuntimeError(rerr.Message, rerr.Token.Line) + "\n")
		} else {
			stderr.WriteString(err.Error() + "\n")
		}
	}

	return Result{Stdout: stdout.String(), Stderr: stderr.String()}
}

// DiffOutput compares got against the contents of a golden file, failing
// t with a unified diff on mismatch. With -test.update-golden set, it
// rewrites the golden file to got instead of comparing.
func DiffOutput(t *testing.T, goldenPath string, got string) {
	t.Helper()
	if *update {
		if err := WriteFile(goldenPath, got); err != nil {
			t.Fatalf("writing golden file: %v", err)
		}
		return
	}
	d, err := Compare(goldenPath, got)
	if err != nil {
		t.Fatalf("reading golden file %s: %v", goldenPath, err)
	}
	if d != "" {
		t.Errorf("%s mismatch (-want +got):\n%s", goldenPath, d)
	}
}

// Compare reads the golden file at goldenPath and returns a unified diff
// against got ("" if they match). Split out of DiffOutput so non-test
// callers (the golox-conformance CLI) can reuse the same comparison
// without a *testing.T.
func Compare(goldenPath string, got string) (string, error) {
	want, err := os.ReadFile(goldenPath)
	if err != nil {
		return "", err
	}
	return diff.Diff(string(want), got), nil
}

// WriteFile writes got to goldenPath, creating parent directories as
// needed — the update-golden-files path shared by DiffOutput and the
// golox-conformance CLI's own -update flag.
func WriteFile(goldenPath string, got string) error {
	if err := os.MkdirAll(filepath.Dir(goldenPath), 0o755); err != nil {
		return err
	}
	return os.WriteFile(goldenPath, []byte(got), 0o644)
}
