// Command golox-conformance runs every fixture under testdata/scripts
// through the golox pipeline and reports pass/fail against the checked-in
// golden files, as a standalone tool independent of `go test`.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"

	"github.com/loxlang/golox/internal/golden"
)

const width = 100

var update = flag.Bool("update", false, "rewrite golden .out/.err files with actual output instead of comparing")

type result struct {
	name   string
	passed bool
	diffs  []string
}

func main() {
	flag.Parse()

	dir := "testdata/scripts"
	entries, err := os.ReadDir(dir)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	var results []result
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".lox") {
			continue
		}
		results = append(results, runFixture(dir, strings.TrimSuffix(e.Name(), ".lox")))
	}

	failed := printResults(results)
	if failed > 0 {
		os.Exit(1)
	}
}

func runFixture(dir, name string) result {
	src, err := os.ReadFile(filepath.Join(dir, name+".lox"))
	if err != nil {
		return result{name: name, diffs: []string{err.Error()}}
	}

	got := golden.Run(string(src))
	outPath := filepath.Join(dir, name+".out")
	errPath := filepath.Join(dir, name+".err")

	if *update {
		var diffs []string
		if err := golden.WriteFile(outPath, got.Stdout); err != nil {
			diffs = append(diffs, err.Error())
		}
		if err := golden.WriteFile(errPath, got.Stderr); err != nil {
			diffs = append(diffs, err.Error())
		}
		return result{name: name, passed: len(diffs) == 0, diffs: diffs}
	}

	var diffs []string
	if d, err := golden.Compare(outPath, got.Stdout); err != nil {
		diffs = append(diffs, err.Error())
	} else if d != "" {
		diffs = append(diffs, "stdout mismatch (-want +got):\n"+d)
	}
	if d, err := golden.Compare(errPath, got.Stderr); err != nil {
		diffs = append(diffs, err.Error())
	} else if d != "" {
		diffs = append(diffs, "stderr mismatch (-want +got):\n"+d)
	}

	return result{name: name, passed: len(diffs) == 0, diffs: diffs}
}

func printResults(results []result) int {
	failed := 0
	for _, r := range results {
		label := color.GreenString("passed")
		if !r.passed {
			label = color.RedString("failed")
			failed++
		}
		spacing := strings.Repeat(" ", max(1, width-len("  [passed] ")-len(r.name)))
		fmt.Printf("  [%s] %s%s\n", label, r.name, spacing)
		for _, d := range r.diffs {
			fmt.Println(d)
		}
	}

	fmt.Println(strings.Repeat("=", width))
	fmt.Printf("Tests run: %d  Succeeded: %d  Failed: %d\n", len(results), len(results)-failed, failed)
	return failed
}
