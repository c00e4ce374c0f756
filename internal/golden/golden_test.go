package golden_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/loxlang/golox/internal/golden"
)

// TestScripts runs every testdata/scripts/*.lox fixture through the full
// pipeline and diffs stdout/stderr against the matching .out/.err golden
// files.
func TestScripts(t *testing.T) {
	dir := "../../testdata/scripts"
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("reading %s: %v", dir, err)
	}

	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".lox") {
			continue
		}
		name := strings.TrimSuffix(e.Name(), ".lox")
		t.Run(name, func(t *testing.T) {
			src, err := os.ReadFile(filepath.Join(dir, e.Name()))
			if err != nil {
				t.Fatalf("reading fixture: %v", err)
			}
			result := golden.Run(string(src))
			golden.DiffOutput(t, filepath.Join(dir, name+".out"), result.Stdout)
			golden.DiffOutput(t, filepath.Join(dir, name+".err"), result.Stderr)
		})
	}
}
