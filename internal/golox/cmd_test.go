package golox_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/mna/mainer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/loxlang/golox/internal/golox"
)

func writeScript(t *testing.T, src string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "script.lox")
	require.NoError(t, os.WriteFile(path, []byte(src), 0o644))
	return path
}

func TestRunningAScriptPrintsToStdoutAndExitsZero(t *testing.T) {
	path := writeScript(t, `print 1 + 2 * 3;`)

	var stdout, stderr bytes.Buffer
	c := golox.Cmd{}
	code := c.Main([]string{"golox", path}, mainer.Stdio{Stdout: &stdout, Stderr: &stderr})

	assert.Equal(t, mainer.Success, code)
	assert.Equal(t, "7\n", stdout.String())
	assert.Empty(t, stderr.String())
}

func TestTooManyArgumentsIsUsageError(t *testing.T) {
	var stdout, stderr bytes.Buffer
	c := golox.Cmd{}
	code := c.Main([]string{"golox", "a.lox", "b.lox"}, mainer.Stdio{Stdout: &stdout, Stderr: &stderr})

	assert.Equal(t, mainer.ExitCode(64), code)
	assert.Contains(t, stderr.String(), "Usage: jlox [script]")
}

func TestParseErrorExitsWithCompileErrorCode(t *testing.T) {
	path := writeScript(t, `var ;`)

	var stdout, stderr bytes.Buffer
	c := golox.Cmd{}
	code := c.Main([]string{"golox", path}, mainer.Stdio{Stdout: &stdout, Stderr: &stderr})

	assert.Equal(t, mainer.ExitCode(65), code)
	assert.NotEmpty(t, stderr.String())
}

func TestRuntimeErrorExitsWithRuntimeErrorCode(t *testing.T) {
	path := writeScript(t, `var a = 1; a();`)

	var stdout, stderr bytes.Buffer
	c := golox.Cmd{}
	code := c.Main([]string{"golox", path}, mainer.Stdio{Stdout: &stdout, Stderr: &stderr})

	assert.Equal(t, mainer.ExitCode(70), code)
	assert.Contains(t, stderr.String(), "Can only call functions and classes.")
}

func TestNonexistentScriptIsUsageError(t *testing.T) {
	var stdout, stderr bytes.Buffer
	c := golox.Cmd{}
	code := c.Main([]string{"golox", "/nonexistent/path.lox"}, mainer.Stdio{Stdout: &stdout, Stderr: &stderr})

	assert.Equal(t, mainer.ExitCode(64), code)
}
