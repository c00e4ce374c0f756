// Package golox implements the testable half of the CLI entry point:
// one argument runs a script, zero arguments opens the REPL, and two or
// more is a usage error, wrapped as a mainer.Cmd so tests can drive it
// with fake Stdio instead of spawning a process. golox has no
// subcommands or flags, so Cmd.Main skips mainer.Parser entirely and
// just inspects the argument count.
package golox

import (
	"fmt"
	"os"

	"github.com/mna/mainer"

	"github.com/loxlang/golox/internal/config"
	"github.com/loxlang/golox/internal/diag"
	"github.com/loxlang/golox/internal/interp"
	"github.com/loxlang/golox/internal/parser"
	"github.com/loxlang/golox/internal/replio"
	"github.com/loxlang/golox/internal/resolver"
	"github.com/loxlang/golox/internal/scanner"
	"github.com/loxlang/golox/internal/token"
)

const (
	exitUsage   mainer.ExitCode = 64
	exitCompile mainer.ExitCode = 65
	exitRuntime mainer.ExitCode = 70
)

// Cmd is golox's entry point, usable both from cmd/golox/main.go and
// directly from tests.
type Cmd struct{}

// Main dispatches on argument count: run a script, open the REPL, or
// report a usage error.
func (c *Cmd) Main(args []string, stdio mainer.Stdio) mainer.ExitCode {
	// args[0] is the program name, as with os.Args.
	scriptArgs := args[1:]

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(stdio.Stderr, err)
		cfg = config.Config{}
	}

	switch len(scriptArgs) {
	case 0:
		r := &replio.REPL{
			Stdout:      stdio.Stdout,
			Stderr:      stdio.Stderr,
			HistoryFile: cfg.HistoryFile,
			NoColor:     cfg.NoColor,
		}
		if err := r.Run(); err != nil {
			fmt.Fprintln(stdio.Stderr, err)
			return exitRuntime
		}
		return mainer.Success
	case 1:
		return c.runFile(scriptArgs[0], stdio, cfg)
	default:
		fmt.Fprintln(stdio.Stderr, "Usage: jlox [script]")
		return exitUsage
	}
}

func (c *Cmd) runFile(path string, stdio mainer.Stdio, cfg config.Config) mainer.ExitCode {
	src, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintln(stdio.Stderr, err)
		return exitUsage
	}

	isTTY := false
	if f, ok := stdio.Stderr.(*os.File); ok {
		isTTY = diag.IsTerminal(f)
	}
	printer := diag.NewPrinter(stdio.Stderr, isTTY, cfg.NoColor)

	var hadErr bool
	report := func(tok token.Token, msg string) {
		hadErr = true
		printer.Println(diag.FormatCompileError(tok, msg))
	}

	toks := scanner.New(string(src), func(line int, msg string) {
		hadErr = true
		printer.Println(diag.FormatScanError(line, msg))
	}).Scan()

	p := parser.New(toks, report)
	prog := p.Parse()
	if hadErr || p.HadError() {
		return exitCompile
	}

	res := resolver.New(report)
	res.Resolve(prog)
	if hadErr || res.HadError() {
		return exitCompile
	}

	it := interp.New(stdio.Stdout, res.Locals())
	if err := it.Run(prog); err != nil {
		if rerr, ok := err.(*interp.RuntimeError); ok {
			printer.Println(diag.FormatRuntimeError(rerr.Message, rerr.Token.Line))
		} else {
			printer.Println(err.Error())
		}
		return exitRuntime
	}
	return mainer.Success
}
