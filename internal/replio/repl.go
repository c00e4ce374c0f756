// Package replio implements golox's interactive prompt: the zero-argument
// mode, reading one line at a time, executing each against one
// persistent global environment, and terminating on `exit` or
// end-of-stream. Line editing and history use
// github.com/chzyer/readline; the prompt is colorized with
// github.com/fatih/color.
package replio

import (
	"fmt"
	"io"

	"github.com/chzyer/readline"
	"github.com/fatih/color"

	"github.com/loxlang/golox/internal/ast"
	"github.com/loxlang/golox/internal/diag"
	"github.com/loxlang/golox/internal/interp"
	"github.com/loxlang/golox/internal/parser"
	"github.com/loxlang/golox/internal/resolver"
	"github.com/loxlang/golox/internal/scanner"
	"github.com/loxlang/golox/internal/token"
)

// REPL drives the interactive prompt.
type REPL struct {
	Stdout      io.Writer
	Stderr      io.Writer
	HistoryFile string
	NoColor     bool
}

// prompt returns the colorized prompt string, or plain text if NoColor
// is set.
func (r *REPL) prompt() string {
	if r.NoColor {
		return "> "
	}
	return color.New(color.FgGreen, color.Bold).Sprint("> ")
}

// Run reads lines until `exit` or EOF, interpreting each one against a
// single interpreter instance so variables and functions persist across
// lines. It never returns a non-nil error for a Lox-level mistake —
// those are printed and the loop continues, clearing the error flags
// per line instead of exiting the process the way the non-REPL path
// does.
func (r *REPL) Run() error {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          r.prompt(),
		HistoryFile:     r.HistoryFile,
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return err
	}
	defer rl.Close()

	it := interp.New(r.Stdout, nil)

	for {
		line, err := rl.Readline()
		if err == readline.ErrInterrupt {
			continue
		}
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		if line == "exit" {
			return nil
		}
		if line == "" {
			continue
		}
		r.runLine(it, line)
	}
}

func (r *REPL) runLine(it *interp.Interpreter, line string) {
	var hadErr bool
	report := func(tok token.Token, msg string) {
		hadErr = true
		fmt.Fprintln(r.Stderr, diag.FormatCompileError(tok, msg))
	}

	toks := scanner.New(line, func(ln int, msg string) {
		hadErr = true
		fmt.Fprintln(r.Stderr, diag.FormatScanError(ln, msg))
	}).Scan()

	p := parser.New(toks, report)
	prog := p.Parse()
	if hadErr || p.HadError() {
		return
	}

	res := resolver.New(report)
	res.Resolve(prog)
	if hadErr || res.HadError() {
		return
	}

	runWithLocals(it, prog, res.Locals(), r.Stderr)
}

// runWithLocals re-runs each REPL line's scope-depth table against the
// single long-lived interpreter (so globals persist across lines) while
// still using the fresh resolution computed for this line's AST nodes.
func runWithLocals(it *interp.Interpreter, prog *ast.Program, locals map[ast.Expr]int, stderr io.Writer) {
	it.MergeLocals(locals)
	if err := it.Run(prog); err != nil {
		if rerr, ok := err.(*interp.RuntimeError); ok {
			fmt.Fprintln(stderr, diag.FormatRuntimeError(rerr.Message, rerr.Token.Line))
			return
		}
		fmt.Fprintln(stderr, err.Error())
	}
}
