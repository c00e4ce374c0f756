// Package diag formats and colorizes the two families of diagnostics a
// Lox run can produce: compile-time errors (scan/parse/resolve) and
// runtime errors. Formatting here is intentionally dumb string
// assembly — the actual error tiers and recovery live in the
// scanner/parser/resolver/interp packages, which report through a
// callback rather than printing directly. Colorizing uses
// github.com/fatih/color, with github.com/mattn/go-isatty and
// github.com/mattn/go-colorable to detect and support terminals.
package diag

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"

	"github.com/loxlang/golox/internal/token"
)

// FormatCompileError renders a scan/parse/resolve error as
// `[line N] Error<where>: <message>`, where <where> is " at end" for an
// EOF token, " at '<lexeme>'" otherwise, or empty when tok is the zero
// Token (scanner errors have no token).
func FormatCompileError(tok token.Token, message string) string {
	where := ""
	if tok.Kind == token.EOF {
		where = " at end"
	} else if tok.Lexeme != "" {
		where = fmt.Sprintf(" at '%s'", tok.Lexeme)
	}
	return fmt.Sprintf("[line %d] Error%s: %s", tok.Line, where, message)
}

// FormatScanError renders a lexical error, which has no token to quote.
func FormatScanError(line int, message string) string {
	return fmt.Sprintf("[line %d] Error: %s", line, message)
}

// FormatRuntimeError renders a runtime error with the format golox has
// always used: `"<message> \n [ Line : <line> ]"`, including the space
// before the newline.
func FormatRuntimeError(message string, line int) string {
	return fmt.Sprintf("%s \n [ Line : %d ]", message, line)
}

// Printer writes diagnostics to a stream, colorizing them red when the
// stream is a terminal (and color hasn't been disabled).
type Printer struct {
	w       io.Writer
	errFn   func(format string, a ...any) string
}

// NewPrinter wraps w. Messages are colored red only when isTTY is true
// and noColor is false. w is written to as given: NewPrinter does not
// wrap it through go-colorable (see Colorable for that).
func NewPrinter(w io.Writer, isTTY bool, noColor bool) *Printer {
	red := color.New(color.FgRed).SprintfFunc()
	p := &Printer{w: w, errFn: red}
	if noColor || !isTTY {
		p.errFn = fmt.Sprintf
	}
	return p
}

// IsTerminal reports whether f looks like an interactive terminal.
func IsTerminal(f *os.File) bool {
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// Colorable wraps f so ANSI sequences render correctly even on legacy
// Windows consoles; elsewhere it returns f unchanged.
func Colorable(f *os.File) io.Writer {
	return colorable.NewColorable(f)
}

// Println prints message as an error line, colorized per NewPrinter's
// settings.
func (p *Printer) Println(message string) {
	fmt.Fprintln(p.w, p.errFn("%s", message))
}
