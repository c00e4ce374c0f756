package interp

import (
	"fmt"

	"github.com/loxlang/golox/internal/token"
)

// RuntimeError is a Lox-level runtime error: an ill-typed operand, an
// undefined variable, calling a non-callable, etc. Evaluation panics
// with one of these; Interpreter.Run recovers it at a single boundary
// and re-panics anything else, so the interpreter stays usable as a
// library — callers get a returned error rather than a killed process,
// and can run multiple scripts in one process.
type RuntimeError struct {
	Token   token.Token
	Message string
}

func (e *RuntimeError) Error() string { return e.Message }

func throw(tok token.Token, format string, args ...any) {
	panic(&RuntimeError{Token: tok, Message: fmt.Sprintf(format, args...)})
}
