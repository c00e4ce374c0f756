package interp_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/loxlang/golox/internal/interp"
	"github.com/loxlang/golox/internal/parser"
	"github.com/loxlang/golox/internal/resolver"
	"github.com/loxlang/golox/internal/scanner"
	"github.com/loxlang/golox/internal/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// run scans, parses, resolves and interprets src, requiring every stage
// to succeed, and returns everything it printed.
func run(t *testing.T, src string) string {
	t.Helper()
	toks := scanner.New(src, nil).Scan()

	var errs []string
	report := func(tok token.Token, msg string) { errs = append(errs, msg) }

	p := parser.New(toks, report)
	prog := p.Parse()
	require.False(t, p.HadError(), strings.Join(errs, "; "))

	r := resolver.New(report)
	r.Resolve(prog)
	require.False(t, r.HadError(), strings.Join(errs, "; "))

	var out bytes.Buffer
	it := interp.New(&out, r.Locals())
	require.NoError(t, it.Run(prog))
	return out.String()
}

func TestArithmeticPrecedenceAndPrint(t *testing.T) {
	assert.Equal(t, "7\n", run(t, `print 1 + 2 * 3;`))
}

func TestGlobalVariableAndStringConcat(t *testing.T) {
	assert.Equal(t, "Hello, world\n", run(t, `var a = "Hello, "; var b = "world"; print a + b;`))
}

func TestClosureCapturesByReference(t *testing.T) {
	src := `
		fun makeCounter() {
			var i = 0;
			fun count() {
				i = i + 1;
				print i;
			}
			return count;
		}
		var c = makeCounter();
		c(); c(); c();
	`
	assert.Equal(t, "1\n2\n3\n", run(t, src))
}

func TestResolverShadowingPrintsGlobalBothTimes(t *testing.T) {
	src := `
		var a = "global";
		{
			fun showA() { print a; }
			showA();
			var a = "block";
			showA();
		}
	`
	assert.Equal(t, "global\nglobal\n", run(t, src))
}

func TestClassInheritanceAndSuper(t *testing.T) {
	src := `
		class A { method() { print "A"; } }
		class B < A { method() { super.method(); print "B"; } }
		B().method();
	`
	assert.Equal(t, "A\nB\n", run(t, src))
}

func TestInitializerReturnsThis(t *testing.T) {
	src := `
		class P { init(x) { this.x = x; } }
		print P(7).x;
	`
	assert.Equal(t, "7\n", run(t, src))
}

func TestDivisionByZeroProducesInfinityNotError(t *testing.T) {
	assert.Equal(t, "+Inf\n", run(t, `print 1 / 0;`))
}

func TestStringifyTruthAndNil(t *testing.T) {
	assert.Equal(t, "true\nfalse\nnil\n", run(t, `print true; print false; print nil;`))
}

func TestCallingANonCallableIsARuntimeError(t *testing.T) {
	toks := scanner.New(`var a = 1; a();`, nil).Scan()
	p := parser.New(toks, func(token.Token, string) {})
	prog := p.Parse()
	require.False(t, p.HadError())

	r := resolver.New(nil)
	r.Resolve(prog)
	require.False(t, r.HadError())

	var out bytes.Buffer
	it := interp.New(&out, r.Locals())
	err := it.Run(prog)
	require.Error(t, err)
	rerr, ok := err.(*interp.RuntimeError)
	require.True(t, ok)
	assert.Equal(t, "Can only call functions and classes.", rerr.Message)
}

func TestArityMismatchIsARuntimeError(t *testing.T) {
	toks := scanner.New(`fun f(a, b) { return a + b; } f(1);`, nil).Scan()
	p := parser.New(toks, func(token.Token, string) {})
	prog := p.Parse()
	require.False(t, p.HadError())

	r := resolver.New(nil)
	r.Resolve(prog)
	require.False(t, r.HadError())

	var out bytes.Buffer
	it := interp.New(&out, r.Locals())
	err := it.Run(prog)
	require.Error(t, err)
	assert.Equal(t, "Expected 2 arguments but got 1.", err.(*interp.RuntimeError).Message)
}

func TestClockIsRegisteredAsANativeWithZeroArity(t *testing.T) {
	// clock() should never be a parse/resolve/runtime error, and its
	// result should be a number (so comparing it with >= does not error).
	out := run(t, `var t = clock(); print t >= 0;`)
	assert.Equal(t, "true\n", out)
}
