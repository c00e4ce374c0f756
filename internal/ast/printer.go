package ast

import "strings"

// Source reconstructs valid Lox source text for an expression: unlike
// String() (a Lisp-style debug form), Source() emits syntax the parser
// can re-consume, so scanning then re-parsing a pretty-printed AST
// produces a structurally identical tree, apart from the Grouping nodes
// that the parentheses it adds around binary and logical operands
// introduce.
func Source(e Expr) string {
	switch e := e.(type) {
	case *Literal:
		if e.Value == nil {
			return "nil"
		}
		switch v := e.Value.(type) {
		case string:
			return "\"" + v + "\""
		case bool:
			if v {
				return "true"
			}
			return "false"
		default:
			return (&Literal{Value: v}).String()
		}
	case *Unary:
		return e.Op.Lexeme + Source(e.Right)
	case *Binary:
		return "(" + Source(e.Left) + " " + e.Op.Lexeme + " " + Source(e.Right) + ")"
	case *Grouping:
		return "(" + Source(e.Inner) + ")"
	case *Variable:
		return e.Name.Lexeme
	case *Assign:
		return e.Name.Lexeme + " = " + Source(e.Value)
	case *Logical:
		return "(" + Source(e.Left) + " " + e.Op.Lexeme + " " + Source(e.Right) + ")"
	case *Call:
		args := make([]string, len(e.Args))
		for i, a := range e.Args {
			args[i] = Source(a)
		}
		return Source(e.Callee) + "(" + strings.Join(args, ", ") + ")"
	case *Get:
		return Source(e.Object) + "." + e.Name.Lexeme
	case *Set:
		return Source(e.Object) + "." + e.Name.Lexeme + " = " + Source(e.Value)
	case *This:
		return "this"
	case *Super:
		return "super." + e.Method.Lexeme
	default:
		return e.String()
	}
}

// StmtSource reconstructs valid Lox source text for a statement.
func StmtSource(s Stmt) string {
	switch s := s.(type) {
	case *Expression:
		return Source(s.Expr) + ";"
	case *Print:
		return "print " + Source(s.Expr) + ";"
	case *Var:
		if s.Initializer == nil {
			return "var " + s.Name.Lexeme + ";"
		}
		return "var " + s.Name.Lexeme + " = " + Source(s.Initializer) + ";"
	case *Block:
		var sb strings.Builder
		sb.WriteString("{ ")
		for _, st := range s.Stmts {
			sb.WriteString(StmtSource(st) + " ")
		}
		sb.WriteString("}")
		return sb.String()
	case *If:
		out := "if (" + Source(s.Condition) + ") " + StmtSource(s.Then)
		if s.Else != nil {
			out += " else " + StmtSource(s.Else)
		}
		return out
	case *While:
		return "while (" + Source(s.Condition) + ") " + StmtSource(s.Body)
	case *Function:
		names := make([]string, len(s.Params))
		for i, p := range s.Params {
			names[i] = p.Lexeme
		}
		var sb strings.Builder
		sb.WriteString("fun " + s.Name.Lexeme + "(" + strings.Join(names, ", ") + ") { ")
		for _, st := range s.Body {
			sb.WriteString(StmtSource(st) + " ")
		}
		sb.WriteString("}")
		return sb.String()
	case *Return:
		if s.Value == nil {
			return "return;"
		}
		return "return " + Source(s.Value) + ";"
	case *Class:
		var sb strings.Builder
		sb.WriteString("class " + s.Name.Lexeme)
		if s.Superclass != nil {
			sb.WriteString(" < " + s.Superclass.Name.Lexeme)
		}
		sb.WriteString(" { ")
		for _, m := range s.Methods {
			// Methods are declared without the `fun` keyword.
			sb.WriteString(strings.TrimPrefix(StmtSource(m), "fun ") + " ")
		}
		sb.WriteString("}")
		return sb.String()
	default:
		return s.String()
	}
}

// ProgramSource reconstructs the whole program's source text.
func ProgramSource(p *Program) string {
	var sb strings.Builder
	for _, s := range p.Stmts {
		sb.WriteString(StmtSource(s) + "\n")
	}
	return sb.String()
}
