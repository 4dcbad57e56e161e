package ast

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

// sexpPrinter renders expressions in the debug S-expression format. The
// format is write-only; nothing parses it back.
type sexpPrinter struct {
	w      io.Writer
	indent int
	prefix string
}

// ToSExp writes the S-expression rendering of e to w.
func ToSExp(w io.Writer, e Expr) {
	p := &sexpPrinter{w: w}
	p.write(p.prefix + strings.Repeat(" ", p.indent))
	p.expr(e)
}

// SexpString renders e to a string, with every line prefixed. Used by the
// diagnostics path to attach the offending node to a type error.
func SexpString(e Expr, indent int, prefix string) string {
	var b strings.Builder
	p := &sexpPrinter{w: &b, indent: indent, prefix: prefix}
	p.write(prefix + strings.Repeat(" ", indent))
	p.expr(e)
	return b.String()
}

func (p *sexpPrinter) write(s string) {
	io.WriteString(p.w, s)
}

func (p *sexpPrinter) newline() {
	p.write("\n" + p.prefix + strings.Repeat(" ", p.indent))
}

func (p *sexpPrinter) expr(e Expr) {
	switch e := e.(type) {
	case *F64:
		p.write(strconv.FormatFloat(e.Val, 'g', -1, 64))
	case *Bool:
		if e.Val {
			p.write("true")
		} else {
			p.write("false")
		}
	case *Var:
		p.write(e.Name)
	case *Prim:
		p.write("(" + e.Op + " ")
		for _, arg := range e.Args {
			p.expr(arg)
			p.write(" ")
		}
		p.write(")")
	case *Tuple:
		p.write("(")
		for _, field := range e.Fields {
			p.expr(field)
			p.write(", ")
		}
		p.write(")")
	case *Proj:
		p.write(fmt.Sprintf("(pi-%d ", e.Field))
		p.expr(e.Tuple)
		p.write(")")
	case *Let:
		p.write("(let (" + e.Var + " ")
		p.expr(e.Val)
		p.write(") ")
		p.indent += 4
		p.newline()
		p.expr(e.Body)
		p.write(")")
		p.indent -= 4
	case *Lam:
		p.write("(lambda (")
		for _, param := range e.Params {
			p.write(param + " ")
		}
		p.indent += 4
		p.write(")")
		p.newline()
		p.expr(e.Body)
		p.write(")")
		p.indent -= 4
	case *App:
		p.write("(")
		p.expr(e.Fun)
		p.write(" ")
		for _, arg := range e.Args {
			p.expr(arg)
			p.write(" ")
		}
		p.write(")")
	case *Cond:
		p.write("(if ")
		p.expr(e.Pred)
		p.indent += 4
		p.newline()
		p.expr(e.Then)
		p.newline()
		p.expr(e.Else)
		p.write(")")
		p.indent -= 4
	}
}
