package cps

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

// sexpPrinter renders terms in the debug S-expression format.
type sexpPrinter struct {
	w      io.Writer
	indent int
	prefix string
}

// ToSExp writes the S-expression rendering of t to w.
func ToSExp(w io.Writer, t Term) {
	p := &sexpPrinter{w: w}
	p.write(p.prefix + strings.Repeat(" ", p.indent))
	p.term(t)
}

// SexpString renders t to a string.
func SexpString(t Term) string {
	var b strings.Builder
	ToSExp(&b, t)
	return b.String()
}

func (p *sexpPrinter) write(s string) {
	io.WriteString(p.w, s)
}

func (p *sexpPrinter) newline() {
	p.write("\n" + p.prefix + strings.Repeat(" ", p.indent))
}

func (p *sexpPrinter) term(t Term) {
	switch t := t.(type) {
	case *LetV:
		p.write("(let-value (" + t.Name + " ")
		p.value(t.Val)
		p.indent += 4
		p.write(")")
		p.newline()
		p.term(t.In)
		p.write(")")
		p.indent -= 4
	case *LetT:
		p.write(fmt.Sprintf("(pi-%d (%s %s)", t.Field, t.Name, t.Tuple))
		p.indent += 4
		p.newline()
		p.term(t.In)
		p.write(")")
		p.indent -= 4
	case *LetP:
		p.write("(let-prim (" + t.Name + " (" + t.Op + " " + strings.Join(t.Args, " ") + ")")
		p.indent += 4
		p.write(")")
		p.newline()
		p.term(t.In)
		p.write(")")
		p.indent -= 4
	case *LetC:
		p.write("(let-cont (" + t.Name + " (" + strings.Join(t.Params, " ") + ")")
		p.indent += 4
		p.write(")")
		p.newline()
		p.term(t.Body)
		p.newline()
		p.term(t.In)
		p.write(")")
		p.indent -= 4
	case *LetF:
		p.write("(let-func " + t.Name + " " + t.Cont + " (" + strings.Join(t.Params, " ") + ")")
		p.indent += 4
		p.newline()
		p.term(t.Body)
		p.newline()
		p.term(t.In)
		p.write(")")
		p.indent -= 4
	case *AppC:
		p.write("(apply-cont " + t.Cont + " " + t.Arg + ")")
	case *AppF:
		p.write("(apply-func " + t.Fun + " " + t.Cont + " " + strings.Join(t.Args, " ") + ")")
	case *Halt:
		p.write("(halt " + t.Name + ")")
	}
}

func (p *sexpPrinter) value(v Value) {
	switch v := v.(type) {
	case *F64:
		p.write(strconv.FormatFloat(v.Val, 'g', -1, 64))
	case *Bool:
		if v.Val {
			p.write("true")
		} else {
			p.write("false")
		}
	case *Tuple:
		p.write("(")
		for _, field := range v.Fields {
			p.write(field + ", ")
		}
		p.write(")")
	}
}
