package cps

import (
	"fmt"

	"cpsc/internal/ast"
)

// The tail CPS translation, after Kennedy's one-pass transformation. The
// translator threads a meta-continuation: a host-level function from a
// variable name to "the rest of the program once this subexpression's value
// is named by that variable". The top-level meta-continuation is Halt.

// Kont is the meta-continuation. It is a translation-time construct, not a
// runtime entity.
type Kont func(v string) Term

type translator struct {
	counter int
}

// LowerError reports a surface construct the CPS translation does not
// lower. Conditionals type-check but have no lowering; see the design notes.
type LowerError struct {
	Message string
}

func (e *LowerError) Error() string { return e.Message }

type lowerPanic struct {
	err error
}

// Translate converts a surface expression to a CPS term. Fresh names come
// from a counter local to this call, so results are reproducible.
func Translate(e ast.Expr) (t Term, err error) {
	defer func() {
		if r := recover(); r != nil {
			lp, ok := r.(lowerPanic)
			if !ok {
				panic(r)
			}
			t, err = nil, lp.err
		}
	}()
	tr := &translator{}
	return tr.convert(e, func(v string) Term { return &Halt{Name: v} }), nil
}

func (tr *translator) genvar() string {
	name := fmt.Sprintf("__var_%d", tr.counter)
	tr.counter++
	return name
}

func (tr *translator) convert(e ast.Expr, k Kont) Term {
	switch e := e.(type) {
	case *ast.F64:
		x := tr.genvar()
		return &LetV{Name: x, Val: &F64{Val: e.Val}, In: k(x)}

	case *ast.Bool:
		x := tr.genvar()
		return &LetV{Name: x, Val: &Bool{Val: e.Val}, In: k(x)}

	case *ast.Var:
		return k(e.Name)

	case *ast.Tuple:
		x := tr.genvar()
		if len(e.Fields) == 0 {
			return &LetV{Name: x, Val: &Tuple{}, In: k(x)}
		}
		return tr.tuple(e.Fields, 0, x, nil, k)

	case *ast.Proj:
		x := tr.genvar()
		return tr.convert(e.Tuple, func(z string) Term {
			return &LetT{Name: x, Field: e.Field, Tuple: z, In: k(x)}
		})

	case *ast.Prim:
		x := tr.genvar()
		return tr.args(e.Args, nil, func(ys []string) Term {
			return &LetP{Name: x, Op: e.Op, Args: ys, In: k(x)}
		})

	case *ast.App:
		kont := tr.genvar()
		x := tr.genvar()
		return tr.convert(e.Fun, func(f string) Term {
			return tr.args(e.Args, nil, func(ys []string) Term {
				return &LetC{
					Name:   kont,
					Params: []string{x},
					Body:   k(x),
					In:     &AppF{Fun: f, Cont: kont, Args: ys},
				}
			})
		})

	case *ast.Lam:
		f := tr.genvar()
		kont := tr.genvar()
		body := tr.convert(e.Body, func(y string) Term {
			return &AppC{Cont: kont, Arg: y}
		})
		return &LetF{
			Name:   f,
			Cont:   kont,
			Params: e.Params,
			Body:   body,
			In:     k(f),
			Type:   e.Type(),
		}

	case *ast.Let:
		// The body becomes a continuation j binding the let's variable; the
		// value is translated with "return to j" as its meta-continuation.
		// Beta-cont later substitutes the value's name into the body.
		body := tr.convert(e.Body, k)
		j := tr.genvar()
		val := tr.convert(e.Val, func(y string) Term {
			return &AppC{Cont: j, Arg: y}
		})
		return &LetC{Name: j, Params: []string{e.Var}, Body: body, In: val}

	case *ast.Cond:
		panic(lowerPanic{&LowerError{Message: "conditionals cannot be lowered to CPS"}})
	}
	panic(lowerPanic{&LowerError{Message: fmt.Sprintf("unhandled expression %T", e)}})
}

// tuple translates fields left to right, collecting the name each field's
// value is bound to, then binds the aggregate.
func (tr *translator) tuple(fields []ast.Expr, ix int, x string, ys []string, k Kont) Term {
	return tr.convert(fields[ix], func(z string) Term {
		collected := append(append([]string(nil), ys...), z)
		if ix+1 == len(fields) {
			return &LetV{Name: x, Val: &Tuple{Fields: collected}, In: k(x)}
		}
		return tr.tuple(fields, ix+1, x, collected, k)
	})
}

// args translates argument expressions left to right and hands the
// collected names to done.
func (tr *translator) args(exprs []ast.Expr, ys []string, done func([]string) Term) Term {
	if len(exprs) == len(ys) {
		return done(ys)
	}
	return tr.convert(exprs[len(ys)], func(z string) Term {
		return tr.args(exprs, append(append([]string(nil), ys...), z), done)
	})
}
