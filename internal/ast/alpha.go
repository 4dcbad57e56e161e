package ast

import "fmt"

// alphaConverter renames every binder to a fresh, globally unique name.
// The environment is an ordered assoc list used as a scope stack: entering a
// binder pushes (original -> fresh), leaving pops. Free variables fall
// through the lookup and keep their original name.
type alphaConverter struct {
	counter int
	env     []envEntry
}

type envEntry struct {
	original string
	fresh    string
}

// AlphaConvert returns a structurally equal expression in which every binder
// introduces a fresh name. Counter allocation follows the traversal order,
// so results are deterministic.
func AlphaConvert(e Expr) Expr {
	a := &alphaConverter{}
	return a.convert(e)
}

func (a *alphaConverter) genvar() string {
	name := fmt.Sprintf("__ast_var_%d", a.counter)
	a.counter++
	return name
}

func (a *alphaConverter) push(original, fresh string) {
	a.env = append(a.env, envEntry{original, fresh})
}

func (a *alphaConverter) pop() {
	a.env = a.env[:len(a.env)-1]
}

func (a *alphaConverter) lookup(name string) (string, bool) {
	for i := len(a.env) - 1; i >= 0; i-- {
		if a.env[i].original == name {
			return a.env[i].fresh, true
		}
	}
	return "", false
}

func (a *alphaConverter) convert(e Expr) Expr {
	switch e := e.(type) {
	case *F64:
		out := *e
		return &out
	case *Bool:
		out := *e
		return &out
	case *Var:
		out := *e
		if fresh, ok := a.lookup(e.Name); ok {
			out.Name = fresh
		}
		return &out
	case *Prim:
		out := *e
		out.Args = a.convertAll(e.Args)
		return &out
	case *Tuple:
		out := *e
		out.Fields = a.convertAll(e.Fields)
		return &out
	case *Proj:
		out := *e
		out.Tuple = a.convert(e.Tuple)
		return &out
	case *Let:
		// The value is converted before the binder is pushed, so the value
		// cannot see the new name.
		out := *e
		out.Val = a.convert(e.Val)
		out.Var = a.genvar()
		a.push(e.Var, out.Var)
		out.Body = a.convert(e.Body)
		a.pop()
		return &out
	case *Lam:
		out := *e
		out.Params = make([]string, len(e.Params))
		for i, param := range e.Params {
			fresh := a.genvar()
			a.push(param, fresh)
			out.Params[i] = fresh
		}
		out.Body = a.convert(e.Body)
		for range e.Params {
			a.pop()
		}
		return &out
	case *App:
		out := *e
		out.Fun = a.convert(e.Fun)
		out.Args = a.convertAll(e.Args)
		return &out
	case *Cond:
		out := *e
		out.Pred = a.convert(e.Pred)
		out.Then = a.convert(e.Then)
		out.Else = a.convert(e.Else)
		return &out
	}
	return e
}

func (a *alphaConverter) convertAll(es []Expr) []Expr {
	out := make([]Expr, len(es))
	for i, e := range es {
		out[i] = a.convert(e)
	}
	return out
}

// Clone deep-copies an expression tree. Type slots are shared, not copied;
// they are immutable apart from the alias edges and open-row extensions
// unification writes.
func Clone(e Expr) Expr {
	switch e := e.(type) {
	case *F64:
		out := *e
		return &out
	case *Bool:
		out := *e
		return &out
	case *Var:
		out := *e
		return &out
	case *Prim:
		out := *e
		out.Args = cloneAll(e.Args)
		return &out
	case *Tuple:
		out := *e
		out.Fields = cloneAll(e.Fields)
		return &out
	case *Proj:
		out := *e
		out.Tuple = Clone(e.Tuple)
		return &out
	case *Let:
		out := *e
		out.Val = Clone(e.Val)
		out.Body = Clone(e.Body)
		return &out
	case *Lam:
		out := *e
		out.Params = append([]string(nil), e.Params...)
		out.Body = Clone(e.Body)
		return &out
	case *App:
		out := *e
		out.Fun = Clone(e.Fun)
		out.Args = cloneAll(e.Args)
		return &out
	case *Cond:
		out := *e
		out.Pred = Clone(e.Pred)
		out.Then = Clone(e.Then)
		out.Else = Clone(e.Else)
		return &out
	}
	return e
}

func cloneAll(es []Expr) []Expr {
	out := make([]Expr, len(es))
	for i, e := range es {
		out[i] = Clone(e)
	}
	return out
}

// FreeVars returns the set of variables not bound by any enclosing Let or
// Lam in e.
func FreeVars(e Expr) map[string]bool {
	free := map[string]bool{}
	var walk func(e Expr, bound map[string]bool)
	walk = func(e Expr, bound map[string]bool) {
		switch e := e.(type) {
		case *Var:
			if !bound[e.Name] {
				free[e.Name] = true
			}
		case *Prim:
			for _, arg := range e.Args {
				walk(arg, bound)
			}
		case *Tuple:
			for _, field := range e.Fields {
				walk(field, bound)
			}
		case *Proj:
			walk(e.Tuple, bound)
		case *Let:
			walk(e.Val, bound)
			inner := extend(bound, e.Var)
			walk(e.Body, inner)
		case *Lam:
			inner := extend(bound, e.Params...)
			walk(e.Body, inner)
		case *App:
			walk(e.Fun, bound)
			for _, arg := range e.Args {
				walk(arg, bound)
			}
		case *Cond:
			walk(e.Pred, bound)
			walk(e.Then, bound)
			walk(e.Else, bound)
		}
	}
	walk(e, map[string]bool{})
	return free
}

func extend(bound map[string]bool, names ...string) map[string]bool {
	inner := make(map[string]bool, len(bound)+len(names))
	for name := range bound {
		inner[name] = true
	}
	for _, name := range names {
		inner[name] = true
	}
	return inner
}
