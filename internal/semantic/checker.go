package semantic

import (
	"fmt"

	"cpsc/internal/ast"
	"cpsc/internal/types"
)

// Checker runs constraint-based inference with destructive unification. The
// environment is a stack of frames; typeVars mirrors the alias edges written
// during unification so solve can chase them by name.
type Checker struct {
	frames   []map[string]types.Type
	typeVars map[string]types.Type
	counter  int
}

func NewChecker() *Checker {
	return &Checker{
		frames:   []map[string]types.Type{{}},
		typeVars: map[string]types.Type{},
	}
}

// Check annotates a copy of e so that every node's type slot is filled and
// returns it. On the first inference failure it returns nil and that error.
func Check(e ast.Expr) (ast.Expr, error) {
	annotated := ast.Clone(e)
	c := NewChecker()
	if _, err := c.Infer(annotated); err != nil {
		return nil, err
	}
	return annotated, nil
}

func (c *Checker) fresh() *types.Var {
	v := types.VarT(fmt.Sprintf("__ty_var_%d", c.counter))
	c.counter++
	return v
}

func (c *Checker) push(frame map[string]types.Type) {
	c.frames = append(c.frames, frame)
}

func (c *Checker) pop() {
	c.frames = c.frames[:len(c.frames)-1]
}

// lookup searches frames inner-to-outer. An unbound name is given a fresh
// variable in the outermost frame, so open fragments stay typeable.
func (c *Checker) lookup(name string) types.Type {
	for i := len(c.frames) - 1; i >= 0; i-- {
		if ty, ok := c.frames[i][name]; ok {
			return ty
		}
	}
	ty := c.fresh()
	c.frames[0][name] = ty
	return ty
}

// solve chases the variable chain to its terminal head. There is no occurs
// check, so the chain can be cyclic; a repeated name fails instead of
// looping.
func (c *Checker) solve(ty types.Type) (types.Type, error) {
	seen := map[string]bool{}
	for {
		v, ok := types.Resolve(ty).(*types.Var)
		if !ok {
			return types.Resolve(ty), nil
		}
		if seen[v.Name] {
			return nil, types.Errorf("", "cyclic type variable %s", v.Name)
		}
		seen[v.Name] = true
		next, ok := c.typeVars[v.Name]
		if !ok {
			return v, nil
		}
		ty = next
	}
}

func (c *Checker) unify(lhs, rhs types.Type, ctx ast.Expr) error {
	tyLhs, err := c.solve(lhs)
	if err != nil {
		return err
	}
	tyRhs, err := c.solve(rhs)
	if err != nil {
		return err
	}
	if types.Equal(tyLhs, tyRhs) {
		return nil
	}

	if v, ok := tyLhs.(*types.Var); ok {
		c.typeVars[v.Name] = tyRhs
		v.Alias = tyRhs
		return nil
	}
	if v, ok := tyRhs.(*types.Var); ok {
		c.typeVars[v.Name] = tyLhs
		v.Alias = tyLhs
		return nil
	}

	tupleLhs, okLhs := tyLhs.(*types.Tuple)
	tupleRhs, okRhs := tyRhs.(*types.Tuple)
	if okLhs && okRhs {
		if len(tupleLhs.Fields) < len(tupleRhs.Fields) && !tupleLhs.Closed {
			for ix := len(tupleLhs.Fields); ix < len(tupleRhs.Fields); ix++ {
				tupleLhs.Fields = append(tupleLhs.Fields, c.fresh())
			}
		}
		if len(tupleRhs.Fields) < len(tupleLhs.Fields) && !tupleRhs.Closed {
			for ix := len(tupleRhs.Fields); ix < len(tupleLhs.Fields); ix++ {
				tupleRhs.Fields = append(tupleRhs.Fields, c.fresh())
			}
		}
		if len(tupleLhs.Fields) == len(tupleRhs.Fields) {
			for ix := range tupleLhs.Fields {
				if err := c.unify(tupleLhs.Fields[ix], tupleRhs.Fields[ix], ctx); err != nil {
					return err
				}
			}
			return nil
		}
		return c.unifyError(tyLhs, tyRhs, ctx)
	}

	funcLhs, okLhs := tyLhs.(*types.Func)
	funcRhs, okRhs := tyRhs.(*types.Func)
	if okLhs && okRhs {
		if len(funcLhs.Args) == len(funcRhs.Args) {
			for ix := range funcLhs.Args {
				if err := c.unify(funcLhs.Args[ix], funcRhs.Args[ix], ctx); err != nil {
					return err
				}
			}
			return c.unify(funcLhs.Result, funcRhs.Result, ctx)
		}
	}

	return c.unifyError(tyLhs, tyRhs, ctx)
}

func (c *Checker) unifyError(lhs, rhs types.Type, ctx ast.Expr) error {
	return types.Errorf(contextSexp(ctx), "Cannot unify %s and %s", lhs, rhs)
}

func contextSexp(ctx ast.Expr) string {
	if ctx == nil {
		return ""
	}
	return ast.SexpString(ctx, 2, "  |")
}

// Infer computes e's type, annotating every node it visits.
func (c *Checker) Infer(e ast.Expr) (types.Type, error) {
	ty, err := c.infer(e)
	if err != nil {
		return nil, err
	}
	e.SetType(ty)
	return ty, nil
}

func (c *Checker) infer(e ast.Expr) (types.Type, error) {
	switch e := e.(type) {
	case *ast.F64:
		return types.F64T(), nil

	case *ast.Bool:
		return types.BoolT(), nil

	case *ast.Var:
		return c.lookup(e.Name), nil

	case *ast.Prim:
		if e.Op != "+" && e.Op != "-" && e.Op != "*" {
			return nil, &PrimError{Op: e.Op, Message: "unknown prim op"}
		}
		if len(e.Args) != 2 {
			return nil, &PrimError{Op: e.Op, Message: fmt.Sprintf("arity error: got %d args", len(e.Args))}
		}
		for _, arg := range e.Args {
			tyArg, err := c.Infer(arg)
			if err != nil {
				return nil, err
			}
			if err := c.unify(tyArg, types.F64T(), e); err != nil {
				return nil, err
			}
		}
		return types.F64T(), nil

	case *ast.Tuple:
		fields := make([]types.Type, len(e.Fields))
		for i, field := range e.Fields {
			ty, err := c.Infer(field)
			if err != nil {
				return nil, err
			}
			fields[i] = ty
		}
		return types.TupleT(fields...), nil

	case *ast.Proj:
		tyTuple, err := c.Infer(e.Tuple)
		if err != nil {
			return nil, err
		}
		// An open row with field+1 fresh fields; unification stretches the
		// subject to at least that arity.
		row := make([]types.Type, e.Field+1)
		for ix := range row {
			row[ix] = c.fresh()
		}
		open := types.OpenTupleT(row...)
		if err := c.unify(tyTuple, open, e); err != nil {
			return nil, err
		}
		return open.(*types.Tuple).Fields[e.Field], nil

	case *ast.App:
		tyFun, err := c.Infer(e.Fun)
		if err != nil {
			return nil, err
		}
		solved, err := c.solve(tyFun)
		if err != nil {
			return nil, err
		}
		fn, ok := solved.(*types.Func)
		if !ok {
			if _, isVar := solved.(*types.Var); !isVar {
				return nil, types.Errorf(contextSexp(e), "Got %s expected a function", solved)
			}
			// Applying a bare inference variable: pin it to a fresh
			// function shape of the right arity.
			args := make([]types.Type, len(e.Args))
			for ix := range args {
				args[ix] = c.fresh()
			}
			fn = &types.Func{Args: args, Result: c.fresh()}
			if err := c.unify(solved, fn, e); err != nil {
				return nil, err
			}
		}
		if len(fn.Args) != len(e.Args) {
			return nil, types.Errorf(contextSexp(e),
				"Arity mismatch: function takes %d arguments, got %d", len(fn.Args), len(e.Args))
		}
		for ix, arg := range e.Args {
			tyArg, err := c.Infer(arg)
			if err != nil {
				return nil, err
			}
			if err := c.unify(fn.Args[ix], tyArg, e); err != nil {
				return nil, err
			}
		}
		return fn.Result, nil

	case *ast.Let:
		tyVal, err := c.Infer(e.Val)
		if err != nil {
			return nil, err
		}
		c.push(map[string]types.Type{e.Var: tyVal})
		tyBody, err := c.Infer(e.Body)
		c.pop()
		if err != nil {
			return nil, err
		}
		if e.Annot != nil {
			if err := c.unify(e.Annot, tyBody, e); err != nil {
				return nil, err
			}
		}
		return tyBody, nil

	case *ast.Lam:
		frame := map[string]types.Type{}
		args := make([]types.Type, len(e.Params))
		for i, param := range e.Params {
			ty := c.fresh()
			args[i] = ty
			frame[param] = ty
		}
		c.push(frame)
		tyBody, err := c.Infer(e.Body)
		c.pop()
		if err != nil {
			return nil, err
		}
		return types.FuncT(args, tyBody), nil

	case *ast.Cond:
		tyPred, err := c.Infer(e.Pred)
		if err != nil {
			return nil, err
		}
		if err := c.unify(tyPred, types.BoolT(), e); err != nil {
			return nil, err
		}
		tyThen, err := c.Infer(e.Then)
		if err != nil {
			return nil, err
		}
		tyElse, err := c.Infer(e.Else)
		if err != nil {
			return nil, err
		}
		if err := c.unify(tyThen, tyElse, e); err != nil {
			return nil, err
		}
		return tyThen, nil
	}
	return nil, fmt.Errorf("unhandled expression %T", e)
}

// PrimError reports an unknown primitive operator or a wrong primitive
// arity. It is not recoverable.
type PrimError struct {
	Op      string
	Message string
}

func (e *PrimError) Error() string {
	return fmt.Sprintf("%s: %q", e.Message, e.Op)
}
