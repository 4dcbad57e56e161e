// Package codegen walks a residual CPS term and emits target source lines.
// The tree shape dictates emission directly: value, projection and primitive
// bindings become const declarations, function bindings open a definition,
// and the recorded return continuation turns AppC into a return statement.
package codegen

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"cpsc/internal/cps"
	"cpsc/internal/types"
)

// EmitError reports a term or type the emitter cannot express in the target
// language.
type EmitError struct {
	Message string
}

func (e *EmitError) Error() string { return e.Message }

// Generate writes the target rendering of t to w.
func Generate(w io.Writer, t cps.Term) error {
	e := &emitter{w: w}
	return e.term(t)
}

type emitter struct {
	w      io.Writer
	indent int
	// retConts tracks the enclosing functions' return-continuation names;
	// an AppC to the innermost one is a return statement.
	retConts []string
}

func (e *emitter) line(format string, args ...interface{}) {
	fmt.Fprintf(e.w, "%s%s\n", strings.Repeat("  ", e.indent), fmt.Sprintf(format, args...))
}

func (e *emitter) term(t cps.Term) error {
	switch t := t.(type) {
	case *cps.LetV:
		val, err := e.value(t.Val)
		if err != nil {
			return err
		}
		e.line("const auto %s = %s;", t.Name, val)
		return e.term(t.In)

	case *cps.LetT:
		e.line("const auto %s = field_at(%s, %d);", t.Name, t.Tuple, t.Field)
		return e.term(t.In)

	case *cps.LetP:
		if len(t.Args) != 2 {
			return &EmitError{Message: fmt.Sprintf("prim op %s with %d arguments", t.Op, len(t.Args))}
		}
		e.line("const auto %s = %s %s %s;", t.Name, t.Args[0], t.Op, t.Args[1])
		return e.term(t.In)

	case *cps.LetF:
		ret, params, err := e.signature(t)
		if err != nil {
			return err
		}
		e.line("%s %s(%s) {", ret, t.Name, params)
		e.indent++
		e.retConts = append(e.retConts, t.Cont)
		if err := e.term(t.Body); err != nil {
			return err
		}
		e.retConts = e.retConts[:len(e.retConts)-1]
		e.indent--
		e.line("}")
		return e.term(t.In)

	case *cps.LetC:
		// Residual continuations survive only in unoptimized output.
		e.line("// cont %s(%s):", t.Name, strings.Join(t.Params, ", "))
		if err := e.term(t.Body); err != nil {
			return err
		}
		return e.term(t.In)

	case *cps.AppC:
		if len(e.retConts) > 0 && e.retConts[len(e.retConts)-1] == t.Cont {
			e.line("return %s;", t.Arg)
			return nil
		}
		e.line("// continue %s(%s)", t.Cont, t.Arg)
		return nil

	case *cps.AppF:
		e.line("// call %s[%s](%s)", t.Fun, t.Cont, strings.Join(t.Args, ", "))
		return nil

	case *cps.Halt:
		e.line("// halt %s", t.Name)
		return nil
	}
	return &EmitError{Message: fmt.Sprintf("unhandled term %T", t)}
}

func (e *emitter) value(v cps.Value) (string, error) {
	switch v := v.(type) {
	case *cps.F64:
		return strconv.FormatFloat(v.Val, 'g', -1, 64), nil
	case *cps.Bool:
		return strconv.FormatBool(v.Val), nil
	case *cps.Tuple:
		return "{" + strings.Join(v.Fields, ", ") + "}", nil
	}
	return "", &EmitError{Message: fmt.Sprintf("unhandled value %T", v)}
}

// signature renders a function's return type and parameter list from its
// recorded type annotation, falling back to auto where none resolves.
func (e *emitter) signature(fn *cps.LetF) (string, string, error) {
	ret := "auto"
	paramTypes := make([]string, len(fn.Params))
	for i := range paramTypes {
		paramTypes[i] = "auto"
	}
	if fn.Type != nil {
		if ft, ok := types.Resolve(fn.Type).(*types.Func); ok && len(ft.Args) == len(fn.Params) {
			var err error
			if ret, err = targetType(ft.Result); err != nil {
				return "", "", err
			}
			for i, arg := range ft.Args {
				if paramTypes[i], err = targetType(arg); err != nil {
					return "", "", err
				}
			}
		}
	}
	params := make([]string, len(fn.Params))
	for i, param := range fn.Params {
		params[i] = paramTypes[i] + " " + param
	}
	return ret, strings.Join(params, ", "), nil
}

func targetType(t types.Type) (string, error) {
	switch resolved := types.Resolve(t).(type) {
	case *types.F64:
		return "double", nil
	case *types.Bool:
		return "bool", nil
	case *types.Func:
		return "", &EmitError{Message: fmt.Sprintf("cannot translate function type %s", resolved)}
	default:
		return "auto", nil
	}
}
