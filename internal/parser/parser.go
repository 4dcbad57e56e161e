package parser

import (
	"fmt"

	"github.com/alecthomas/participle/v2"

	"cpsc/internal/ast"
	"cpsc/internal/ast/build"
)

var surfaceParser = participle.MustBuild[Expr](
	participle.Lexer(SurfaceLexer),
	participle.Elide("Whitespace", "Comment"),
	participle.UseLookahead(3),
)

// ParseSource parses one surface expression from source text.
func ParseSource(path, source string) (ast.Expr, error) {
	parsed, err := surfaceParser.ParseString(path, source)
	if err != nil {
		return nil, err
	}
	return convert(parsed)
}

func convert(e *Expr) (ast.Expr, error) {
	switch {
	case e.Number != nil:
		return build.F64(*e.Number), nil
	case e.True:
		return build.Yes(), nil
	case e.False:
		return build.No(), nil
	case e.Ident != nil:
		return build.Var(*e.Ident), nil
	case e.Form != nil:
		return convertForm(e.Form)
	}
	return nil, fmt.Errorf("empty expression")
}

func convertForm(f *Form) (ast.Expr, error) {
	switch {
	case f.Lambda != nil:
		seen := map[string]bool{}
		for _, param := range f.Lambda.Params {
			if seen[param] {
				return nil, fmt.Errorf("duplicate parameter %q", param)
			}
			seen[param] = true
		}
		body, err := convert(f.Lambda.Body)
		if err != nil {
			return nil, err
		}
		return build.Lambda(f.Lambda.Params, body), nil

	case f.Let != nil:
		value, err := convert(f.Let.Value)
		if err != nil {
			return nil, err
		}
		body, err := convert(f.Let.Body)
		if err != nil {
			return nil, err
		}
		return build.Let(f.Let.Name, value, body), nil

	case f.If != nil:
		pred, err := convert(f.If.Pred)
		if err != nil {
			return nil, err
		}
		then, err := convert(f.If.Then)
		if err != nil {
			return nil, err
		}
		els, err := convert(f.If.Else)
		if err != nil {
			return nil, err
		}
		return build.Cond(pred, then, els), nil

	case f.Tuple != nil:
		fields := make([]ast.Expr, len(f.Tuple.Fields))
		for i, field := range f.Tuple.Fields {
			converted, err := convert(field)
			if err != nil {
				return nil, err
			}
			fields[i] = converted
		}
		return build.Tuple(fields...), nil

	case f.Proj != nil:
		if f.Proj.Field < 0 {
			return nil, fmt.Errorf("projection field must be non-negative, got %d", f.Proj.Field)
		}
		tuple, err := convert(f.Proj.Tuple)
		if err != nil {
			return nil, err
		}
		return build.Project(f.Proj.Field, tuple), nil

	case f.Prim != nil:
		left, err := convert(f.Prim.Left)
		if err != nil {
			return nil, err
		}
		right, err := convert(f.Prim.Right)
		if err != nil {
			return nil, err
		}
		return build.Prim(f.Prim.Op, left, right), nil

	case f.Apply != nil:
		fun, err := convert(f.Apply.Fun)
		if err != nil {
			return nil, err
		}
		args := make([]ast.Expr, len(f.Apply.Args))
		for i, arg := range f.Apply.Args {
			converted, err := convert(arg)
			if err != nil {
				return nil, err
			}
			args[i] = converted
		}
		return build.Apply(fun, args...), nil
	}
	return nil, fmt.Errorf("empty form")
}
