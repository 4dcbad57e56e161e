package semantic_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cpsc/internal/ast"
	"cpsc/internal/ast/build"
	"cpsc/internal/semantic"
	"cpsc/internal/types"
)

func TestLiteralTypes(t *testing.T) {
	annotated, err := semantic.Check(build.F64(23))
	require.NoError(t, err)
	assert.True(t, types.Equal(annotated.Type(), types.F64T()))

	annotated, err = semantic.Check(build.Yes())
	require.NoError(t, err)
	assert.True(t, types.Equal(annotated.Type(), types.BoolT()))
}

func TestPrimAdds(t *testing.T) {
	annotated, err := semantic.Check(build.Add(build.F64(23), build.F64(42)))
	require.NoError(t, err)
	assert.True(t, types.Equal(annotated.Type(), types.F64T()))
}

func TestPrimTypeError(t *testing.T) {
	// S6: adding a bool fails with a message naming both types.
	_, err := semantic.Check(build.Add(build.F64(1), build.Yes()))
	require.Error(t, err)

	var typeErr *types.TypeError
	require.ErrorAs(t, err, &typeErr)
	assert.Contains(t, typeErr.Message, "F64")
	assert.Contains(t, typeErr.Message, "Bool")
	assert.Contains(t, typeErr.Context, "(+ 1 true )")
}

func TestPrimUnknownOp(t *testing.T) {
	_, err := semantic.Check(build.Prim("/", build.F64(1), build.F64(2)))
	var primErr *semantic.PrimError
	require.ErrorAs(t, err, &primErr)
	assert.Equal(t, "/", primErr.Op)
}

func TestPrimArity(t *testing.T) {
	_, err := semantic.Check(&ast.Prim{Op: "+", Args: []ast.Expr{build.F64(1)}})
	var primErr *semantic.PrimError
	require.ErrorAs(t, err, &primErr)
	assert.Contains(t, primErr.Message, "arity")
}

func TestTupleType(t *testing.T) {
	annotated, err := semantic.Check(build.Tuple(build.F64(1), build.Yes()))
	require.NoError(t, err)

	tuple, ok := types.Resolve(annotated.Type()).(*types.Tuple)
	require.True(t, ok)
	assert.True(t, tuple.Closed)
	require.Len(t, tuple.Fields, 2)
	assert.True(t, types.Equal(tuple.Fields[0], types.F64T()))
	assert.True(t, types.Equal(tuple.Fields[1], types.BoolT()))
}

func TestProjectionOfLetBoundTuple(t *testing.T) {
	// S3 front half.
	e := build.Let("t", build.Tuple(build.F64(1), build.F64(2), build.F64(3)),
		build.Project(1, build.Var("t")))
	annotated, err := semantic.Check(e)
	require.NoError(t, err)
	assert.True(t, types.Equal(types.Resolve(annotated.Type()), types.F64T()))
}

func TestProjectionExtendsOpenRow(t *testing.T) {
	// S5: projecting field 2 of a lambda parameter leaves an open row of
	// arity >= 3 whose third field is the lambda's result type.
	e := build.Lambda([]string{"sim"}, build.Project(2, build.Var("sim")))
	annotated, err := semantic.Check(e)
	require.NoError(t, err)

	fn, ok := types.Resolve(annotated.Type()).(*types.Func)
	require.True(t, ok)
	require.Len(t, fn.Args, 1)

	arg, ok := types.Resolve(fn.Args[0]).(*types.Tuple)
	require.True(t, ok)
	assert.False(t, arg.Closed)
	require.GreaterOrEqual(t, len(arg.Fields), 3)
	assert.True(t, types.Equal(arg.Fields[2], fn.Result))
}

func TestProjectionPastClosedArityFails(t *testing.T) {
	e := build.Project(3, build.Tuple(build.F64(1), build.F64(2)))
	_, err := semantic.Check(e)
	var typeErr *types.TypeError
	require.ErrorAs(t, err, &typeErr)
	assert.Contains(t, typeErr.Message, "Cannot unify")
}

func TestLambdaAndApplication(t *testing.T) {
	// S4 front half: let f = \x. x+x in f 42.
	e := build.Defn("f", []string{"x"},
		build.Add(build.Var("x"), build.Var("x")),
		build.Apply(build.Var("f"), build.F64(42)))
	annotated, err := semantic.Check(e)
	require.NoError(t, err)
	assert.True(t, types.Equal(types.Resolve(annotated.Type()), types.F64T()))
}

func TestApplicationArityMismatch(t *testing.T) {
	e := build.Defn("f", []string{"x"}, build.Var("x"),
		build.Apply(build.Var("f"), build.F64(1), build.F64(2)))
	_, err := semantic.Check(e)
	var typeErr *types.TypeError
	require.ErrorAs(t, err, &typeErr)
	assert.Contains(t, typeErr.Message, "Arity mismatch")
}

func TestApplyNonFunction(t *testing.T) {
	e := build.Apply(build.F64(1), build.F64(2))
	_, err := semantic.Check(e)
	var typeErr *types.TypeError
	require.ErrorAs(t, err, &typeErr)
	assert.Contains(t, typeErr.Message, "expected a function")
}

func TestApplyFreeVariablePinsFunctionShape(t *testing.T) {
	// A free identifier in function position picks up a function type of
	// the right arity.
	e := build.Apply(build.Var("f"), build.F64(1))
	annotated, err := semantic.Check(e)
	require.NoError(t, err)
	require.NotNil(t, annotated.Type())

	app := annotated.(*ast.App)
	fn, ok := types.Resolve(app.Fun.Type()).(*types.Func)
	require.True(t, ok)
	require.Len(t, fn.Args, 1)
	assert.True(t, types.Equal(fn.Args[0], types.F64T()))
}

func TestLetAnnotationUnifies(t *testing.T) {
	e := build.LetAnnot("a", build.F64(1), build.Var("a"), types.F64T())
	annotated, err := semantic.Check(e)
	require.NoError(t, err)
	assert.True(t, types.Equal(types.Resolve(annotated.Type()), types.F64T()))

	bad := build.LetAnnot("a", build.F64(1), build.Var("a"), types.BoolT())
	_, err = semantic.Check(bad)
	require.Error(t, err)
}

func TestCondTyping(t *testing.T) {
	e := build.Cond(build.No(), build.F64(2), build.Add(build.F64(3), build.F64(4)))
	annotated, err := semantic.Check(e)
	require.NoError(t, err)
	assert.True(t, types.Equal(types.Resolve(annotated.Type()), types.F64T()))

	_, err = semantic.Check(build.Cond(build.F64(1), build.F64(2), build.F64(3)))
	require.Error(t, err)

	_, err = semantic.Check(build.Cond(build.No(), build.F64(2), build.Yes()))
	require.Error(t, err)
}

func TestUnboundVariableGetsFreshType(t *testing.T) {
	annotated, err := semantic.Check(build.Var("loose"))
	require.NoError(t, err)
	_, ok := types.Resolve(annotated.Type()).(*types.Var)
	assert.True(t, ok)
}

func TestEveryNodeAnnotated(t *testing.T) {
	e := build.Let("t", build.Tuple(build.F64(1), build.F64(2)),
		build.Apply(build.Lambda([]string{"x"}, build.Project(0, build.Var("x"))),
			build.Var("t")))
	annotated, err := semantic.Check(e)
	require.NoError(t, err)

	var walk func(e ast.Expr)
	walk = func(e ast.Expr) {
		require.NotNil(t, e.Type(), "unannotated node %T", e)
		switch e := e.(type) {
		case *ast.Prim:
			for _, arg := range e.Args {
				walk(arg)
			}
		case *ast.Tuple:
			for _, field := range e.Fields {
				walk(field)
			}
		case *ast.Proj:
			walk(e.Tuple)
		case *ast.Let:
			walk(e.Val)
			walk(e.Body)
		case *ast.Lam:
			walk(e.Body)
		case *ast.App:
			walk(e.Fun)
			for _, arg := range e.Args {
				walk(arg)
			}
		case *ast.Cond:
			walk(e.Pred)
			walk(e.Then)
			walk(e.Else)
		}
	}
	walk(annotated)
}

func TestCheckLeavesInputUnannotated(t *testing.T) {
	e := build.F64(1)
	_, err := semantic.Check(e)
	require.NoError(t, err)
	assert.Nil(t, e.Type())
}

func TestOpenRowsUnifyToLongerRow(t *testing.T) {
	// Two projections at different indices from the same parameter leave
	// one open row wide enough for both.
	e := build.Lambda([]string{"sim"},
		build.Add(build.Project(0, build.Var("sim")), build.Project(4, build.Var("sim"))))
	annotated, err := semantic.Check(e)
	require.NoError(t, err)

	fn := types.Resolve(annotated.Type()).(*types.Func)
	arg := types.Resolve(fn.Args[0]).(*types.Tuple)
	assert.False(t, arg.Closed)
	assert.GreaterOrEqual(t, len(arg.Fields), 5)
	assert.True(t, types.Equal(types.Resolve(arg.Fields[0]), types.F64T()))
	assert.True(t, types.Equal(types.Resolve(arg.Fields[4]), types.F64T()))
}
