package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestShow(t *testing.T) {
	assert.Equal(t, "F64", F64T().String())
	assert.Equal(t, "Bool", BoolT().String())
	assert.Equal(t, "(F64, Bool, )", TupleT(F64T(), BoolT()).String())
	assert.Equal(t, "(F64, ) -> Bool", FuncT([]Type{F64T()}, BoolT()).String())
}

func TestVarShowsAlias(t *testing.T) {
	v := VarT("__ty_var_0")
	assert.Equal(t, "__ty_var_0", v.String())

	v.Alias = F64T()
	assert.Equal(t, "F64", v.String())
}

func TestEqualResolvesAliases(t *testing.T) {
	v := VarT("__ty_var_0")
	v.Alias = F64T()

	assert.True(t, Equal(v, F64T()))
	assert.True(t, Equal(F64T(), v))
	assert.False(t, Equal(v, BoolT()))
}

func TestEqualResolvesAliasBeforeComparingNames(t *testing.T) {
	a := VarT("x")
	b := VarT("x")
	b.Alias = F64T()

	// Same name, different alias state: a resolves to the bare variable
	// and b to F64, so they are not equal.
	assert.False(t, Equal(a, b))
	assert.True(t, Equal(a, VarT("x")))
}

func TestEqualStructural(t *testing.T) {
	a := TupleT(F64T(), TupleT(BoolT()))
	b := TupleT(F64T(), TupleT(BoolT()))
	assert.True(t, Equal(a, b))

	c := TupleT(F64T(), TupleT(F64T()))
	assert.False(t, Equal(a, c))

	assert.False(t, Equal(TupleT(F64T()), TupleT(F64T(), F64T())))
	assert.False(t, Equal(FuncT([]Type{F64T()}, F64T()), FuncT([]Type{F64T(), F64T()}, F64T())))
}

func TestResolveStopsOnCycle(t *testing.T) {
	a := VarT("a")
	b := VarT("b")
	a.Alias = b
	b.Alias = a

	// Must terminate; which variable it lands on is unspecified.
	resolved := Resolve(a)
	_, ok := resolved.(*Var)
	assert.True(t, ok)
}

func TestTypeError(t *testing.T) {
	err := Errorf("", "Cannot unify %s and %s", F64T(), BoolT())
	assert.Equal(t, "Cannot unify F64 and Bool", err.Error())

	withCtx := Errorf("  |ctx", "boom")
	assert.Equal(t, "boom\n  |ctx", withCtx.Error())
}
