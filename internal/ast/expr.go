package ast

import (
	"cpsc/internal/types"
)

// Expr is the closed sum of surface expressions. Every node carries an
// inferred-type slot that is nil before type checking and non-nil after.
type Expr interface {
	Type() types.Type
	SetType(types.Type)
	isExpr()
}

// typed is the shared inferred-type slot.
type typed struct {
	ty types.Type
}

func (t *typed) Type() types.Type      { return t.ty }
func (t *typed) SetType(ty types.Type) { t.ty = ty }

type F64 struct {
	typed
	Val float64
}

type Bool struct {
	typed
	Val bool
}

type Var struct {
	typed
	Name string
}

// Prim applies a primitive operator ("+", "-" or "*") to exactly two
// arguments.
type Prim struct {
	typed
	Op   string
	Args []Expr
}

type Tuple struct {
	typed
	Fields []Expr
}

// Proj selects field Field (zero-based) of a tuple-valued expression.
type Proj struct {
	typed
	Field int
	Tuple Expr
}

// Let binds Var to Val inside Body. Annot, when non-nil, is a caller-supplied
// annotation unified with the body's type during checking.
type Let struct {
	typed
	Var   string
	Val   Expr
	Body  Expr
	Annot types.Type
}

// Lam is an n-ary function literal. Parameter names must be locally distinct.
type Lam struct {
	typed
	Params []string
	Body   Expr
}

type App struct {
	typed
	Fun  Expr
	Args []Expr
}

type Cond struct {
	typed
	Pred Expr
	Then Expr
	Else Expr
}

func (*F64) isExpr()   {}
func (*Bool) isExpr()  {}
func (*Var) isExpr()   {}
func (*Prim) isExpr()  {}
func (*Tuple) isExpr() {}
func (*Proj) isExpr()  {}
func (*Let) isExpr()   {}
func (*Lam) isExpr()   {}
func (*App) isExpr()   {}
func (*Cond) isExpr()  {}
