// Package build provides the convenience constructors callers assemble
// surface expressions with.
package build

import (
	"cpsc/internal/ast"
	"cpsc/internal/types"
)

func Var(name string) ast.Expr { return &ast.Var{Name: name} }

func F64(v float64) ast.Expr { return &ast.F64{Val: v} }

func Boolean(v bool) ast.Expr { return &ast.Bool{Val: v} }

func Yes() ast.Expr { return Boolean(true) }

func No() ast.Expr { return Boolean(false) }

// Nil is the empty tuple.
func Nil() ast.Expr { return &ast.Tuple{} }

func Tuple(fields ...ast.Expr) ast.Expr { return &ast.Tuple{Fields: fields} }

func Project(field int, tuple ast.Expr) ast.Expr {
	return &ast.Proj{Field: field, Tuple: tuple}
}

func Prim(op string, left, right ast.Expr) ast.Expr {
	return &ast.Prim{Op: op, Args: []ast.Expr{left, right}}
}

func Add(left, right ast.Expr) ast.Expr { return Prim("+", left, right) }

func Sub(left, right ast.Expr) ast.Expr { return Prim("-", left, right) }

func Mul(left, right ast.Expr) ast.Expr { return Prim("*", left, right) }

func Lambda(params []string, body ast.Expr) ast.Expr {
	return &ast.Lam{Params: params, Body: body}
}

func Apply(fun ast.Expr, args ...ast.Expr) ast.Expr {
	return &ast.App{Fun: fun, Args: args}
}

func Let(name string, val, body ast.Expr) ast.Expr {
	return &ast.Let{Var: name, Val: val, Body: body}
}

// LetAnnot is Let with an explicit type annotation unified against the
// body's type during checking.
func LetAnnot(name string, val, body ast.Expr, annot types.Type) ast.Expr {
	return &ast.Let{Var: name, Val: val, Body: body, Annot: annot}
}

func Cond(pred, then, els ast.Expr) ast.Expr {
	return &ast.Cond{Pred: pred, Then: then, Else: els}
}

// Pi is sugar: let name = project(field, tuple) in body.
func Pi(name string, field int, tuple, body ast.Expr) ast.Expr {
	return Let(name, Project(field, tuple), body)
}

// Defn is sugar: let name = lambda(params, body) in in.
func Defn(name string, params []string, body, in ast.Expr) ast.Expr {
	return Let(name, Lambda(params, body), in)
}
