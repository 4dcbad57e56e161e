package cps

import (
	"cpsc/internal/types"
)

// The CPS intermediate language. Every non-trivial expression is a named
// let-binding and control is explicit: a term either binds and continues, or
// transfers control (AppC, AppF, Halt).
//
// Variables are plain strings; the translator generates globally unique
// names, so passes never need to worry about capture.

// Value is an atom bound by LetV.
type Value interface {
	isValue()
}

type F64 struct {
	Val float64
}

type Bool struct {
	Val bool
}

// Tuple aggregates already-named values.
type Tuple struct {
	Fields []string
}

func (*F64) isValue()   {}
func (*Bool) isValue()  {}
func (*Tuple) isValue() {}

// Term is the closed sum of CPS terms.
type Term interface {
	isTerm()
}

// LetV binds an atom.
type LetV struct {
	Name string
	Val  Value
	In   Term
}

// LetT binds the projection of a tuple field.
type LetT struct {
	Name  string
	Field int
	Tuple string
	In    Term
}

// LetP binds the result of a primitive application.
type LetP struct {
	Name string
	Op   string
	Args []string
	In   Term
}

// LetC defines a local continuation. Continuations take exactly one value
// argument; beta-cont rejects any other arity.
type LetC struct {
	Name   string
	Params []string
	Body   Term
	In     Term
}

// LetF defines a function with an explicit return-continuation parameter.
// Type carries the function's inferred type when the surface lambda had one;
// the emitter reads it to pick concrete parameter and return types.
type LetF struct {
	Name   string
	Cont   string
	Params []string
	Body   Term
	In     Term
	Type   types.Type
}

// AppC invokes a continuation with exactly one argument.
type AppC struct {
	Cont string
	Arg  string
}

// AppF tail-calls a function, passing its return continuation.
type AppF struct {
	Fun  string
	Cont string
	Args []string
}

// Halt terminates the program with the named result.
type Halt struct {
	Name string
}

func (*LetV) isTerm() {}
func (*LetT) isTerm() {}
func (*LetP) isTerm() {}
func (*LetC) isTerm() {}
func (*LetF) isTerm() {}
func (*AppC) isTerm() {}
func (*AppF) isTerm() {}
func (*Halt) isTerm() {}
