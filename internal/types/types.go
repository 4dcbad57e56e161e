package types

import (
	"fmt"
	"strings"
)

// Type is the closed sum of types the checker works with. Var carries a
// mutable forward pointer written during unification, and unification
// extends the field list of an open Tuple in place; every other variant is
// immutable once built.
type Type interface {
	String() string
	isType()
}

type F64 struct{}

type Bool struct{}

// Tuple is a heterogeneous record. An open tuple (Closed == false) may be
// extended by unification to accommodate projections; a closed tuple has a
// fixed arity.
type Tuple struct {
	Fields []Type
	Closed bool
}

type Func struct {
	Args   []Type
	Result Type
}

// Var is an inference variable. Alias is the union-find edge: once unified,
// it points at the representative type.
type Var struct {
	Name  string
	Alias Type
}

func (*F64) isType()   {}
func (*Bool) isType()  {}
func (*Tuple) isType() {}
func (*Func) isType()  {}
func (*Var) isType()   {}

func (*F64) String() string  { return "F64" }
func (*Bool) String() string { return "Bool" }

func (t *Tuple) String() string {
	var b strings.Builder
	b.WriteString("(")
	for _, field := range t.Fields {
		b.WriteString(field.String())
		b.WriteString(", ")
	}
	b.WriteString(")")
	return b.String()
}

func (f *Func) String() string {
	var b strings.Builder
	b.WriteString("(")
	for _, arg := range f.Args {
		b.WriteString(arg.String())
		b.WriteString(", ")
	}
	b.WriteString(") -> ")
	b.WriteString(f.Result.String())
	return b.String()
}

func (v *Var) String() string {
	if resolved := Resolve(v); resolved != v {
		return resolved.String()
	}
	return v.Name
}

// Resolve follows the alias chain to its terminal head. A cyclic chain
// (possible because unification performs no occurs check) stops at the first
// repeated variable instead of looping.
func Resolve(t Type) Type {
	seen := map[*Var]bool{}
	for {
		v, ok := t.(*Var)
		if !ok || v.Alias == nil || seen[v] {
			return t
		}
		seen[v] = true
		t = v.Alias
	}
}

// Equal reports structural equality after full alias resolution. Two
// variables are equal iff they resolve to variables of the same name; the
// alias edges themselves never participate in the comparison.
func Equal(a, b Type) bool {
	a = Resolve(a)
	b = Resolve(b)
	switch a := a.(type) {
	case *F64:
		_, ok := b.(*F64)
		return ok
	case *Bool:
		_, ok := b.(*Bool)
		return ok
	case *Var:
		bv, ok := b.(*Var)
		return ok && a.Name == bv.Name
	case *Tuple:
		bt, ok := b.(*Tuple)
		if !ok || len(a.Fields) != len(bt.Fields) {
			return false
		}
		for i := range a.Fields {
			if !Equal(a.Fields[i], bt.Fields[i]) {
				return false
			}
		}
		return true
	case *Func:
		bf, ok := b.(*Func)
		if !ok || len(a.Args) != len(bf.Args) {
			return false
		}
		if !Equal(a.Result, bf.Result) {
			return false
		}
		for i := range a.Args {
			if !Equal(a.Args[i], bf.Args[i]) {
				return false
			}
		}
		return true
	}
	return false
}

// Constructors in the style of the checker's call sites.

func F64T() Type  { return &F64{} }
func BoolT() Type { return &Bool{} }

func TupleT(fields ...Type) Type { return &Tuple{Fields: fields, Closed: true} }

// OpenTupleT builds a tuple row that unification may extend.
func OpenTupleT(fields ...Type) Type { return &Tuple{Fields: fields, Closed: false} }

func FuncT(args []Type, result Type) Type { return &Func{Args: args, Result: result} }

func VarT(name string) *Var { return &Var{Name: name} }

// TypeError is a unification or application failure. Context carries the
// offending node rendered as an S-expression, when one was available.
type TypeError struct {
	Message string
	Context string
}

func (e *TypeError) Error() string {
	if e.Context == "" {
		return e.Message
	}
	return e.Message + "\n" + e.Context
}

func Errorf(context string, format string, args ...interface{}) *TypeError {
	return &TypeError{Message: fmt.Sprintf(format, args...), Context: context}
}
