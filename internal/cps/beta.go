package cps

import "fmt"

// InvariantError reports an IR invariant broken by an earlier pass. It is a
// bug, not a user error.
type InvariantError struct {
	Message string
}

func (e *InvariantError) Error() string { return e.Message }

// BetaCont inline-expands every local continuation call exactly once: each
// AppC to a known continuation is replaced by the continuation's body with
// the argument substituted for the parameter. Dead continuations are swept
// afterwards.
func BetaCont(t Term) (Term, error) {
	b := &betaCont{conts: map[string]contDef{}}
	out, err := b.term(t)
	if err != nil {
		return nil, err
	}
	return DeadLet(out), nil
}

type contDef struct {
	param string
	body  Term
}

type betaCont struct {
	conts map[string]contDef
}

func (b *betaCont) term(t Term) (Term, error) {
	switch t := t.(type) {
	case *LetV:
		in, err := b.term(t.In)
		if err != nil {
			return nil, err
		}
		out := *t
		out.In = in
		return &out, nil
	case *LetT:
		in, err := b.term(t.In)
		if err != nil {
			return nil, err
		}
		out := *t
		out.In = in
		return &out, nil
	case *LetP:
		in, err := b.term(t.In)
		if err != nil {
			return nil, err
		}
		out := *t
		out.In = in
		return &out, nil
	case *LetC:
		if len(t.Params) != 1 {
			return nil, &InvariantError{
				Message: fmt.Sprintf("continuation %s takes %d parameters, want 1", t.Name, len(t.Params)),
			}
		}
		body, err := b.term(t.Body)
		if err != nil {
			return nil, err
		}
		b.conts[t.Name] = contDef{param: t.Params[0], body: body}
		in, err := b.term(t.In)
		if err != nil {
			return nil, err
		}
		out := *t
		out.Body = body
		out.In = in
		return &out, nil
	case *LetF:
		body, err := b.term(t.Body)
		if err != nil {
			return nil, err
		}
		in, err := b.term(t.In)
		if err != nil {
			return nil, err
		}
		out := *t
		out.Body = body
		out.In = in
		return &out, nil
	case *AppC:
		if def, ok := b.conts[t.Cont]; ok {
			return Substitute(def.body, map[string]string{def.param: t.Arg}), nil
		}
		return t, nil
	}
	return t, nil
}

// BetaFunc inlines every function call: AppF to a known function becomes the
// function's body with parameters substituted by the arguments and the
// return-continuation parameter by the call's continuation. Inlining is
// unconditional, which is sound for the non-recursive programs the surface
// language produces. Dead functions are swept afterwards.
func BetaFunc(t Term) (Term, error) {
	b := &betaFunc{funcs: map[string]funcDef{}}
	out, err := b.term(t)
	if err != nil {
		return nil, err
	}
	return DeadLet(out), nil
}

type funcDef struct {
	cont   string
	params []string
	body   Term
}

type betaFunc struct {
	funcs map[string]funcDef
}

func (b *betaFunc) term(t Term) (Term, error) {
	switch t := t.(type) {
	case *LetV:
		in, err := b.term(t.In)
		if err != nil {
			return nil, err
		}
		out := *t
		out.In = in
		return &out, nil
	case *LetT:
		in, err := b.term(t.In)
		if err != nil {
			return nil, err
		}
		out := *t
		out.In = in
		return &out, nil
	case *LetP:
		in, err := b.term(t.In)
		if err != nil {
			return nil, err
		}
		out := *t
		out.In = in
		return &out, nil
	case *LetC:
		body, err := b.term(t.Body)
		if err != nil {
			return nil, err
		}
		in, err := b.term(t.In)
		if err != nil {
			return nil, err
		}
		out := *t
		out.Body = body
		out.In = in
		return &out, nil
	case *LetF:
		body, err := b.term(t.Body)
		if err != nil {
			return nil, err
		}
		b.funcs[t.Name] = funcDef{cont: t.Cont, params: t.Params, body: body}
		in, err := b.term(t.In)
		if err != nil {
			return nil, err
		}
		out := *t
		out.Body = body
		out.In = in
		return &out, nil
	case *AppF:
		def, ok := b.funcs[t.Fun]
		if !ok {
			return t, nil
		}
		if len(def.params) != len(t.Args) {
			return nil, &InvariantError{
				Message: fmt.Sprintf("call of %s passes %d arguments, function takes %d",
					t.Fun, len(t.Args), len(def.params)),
			}
		}
		mapping := map[string]string{def.cont: t.Cont}
		for i, param := range def.params {
			mapping[param] = t.Args[i]
		}
		return Substitute(def.body, mapping), nil
	}
	return t, nil
}
