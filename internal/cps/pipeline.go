package cps

import (
	"github.com/tliron/commonlog"
)

// Pass is a single term-to-term transformation.
type Pass interface {
	Name() string
	Description() string
	Apply(Term) (Term, error)
}

// Pipeline runs a sequence of passes. Passes stay silent on their own; the
// pipeline traces each stage at debug level.
type Pipeline struct {
	passes []Pass
	log    commonlog.Logger
}

// NewPipeline builds the default pass sequence: dead-let, beta-cont,
// beta-func, beta-cont again, prim-cse, prim-simplify. Function inlining
// rewrites the callee's return continuation into the caller's, exposing
// fresh continuation redexes; the second beta-cont discharges them. The
// sequence is still a straight line, no driver-level loops.
func NewPipeline() *Pipeline {
	p := &Pipeline{log: commonlog.GetLogger("cpsc.pipeline")}
	p.AddPass(&DeadLetPass{})
	p.AddPass(&BetaContPass{})
	p.AddPass(&BetaFuncPass{})
	p.AddPass(&BetaContPass{})
	p.AddPass(&PrimCSEPass{})
	p.AddPass(&PrimSimplifyPass{})
	return p
}

func (p *Pipeline) AddPass(pass Pass) {
	p.passes = append(p.passes, pass)
}

// Run applies each pass in order, stopping at the first failure.
func (p *Pipeline) Run(t Term) (Term, error) {
	for _, pass := range p.passes {
		p.log.Debugf("%s: %s", pass.Name(), pass.Description())
		out, err := pass.Apply(t)
		if err != nil {
			return nil, err
		}
		t = out
	}
	return t, nil
}

type DeadLetPass struct{}

func (*DeadLetPass) Name() string        { return "dead-let" }
func (*DeadLetPass) Description() string { return "removes bindings whose names are never used" }
func (*DeadLetPass) Apply(t Term) (Term, error) {
	return DeadLet(t), nil
}

type BetaContPass struct{}

func (*BetaContPass) Name() string        { return "beta-cont" }
func (*BetaContPass) Description() string { return "inlines local continuation calls" }
func (*BetaContPass) Apply(t Term) (Term, error) {
	return BetaCont(t)
}

type BetaFuncPass struct{}

func (*BetaFuncPass) Name() string        { return "beta-func" }
func (*BetaFuncPass) Description() string { return "inlines function calls" }
func (*BetaFuncPass) Apply(t Term) (Term, error) {
	return BetaFunc(t)
}

type PrimCSEPass struct{}

func (*PrimCSEPass) Name() string        { return "prim-cse" }
func (*PrimCSEPass) Description() string { return "value-numbers primitive applications" }
func (*PrimCSEPass) Apply(t Term) (Term, error) {
	return PrimCSE(t), nil
}

type PrimSimplifyPass struct{}

func (*PrimSimplifyPass) Name() string        { return "prim-simplify" }
func (*PrimSimplifyPass) Description() string { return "constant-folds primitive applications" }
func (*PrimSimplifyPass) Apply(t Term) (Term, error) {
	return PrimSimplify(t), nil
}
