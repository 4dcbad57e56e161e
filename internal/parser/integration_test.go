package parser_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cpsc/internal/ast"
	"cpsc/internal/codegen"
	"cpsc/internal/cps"
	"cpsc/internal/parser"
	"cpsc/internal/semantic"
	"cpsc/internal/types"
)

func TestCompileCurrentKernel(t *testing.T) {
	path := filepath.Join("testdata", "current.lam")
	source, err := os.ReadFile(path)
	require.NoError(t, err)

	expr, err := parser.ParseSource(path, string(source))
	require.NoError(t, err)

	annotated, err := semantic.Check(expr)
	require.NoError(t, err)

	// A two-argument function whose first parameter is an open row wide
	// enough for the v and i projections.
	fn, ok := types.Resolve(annotated.Type()).(*types.Func)
	require.True(t, ok)
	require.Len(t, fn.Args, 2)
	sim, ok := types.Resolve(fn.Args[0]).(*types.Tuple)
	require.True(t, ok)
	assert.False(t, sim.Closed)
	assert.GreaterOrEqual(t, len(sim.Fields), 2)

	term, err := cps.Translate(ast.AlphaConvert(annotated))
	require.NoError(t, err)

	optimized, err := cps.NewPipeline().Run(term)
	require.NoError(t, err)

	var b strings.Builder
	require.NoError(t, codegen.Generate(&b, optimized))
	out := b.String()
	assert.Contains(t, out, "(")
	assert.Contains(t, out, "field_at(")
	assert.Contains(t, out, "return ")
}
