package parser

import (
	"github.com/alecthomas/participle/v2/lexer"
)

// SurfaceLexer tokenizes the lisp-style surface syntax. Ident covers
// keywords too; the grammar matches them by literal value.
var SurfaceLexer = lexer.MustStateful(lexer.Rules{
	"Root": {
		// Comments run to end of line
		{"Comment", `;[^\n]*`, nil},

		// Number literals (all numbers are F64 in the surface language)
		{"Number", `[0-9]+(\.[0-9]+)?`, nil},

		// Identifiers and keywords
		{"Ident", `[a-zA-Z_][a-zA-Z0-9_-]*`, nil},

		// Primitive operators
		{"Operator", `[-+*]`, nil},

		// Punctuation
		{"Punct", `[()]`, nil},

		// Whitespace
		{"Whitespace", `[ \t\r\n]+`, nil},
	},
})
