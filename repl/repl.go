// Package repl SPDX-License-Identifier: Apache-2.0
package repl

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"cpsc/internal/ast"
	"cpsc/internal/errors"
	"cpsc/internal/parser"
	"cpsc/internal/semantic"
)

const PROMPT = ">> "

// Start reads one expression per line, typechecks it, and prints the
// S-expression together with its inferred type.
func Start(in io.Reader) {
	scanner := bufio.NewScanner(in)

	for {
		fmt.Print(PROMPT)
		scanned := scanner.Scan()
		if !scanned {
			return
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		expr, err := parser.ParseSource("repl", line)
		if err != nil {
			fmt.Print(errors.FormatError(errors.CompilerError{
				Level: errors.Error, Code: errors.ErrorSyntax, Message: err.Error(),
			}))
			continue
		}

		annotated, err := semantic.Check(expr)
		if err != nil {
			ast.ToSExp(os.Stdout, expr)
			fmt.Println()
			fmt.Print(errors.FormatError(errors.Classify(err)))
			continue
		}

		ast.ToSExp(os.Stdout, annotated)
		fmt.Printf("\n  : %s\n", annotated.Type())
	}
}
