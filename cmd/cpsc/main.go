// SPDX-License-Identifier: Apache-2.0
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/kr/pretty"
	"github.com/tliron/commonlog"

	"cpsc/internal/ast"
	"cpsc/internal/codegen"
	"cpsc/internal/cps"
	"cpsc/internal/errors"
	"cpsc/internal/parser"
	"cpsc/internal/semantic"
)

func main() {
	debug := flag.Bool("debug", false, "dump the typed AST and the CPS term at each stage")
	verbose := flag.Bool("v", false, "trace the pass pipeline")
	flag.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: cpsc [-debug] [-v] <file.lam>")
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() < 1 {
		flag.Usage()
		os.Exit(1)
	}

	verbosity := 0
	if *verbose {
		verbosity = 1
	}
	commonlog.Configure(verbosity, nil)

	startTime := time.Now()
	path := flag.Arg(0)

	source, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to read file: %v\n", err)
		os.Exit(1)
	}

	expr, err := parser.ParseSource(path, string(source))
	if err != nil {
		fail(startTime, errors.CompilerError{
			Level: errors.Error, Code: errors.ErrorSyntax, Message: err.Error(),
		})
	}

	annotated, err := semantic.Check(expr)
	if err != nil {
		fail(startTime, errors.Classify(err))
	}
	if *debug {
		fmt.Fprintf(os.Stderr, "typed AST:\n%# v\n", pretty.Formatter(annotated))
	}

	renamed := ast.AlphaConvert(annotated)

	term, err := cps.Translate(renamed)
	if err != nil {
		fail(startTime, errors.Classify(err))
	}
	if *debug {
		fmt.Fprintf(os.Stderr, "CPS:\n%s\n", cps.SexpString(term))
	}

	optimized, err := cps.NewPipeline().Run(term)
	if err != nil {
		fail(startTime, errors.Classify(err))
	}
	if *debug {
		fmt.Fprintf(os.Stderr, "optimized CPS:\n%s\n", cps.SexpString(optimized))
	}

	if err := codegen.Generate(os.Stdout, optimized); err != nil {
		fail(startTime, errors.Classify(err))
	}

	color.Green("Successfully compiled %s in %s", path, formatDuration(time.Since(startTime)))
}

func fail(startTime time.Time, diag errors.CompilerError) {
	fmt.Fprint(os.Stderr, errors.FormatError(diag))
	color.Red("Compilation failed after %s", formatDuration(time.Since(startTime)))
	os.Exit(1)
}

func formatDuration(d time.Duration) string {
	switch {
	case d >= time.Minute:
		return fmt.Sprintf("%.2fmin", d.Minutes())
	case d >= time.Second:
		return fmt.Sprintf("%.2fs", d.Seconds())
	case d >= time.Millisecond:
		return fmt.Sprintf("%.1fms", float64(d.Nanoseconds())/1000000.0)
	case d >= time.Microsecond:
		return fmt.Sprintf("%.1fμs", float64(d.Nanoseconds())/1000.0)
	default:
		return fmt.Sprintf("%dns", d.Nanoseconds())
	}
}
