package errors

import (
	"fmt"
	"strings"

	"github.com/fatih/color"

	"cpsc/internal/codegen"
	"cpsc/internal/cps"
	"cpsc/internal/semantic"
	"cpsc/internal/types"
)

// ErrorLevel represents the severity of a diagnostic.
type ErrorLevel string

const (
	Error   ErrorLevel = "error"
	Warning ErrorLevel = "warning"
	Note    ErrorLevel = "note"
)

// CompilerError is a diagnostic ready for formatting. Context carries the
// offending node's S-expression rendering, when one was available.
type CompilerError struct {
	Level   ErrorLevel
	Code    string
	Message string
	Context string
}

// Classify maps the pipeline's error taxonomy onto diagnostic codes.
func Classify(err error) CompilerError {
	switch err := err.(type) {
	case *types.TypeError:
		code := ErrorCannotUnify
		if strings.Contains(err.Message, "expected a function") {
			code = ErrorNotAFunction
		} else if strings.Contains(err.Message, "Arity mismatch") {
			code = ErrorApplicationArity
		}
		return CompilerError{Level: Error, Code: code, Message: err.Message, Context: err.Context}
	case *semantic.PrimError:
		code := ErrorUnknownPrim
		if strings.Contains(err.Message, "arity") {
			code = ErrorPrimArity
		}
		return CompilerError{Level: Error, Code: code, Message: err.Error()}
	case *cps.LowerError:
		return CompilerError{Level: Error, Code: ErrorNoLowering, Message: err.Message}
	case *cps.InvariantError:
		return CompilerError{Level: Error, Code: ErrorContinuationArity, Message: err.Message}
	case *codegen.EmitError:
		return CompilerError{Level: Error, Code: ErrorUntranslatableType, Message: err.Message}
	}
	return CompilerError{Level: Error, Message: err.Error()}
}

// FormatError renders a diagnostic with the level and code highlighted and
// the context block dimmed.
func FormatError(err CompilerError) string {
	var result strings.Builder

	levelColor := getLevelColor(err.Level)
	dim := color.New(color.Faint).SprintFunc()

	if err.Code != "" {
		result.WriteString(fmt.Sprintf("%s[%s]: %s\n",
			levelColor(string(err.Level)), err.Code, err.Message))
	} else {
		result.WriteString(fmt.Sprintf("%s: %s\n",
			levelColor(string(err.Level)), err.Message))
	}

	if err.Context != "" {
		for _, line := range strings.Split(err.Context, "\n") {
			result.WriteString(dim(line))
			result.WriteString("\n")
		}
	}

	return result.String()
}

func getLevelColor(level ErrorLevel) func(...interface{}) string {
	switch level {
	case Warning:
		return color.New(color.FgYellow, color.Bold).SprintFunc()
	case Note:
		return color.New(color.FgBlue, color.Bold).SprintFunc()
	default:
		return color.New(color.FgRed, color.Bold).SprintFunc()
	}
}
