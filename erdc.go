// Package erdc compiles ERD DSL source text into a deterministic SVG
// diagram. Compile is a pure function: no I/O, no global state, and no
// concurrency within a single invocation, so independent calls may run
// in parallel safely.
package erdc

import (
	compilererrors "github.com/erdlang/erdc/compiler/errors"
	"github.com/erdlang/erdc/compiler/layout"
	"github.com/erdlang/erdc/compiler/lexer"
	"github.com/erdlang/erdc/compiler/metrics"
	"github.com/erdlang/erdc/compiler/parser"
	"github.com/erdlang/erdc/compiler/project"
	"github.com/erdlang/erdc/compiler/router"
	"github.com/erdlang/erdc/compiler/svg"
	"github.com/erdlang/erdc/compiler/validator"
)

// DetailLevel selects which columns are visible on a rendered entity.
type DetailLevel = project.DetailLevel

const (
	DetailAll   = project.DetailAll
	DetailPKFK  = project.DetailPKFK
	DetailPK    = project.DetailPK
	DetailTable = project.DetailTable
)

// ParseDetailLevel validates a detail level string such as a CLI flag
// value, returning InvalidDetail on an unrecognized one.
func ParseDetailLevel(s string) (DetailLevel, error) {
	return project.ParseDetailLevel(s)
}

// RenderConfig is the resolved set of geometric constants threaded
// through text metrics, layout, and routing.
type RenderConfig = metrics.RenderConfig

// DefaultRenderConfig returns the documented default constants.
func DefaultRenderConfig() RenderConfig {
	return metrics.DefaultRenderConfig()
}

// Compile runs the full pipeline — lex, parse, validate, project,
// measure, lay out, route, emit — with the default RenderConfig.
// detail defaults to DetailAll when empty is passed by callers that
// skip ParseDetailLevel.
func Compile(source string, view *string, detail DetailLevel) (string, error) {
	return CompileWithConfig(source, view, detail, DefaultRenderConfig())
}

// CompileWithConfig runs the full pipeline with caller-supplied
// geometric constants, leaving ordering and anchor-selection semantics
// unaffected: cfg changes rendered geometry only.
func CompileWithConfig(source string, view *string, detail DetailLevel, cfg RenderConfig) (string, error) {
	tokens, lexErrs := lexer.New(source).ScanTokens()
	if len(lexErrs) > 0 {
		return "", lexErrs[0]
	}

	schemaIR, err := parser.New(tokens).Parse()
	if err != nil {
		return "", err
	}

	if err := validator.Validate(schemaIR); err != nil {
		return "", err
	}

	if detail == "" {
		detail = DetailAll
	}

	renderSchema, err := project.Project(schemaIR, view, detail)
	if err != nil {
		return "", err
	}

	lay := layout.Build(renderSchema, cfg)
	edges := router.Route(renderSchema, lay, cfg)

	return svg.Emit(renderSchema, lay, edges, cfg), nil
}

// errorTaxonomy re-exports the compiler's error types under the erdc
// package so callers can type-switch without importing compiler/errors
// directly.
type (
	LexError           = compilererrors.LexError
	ParseError         = compilererrors.ParseError
	DuplicateEntity    = compilererrors.DuplicateEntity
	DuplicateColumn    = compilererrors.DuplicateColumn
	DuplicateView      = compilererrors.DuplicateView
	UnknownEntity      = compilererrors.UnknownEntity
	UnknownForeignKey  = compilererrors.UnknownForeignKey
	UnknownView        = compilererrors.UnknownView
	InvalidDetail      = compilererrors.InvalidDetail
	InvalidCardinality = compilererrors.InvalidCardinality
)

// Located reports the (line, column) position an error carries, if
// any. UnknownView and InvalidDetail are compile-time arguments
// rather than source positions, so they report ok=false.
func Located(err error) (compilererrors.Position, bool) {
	return compilererrors.Located(err)
}
