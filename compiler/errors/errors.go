// Package errors defines the compile-time error taxonomy for the ERD
// DSL compiler: one struct per error kind, each carrying a source
// position where one is available.
package errors

import "fmt"

// Position identifies a location in source text.
type Position struct {
	Line   int
	Column int
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// IsZero reports whether p is the unset zero value. Source lines and
// columns are 1-indexed, so a zero Position never comes from the
// lexer or parser; it marks a validator-stage error that has no
// source position to report.
func (p Position) IsZero() bool {
	return p.Line == 0 && p.Column == 0
}

// withPos prefixes msg with pos, or returns msg unchanged when pos is
// unset.
func withPos(pos Position, msg string) string {
	if pos.IsZero() {
		return msg
	}
	return fmt.Sprintf("%s: %s", pos, msg)
}

// LexError reports a malformed token: an unterminated string or an
// unrecognized character.
type LexError struct {
	Position Position
	Message  string
}

func (e LexError) Error() string {
	return fmt.Sprintf("%s: lex error: %s", e.Position, e.Message)
}

// ParseError reports an unexpected token during recursive-descent
// parsing. Expected holds the human-readable set of tokens the parser
// would have accepted; Found is the lexeme actually seen.
type ParseError struct {
	Position Position
	Expected string
	Found    string
}

func (e ParseError) Error() string {
	return fmt.Sprintf("%s: expected %s, found %s", e.Position, e.Expected, e.Found)
}

// DuplicateEntity reports two entities declared with the same name.
type DuplicateEntity struct {
	Position Position
	Name     string
}

func (e DuplicateEntity) Error() string {
	return withPos(e.Position, fmt.Sprintf("entity %q declared more than once", e.Name))
}

// DuplicateColumn reports two columns declared with the same name
// within one entity.
type DuplicateColumn struct {
	Position Position
	Entity   string
	Column   string
}

func (e DuplicateColumn) Error() string {
	return withPos(e.Position, fmt.Sprintf("column %q declared more than once in entity %q", e.Column, e.Entity))
}

// DuplicateView reports two views declared with the same name.
type DuplicateView struct {
	Position Position
	Name     string
}

func (e DuplicateView) Error() string {
	return withPos(e.Position, fmt.Sprintf("view %q declared more than once", e.Name))
}

// UnknownEntity reports a reference (fk target, relationship endpoint,
// arrangement hint, or view include) to an entity that does not exist.
type UnknownEntity struct {
	Position Position
	Name     string
	Context  string // e.g. "relationship endpoint", "arrangement hint", "view include"
}

func (e UnknownEntity) Error() string {
	return withPos(e.Position, fmt.Sprintf("unknown entity %q in %s", e.Name, e.Context))
}

// UnknownForeignKey reports an fk constraint whose target column does
// not exist on an otherwise valid target entity.
type UnknownForeignKey struct {
	Position     Position
	TargetEntity string
	TargetColumn string
}

func (e UnknownForeignKey) Error() string {
	return withPos(e.Position, fmt.Sprintf("entity %q has no column %q", e.TargetEntity, e.TargetColumn))
}

// UnknownView reports a compile-time request for a view that was never
// declared in the schema.
type UnknownView struct {
	Name string
}

func (e UnknownView) Error() string {
	return fmt.Sprintf("unknown view %q", e.Name)
}

// InvalidDetail reports a detail-level string outside
// tables|pk|pk_fk|all.
type InvalidDetail struct {
	Value string
}

func (e InvalidDetail) Error() string {
	return fmt.Sprintf("invalid detail level %q (want tables, pk, pk_fk, or all)", e.Value)
}

// InvalidCardinality reports a cardinality token outside the allowed
// set (1, *, 0..1, 1..*).
type InvalidCardinality struct {
	Position Position
	Value    string
}

func (e InvalidCardinality) Error() string {
	return fmt.Sprintf("%s: invalid cardinality %q", e.Position, e.Value)
}

// Located reports the position of an error in this taxonomy, if it
// carries one. UnknownView and InvalidDetail are compile-time
// arguments rather than source positions, so they report ok=false.
func Located(err error) (pos Position, ok bool) {
	switch e := err.(type) {
	case LexError:
		return e.Position, true
	case ParseError:
		return e.Position, true
	case DuplicateEntity:
		return e.Position, !e.Position.IsZero()
	case DuplicateColumn:
		return e.Position, !e.Position.IsZero()
	case DuplicateView:
		return e.Position, !e.Position.IsZero()
	case UnknownEntity:
		return e.Position, !e.Position.IsZero()
	case UnknownForeignKey:
		return e.Position, !e.Position.IsZero()
	case InvalidCardinality:
		return e.Position, true
	default:
		return Position{}, false
	}
}
