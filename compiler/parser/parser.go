// Package parser implements a recursive-descent parser that consumes
// the ERD DSL token stream and produces a compiler/schema.Schema.
// The parser is non-recovering: the first error aborts the parse.
package parser

import (
	compilererrors "github.com/erdlang/erdc/compiler/errors"
	"github.com/erdlang/erdc/compiler/lexer"
	"github.com/erdlang/erdc/compiler/schema"
)

// Parser transforms a token stream into a Schema.
type Parser struct {
	tokens  []lexer.Token
	current int
}

// New creates a Parser over an already-scanned token stream.
func New(tokens []lexer.Token) *Parser {
	return &Parser{tokens: tokens}
}

// Parse parses the token stream into a Schema. It returns the first
// error encountered, if any.
func (p *Parser) Parse() (*schema.Schema, error) {
	s := &schema.Schema{}

	for !p.isAtEnd() {
		switch {
		case p.check(lexer.TOKEN_ENTITY):
			e, err := p.parseEntity()
			if err != nil {
				return nil, err
			}
			s.Entities = append(s.Entities, e)
		case p.check(lexer.TOKEN_REL):
			edges, err := p.parseRelBlock()
			if err != nil {
				return nil, err
			}
			s.Relationships = append(s.Relationships, edges...)
		case p.check(lexer.TOKEN_VIEW):
			v, err := p.parseView()
			if err != nil {
				return nil, err
			}
			s.Views = append(s.Views, v)
		case p.check(lexer.TOKEN_AT):
			hint, err := p.parseArrangementHint()
			if err != nil {
				return nil, err
			}
			s.Arrangement = hint
		default:
			return nil, p.errorf("'entity', 'rel', 'view', or '@hint.arrangement'")
		}
	}

	return s, nil
}

// --- token-stream helpers, mirroring a classic hand-rolled parser ---

func (p *Parser) isAtEnd() bool {
	return p.peek().Type == lexer.TOKEN_EOF
}

func (p *Parser) peek() lexer.Token {
	return p.tokens[p.current]
}

func (p *Parser) previous() lexer.Token {
	return p.tokens[p.current-1]
}

func (p *Parser) advance() lexer.Token {
	if !p.isAtEnd() {
		p.current++
	}
	return p.previous()
}

func (p *Parser) check(t lexer.TokenType) bool {
	return p.peek().Type == t
}

func (p *Parser) match(types ...lexer.TokenType) bool {
	for _, t := range types {
		if p.check(t) {
			p.advance()
			return true
		}
	}
	return false
}

func (p *Parser) consume(t lexer.TokenType) (lexer.Token, error) {
	if p.check(t) {
		return p.advance(), nil
	}
	return lexer.Token{}, p.errorf(t.String())
}

func (p *Parser) errorf(expected string) error {
	tok := p.peek()
	found := tok.Lexeme
	if tok.Type == lexer.TOKEN_EOF {
		found = "end of input"
	}
	return compilererrors.ParseError{
		Position: compilererrors.Position{Line: tok.Line, Column: tok.Column},
		Expected: expected,
		Found:    found,
	}
}

func (p *Parser) pos() compilererrors.Position {
	tok := p.peek()
	return compilererrors.Position{Line: tok.Line, Column: tok.Column}
}

// identPath parses a dot-separated identifier path such as
// "hint.level", returning the joined dotted string.
func (p *Parser) identPath() (string, error) {
	first, err := p.consume(lexer.TOKEN_IDENTIFIER)
	if err != nil {
		return "", err
	}
	path := first.Lexeme
	for p.match(lexer.TOKEN_DOT) {
		next, err := p.consume(lexer.TOKEN_IDENTIFIER)
		if err != nil {
			return "", err
		}
		path += "." + next.Lexeme
	}
	return path, nil
}
