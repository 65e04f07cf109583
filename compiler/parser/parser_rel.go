package parser

import (
	compilererrors "github.com/erdlang/erdc/compiler/errors"
	"github.com/erdlang/erdc/compiler/lexer"
	"github.com/erdlang/erdc/compiler/schema"
)

// parseRelBlock parses:
//
//	rel '{' edge* '}'
func (p *Parser) parseRelBlock() ([]schema.Relationship, error) {
	if _, err := p.consume(lexer.TOKEN_REL); err != nil {
		return nil, err
	}
	if _, err := p.consume(lexer.TOKEN_LBRACE); err != nil {
		return nil, err
	}

	var edges []schema.Relationship
	for !p.check(lexer.TOKEN_RBRACE) {
		if p.isAtEnd() {
			return nil, p.errorf("'}'")
		}
		edge, err := p.parseEdge()
		if err != nil {
			return nil, err
		}
		edges = append(edges, edge)
	}

	if _, err := p.consume(lexer.TOKEN_RBRACE); err != nil {
		return nil, err
	}
	return edges, nil
}

// parseEdge parses:
//
//	Name card '--' card Name (':' STRING)? ('as' Ident)?
func (p *Parser) parseEdge() (schema.Relationship, error) {
	left, err := p.consume(lexer.TOKEN_IDENTIFIER)
	if err != nil {
		return schema.Relationship{}, err
	}
	leftCard, err := p.parseCardinality()
	if err != nil {
		return schema.Relationship{}, err
	}
	if _, err := p.consume(lexer.TOKEN_DASHDASH); err != nil {
		return schema.Relationship{}, err
	}
	rightCard, err := p.parseCardinality()
	if err != nil {
		return schema.Relationship{}, err
	}
	right, err := p.consume(lexer.TOKEN_IDENTIFIER)
	if err != nil {
		return schema.Relationship{}, err
	}

	rel := schema.Relationship{
		LeftEntity:  left.Lexeme,
		LeftCard:    leftCard,
		RightEntity: right.Lexeme,
		RightCard:   rightCard,
	}

	if p.match(lexer.TOKEN_COLON) {
		label, err := p.consume(lexer.TOKEN_STRING_LITERAL)
		if err != nil {
			return schema.Relationship{}, err
		}
		rel.HasLabel = true
		rel.Label = label.Literal.(string)
	}

	if p.match(lexer.TOKEN_AS) {
		role, err := p.consume(lexer.TOKEN_IDENTIFIER)
		if err != nil {
			return schema.Relationship{}, err
		}
		rel.HasRole = true
		rel.Role = role.Lexeme
	}

	return rel, nil
}

func (p *Parser) parseCardinality() (schema.Cardinality, error) {
	pos := p.pos()
	tok := p.peek()

	switch tok.Type {
	case lexer.TOKEN_INT_LITERAL:
		p.advance()
		if tok.Literal.(int64) != 1 {
			return 0, compilererrors.InvalidCardinality{Position: pos, Value: tok.Lexeme}
		}
		return schema.CardOne, nil
	case lexer.TOKEN_STAR:
		p.advance()
		return schema.CardMany, nil
	case lexer.TOKEN_CARDINALITY:
		p.advance()
		switch tok.Lexeme {
		case "0..1":
			return schema.CardZeroOne, nil
		case "1..*":
			return schema.CardOneMany, nil
		default:
			return 0, compilererrors.InvalidCardinality{Position: pos, Value: tok.Lexeme}
		}
	default:
		return 0, p.errorf("a cardinality (1, *, 0..1, 1..*)")
	}
}

// parseView parses:
//
//	view Name '{' include NameList '}'
func (p *Parser) parseView() (schema.View, error) {
	if _, err := p.consume(lexer.TOKEN_VIEW); err != nil {
		return schema.View{}, err
	}
	name, err := p.consume(lexer.TOKEN_IDENTIFIER)
	if err != nil {
		return schema.View{}, err
	}
	if _, err := p.consume(lexer.TOKEN_LBRACE); err != nil {
		return schema.View{}, err
	}
	if _, err := p.consume(lexer.TOKEN_INCLUDE); err != nil {
		return schema.View{}, err
	}

	names, err := p.parseNameList()
	if err != nil {
		return schema.View{}, err
	}

	if _, err := p.consume(lexer.TOKEN_RBRACE); err != nil {
		return schema.View{}, err
	}

	return schema.View{Name: name.Lexeme, Include: names}, nil
}

func (p *Parser) parseNameList() ([]string, error) {
	first, err := p.consume(lexer.TOKEN_IDENTIFIER)
	if err != nil {
		return nil, err
	}
	names := []string{first.Lexeme}
	for p.match(lexer.TOKEN_COMMA) {
		next, err := p.consume(lexer.TOKEN_IDENTIFIER)
		if err != nil {
			return nil, err
		}
		names = append(names, next.Lexeme)
	}
	return names, nil
}

// parseArrangementHint parses:
//
//	@hint.arrangement = '{' row (';' row)* '}'
//
// where row = Name (Name)*
func (p *Parser) parseArrangementHint() (*schema.ArrangementHint, error) {
	if _, err := p.consume(lexer.TOKEN_AT); err != nil {
		return nil, err
	}
	path, err := p.identPath()
	if err != nil {
		return nil, err
	}
	if path != "hint.arrangement" {
		return nil, p.errorf("'hint.arrangement'")
	}
	if _, err := p.consume(lexer.TOKEN_EQUAL); err != nil {
		return nil, err
	}
	if _, err := p.consume(lexer.TOKEN_LBRACE); err != nil {
		return nil, err
	}

	hint := &schema.ArrangementHint{}
	row, err := p.parseArrangementRow()
	if err != nil {
		return nil, err
	}
	hint.Rows = append(hint.Rows, row)

	for p.match(lexer.TOKEN_SEMI) {
		row, err := p.parseArrangementRow()
		if err != nil {
			return nil, err
		}
		hint.Rows = append(hint.Rows, row)
	}

	if _, err := p.consume(lexer.TOKEN_RBRACE); err != nil {
		return nil, err
	}

	return hint, nil
}

func (p *Parser) parseArrangementRow() ([]string, error) {
	var names []string
	for p.check(lexer.TOKEN_IDENTIFIER) {
		names = append(names, p.advance().Lexeme)
	}
	if len(names) == 0 {
		return nil, p.errorf("an entity name")
	}
	return names, nil
}
