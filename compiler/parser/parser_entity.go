package parser

import (
	"github.com/erdlang/erdc/compiler/lexer"
	"github.com/erdlang/erdc/compiler/schema"
)

// parseEntity parses:
//
//	entity Name hint* '{' column* '}'
//
// where hint is a leading '@hint.level = N' or '@hint.group = Ident'
// clause. Unrecognized hint keys are accepted and ignored, per the
// DSL's "informational hints" policy.
func (p *Parser) parseEntity() (schema.Entity, error) {
	if _, err := p.consume(lexer.TOKEN_ENTITY); err != nil {
		return schema.Entity{}, err
	}

	name, err := p.consume(lexer.TOKEN_IDENTIFIER)
	if err != nil {
		return schema.Entity{}, err
	}

	e := schema.Entity{Name: name.Lexeme}

	for p.check(lexer.TOKEN_AT) {
		if err := p.parseEntityHint(&e); err != nil {
			return schema.Entity{}, err
		}
	}

	if _, err := p.consume(lexer.TOKEN_LBRACE); err != nil {
		return schema.Entity{}, err
	}

	for !p.check(lexer.TOKEN_RBRACE) {
		if p.isAtEnd() {
			return schema.Entity{}, p.errorf("'}'")
		}
		col, err := p.parseColumn()
		if err != nil {
			return schema.Entity{}, err
		}
		e.Columns = append(e.Columns, col)
	}

	if _, err := p.consume(lexer.TOKEN_RBRACE); err != nil {
		return schema.Entity{}, err
	}

	return e, nil
}

func (p *Parser) parseEntityHint(e *schema.Entity) error {
	if _, err := p.consume(lexer.TOKEN_AT); err != nil {
		return err
	}
	path, err := p.identPath()
	if err != nil {
		return err
	}
	if _, err := p.consume(lexer.TOKEN_EQUAL); err != nil {
		return err
	}

	switch path {
	case "hint.level":
		tok, err := p.consume(lexer.TOKEN_INT_LITERAL)
		if err != nil {
			return err
		}
		e.HasLevel = true
		e.Level = tok.Literal.(int64)
	case "hint.group":
		if p.check(lexer.TOKEN_IDENTIFIER) {
			tok := p.advance()
			e.HasGroup = true
			e.Group = tok.Lexeme
		} else {
			tok, err := p.consume(lexer.TOKEN_STRING_LITERAL)
			if err != nil {
				return err
			}
			e.HasGroup = true
			e.Group = tok.Literal.(string)
		}
	default:
		// Accepted but informational: consume one value token of any
		// recognized literal shape and move on.
		switch {
		case p.check(lexer.TOKEN_INT_LITERAL), p.check(lexer.TOKEN_IDENTIFIER), p.check(lexer.TOKEN_STRING_LITERAL):
			p.advance()
		default:
			return p.errorf("a hint value")
		}
	}
	return nil
}

// parseColumn parses:
//
//	name type constraint*
func (p *Parser) parseColumn() (schema.Column, error) {
	name, err := p.consume(lexer.TOKEN_IDENTIFIER)
	if err != nil {
		return schema.Column{}, err
	}

	typ, err := p.parseColumnType()
	if err != nil {
		return schema.Column{}, err
	}

	col := schema.Column{Name: name.Lexeme, Type: typ}

	for {
		cons, ok, err := p.tryParseConstraint()
		if err != nil {
			return schema.Column{}, err
		}
		if !ok {
			break
		}
		col.Constraints = append(col.Constraints, cons)
	}

	return col, nil
}

func (p *Parser) parseColumnType() (schema.ColumnType, error) {
	tok := p.peek()
	switch tok.Type {
	case lexer.TOKEN_INT:
		p.advance()
		return schema.TypeInt, nil
	case lexer.TOKEN_STRING_TYPE:
		p.advance()
		return schema.TypeString, nil
	case lexer.TOKEN_DECIMAL:
		p.advance()
		return schema.TypeDecimal, nil
	case lexer.TOKEN_TIMESTAMP:
		p.advance()
		return schema.TypeTimestamp, nil
	case lexer.TOKEN_BOOLEAN:
		p.advance()
		return schema.TypeBoolean, nil
	case lexer.TOKEN_TEXT:
		p.advance()
		return schema.TypeText, nil
	default:
		return "", p.errorf("a column type")
	}
}

// tryParseConstraint parses one constraint if the current token starts
// one, reporting ok=false (no error) if the column's constraint list
// has ended.
func (p *Parser) tryParseConstraint() (schema.Constraint, bool, error) {
	switch {
	case p.check(lexer.TOKEN_PK):
		p.advance()
		return schema.Constraint{Kind: schema.ConstraintPK}, true, nil
	case p.check(lexer.TOKEN_UNIQUE):
		p.advance()
		return schema.Constraint{Kind: schema.ConstraintUnique}, true, nil
	case p.check(lexer.TOKEN_NOT):
		p.advance()
		if _, err := p.consume(lexer.TOKEN_NULL); err != nil {
			return schema.Constraint{}, false, err
		}
		return schema.Constraint{Kind: schema.ConstraintNotNull}, true, nil
	case p.check(lexer.TOKEN_FK):
		p.advance()
		if _, err := p.consume(lexer.TOKEN_ARROW); err != nil {
			return schema.Constraint{}, false, err
		}
		target, err := p.consume(lexer.TOKEN_IDENTIFIER)
		if err != nil {
			return schema.Constraint{}, false, err
		}
		if _, err := p.consume(lexer.TOKEN_DOT); err != nil {
			return schema.Constraint{}, false, err
		}
		column, err := p.consume(lexer.TOKEN_IDENTIFIER)
		if err != nil {
			return schema.Constraint{}, false, err
		}
		return schema.Constraint{
			Kind:         schema.ConstraintFK,
			Target:       target.Lexeme,
			TargetColumn: column.Lexeme,
		}, true, nil
	default:
		return schema.Constraint{}, false, nil
	}
}
