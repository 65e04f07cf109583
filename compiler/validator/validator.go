// Package validator runs the referential-integrity and normalization
// pass over a parsed Schema, following the checks in order: duplicate
// names, column/constraint consistency, relationship endpoints, view
// membership, and arrangement hint resolution. The first violation
// aborts validation, mirroring the parser's non-recovering style.
package validator

import (
	"fmt"

	compilererrors "github.com/erdlang/erdc/compiler/errors"
	"github.com/erdlang/erdc/compiler/schema"
)

// Validate checks s for referential integrity, normalizes it in place
// (promoting pk to also imply not_null, auto-filling the arrangement
// hint with entities it omits), and returns the first error found, if
// any.
func Validate(s *schema.Schema) error {
	entityIndex, err := checkDuplicateEntities(s)
	if err != nil {
		return err
	}

	if err := checkColumns(s, entityIndex); err != nil {
		return err
	}

	if err := checkRelationships(s, entityIndex); err != nil {
		return err
	}

	if err := checkViews(s); err != nil {
		return err
	}

	if err := resolveArrangement(s, entityIndex); err != nil {
		return err
	}

	normalize(s)

	return nil
}

func checkDuplicateEntities(s *schema.Schema) (map[string]bool, error) {
	seen := make(map[string]bool, len(s.Entities))
	for _, e := range s.Entities {
		if seen[e.Name] {
			return nil, compilererrors.DuplicateEntity{Name: e.Name}
		}
		seen[e.Name] = true
	}
	return seen, nil
}

func checkColumns(s *schema.Schema, entityIndex map[string]bool) error {
	for _, e := range s.Entities {
		cols := make(map[string]bool, len(e.Columns))
		for _, c := range e.Columns {
			if cols[c.Name] {
				return compilererrors.DuplicateColumn{Entity: e.Name, Column: c.Name}
			}
			cols[c.Name] = true

			for _, cons := range c.Constraints {
				if cons.Kind != schema.ConstraintFK {
					continue
				}
				if !entityIndex[cons.Target] {
					return compilererrors.UnknownEntity{Name: cons.Target, Context: "fk target"}
				}
				target, _ := s.EntityByName(cons.Target)
				if _, ok := target.ColumnByName(cons.TargetColumn); !ok {
					return compilererrors.UnknownForeignKey{
						TargetEntity: cons.Target,
						TargetColumn: cons.TargetColumn,
					}
				}
			}
		}
	}
	return nil
}

func checkRelationships(s *schema.Schema, entityIndex map[string]bool) error {
	for _, r := range s.Relationships {
		if !entityIndex[r.LeftEntity] {
			return compilererrors.UnknownEntity{Name: r.LeftEntity, Context: "relationship endpoint"}
		}
		if !entityIndex[r.RightEntity] {
			return compilererrors.UnknownEntity{Name: r.RightEntity, Context: "relationship endpoint"}
		}
	}
	return nil
}

func checkViews(s *schema.Schema) error {
	seen := make(map[string]bool, len(s.Views))
	for _, v := range s.Views {
		if seen[v.Name] {
			return compilererrors.DuplicateView{Name: v.Name}
		}
		seen[v.Name] = true

		for _, name := range v.Include {
			found := false
			for _, e := range s.Entities {
				if e.Name == name {
					found = true
					break
				}
			}
			if !found {
				return compilererrors.UnknownEntity{Name: name, Context: "view include"}
			}
		}
	}
	return nil
}

// resolveArrangement validates that every entity named in the
// arrangement hint exists, then applies the auto-fill policy:
// entities the hint omits are appended, each in its own row of width
// one, in declaration order.
func resolveArrangement(s *schema.Schema, entityIndex map[string]bool) error {
	if s.Arrangement == nil {
		return nil
	}

	mentioned := make(map[string]bool)
	for _, row := range s.Arrangement.Rows {
		for _, name := range row {
			if !entityIndex[name] {
				return compilererrors.UnknownEntity{Name: name, Context: "arrangement hint"}
			}
			if mentioned[name] {
				return fmt.Errorf("entity %q named more than once in arrangement hint", name)
			}
			mentioned[name] = true
		}
	}

	for _, e := range s.Entities {
		if !mentioned[e.Name] {
			s.Arrangement.Rows = append(s.Arrangement.Rows, []string{e.Name})
		}
	}

	return nil
}

// normalize applies pk ⇒ not_null and any other structural fixups that
// must hold before layout and emission see the schema.
func normalize(s *schema.Schema) {
	for i := range s.Entities {
		e := &s.Entities[i]
		for j := range e.Columns {
			c := &e.Columns[j]
			if c.HasConstraint(schema.ConstraintPK) && !c.HasConstraint(schema.ConstraintNotNull) {
				c.Constraints = append(c.Constraints, schema.Constraint{Kind: schema.ConstraintNotNull})
			}
		}
	}
}
