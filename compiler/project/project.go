// Package project applies the optional view filter and the global
// detail level to a validated Schema, producing a Render Schema: a
// restricted set of entities, filtered columns, and relationships
// whose endpoints both survive.
package project

import (
	compilererrors "github.com/erdlang/erdc/compiler/errors"
	"github.com/erdlang/erdc/compiler/schema"
)

// DetailLevel selects which columns remain visible on a projected
// entity.
type DetailLevel string

const (
	DetailAll   DetailLevel = "all"
	DetailPKFK  DetailLevel = "pk_fk"
	DetailPK    DetailLevel = "pk"
	DetailTable DetailLevel = "tables"
)

// ParseDetailLevel validates a detail level string from the CLI or
// library entry point.
func ParseDetailLevel(s string) (DetailLevel, error) {
	switch DetailLevel(s) {
	case DetailAll, DetailPKFK, DetailPK, DetailTable:
		return DetailLevel(s), nil
	default:
		return "", compilererrors.InvalidDetail{Value: s}
	}
}

// RenderEntity is a post-projection entity: the same identity as
// schema.Entity, but with Columns already filtered to the active
// detail level.
type RenderEntity struct {
	Name     string
	Columns  []schema.Column
	HasLevel bool
	Level    int64
	HasGroup bool
	Group    string
}

// RenderSchema is the Schema IR restricted to a view and detail level,
// ready for text metrics, layout, and routing.
type RenderSchema struct {
	Entities      []RenderEntity
	Relationships []schema.Relationship
	Arrangement   *schema.ArrangementHint
}

// Project builds a RenderSchema from s. A nil view includes every
// entity; a non-nil view name that does not resolve in s is an
// UnknownView error.
func Project(s *schema.Schema, view *string, detail DetailLevel) (*RenderSchema, error) {
	included := make(map[string]bool, len(s.Entities))
	if view == nil {
		for _, e := range s.Entities {
			included[e.Name] = true
		}
	} else {
		v, ok := s.ViewByName(*view)
		if !ok {
			return nil, compilererrors.UnknownView{Name: *view}
		}
		for _, name := range v.Include {
			included[name] = true
		}
	}

	rs := &RenderSchema{}
	for _, e := range s.Entities {
		if !included[e.Name] {
			continue
		}
		rs.Entities = append(rs.Entities, RenderEntity{
			Name:     e.Name,
			Columns:  filterColumns(e.Columns, detail),
			HasLevel: e.HasLevel,
			Level:    e.Level,
			HasGroup: e.HasGroup,
			Group:    e.Group,
		})
	}

	for _, r := range s.Relationships {
		if included[r.LeftEntity] && included[r.RightEntity] {
			rs.Relationships = append(rs.Relationships, r)
		}
	}

	if s.Arrangement != nil {
		rs.Arrangement = filterArrangement(s.Arrangement, included)
	}

	return rs, nil
}

func filterColumns(cols []schema.Column, detail DetailLevel) []schema.Column {
	switch detail {
	case DetailTable:
		return nil
	case DetailPK:
		return selectColumns(cols, func(c schema.Column) bool {
			return c.HasConstraint(schema.ConstraintPK)
		})
	case DetailPKFK:
		return selectColumns(cols, func(c schema.Column) bool {
			return c.HasConstraint(schema.ConstraintPK) || c.HasConstraint(schema.ConstraintFK)
		})
	default: // DetailAll
		return cols
	}
}

func selectColumns(cols []schema.Column, keep func(schema.Column) bool) []schema.Column {
	var out []schema.Column
	for _, c := range cols {
		if keep(c) {
			out = append(out, c)
		}
	}
	return out
}

// filterArrangement drops entities excluded by the active view from
// each row, per the documented policy that such cells are silently
// skipped and consume no grid space. Rows left empty are dropped.
func filterArrangement(hint *schema.ArrangementHint, included map[string]bool) *schema.ArrangementHint {
	out := &schema.ArrangementHint{}
	for _, row := range hint.Rows {
		var kept []string
		for _, name := range row {
			if included[name] {
				kept = append(kept, name)
			}
		}
		if len(kept) > 0 {
			out.Rows = append(out.Rows, kept)
		}
	}
	return out
}
