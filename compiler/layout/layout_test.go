package layout

import (
	"testing"

	"github.com/erdlang/erdc/compiler/metrics"
	"github.com/erdlang/erdc/compiler/project"
	"github.com/erdlang/erdc/compiler/schema"
)

func pk(name string) schema.Column {
	return schema.Column{Name: name, Type: schema.TypeInt, Constraints: []schema.Constraint{{Kind: schema.ConstraintPK}}}
}

func TestBuildSquareGridNoHints(t *testing.T) {
	rs := &project.RenderSchema{
		Entities: []project.RenderEntity{
			{Name: "A", Columns: []schema.Column{pk("id")}},
			{Name: "B", Columns: []schema.Column{pk("id")}},
			{Name: "C", Columns: []schema.Column{pk("id")}},
			{Name: "D", Columns: []schema.Column{pk("id")}},
		},
	}
	result := Build(rs, metrics.DefaultRenderConfig())
	if len(result.Placements) != 4 {
		t.Fatalf("got %d placements", len(result.Placements))
	}
	for _, p := range result.Placements {
		if p.Col > 1 || p.Row > 1 {
			t.Fatalf("expected a 2x2 grid, got %+v", p)
		}
	}
}

func TestBuildHonorsArrangementHint(t *testing.T) {
	rs := &project.RenderSchema{
		Entities: []project.RenderEntity{
			{Name: "A", Columns: []schema.Column{pk("id")}},
			{Name: "B", Columns: []schema.Column{pk("id")}},
			{Name: "C", Columns: []schema.Column{pk("id")}},
		},
		Arrangement: &schema.ArrangementHint{Rows: [][]string{{"A", "B"}, {"C"}}},
	}
	result := Build(rs, metrics.DefaultRenderConfig())
	if result.ByName["A"].Row != 0 || result.ByName["B"].Row != 0 {
		t.Fatalf("expected A,B in row 0, got %+v %+v", result.ByName["A"], result.ByName["B"])
	}
	if result.ByName["C"].Row != 1 {
		t.Fatalf("expected C in row 1, got %+v", result.ByName["C"])
	}
}

func TestBuildLevelGrouping(t *testing.T) {
	rs := &project.RenderSchema{
		Entities: []project.RenderEntity{
			{Name: "A", HasLevel: true, Level: 1, Columns: []schema.Column{pk("id")}},
			{Name: "B", HasLevel: true, Level: 0, Columns: []schema.Column{pk("id")}},
			{Name: "C", HasLevel: true, Level: 1, Columns: []schema.Column{pk("id")}},
		},
	}
	result := Build(rs, metrics.DefaultRenderConfig())
	if result.ByName["B"].Row != 0 {
		t.Fatalf("expected level-0 entity first, got %+v", result.ByName["B"])
	}
	if result.ByName["A"].Row != 1 || result.ByName["C"].Row != 1 {
		t.Fatalf("expected level-1 entities in row 1, got %+v %+v", result.ByName["A"], result.ByName["C"])
	}
	if result.ByName["A"].Col >= result.ByName["C"].Col {
		t.Fatalf("expected declaration order within level: A before C, got %+v %+v", result.ByName["A"], result.ByName["C"])
	}
}

func TestBuildCellSizingUsesMaxBoxInColumn(t *testing.T) {
	rs := &project.RenderSchema{
		Entities: []project.RenderEntity{
			{Name: "Organization", Columns: []schema.Column{pk("id"), {Name: "name", Type: schema.TypeString}}},
			{Name: "B", Columns: []schema.Column{pk("id")}},
		},
		Arrangement: &schema.ArrangementHint{Rows: [][]string{{"Organization"}, {"B"}}},
	}
	result := Build(rs, metrics.DefaultRenderConfig())
	org, b := result.ByName["Organization"], result.ByName["B"]
	if org.X+org.W/2 != b.X+b.W/2 {
		t.Fatalf("expected narrower box centered in the column sized by the widest box, got %+v %+v", org, b)
	}
}

func TestBuildNoOverlapBetweenRows(t *testing.T) {
	rs := &project.RenderSchema{
		Entities: []project.RenderEntity{
			{Name: "A", Columns: []schema.Column{pk("id")}},
			{Name: "B", Columns: []schema.Column{pk("id")}},
		},
		Arrangement: &schema.ArrangementHint{Rows: [][]string{{"A"}, {"B"}}},
	}
	result := Build(rs, metrics.DefaultRenderConfig())
	a := result.ByName["A"]
	b := result.ByName["B"]
	if b.Y < a.Y+a.H {
		t.Fatalf("expected row B below row A with gap, got a=%+v b=%+v", a, b)
	}
}
