package metrics

import (
	"testing"

	"github.com/erdlang/erdc/compiler/project"
	"github.com/erdlang/erdc/compiler/schema"
)

func TestComputeBoxTablesHasNoRows(t *testing.T) {
	e := project.RenderEntity{Name: "User"}
	box := ComputeBox(e, DefaultRenderConfig())
	if box.Rows != 0 {
		t.Fatalf("got %d rows", box.Rows)
	}
	if box.Height != DefaultRenderConfig().HeaderHeight+2*DefaultRenderConfig().Padding {
		t.Fatalf("got height %v", box.Height)
	}
}

func TestComputeBoxWidthRoundsUpToMultipleOf8(t *testing.T) {
	e := project.RenderEntity{
		Name: "A",
		Columns: []schema.Column{
			{Name: "id", Type: schema.TypeInt, Constraints: []schema.Constraint{{Kind: schema.ConstraintPK}}},
		},
	}
	box := ComputeBox(e, DefaultRenderConfig())
	if int(box.Width)%8 != 0 {
		t.Fatalf("got width %v, not a multiple of 8", box.Width)
	}
}

func TestComputeBoxContainment(t *testing.T) {
	cfg := DefaultRenderConfig()
	e := project.RenderEntity{
		Name: "Organization",
		Columns: []schema.Column{
			{Name: "id", Type: schema.TypeInt, Constraints: []schema.Constraint{{Kind: schema.ConstraintPK}}},
			{Name: "name", Type: schema.TypeString},
		},
	}
	box := ComputeBox(e, cfg)

	headerWidth := cfg.CharWidth*float64(len(e.Name)) + 2*cfg.Padding
	if box.Width < headerWidth {
		t.Fatalf("box width %v smaller than header width %v", box.Width, headerWidth)
	}
	for _, c := range e.Columns {
		rowWidth := cfg.CharWidth*float64(len(RowText(c))) + 2*cfg.Padding
		if box.Width < rowWidth {
			t.Fatalf("box width %v smaller than row width %v for %q", box.Width, rowWidth, c.Name)
		}
	}
	minHeight := cfg.HeaderHeight + cfg.LineHeight*float64(len(e.Columns)) + 2*cfg.Padding
	if box.Height < minHeight {
		t.Fatalf("box height %v smaller than minimum %v", box.Height, minHeight)
	}
}

func TestConstraintsSuffixOrderAndAbbreviations(t *testing.T) {
	c := schema.Column{
		Name: "org_id",
		Type: schema.TypeInt,
		Constraints: []schema.Constraint{
			{Kind: schema.ConstraintFK, Target: "Org", TargetColumn: "id"},
			{Kind: schema.ConstraintNotNull},
		},
	}
	if got := ConstraintsSuffix(c); got != "FK,NN" {
		t.Fatalf("got %q", got)
	}
}

func TestConstraintsSuffixEmpty(t *testing.T) {
	c := schema.Column{Name: "note", Type: schema.TypeText}
	if got := ConstraintsSuffix(c); got != "" {
		t.Fatalf("got %q, want empty", got)
	}
}

func TestDisplayWidthTreatsNonASCIIAsDoubleWidth(t *testing.T) {
	e := project.RenderEntity{Name: "用户"}
	asciiEquivalent := project.RenderEntity{Name: "abcd"}
	box := ComputeBox(e, DefaultRenderConfig())
	asciiBox := ComputeBox(asciiEquivalent, DefaultRenderConfig())
	if box.Width != asciiBox.Width {
		t.Fatalf("got %v, want %v (2 double-width runes == 4 ascii chars)", box.Width, asciiBox.Width)
	}
}
