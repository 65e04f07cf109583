package router

import (
	"math"
	"testing"

	"github.com/erdlang/erdc/compiler/layout"
	"github.com/erdlang/erdc/compiler/metrics"
	"github.com/erdlang/erdc/compiler/project"
	"github.com/erdlang/erdc/compiler/schema"
)

func onBoundary(t *testing.T, p layout.Placement, pt Point) {
	t.Helper()
	const eps = 0.5
	onVertical := math.Abs(pt.X-p.X) < eps || math.Abs(pt.X-(p.X+p.W)) < eps
	onHorizontal := math.Abs(pt.Y-p.Y) < eps || math.Abs(pt.Y-(p.Y+p.H)) < eps
	withinX := pt.X >= p.X-eps && pt.X <= p.X+p.W+eps
	withinY := pt.Y >= p.Y-eps && pt.Y <= p.Y+p.H+eps
	if !((onVertical && withinY) || (onHorizontal && withinX)) {
		t.Fatalf("point %+v not on boundary of box %+v", pt, p)
	}
}

func rsAB() (*project.RenderSchema, schema.Relationship) {
	rel := schema.Relationship{LeftEntity: "A", LeftCard: schema.CardOne, RightEntity: "B", RightCard: schema.CardMany}
	rs := &project.RenderSchema{
		Entities: []project.RenderEntity{
			{Name: "A", Columns: []schema.Column{{Name: "id", Type: schema.TypeInt}}},
			{Name: "B", Columns: []schema.Column{{Name: "id", Type: schema.TypeInt}}},
		},
		Relationships: []schema.Relationship{rel},
	}
	return rs, rel
}

func TestRouteEdgeEndpointsOnBoundary(t *testing.T) {
	rs, _ := rsAB()
	cfg := metrics.DefaultRenderConfig()
	lay := layout.Build(rs, cfg)
	edges := Route(rs, lay, cfg)
	if len(edges) != 1 {
		t.Fatalf("got %d edges", len(edges))
	}
	e := edges[0]
	onBoundary(t, lay.ByName["A"], e.Source.Anchor)
	onBoundary(t, lay.ByName["B"], e.Target.Anchor)
}

func TestRouteMarkersMatchCardinality(t *testing.T) {
	rs, _ := rsAB()
	cfg := metrics.DefaultRenderConfig()
	lay := layout.Build(rs, cfg)
	e := Route(rs, lay, cfg)[0]
	if !e.Source.Marker.Tick || e.Source.Marker.CrowFoot {
		t.Fatalf("expected tick marker on 'one' end, got %+v", e.Source.Marker)
	}
	if !e.Target.Marker.CrowFoot || e.Target.Marker.Tick {
		t.Fatalf("expected crow's-foot marker on 'many' end, got %+v", e.Target.Marker)
	}
}

func TestRouteParallelEdgesSeparateAnchors(t *testing.T) {
	rs := &project.RenderSchema{
		Entities: []project.RenderEntity{
			{Name: "A", Columns: []schema.Column{{Name: "id", Type: schema.TypeInt}}},
			{Name: "B", Columns: []schema.Column{{Name: "id", Type: schema.TypeInt}}},
		},
		Relationships: []schema.Relationship{
			{LeftEntity: "A", LeftCard: schema.CardOne, RightEntity: "B", RightCard: schema.CardMany, HasLabel: true, Label: "x"},
			{LeftEntity: "A", LeftCard: schema.CardOne, RightEntity: "B", RightCard: schema.CardMany, HasLabel: true, Label: "y"},
		},
	}
	cfg := metrics.DefaultRenderConfig()
	lay := layout.Build(rs, cfg)
	edges := Route(rs, lay, cfg)
	if len(edges) != 2 {
		t.Fatalf("got %d edges", len(edges))
	}
	if edges[0].Source.Anchor == edges[1].Source.Anchor {
		t.Fatalf("expected distinct anchors, got %+v and %+v", edges[0].Source.Anchor, edges[1].Source.Anchor)
	}
	if edges[0].Label == edges[1].Label {
		t.Fatalf("expected distinct labels")
	}
}

func TestRouteSelfLoopIsClosedAndNonDegenerate(t *testing.T) {
	rs := &project.RenderSchema{
		Entities: []project.RenderEntity{
			{Name: "N", Columns: []schema.Column{{Name: "id", Type: schema.TypeInt}}},
		},
		Relationships: []schema.Relationship{
			{LeftEntity: "N", LeftCard: schema.CardOne, RightEntity: "N", RightCard: schema.CardMany, HasLabel: true, Label: "parent"},
		},
	}
	cfg := metrics.DefaultRenderConfig()
	lay := layout.Build(rs, cfg)
	e := Route(rs, lay, cfg)[0]
	if !e.IsSelfLoop {
		t.Fatal("expected self-loop")
	}
	onBoundary(t, lay.ByName["N"], e.Source.Anchor)
	onBoundary(t, lay.ByName["N"], e.Target.Anchor)

	minX, maxX := e.Points[0].X, e.Points[0].X
	minY, maxY := e.Points[0].Y, e.Points[0].Y
	for _, p := range e.Points {
		minX, maxX = math.Min(minX, p.X), math.Max(maxX, p.X)
		minY, maxY = math.Min(minY, p.Y), math.Max(maxY, p.Y)
	}
	if maxX-minX == 0 || maxY-minY == 0 {
		t.Fatalf("expected non-zero bounding box, got points %+v", e.Points)
	}
	if e.Label != "parent" {
		t.Fatalf("got label %q", e.Label)
	}
}

func TestRouteLabelFallsBackToRole(t *testing.T) {
	rs := &project.RenderSchema{
		Entities: []project.RenderEntity{
			{Name: "A", Columns: []schema.Column{{Name: "id", Type: schema.TypeInt}}},
			{Name: "B", Columns: []schema.Column{{Name: "id", Type: schema.TypeInt}}},
		},
		Relationships: []schema.Relationship{
			{LeftEntity: "A", LeftCard: schema.CardOne, RightEntity: "B", RightCard: schema.CardMany, HasRole: true, Role: "author"},
		},
	}
	cfg := metrics.DefaultRenderConfig()
	lay := layout.Build(rs, cfg)
	e := Route(rs, lay, cfg)[0]
	if !e.HasLabel || e.Label != "author" {
		t.Fatalf("got label %q", e.Label)
	}
}
