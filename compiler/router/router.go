// Package router computes, for every relationship in declaration
// order, two boundary anchor points on the source/target entity
// boxes, a polyline between them, cardinality markers, and label
// placement. Self-loops and parallel edges get dedicated handling.
package router

import (
	"math"

	"github.com/erdlang/erdc/compiler/layout"
	"github.com/erdlang/erdc/compiler/metrics"
	"github.com/erdlang/erdc/compiler/project"
	"github.com/erdlang/erdc/compiler/schema"
)

// Point is a single SVG-space coordinate.
type Point struct {
	X, Y float64
}

// MarkerKind is the set of glyphs drawn at one end of an edge. A
// cardinality may combine a tick, a circle, and a crow's-foot.
type MarkerKind struct {
	Tick     bool
	Circle   bool
	CrowFoot bool
}

func markerFor(c schema.Cardinality) MarkerKind {
	switch c {
	case schema.CardOne:
		return MarkerKind{Tick: true}
	case schema.CardMany:
		return MarkerKind{CrowFoot: true}
	case schema.CardZeroOne:
		return MarkerKind{Tick: true, Circle: true}
	case schema.CardOneMany:
		return MarkerKind{Tick: true, CrowFoot: true}
	default:
		return MarkerKind{}
	}
}

// EdgeEnd is one endpoint of a routed edge: its anchor on the entity
// boundary, the marker drawn there, and the point the marker shape is
// actually centered on (offset inward along the edge from the
// anchor).
type EdgeEnd struct {
	Entity   string
	Anchor   Point
	MarkerAt Point
	Marker   MarkerKind
}

// RoutedEdge is one fully routed relationship, ready for SVG emission.
type RoutedEdge struct {
	Source     EdgeEnd
	Target     EdgeEnd
	Points     []Point
	Label      string
	HasLabel   bool
	LabelPos   Point
	IsSelfLoop bool
}

// Route computes a RoutedEdge for every relationship in rs, in
// declaration order.
func Route(rs *project.RenderSchema, lay *layout.Result, cfg metrics.RenderConfig) []RoutedEdge {
	groups := groupByPair(rs.Relationships)

	edges := make([]RoutedEdge, 0, len(rs.Relationships))
	for idx, r := range rs.Relationships {
		key := pairKey(r.LeftEntity, r.RightEntity)
		group := groups[key]
		i := indexWithin(group, idx)
		k := len(group)

		var edge RoutedEdge
		if r.LeftEntity == r.RightEntity {
			edge = routeSelfLoop(r, lay.ByName[r.LeftEntity], cfg, i, k)
		} else {
			edge = routeBetween(r, lay.ByName[r.LeftEntity], lay.ByName[r.RightEntity], cfg, i, k)
		}

		edge.LabelPos = polylineMidpoint(edge.Points)
		if r.HasLabel {
			edge.Label, edge.HasLabel = r.Label, true
		} else if r.HasRole {
			edge.Label, edge.HasLabel = r.Role, true
		}

		edges = append(edges, edge)
	}
	return edges
}

func pairKey(a, b string) string {
	if a <= b {
		return a + "\x00" + b
	}
	return b + "\x00" + a
}

// groupByPair returns, for each unordered entity pair, the declaration
// indices of relationships sharing it (self-loops use {name, name}).
func groupByPair(rels []schema.Relationship) map[string][]int {
	groups := make(map[string][]int)
	for i, r := range rels {
		key := pairKey(r.LeftEntity, r.RightEntity)
		groups[key] = append(groups[key], i)
	}
	return groups
}

func indexWithin(group []int, idx int) int {
	for i, v := range group {
		if v == idx {
			return i
		}
	}
	return 0
}

// strideOffset centers a group of k parallel edges/loops around zero,
// spaced by the fixed stride S, using the edge's index i within the
// group.
func strideOffset(i, k int, stride float64) float64 {
	return (float64(i) - float64(k-1)/2) * stride
}

type side int

const (
	sideTop side = iota
	sideRight
	sideBottom
	sideLeft
)

func chooseSides(a, b layout.Placement) (side, side) {
	ca := Point{a.X + a.W/2, a.Y + a.H/2}
	cb := Point{b.X + b.W/2, b.Y + b.H/2}
	dx, dy := cb.X-ca.X, cb.Y-ca.Y

	if math.Abs(dx) >= math.Abs(dy) {
		if dx >= 0 {
			return sideRight, sideLeft
		}
		return sideLeft, sideRight
	}
	if dy >= 0 {
		return sideBottom, sideTop
	}
	return sideTop, sideBottom
}

// sideMidpoint returns the midpoint of the given side of box p.
func sideMidpoint(p layout.Placement, s side) Point {
	switch s {
	case sideTop:
		return Point{p.X + p.W/2, p.Y}
	case sideBottom:
		return Point{p.X + p.W/2, p.Y + p.H}
	case sideLeft:
		return Point{p.X, p.Y + p.H/2}
	default: // sideRight
		return Point{p.X + p.W, p.Y + p.H/2}
	}
}

// displaceAlongSide offsets an anchor point along its side to separate
// parallel edges: horizontal sides displace in X, vertical sides in Y.
func displaceAlongSide(p Point, s side, offset float64) Point {
	switch s {
	case sideTop, sideBottom:
		return Point{p.X + offset, p.Y}
	default:
		return Point{p.X, p.Y + offset}
	}
}

func routeBetween(r schema.Relationship, a, b layout.Placement, cfg metrics.RenderConfig, i, k int) RoutedEdge {
	sideA, sideB := chooseSides(a, b)
	offset := strideOffset(i, k, cfg.ParallelStride)

	anchorA := displaceAlongSide(sideMidpoint(a, sideA), sideA, offset)
	anchorB := displaceAlongSide(sideMidpoint(b, sideB), sideB, offset)

	var points []Point
	if sideA == sideLeft || sideA == sideRight {
		points = routeHorizontal(anchorA, anchorB, cfg.GapX)
	} else {
		points = routeVertical(anchorA, anchorB, cfg.GapY)
	}

	return RoutedEdge{
		Source: EdgeEnd{
			Entity:   r.LeftEntity,
			Anchor:   anchorA,
			MarkerAt: offsetInward(points, false, cfg.MarkerOffset),
			Marker:   markerFor(r.LeftCard),
		},
		Target: EdgeEnd{
			Entity:   r.RightEntity,
			Anchor:   anchorB,
			MarkerAt: offsetInward(points, true, cfg.MarkerOffset),
			Marker:   markerFor(r.RightCard),
		},
		Points: points,
	}
}

func routeHorizontal(a, b Point, gapX float64) []Point {
	if a.Y == b.Y {
		return []Point{a, b}
	}
	dir := 1.0
	if b.X < a.X {
		dir = -1.0
	}
	exitX := a.X + dir*gapX/2
	return []Point{a, {exitX, a.Y}, {exitX, b.Y}, b}
}

func routeVertical(a, b Point, gapY float64) []Point {
	if a.X == b.X {
		return []Point{a, b}
	}
	dir := 1.0
	if b.Y < a.Y {
		dir = -1.0
	}
	exitY := a.Y + dir*gapY/2
	return []Point{a, {a.X, exitY}, {b.X, exitY}, b}
}

// routeSelfLoop draws a rectangular loop on the entity's right side.
// Parallel self-loops grow the radius by i*LoopStep and spread their
// exit/entry points by the same stride policy as ordinary edges.
func routeSelfLoop(r schema.Relationship, p layout.Placement, cfg metrics.RenderConfig, i, k int) RoutedEdge {
	cx := p.X + p.W
	cy := p.Y + p.H/2
	baseGap := cfg.LineHeight / 2
	offset := strideOffset(i, k, cfg.ParallelStride)

	exitY := cy - baseGap + offset
	entryY := cy + baseGap + offset
	radius := cfg.LoopRadius + float64(i)*cfg.LoopStep

	exit := Point{cx, exitY}
	entry := Point{cx, entryY}
	points := []Point{
		exit,
		{cx + radius, exitY},
		{cx + radius, entryY},
		entry,
	}

	marker := markerFor(r.LeftCard)
	otherMarker := markerFor(r.RightCard)

	return RoutedEdge{
		Source: EdgeEnd{
			Entity:   r.LeftEntity,
			Anchor:   exit,
			MarkerAt: offsetInward(points, false, cfg.MarkerOffset),
			Marker:   marker,
		},
		Target: EdgeEnd{
			Entity:   r.RightEntity,
			Anchor:   entry,
			MarkerAt: offsetInward(points, true, cfg.MarkerOffset),
			Marker:   otherMarker,
		},
		Points:     points,
		IsSelfLoop: true,
	}
}

// offsetInward returns a point offset from an endpoint of the polyline
// toward its interior by dist, for marker placement. fromEnd selects
// the last segment (target side) versus the first (source side).
func offsetInward(points []Point, fromEnd bool, dist float64) Point {
	if len(points) < 2 {
		if len(points) == 1 {
			return points[0]
		}
		return Point{}
	}

	var p0, p1 Point
	if fromEnd {
		p0 = points[len(points)-1]
		p1 = points[len(points)-2]
	} else {
		p0 = points[0]
		p1 = points[1]
	}

	dx, dy := p1.X-p0.X, p1.Y-p0.Y
	length := math.Hypot(dx, dy)
	if length == 0 {
		return p0
	}
	t := dist / length
	if t > 1 {
		t = 1
	}
	return Point{p0.X + dx*t, p0.Y + dy*t}
}

// polylineMidpoint walks the polyline's segments and returns the point
// at half its total length.
func polylineMidpoint(points []Point) Point {
	if len(points) == 0 {
		return Point{}
	}
	if len(points) == 1 {
		return points[0]
	}

	total := 0.0
	segLens := make([]float64, len(points)-1)
	for i := 0; i < len(points)-1; i++ {
		d := math.Hypot(points[i+1].X-points[i].X, points[i+1].Y-points[i].Y)
		segLens[i] = d
		total += d
	}
	if total == 0 {
		return points[0]
	}

	target := total / 2
	acc := 0.0
	for i, d := range segLens {
		if acc+d >= target {
			t := (target - acc) / d
			return Point{
				points[i].X + (points[i+1].X-points[i].X)*t,
				points[i].Y + (points[i+1].Y-points[i].Y)*t,
			}
		}
		acc += d
	}
	return points[len(points)-1]
}
