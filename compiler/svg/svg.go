// Package svg serializes entity boxes and routed edges into a single,
// byte-stable SVG document: fixed attribute order, no external
// stylesheet or script references.
package svg

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/erdlang/erdc/compiler/layout"
	"github.com/erdlang/erdc/compiler/metrics"
	"github.com/erdlang/erdc/compiler/project"
	"github.com/erdlang/erdc/compiler/router"
)

// crowFootSpread is the perpendicular offset, in SVG user units, between
// the crow's-foot marker's center prong and its two outer prongs.
const crowFootSpread = 5.0

// Emit renders rs's entities and routed edges into a complete SVG
// document sized to lay's canvas.
func Emit(rs *project.RenderSchema, lay *layout.Result, edges []router.RoutedEdge, cfg metrics.RenderConfig) string {
	var b strings.Builder

	fmt.Fprintf(&b, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %s %s" width="%s" height="%s">`,
		num(lay.Width), num(lay.Height), num(lay.Width), num(lay.Height))
	b.WriteByte('\n')

	for _, e := range rs.Entities {
		writeEntity(&b, e, lay.ByName[e.Name], cfg)
	}

	for _, edge := range edges {
		writeEdge(&b, edge)
	}

	b.WriteString("</svg>")
	return b.String()
}

func writeEntity(b *strings.Builder, e project.RenderEntity, p layout.Placement, cfg metrics.RenderConfig) {
	fmt.Fprintf(b, `<g><rect x="%s" y="%s" width="%s" height="%s" fill="white" stroke="black"/>`,
		num(p.X), num(p.Y), num(p.W), num(p.H))

	headerY := p.Y + cfg.HeaderHeight/2 + cfg.LineHeight/4
	fmt.Fprintf(b, `<text x="%s" y="%s" font-weight="bold">%s</text>`,
		num(p.X+cfg.Padding), num(headerY), escape(e.Name))

	dividerY := p.Y + cfg.HeaderHeight
	fmt.Fprintf(b, `<line x1="%s" y1="%s" x2="%s" y2="%s" stroke="black"/>`,
		num(p.X), num(dividerY), num(p.X+p.W), num(dividerY))

	for i, c := range e.Columns {
		rowY := dividerY + cfg.LineHeight*float64(i) + cfg.LineHeight*0.75
		fmt.Fprintf(b, `<text x="%s" y="%s">%s</text>`,
			num(p.X+cfg.Padding), num(rowY), escape(metrics.RowText(c)))
	}

	b.WriteString("</g>\n")
}

func writeEdge(b *strings.Builder, e router.RoutedEdge) {
	b.WriteString(`<polyline points="`)
	for i, pt := range e.Points {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(num(pt.X))
		b.WriteByte(',')
		b.WriteString(num(pt.Y))
	}
	b.WriteString(`" fill="none" stroke="black"/>`)
	b.WriteByte('\n')

	writeMarker(b, e.Source)
	writeMarker(b, e.Target)

	if e.HasLabel {
		writeLabel(b, e)
	}
}

func writeMarker(b *strings.Builder, end router.EdgeEnd) {
	if end.Marker.Tick {
		fmt.Fprintf(b, `<line x1="%s" y1="%s" x2="%s" y2="%s" stroke="black" class="marker-tick"/>`,
			num(end.Anchor.X), num(end.Anchor.Y), num(end.MarkerAt.X), num(end.MarkerAt.Y))
		b.WriteByte('\n')
	}
	if end.Marker.Circle {
		fmt.Fprintf(b, `<circle cx="%s" cy="%s" r="4" fill="white" stroke="black"/>`,
			num(end.MarkerAt.X), num(end.MarkerAt.Y))
		b.WriteByte('\n')
	}
	if end.Marker.CrowFoot {
		writeCrowFoot(b, end)
	}
}

// writeCrowFoot draws the "many" marker as three segments that fan out
// from end.MarkerAt to three points straddling end.Anchor, so the
// notation reads as a crow's foot rather than a single tick.
func writeCrowFoot(b *strings.Builder, end router.EdgeEnd) {
	dx := end.Anchor.X - end.MarkerAt.X
	dy := end.Anchor.Y - end.MarkerAt.Y
	length := math.Hypot(dx, dy)
	if length == 0 {
		fmt.Fprintf(b, `<line x1="%s" y1="%s" x2="%s" y2="%s" stroke="black" class="marker-crowfoot"/>`,
			num(end.MarkerAt.X), num(end.MarkerAt.Y), num(end.Anchor.X), num(end.Anchor.Y))
		b.WriteByte('\n')
		return
	}

	ux, uy := dx/length, dy/length
	px, py := -uy, ux

	prongs := [3][2]float64{
		{end.Anchor.X, end.Anchor.Y},
		{end.Anchor.X + px*crowFootSpread, end.Anchor.Y + py*crowFootSpread},
		{end.Anchor.X - px*crowFootSpread, end.Anchor.Y - py*crowFootSpread},
	}
	for _, p := range prongs {
		fmt.Fprintf(b, `<line x1="%s" y1="%s" x2="%s" y2="%s" stroke="black" class="marker-crowfoot"/>`,
			num(end.MarkerAt.X), num(end.MarkerAt.Y), num(p[0]), num(p[1]))
		b.WriteByte('\n')
	}
}

func writeLabel(b *strings.Builder, e router.RoutedEdge) {
	width := float64(len(e.Label))*7.2 + 8
	height := 18.0
	x := e.LabelPos.X - width/2
	y := e.LabelPos.Y - height/2

	fmt.Fprintf(b, `<g><rect x="%s" y="%s" width="%s" height="%s" fill="white"/><text x="%s" y="%s">%s</text></g>`,
		num(x), num(y), num(width), num(height), num(e.LabelPos.X), num(e.LabelPos.Y+5), escape(e.Label))
	b.WriteByte('\n')
}

// num formats a float with at most two decimal places and no trailing
// zeros, for byte-stable SVG output.
func num(f float64) string {
	s := strconv.FormatFloat(f, 'f', 2, 64)
	s = strings.TrimRight(s, "0")
	s = strings.TrimSuffix(s, ".")
	return s
}

func escape(s string) string {
	r := strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
		`"`, "&quot;",
	)
	return r.Replace(s)
}
