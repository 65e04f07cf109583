// Package metrics assigns each projected entity an intrinsic box size
// from its visible rows, using a fixed monospace advance and line
// height instead of font rasterization.
package metrics

import (
	"math"

	"github.com/erdlang/erdc/compiler/project"
	"github.com/erdlang/erdc/compiler/schema"
)

// RenderConfig collects every numeric constant threaded through
// metrics, layout, and routing. It is the configuration record
// referenced, but not shaped, by the original design notes; a single
// resolved value travels through the rest of the pipeline so no stage
// reads ambient config of its own.
type RenderConfig struct {
	CharWidth      float64
	LineHeight     float64
	Padding        float64
	HeaderHeight   float64
	GapX           float64
	GapY           float64
	ParallelStride float64
	LoopRadius     float64
	LoopStep       float64
	MarkerOffset   float64
}

// DefaultRenderConfig returns the documented default constants.
func DefaultRenderConfig() RenderConfig {
	return RenderConfig{
		CharWidth:      7.2,
		LineHeight:     18,
		Padding:        8,
		HeaderHeight:   24,
		GapX:           80,
		GapY:           60,
		ParallelStride: 14,
		LoopRadius:     40,
		LoopStep:       12,
		MarkerOffset:   12,
	}
}

// Box is an entity's intrinsic size before layout placement.
type Box struct {
	Width  float64
	Height float64
	Rows   int
}

// constraintAbbrevs lists the rendered abbreviations of a column's
// constraints, in the fixed order pk, fk, unique, not null.
func constraintAbbrevs(c schema.Column) []string {
	var abbrevs []string
	if c.HasConstraint(schema.ConstraintPK) {
		abbrevs = append(abbrevs, "PK")
	}
	if c.HasConstraint(schema.ConstraintFK) {
		abbrevs = append(abbrevs, "FK")
	}
	if c.HasConstraint(schema.ConstraintUnique) {
		abbrevs = append(abbrevs, "U")
	}
	if c.HasConstraint(schema.ConstraintNotNull) {
		abbrevs = append(abbrevs, "NN")
	}
	return abbrevs
}

// ConstraintsSuffix renders a column's constraint abbreviations as the
// single trailing token used in both row-width measurement and SVG
// text emission, so the two never disagree.
func ConstraintsSuffix(c schema.Column) string {
	abbrevs := constraintAbbrevs(c)
	if len(abbrevs) == 0 {
		return ""
	}
	suffix := abbrevs[0]
	for _, a := range abbrevs[1:] {
		suffix += "," + a
	}
	return suffix
}

// RowText renders a column as the "name  type  constraints" line used
// verbatim as SVG row text.
func RowText(c schema.Column) string {
	text := string(c.Name) + "  " + string(c.Type)
	if suffix := ConstraintsSuffix(c); suffix != "" {
		text += "  " + suffix
	}
	return text
}

// displayWidth counts codepoints, treating anything outside the ASCII
// range as double-width per the documented CJK heuristic.
func displayWidth(s string) float64 {
	var w float64
	for _, r := range s {
		if r > 0x7F {
			w += 2
		} else {
			w++
		}
	}
	return w
}

// ComputeBox measures an entity's box from its header and visible
// rows. detail == tables yields zero rows and no column-driven width
// contribution, matching the documented rows=0 case.
func ComputeBox(e project.RenderEntity, cfg RenderConfig) Box {
	headerWidth := cfg.CharWidth*displayWidth(e.Name) + 2*cfg.Padding

	maxRowWidth := 0.0
	for _, c := range e.Columns {
		rw := cfg.CharWidth*displayWidth(RowText(c)) + 2*cfg.Padding
		if rw > maxRowWidth {
			maxRowWidth = rw
		}
	}

	width := headerWidth
	if maxRowWidth > width {
		width = maxRowWidth
	}
	width = roundUpToMultiple(width, 8)

	rows := len(e.Columns)
	height := cfg.HeaderHeight + cfg.LineHeight*float64(rows) + 2*cfg.Padding

	return Box{Width: width, Height: height, Rows: rows}
}

func roundUpToMultiple(v, multiple float64) float64 {
	return math.Ceil(v/multiple) * multiple
}
