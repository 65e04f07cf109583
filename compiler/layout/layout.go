// Package layout places entity boxes on a grid derived from the
// arrangement hint, or, absent one, from an auto-grid built either by
// level hints (when present) or a square auto-grid over declaration
// order.
package layout

import (
	"math"
	"sort"

	"github.com/erdlang/erdc/compiler/metrics"
	"github.com/erdlang/erdc/compiler/project"
)

// marginMultiple sets the canvas margin as a multiple of Padding, so a
// single resolved RenderConfig still governs the outermost whitespace
// without a separate constant.
const marginMultiple = 4

// Placement is one entity's resolved box: position, size, and the grid
// cell it occupies.
type Placement struct {
	Name string
	X, Y float64
	W, H float64
	Row  int
	Col  int
}

// Result is the complete grid layout: every entity's placement plus
// the overall canvas size.
type Result struct {
	Placements []Placement
	ByName     map[string]Placement
	Width      float64
	Height     float64
}

// Build lays out rs's entities and returns their placements plus the
// canvas size.
func Build(rs *project.RenderSchema, cfg metrics.RenderConfig) *Result {
	grid := buildGrid(rs)

	boxes := make(map[string]metrics.Box, len(rs.Entities))
	for _, e := range rs.Entities {
		boxes[e.Name] = metrics.ComputeBox(e, cfg)
	}

	colWidths := make([]float64, 0)
	rowHeights := make([]float64, len(grid))
	for i, row := range grid {
		for j, name := range row {
			if name == "" {
				continue
			}
			for len(colWidths) <= j {
				colWidths = append(colWidths, 0)
			}
			box := boxes[name]
			if box.Width > colWidths[j] {
				colWidths[j] = box.Width
			}
			if box.Height > rowHeights[i] {
				rowHeights[i] = box.Height
			}
		}
	}

	colX := make([]float64, len(colWidths))
	for j := 1; j < len(colWidths); j++ {
		colX[j] = colX[j-1] + colWidths[j-1] + cfg.GapX
	}
	rowY := make([]float64, len(rowHeights))
	for i := 1; i < len(rowHeights); i++ {
		rowY[i] = rowY[i-1] + rowHeights[i-1] + cfg.GapY
	}

	margin := cfg.Padding * marginMultiple
	result := &Result{ByName: make(map[string]Placement, len(rs.Entities))}
	for i, row := range grid {
		for j, name := range row {
			if name == "" {
				continue
			}
			box := boxes[name]
			cellW := colWidths[j]
			x := margin + colX[j] + (cellW-box.Width)/2
			y := margin + rowY[i]
			p := Placement{Name: name, X: x, Y: y, W: box.Width, H: box.Height, Row: i, Col: j}
			result.Placements = append(result.Placements, p)
			result.ByName[name] = p
		}
	}

	canvasWidth := 2 * margin
	for _, w := range colWidths {
		canvasWidth += w + cfg.GapX
	}
	if len(colWidths) > 0 {
		canvasWidth -= cfg.GapX
	}
	canvasHeight := 2 * margin
	for _, h := range rowHeights {
		canvasHeight += h + cfg.GapY
	}
	if len(rowHeights) > 0 {
		canvasHeight -= cfg.GapY
	}

	result.Width = canvasWidth
	result.Height = canvasHeight
	return result
}

// buildGrid returns the entity-name grid rows/columns: the arrangement
// hint's rows if present (already auto-filled and view-filtered by
// this point), otherwise an auto-grid.
func buildGrid(rs *project.RenderSchema) [][]string {
	if rs.Arrangement != nil && len(rs.Arrangement.Rows) > 0 {
		return rs.Arrangement.Rows
	}
	return autoGrid(rs)
}

// autoGrid groups entities by ascending level hint, in declaration
// order within each level, when any entity carries @hint.level. With
// no level hints at all it falls back to the documented square grid
// of ceil(sqrt(N)) columns in declaration order.
func autoGrid(rs *project.RenderSchema) [][]string {
	anyLevel := false
	for _, e := range rs.Entities {
		if e.HasLevel {
			anyLevel = true
			break
		}
	}

	if anyLevel {
		return levelGrid(rs)
	}
	return squareGrid(rs)
}

func levelGrid(rs *project.RenderSchema) [][]string {
	levels := make(map[int64][]string)
	var keys []int64
	for _, e := range rs.Entities {
		lvl := e.Level // entities without a level hint default to 0
		if _, ok := levels[lvl]; !ok {
			keys = append(keys, lvl)
		}
		levels[lvl] = append(levels[lvl], e.Name)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })

	rows := make([][]string, 0, len(keys))
	for _, k := range keys {
		rows = append(rows, levels[k])
	}
	return rows
}

func squareGrid(rs *project.RenderSchema) [][]string {
	n := len(rs.Entities)
	if n == 0 {
		return nil
	}
	cols := int(math.Ceil(math.Sqrt(float64(n))))
	if cols == 0 {
		cols = 1
	}

	var rows [][]string
	var row []string
	for _, e := range rs.Entities {
		row = append(row, e.Name)
		if len(row) == cols {
			rows = append(rows, row)
			row = nil
		}
	}
	if len(row) > 0 {
		rows = append(rows, row)
	}
	return rows
}
