package errors

import (
	"fmt"
	"strings"
)

// ANSI color codes, used only when the caller confirms a color-capable
// terminal (cmd/erdc decides that via fatih/color; this package stays
// dependency-free so library consumers never pull in a color library).
const (
	colorReset = "\033[0m"
	colorRed   = "\033[31m"
	colorCyan  = "\033[36m"
	colorBold  = "\033[1m"
)

// FormatSnippet renders err against source as a caret-pointed snippet,
// one line before and after the error line, matching the shape of a
// conventional compiler diagnostic. If err carries no position, or the
// position falls outside source, only the message is returned.
func FormatSnippet(err error, source string, color bool) string {
	var sb strings.Builder

	bold, red, cyan, reset := "", "", "", ""
	if color {
		bold, red, cyan, reset = colorBold, colorRed, colorCyan, colorReset
	}

	fmt.Fprintf(&sb, "%s%serror%s: %s\n", bold, red, reset, err.Error())

	pos, ok := Located(err)
	if !ok {
		return sb.String()
	}

	lines := strings.Split(source, "\n")
	if pos.Line < 1 || pos.Line > len(lines) {
		return sb.String()
	}

	idx := pos.Line - 1
	start := idx - 1
	if start < 0 {
		start = 0
	}
	end := idx + 2
	if end > len(lines) {
		end = len(lines)
	}

	for i := start; i < end; i++ {
		fmt.Fprintf(&sb, "%s%4d |%s %s\n", cyan, i+1, reset, lines[i])
		if i == idx {
			col := pos.Column
			if col < 1 {
				col = 1
			}
			fmt.Fprintf(&sb, "     %s|%s %s%s^%s\n", cyan, reset, strings.Repeat(" ", col-1), red, reset)
		}
	}

	return sb.String()
}
