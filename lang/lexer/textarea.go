// Vizx
// Copyright (C) 2013-2024+ James Shubin and the project contributors
// Written by James Shubin <james@shubin.ca> and the project contributors
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <http://www.gnu.org/licenses/>.

package lexer

import (
	"strings"
)

// Textarea stores the coordinates of a token or of a parsed expression in the
// form of a starting line/column and ending line/column. The end is exclusive.
// Columns count runes so that they line up with what the user sees.
type Textarea struct {
	// This data is zero-based. (Eg: first line of input is 0)
	startLine   int // first
	startColumn int // left
	endLine     int // last
	endColumn   int // right

	// byte offsets into the input
	start int
	end   int
}

// Locate is used by the lexer to store the token positions.
func (obj *Textarea) Locate(line int, col int, endline int, endcol int) {
	obj.startLine = line
	obj.startColumn = col
	obj.endLine = endline
	obj.endColumn = endcol
}

// Span sets the byte offsets of the text area.
func (obj *Textarea) Span(start, end int) {
	obj.start = start
	obj.end = end
}

// Pos returns the starting line/column.
func (obj *Textarea) Pos() (int, int) {
	return obj.startLine, obj.startColumn
}

// End returns the end line/column.
func (obj *Textarea) End() (int, int) {
	return obj.endLine, obj.endColumn
}

// Offsets returns the start and end byte offsets into the input.
func (obj *Textarea) Offsets() (int, int) {
	return obj.start, obj.end
}

// HighlightText returns the line of the source that holds the start of this
// area, with a row of carets underneath the area. Areas which span lines are
// only underlined up to the end of the first line. If it can't generate a
// valid snippet, then it returns the empty string.
func (obj *Textarea) HighlightText(source string) string {
	lines := strings.Split(source, "\n")
	if obj.startLine < 0 || obj.startLine >= len(lines) {
		return ""
	}
	line := []rune(lines[obj.startLine])
	if obj.startColumn > len(line) {
		return ""
	}

	width := 1 // zero width areas (eof) still get a caret
	if obj.endLine == obj.startLine && obj.endColumn > obj.startColumn {
		width = obj.endColumn - obj.startColumn
	} else if obj.endLine > obj.startLine && len(line) > obj.startColumn {
		width = len(line) - obj.startColumn
	}

	result := &strings.Builder{}
	result.WriteString(string(line))
	result.WriteString("\n")
	for _, r := range line[:obj.startColumn] {
		if r == '\t' { // keep tabs so the carets line up
			result.WriteRune('\t')
			continue
		}
		result.WriteRune(' ')
	}
	result.WriteString(strings.Repeat("^", width))
	result.WriteString("\n")

	return result.String()
}
