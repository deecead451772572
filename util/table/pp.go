// Copyright 2019 eBay Inc.
// Primary authors: Simon Fell, Diego Ongaro,
//                  Raymond Kroeker, and Sathish Kandasamy.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
// https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package table formats rows of text as an aligned table for terminals.
package table

import (
	"bufio"
	"io"
	"strings"

	"golang.org/x/text/unicode/norm"
	"golang.org/x/text/width"
)

// Options control how the table is generated. They may be combined.
type Options int

const (
	// HeaderRow separates the first row from the rest with a divider.
	HeaderRow Options = 1 << iota
	// FooterRow separates the last row from the rest with a divider.
	FooterRow
	// SkipEmpty writes nothing when the table has no rows besides its header
	// and footer.
	SkipEmpty
	// RightJustify pads cells on the left rather than on the right.
	RightJustify
)

func (o Options) has(flag Options) bool {
	return o&flag != 0
}

func (o Options) chromeRows() int {
	n := 0
	if o.has(HeaderRow) {
		n++
	}
	if o.has(FooterRow) {
		n++
	}
	return n
}

// PrettyPrint writes rows as a table to dest. Cells may span several lines,
// separated by "\n". Rows shorter than the first one are padded with empty
// cells; extra cells are dropped.
func PrettyPrint(dest io.Writer, rows [][]string, opts Options) {
	if len(rows) == 0 || (opts.has(SkipEmpty) && len(rows) <= opts.chromeRows()) {
		return
	}
	numCols := len(rows[0])
	grid := make([][]cell, len(rows))
	widths := make([]int, numCols)
	for r, row := range rows {
		grid[r] = make([]cell, numCols)
		for c := range grid[r] {
			if c < len(row) {
				grid[r][c] = makeCell(row[c])
			} else {
				grid[r][c] = makeCell("")
			}
			widths[c] = max(widths[c], grid[r][c].width)
		}
	}

	w := bufio.NewWriterSize(dest, 256)
	defer w.Flush()
	divider := func() {
		for _, cw := range widths {
			w.WriteString(" ")
			w.WriteString(strings.Repeat("-", cw))
			w.WriteString(" |")
		}
		w.WriteString("\n")
	}
	for r, row := range grid {
		height := 0
		for _, c := range row {
			height = max(height, len(c.lines))
		}
		for l := 0; l < height; l++ {
			for c := range row {
				w.WriteString(" ")
				w.WriteString(row[c].line(l, widths[c], opts.has(RightJustify)))
				w.WriteString(" |")
			}
			w.WriteString("\n")
		}
		if (opts.has(HeaderRow) && r == 0) || (opts.has(FooterRow) && r == len(grid)-2) {
			divider()
		}
	}
}

type cell struct {
	lines  []string
	widths []int
	width  int
}

func makeCell(s string) cell {
	c := cell{lines: strings.Split(s, "\n")}
	c.widths = make([]int, len(c.lines))
	for i, l := range c.lines {
		c.widths[i] = charsWide(l)
		c.width = max(c.width, c.widths[i])
	}
	return c
}

// line returns the l-th line of the cell padded to the given width. Lines past
// the end of the cell are blank.
func (c *cell) line(l int, cellWidth int, right bool) string {
	if l >= len(c.lines) {
		return strings.Repeat(" ", cellWidth)
	}
	pad := strings.Repeat(" ", cellWidth-c.widths[l])
	if right {
		return pad + c.lines[l]
	}
	return c.lines[l] + pad
}

// charsWide estimates how many columns a string takes up on a terminal.
// Combining sequences count once, and East Asian wide characters count twice.
func charsWide(s string) int {
	n := 0
	for _, r := range norm.NFC.String(s) {
		switch width.LookupRune(r).Kind() {
		case width.EastAsianWide, width.EastAsianFullwidth:
			n += 2
		default:
			n++
		}
	}
	return n
}
