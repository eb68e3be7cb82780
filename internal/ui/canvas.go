package ui

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
)

// cell is one character of the sphere view. depth is the view-axis
// distance of whatever was drawn there; overlays use -Inf.
type cell struct {
	ch    rune
	fg    string
	bg    string
	depth float64
}

// canvas is a depth-buffered grid of cells.
type canvas struct {
	width  int
	height int
	cells  []cell
}

func newCanvas(width, height int, bg string) *canvas {
	width, height = max(width, 0), max(height, 0)
	c := &canvas{width: width, height: height, cells: make([]cell, width*height)}
	for i := range c.cells {
		c.cells[i] = cell{ch: ' ', bg: bg, depth: math.Inf(1)}
	}
	return c
}

func (c *canvas) at(x, y int) *cell {
	if x < 0 || y < 0 || x >= c.width || y >= c.height {
		return nil
	}
	return &c.cells[y*c.width+x]
}

// plot draws ch at (x, y) unless something nearer is already there. Ties go
// to the later draw.
func (c *canvas) plot(x, y int, ch rune, fg string, depth float64) bool {
	cl := c.at(x, y)
	if cl == nil || depth > cl.depth {
		return false
	}
	cl.ch, cl.fg, cl.depth = ch, fg, depth
	return true
}

// text plots s from (x, y) rightwards with a depth test per cell.
func (c *canvas) text(x, y int, s string, fg string, depth float64) {
	for i, r := range []rune(s) {
		c.plot(x+i, y, r, fg, depth)
	}
}

// overlay paints s from (x, y) over everything, including the background.
func (c *canvas) overlay(x, y int, s string, fg, bg string) {
	for i, r := range []rune(s) {
		cl := c.at(x+i, y)
		if cl == nil {
			continue
		}
		cl.ch, cl.fg, cl.bg, cl.depth = r, fg, bg, math.Inf(-1)
	}
}

// line draws a depth-tested segment between two cells, interpolating depth.
func (c *canvas) line(x0, y0 int, d0 float64, x1, y1 int, d1 float64, ch rune, fg string) {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	steps := max(dx, -dy)
	err := dx + dy

	x, y := x0, y0
	for i := 0; ; i++ {
		t := 0.0
		if steps > 0 {
			t = float64(i) / float64(steps)
		}
		c.plot(x, y, ch, fg, d0+(d1-d0)*t)
		if x == x1 && y == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x += sx
		}
		if e2 <= dx {
			err += dx
			y += sy
		}
	}
}

// rows returns the plain characters of each row.
func (c *canvas) rows() []string {
	out := make([]string, c.height)
	for y := range c.height {
		var b strings.Builder
		for _, cl := range c.cells[y*c.width : (y+1)*c.width] {
			b.WriteRune(cl.ch)
		}
		out[y] = b.String()
	}
	return out
}

// String renders the canvas, styling runs of cells that share colours
// together.
func (c *canvas) String() string {
	var b strings.Builder
	for y := range c.height {
		row := c.cells[y*c.width : (y+1)*c.width]
		start := 0
		for x := 1; x <= len(row); x++ {
			if x < len(row) && row[x].fg == row[start].fg && row[x].bg == row[start].bg {
				continue
			}
			runes := make([]rune, 0, x-start)
			for _, cl := range row[start:x] {
				runes = append(runes, cl.ch)
			}
			b.WriteString(cellStyle(row[start].fg, row[start].bg).Render(string(runes)))
			start = x
		}
		if y < c.height-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func cellStyle(fg, bg string) lipgloss.Style {
	s := lipgloss.NewStyle()
	if fg != "" {
		s = s.Foreground(lipgloss.Color(fg))
	}
	if bg != "" {
		s = s.Background(lipgloss.Color(bg))
	}
	return s
}

// blend mixes over into base with alpha in [0, 1] and returns hex.
func blend(base string, over colorful.Color, alpha float64) string {
	b, err := colorful.Hex(base)
	if err != nil {
		return over.Clamped().Hex()
	}
	return b.BlendRgb(over, min(max(alpha, 0), 1)).Clamped().Hex()
}

// blendHex is blend for two hex colours.
func blendHex(base, over string, alpha float64) string {
	o, err := colorful.Hex(over)
	if err != nil {
		return base
	}
	return blend(base, o, alpha)
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
