package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/plife/internal/life"
)

// Braille patterns pack 2x4 dots per terminal cell:
//
//	1 4
//	2 5
//	3 6
//	7 8
//
// Unicode offset 0x2800.
var pixelMap = [4][2]rune{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

// Canvas is a braille raster with one color slot per cell. Sub-pixel
// resolution is (Width*2) x (Height*4); the color of the last dot
// written to a cell wins.
type Canvas struct {
	Width, Height int
	grid          [][]rune
	colors        [][]int
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{
		Width:  w,
		Height: h,
		grid:   make([][]rune, h),
		colors: make([][]int, h),
	}
	for i := range c.grid {
		c.grid[i] = make([]rune, w)
		c.colors[i] = make([]int, w)
		for j := range c.grid[i] {
			c.grid[i][j] = 0x2800
			c.colors[i][j] = -1
		}
	}
	return c
}

// Set lights the dot at sub-pixel (x, y) with a group color index.
func (c *Canvas) Set(x, y, color int) {
	if x < 0 || y < 0 {
		return
	}
	col := x / 2
	row := y / 4
	if col >= c.Width || row >= c.Height {
		return
	}
	c.grid[row][col] |= pixelMap[y%4][x%2]
	c.colors[row][col] = color
}

func (c *Canvas) Clear() {
	for i := range c.grid {
		for j := range c.grid[i] {
			c.grid[i][j] = 0x2800
			c.colors[i][j] = -1
		}
	}
}

// DrawRegistry projects every particle onto the canvas, coloring by
// group index.
func (c *Canvas) DrawRegistry(reg *life.Registry) {
	b := reg.Bounds()
	if b.Width <= 0 || b.Height <= 0 {
		return
	}
	sx := float64(c.Width*2-1) / b.Width
	sy := float64(c.Height*4-1) / b.Height
	for i := 0; i < reg.Len(); i++ {
		g := reg.At(i)
		for _, p := range g.Particles {
			c.Set(int(p.X*sx), int(p.Y*sy), i)
		}
	}
}

// String renders without color, one line per cell row.
func (c *Canvas) String() string {
	var b strings.Builder
	for _, row := range c.grid {
		b.WriteString(string(row))
		b.WriteByte('\n')
	}
	return b.String()
}

// Render colors each cell with the matching style from palette; cells
// whose color index is unset or out of range render unstyled. Runs of
// equal color are styled together to keep the output compact.
func (c *Canvas) Render(palette []lipgloss.Style) string {
	var b strings.Builder
	for i := range c.grid {
		row := c.grid[i]
		colors := c.colors[i]

		start := 0
		for start < len(row) {
			end := start
			for end < len(row) && colors[end] == colors[start] {
				end++
			}
			run := string(row[start:end])
			if ci := colors[start]; ci >= 0 && ci < len(palette) {
				b.WriteString(palette[ci].Render(run))
			} else {
				b.WriteString(run)
			}
			start = end
		}
		b.WriteByte('\n')
	}
	return b.String()
}
