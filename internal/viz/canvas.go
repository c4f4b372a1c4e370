package viz

import (
	"strings"

	"github.com/san-kum/mdsim/internal/dynamo"
)

// Braille cells hold 2x4 dots:
// 1 4
// 2 5
// 3 6
// 7 8
//
// Unicode offset 0x2800
const brailleBlank = 0x2800

var pixelMap = [4][2]rune{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

// Canvas is a braille dot grid of Width x Height cells, i.e.
// 2*Width x 4*Height dots.
type Canvas struct {
	Width, Height int
	grid          [][]rune
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{Width: w, Height: h, grid: make([][]rune, h)}
	for i := range c.grid {
		c.grid[i] = make([]rune, w)
	}
	c.Clear()
	return c
}

// Set lights the dot at (x, y). Out-of-range dots are ignored.
func (c *Canvas) Set(x, y int) {
	if x < 0 || y < 0 {
		return
	}
	col, row := x/2, y/4
	if col >= c.Width || row >= c.Height {
		return
	}
	c.grid[row][col] |= pixelMap[y%4][x%2]
}

func (c *Canvas) Clear() {
	for i := range c.grid {
		for j := range c.grid[i] {
			c.grid[i][j] = brailleBlank
		}
	}
}

// Project draws the x-y projection of the particles in st, scaled so the
// periodic box fills the canvas. y grows upwards.
func (c *Canvas) Project(st *dynamo.State) {
	c.Clear()
	dotsX, dotsY := 2*c.Width, 4*c.Height
	if dotsX == 0 || dotsY == 0 || !(st.BoxSize > 0) {
		return
	}
	for _, p := range st.Positions {
		x := int(p[0] / st.BoxSize * float64(dotsX))
		y := int(p[1] / st.BoxSize * float64(dotsY))
		if x == dotsX {
			x--
		}
		if y == dotsY {
			y--
		}
		c.Set(x, dotsY-1-y)
	}
}

func (c *Canvas) String() string {
	var b strings.Builder
	for i, row := range c.grid {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(string(row))
	}
	return b.String()
}
