package viz

import (
	"strings"

	"gonum.org/v1/gonum/floats"
)

// Braille Patterns: 2x4 dots
// 1 4
// 2 5
// 3 6
// 7 8
//
// Unicode offset 0x2800
var pixelMap = [4][2]int{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

const blank = 0x2800

type Canvas struct {
	Width, Height int
	Grid          [][]rune
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{
		Width:  w,
		Height: h,
		Grid:   make([][]rune, h),
	}
	for i := range c.Grid {
		c.Grid[i] = make([]rune, w)
	}
	c.Clear()
	return c
}

// Set lights the dot at sub-pixel (x, y). The canvas is Width*2 by Height*4
// dots.
func (c *Canvas) Set(x, y int) {
	if x < 0 || y < 0 {
		return
	}
	col, row := x/2, y/4
	if col >= c.Width || row >= c.Height {
		return
	}
	c.Grid[row][col] |= rune(pixelMap[y%4][x%2])
}

func (c *Canvas) Clear() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = blank
		}
	}
}

// DrawLine draws a line using Bresenham's algorithm
func (c *Canvas) DrawLine(x0, y0, x1, y1 int) {
	dx := absInt(x1 - x0)
	dy := absInt(y1 - y0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy

	for {
		c.Set(x0, y0)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

// Plot draws the polyline through (xs[i], ys[i]) scaled to fill the canvas,
// with the axes drawn where zero lies inside the data range.
func (c *Canvas) Plot(xs, ys []float64) {
	n := len(xs)
	if len(ys) < n {
		n = len(ys)
	}
	if n == 0 {
		return
	}
	xs, ys = xs[:n], ys[:n]

	xmin, xmax := span(xs)
	ymin, ymax := span(ys)
	w, h := c.Width*2-1, c.Height*4-1
	px := func(x float64) int { return int((x - xmin) / (xmax - xmin) * float64(w)) }
	py := func(y float64) int { return h - int((y-ymin)/(ymax-ymin)*float64(h)) }

	if xmin < 0 && xmax > 0 {
		x0 := px(0)
		for y := 0; y <= h; y += 2 {
			c.Set(x0, y)
		}
	}
	if ymin < 0 && ymax > 0 {
		y0 := py(0)
		for x := 0; x <= w; x += 2 {
			c.Set(x, y0)
		}
	}

	c.Set(px(xs[0]), py(ys[0]))
	for i := 1; i < n; i++ {
		c.DrawLine(px(xs[i-1]), py(ys[i-1]), px(xs[i]), py(ys[i]))
	}
}

func (c *Canvas) String() string {
	var b strings.Builder
	for _, row := range c.Grid {
		b.WriteString(string(row) + "\n")
	}
	return b.String()
}

// span returns the data range, widened when it is degenerate.
func span(v []float64) (lo, hi float64) {
	lo, hi = floats.Min(v), floats.Max(v)
	if hi-lo == 0 {
		lo, hi = lo-1, hi+1
	}
	return lo, hi
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
