package tui

import "strings"

// Color identifies one entry of the canvas palette. The renderer maps
// it to a lipgloss style at draw time, so cells stay plain data.
type Color uint8

const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
	ColorBrightGreen
	ColorBrightYellow
	ColorBrightCyan
	ColorOrange
	ColorGray
)

// Cell is one character of the canvas with its palette color.
type Cell struct {
	Rune  rune
	Color Color
}

// Canvas is a 2D colored character buffer for composing the demo view.
// It decouples drawing from the terminal: the demo paints overlays and
// chrome with simple cell operations and the renderer turns the buffer
// into a styled string.
type Canvas struct {
	width  int
	height int
	cells  [][]Cell
}

// NewCanvas creates a canvas buffer with the given dimensions.
func NewCanvas(width, height int) *Canvas {
	c := &Canvas{
		width:  width,
		height: height,
	}
	c.allocate()
	c.Clear()
	return c
}

// allocate creates the underlying cell storage.
func (c *Canvas) allocate() {
	c.cells = make([][]Cell, c.height)
	for y := range c.cells {
		c.cells[y] = make([]Cell, c.width)
	}
}

// Width returns the canvas width in characters.
func (c *Canvas) Width() int {
	return c.width
}

// Height returns the canvas height in characters.
func (c *Canvas) Height() int {
	return c.height
}

// Resize changes the canvas dimensions, preserving content where
// possible.
func (c *Canvas) Resize(width, height int) {
	if width == c.width && height == c.height {
		return
	}

	oldCells := c.cells
	oldW, oldH := c.width, c.height

	c.width = width
	c.height = height
	c.allocate()
	c.Clear()

	copyW := min(oldW, width)
	copyH := min(oldH, height)
	for y := 0; y < copyH; y++ {
		for x := 0; x < copyW; x++ {
			c.cells[y][x] = oldCells[y][x]
		}
	}
}

// Clear fills the entire canvas with blank default-colored cells.
func (c *Canvas) Clear() {
	for y := range c.cells {
		for x := range c.cells[y] {
			c.cells[y][x] = Cell{Rune: ' ', Color: ColorDefault}
		}
	}
}

// Set places a colored rune at the given position.
// Out-of-bounds coordinates are silently ignored.
func (c *Canvas) Set(x, y int, r rune, col Color) {
	if x < 0 || x >= c.width || y < 0 || y >= c.height {
		return
	}
	c.cells[y][x] = Cell{Rune: r, Color: col}
}

// At returns the cell at the given position.
// Returns a blank cell for out-of-bounds coordinates.
func (c *Canvas) At(x, y int) Cell {
	if x < 0 || x >= c.width || y < 0 || y >= c.height {
		return Cell{Rune: ' ', Color: ColorDefault}
	}
	return c.cells[y][x]
}

// DrawText writes a string horizontally starting at (x, y).
// Characters that extend beyond canvas bounds are clipped.
func (c *Canvas) DrawText(x, y int, text string, col Color) {
	for i, r := range text {
		c.Set(x+i, y, r, col)
	}
}

// DrawTextCentered draws text centered horizontally at the given y.
func (c *Canvas) DrawTextCentered(y int, text string, col Color) {
	x := (c.width - len(text)) / 2
	c.DrawText(x, y, text, col)
}

// FillRect fills a rectangular area with the given rune.
func (c *Canvas) FillRect(x, y, w, h int, fill rune, col Color) {
	for yy := y; yy < y+h; yy++ {
		for xx := x; xx < x+w; xx++ {
			c.Set(xx, yy, fill, col)
		}
	}
}

// DrawBox draws a box outline using box-drawing characters.
// Boxes thinner than 2 cells degrade to a filled rect.
func (c *Canvas) DrawBox(x, y, w, h int, col Color) {
	if w < 2 || h < 2 {
		c.FillRect(x, y, w, h, '█', col)
		return
	}

	c.Set(x, y, '┌', col)
	c.Set(x+w-1, y, '┐', col)
	c.Set(x, y+h-1, '└', col)
	c.Set(x+w-1, y+h-1, '┘', col)

	for xx := x + 1; xx < x+w-1; xx++ {
		c.Set(xx, y, '─', col)
		c.Set(xx, y+h-1, '─', col)
	}
	for yy := y + 1; yy < y+h-1; yy++ {
		c.Set(x, yy, '│', col)
		c.Set(x+w-1, yy, '│', col)
	}
}

// String converts the canvas to a plain uncolored string, one line per
// row. Used by tests; the live renderer is RenderCanvas.
func (c *Canvas) String() string {
	var sb strings.Builder
	sb.Grow(c.width*c.height + c.height)

	for y := 0; y < c.height; y++ {
		if y > 0 {
			sb.WriteRune('\n')
		}
		for x := 0; x < c.width; x++ {
			sb.WriteRune(c.cells[y][x].Rune)
		}
	}
	return sb.String()
}
