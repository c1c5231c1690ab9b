// Package gridsvg draws a labelled coordinate grid as SVG.
// It documents the cell coordinate system the terminal games use.
package gridsvg

import (
	"bytes"
	"fmt"
	"io"

	svg "github.com/ajstarks/svgo"
)

// Mark highlights one cell.
type Mark struct {
	X, Y  int
	Fill  string
	Label string
	// Leader draws a red line from the cell to a label left of the grid.
	Leader bool
}

// Grid describes the picture.
type Grid struct {
	Cols, Rows int
	CellSize   int
	Marks      []Mark
	XTicks     []int
	YTicks     []int
}

// Default returns the 40x24 grid with the origin and two reference cells marked.
func Default() Grid {
	return Grid{
		Cols:     40,
		Rows:     24,
		CellSize: 20,
		Marks: []Mark{
			{X: 10, Y: 5, Fill: "#000", Label: "(10,5)", Leader: true},
			{X: 39, Y: 23, Fill: "#0f0", Label: "(39,23)"},
		},
		XTicks: []int{0, 10, 20, 30, 39},
		YTicks: []int{0, 5, 10, 15, 20, 23},
	}
}

// Validate rejects grids that cannot be drawn.
func (g Grid) Validate() error {
	if g.Cols <= 0 || g.Rows <= 0 || g.CellSize <= 0 {
		return fmt.Errorf("gridsvg: invalid size %dx%d cell %d", g.Cols, g.Rows, g.CellSize)
	}
	for _, m := range g.Marks {
		if m.X < 0 || m.X >= g.Cols || m.Y < 0 || m.Y >= g.Rows {
			return fmt.Errorf("gridsvg: mark (%d,%d) outside %dx%d grid", m.X, m.Y, g.Cols, g.Rows)
		}
	}
	return nil
}

// margin leaves room for labels drawn outside the grid.
const margin = 60

// leaderX is where leader lines end and their labels start.
const leaderX = -50

const stylesheet = `
.grid-line { stroke: #ccc; stroke-width: 1; }
.axis-line { stroke: #000; stroke-width: 2; }
.coordinate-label { font-family: Arial, sans-serif; font-size: 12px; fill: #000; }
.special-label { font-family: Arial, sans-serif; font-size: 12px; fill: #f00; }
`

const (
	gridLine   = `class="grid-line"`
	axisLine   = `class="axis-line"`
	coordLabel = `class="coordinate-label"`
	specLabel  = `class="special-label"`
)

// Write renders g as an SVG document. Nothing is written for an invalid grid.
func Write(w io.Writer, g Grid) error {
	if err := g.Validate(); err != nil {
		return err
	}

	var buf bytes.Buffer
	draw(svg.New(&buf), g)

	if _, err := buf.WriteTo(w); err != nil {
		return fmt.Errorf("gridsvg: write: %w", err)
	}
	return nil
}

func draw(canvas *svg.SVG, g Grid) {
	c := g.CellSize
	width, height := g.Cols*c, g.Rows*c
	outerW, outerH := width+2*margin, height+2*margin

	canvas.Startview(outerW, outerH, -margin, -margin, outerW, outerH)

	canvas.Def()
	canvas.Style("text/css", stylesheet)
	canvas.Marker("arrowhead-right", 9, 4, 10, 8, `orient="auto"`)
	canvas.Polygon([]int{0, 10, 0}, []int{0, 4, 8}, `fill="#000"`)
	canvas.MarkerEnd()
	canvas.Marker("arrowhead-down", 4, 9, 8, 10, `orient="auto"`)
	canvas.Polygon([]int{0, 8, 4}, []int{0, 0, 10}, `fill="#000"`)
	canvas.MarkerEnd()
	canvas.DefEnd()

	for i := 0; i <= g.Cols; i++ {
		canvas.Line(i*c, 0, i*c, height, gridLine)
	}
	for i := 0; i <= g.Rows; i++ {
		canvas.Line(0, i*c, width, i*c, gridLine)
	}

	canvas.Line(0, 0, width+c, 0, axisLine, `marker-end="url(#arrowhead-right)"`)
	canvas.Line(0, 0, 0, height+c, axisLine, `marker-end="url(#arrowhead-down)"`)
	canvas.Text(5, -5, "(0,0)", coordLabel)

	for _, m := range g.Marks {
		x, y := m.X*c, m.Y*c
		canvas.Rect(x, y, c, c, fmt.Sprintf("fill=%q", m.Fill))
		if m.Leader {
			mid := y + c/2
			canvas.Line(x+c/2, mid, leaderX, mid, `stroke="#f00"`, `stroke-width="3"`)
			canvas.Text(leaderX+5, y+5, m.Label, specLabel)
			continue
		}
		canvas.Text(x+5, y-5, m.Label, specLabel, fmt.Sprintf("fill:%s", m.Fill))
	}

	for _, t := range g.XTicks {
		canvas.Text(t*c, -5, fmt.Sprint(t), coordLabel)
	}
	for _, t := range g.YTicks {
		canvas.Text(5, t*c+5, fmt.Sprint(t), coordLabel)
	}

	canvas.End()
}
