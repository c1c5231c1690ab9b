package pacman

import (
	"errors"
	"fmt"
	"strings"

	"github.com/vovakirdan/retro-arcade/internal/core"
)

// CellKind is the static content of one maze cell.
type CellKind uint8

const (
	CellEmpty CellKind = iota
	CellWall
	CellPellet
	CellPowerPellet
	CellPlayerStart
	CellPursuerStart
)

// Layout glyphs.
const (
	glyphWall         = 'X'
	glyphPellet       = '.'
	glyphPowerPellet  = 'P'
	glyphPlayerStart  = 'S'
	glyphPursuerStart = 'G'
	glyphEmpty        = ' '
)

var (
	// ErrNoPlayerStart is returned when a layout has no S cell.
	ErrNoPlayerStart = errors.New("pacman: maze has no player start")
	// ErrEmptyMaze is returned for a layout without rows or columns.
	ErrEmptyMaze = errors.New("pacman: maze is empty")
)

// Cell addresses a maze cell by column and row.
type Cell struct {
	Col, Row int
}

// Maze is the immutable wall map parsed from a text layout.
type Maze struct {
	cols, rows    int
	cellSize      float64
	cells         [][]CellKind
	walls         []core.RectF
	playerStart   Cell
	pursuerStarts []Cell
}

// ParseMaze builds a maze from text rows. All rows must have the same width.
func ParseMaze(layout []string, cellSize float64) (*Maze, error) {
	if cellSize <= 0 {
		return nil, fmt.Errorf("pacman: invalid cell size %v", cellSize)
	}
	if len(layout) == 0 || len(layout[0]) == 0 {
		return nil, ErrEmptyMaze
	}

	m := &Maze{
		cols:        len([]rune(layout[0])),
		rows:        len(layout),
		cellSize:    cellSize,
		cells:       make([][]CellKind, len(layout)),
		playerStart: Cell{Col: -1, Row: -1},
	}

	for row, line := range layout {
		runes := []rune(line)
		if len(runes) != m.cols {
			return nil, fmt.Errorf("pacman: row %d has width %d, expected %d", row, len(runes), m.cols)
		}

		m.cells[row] = make([]CellKind, m.cols)
		for col, ch := range runes {
			kind, err := kindOf(ch)
			if err != nil {
				return nil, fmt.Errorf("pacman: row %d col %d: %w", row, col, err)
			}
			m.cells[row][col] = kind

			c := Cell{Col: col, Row: row}
			switch kind {
			case CellWall:
				m.walls = append(m.walls, m.CellBounds(c))
			case CellPlayerStart:
				if m.playerStart.Col >= 0 {
					return nil, fmt.Errorf("pacman: row %d col %d: second player start", row, col)
				}
				m.playerStart = c
			case CellPursuerStart:
				m.pursuerStarts = append(m.pursuerStarts, c)
			}
		}
	}

	if m.playerStart.Col < 0 {
		return nil, ErrNoPlayerStart
	}
	return m, nil
}

func kindOf(ch rune) (CellKind, error) {
	switch ch {
	case glyphWall:
		return CellWall, nil
	case glyphPellet:
		return CellPellet, nil
	case glyphPowerPellet:
		return CellPowerPellet, nil
	case glyphPlayerStart:
		return CellPlayerStart, nil
	case glyphPursuerStart:
		return CellPursuerStart, nil
	case glyphEmpty:
		return CellEmpty, nil
	default:
		return CellEmpty, fmt.Errorf("unknown glyph %q", ch)
	}
}

// Cols returns the maze width in cells.
func (m *Maze) Cols() int { return m.cols }

// Rows returns the maze height in cells.
func (m *Maze) Rows() int { return m.rows }

// CellSize returns the edge length of one cell in world units.
func (m *Maze) CellSize() float64 { return m.cellSize }

// Width returns the maze width in world units.
func (m *Maze) Width() float64 { return float64(m.cols) * m.cellSize }

// Height returns the maze height in world units.
func (m *Maze) Height() float64 { return float64(m.rows) * m.cellSize }

// At returns the cell kind, or CellEmpty outside the maze.
func (m *Maze) At(c Cell) CellKind {
	if c.Row < 0 || c.Row >= m.rows || c.Col < 0 || c.Col >= m.cols {
		return CellEmpty
	}
	return m.cells[c.Row][c.Col]
}

// CellBounds returns the world box covered by a cell.
func (m *Maze) CellBounds(c Cell) core.RectF {
	return core.NewRectF(float64(c.Col)*m.cellSize, float64(c.Row)*m.cellSize, m.cellSize, m.cellSize)
}

// Walls returns the wall boxes. The slice is shared and must not be modified.
func (m *Maze) Walls() []core.RectF { return m.walls }

// PlayerStart returns the player's spawn cell.
func (m *Maze) PlayerStart() Cell { return m.playerStart }

// PursuerStarts returns the pursuer spawn cells in layout order.
func (m *Maze) PursuerStarts() []Cell {
	return append([]Cell(nil), m.pursuerStarts...)
}

// String renders the maze back to its layout glyphs.
func (m *Maze) String() string {
	var sb strings.Builder
	for row := range m.cells {
		if row > 0 {
			sb.WriteByte('\n')
		}
		for _, k := range m.cells[row] {
			sb.WriteRune(k.glyph())
		}
	}
	return sb.String()
}

func (k CellKind) glyph() rune {
	switch k {
	case CellWall:
		return glyphWall
	case CellPellet:
		return glyphPellet
	case CellPowerPellet:
		return glyphPowerPellet
	case CellPlayerStart:
		return glyphPlayerStart
	case CellPursuerStart:
		return glyphPursuerStart
	default:
		return glyphEmpty
	}
}
