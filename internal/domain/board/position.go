package board

import (
	"fmt"
	"strconv"
	"strings"

	errs "desdemona/internal/errors"
)

const columnLetters = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// Direction is one of the eight compass directions.
type Direction int8

const (
	North Direction = iota
	NorthEast
	East
	SouthEast
	South
	SouthWest
	West
	NorthWest
)

// Directions lists every direction in a fixed order.
var Directions = [8]Direction{North, NorthEast, East, SouthEast, South, SouthWest, West, NorthWest}

var directionOffsets = [8][2]int{
	North:     {-1, 0},
	NorthEast: {-1, 1},
	East:      {0, 1},
	SouthEast: {1, 1},
	South:     {1, 0},
	SouthWest: {1, -1},
	West:      {0, -1},
	NorthWest: {-1, -1},
}

var directionNames = [8]string{"N", "NE", "E", "SE", "S", "SW", "W", "NW"}

// Offset returns the row and column step of d.
func (d Direction) Offset() (int, int) {
	o := directionOffsets[d]
	return o[0], o[1]
}

func (d Direction) String() string {
	return directionNames[d]
}

// Position is a zero-based (row, column) cell coordinate.
type Position struct {
	Row int
	Col int
}

func NewPosition(row, col int) Position {
	return Position{Row: row, Col: col}
}

func (p Position) IsInbound() bool {
	return p.Row >= 0 && p.Row < Size && p.Col >= 0 && p.Col < Size
}

// Direction returns the compass direction from p towards target.
// p and target must differ.
func (p Position) Direction(target Position) Direction {
	if p == target {
		panic(fmt.Sprintf("board: direction from %s to itself", p))
	}

	rowDiff := target.Row - p.Row
	colDiff := target.Col - p.Col

	switch {
	case rowDiff < 0 && colDiff < 0:
		return NorthWest
	case rowDiff < 0 && colDiff == 0:
		return North
	case rowDiff < 0:
		return NorthEast
	case rowDiff == 0 && colDiff < 0:
		return West
	case rowDiff == 0:
		return East
	case colDiff < 0:
		return SouthWest
	case colDiff == 0:
		return South
	default:
		return SouthEast
	}
}

// Weight is the static positional value of p used by the evaluation.
func (p Position) Weight() int {
	return weights[p.Row][p.Col]
}

// String formats p as column letter plus one-based row, e.g. "A1".
func (p Position) String() string {
	if p.Col < 0 || p.Col >= len(columnLetters) {
		return fmt.Sprintf("(%d,%d)", p.Row, p.Col)
	}
	return fmt.Sprintf("%c%d", columnLetters[p.Col], p.Row+1)
}

// ParsePosition reads a position such as "D3" or "d3".
func ParsePosition(text string) (Position, error) {
	text = strings.TrimSpace(text)
	if len(text) < 2 {
		return Position{}, fmt.Errorf("invalid position %q: %w", text, errs.ErrParse)
	}

	col := strings.IndexByte(columnLetters, strings.ToUpper(text[:1])[0])
	row, err := strconv.Atoi(text[1:])
	if col < 0 || err != nil {
		return Position{}, fmt.Errorf("invalid position %q: %w", text, errs.ErrParse)
	}

	p := Position{Row: row - 1, Col: col}
	if !p.IsInbound() {
		return Position{}, fmt.Errorf("position %q is out of the board: %w", text, errs.ErrParse)
	}
	return p, nil
}
