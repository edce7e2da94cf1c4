package board

import (
	"fmt"
	"strings"

	errs "desdemona/internal/errors"
)

// Size is the side length of the board. It must be even.
const Size = 8

const EmptyChar = 'E'

// Board is a Size x Size grid of disks. It is a value type: assigning a Board
// copies every cell, so two boards never share storage.
type Board struct {
	grid [Size][Size]Disk
}

// New builds the initial board with the four center disks.
func New() Board {
	if Size%2 != 0 {
		panic("board: size must be even")
	}

	var b Board
	mid := Size/2 - 1

	b.grid[mid][mid] = Dark
	b.grid[mid+1][mid] = Light
	b.grid[mid][mid+1] = Light
	b.grid[mid+1][mid+1] = Dark

	return b
}

// Disk returns the disk at pos and whether the cell is occupied.
// pos must be in bounds.
func (b *Board) Disk(pos Position) (Disk, bool) {
	d := b.grid[pos.Row][pos.Col]
	return d, d != none
}

// Place writes disk into pos. It does not check game rules.
func (b *Board) Place(disk Disk, pos Position) error {
	if _, ok := b.Disk(pos); ok {
		return fmt.Errorf("position %s is not empty to place a disk: %w", pos, errs.ErrInvalidArgument)
	}

	b.grid[pos.Row][pos.Col] = disk
	return nil
}

// Flip toggles the disk at pos.
func (b *Board) Flip(pos Position) error {
	d, ok := b.Disk(pos)
	if !ok {
		return fmt.Errorf("board is empty at %s: %w", pos, errs.ErrInvalidArgument)
	}

	b.grid[pos.Row][pos.Col] = d.Opponent()
	return nil
}

// Positions returns every cell occupied by disk in row-major order.
func (b *Board) Positions(disk Disk) []Position {
	positions := make([]Position, 0, Size)
	for row := 0; row < Size; row++ {
		for col := 0; col < Size; col++ {
			if b.grid[row][col] == disk {
				positions = append(positions, Position{Row: row, Col: col})
			}
		}
	}
	return positions
}

// Count returns the number of cells occupied by disk.
func (b *Board) Count(disk Disk) int {
	n := 0
	for row := range b.grid {
		for _, d := range b.grid[row] {
			if d == disk {
				n++
			}
		}
	}
	return n
}

// EmptyPositions returns every empty cell in row-major order.
func (b *Board) EmptyPositions() []Position {
	return b.Positions(none)
}

// Neighbours returns the in-bound cells adjacent to pos, scanned row by row.
func (b *Board) Neighbours(pos Position) []Position {
	neighbours := make([]Position, 0, 8)
	for dr := -1; dr <= 1; dr++ {
		for dc := -1; dc <= 1; dc++ {
			if dr == 0 && dc == 0 {
				continue
			}
			p := Position{Row: pos.Row + dr, Col: pos.Col + dc}
			if p.IsInbound() {
				neighbours = append(neighbours, p)
			}
		}
	}
	return neighbours
}

// Neighbour returns the cell next to pos in direction dir, or false when that
// cell would be off the board.
func (b *Board) Neighbour(pos Position, dir Direction) (Position, bool) {
	dr, dc := dir.Offset()
	p := Position{Row: pos.Row + dr, Col: pos.Col + dc}
	if !p.IsInbound() {
		return Position{}, false
	}
	return p, true
}

// Clear empties every cell.
func (b *Board) Clear() {
	b.grid = [Size][Size]Disk{}
}

// IsFull reports whether no empty cell remains.
func (b *Board) IsFull() bool {
	return b.Count(none) == 0
}

// String renders the board row by row, one character per cell, each row
// terminated by a newline.
func (b Board) String() string {
	var sb strings.Builder
	sb.Grow(Size*Size + Size)

	for row := range b.grid {
		for _, d := range b.grid[row] {
			if d == none {
				sb.WriteByte(EmptyChar)
			} else {
				sb.WriteByte(d.Char())
			}
		}
		sb.WriteByte('\n')
	}

	return sb.String()
}

// Parse reads the text produced by String. Line breaks and spaces are
// ignored; exactly Size*Size cell characters must remain.
func Parse(text string) (Board, error) {
	var b Board

	n := 0
	for i := 0; i < len(text); i++ {
		ch := text[i]
		switch ch {
		case '\n', '\r', ' ', '\t':
			continue
		}

		if n >= Size*Size {
			return Board{}, fmt.Errorf("board has more than %d cells: %w", Size*Size, errs.ErrParse)
		}

		if ch != EmptyChar {
			d, err := ParseDisk(ch)
			if err != nil {
				return Board{}, err
			}
			b.grid[n/Size][n%Size] = d
		}
		n++
	}

	if n != Size*Size {
		return Board{}, fmt.Errorf("board has %d cells, want %d: %w", n, Size*Size, errs.ErrParse)
	}

	return b, nil
}
