package board

import (
	"fmt"

	errs "desdemona/internal/errors"
)

type Disk int8

// The zero Disk marks an empty cell and never leaves this package.
const (
	none Disk = iota
	Dark
	Light
)

const (
	DarkChar  = 'D'
	LightChar = 'L'
)

func (d Disk) Opponent() Disk {
	switch d {
	case Dark:
		return Light
	case Light:
		return Dark
	}
	panic(fmt.Sprintf("board: no opponent for disk %d", d))
}

func (d Disk) Char() byte {
	switch d {
	case Dark:
		return DarkChar
	case Light:
		return LightChar
	}
	panic(fmt.Sprintf("board: no character for disk %d", d))
}

func (d Disk) String() string {
	return string(d.Char())
}

func ParseDisk(ch byte) (Disk, error) {
	switch ch {
	case DarkChar:
		return Dark, nil
	case LightChar:
		return Light, nil
	}
	return none, fmt.Errorf("invalid character to parse into a disk: %q: %w", ch, errs.ErrParse)
}
