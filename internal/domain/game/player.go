package game

import (
	"fmt"

	"desdemona/internal/domain/board"
	errs "desdemona/internal/errors"
)

type Player int8

const (
	Bot Player = iota + 1
	Human
)

const (
	BotChar   = 'B'
	HumanChar = 'H'
)

// ParsePlayer reads a single-character player identifier.
func ParsePlayer(text string) (Player, error) {
	if len(text) != 1 {
		return 0, fmt.Errorf("invalid player %q: %w", text, errs.ErrParse)
	}
	switch text[0] {
	case BotChar:
		return Bot, nil
	case HumanChar:
		return Human, nil
	}
	return 0, fmt.Errorf("invalid character to parse into a player: %q: %w", text, errs.ErrParse)
}

func (p Player) Opponent() Player {
	switch p {
	case Bot:
		return Human
	case Human:
		return Bot
	}
	panic(fmt.Sprintf("game: no opponent for player %d", p))
}

// Disk is the disk colour the player moves with.
func (p Player) Disk() board.Disk {
	switch p {
	case Bot:
		return board.Light
	case Human:
		return board.Dark
	}
	panic(fmt.Sprintf("game: no disk for player %d", p))
}

func (p Player) String() string {
	switch p {
	case Bot:
		return string(BotChar)
	case Human:
		return string(HumanChar)
	}
	return "?"
}

// Action places the player's disk at Placement.
type Action struct {
	Player    Player
	Placement board.Position
}

func (a Action) String() string {
	return a.Placement.String()
}
