package game

import (
	"fmt"
	"math"

	"desdemona/internal/domain/board"
)

const (
	MaxEvaluation = math.MaxInt
	MinEvaluation = math.MinInt

	placementWeight = 1
	mobilityWeight  = 1
)

// Game is a board together with the player to move. It is comparable, so two
// independently derived but equal states are equal map keys.
type Game struct {
	board   board.Board
	current Player
	winner  Player
}

// New creates the initial state with the bot to move.
func New() Game {
	return Game{
		board:   board.New(),
		current: Bot,
	}
}

// Parse builds a state from an external board and the player to move. The
// winner is recomputed when the state is already terminal.
func Parse(b board.Board, current Player) Game {
	g := Game{
		board:   b,
		current: current,
	}

	if g.IsOver() {
		g.setWinner()
	}

	return g
}

func (g Game) CurrentPlayer() Player {
	return g.current
}

func (g Game) Board() board.Board {
	return g.board
}

// Actions returns the legal moves of player. A placement reachable from
// several disks or directions is yielded once per route.
func (g Game) Actions(player Player) []Action {
	var actions []Action
	g.scanActions(player, func(a Action) bool {
		actions = append(actions, a)
		return true
	})
	return actions
}

// UniqueActions is Actions with repeated placements removed, first
// occurrence kept.
func (g Game) UniqueActions(player Player) []Action {
	var seen [board.Size][board.Size]bool
	var actions []Action
	g.scanActions(player, func(a Action) bool {
		p := a.Placement
		if !seen[p.Row][p.Col] {
			seen[p.Row][p.Col] = true
			actions = append(actions, a)
		}
		return true
	})
	return actions
}

// HasActions reports whether player has at least one legal move.
func (g Game) HasActions(player Player) bool {
	found := false
	g.scanActions(player, func(Action) bool {
		found = true
		return false
	})
	return found
}

// IsLegal reports whether action is among the legal moves of its player.
func (g Game) IsLegal(action Action) bool {
	legal := false
	g.scanActions(action.Player, func(a Action) bool {
		if a == action {
			legal = true
			return false
		}
		return true
	})
	return legal
}

// scanActions walks outward from every disk of player over runs of opponent
// disks and reports each empty cell that closes such a run. yield returning
// false stops the scan.
func (g Game) scanActions(player Player, yield func(Action) bool) {
	own := player.Disk()
	opponent := own.Opponent()

	for _, origin := range g.board.Positions(own) {
		for _, dir := range board.Directions {
			distance := 1
			walker, ok := g.board.Neighbour(origin, dir)

			for ok {
				disk, occupied := g.board.Disk(walker)
				if !occupied {
					if distance > 1 && !yield(Action{Player: player, Placement: walker}) {
						return
					}
					break
				}
				if disk != opponent {
					break
				}

				distance++
				walker, ok = g.board.Neighbour(walker, dir)
			}
		}
	}
}

// Result returns the state after action is applied. The action is not
// checked for legality; callers only pass actions produced by Actions.
func (g Game) Result(action Action) Game {
	next := g
	own := action.Player.Disk()
	opponent := own.Opponent()

	if err := next.board.Place(own, action.Placement); err != nil {
		panic(fmt.Sprintf("game: applying %s for %s: %v", action, action.Player, err))
	}

	for _, dir := range board.Directions {
		walker, ok := next.board.Neighbour(action.Placement, dir)
		if !ok {
			continue
		}

		var path []board.Position
		for {
			disk, occupied := next.board.Disk(walker)
			if !occupied || disk != opponent {
				break
			}
			path = append(path, walker)

			walker, ok = next.board.Neighbour(walker, dir)
			if !ok {
				break
			}
		}

		if !ok {
			continue
		}
		if disk, occupied := next.board.Disk(walker); !occupied || disk != own {
			continue
		}

		for _, pos := range path {
			if err := next.board.Flip(pos); err != nil {
				panic(fmt.Sprintf("game: flipping %s: %v", pos, err))
			}
		}
	}

	next.current = action.Player.Opponent()
	next.winner = 0
	if next.IsOver() {
		next.setWinner()
	}
	return next
}

// CanPass reports whether the player to move is stuck while the opponent
// still has a move.
func (g Game) CanPass() bool {
	return !g.HasActions(g.current) && g.HasActions(g.current.Opponent())
}

// Pass hands the turn to the opponent. It must only be called when CanPass
// holds.
func (g Game) Pass() Game {
	if !g.CanPass() {
		panic(fmt.Sprintf("game: %s cannot pass", g.current))
	}

	next := g
	next.current = g.current.Opponent()
	return next
}

// IsOver reports whether neither player has a legal move.
func (g Game) IsOver() bool {
	return !g.HasActions(Bot) && !g.HasActions(Human)
}

func (g *Game) setWinner() {
	bot := g.board.Count(Bot.Disk())
	human := g.board.Count(Human.Disk())

	switch {
	case bot > human:
		g.winner = Bot
	case human > bot:
		g.winner = Human
	default:
		g.winner = 0
	}
}

// Winner returns the player with more disks, or false on a tie.
// The game must be over.
func (g Game) Winner() (Player, bool) {
	if !g.IsOver() {
		panic("game: winner of a game that is not over")
	}
	return g.winner, g.winner != 0
}

// Utility scores a finished game from the bot's side.
func (g Game) Utility() int {
	winner, ok := g.Winner()
	switch {
	case !ok:
		return 0
	case winner == Bot:
		return MaxEvaluation
	default:
		return MinEvaluation
	}
}

// Evaluate is the heuristic value of an unfinished game from the bot's side:
// positional weight difference plus mobility difference.
func (g Game) Evaluate() int {
	if g.IsOver() {
		panic("game: evaluating a game that is over")
	}

	placement := 0
	for _, p := range g.board.Positions(Bot.Disk()) {
		placement += p.Weight()
	}
	for _, p := range g.board.Positions(Human.Disk()) {
		placement -= p.Weight()
	}

	mobility := len(g.Actions(Bot)) - len(g.Actions(Human))

	return placementWeight*placement + mobilityWeight*mobility
}
