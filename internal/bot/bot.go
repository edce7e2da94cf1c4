package bot

import (
	"fmt"

	"desdemona/internal/domain/game"
	errs "desdemona/internal/errors"
)

// Stats counts the work done by the searches of one Bot.
type Stats struct {
	Nodes       int
	CacheHits   int
	CacheMisses int
	Cutoffs     int
	Value       int
}

// Bot picks moves for game.Bot with depth-limited minimax and alpha-beta
// pruning. A Bot is not safe for concurrent use; give every request its own.
type Bot struct {
	intelligence int
	cache        map[game.Game]int
	stats        Stats
}

// New creates a bot that searches intelligence plies past the root move
// before falling back to the heuristic evaluation.
func New(intelligence int) *Bot {
	if intelligence < 0 {
		intelligence = 0
	}
	return &Bot{
		intelligence: intelligence,
		cache:        make(map[game.Game]int),
	}
}

func (b *Bot) Intelligence() int {
	return b.intelligence
}

func (b *Bot) Stats() Stats {
	return b.stats
}

// CacheSize is the number of memoized evaluations.
func (b *Bot) CacheSize() int {
	return len(b.cache)
}

// Decide returns the best action for the bot in g and the resulting state.
// It is the bot's turn in g. When the bot has no legal action the error wraps
// errs.ErrNoActions.
func (b *Bot) Decide(g game.Game) (game.Action, game.Game, error) {
	if g.CurrentPlayer() != game.Bot {
		panic(fmt.Sprintf("bot: deciding for %s", g.CurrentPlayer()))
	}

	actions := g.Actions(game.Bot)
	if len(actions) == 0 {
		return game.Action{}, game.Game{}, fmt.Errorf("decide: %w", errs.ErrNoActions)
	}

	alpha := game.MinEvaluation
	beta := game.MaxEvaluation

	var (
		bestAction game.Action
		bestResult game.Game
		bestValue  int
		decided    bool
	)

	for _, act := range actions {
		result := g.Result(act)
		value := b.minValue(result, alpha, beta, 1)
		if !decided || value > bestValue {
			bestValue = value
			bestAction = act
			bestResult = result
			decided = true
		}
		alpha = max(alpha, bestValue)
	}

	b.stats.Value = bestValue
	return bestAction, bestResult, nil
}

// minValue scores a node where the human moves.
func (b *Bot) minValue(g game.Game, alpha, beta, depth int) int {
	b.stats.Nodes++

	if g.IsOver() {
		return g.Utility()
	} else if depth > b.intelligence {
		return b.evaluate(g)
	}

	actions := g.Actions(game.Human)
	if len(actions) == 0 {
		return b.maxValue(g.Pass(), alpha, beta, depth+1)
	}

	best := game.MaxEvaluation
	for _, act := range actions {
		value := b.maxValue(g.Result(act), alpha, beta, depth+1)
		if value < best {
			best = value
		}
		if best <= alpha {
			b.stats.Cutoffs++
			return best
		}
		beta = min(beta, best)
	}

	return best
}

// maxValue scores a node where the bot moves.
func (b *Bot) maxValue(g game.Game, alpha, beta, depth int) int {
	b.stats.Nodes++

	if g.IsOver() {
		return g.Utility()
	} else if depth > b.intelligence {
		return b.evaluate(g)
	}

	actions := g.Actions(game.Bot)
	if len(actions) == 0 {
		return b.minValue(g.Pass(), alpha, beta, depth+1)
	}

	best := game.MinEvaluation
	for _, act := range actions {
		value := b.minValue(g.Result(act), alpha, beta, depth+1)
		if value > best {
			best = value
		}
		if best >= beta {
			b.stats.Cutoffs++
			return best
		}
		alpha = max(alpha, best)
	}

	return best
}

func (b *Bot) evaluate(g game.Game) int {
	if value, ok := b.cache[g]; ok {
		b.stats.CacheHits++
		return value
	}

	b.stats.CacheMisses++
	value := g.Evaluate()
	b.cache[g] = value
	return value
}
