package bot

import (
	"errors"
	"testing"

	"desdemona/internal/domain/board"
	"desdemona/internal/domain/game"
	errs "desdemona/internal/errors"
)

// minimax is an unpruned, uncached reference search with the same depth and
// pass rules as the bot.
func minimax(g game.Game, depth, limit int, botToMove bool) int {
	if g.IsOver() {
		return g.Utility()
	}
	if depth > limit {
		return g.Evaluate()
	}

	player := game.Human
	best := game.MaxEvaluation
	if botToMove {
		player = game.Bot
		best = game.MinEvaluation
	}

	actions := g.Actions(player)
	if len(actions) == 0 {
		return minimax(g.Pass(), depth+1, limit, !botToMove)
	}

	for _, act := range actions {
		value := minimax(g.Result(act), depth+1, limit, !botToMove)
		if botToMove && value > best || !botToMove && value < best {
			best = value
		}
	}
	return best
}

func referenceDecide(g game.Game, limit int) (game.Action, int) {
	var (
		bestAction game.Action
		bestValue  int
		decided    bool
	)
	for _, act := range g.Actions(game.Bot) {
		value := minimax(g.Result(act), 1, limit, false)
		if !decided || value > bestValue {
			bestAction, bestValue, decided = act, value, true
		}
	}
	return bestAction, bestValue
}

// playout advances from the opening by choosing actions round robin until
// the bot has a move after at least n plies.
func playout(t *testing.T, n int) game.Game {
	t.Helper()
	g := game.New()
	for i := 0; i < n || g.CurrentPlayer() != game.Bot || g.CanPass(); i++ {
		if g.IsOver() {
			t.Fatalf("playout ended early at ply %d", i)
		}
		if g.CanPass() {
			g = g.Pass()
			continue
		}
		actions := g.Actions(g.CurrentPlayer())
		g = g.Result(actions[(i*7)%len(actions)])
	}
	return g
}

func mustBoard(t *testing.T, bot, human []board.Position) board.Board {
	t.Helper()
	var b board.Board
	for _, p := range bot {
		if err := b.Place(game.Bot.Disk(), p); err != nil {
			t.Fatal(err)
		}
	}
	for _, p := range human {
		if err := b.Place(game.Human.Disk(), p); err != nil {
			t.Fatal(err)
		}
	}
	return b
}

func TestDecideMatchesMinimax(t *testing.T) {
	tests := []struct {
		name   string
		game   game.Game
		limits []int
	}{
		{"opening", game.New(), []int{0, 1, 2, 3}},
		{"early", playout(t, 6), []int{0, 1, 2}},
		{"middle", playout(t, 24), []int{0, 1, 2}},
		{"late", playout(t, 40), []int{0, 1, 2, 3}},
	}

	for _, tt := range tests {
		for _, limit := range tt.limits {
			t.Run(tt.name, func(t *testing.T) {
				wantAction, wantValue := referenceDecide(tt.game, limit)

				b := New(limit)
				action, result, err := b.Decide(tt.game)
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				if action != wantAction {
					t.Errorf("limit %d: expected %s, got %s", limit, wantAction, action)
				}
				if got := b.Stats().Value; got != wantValue {
					t.Errorf("limit %d: expected value %d, got %d", limit, wantValue, got)
				}
				if result != tt.game.Result(action) {
					t.Errorf("limit %d: result does not match the chosen action", limit)
				}
			})
		}
	}
}

func TestDecideSingleActionNoLookahead(t *testing.T) {
	var human []board.Position
	for col := 1; col < board.Size-1; col++ {
		human = append(human, board.NewPosition(0, col))
	}
	b := mustBoard(t, []board.Position{board.NewPosition(0, board.Size-1)}, human)
	g := game.Parse(b, game.Bot)

	bot := New(0)
	action, result, err := bot.Decide(g)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := game.Action{Player: game.Bot, Placement: board.NewPosition(0, 0)}
	if action != want {
		t.Errorf("expected %s, got %s", want, action)
	}
	if result != g.Result(want) {
		t.Errorf("expected the immediate result of %s", want)
	}
	if n := bot.Stats().Nodes; n != 1 {
		t.Errorf("expected a single node, got %d", n)
	}
}

func TestDecideNoActions(t *testing.T) {
	b := mustBoard(t,
		[]board.Position{board.NewPosition(0, 1)},
		[]board.Position{board.NewPosition(0, 0)},
	)
	g := game.Parse(b, game.Bot)

	_, _, err := New(3).Decide(g)
	if !errors.Is(err, errs.ErrNoActions) {
		t.Errorf("expected ErrNoActions, got %v", err)
	}
}

func TestDecideThroughPass(t *testing.T) {
	// Either bot move leaves the human stuck; the bot then takes the other
	// row and wins.
	b := mustBoard(t,
		[]board.Position{board.NewPosition(0, 0), board.NewPosition(7, 0)},
		[]board.Position{board.NewPosition(0, 1), board.NewPosition(7, 1)},
	)
	g := game.Parse(b, game.Bot)

	for _, limit := range []int{0, 1, 2, 4} {
		bot := New(limit)
		action, _, err := bot.Decide(g)
		if err != nil {
			t.Fatalf("limit %d: unexpected error: %v", limit, err)
		}

		wantAction, wantValue := referenceDecide(g, limit)
		if action != wantAction || bot.Stats().Value != wantValue {
			t.Errorf("limit %d: expected %s (%d), got %s (%d)",
				limit, wantAction, wantValue, action, bot.Stats().Value)
		}
	}

	bot := New(2)
	action, _, _ := bot.Decide(g)
	if action.Placement != board.NewPosition(0, 2) {
		t.Errorf("expected C1, got %s", action)
	}
	if bot.Stats().Value != game.MaxEvaluation {
		t.Errorf("expected a forced win, got %d", bot.Stats().Value)
	}
}

func TestDecideFinishingMove(t *testing.T) {
	// C1 captures the only human disk and ends the game.
	b := mustBoard(t,
		[]board.Position{board.NewPosition(0, 0), board.NewPosition(3, 3)},
		[]board.Position{board.NewPosition(0, 1)},
	)
	g := game.Parse(b, game.Bot)

	action, result, err := New(1).Decide(g)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if action.Placement != board.NewPosition(0, 2) {
		t.Errorf("expected C1, got %s", action)
	}
	if !result.IsOver() {
		t.Errorf("expected the game to be over")
	}
}

func TestDecideCachesEvaluations(t *testing.T) {
	bot := New(3)
	if _, _, err := bot.Decide(game.New()); err != nil {
		t.Fatal(err)
	}

	stats := bot.Stats()
	if bot.CacheSize() == 0 || stats.CacheMisses != bot.CacheSize() {
		t.Errorf("expected one cache entry per miss, got %d entries and %d misses",
			bot.CacheSize(), stats.CacheMisses)
	}
	if stats.Cutoffs == 0 {
		t.Errorf("expected pruning at depth 3")
	}

	hits := stats.CacheHits
	if _, _, err := bot.Decide(game.New()); err != nil {
		t.Fatal(err)
	}
	if bot.Stats().CacheHits <= hits {
		t.Errorf("expected a repeated search to hit the cache")
	}
}

func TestDecideWrongTurnPanics(t *testing.T) {
	g := game.New().Result(game.Action{Player: game.Bot, Placement: board.NewPosition(2, 3)})

	defer func() {
		if recover() == nil {
			t.Errorf("expected panic when it is not the bot's turn")
		}
	}()
	New(1).Decide(g)
}
