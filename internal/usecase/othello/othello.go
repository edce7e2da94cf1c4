package othello

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"desdemona/internal/bot"
	"desdemona/internal/domain/board"
	"desdemona/internal/domain/game"
	"desdemona/internal/domain/othello"
	errs "desdemona/internal/errors"
)

type DecisionStore interface {
	LoadDecision(ctx context.Context, key string) (othello.Decision, error)
	SaveDecision(ctx context.Context, key string, decision othello.Decision) error
}

// Decider answers decide queries, in process or through the decision service.
type Decider interface {
	Decide(ctx context.Context, boardText string, intelligence int) (othello.Decision, error)
}

type OthelloUseCase struct {
	store           DecisionStore
	log             *zap.SugaredLogger
	maxIntelligence int
}

// NewOthelloUseCase creates the use case. store may be nil, in which case
// every decision is computed.
func NewOthelloUseCase(store DecisionStore, log *zap.SugaredLogger, maxIntelligence int) *OthelloUseCase {
	return &OthelloUseCase{
		store:           store,
		log:             log,
		maxIntelligence: maxIntelligence,
	}
}

func (o *OthelloUseCase) InitialBoard() string {
	return board.New().String()
}

// Actions lists the distinct legal placements of the player on the board.
func (o *OthelloUseCase) Actions(boardText, playerText string) ([]string, error) {
	b, err := board.Parse(boardText)
	if err != nil {
		return nil, err
	}
	player, err := game.ParsePlayer(playerText)
	if err != nil {
		return nil, err
	}

	g := game.Parse(b, player)

	placements := make([]string, 0)
	for _, act := range g.UniqueActions(player) {
		placements = append(placements, act.String())
	}
	return placements, nil
}

// Result applies the player's placement and returns the new state. The
// placement must be one of the player's legal actions.
func (o *OthelloUseCase) Result(boardText, playerText, positionText string) (othello.GameState, error) {
	b, err := board.Parse(boardText)
	if err != nil {
		return othello.GameState{}, err
	}
	player, err := game.ParsePlayer(playerText)
	if err != nil {
		return othello.GameState{}, err
	}
	pos, err := board.ParsePosition(positionText)
	if err != nil {
		return othello.GameState{}, err
	}

	g := game.Parse(b, player)
	next, err := o.apply(g, game.Action{Player: player, Placement: pos})
	if err != nil {
		return othello.GameState{}, err
	}

	return StateOf(next), nil
}

// Move applies a human placement to a live game.
func (o *OthelloUseCase) Move(g game.Game, positionText string) (game.Game, error) {
	if g.CurrentPlayer() != game.Human {
		return g, fmt.Errorf("move: %w", errs.ErrNotYourTurn)
	}
	pos, err := board.ParsePosition(positionText)
	if err != nil {
		return g, err
	}
	return o.apply(g, game.Action{Player: game.Human, Placement: pos})
}

func (o *OthelloUseCase) apply(g game.Game, action game.Action) (game.Game, error) {
	if g.IsOver() {
		return g, fmt.Errorf("apply %s: %w", action, errs.ErrGameOver)
	}
	if !g.IsLegal(action) {
		return g, fmt.Errorf("apply %s for %s: %w", action, action.Player, errs.ErrIllegalAction)
	}
	return g.Result(action), nil
}

// Decide runs the bot on the board with the bot to move. A bot without legal
// actions is not an error: the decision is nil and the result is the
// unchanged state.
func (o *OthelloUseCase) Decide(ctx context.Context, boardText string, intelligence int) (othello.Decision, error) {
	if intelligence < 0 || intelligence > o.maxIntelligence {
		return othello.Decision{}, fmt.Errorf("intelligence %d not in [0, %d]: %w",
			intelligence, o.maxIntelligence, errs.ErrIntelligenceRange)
	}
	b, err := board.Parse(boardText)
	if err != nil {
		return othello.Decision{}, err
	}

	requestID := uuid.New().String()
	key := DecisionKey(b, intelligence)

	if o.store != nil {
		cached, err := o.store.LoadDecision(ctx, key)
		switch {
		case err == nil:
			o.log.Infow("decision cache hit", "request_id", requestID, "key", key)
			cached.RequestID = requestID
			return cached, nil
		case !errors.Is(err, errs.ErrDecisionNotFound):
			o.log.Warnw("failed to load decision", "key", key, "error", err)
		}
	}

	if err := ctx.Err(); err != nil {
		return othello.Decision{}, err
	}

	g := game.Parse(b, game.Bot)
	searcher := bot.New(intelligence)

	decision := othello.Decision{
		RequestID:    requestID,
		Intelligence: intelligence,
	}

	action, result, err := searcher.Decide(g)
	switch {
	case errors.Is(err, errs.ErrNoActions):
		decision.Result = StateOf(g)
	case err != nil:
		return othello.Decision{}, err
	default:
		placement := action.String()
		decision.Decision = &placement
		decision.Result = StateOf(result)
	}

	stats := searcher.Stats()
	o.log.Infow("decision computed",
		"request_id", requestID,
		"intelligence", intelligence,
		"decision", decision.Decision,
		"value", stats.Value,
		"nodes", stats.Nodes,
		"cache_hits", stats.CacheHits,
		"cache_misses", stats.CacheMisses,
		"cutoffs", stats.Cutoffs,
	)

	if o.store != nil {
		if err := o.store.SaveDecision(ctx, key, decision); err != nil {
			o.log.Warnw("failed to save decision", "key", key, "error", err)
		}
	}

	return decision, nil
}

// DecisionKey identifies a decide query. The bot is deterministic, so equal
// keys always yield equal decisions.
func DecisionKey(b board.Board, intelligence int) string {
	return fmt.Sprintf("decision:%d:%s", intelligence, strings.ReplaceAll(b.String(), "\n", ""))
}

// StateOf renders a game for transport.
func StateOf(g game.Game) othello.GameState {
	b := g.Board()
	state := othello.GameState{
		Board:         b.String(),
		CurrentPlayer: g.CurrentPlayer().String(),
		Dark:          b.Count(board.Dark),
		Light:         b.Count(board.Light),
		Over:          g.IsOver(),
	}

	if state.Over {
		if winner, ok := g.Winner(); ok {
			state.Winner = winner.String()
		}
	}

	return state
}
