package play

import (
	"context"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"desdemona/internal/bootstrap"
	"desdemona/internal/domain/board"
	"desdemona/internal/domain/game"
	"desdemona/internal/domain/othello"
	errs "desdemona/internal/errors"
	"desdemona/internal/httpresponse"
	othellouc "desdemona/internal/usecase/othello"
	"desdemona/internal/utils"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// PlayHandler runs one game against the bot per websocket connection.
type PlayHandler struct {
	cfg       bootstrap.Config
	log       *zap.SugaredLogger
	othelloUC *othellouc.OthelloUseCase
	decider   othellouc.Decider
}

func NewPlayHandler(cfg bootstrap.Config, log *zap.SugaredLogger, othelloUC *othellouc.OthelloUseCase, decider othellouc.Decider) *PlayHandler {
	return &PlayHandler{
		cfg:       cfg,
		log:       log,
		othelloUC: othelloUC,
		decider:   decider,
	}
}

type session struct {
	id           string
	conn         *websocket.Conn
	intelligence int
	game         game.Game
}

// HandlePlay godoc
// @Summary Play against the bot
// @Description Upgrades to a websocket. The bot opens; the client sends {"position":"D3"} and receives the resulting states.
// @Tags play
// @Param intelligence query int false "Search depth"
// @Failure 400 {object} httpresponse.ErrorResponse
// @Router /play [get]
func (p *PlayHandler) HandlePlay(w http.ResponseWriter, r *http.Request) {
	intelligence, err := utils.ParseIntelligence(r.URL.Query().Get("intelligence"), p.cfg.DefaultIntelligence)
	if err == nil && (intelligence < 0 || intelligence > p.cfg.MaxIntelligence) {
		err = fmt.Errorf("intelligence %d not in [0, %d]: %w", intelligence, p.cfg.MaxIntelligence, errs.ErrIntelligenceRange)
	}
	if err != nil {
		p.log.Infow("HandlePlay: rejected request", "error", err)
		httpresponse.WriteErrorWithStatus(w, http.StatusBadRequest, err.Error())
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		p.log.Error("HandlePlay: upgrade error: ", err)
		return
	}
	defer conn.Close()

	s := &session{
		id:           uuid.New().String(),
		conn:         conn,
		intelligence: intelligence,
		game:         game.New(),
	}
	p.log.Infow("play session started", "session_id", s.id, "intelligence", intelligence)

	if err := p.run(r.Context(), s); err != nil {
		p.log.Infow("play session closed", "session_id", s.id, "error", err)
		return
	}
	p.log.Infow("play session finished", "session_id", s.id)
}

func (p *PlayHandler) run(ctx context.Context, s *session) error {
	if err := p.send(s, othello.MessageState, "", ""); err != nil {
		return err
	}

	for {
		if err := p.botTurns(ctx, s); err != nil {
			return err
		}
		if s.game.IsOver() {
			return nil
		}

		var move othello.PlayMove
		if err := s.conn.ReadJSON(&move); err != nil {
			return err
		}

		next, err := p.othelloUC.Move(s.game, move.Position)
		if err != nil {
			if err := s.conn.WriteJSON(othello.PlayMessage{
				Type:      othello.MessageError,
				SessionID: s.id,
				Error:     err.Error(),
			}); err != nil {
				return err
			}
			continue
		}

		s.game = next
		if err := p.send(s, othello.MessageHuman, game.Human.String(), move.Position); err != nil {
			return err
		}
	}
}

// botTurns plays until the human has a move or the game is over, passing for
// whichever side is stuck.
func (p *PlayHandler) botTurns(ctx context.Context, s *session) error {
	for !s.game.IsOver() {
		current := s.game.CurrentPlayer()

		if s.game.CanPass() {
			s.game = s.game.Pass()
			if err := p.send(s, othello.MessagePass, current.String(), ""); err != nil {
				return err
			}
			continue
		}
		if current == game.Human {
			return nil
		}

		decision, err := p.decider.Decide(ctx, s.game.Board().String(), s.intelligence)
		if err != nil {
			return fmt.Errorf("decide: %w", err)
		}
		if decision.Decision == nil {
			return fmt.Errorf("decide: bot returned no move: %w", errs.ErrInternal)
		}

		next, err := board.Parse(decision.Result.Board)
		if err != nil {
			return fmt.Errorf("decide: %w", err)
		}
		s.game = game.Parse(next, game.Human)

		if err := p.send(s, othello.MessageBot, game.Bot.String(), *decision.Decision); err != nil {
			return err
		}
	}
	return nil
}

func (p *PlayHandler) send(s *session, kind, player, position string) error {
	state := othellouc.StateOf(s.game)
	err := s.conn.WriteJSON(othello.PlayMessage{
		Type:      kind,
		SessionID: s.id,
		Player:    player,
		Position:  position,
		State:     &state,
	})
	if err != nil {
		return fmt.Errorf("write %s message: %w", kind, err)
	}
	return nil
}
