package play

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"desdemona/internal/bootstrap"
	"desdemona/internal/domain/board"
	"desdemona/internal/domain/game"
	"desdemona/internal/domain/othello"
	othellouc "desdemona/internal/usecase/othello"
)

func newServer(t *testing.T) *httptest.Server {
	t.Helper()
	cfg := bootstrap.Config{DefaultIntelligence: 0, MaxIntelligence: 2}
	log := zap.NewNop().Sugar()
	uc := othellouc.NewOthelloUseCase(nil, log, cfg.MaxIntelligence)

	r := chi.NewRouter()
	r.Get("/play", NewPlayHandler(cfg, log, uc, uc).HandlePlay)

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv
}

func dial(t *testing.T, srv *httptest.Server, query string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/play" + query
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	_ = conn.SetReadDeadline(time.Now().Add(30 * time.Second))
	return conn
}

func read(t *testing.T, conn *websocket.Conn) othello.PlayMessage {
	t.Helper()
	var msg othello.PlayMessage
	if err := conn.ReadJSON(&msg); err != nil {
		t.Fatalf("read: %v", err)
	}
	return msg
}

// humanActions lists the human's moves in the state carried by msg.
func humanActions(t *testing.T, msg othello.PlayMessage) []game.Action {
	t.Helper()
	b, err := board.Parse(msg.State.Board)
	if err != nil {
		t.Fatalf("parse board from %s message: %v", msg.Type, err)
	}
	return game.Parse(b, game.Human).UniqueActions(game.Human)
}

func TestPlayOpening(t *testing.T) {
	conn := dial(t, newServer(t), "")

	msg := read(t, conn)
	if msg.Type != othello.MessageState || msg.State == nil {
		t.Fatalf("expected the initial state, got %+v", msg)
	}
	if msg.State.Board != board.New().String() || msg.State.CurrentPlayer != "B" {
		t.Errorf("unexpected initial state %+v", msg.State)
	}
	sessionID := msg.SessionID
	if sessionID == "" {
		t.Errorf("expected a session id")
	}

	msg = read(t, conn)
	if msg.Type != othello.MessageBot || msg.Player != "B" || msg.Position == "" {
		t.Fatalf("expected the bot to open, got %+v", msg)
	}
	if msg.SessionID != sessionID {
		t.Errorf("expected the session id to be stable")
	}
	if msg.State.CurrentPlayer != "H" || msg.State.Light != 4 || msg.State.Dark != 1 {
		t.Errorf("unexpected state after the opening %+v", msg.State)
	}

	if err := conn.WriteJSON(othello.PlayMove{Position: "A1"}); err != nil {
		t.Fatal(err)
	}
	if reply := read(t, conn); reply.Type != othello.MessageError || reply.Error == "" {
		t.Fatalf("expected an error for an illegal move, got %+v", reply)
	}

	move := humanActions(t, msg)[0].String()
	if err := conn.WriteJSON(othello.PlayMove{Position: move}); err != nil {
		t.Fatal(err)
	}

	msg = read(t, conn)
	if msg.Type != othello.MessageHuman || msg.Position != move {
		t.Fatalf("expected the human move to be echoed, got %+v", msg)
	}
	if msg.State.CurrentPlayer != "B" {
		t.Errorf("expected the bot to move next, got %s", msg.State.CurrentPlayer)
	}

	msg = read(t, conn)
	if msg.Type != othello.MessageBot && msg.Type != othello.MessagePass {
		t.Errorf("expected a bot reply, got %+v", msg)
	}
}

func TestPlayFullGame(t *testing.T) {
	conn := dial(t, newServer(t), "?intelligence=1")

	var last othello.PlayMessage
	for moves := 0; moves < 200; moves++ {
		last = read(t, conn)
		if last.Type == othello.MessageError {
			t.Fatalf("unexpected error message %q", last.Error)
		}
		if last.State.Over {
			break
		}
		if last.State.CurrentPlayer != "H" || last.Type == othello.MessageHuman {
			continue
		}

		actions := humanActions(t, last)
		if len(actions) == 0 {
			continue
		}
		if err := conn.WriteJSON(othello.PlayMove{Position: actions[len(actions)-1].String()}); err != nil {
			t.Fatal(err)
		}
	}

	if last.State == nil || !last.State.Over {
		t.Fatalf("expected the game to finish, last message %+v", last)
	}

	switch {
	case last.State.Light > last.State.Dark && last.State.Winner != "B",
		last.State.Dark > last.State.Light && last.State.Winner != "H",
		last.State.Dark == last.State.Light && last.State.Winner != "":
		t.Errorf("winner %q does not match %d dark and %d light disks",
			last.State.Winner, last.State.Dark, last.State.Light)
	}
}

func TestPlayRejectsIntelligence(t *testing.T) {
	srv := newServer(t)

	for _, query := range []string{"?intelligence=7", "?intelligence=-1", "?intelligence=x"} {
		resp, err := http.Get(srv.URL + "/play" + query)
		if err != nil {
			t.Fatal(err)
		}
		resp.Body.Close()
		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("%s: expected 400, got %d", query, resp.StatusCode)
		}
	}
}
