package usecase

import (
	"context"
	"errors"
	"net"
	"testing"

	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
	"google.golang.org/protobuf/types/known/structpb"

	"desdemona/internal/domain/board"
	errs "desdemona/internal/errors"
	othellouc "desdemona/internal/usecase/othello"
	decisionRPC "desdemona/microservices/proto"
)

func startDecider(t *testing.T) *grpc.ClientConn {
	t.Helper()
	log := zap.NewNop().Sugar()
	lis := bufconn.Listen(1 << 20)

	server := grpc.NewServer()
	local := othellouc.NewOthelloUseCase(nil, log, 3)
	decisionRPC.RegisterDecisionServiceServer(server, NewDeciderUseCase(local, log))
	go func() {
		_ = server.Serve(lis)
	}()
	t.Cleanup(server.Stop)

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func TestRemoteDeciderMatchesLocal(t *testing.T) {
	conn := startDecider(t)
	remote := othellouc.NewRemoteDecider(decisionRPC.NewDecisionServiceClient(conn))
	local := othellouc.NewOthelloUseCase(nil, zap.NewNop().Sugar(), 3)

	initial := board.New().String()
	for intelligence := 0; intelligence <= 3; intelligence++ {
		got, err := remote.Decide(context.Background(), initial, intelligence)
		if err != nil {
			t.Fatalf("intelligence %d: unexpected error: %v", intelligence, err)
		}
		want, err := local.Decide(context.Background(), initial, intelligence)
		if err != nil {
			t.Fatal(err)
		}

		if got.Decision == nil || *got.Decision != *want.Decision {
			t.Errorf("intelligence %d: expected %s, got %v", intelligence, *want.Decision, got.Decision)
		}
		if got.Result != want.Result || got.Intelligence != intelligence {
			t.Errorf("intelligence %d: unexpected result %+v", intelligence, got)
		}
		if got.RequestID == "" {
			t.Errorf("expected the server request id to be forwarded")
		}
	}
}

func TestRemoteDeciderNoActions(t *testing.T) {
	conn := startDecider(t)
	remote := othellouc.NewRemoteDecider(decisionRPC.NewDecisionServiceClient(conn))

	var b board.Board
	_ = b.Place(board.Dark, board.NewPosition(0, 0))
	_ = b.Place(board.Light, board.NewPosition(0, 1))

	got, err := remote.Decide(context.Background(), b.String(), 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Decision != nil {
		t.Errorf("expected no decision, got %s", *got.Decision)
	}
	if got.Result.Board != b.String() {
		t.Errorf("expected the unchanged board")
	}
}

func TestRemoteDeciderInvalidArgument(t *testing.T) {
	conn := startDecider(t)
	remote := othellouc.NewRemoteDecider(decisionRPC.NewDecisionServiceClient(conn))

	tests := []struct {
		name         string
		board        string
		intelligence int
	}{
		{"malformed board", "EEX", 1},
		{"intelligence out of range", board.New().String(), 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := remote.Decide(context.Background(), tt.board, tt.intelligence)
			if !errors.Is(err, errs.ErrInvalidArgument) {
				t.Errorf("expected ErrInvalidArgument, got %v", err)
			}
		})
	}
}

func TestDecideRequiresIntelligence(t *testing.T) {
	conn := startDecider(t)
	client := decisionRPC.NewDecisionServiceClient(conn)

	in, err := structpb.NewStruct(map[string]any{"board": board.New().String()})
	if err != nil {
		t.Fatal(err)
	}

	_, err = client.Decide(context.Background(), in)
	if status.Code(err) != codes.InvalidArgument {
		t.Errorf("expected InvalidArgument, got %v", err)
	}
}
