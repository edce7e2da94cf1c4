package proto

import (
	"testing"

	"google.golang.org/protobuf/types/known/structpb"

	"desdemona/internal/domain/othello"
)

func TestDecisionRPCNullDecision(t *testing.T) {
	in := othello.Decision{
		RequestID:    "req",
		Intelligence: 3,
		Result:       othello.GameState{Board: "EE\n", CurrentPlayer: "B", Dark: 1},
	}

	msg, err := DecisionToRPC(in)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := msg.GetFields()["decision"].GetKind().(*structpb.Value_NullValue); !ok {
		t.Errorf("expected decision to be encoded as null, got %v", msg.GetFields()["decision"])
	}

	out, err := DecisionFromRPC(msg)
	if err != nil {
		t.Fatal(err)
	}
	if out.Decision != nil || out.Result != in.Result || out.Intelligence != 3 {
		t.Errorf("unexpected decision %+v", out)
	}
}

func TestDecideRequestRPC(t *testing.T) {
	intelligence := 0
	msg, err := DecideRequestToRPC(othello.DecideRequest{Board: "E", Intelligence: &intelligence})
	if err != nil {
		t.Fatal(err)
	}

	out, err := DecideRequestFromRPC(msg)
	if err != nil {
		t.Fatal(err)
	}
	if out.Board != "E" || out.Intelligence == nil || *out.Intelligence != 0 {
		t.Errorf("unexpected request %+v", out)
	}

	if _, err := DecideRequestFromRPC(nil); err == nil {
		t.Errorf("expected an error for an empty message")
	}
}
