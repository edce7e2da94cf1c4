package othello

import (
	"context"
	"fmt"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"desdemona/internal/domain/othello"
	errs "desdemona/internal/errors"
	decisionRPC "desdemona/microservices/proto"
)

// RemoteDecider forwards decide queries to a DecisionService.
type RemoteDecider struct {
	client decisionRPC.DecisionServiceClient
}

func NewRemoteDecider(client decisionRPC.DecisionServiceClient) *RemoteDecider {
	return &RemoteDecider{
		client: client,
	}
}

func (r *RemoteDecider) Decide(ctx context.Context, boardText string, intelligence int) (othello.Decision, error) {
	in, err := decisionRPC.DecideRequestToRPC(othello.DecideRequest{
		Board:        boardText,
		Intelligence: &intelligence,
	})
	if err != nil {
		return othello.Decision{}, err
	}

	out, err := r.client.Decide(ctx, in)
	if err != nil {
		if status.Code(err) == codes.InvalidArgument {
			return othello.Decision{}, fmt.Errorf("%s: %w", status.Convert(err).Message(), errs.ErrInvalidArgument)
		}
		return othello.Decision{}, fmt.Errorf("remote decide: %w", err)
	}

	return decisionRPC.DecisionFromRPC(out)
}
