package usecase

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"

	errs "desdemona/internal/errors"
	othellouc "desdemona/internal/usecase/othello"
	decisionRPC "desdemona/microservices/proto"
)

// DeciderUseCase serves DecisionService on top of a local decider.
type DeciderUseCase struct {
	decider othellouc.Decider
	log     *zap.SugaredLogger
	decisionRPC.UnimplementedDecisionServiceServer
}

func NewDeciderUseCase(decider othellouc.Decider, log *zap.SugaredLogger) *DeciderUseCase {
	return &DeciderUseCase{
		decider: decider,
		log:     log,
	}
}

func (d *DeciderUseCase) Decide(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	request, err := decisionRPC.DecideRequestFromRPC(in)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	if request.Intelligence == nil {
		return nil, status.Error(codes.InvalidArgument,
			fmt.Sprintf("intelligence is required: %v", errs.ErrInvalidArgument))
	}

	decision, err := d.decider.Decide(ctx, request.Board, *request.Intelligence)
	if err != nil {
		return nil, statusFromError(err)
	}

	d.log.Infow("rpc decision served", "request_id", decision.RequestID, "intelligence", decision.Intelligence)

	out, err := decisionRPC.DecisionToRPC(decision)
	if err != nil {
		return nil, status.Error(codes.Internal, err.Error())
	}
	return out, nil
}

func statusFromError(err error) error {
	switch {
	case errors.Is(err, errs.ErrParse),
		errors.Is(err, errs.ErrInvalidArgument),
		errors.Is(err, errs.ErrIntelligenceRange):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, context.Canceled):
		return status.Error(codes.Canceled, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		return status.Error(codes.DeadlineExceeded, err.Error())
	}
	return status.Error(codes.Internal, err.Error())
}
