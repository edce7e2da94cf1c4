package proto

import (
	"encoding/json"
	"fmt"

	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"

	"desdemona/internal/domain/othello"
)

func toStruct(v any) (*structpb.Struct, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	out := &structpb.Struct{}
	if err := protojson.Unmarshal(data, out); err != nil {
		return nil, err
	}
	return out, nil
}

func fromStruct(in *structpb.Struct, v any) error {
	if in == nil {
		return fmt.Errorf("empty message")
	}
	data, err := protojson.Marshal(in)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, v)
}

func DecideRequestToRPC(request othello.DecideRequest) (*structpb.Struct, error) {
	return toStruct(request)
}

func DecideRequestFromRPC(in *structpb.Struct) (othello.DecideRequest, error) {
	var request othello.DecideRequest
	if err := fromStruct(in, &request); err != nil {
		return othello.DecideRequest{}, fmt.Errorf("decode decide request: %w", err)
	}
	return request, nil
}

func DecisionToRPC(decision othello.Decision) (*structpb.Struct, error) {
	return toStruct(decision)
}

func DecisionFromRPC(in *structpb.Struct) (othello.Decision, error) {
	var decision othello.Decision
	if err := fromStruct(in, &decision); err != nil {
		return othello.Decision{}, fmt.Errorf("decode decision: %w", err)
	}
	return decision, nil
}
