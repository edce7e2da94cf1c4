package errors

import "errors"

var (
	ErrParse             = errors.New("parse error")
	ErrInvalidArgument   = errors.New("invalid argument")
	ErrNoActions         = errors.New("no actions are available from the given game")
	ErrIllegalAction     = errors.New("invalid action for the given player")
	ErrNotYourTurn       = errors.New("it is not the given player's turn")
	ErrGameOver          = errors.New("game is already over")
	ErrIntelligenceRange = errors.New("intelligence is out of range")
	ErrDecisionNotFound  = errors.New("decision was not found")
	ErrInternal          = errors.New("internal error")
)
