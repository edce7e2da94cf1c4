package othello

// @name GameState
type GameState struct {
	Board         string `json:"board" bson:"board"`
	CurrentPlayer string `json:"current_player" bson:"current_player"`
	Dark          int    `json:"dark" bson:"dark"`
	Light         int    `json:"light" bson:"light"`
	Over          bool   `json:"over" bson:"over"`
	Winner        string `json:"winner,omitempty" bson:"winner,omitempty"`
}

// @name Decision
type Decision struct {
	RequestID    string    `json:"request_id" bson:"request_id"`
	Intelligence int       `json:"intelligence" bson:"intelligence"`
	Decision     *string   `json:"decision" bson:"decision"`
	Result       GameState `json:"result" bson:"result"`
}

// @name InitialBoardResponse
type InitialBoardResponse struct {
	Board string `json:"board"`
}

// @name DecideRequest
type DecideRequest struct {
	Board        string `json:"board"`
	Intelligence *int   `json:"intelligence,omitempty"`
}

// Play channel message types.
const (
	MessageState = "state"
	MessageHuman = "human"
	MessageBot   = "bot"
	MessagePass  = "pass"
	MessageError = "error"
)

// @name PlayMessage
type PlayMessage struct {
	Type      string     `json:"type"`
	SessionID string     `json:"session_id,omitempty"`
	Player    string     `json:"player,omitempty"`
	Position  string     `json:"position,omitempty"`
	State     *GameState `json:"state,omitempty"`
	Error     string     `json:"error,omitempty"`
}

// @name PlayMove
type PlayMove struct {
	Position string `json:"position"`
}
