package othello

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"desdemona/internal/bootstrap"
	"desdemona/internal/domain/othello"
	"desdemona/internal/httpresponse"
	othellouc "desdemona/internal/usecase/othello"
	"desdemona/internal/utils"
)

type OthelloHandler struct {
	cfg       bootstrap.Config
	log       *zap.SugaredLogger
	othelloUC *othellouc.OthelloUseCase
	decider   othellouc.Decider
}

// NewOthelloHandler creates the handler. Decide queries go to decider, which
// is either the use case itself or a remote decision service.
func NewOthelloHandler(cfg bootstrap.Config, log *zap.SugaredLogger, othelloUC *othellouc.OthelloUseCase, decider othellouc.Decider) *OthelloHandler {
	return &OthelloHandler{
		cfg:       cfg,
		log:       log,
		othelloUC: othelloUC,
		decider:   decider,
	}
}

func (h *OthelloHandler) Routes(r chi.Router) {
	r.Get("/initial-board", h.InitialBoard)
	r.Get("/actions", h.Actions)
	r.Get("/result", h.Result)
	r.Get("/decide", h.Decide)
	r.Post("/decide", h.DecidePost)
}

// InitialBoard godoc
// @Summary Initial board
// @Description Returns the opening position in board text form
// @Tags othello
// @Produce json
// @Success 200 {object} othello.InitialBoardResponse
// @Router /initial-board [get]
func (h *OthelloHandler) InitialBoard(w http.ResponseWriter, r *http.Request) {
	httpresponse.WriteResponseWithStatus(w, http.StatusOK, othello.InitialBoardResponse{
		Board: h.othelloUC.InitialBoard(),
	})
}

// Actions godoc
// @Summary Legal placements
// @Description Lists the distinct legal placements of a player
// @Tags othello
// @Produce json
// @Param board query string true "Board text"
// @Param player query string true "B or H"
// @Success 200 {array} string
// @Failure 400 {object} httpresponse.ErrorResponse
// @Router /actions [get]
func (h *OthelloHandler) Actions(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	placements, err := h.othelloUC.Actions(query.Get("board"), query.Get("player"))
	if err != nil {
		h.writeError(w, "Actions", err)
		return
	}

	httpresponse.WriteResponseWithStatus(w, http.StatusOK, placements)
}

// Result godoc
// @Summary Apply a placement
// @Description Applies a legal placement and returns the resulting state
// @Tags othello
// @Produce json
// @Param board query string true "Board text"
// @Param player query string true "B or H"
// @Param position query string true "Placement such as D3"
// @Success 200 {object} othello.GameState
// @Failure 400 {object} httpresponse.ErrorResponse
// @Router /result [get]
func (h *OthelloHandler) Result(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	state, err := h.othelloUC.Result(query.Get("board"), query.Get("player"), query.Get("position"))
	if err != nil {
		h.writeError(w, "Result", err)
		return
	}

	httpresponse.WriteResponseWithStatus(w, http.StatusOK, state)
}

// Decide godoc
// @Summary Bot decision
// @Description Runs the bot on the board with the bot to move. decision is null when the bot has to pass.
// @Tags othello
// @Produce json
// @Param board query string true "Board text"
// @Param intelligence query int false "Search depth"
// @Success 200 {object} othello.Decision
// @Failure 400 {object} httpresponse.ErrorResponse
// @Failure 500 {object} httpresponse.ErrorResponse
// @Router /decide [get]
func (h *OthelloHandler) Decide(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	intelligence, err := utils.ParseIntelligence(query.Get("intelligence"), h.cfg.DefaultIntelligence)
	if err != nil {
		h.writeError(w, "Decide", err)
		return
	}

	h.decide(w, r, query.Get("board"), intelligence)
}

// DecidePost godoc
// @Summary Bot decision
// @Description Same as GET /decide with the board in a JSON body
// @Tags othello
// @Accept json
// @Produce json
// @Param request body othello.DecideRequest true "Board and optional intelligence"
// @Success 200 {object} othello.Decision
// @Failure 400 {object} httpresponse.ErrorResponse
// @Failure 500 {object} httpresponse.ErrorResponse
// @Router /decide [post]
func (h *OthelloHandler) DecidePost(w http.ResponseWriter, r *http.Request) {
	var request othello.DecideRequest
	if err := utils.DecodeJSONRequest(r, &request); err != nil {
		h.log.Error("DecidePost: malformed JSON: ", err)
		httpresponse.WriteErrorWithStatus(w, http.StatusBadRequest, httpresponse.MALFORMEDJSON_errorDesc)
		return
	}

	intelligence := h.cfg.DefaultIntelligence
	if request.Intelligence != nil {
		intelligence = *request.Intelligence
	}

	h.decide(w, r, request.Board, intelligence)
}

func (h *OthelloHandler) decide(w http.ResponseWriter, r *http.Request, boardText string, intelligence int) {
	decision, err := h.decider.Decide(r.Context(), boardText, intelligence)
	if err != nil {
		h.writeError(w, "Decide", err)
		return
	}

	httpresponse.WriteResponseWithStatus(w, http.StatusOK, decision)
}

func (h *OthelloHandler) writeError(w http.ResponseWriter, op string, err error) {
	status := httpresponse.StatusFromError(err)
	if status == http.StatusInternalServerError {
		h.log.Errorw(op+": internal error", "error", err)
		httpresponse.WriteErrorWithStatus(w, status, "internal server error")
		return
	}

	h.log.Infow(op+": rejected request", "error", err)
	httpresponse.WriteErrorWithStatus(w, status, err.Error())
}
