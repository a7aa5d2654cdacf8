package rest

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/tictactoe"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/usecase"
)

const maxBodyBytes = 4 << 10

var errBoardRequired = errors.New("board is required")

type evaluateRequest struct {
	Board *tictactoe.Board `json:"board"`
}

type bestMoveRequest struct {
	Board         *tictactoe.Board `json:"board"`
	AutomatedMark tictactoe.Mark   `json:"automated_mark"`
	HumanMark     tictactoe.Mark   `json:"human_mark"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// Handlers - stateless board analysis over HTTP.
type Handlers struct {
	logger   *slog.Logger
	analysis usecase.AnalysisUseCase
}

func NewHandlers(logger *slog.Logger, analysis usecase.AnalysisUseCase) *Handlers {
	return &Handlers{
		logger:   logger.With("component", "rest"),
		analysis: analysis,
	}
}

// Evaluate - reports whether the posted board is won, tied or still in progress.
func (that *Handlers) Evaluate(w http.ResponseWriter, r *http.Request) {
	var req evaluateRequest
	if err := decode(w, r, &req); err != nil {
		that.writeDecodeError(w, err)
		return
	}

	if req.Board == nil {
		that.writeDecodeError(w, errBoardRequired)
		return
	}

	outcome, err := that.analysis.Evaluate(*req.Board)
	if err != nil {
		that.writeError(w, err)
		return
	}

	that.writeJSON(w, http.StatusOK, outcome)
}

// BestMove - answers with the move the bot would play and the score of every candidate.
func (that *Handlers) BestMove(w http.ResponseWriter, r *http.Request) {
	var req bestMoveRequest
	if err := decode(w, r, &req); err != nil {
		that.writeDecodeError(w, err)
		return
	}

	if req.Board == nil {
		that.writeDecodeError(w, errBoardRequired)
		return
	}

	if req.HumanMark == tictactoe.Empty {
		req.HumanMark = req.AutomatedMark.Opponent()
	}

	analysis, err := that.analysis.BestMove(*req.Board, req.AutomatedMark, req.HumanMark)
	if err != nil {
		that.writeError(w, err)
		return
	}

	that.writeJSON(w, http.StatusOK, analysis)
}

// decode - strict JSON body of at most maxBodyBytes. A board that is not 3x3 fails with ErrInvalidCell.
func decode(w http.ResponseWriter, r *http.Request, v any) error {
	decoder := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	decoder.DisallowUnknownFields()

	return decoder.Decode(v)
}

func (that *Handlers) writeDecodeError(w http.ResponseWriter, err error) {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		that.writeJSON(w, http.StatusRequestEntityTooLarge, errorResponse{Error: "request body is too large"})
		return
	}

	that.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request: " + err.Error()})
}

func (that *Handlers) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError

	switch {
	case errors.Is(err, tictactoe.ErrInvalidMark), errors.Is(err, tictactoe.ErrInvalidCell):
		status = http.StatusBadRequest
	case errors.Is(err, tictactoe.ErrNoAvailableMoves):
		status = http.StatusUnprocessableEntity
	default:
		that.logger.Error("analysis failed", "error", err)
	}

	that.writeJSON(w, status, errorResponse{Error: err.Error()})
}

func (that *Handlers) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		that.logger.Error("failed to write response", "error", err)
	}
}
