package rest

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
	"github.com/rocketscienceinc/tictactoe-engine/internal/tictactoe"
)

type EvaluateParams struct {
	Board string `schema:"board,required"`
}

type MoveParams struct {
	Board      string `schema:"board,required"`
	Side       string `schema:"side,required"`
	Difficulty string `schema:"difficulty"`
}

type EvaluateResponse struct {
	Result string `json:"result"`
}

type MoveResponse struct {
	Cell   int    `json:"cell"`
	Result string `json:"result,omitempty"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

// badRequestErrors are caused by the request, not by the server.
var badRequestErrors = []error{
	apperror.ErrInvalidBoardString,
	apperror.ErrInvalidSide,
	apperror.ErrUnknownDifficulty,
	apperror.ErrInvalidState,
}

// resultName renders an evaluation: "X", "O", "tie", or "none" while the game goes on.
func resultName(mark entity.Mark) string {
	switch mark {
	case entity.PlayerTie:
		return "tie"
	case entity.EmptyCell:
		return "none"
	default:
		return string(mark)
	}
}

func (that *Server) handleEvaluate(w http.ResponseWriter, r *http.Request) {
	var params EvaluateParams
	if err := that.decoder.Decode(&params, r.URL.Query()); err != nil {
		that.writeError(w, http.StatusBadRequest, err)
		return
	}

	board, err := entity.ParseBoard(params.Board)
	if err != nil {
		that.writeError(w, http.StatusBadRequest, err)
		return
	}

	that.writeJSON(w, http.StatusOK, EvaluateResponse{Result: resultName(tictactoe.Evaluate(board))})
}

func (that *Server) handleMove(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "handleMove")

	var params MoveParams
	if err := that.decoder.Decode(&params, r.URL.Query()); err != nil {
		that.writeError(w, http.StatusBadRequest, err)
		return
	}

	board, err := entity.ParseBoard(params.Board)
	if err != nil {
		that.writeError(w, http.StatusBadRequest, err)
		return
	}

	side, err := entity.ParseMark(params.Side)
	if err != nil {
		that.writeError(w, http.StatusBadRequest, err)
		return
	}

	difficulty := entity.DefaultDifficulty
	if params.Difficulty != "" {
		if difficulty, err = entity.ParseDifficulty(params.Difficulty); err != nil {
			that.writeError(w, http.StatusBadRequest, err)
			return
		}
	}

	var resp MoveResponse

	if difficulty == entity.HardDifficulty {
		var result entity.Mark
		resp.Cell, result, err = that.engine.Solve(board, side)
		resp.Result = resultName(result)
	} else {
		resp.Cell, err = that.engine.ChooseMove(board, side, difficulty)
	}

	if err != nil {
		status := http.StatusInternalServerError
		for _, target := range badRequestErrors {
			if errors.Is(err, target) {
				status = http.StatusBadRequest
				break
			}
		}

		if status == http.StatusInternalServerError {
			log.Error("failed to choose a move", "board", board.String(), "error", err)
		}

		that.writeError(w, status, err)
		return
	}

	that.writeJSON(w, http.StatusOK, resp)
}

func (that *Server) writeError(w http.ResponseWriter, status int, err error) {
	that.writeJSON(w, status, ErrorResponse{Error: err.Error()})
}

func (that *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		that.logger.Error("failed to write response", "error", err)
	}
}
