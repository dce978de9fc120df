package rest

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/schema"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
)

type moveEngine interface {
	ChooseMove(board entity.Board, side entity.Mark, difficulty entity.Difficulty) (int, error)
	Solve(board entity.Board, side entity.Mark) (int, entity.Mark, error)
}

// Server exposes the engine over plain HTTP for clients that keep their own board.
type Server struct {
	logger  *slog.Logger
	engine  moveEngine
	decoder *schema.Decoder

	allowedOrigins []string
}

func New(logger *slog.Logger, engine moveEngine, allowedOrigins []string) *Server {
	decoder := schema.NewDecoder()
	decoder.IgnoreUnknownKeys(true)

	return &Server{
		logger:  logger.With("component", "rest"),
		engine:  engine,
		decoder: decoder,

		allowedOrigins: allowedOrigins,
	}
}

func (that *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /ping", that.handlePing)
	mux.HandleFunc("GET /api/evaluate", that.handleEvaluate)
	mux.HandleFunc("GET /api/move", that.handleMove)

	return Wrap(mux, Logging(that.logger), Cors(that.allowedOrigins))
}
