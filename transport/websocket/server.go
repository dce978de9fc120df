package websocket

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
)

const (
	sessionCookieName = "user_session"
	sessionTTL        = 24 * time.Hour
	maxMessageSize    = 4096
)

const (
	actionConnect       = "connect"
	actionSetDifficulty = "difficulty:set"
	actionNewGame       = "game:new"
	actionGameTurn      = "game:turn"
	actionGameDismiss   = "game:dismiss"
)

type gameUseCase interface {
	GetOrCreatePlayer(ctx context.Context, id string) (*entity.Player, error)
	SetDifficulty(ctx context.Context, playerID, difficulty string) (*entity.Player, error)

	NewRound(ctx context.Context, playerID string) (*entity.Game, error)
	MakeTurn(ctx context.Context, playerID string, cell int) (*entity.Game, error)
	Dismiss(ctx context.Context, playerID string) (*entity.Game, error)
	GetGame(ctx context.Context, playerID string) (*entity.Game, error)
}

// session is the state of one client connection.
type session struct {
	conn      *websocket.Conn
	playerID  string
	connected bool
}

type handlerFunc func(ctx context.Context, sess *session, msg *Message) error

type Server struct {
	logger      *slog.Logger
	gameUseCase gameUseCase
	upgrader    websocket.Upgrader

	handlers map[string]handlerFunc
}

// New returns a server accepting connections from allowedOrigins; an empty list or "*" allows any origin.
func New(logger *slog.Logger, gameUseCase gameUseCase, allowedOrigins []string) *Server {
	server := &Server{
		logger:      logger.With("component", "websocket"),
		gameUseCase: gameUseCase,
	}

	server.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     originChecker(allowedOrigins),
	}

	server.handlers = map[string]handlerFunc{
		actionConnect:       server.handleConnect,
		actionSetDifficulty: server.handleSetDifficulty,
		actionNewGame:       server.handleNewGame,
		actionGameTurn:      server.handleGameTurn,
		actionGameDismiss:   server.handleGameDismiss,
	}

	return server
}

func (that *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /ws", that.upgradeToWebSocket)

	return mux
}

// upgradeToWebSocket - upgrades the connection and serves it until the client leaves.
func (that *Server) upgradeToWebSocket(writer http.ResponseWriter, req *http.Request) {
	log := that.logger.With("method", "upgradeToWebSocket")

	playerID, header := that.sessionCookie(req)

	conn, err := that.upgrader.Upgrade(writer, req, header)
	if err != nil {
		log.Error("failed to upgrade connection", "error", err)
		return
	}

	defer conn.Close()

	ctx := req.Context()

	// hijacked connections are not closed by server shutdown
	stop := context.AfterFunc(ctx, func() {
		_ = conn.Close()
	})
	defer stop()

	conn.SetReadLimit(maxMessageSize)

	log.Info("WebSocket connection established", "session", playerID)

	if err = that.handleMessages(ctx, &session{conn: conn, playerID: playerID}); err != nil {
		log.Error("error handling messages", "error", err)
	}
}

// handleMessages - processes messages from the client.
func (that *Server) handleMessages(ctx context.Context, sess *session) error {
	log := that.logger.With("method", "handleMessages")

	for {
		messageType, data, err := sess.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				return fmt.Errorf("failed to read message: %w", err)
			}

			log.Debug("connection closed", "playerID", sess.playerID)
			return nil
		}

		if messageType != websocket.TextMessage {
			continue
		}

		var message Message
		if err = json.Unmarshal(data, &message); err != nil {
			log.Warn("failed to unmarshal message", "error", err)

			if err = that.sendErrorResponse(sess, "", "malformed message"); err != nil {
				return err
			}

			continue
		}

		handler, ok := that.handlers[message.Action]
		if !ok {
			log.Warn("unknown action", "action", message.Action)

			if err = that.sendErrorResponse(sess, message.Action, "unknown action"); err != nil {
				return err
			}

			continue
		}

		if message.Action != actionConnect && !sess.connected {
			if err = that.sendErrorResponse(sess, message.Action, "not connected"); err != nil {
				return err
			}

			continue
		}

		if err = handler(ctx, sess, &message); err != nil {
			return fmt.Errorf("failed to process %s: %w", message.Action, err)
		}
	}
}

// sessionCookie returns the player id stored in the session cookie, minting one when missing.
func (that *Server) sessionCookie(req *http.Request) (string, http.Header) {
	cookie, err := req.Cookie(sessionCookieName)
	if err == nil && cookie.Value != "" {
		return cookie.Value, nil
	}

	cookie = &http.Cookie{
		Name:     sessionCookieName,
		Value:    uuid.NewString(),
		Expires:  time.Now().Add(sessionTTL),
		Path:     "/",
		HttpOnly: true,
	}

	header := http.Header{}
	header.Add("Set-Cookie", cookie.String())

	that.logger.Info("session cookie not found, new one created", "cookie", cookie.Value)

	return cookie.Value, header
}

func originChecker(allowedOrigins []string) func(req *http.Request) bool {
	if len(allowedOrigins) == 0 || slices.Contains(allowedOrigins, "*") {
		return func(*http.Request) bool { return true }
	}

	return func(req *http.Request) bool {
		origin := req.Header.Get("Origin")
		return origin == "" || slices.Contains(allowedOrigins, origin)
	}
}
