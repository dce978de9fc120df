package websocket

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/gorilla/websocket"
	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
	"github.com/rocketscienceinc/tictactoe-engine/internal/tictactoe"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubUseCase keeps one game in memory and lets the player move without a computer reply.
type stubUseCase struct {
	mu sync.Mutex

	game    *entity.Game
	turnErr error
	cells   []int
}

func (that *stubUseCase) GetOrCreatePlayer(_ context.Context, id string) (*entity.Player, error) {
	return &entity.Player{ID: id, Difficulty: entity.NormalDifficulty}, nil
}

func (that *stubUseCase) SetDifficulty(_ context.Context, playerID, difficulty string) (*entity.Player, error) {
	parsed, err := entity.ParseDifficulty(difficulty)
	if err != nil {
		return nil, err
	}

	return &entity.Player{ID: playerID, Difficulty: parsed}, nil
}

func (that *stubUseCase) NewRound(_ context.Context, playerID string) (*entity.Game, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	if that.game == nil {
		that.game = entity.NewGame("g1", playerID)
	}

	that.game.Reset(entity.NormalDifficulty)

	return that.game, nil
}

func (that *stubUseCase) MakeTurn(_ context.Context, _ string, cell int) (*entity.Game, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.cells = append(that.cells, cell)

	if that.turnErr != nil {
		return that.game, that.turnErr
	}

	if that.game == nil {
		return nil, apperror.ErrGameNotFound
	}

	// the stub lets the player move for both sides
	if err := tictactoe.MakeTurn(that.game, that.game.Turn, cell); err != nil {
		return that.game, err
	}

	return that.game, nil
}

func (that *stubUseCase) Dismiss(_ context.Context, _ string) (*entity.Game, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	if that.game == nil {
		return nil, apperror.ErrGameNotFound
	}

	if err := that.game.Dismiss(); err != nil {
		return nil, err
	}

	return that.game, nil
}

func (that *stubUseCase) GetGame(_ context.Context, _ string) (*entity.Game, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	if that.game == nil {
		return nil, apperror.ErrGameNotFound
	}

	return that.game, nil
}

func (that *stubUseCase) turns() []int {
	that.mu.Lock()
	defer that.mu.Unlock()

	return append([]int(nil), that.cells...)
}

func newTestServer(t *testing.T, useCase *stubUseCase) *httptest.Server {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	srv := httptest.NewServer(New(logger, useCase, nil).Handler())
	t.Cleanup(srv.Close)

	return srv
}

func dial(t *testing.T, srv *httptest.Server, header http.Header) (*websocket.Conn, *http.Response) {
	t.Helper()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"

	conn, resp, err := websocket.DefaultDialer.Dial(url, header)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	return conn, resp
}

func send(t *testing.T, conn *websocket.Conn, action string, payload any) Payload {
	t.Helper()

	msg := Message{Action: action}
	if payload != nil {
		body, err := json.Marshal(payload)
		require.NoError(t, err)
		msg.Payload = body
	}

	require.NoError(t, conn.WriteJSON(msg))

	return receive(t, conn, action)
}

func receive(t *testing.T, conn *websocket.Conn, action string) Payload {
	t.Helper()

	var reply Message
	require.NoError(t, conn.ReadJSON(&reply))
	require.Equal(t, action, reply.Action)

	var payload Payload
	require.NoError(t, json.Unmarshal(reply.Payload, &payload))

	return payload
}

func intPtr(v int) *int {
	return &v
}

func TestServer_Connect(t *testing.T) {
	t.Run("New session gets a cookie", func(t *testing.T) {
		srv := newTestServer(t, &stubUseCase{})

		// When: a client connects without a session cookie
		conn, resp := dial(t, srv, nil)

		// Then: a session cookie is issued and used as the player id
		var issued *http.Cookie
		for _, cookie := range resp.Cookies() {
			if cookie.Name == sessionCookieName {
				issued = cookie
			}
		}
		require.NotNil(t, issued)

		reply := send(t, conn, actionConnect, nil)
		require.Empty(t, reply.Error)
		assert.Equal(t, issued.Value, reply.Player.ID)
		assert.Nil(t, reply.Game)
	})

	t.Run("Existing session is reused", func(t *testing.T) {
		useCase := &stubUseCase{}
		srv := newTestServer(t, useCase)

		useCase.game = entity.NewGame("g1", "abc")

		conn, resp := dial(t, srv, http.Header{"Cookie": {sessionCookieName + "=abc"}})
		assert.Empty(t, resp.Header.Values("Set-Cookie"))

		reply := send(t, conn, actionConnect, nil)

		assert.Equal(t, "abc", reply.Player.ID)
		require.NotNil(t, reply.Game)
		assert.Equal(t, "g1", reply.Game.ID)
	})

	t.Run("Actions require connect", func(t *testing.T) {
		srv := newTestServer(t, &stubUseCase{})
		conn, _ := dial(t, srv, nil)

		reply := send(t, conn, actionGameTurn, Payload{Cell: intPtr(4)})

		assert.Equal(t, "not connected", reply.Error)
	})
}

func TestServer_GameFlow(t *testing.T) {
	useCase := &stubUseCase{}
	srv := newTestServer(t, useCase)
	conn, _ := dial(t, srv, nil)

	send(t, conn, actionConnect, nil)

	// Given: a difficulty preference and a new round
	reply := send(t, conn, actionSetDifficulty, Payload{Difficulty: "0"})
	require.Empty(t, reply.Error)
	assert.Equal(t, entity.EasyDifficulty, reply.Player.Difficulty)

	reply = send(t, conn, actionNewGame, nil)
	require.Empty(t, reply.Error)
	require.True(t, reply.Game.IsOngoing())

	// When: moves are sent as cells and keypad digits
	for _, payload := range []Payload{
		{Key: intPtr(7)},
		{Cell: intPtr(3)},
		{Key: intPtr(8)},
		{Cell: intPtr(4)},
	} {
		reply = send(t, conn, actionGameTurn, payload)
		require.Empty(t, reply.Error)
	}

	reply = send(t, conn, actionGameTurn, Payload{Key: intPtr(9)})

	// Then: the keypad digits landed on the top row and the round is over
	require.Empty(t, reply.Error)
	assert.Equal(t, []int{0, 3, 1, 4, 2}, useCase.turns())
	assert.True(t, reply.Game.IsFinished())
	assert.Equal(t, []int{0, 1, 2}, reply.Game.WinLine)
	assert.Equal(t, entity.OutcomePlayerWins, reply.Outcome)

	// When: the round is dismissed
	reply = send(t, conn, actionGameDismiss, nil)

	// Then: the game waits for the next round
	require.Empty(t, reply.Error)
	assert.True(t, reply.Game.IsWaiting())
	assert.Empty(t, reply.Outcome)
}

func TestServer_Errors(t *testing.T) {
	t.Run("Domain errors are reported", func(t *testing.T) {
		useCase := &stubUseCase{turnErr: apperror.ErrCellOccupied}
		srv := newTestServer(t, useCase)
		conn, _ := dial(t, srv, nil)

		send(t, conn, actionConnect, nil)

		reply := send(t, conn, actionGameTurn, Payload{Cell: intPtr(4)})

		assert.Equal(t, apperror.ErrCellOccupied.Error(), reply.Error)
	})

	t.Run("Unknown difficulty", func(t *testing.T) {
		srv := newTestServer(t, &stubUseCase{})
		conn, _ := dial(t, srv, nil)

		send(t, conn, actionConnect, nil)

		reply := send(t, conn, actionSetDifficulty, Payload{Difficulty: "impossible"})

		assert.Equal(t, apperror.ErrUnknownDifficulty.Error(), reply.Error)
	})

	t.Run("Bad keypad digit", func(t *testing.T) {
		useCase := &stubUseCase{}
		srv := newTestServer(t, useCase)
		conn, _ := dial(t, srv, nil)

		send(t, conn, actionConnect, nil)

		reply := send(t, conn, actionGameTurn, Payload{Key: intPtr(0)})

		assert.Equal(t, apperror.ErrInvalidCell.Error(), reply.Error)
		assert.Empty(t, useCase.turns())
	})

	t.Run("Missing cell", func(t *testing.T) {
		srv := newTestServer(t, &stubUseCase{})
		conn, _ := dial(t, srv, nil)

		send(t, conn, actionConnect, nil)

		reply := send(t, conn, actionGameTurn, Payload{})

		assert.Equal(t, "cell is required", reply.Error)
	})

	t.Run("Dismiss during a round", func(t *testing.T) {
		srv := newTestServer(t, &stubUseCase{})
		conn, _ := dial(t, srv, nil)

		send(t, conn, actionConnect, nil)
		send(t, conn, actionNewGame, nil)

		reply := send(t, conn, actionGameDismiss, nil)

		assert.Equal(t, apperror.ErrGameIsNotFinished.Error(), reply.Error)
	})

	t.Run("Malformed and unknown messages keep the connection open", func(t *testing.T) {
		srv := newTestServer(t, &stubUseCase{})
		conn, _ := dial(t, srv, nil)

		require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("{")))
		assert.Equal(t, "malformed message", receive(t, conn, "").Error)

		reply := send(t, conn, "game:join", nil)
		assert.Equal(t, "unknown action", reply.Error)

		reply = send(t, conn, actionConnect, nil)
		assert.Empty(t, reply.Error)
	})
}
