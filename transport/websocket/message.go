package websocket

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
)

const writeWait = 10 * time.Second

// Message is the envelope of every frame in both directions.
type Message struct {
	Action  string          `json:"action"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type Payload struct {
	Player     *entity.Player `json:"player,omitempty"`
	Game       *entity.Game   `json:"game,omitempty"`
	Cell       *int           `json:"cell,omitempty"`
	Key        *int           `json:"key,omitempty"`
	Difficulty string         `json:"difficulty,omitempty"`
	Outcome    string         `json:"outcome,omitempty"`
	Error      string         `json:"error,omitempty"`
}

func (that *Server) sendMessage(sess *session, action string, payload Payload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	if err = sess.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return fmt.Errorf("failed to set write deadline: %w", err)
	}

	if err = sess.conn.WriteJSON(Message{Action: action, Payload: body}); err != nil {
		return fmt.Errorf("failed to write message: %w", err)
	}

	return nil
}

func (that *Server) sendGame(sess *session, action string, game *entity.Game) error {
	return that.sendMessage(sess, action, Payload{
		Game:    game,
		Outcome: game.Outcome(),
	})
}

func (that *Server) sendErrorResponse(sess *session, action, errorMsg string) error {
	if err := that.sendMessage(sess, action, Payload{Error: errorMsg}); err != nil {
		return fmt.Errorf("failed to send error response: %w", err)
	}

	return nil
}
