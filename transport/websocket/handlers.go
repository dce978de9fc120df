package websocket

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
)

// clientErrors are reported to the client as is, anything else is an internal error.
var clientErrors = []error{
	apperror.ErrUnknownDifficulty,
	apperror.ErrInvalidCell,
	apperror.ErrCellOccupied,
	apperror.ErrNotYourTurn,
	apperror.ErrGameFinished,
	apperror.ErrGameIsNotStarted,
	apperror.ErrGameIsNotFinished,
	apperror.ErrGameNotFound,
	apperror.ErrPlayerNotFound,
}

func errorMessage(err error) string {
	for _, known := range clientErrors {
		if errors.Is(err, known) {
			return known.Error()
		}
	}

	return "internal error"
}

func decodePayload(msg *Message) (Payload, error) {
	var payload Payload

	if len(msg.Payload) == 0 {
		return payload, nil
	}

	err := json.Unmarshal(msg.Payload, &payload)

	return payload, err
}

func (that *Server) handleConnect(ctx context.Context, sess *session, msg *Message) error {
	log := that.logger.With("method", "handleConnect")

	payloadReq, err := decodePayload(msg)
	if err != nil {
		return that.sendErrorResponse(sess, msg.Action, "malformed payload")
	}

	playerID := sess.playerID
	if payloadReq.Player != nil && payloadReq.Player.ID != "" {
		playerID = payloadReq.Player.ID
	}

	player, err := that.gameUseCase.GetOrCreatePlayer(ctx, playerID)
	if err != nil {
		log.Error("failed to create or get player", "error", err)
		return that.sendErrorResponse(sess, msg.Action, "failed to create a new player")
	}

	sess.playerID = player.ID
	sess.connected = true

	payloadResp := Payload{
		Player: player,
	}

	game, err := that.gameUseCase.GetGame(ctx, player.ID)
	switch {
	case err == nil:
		payloadResp.Game = game
		payloadResp.Outcome = game.Outcome()
	case !errors.Is(err, apperror.ErrGameNotFound):
		log.Error("failed to get game", "gameID", player.GameID, "error", err)
	}

	log.Info("successfully connected player", "playerID", player.ID)

	return that.sendMessage(sess, msg.Action, payloadResp)
}

func (that *Server) handleSetDifficulty(ctx context.Context, sess *session, msg *Message) error {
	log := that.logger.With("method", "handleSetDifficulty", "playerID", sess.playerID)

	payloadReq, err := decodePayload(msg)
	if err != nil {
		return that.sendErrorResponse(sess, msg.Action, "malformed payload")
	}

	player, err := that.gameUseCase.SetDifficulty(ctx, sess.playerID, payloadReq.Difficulty)
	if err != nil {
		log.Warn("failed to set difficulty", "error", err)
		return that.sendErrorResponse(sess, msg.Action, errorMessage(err))
	}

	return that.sendMessage(sess, msg.Action, Payload{Player: player})
}

func (that *Server) handleNewGame(ctx context.Context, sess *session, msg *Message) error {
	log := that.logger.With("method", "handleNewGame", "playerID", sess.playerID)

	game, err := that.gameUseCase.NewRound(ctx, sess.playerID)
	if err != nil {
		log.Warn("failed to start a round", "error", err)
		return that.sendErrorResponse(sess, msg.Action, errorMessage(err))
	}

	return that.sendGame(sess, msg.Action, game)
}

func (that *Server) handleGameTurn(ctx context.Context, sess *session, msg *Message) error {
	log := that.logger.With("method", "handleGameTurn", "playerID", sess.playerID)

	payloadReq, err := decodePayload(msg)
	if err != nil {
		return that.sendErrorResponse(sess, msg.Action, "malformed payload")
	}

	var cell int

	switch {
	case payloadReq.Cell != nil:
		cell = *payloadReq.Cell
	case payloadReq.Key != nil:
		if cell, err = entity.KeypadCell(*payloadReq.Key); err != nil {
			return that.sendErrorResponse(sess, msg.Action, errorMessage(err))
		}
	default:
		return that.sendErrorResponse(sess, msg.Action, "cell is required")
	}

	game, err := that.gameUseCase.MakeTurn(ctx, sess.playerID, cell)
	if err != nil {
		log.Warn("failed to make turn", "cell", cell, "error", err)
		return that.sendMessage(sess, msg.Action, Payload{Game: game, Error: errorMessage(err)})
	}

	return that.sendGame(sess, msg.Action, game)
}

func (that *Server) handleGameDismiss(ctx context.Context, sess *session, msg *Message) error {
	log := that.logger.With("method", "handleGameDismiss", "playerID", sess.playerID)

	game, err := that.gameUseCase.Dismiss(ctx, sess.playerID)
	if err != nil {
		log.Warn("failed to dismiss round", "error", err)
		return that.sendErrorResponse(sess, msg.Action, errorMessage(err))
	}

	return that.sendGame(sess, msg.Action, game)
}
