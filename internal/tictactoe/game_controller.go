package tictactoe

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
)

// MakeTurn places mark on the game board and settles the round if it is over.
func MakeTurn(gameInstance *entity.Game, mark entity.Mark, cell int) error {
	if err := gameInstance.ConfirmOngoingState(); err != nil {
		return err
	}

	if err := validateMove(gameInstance, mark, cell); err != nil {
		return fmt.Errorf("invalid turn: %w", err)
	}

	gameInstance.Board[cell] = mark
	updateGameStatus(gameInstance, mark)

	return nil
}

// validateMove - checks if the move is valid.
func validateMove(gameInstance *entity.Game, mark entity.Mark, cell int) error {
	if cell < 0 || cell >= len(gameInstance.Board) {
		return fmt.Errorf("%w: cell %d", apperror.ErrInvalidCell, cell)
	}

	if gameInstance.Turn != mark {
		return apperror.ErrNotYourTurn
	}

	if gameInstance.Board[cell] != entity.EmptyCell {
		return apperror.ErrCellOccupied
	}

	return nil
}

// updateGameStatus - checks the game status after a move.
func updateGameStatus(gameInstance *entity.Game, mark entity.Mark) {
	switch winner := Evaluate(gameInstance.Board); winner {
	case entity.PlayerX, entity.PlayerO:
		combo, _ := WinningLine(gameInstance.Board)
		gameInstance.Winner = winner
		gameInstance.WinLine = combo[:]
		gameInstance.Status = entity.StatusFinished
		gameInstance.Turn = entity.EmptyCell
	case entity.PlayerTie:
		gameInstance.Winner = entity.PlayerTie
		gameInstance.Status = entity.StatusFinished
		gameInstance.Turn = entity.EmptyCell
	default:
		gameInstance.Turn = mark.Opponent()
	}
}
