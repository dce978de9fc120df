package tictactoe

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
)

// validatePosition guards the searches: the board must be reachable by alternating play,
// side must be the one to move, and the round must not be over.
func validatePosition(board entity.Board, side entity.Mark) error {
	if !side.IsSide() {
		return fmt.Errorf("%w: side %q", apperror.ErrInvalidState, side)
	}

	for i, cell := range board {
		if cell != entity.EmptyCell && !cell.IsSide() {
			return fmt.Errorf("%w: cell %d holds %q", apperror.ErrInvalidState, i, cell)
		}
	}

	own, other := board.Count(side), board.Count(side.Opponent())
	switch {
	case own-other > 1 || other-own > 1:
		return fmt.Errorf("%w: %d %s against %d %s", apperror.ErrInvalidState, own, side, other, side.Opponent())
	case own > other:
		return fmt.Errorf("%w: %w", apperror.ErrInvalidState, apperror.ErrNotYourTurn)
	}

	if result := Evaluate(board); result != entity.EmptyCell {
		return fmt.Errorf("%w: %w", apperror.ErrInvalidState, apperror.ErrGameFinished)
	}

	return nil
}
