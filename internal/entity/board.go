package entity

import (
	"fmt"
	"strings"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
)

// Mark is the content of a board cell, or the result of evaluating a board.
type Mark string

const (
	PlayerX   Mark = "X"
	PlayerO   Mark = "O"
	PlayerTie Mark = "-" // evaluation result only, never stored in a cell

	EmptyCell Mark = ""
)

const BoardSize = 9

// Board is a 3x3 grid in row-major order: 0,1,2 is the top row.
type Board [BoardSize]Mark

// Opponent returns the other side. Anything but X is treated as O.
func (that Mark) Opponent() Mark {
	if that == PlayerX {
		return PlayerO
	}
	return PlayerX
}

func (that Mark) IsSide() bool {
	return that == PlayerX || that == PlayerO
}

// ParseMark reads a side, "X" or "O" in any case.
func ParseMark(raw string) (Mark, error) {
	switch mark := Mark(strings.ToUpper(strings.TrimSpace(raw))); mark {
	case PlayerX, PlayerO:
		return mark, nil
	default:
		return EmptyCell, fmt.Errorf("%w: %q", apperror.ErrInvalidSide, raw)
	}
}

func (that Board) EmptyCells() []int {
	cells := make([]int, 0, BoardSize)
	for i, cell := range that {
		if cell == EmptyCell {
			cells = append(cells, i)
		}
	}

	return cells
}

func (that Board) Count(mark Mark) int {
	count := 0
	for _, cell := range that {
		if cell == mark {
			count++
		}
	}

	return count
}

// String renders the board as nine characters, "." for an empty cell.
func (that Board) String() string {
	var sb strings.Builder
	for _, cell := range that {
		if cell == EmptyCell {
			sb.WriteByte('.')
			continue
		}
		sb.WriteString(string(cell))
	}

	return sb.String()
}

// ParseBoard reads the format produced by Board.String. Lowercase marks are accepted.
func ParseBoard(raw string) (Board, error) {
	var board Board

	if len(raw) != BoardSize {
		return board, fmt.Errorf("%w: want %d cells, got %d", apperror.ErrInvalidBoardString, BoardSize, len(raw))
	}

	for i, ch := range strings.ToUpper(raw) {
		switch ch {
		case 'X':
			board[i] = PlayerX
		case 'O':
			board[i] = PlayerO
		case '.':
			board[i] = EmptyCell
		default:
			return board, fmt.Errorf("%w: unexpected %q at cell %d", apperror.ErrInvalidBoardString, ch, i)
		}
	}

	return board, nil
}
