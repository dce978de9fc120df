package entity

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
)

// keypadCells maps numeric keypad digits (7-8-9 on top) to board cells.
var keypadCells = [10]int{-1, 6, 7, 8, 3, 4, 5, 0, 1, 2}

func KeypadCell(digit int) (int, error) {
	if digit < 1 || digit > 9 {
		return -1, fmt.Errorf("%w: keypad digit %d", apperror.ErrInvalidCell, digit)
	}

	return keypadCells[digit], nil
}
