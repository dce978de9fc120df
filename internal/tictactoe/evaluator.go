package tictactoe

import "github.com/rocketscienceinc/tictactoe-engine/internal/entity"

// WinCombos lists every line: columns, then rows, then the two diagonals.
var WinCombos = [8][3]int{
	{0, 3, 6},
	{1, 4, 7},
	{2, 5, 8},
	{0, 1, 2},
	{3, 4, 5},
	{6, 7, 8},
	{0, 4, 8},
	{2, 4, 6},
}

// Evaluate reports the winner of the board, PlayerTie for a full board without a line,
// or EmptyCell while play continues. It does not check that the position is reachable.
func Evaluate(board entity.Board) entity.Mark {
	if combo, ok := WinningLine(board); ok {
		return board[combo[0]]
	}

	for _, cell := range board {
		if cell == entity.EmptyCell {
			return entity.EmptyCell
		}
	}

	return entity.PlayerTie
}

// WinningLine returns the first completed line in WinCombos order.
func WinningLine(board entity.Board) ([3]int, bool) {
	for _, combo := range WinCombos {
		a, b, c := board[combo[0]], board[combo[1]], board[combo[2]]
		if a != entity.EmptyCell && a == b && b == c {
			return combo, true
		}
	}

	return [3]int{}, false
}
