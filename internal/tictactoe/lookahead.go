package tictactoe

import "github.com/rocketscienceinc/tictactoe-engine/internal/entity"

// HeuristicMove looks one ply ahead: it takes a winning cell if there is one, otherwise
// (when blockEnabled) a cell that stops the opponent from winning next turn, otherwise any
// empty cell. Ties inside each tier are broken with rnd.
func HeuristicMove(board entity.Board, side entity.Mark, blockEnabled bool, rnd Rand) (int, error) {
	if err := validatePosition(board, side); err != nil {
		return -1, err
	}

	empty := board.EmptyCells()

	if wins := completingCells(board, empty, side); len(wins) > 0 {
		return pick(rnd, wins), nil
	}

	if blockEnabled {
		if blocks := completingCells(board, empty, side.Opponent()); len(blocks) > 0 {
			return pick(rnd, blocks), nil
		}
	}

	return pick(rnd, empty), nil
}

// completingCells returns the cells where mark would complete a line.
func completingCells(board entity.Board, cells []int, mark entity.Mark) []int {
	var found []int
	for _, cell := range cells {
		next := board
		next[cell] = mark

		if Evaluate(next) == mark {
			found = append(found, cell)
		}
	}

	return found
}
