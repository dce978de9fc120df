package tictactoe

import "github.com/rocketscienceinc/tictactoe-engine/internal/entity"

type position struct {
	board entity.Board
	side  entity.Mark
}

// searcher memoizes the guaranteed outcome of positions seen during one Solve call.
type searcher struct {
	memo map[position]entity.Mark
}

// Solve searches the whole game tree and returns a cell for side together with the result
// that perfect play from here guarantees: side, PlayerTie, or the opponent.
// Equally good cells are chosen with rnd. On error the cell is -1.
func Solve(board entity.Board, side entity.Mark, rnd Rand) (int, entity.Mark, error) {
	if err := validatePosition(board, side); err != nil {
		return -1, Evaluate(board), err
	}

	search := &searcher{memo: make(map[position]entity.Mark)}

	var wins, ties, losses []int
	for _, cell := range board.EmptyCells() {
		next := board
		next[cell] = side

		switch search.outcome(next, side.Opponent()) {
		case side:
			wins = append(wins, cell)
		case entity.PlayerTie:
			ties = append(ties, cell)
		default:
			losses = append(losses, cell)
		}
	}

	switch {
	case len(wins) > 0:
		return pick(rnd, wins), side, nil
	case len(ties) > 0:
		return pick(rnd, ties), entity.PlayerTie, nil
	default:
		return pick(rnd, losses), side.Opponent(), nil
	}
}

// outcome is the result of the board under perfect play with side to move.
func (that *searcher) outcome(board entity.Board, side entity.Mark) entity.Mark {
	if result := Evaluate(board); result != entity.EmptyCell {
		return result
	}

	key := position{board: board, side: side}
	if result, ok := that.memo[key]; ok {
		return result
	}

	best := side.Opponent()
	for _, cell := range board.EmptyCells() {
		next := board
		next[cell] = side

		result := that.outcome(next, side.Opponent())
		if result == side {
			best = side
			break
		}
		if result == entity.PlayerTie {
			best = entity.PlayerTie
		}
	}

	that.memo[key] = best

	return best
}

func pick(rnd Rand, cells []int) int {
	return cells[rnd.IntN(len(cells))]
}
