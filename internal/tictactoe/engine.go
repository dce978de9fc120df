package tictactoe

import (
	"fmt"
	"hash/maphash"
	"math/rand/v2"
	"sync"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
)

// Rand is the random source used to break ties between equally good cells.
// *rand.Rand from math/rand/v2 satisfies it.
type Rand interface {
	IntN(n int) int
}

type Option func(engine *Engine)

// WithRand replaces the default random source. The source must be safe for the
// way the engine is shared.
func WithRand(rnd Rand) Option {
	return func(engine *Engine) {
		if rnd != nil {
			engine.rnd = rnd
		}
	}
}

// Engine picks the computer's moves for every difficulty.
type Engine struct {
	rnd Rand
}

func NewEngine(opts ...Option) *Engine {
	engine := &Engine{
		rnd: newLockedRand(),
	}

	for _, opt := range opts {
		opt(engine)
	}

	return engine
}

// ChooseMove returns the cell side plays at the given difficulty.
func (that *Engine) ChooseMove(board entity.Board, side entity.Mark, difficulty entity.Difficulty) (int, error) {
	switch difficulty {
	case entity.EasyDifficulty:
		return HeuristicMove(board, side, false, that.rnd)
	case entity.NormalDifficulty:
		return HeuristicMove(board, side, true, that.rnd)
	case entity.HardDifficulty:
		cell, _, err := Solve(board, side, that.rnd)
		return cell, err
	default:
		return -1, fmt.Errorf("%w: %q", apperror.ErrUnknownDifficulty, difficulty)
	}
}

func (that *Engine) Solve(board entity.Board, side entity.Mark) (int, entity.Mark, error) {
	return Solve(board, side, that.rnd)
}

// OpeningMove is the computer's first move of a round it opens: any cell.
func (that *Engine) OpeningMove() int {
	return that.rnd.IntN(entity.BoardSize)
}

type lockedRand struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

func newLockedRand() *lockedRand {
	return &lockedRand{
		rnd: rand.New(rand.NewPCG(new(maphash.Hash).Sum64(), new(maphash.Hash).Sum64())), //nolint: gosec // it's ok
	}
}

func (that *lockedRand) IntN(n int) int {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.rnd.IntN(n)
}
