package entity

import (
	"fmt"
	"strings"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
)

type Difficulty string

const (
	// EasyDifficulty takes a winning move when one exists, otherwise plays anywhere.
	EasyDifficulty Difficulty = "easy"
	// NormalDifficulty also blocks the opponent's immediate win.
	NormalDifficulty Difficulty = "normal"
	// HardDifficulty plays a perfect game.
	HardDifficulty Difficulty = "hard"

	DefaultDifficulty = NormalDifficulty
)

// ParseDifficulty accepts a difficulty name or the numeric levels 0, 1 and 2.
func ParseDifficulty(raw string) (Difficulty, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "easy", "0":
		return EasyDifficulty, nil
	case "normal", "1":
		return NormalDifficulty, nil
	case "hard", "2":
		return HardDifficulty, nil
	default:
		return "", fmt.Errorf("%w: %q", apperror.ErrUnknownDifficulty, raw)
	}
}

func (that Difficulty) IsValid() bool {
	switch that {
	case EasyDifficulty, NormalDifficulty, HardDifficulty:
		return true
	default:
		return false
	}
}
