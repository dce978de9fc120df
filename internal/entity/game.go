package entity

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
)

const (
	StatusFinished = "finished"
	StatusOngoing  = "ongoing"
	StatusWaiting  = "waiting"
)

const (
	OutcomeComputerWins = "Computer wins."
	OutcomePlayerWins   = "You win!"
	OutcomeTie          = "It is a tie."
)

// Game is a single round between a player and the computer.
type Game struct {
	ID         string     `json:"id"`
	PlayerID   string     `json:"player_id"`
	Board      Board      `json:"board"`
	Winner     Mark       `json:"winner"`
	WinLine    []int      `json:"win_line,omitempty"`
	Status     string     `json:"status"`
	Turn       Mark       `json:"player_turn"`
	CPUFirst   bool       `json:"cpu_first"`
	Difficulty Difficulty `json:"difficulty"`
}

// NewGame returns a game waiting for its first round. The first round is opened by the player.
func NewGame(id, playerID string) *Game {
	return &Game{
		ID:         id,
		PlayerID:   playerID,
		Status:     StatusWaiting,
		CPUFirst:   true,
		Difficulty: DefaultDifficulty,
	}
}

// Reset starts a new round. Whoever opened the previous round plays second, X always moves first.
func (that *Game) Reset(difficulty Difficulty) {
	that.Board = Board{}
	that.Winner = EmptyCell
	that.WinLine = nil
	that.Status = StatusOngoing
	that.Turn = PlayerX
	that.CPUFirst = !that.CPUFirst
	that.Difficulty = difficulty
}

// Dismiss returns a finished round to the waiting state.
func (that *Game) Dismiss() error {
	if !that.IsFinished() {
		return apperror.ErrGameIsNotFinished
	}

	that.Status = StatusWaiting
	that.Turn = EmptyCell

	return nil
}

func (that *Game) CPUMark() Mark {
	if that.CPUFirst {
		return PlayerX
	}
	return PlayerO
}

func (that *Game) HumanMark() Mark {
	return that.CPUMark().Opponent()
}

func (that *Game) IsCPUTurn() bool {
	return that.IsOngoing() && that.Turn == that.CPUMark()
}

// Outcome is the message shown to the player once the round is over.
func (that *Game) Outcome() string {
	if !that.IsFinished() {
		return ""
	}

	switch that.Winner {
	case that.CPUMark():
		return OutcomeComputerWins
	case that.HumanMark():
		return OutcomePlayerWins
	case PlayerTie:
		return OutcomeTie
	default:
		return ""
	}
}

func (that *Game) IsFinished() bool {
	return that.Status == StatusFinished
}

func (that *Game) IsOngoing() bool {
	return that.Status == StatusOngoing
}

func (that *Game) IsWaiting() bool {
	return that.Status == StatusWaiting
}

func (that *Game) ConfirmOngoingState() error {
	switch {
	case that.IsWaiting():
		return apperror.ErrGameIsNotStarted
	case that.IsFinished():
		return apperror.ErrGameFinished
	case that.IsOngoing():
		return nil
	default:
		return fmt.Errorf("%w: %s", apperror.ErrUnknownGameStatus, that.Status)
	}
}
