package apperror

import "errors"

var (
	ErrInvalidState       = errors.New("invalid game state")
	ErrGameFinished       = errors.New("game is already finished")
	ErrGameIsNotStarted   = errors.New("game is not started")
	ErrGameIsNotFinished  = errors.New("game is not finished")
	ErrNotYourTurn        = errors.New("it's not your turn")
	ErrCellOccupied       = errors.New("cell is already occupied")
	ErrInvalidCell        = errors.New("invalid cell index")
	ErrUnknownDifficulty  = errors.New("unknown difficulty")
	ErrGameNotFound       = errors.New("game not found")
	ErrPlayerNotFound     = errors.New("player not found")
	ErrUnknownGameStatus  = errors.New("unknown game status")
	ErrInvalidBoardString = errors.New("invalid board string")
	ErrInvalidSide        = errors.New("side must be X or O")
)
