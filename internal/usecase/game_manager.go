package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
	"github.com/rocketscienceinc/tictactoe-engine/internal/tictactoe"
)

type playerRepo interface {
	CreateOrUpdate(ctx context.Context, player *entity.Player) error
	GetByID(ctx context.Context, id string) (*entity.Player, error)
}

type gameRepo interface {
	CreateOrUpdate(ctx context.Context, game *entity.Game) error
	GetByID(ctx context.Context, id string) (*entity.Game, error)
}

type moveChooser interface {
	ChooseMove(board entity.Board, side entity.Mark, difficulty entity.Difficulty) (int, error)
	OpeningMove() int
}

// GameManager runs rounds between players and the computer.
type GameManager struct {
	logger     *slog.Logger
	playerRepo playerRepo
	gameRepo   gameRepo
	engine     moveChooser

	defaultDifficulty entity.Difficulty
}

func NewGameManager(logger *slog.Logger, playerRepo playerRepo, gameRepo gameRepo, engine moveChooser, defaultDifficulty entity.Difficulty) *GameManager {
	if !defaultDifficulty.IsValid() {
		defaultDifficulty = entity.DefaultDifficulty
	}

	return &GameManager{
		logger: logger.With("component", "game_manager"),

		playerRepo: playerRepo,
		gameRepo:   gameRepo,
		engine:     engine,

		defaultDifficulty: defaultDifficulty,
	}
}

// GetOrCreatePlayer returns the player, creating it when the id is empty or unknown.
func (that *GameManager) GetOrCreatePlayer(ctx context.Context, id string) (*entity.Player, error) {
	if id == "" {
		id = uuid.NewString()
	} else {
		player, err := that.playerRepo.GetByID(ctx, id)
		if err == nil {
			return player, nil
		}

		if !errors.Is(err, apperror.ErrPlayerNotFound) {
			return nil, fmt.Errorf("failed to get player by id: %w", err)
		}
	}

	player := &entity.Player{
		ID:         id,
		Difficulty: that.defaultDifficulty,
	}

	if err := that.updatePlayer(ctx, player); err != nil {
		return nil, fmt.Errorf("failed to create player: %w", err)
	}

	return player, nil
}

// SetDifficulty stores the preference used from the player's next round on.
func (that *GameManager) SetDifficulty(ctx context.Context, playerID, difficulty string) (*entity.Player, error) {
	parsed, err := entity.ParseDifficulty(difficulty)
	if err != nil {
		return nil, err
	}

	player, err := that.getPlayerByID(ctx, playerID)
	if err != nil {
		return nil, err
	}

	player.Difficulty = parsed
	if err = that.updatePlayer(ctx, player); err != nil {
		return nil, err
	}

	return player, nil
}

// NewRound starts the next round of the player's game. When the computer opens,
// its first move is already on the board.
func (that *GameManager) NewRound(ctx context.Context, playerID string) (*entity.Game, error) {
	log := that.logger.With("method", "NewRound", "playerID", playerID)

	player, err := that.getPlayerByID(ctx, playerID)
	if err != nil {
		return nil, err
	}

	game, err := that.getOrCreateGame(ctx, player)
	if err != nil {
		return nil, err
	}

	if game.IsOngoing() {
		return game, apperror.ErrGameIsNotFinished
	}

	game.Reset(player.PreferredDifficulty())

	if game.IsCPUTurn() {
		if err = tictactoe.MakeTurn(game, game.CPUMark(), that.engine.OpeningMove()); err != nil {
			return nil, fmt.Errorf("computer failed to open: %w", err)
		}
	}

	if err = that.updateGame(ctx, game); err != nil {
		return nil, err
	}

	log.Info("round started", "gameID", game.ID, "cpuFirst", game.CPUFirst, "difficulty", game.Difficulty)

	return game, nil
}

// MakeTurn applies the player's move and, if the round goes on, the computer's reply.
func (that *GameManager) MakeTurn(ctx context.Context, playerID string, cell int) (*entity.Game, error) {
	log := that.logger.With("method", "MakeTurn", "playerID", playerID)

	game, err := that.GetGame(ctx, playerID)
	if err != nil {
		return nil, err
	}

	if err = tictactoe.MakeTurn(game, game.HumanMark(), cell); err != nil {
		return game, fmt.Errorf("failed make turn: %w", err)
	}

	if game.IsCPUTurn() {
		reply, err := that.engine.ChooseMove(game.Board, game.CPUMark(), game.Difficulty)
		if err != nil {
			return nil, fmt.Errorf("computer failed to choose a move: %w", err)
		}

		if err = tictactoe.MakeTurn(game, game.CPUMark(), reply); err != nil {
			return nil, fmt.Errorf("computer failed to make turn: %w", err)
		}
	}

	if err = that.updateGame(ctx, game); err != nil {
		return nil, err
	}

	if game.IsFinished() {
		log.Info("round over", "gameID", game.ID, "winner", game.Winner)
	}

	return game, nil
}

// Dismiss closes a finished round.
func (that *GameManager) Dismiss(ctx context.Context, playerID string) (*entity.Game, error) {
	game, err := that.GetGame(ctx, playerID)
	if err != nil {
		return nil, err
	}

	if err = game.Dismiss(); err != nil {
		return game, err
	}

	if err = that.updateGame(ctx, game); err != nil {
		return nil, err
	}

	return game, nil
}

func (that *GameManager) GetGame(ctx context.Context, playerID string) (*entity.Game, error) {
	player, err := that.getPlayerByID(ctx, playerID)
	if err != nil {
		return nil, err
	}

	if player.GameID == "" {
		return nil, apperror.ErrGameNotFound
	}

	return that.getGameByID(ctx, player.GameID)
}

func (that *GameManager) getOrCreateGame(ctx context.Context, player *entity.Player) (*entity.Game, error) {
	if player.GameID != "" {
		game, err := that.gameRepo.GetByID(ctx, player.GameID)
		if err == nil {
			return game, nil
		}

		if !errors.Is(err, apperror.ErrGameNotFound) {
			return nil, fmt.Errorf("failed to get game: %w", err)
		}
	}

	game := entity.NewGame(uuid.NewString(), player.ID)

	player.GameID = game.ID
	if err := that.updatePlayer(ctx, player); err != nil {
		return nil, err
	}

	return game, nil
}

func (that *GameManager) getGameByID(ctx context.Context, id string) (*entity.Game, error) {
	game, err := that.gameRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get game: %w", err)
	}

	return game, nil
}

func (that *GameManager) updateGame(ctx context.Context, game *entity.Game) error {
	if err := that.gameRepo.CreateOrUpdate(ctx, game); err != nil {
		return fmt.Errorf("failed to update game: %w", err)
	}

	return nil
}

func (that *GameManager) getPlayerByID(ctx context.Context, id string) (*entity.Player, error) {
	player, err := that.playerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get player: %w", err)
	}

	return player, nil
}

func (that *GameManager) updatePlayer(ctx context.Context, player *entity.Player) error {
	if err := that.playerRepo.CreateOrUpdate(ctx, player); err != nil {
		return fmt.Errorf("failed to update player: %w", err)
	}

	return nil
}
