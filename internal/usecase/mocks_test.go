package usecase

import (
	"context"

	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
	"github.com/stretchr/testify/mock"
)

type mockPlayerRepo struct {
	mock.Mock
}

func newMockPlayerRepo() *mockPlayerRepo {
	return &mockPlayerRepo{}
}

func (that *mockPlayerRepo) CreateOrUpdate(ctx context.Context, player *entity.Player) error {
	args := that.Called(ctx, player)
	return args.Error(0)
}

func (that *mockPlayerRepo) GetByID(ctx context.Context, id string) (*entity.Player, error) {
	args := that.Called(ctx, id)

	player, _ := args.Get(0).(*entity.Player)
	return player, args.Error(1)
}

type mockGameRepo struct {
	mock.Mock
}

func newMockGameRepo() *mockGameRepo {
	return &mockGameRepo{}
}

func (that *mockGameRepo) CreateOrUpdate(ctx context.Context, game *entity.Game) error {
	args := that.Called(ctx, game)
	return args.Error(0)
}

func (that *mockGameRepo) GetByID(ctx context.Context, id string) (*entity.Game, error) {
	args := that.Called(ctx, id)

	game, _ := args.Get(0).(*entity.Game)
	return game, args.Error(1)
}

type mockEngine struct {
	mock.Mock
}

func newMockEngine() *mockEngine {
	return &mockEngine{}
}

func (that *mockEngine) ChooseMove(board entity.Board, side entity.Mark, difficulty entity.Difficulty) (int, error) {
	args := that.Called(board, side, difficulty)
	return args.Int(0), args.Error(1)
}

func (that *mockEngine) OpeningMove() int {
	return that.Called().Int(0)
}
