package repository

import (
	"testing"
	"time"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
	"github.com/rocketscienceinc/tictactoe-engine/testing/suite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlayerRepository_CreateOrUpdate(t *testing.T) {
	ctx, st := suite.New(t)

	playerRepo := NewPlayerRepository(st.Storage, time.Hour)

	// Given: a player with a difficulty preference
	player := &entity.Player{
		ID:         "123",
		Difficulty: entity.HardDifficulty,
	}

	// When: CreateOrUpdate is called twice
	require.NoError(t, playerRepo.CreateOrUpdate(ctx, player))

	player.GameID = "g1"
	require.NoError(t, playerRepo.CreateOrUpdate(ctx, player))

	// Then: the latest version is stored
	stored, err := playerRepo.GetByID(ctx, "123")
	require.NoError(t, err)
	assert.Equal(t, player, stored)
}

func TestPlayerRepository_GetByID(t *testing.T) {
	t.Run("GetByID_NotFound", func(t *testing.T) {
		ctx, st := suite.New(t)

		playerRepo := NewPlayerRepository(st.Storage, time.Hour)

		// When: GetByID is called with a non-existent ID
		player, err := playerRepo.GetByID(ctx, "nope")

		// Then: an ErrPlayerNotFound error should be returned
		require.ErrorIs(t, err, apperror.ErrPlayerNotFound)
		assert.Empty(t, player.ID)
	})

	t.Run("Malformed value", func(t *testing.T) {
		ctx, st := suite.New(t)

		playerRepo := NewPlayerRepository(st.Storage, time.Hour)

		// Given: something that is not JSON under the player key
		require.NoError(t, st.Storage.Set(ctx, "player:bad", "{", 0).Err())

		// When: reading it
		_, err := playerRepo.GetByID(ctx, "bad")

		// Then: the decode error is reported
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unmarshal")
	})
}
