package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/rocketscienceinc/tictactoe-engine/internal/config"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
	"github.com/rocketscienceinc/tictactoe-engine/internal/repository"
	"github.com/rocketscienceinc/tictactoe-engine/internal/repository/storage"
	"github.com/rocketscienceinc/tictactoe-engine/internal/server"
	"github.com/rocketscienceinc/tictactoe-engine/internal/tictactoe"
	"github.com/rocketscienceinc/tictactoe-engine/internal/usecase"
	"github.com/rocketscienceinc/tictactoe-engine/transport/rest"
	"github.com/rocketscienceinc/tictactoe-engine/transport/websocket"
)

var ErrAddrNotFound = errors.New("redis address string is empty")

// RunApp - runs the application until SIGINT or SIGTERM.
func RunApp(logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	redisAddrString := conf.Redis.GetRedisAddr()
	if redisAddrString == "" {
		return ErrAddrNotFound
	}

	redisStorage, err := storage.New(ctx, redisAddrString)
	if err != nil {
		return fmt.Errorf("could not connect to redis storage: %w", err)
	}

	defer func() {
		if err = redisStorage.Close(); err != nil {
			log.Error("could not close redis storage", "error", err)
		}
	}()

	defaultDifficulty, err := entity.ParseDifficulty(conf.Game.DefaultDifficulty)
	if err != nil {
		return fmt.Errorf("invalid game config: %w", err)
	}

	playerRepo := repository.NewPlayerRepository(redisStorage, conf.Redis.TTL)
	gameRepo := repository.NewGameRepository(redisStorage, conf.Redis.TTL)
	engine := tictactoe.NewEngine()
	gameUseCase := usecase.NewGameManager(logger, playerRepo, gameRepo, engine, defaultDifficulty)

	restServer := rest.New(logger, engine, conf.CORS.AllowedOrigins)
	wsServer := websocket.New(logger, gameUseCase, conf.CORS.AllowedOrigins)

	group, groupCtx := errgroup.WithContext(ctx)

	group.Go(func() error {
		log.Info("Starting HTTP server", "port", conf.HTTPPort)

		if err := server.Run(groupCtx, logger.With("server", "http"), conf.HTTPPort, restServer.Handler()); err != nil {
			return fmt.Errorf("HTTP server error: %w", err)
		}

		return nil
	})

	group.Go(func() error {
		log.Info("Starting WebSocket server", "port", conf.SocketPort)

		if err := server.Run(groupCtx, logger.With("server", "websocket"), conf.SocketPort, wsServer.Handler()); err != nil {
			return fmt.Errorf("WebSocket server error: %w", err)
		}

		return nil
	})

	if err = group.Wait(); err != nil {
		return err
	}

	log.Info("Application context canceled, shutting down")

	return nil
}
