package application

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/rocketscienceinc/tictactoe-solo/internal/config"
	"github.com/rocketscienceinc/tictactoe-solo/internal/entity"
	"github.com/rocketscienceinc/tictactoe-solo/internal/repository"
	"github.com/rocketscienceinc/tictactoe-solo/internal/repository/storage"
	"github.com/rocketscienceinc/tictactoe-solo/internal/service"
	"github.com/rocketscienceinc/tictactoe-solo/internal/usecase"
	"github.com/rocketscienceinc/tictactoe-solo/transport/rest"
	"github.com/rocketscienceinc/tictactoe-solo/transport/terminal"
)

// RunApp - runs the application.
func RunApp(logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigs)
	go func() {
		select {
		case sig := <-sigs:
			log.Info("Received signal, shutting down", "signal", sig)
			cancel()
		case <-ctx.Done():
		}
	}()

	sessionRepo, closeStore, err := newSessionRepository(ctx, log, conf)
	if err != nil {
		return err
	}
	defer closeStore()

	gameManager := usecase.NewGameManager(logger, sessionRepo, service.NewBotService(nil), usecase.Options{
		AIEnabled: conf.AI.Enabled(),
		AIMark:    entity.Mark(conf.AI.Mark),
		AIDelay:   conf.AI.Delay,
	})

	switch conf.Mode {
	case config.ModeHTTP:
		log.Info("Starting HTTP server", "port", conf.HTTPPort)
		if err = rest.Start(ctx, conf.HTTPPort, rest.NewRouter(logger, gameManager)); err != nil {
			return fmt.Errorf("HTTP server error: %w", err)
		}
	default:
		log.Info("Starting terminal UI", "ai", conf.AI.Enabled(), "aiMark", conf.AI.Mark)
		if err = terminal.Run(ctx, logger, gameManager); err != nil {
			return fmt.Errorf("terminal UI error: %w", err)
		}
	}

	log.Info("Application stopped")

	return nil
}

func newSessionRepository(ctx context.Context, log *slog.Logger, conf *config.Config) (repository.SessionRepository, func(), error) {
	if conf.Storage.Driver != config.StorageRedis {
		return repository.NewMemorySessionRepository(), func() {}, nil
	}

	redisStorage, err := storage.NewRedisStorage(ctx, conf.Redis.GetRedisAddr())
	if err != nil {
		return nil, nil, fmt.Errorf("could not connect to redis storage: %w", err)
	}

	closeStore := func() {
		if err := redisStorage.Close(); err != nil {
			log.Error("could not close redis storage", "error", err)
		}
	}

	return repository.NewSessionRepository(redisStorage.Connection, conf.Redis.SessionTTL), closeStore, nil
}
