// @title           techNotes API
// @version         1.0
// @description     Users and notes with username and title uniqueness, blocked user deletion and owner-username joins.
// @BasePath        /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	mongodriver "go.mongodb.org/mongo-driver/mongo"

	_ "github.com/technotes/notes-api/docs"
	"github.com/technotes/notes-api/internal/api"
	"github.com/technotes/notes-api/internal/core/ports"
	"github.com/technotes/notes-api/internal/core/service"
	"github.com/technotes/notes-api/internal/infrastructure/db/memory"
	mongoinfra "github.com/technotes/notes-api/internal/infrastructure/db/mongo"
	redisinfra "github.com/technotes/notes-api/internal/infrastructure/db/redis"
	"github.com/technotes/notes-api/internal/infrastructure/security"
	"github.com/technotes/notes-api/internal/pkg/config"
	"github.com/technotes/notes-api/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg := config.Load()
	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: "technotes-api",
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}

func run(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	var (
		userRepo ports.UserRepository
		noteRepo ports.NoteRepository
		db       *mongodriver.Database
	)

	switch cfg.Store {
	case config.StoreMemory:
		log.Warn().Msg("using in-memory store, data is lost on restart")
		store := memory.NewStore()
		userRepo, noteRepo = store.Users(), store.Notes()
	default:
		client, mdb, err := mongoinfra.Connect(ctx, mongoinfra.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
		if err != nil {
			return err
		}
		defer func() {
			dctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			if err := client.Disconnect(dctx); err != nil {
				log.Error().Err(err).Msg("mongo disconnect failed")
			}
		}()

		users := mongoinfra.NewUserRepository(mdb)
		notes := mongoinfra.NewNoteRepository(mdb)
		if err := mongoinfra.EnsureIndexes(ctx, users, notes); err != nil {
			return err
		}
		log.Info().Str("database", cfg.Mongo.Database).Msg("connected to mongodb")
		userRepo, noteRepo, db = users, notes, mdb
	}

	var (
		cache ports.UsernameCache
		rdb   *goredis.Client
	)
	if client, err := redisinfra.Connect(ctx, redisinfra.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB}); err != nil {
		log.Warn().Err(err).Msg("redis unavailable, username cache disabled")
	} else {
		defer client.Close()
		rdb = client
		cache = redisinfra.NewUsernameCache(client, cfg.Redis.UsernameCacheTTL)
	}

	hasher := security.NewBcryptHasher(cfg.BcryptCost)
	userService := service.NewUserService(userRepo, noteRepo, hasher, cache, log.With().Str("component", "users").Logger())
	noteService := service.NewNoteService(noteRepo, userService, cache, log.With().Str("component", "notes").Logger())
	authService := service.NewAuthService(userRepo, hasher, cfg.JWTSecret, cfg.AccessTokenTTL)

	e := api.NewRouter(api.Deps{
		Users:     userService,
		Notes:     noteService,
		Auth:      authService,
		JWTSecret: cfg.JWTSecret,
		Mongo:     db,
		Redis:     rdb,
		Logger:    log,
	})

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Msg("server listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return e.Shutdown(sctx)
}
