package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/anonto42/public-space/backend/internal/events"
	"github.com/anonto42/public-space/backend/internal/locker"
	"github.com/anonto42/public-space/backend/internal/logger"
	"github.com/anonto42/public-space/backend/internal/media"
	"github.com/anonto42/public-space/backend/internal/models"
	"github.com/anonto42/public-space/backend/internal/repositories"
	"github.com/anonto42/public-space/backend/internal/router"
	"github.com/anonto42/public-space/backend/internal/services"
	"github.com/anonto42/public-space/backend/pkg/config"
	"github.com/anonto42/public-space/backend/pkg/firebase"
	"github.com/go-redis/redis/v8"
)

var log = logger.New("main")

type stores struct {
	users   repositories.UserRepository
	friends repositories.FriendshipRepository
	posts   repositories.PostRepository
	close   func()
}

func main() {
	cfg := config.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	st, err := openStores(ctx, cfg)
	if err != nil {
		log.Error("failed to initialize stores", err)
		os.Exit(1)
	}
	defer st.close()

	locks, closeLocks := openLocker(ctx, cfg)
	defer closeLocks()

	publisher := openPublisher(cfg)
	defer publisher.Close()

	var verifier services.TokenVerifier
	if cfg.FirebaseCredentialsPath != "" {
		app, err := firebase.InitFirebase(ctx, cfg.FirebaseCredentialsPath)
		if err != nil {
			log.Error("failed to initialize firebase", err)
			os.Exit(1)
		}
		verifier = app.AuthClient
	}

	if cfg.InsecureJWTSecret() {
		log.Warn("JWT_SECRET is unset or the development default; session tokens can be forged", logger.Fields{"env": cfg.Env})
	}
	tokens := services.NewTokenIssuer(cfg.JWTSecret)
	e := router.New(cfg, router.Dependencies{
		Users:    st.users,
		Posts:    services.NewPostService(st.users, st.friends, st.posts, locks, media.NewPicsumGenerator(), publisher),
		Accounts: services.NewAccountService(st.users, st.friends, tokens, verifier),
		Seeder:   services.NewSeeder(st.users, st.friends, st.posts),
		Tokens:   tokens,
	})

	go func() {
		log.Info("server listening", logger.Fields{"port": cfg.Port, "store": cfg.StoreDriver})
		if err := e.Start("0.0.0.0:" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server stopped", err)
			stop()
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", err)
	}
	log.Info("server shut down")
}

func openStores(ctx context.Context, cfg *config.Config) (*stores, error) {
	if cfg.StoreDriver != config.StoreExternal {
		users := repositories.NewMemoryUserRepository()
		return &stores{
			users:   users,
			friends: users,
			posts:   repositories.NewMemoryPostRepository(),
			close:   func() {},
		}, nil
	}

	db, err := config.InitDB(cfg)
	if err != nil {
		return nil, err
	}
	if err := db.Postgres.AutoMigrate(&models.User{}, &models.Friendship{}); err != nil {
		db.CloseDB()
		return nil, err
	}
	posts := repositories.NewMongoPostRepository(db.Mongo.Database(cfg.MongoDatabase))
	if err := posts.EnsureIndexes(ctx); err != nil {
		db.CloseDB()
		return nil, err
	}
	log.Info("postgres migrated and mongo indexes ensured")

	return &stores{
		users:   repositories.NewPostgresUserRepository(db.Postgres),
		friends: repositories.NewPostgresFriendshipRepository(db.Postgres),
		posts:   posts,
		close:   db.CloseDB,
	}, nil
}

func openLocker(ctx context.Context, cfg *config.Config) (locker.Locker, func()) {
	if cfg.RedisAddr == "" {
		return locker.NewMemory(), func() {}
	}
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		log.Warn("redis unreachable, using in-process quota lock", logger.Fields{"error": err.Error()})
		_ = client.Close()
		return locker.NewMemory(), func() {}
	}
	log.Info("using redis quota lock", logger.Fields{"addr": cfg.RedisAddr})
	return locker.NewRedis(client, cfg.QuotaLockTTL), func() { _ = client.Close() }
}

func openPublisher(cfg *config.Config) events.Publisher {
	if len(cfg.KafkaBrokers) == 0 {
		return events.Noop{}
	}
	log.Info("publishing post events to kafka", logger.Fields{"topic": cfg.KafkaTopic})
	return events.NewKafkaPublisher(events.KafkaConfig{
		Brokers:      cfg.KafkaBrokers,
		Topic:        cfg.KafkaTopic,
		WriteTimeout: cfg.KafkaWriteTimeout,
	})
}
