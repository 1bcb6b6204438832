package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	intconfig "agrisolve/internal/config"
	intdb "agrisolve/internal/db"
	"agrisolve/internal/favorites"
	router "agrisolve/internal/http"
	"agrisolve/internal/http/handlers"
	"agrisolve/internal/listingview"
	"agrisolve/internal/repositories"
	"agrisolve/internal/services"
	"agrisolve/internal/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	env := intconfig.LoadEnv()
	if env.GinMode != "" {
		gin.SetMode(env.GinMode)
	}

	logger, err := utils.InitLogger(env.GinMode)
	if err != nil {
		panic(err)
	}
	defer func() { _ = logger.Sync() }()

	if err := env.Validate(); err != nil {
		logger.Fatal("invalid configuration", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := intconfig.ConnectDB(ctx, env.DBDSN)
	if err != nil {
		logger.Fatal("database connection failed", zap.Error(err))
	}
	defer db.Close()

	if env.AutoMigrate {
		if err := intdb.EnsureSchema(ctx, db); err != nil {
			logger.Fatal("schema setup failed", zap.Error(err))
		}
	}

	var favStore favorites.Store = favorites.NewMemoryStore(env.FavoritesTTL)
	if env.RedisURL != "" {
		rdb, err := intconfig.NewRedisClient(ctx, env.RedisURL)
		if err != nil {
			logger.Fatal("redis connection failed", zap.Error(err))
		}
		defer rdb.Close()
		favStore = favorites.NewRedisStore(rdb, env.FavoritesTTL)
		logger.Info("favorites stored in redis")
	} else {
		logger.Info("REDIS_URL not set, favorites kept in memory")
	}

	listingRepo := repositories.NewListingRepository(db)
	snapshot := listingview.NewStore()
	go services.MarketplaceService{Repo: listingRepo, Snapshot: snapshot, RequestID: "refresh"}.Run(ctx, env.RefreshInterval)

	hd := &handlers.Handler{
		DB:        db,
		Listings:  listingRepo,
		Forum:     repositories.NewForumRepository(db),
		Users:     repositories.NewUserRepository(db),
		Favorites: favStore,
		Snapshot:  snapshot,
		JWTSecret: []byte(env.JWTSecret),
	}
	r := router.NewRouter(env, hd)

	srv := &http.Server{
		Addr:              env.AppAddr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       20 * time.Second,
		WriteTimeout:      20 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.Info("server listening", zap.String("addr", env.AppAddr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown failed", zap.Error(err))
		return
	}
	logger.Info("server stopped cleanly")
}
