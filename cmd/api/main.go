// @title        securedapp user-management API
// @version      1.0
// @description  HTTPS-only user, role and category management with JWT authentication and permission-based access control.
//
// @securityDefinitions.apikey BearerAuth
// @in   header
// @name Authorization
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/learning/securedapp/docs"
	"github.com/learning/securedapp/internal/api"
	"github.com/learning/securedapp/internal/api/handler"
	"github.com/learning/securedapp/internal/core/service"
	mongodb "github.com/learning/securedapp/internal/infrastructure/db/mongo"
	redisdb "github.com/learning/securedapp/internal/infrastructure/db/redis"
	"github.com/learning/securedapp/internal/infrastructure/queue"
	"github.com/learning/securedapp/internal/pkg/config"
	"github.com/learning/securedapp/internal/pkg/password"
	"github.com/learning/securedapp/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	if cfg.JWTSecret == "" {
		log.Fatal().Msg("JWT_SECRET must be set")
	}
	tokenTTL, err := time.ParseDuration(cfg.TokenTTL)
	if err != nil {
		log.Fatal().Err(err).Str("token_ttl", cfg.TokenTTL).Msg("invalid TOKEN_TTL")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// --- Storage ---
	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connection failed")
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		_ = mongoClient.Disconnect(disconnectCtx)
	}()

	if err := mongodb.EnsureIndexes(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("index creation failed")
	}

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer func() { _ = rdb.Close() }()

	// --- Repositories ---
	userRepo := mongodb.NewUserRepository(db)
	roleRepo := mongodb.NewRoleRepository(db)
	categoryRepo := mongodb.NewCategoryRepository(db)
	auditRepo := mongodb.NewAuditRepository(db)

	// --- Audit trail ---
	dispatcher := queue.NewAuditDispatcher(0, auditRepo, log)
	dispatcher.Start(ctx)

	// --- Services ---
	encoder := password.NewEncoder(cfg.BcryptCost)
	roleCache := redisdb.NewRoleCache(rdb)
	validator := service.NewUserValidator(userRepo)
	securityService := service.NewSecurityService(userRepo, roleRepo, validator, encoder, roleCache, dispatcher, log)
	authService := service.NewAuthService(userRepo, roleRepo, encoder, dispatcher, cfg.JWTSecret, tokenTTL, log)
	categoryService := service.NewCategoryService(categoryRepo, log)

	// --- HTTP ---
	router := api.NewRouter(api.Deps{
		Security:  securityService,
		Auth:      authService,
		Category:  categoryService,
		Health:    handler.NewHealthHandler(),
		Readiness: handler.NewReadinessHandler(db, rdb),
		JWTSecret: cfg.JWTSecret,
		HTTPSPort: cfg.HTTPSPort,
		Logger:    log,
	})
	redirector := api.NewRedirectRouter(cfg.HTTPSPort)

	go func() {
		log.Info().Str("port", cfg.HTTPSPort).Msg("starting HTTPS listener")
		err := router.StartTLS(":"+cfg.HTTPSPort, cfg.TLSCertFile, cfg.TLSKeyFile)
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("https server failed")
		}
	}()

	go func() {
		log.Info().Str("port", cfg.HTTPPort).Msg("starting HTTP redirect listener")
		err := redirector.Start(":" + cfg.HTTPPort)
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("redirect server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := router.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("https shutdown failed")
	}
	if err := redirector.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("redirect shutdown failed")
	}
}
