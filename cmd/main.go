// @title Food Analysis Backend API
// @version 1.0
// @description Food image analysis with Gemini and email/password accounts

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /
// @schemes http https

// @securityDefinitions.apikey BearerAuth
// @in header
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

	"github.com/apex/log"
	jsonhandler "github.com/apex/log/handlers/json"
	"github.com/apex/log/handlers/text"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/cors"

	_ "FOODLENS_BACK-END/docs" // This is required for swagger
	"FOODLENS_BACK-END/internal/analyzer"
	"FOODLENS_BACK-END/internal/config"
	"FOODLENS_BACK-END/internal/gemini"
	"FOODLENS_BACK-END/internal/handlers"
	"FOODLENS_BACK-END/internal/middleware"
	"FOODLENS_BACK-END/internal/repository"
	"FOODLENS_BACK-END/internal/routes"
	"FOODLENS_BACK-END/internal/utils"
)

func setupLogger(cfg config.LogConfig) {
	if cfg.Format == "json" {
		log.SetHandler(jsonhandler.New(os.Stderr))
	} else {
		log.SetHandler(text.New(os.Stderr))
	}

	level, err := log.ParseLevel(cfg.Level)
	if err != nil {
		log.Warnf("invalid LOG_LEVEL %q, using info", cfg.Level)
		level = log.InfoLevel
	}
	log.SetLevel(level)
}

func newPool(ctx context.Context, cfg config.DatabaseConfig) (*pgxpool.Pool, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.URL)
	if err != nil {
		return nil, err
	}
	poolCfg.ConnConfig.RuntimeParams["application_name"] = "foodlens-backend"
	poolCfg.ConnConfig.ConnectTimeout = cfg.ConnTimeout
	poolCfg.MaxConns = cfg.MaxConns
	poolCfg.MinConns = cfg.MinConns
	poolCfg.MaxConnLifetime = cfg.MaxLifetime

	return pgxpool.NewWithConfig(ctx, poolCfg)
}

func main() {
	log.SetHandler(text.New(os.Stderr))

	cfg, err := config.Load()
	if err != nil {
		log.WithError(err).Fatal("failed to load configuration")
	}
	setupLogger(cfg.Log)

	pool, err := newPool(context.Background(), cfg.Database)
	if err != nil {
		log.WithError(err).Fatal("failed to create database pool")
	}
	defer pool.Close()

	{
		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
		defer cancel()
		if err := pool.Ping(ctx); err != nil {
			// readiness reports this; the service can still answer /analyze-food
			log.WithError(err).Warn("database ping failed at startup")
		}
	}

	model, err := gemini.NewClient(context.Background(), cfg.Gemini)
	if err != nil {
		log.WithError(err).Fatal("failed to create Gemini client")
	}
	log.WithFields(log.Fields{
		"model":         cfg.Gemini.Model,
		"response_mode": cfg.Gemini.ResponseMode,
	}).Info("Gemini client ready")

	// --- HTTP Handlers ---

	var tokens *middleware.TokenIssuer
	if cfg.Auth.TokensEnabled {
		tokens = middleware.NewTokenIssuer(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTL)
		log.Info("token issuance enabled")
	}

	authHandler := handlers.NewAuthHandler(
		repository.NewUserRepository(pool),
		utils.NewBcryptHasher(cfg.Auth.BcryptCost),
		tokens,
	)
	foodHandler := handlers.NewFoodHandler(analyzer.New(model), cfg.Upload.MaxBytes)
	healthHandler := handlers.NewHealthHandler(pool)

	mux := http.NewServeMux()
	routes.SetupRoutes(mux, authHandler, foodHandler, healthHandler, tokens)

	// --- HTTP Server + Graceful Shutdown ---

	c := cors.New(cors.Options{
		AllowedOrigins:   cfg.CORS.AllowedOrigins,
		AllowedMethods:   cfg.CORS.AllowedMethods,
		AllowedHeaders:   cfg.CORS.AllowedHeaders,
		AllowCredentials: cfg.CORS.AllowCredentials,
	})

	handler := middleware.RequestLogger(middleware.Recover(c.Handler(mux)))

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
	}

	go func() {
		log.Infof("HTTP server listening on :%s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("ListenAndServe")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("server shutdown error")
	}
	log.Info("Server stopped.")
}
