package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"ecocropshare/config"
	"ecocropshare/database"
	"ecocropshare/handlers"
	"ecocropshare/logger"
	"ecocropshare/routes"

	"github.com/gin-gonic/gin"
)

func main() {
	cfg := config.Load()
	log := logger.Init()

	log.Info().Msg("Starting EcoCropShare admin backend")

	if cfg.JWTSecret == "" || cfg.MongoURI == "" {
		log.Fatal().Msg("JWT_SECRET and MONGODB_URI must be set")
	}

	var db *database.DB
	var dbErr error
	for i := 1; i <= 3; i++ {
		db, dbErr = database.Connect(cfg.MongoURI, cfg.MongoDB)
		if dbErr == nil {
			break
		}
		log.Error().Err(dbErr).Int("attempt", i).Msg("MongoDB connection failed")
		time.Sleep(2 * time.Second)
	}
	if dbErr != nil {
		log.Fatal().Err(dbErr).Msg("Could not connect to MongoDB")
	}
	defer db.Disconnect()

	log.Info().Str("database", cfg.MongoDB).Msg("Connected to MongoDB")

	if cfg.GinMode == gin.ReleaseMode {
		gin.SetMode(gin.ReleaseMode)
	}

	h := handlers.New(db, log, cfg.JWTSecret)
	router := routes.SetupRouter(h, cfg.JWTSecret, cfg.AllowedOrigins, log)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("port", cfg.Port).Msg("Server listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Forced shutdown")
	}

	log.Info().Msg("Server stopped")
}
