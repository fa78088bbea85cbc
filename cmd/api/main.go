package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"mensa/internal/auth"
	"mensa/internal/cache"
	"mensa/internal/common"
	"mensa/internal/config"
	"mensa/internal/logger"
	"mensa/internal/obs"
	"mensa/internal/openmensa"
	v0common "mensa/internal/v0/common"
	"mensa/internal/v0/food"
)

func main() {
	envErr := godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	log := logger.Init(logger.Options{Level: cfg.LogLevel, Format: cfg.LogFormat})
	if envErr != nil {
		log.Info("No .env file found, using system environment variables")
	}

	// Cancelled on SIGINT/SIGTERM, stops the background goroutines
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	metrics := obs.NewMetrics()

	// Meal cache, swept in the background
	mealCache := cache.NewLocal[[]openmensa.Meal](nil)
	mealCache.Start(ctx, cfg.CacheSweepInterval, logger.WithComponent(log, "cache"))

	// Upstream
	mensaClient := openmensa.NewClient(
		cfg.OpenMensaBase,
		&http.Client{Timeout: cfg.UpstreamTimeout},
		logger.WithComponent(log, "openmensa"),
		metrics,
	)
	mealRepo := food.NewRepository(mealCache, mensaClient, cfg.CacheTTL, time.Now, logger.WithComponent(log, "meals"), metrics)
	foodHandler := food.NewHandler(
		mealRepo,
		food.HandlerConfig{
			CanteenID:  cfg.CanteenID,
			IntentName: cfg.IntentName,
			Location:   cfg.Location(),
			Debug:      cfg.Debug,
		},
		time.Now,
		logger.WithComponent(log, "webhook"),
		metrics,
	)

	// Webhook access
	tokens := auth.NewTokenSet(cfg.WebhookTokenHashes)
	if !tokens.Enabled() {
		log.Warn("no webhook token hashes configured, the webhook accepts unauthenticated requests")
	}
	allowList, err := auth.NewAllowList(cfg.AllowedIPs)
	if err != nil {
		log.Error("invalid webhook IP allow-list", "error", err)
		os.Exit(1)
	}
	usageTracker := auth.NewUsageTracker(nil)
	usageTracker.Start(ctx)
	authMiddleware := auth.NewMiddleware(tokens, allowList, usageTracker, cfg.RateLimitRPM, logger.WithComponent(log, "auth"))

	gin.SetMode(cfg.GinMode)
	router := gin.Default()
	router.Use(v0common.RequestIDMiddleware())

	// Global routes
	global := router.Group("/api")
	common.RegisterRoutes(global, common.StatusHandler(cfg.CanteenID, mealCache), metrics.Handler())

	// Fulfillment webhook
	food.RegisterRoutes(router.Group(""), foodHandler, authMiddleware)

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info("Server listening", "addr", srv.Addr, "canteen_id", cfg.CanteenID)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	log.Info("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
	}
	usageTracker.Stop()
}

//This project is the webhook backend of the OpenSourceDUTH canteen assistant. It answers "what is served on day D" from open canteen data.
//Mensa Webhook Copyright (C) 2025 OpenSourceDUTH
//This program is free software: you can redistribute it and/or modify
//it under the terms of the GNU General Public License as published by
//the Free Software Foundation, either version 3 of the License, or
//(at your option) any later version.
//
//This program is distributed in the hope that it will be useful,
//but WITHOUT ANY WARRANTY; without even the implied warranty of
//MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
//GNU General Public License for more details.
//
//You should have received a copy of the GNU General Public License
//along with this program.  If not, see <https://www.gnu.org/licenses/>.
