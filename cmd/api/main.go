package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/madoxlx/EGTV3-sub011/internal/adapter/handler"
	"github.com/madoxlx/EGTV3-sub011/internal/adapter/repository/postgres"
	"github.com/madoxlx/EGTV3-sub011/internal/core/services"
	"github.com/madoxlx/EGTV3-sub011/internal/platform/cache"
	"github.com/madoxlx/EGTV3-sub011/internal/platform/config"
	"github.com/madoxlx/EGTV3-sub011/internal/platform/database"
)

func main() {
	cfg := config.Load()

	db, err := database.NewPostgresDB(cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to db after retries: %v", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(5 * time.Minute)
	defer db.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := database.ApplySchema(ctx, db, cfg.SchemaPath); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			log.Printf("Schema file %s not found, skipping schema bootstrap", cfg.SchemaPath)
		} else {
			log.Fatalf("Failed to apply schema: %v", err)
		}
	}

	redisClient, err := cache.NewRedisClient(ctx, cfg.Redis)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer redisClient.Close()

	roomTypeRepo := postgres.NewRoomTypeRepository(db)
	quoteRepo := postgres.NewQuoteRepository(db)

	allocationService := services.NewAllocationService(roomTypeRepo, quoteRepo, redisClient, services.Config{
		QuoteTTL:        cfg.QuoteTTL,
		CacheTTL:        cfg.CacheTTL,
		CleanupInterval: cfg.CleanupInterval,
	})

	allocationHandler := handler.NewAllocationHandler(allocationService)

	go allocationService.RunBackgroundCleanup(ctx)

	mux := http.NewServeMux()
	allocationHandler.Routes(mux)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      mux,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.Printf("Server starting on %s", cfg.HTTPAddr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server startup failed: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exiting")
}
