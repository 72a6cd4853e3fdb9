package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	log "github.com/sirupsen/logrus"

	"codecoach-backend/internal/config"
	"codecoach-backend/internal/handlers"
	"codecoach-backend/internal/router"
	"codecoach-backend/internal/services"
)

func main() {
	log.Println("🚀 Starting Code Coach Backend...")

	// ──── Step 1: Load Environment Variables ────
	cfg := config.Load()
	log.Println("✓ Environment variables loaded")

	// ──── Step 2: Initialize OpenAI Agent Service ────
	agentService := services.NewAgentService(
		cfg.OpenAIAPIKey,
		cfg.OpenAIModel,
		cfg.OpenAITemperature,
		cfg.OpenAIMaxTokens,
		cfg.ChatMaxTurns,
		cfg.ChatMaxContentChars,
	)
	log.Printf("✓ OpenAI client initialized (model: %s)", cfg.OpenAIModel)

	// ──── Step 3: Initialize Handlers ────
	chatHandler := handlers.NewChatHandler(agentService)

	// ──── Step 4: Start HTTP Server ────
	r := router.New(chatHandler, cfg.FrontendURL)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		log.Println("Shutting down...")

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		server.Shutdown(ctx)
	}()

	log.Printf("✓ Code Coach Backend ready on http://localhost:%s", cfg.Port)
	log.Printf("  API: http://localhost:%s/api/v1", cfg.Port)

	if err := server.ListenAndServe(); err != http.ErrServerClosed {
		log.Fatalf("Server error: %v", err)
	}
}
