package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"diary/internal/config"
	"diary/internal/logging"
	"diary/internal/pkg/diary"
	"diary/internal/pkg/openai"
	"diary/internal/routes"
	"diary/internal/session"
	"diary/internal/store"

	_ "github.com/joho/godotenv/autoload"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger := logging.NewStdout(cfg.LogLevel, cfg.LogFile)
	defer logger.Sync() //nolint:errcheck

	client, err := openai.New(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL)
	if err != nil {
		logger.Fatalf("Failed to create OpenAI client: %v", err)
	}

	// The gift page saves analyses like the API when a store is configured.
	diaryStore, err := store.FromConfig(cfg)
	if errors.Is(err, store.ErrNoStore) {
		logger.Warn("No diary store configured, gift page analyses will not be saved")
		diaryStore = nil
	} else if err != nil {
		logger.Fatalf("Failed to set up diary store: %v", err)
	}

	sessions := session.NewStore(session.DefaultTTL)
	go sessions.Run(context.Background(), 5*time.Minute)

	analyzer := diary.NewAnalyzer(client, client, diary.ModelsFromConfig(cfg))
	downloads := &http.Client{Timeout: 30 * time.Second}

	router, err := routes.SetupWebRouter(analyzer, sessions, diaryStore, downloads, logger)
	if err != nil {
		logger.Fatalf("Failed to load templates: %v", err)
	}

	serverAddr := fmt.Sprintf(":%s", cfg.PortOr("8080"))
	logger.Infof("Starting diary page on %s", serverAddr)
	if err := router.Run(serverAddr); err != nil {
		logger.Fatalf("Failed to start server: %v", err)
	}
}
