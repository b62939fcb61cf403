package main

import (
	"fmt"
	"log"

	"diary/internal/config"
	"diary/internal/logging"
	"diary/internal/pkg/diary"
	"diary/internal/pkg/openai"
	"diary/internal/routes"
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

	diaryStore, err := store.FromConfig(cfg)
	if err != nil {
		logger.Fatalf("Failed to set up diary store: %v", err)
	}

	analyzer := diary.NewAnalyzer(client, client, diary.ModelsFromConfig(cfg))
	router := routes.SetupRouter(cfg, analyzer, diaryStore, logger)

	serverAddr := fmt.Sprintf(":%s", cfg.PortOr("8000"))
	logger.Infof("Starting API server on %s", serverAddr)
	if err := router.Run(serverAddr); err != nil {
		logger.Fatalf("Failed to start server: %v", err)
	}
}
