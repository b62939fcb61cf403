package main

import (
	"log"
	"os"

	"diary/internal/config"
	"diary/internal/logging"
	"diary/internal/mcp"

	_ "github.com/joho/godotenv/autoload"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Stdout carries the protocol, so logs go to stderr.
	logger := logging.New(cfg.LogLevel, cfg.LogFile, os.Stderr)
	defer logger.Sync() //nolint:errcheck

	server := mcp.NewServer(cfg.DiaryAPIURL, nil, os.Stdin, os.Stdout, logger)

	logger.Infof("MCP server starting, forwarding to %s", cfg.DiaryAPIURL)
	if err := server.Serve(); err != nil {
		logger.Fatalf("mcp server failed: %v", err)
	}
}
