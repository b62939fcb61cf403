package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	OpenAIAPIKey  string
	OpenAIBaseURL string

	// models used by each step of the pipeline
	AnalysisModel     string
	ImagePromptModel  string
	GiftAnalysisModel string
	ImageModel        string
	APIImageModel     string
	Temperature       float64

	DatabaseURL        string
	SupabaseURL        string
	SupabaseServiceKey string
	AutoMigrate        bool

	Port        string
	CORSOrigins []string
	LogLevel    string
	LogFile     string

	DiaryAPIURL string
}

// LoadConfig reads configuration from environment variables (.env file)
func LoadConfig() (*Config, error) {
	// Load .env file. In production, env variables are often set directly.
	_ = godotenv.Load()

	temperature, err := strconv.ParseFloat(getEnv("TEMPERATURE", "0.7"), 64)
	if err != nil {
		return nil, err
	}

	return &Config{
		OpenAIAPIKey:       getEnv("OPENAI_API_KEY", ""),
		OpenAIBaseURL:      getEnv("OPENAI_BASE_URL", ""),
		AnalysisModel:      getEnv("ANALYSIS_MODEL", "gpt-4o-mini"),
		ImagePromptModel:   getEnv("IMAGE_PROMPT_MODEL", "gpt-4o"),
		GiftAnalysisModel:  getEnv("GIFT_ANALYSIS_MODEL", "gpt-4o"),
		ImageModel:         getEnv("IMAGE_MODEL", "dall-e-3"),
		APIImageModel:      getEnv("API_IMAGE_MODEL", "dall-e-2"),
		Temperature:        temperature,
		DatabaseURL:        getEnv("DATABASE_URL", ""),
		SupabaseURL:        getEnv("SUPABASE_URL", ""),
		SupabaseServiceKey: getEnv("SUPABASE_SERVICE_KEY", ""),
		AutoMigrate:        getEnv("AUTO_MIGRATE", "false") == "true",
		Port:               getEnv("PORT", ""),
		CORSOrigins:        splitList(getEnv("CORS_ORIGINS", "*")),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		LogFile:            getEnv("LOG_FILE", ""),
		DiaryAPIURL:        getEnv("DIARY_API_URL", "http://localhost:8000"),
	}, nil
}

// PortOr returns the configured port, or fallback when PORT is unset.
func (c *Config) PortOr(fallback string) string {
	if c.Port == "" {
		return fallback
	}
	return c.Port
}

// Helper function to get env var or return default
func getEnv(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
