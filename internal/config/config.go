package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	Port      string
	Database  DatabaseConfig
	Gemini    GeminiConfig
	Review    ReviewConfig
	Scraper   ScraperConfig
	Discovery DiscoveryConfig
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host     string
	Port     string
	Username string
	Password string
	Database string
}

// GeminiConfig selects the LLM backing the discovery agents. An empty
// APIKey disables the agents; the service still serves persisted data
// and the review round trip.
type GeminiConfig struct {
	APIKey string
	Model  string
}

// ReviewConfig holds the human review batch settings
type ReviewConfig struct {
	Dir          string
	MaxBatchSize int
}

// ScraperConfig points at the product collector service
type ScraperConfig struct {
	CollectorURL string
}

// DiscoveryConfig holds the default discovery inputs
type DiscoveryConfig struct {
	Country string
	Period  string
	Niche   string
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	return &Config{
		Port: getEnv("PORT", "8080"),
		Database: DatabaseConfig{
			Host:     getEnv("PG_HOST", "localhost"),
			Port:     getEnv("PG_PORT", "5432"),
			Username: getEnv("PG_USERNAME", "postgres"),
			Password: os.Getenv("PG_PASSWORD"),
			Database: getEnv("PG_DATABASE", "affiscout"),
		},
		Gemini: GeminiConfig{
			APIKey: os.Getenv("GEMINI_API_KEY"),
			Model:  getEnv("GEMINI_MODEL", "gemini-3-flash-preview"),
		},
		Review: ReviewConfig{
			Dir:          getEnv("REVIEW_DIR", "./review_batches"),
			MaxBatchSize: getEnvInt("REVIEW_MAX_BATCH_SIZE", 100),
		},
		Scraper: ScraperConfig{
			CollectorURL: os.Getenv("COLLECTOR_URL"),
		},
		Discovery: DiscoveryConfig{
			Country: getEnv("DISCOVERY_COUNTRY", "Brasil"),
			Period:  getEnv("DISCOVERY_PERIOD", "junho de 2024 a maio 2025"),
			Niche:   getEnv("DISCOVERY_NICHE", "produtos infantis"),
		},
	}, nil
}

// getEnv gets environment variable with default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}
