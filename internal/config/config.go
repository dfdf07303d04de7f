package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds the full application configuration, populated from
// environment variables.
type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Redis    RedisConfig
	JWT      JWTConfig
	TMDB     TMDBConfig
	OMDB     OMDBConfig
	Books    BooksConfig
	ITunes   ITunesConfig
	LLM      LLMConfig
	Jobs     JobsConfig
}

type AppConfig struct {
	Name        string
	Environment string // development, staging, production
	Port        string
	Version     string
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
	SSLMode  string
	MaxConns int
	MinConns int
}

type RedisConfig struct {
	Host     string
	Password string
	DB       int
}

type JWTConfig struct {
	Secret             string
	AccessTokenExpiry  int // minutes
	RefreshTokenExpiry int // hours
}

// TMDBConfig covers both movie and TV lookups.
type TMDBConfig struct {
	APIKey   string
	BaseURL  string
	ImageURL string
}

type OMDBConfig struct {
	APIKey  string
	BaseURL string
}

// BooksConfig holds the two book metadata sources. Open Library needs no key.
type BooksConfig struct {
	OpenLibraryURL string
	CoversURL      string
	GoogleBooksURL string
}

type ITunesConfig struct {
	BaseURL string
}

// LLMConfig points at an OpenAI-compatible completions endpoint for the
// genre classifier. An empty APIKey disables deduction.
type LLMConfig struct {
	BaseURL string
	APIKey  string
	Model   string
}

type JobsConfig struct {
	SweepCron      string
	SweepBatchSize int
}

// Load reads config from environment variables.
func Load() (*Config, error) {
	cfg := &Config{
		App: AppConfig{
			Name:        getEnv("APP_NAME", "Mediashelf API"),
			Environment: getEnv("APP_ENV", "development"),
			Port:        getEnv("APP_PORT", "8080"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnvInt("DB_PORT", 5432),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", ""),
			Database: getEnv("DB_NAME", "mediashelf"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
			MaxConns: getEnvInt("DB_MAX_CONNS", 25),
			MinConns: getEnvInt("DB_MIN_CONNS", 5),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		JWT: JWTConfig{
			Secret:             getEnv("JWT_SECRET", "your-secret-key-change-in-production"),
			AccessTokenExpiry:  getEnvInt("JWT_ACCESS_EXPIRY", 15),
			RefreshTokenExpiry: getEnvInt("JWT_REFRESH_EXPIRY", 72),
		},
		TMDB: TMDBConfig{
			APIKey:   getEnv("TMDB_API_KEY", ""),
			BaseURL:  getEnv("TMDB_BASE_URL", "https://api.themoviedb.org/3"),
			ImageURL: getEnv("TMDB_IMAGE_URL", "https://image.tmdb.org/t/p/w500"),
		},
		OMDB: OMDBConfig{
			APIKey:  getEnv("OMDB_API_KEY", ""),
			BaseURL: getEnv("OMDB_BASE_URL", "https://www.omdbapi.com"),
		},
		Books: BooksConfig{
			OpenLibraryURL: getEnv("OPENLIBRARY_BASE_URL", "https://openlibrary.org"),
			CoversURL:      getEnv("OPENLIBRARY_COVERS_URL", "https://covers.openlibrary.org"),
			GoogleBooksURL: getEnv("GOOGLE_BOOKS_BASE_URL", "https://www.googleapis.com/books/v1"),
		},
		ITunes: ITunesConfig{
			BaseURL: getEnv("ITUNES_BASE_URL", "https://itunes.apple.com"),
		},
		LLM: LLMConfig{
			BaseURL: getEnv("LLM_BASE_URL", "https://api.openai.com/v1"),
			APIKey:  getEnv("LLM_API_KEY", ""),
			Model:   getEnv("LLM_MODEL", "gpt-4o-mini"),
		},
		Jobs: JobsConfig{
			SweepCron:      getEnv("SWEEP_CRON", "0 3 * * *"),
			SweepBatchSize: getEnvInt("SWEEP_BATCH_SIZE", 25),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.App.Environment == "production" {
		if c.JWT.Secret == "your-secret-key-change-in-production" {
			return fmt.Errorf("JWT_SECRET must be set in production")
		}
		if c.Database.Password == "" {
			return fmt.Errorf("DB_PASSWORD must be set in production")
		}
		if c.TMDB.APIKey == "" {
			fmt.Println("WARNING: TMDB_API_KEY not set - movie and TV enrichment will return empty results")
		}
		if c.LLM.APIKey == "" {
			fmt.Println("WARNING: LLM_API_KEY not set - genre deduction disabled")
		}
	}
	return nil
}

// Helper functions
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}
