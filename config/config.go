package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server      ServerConfig
	Database    DatabaseConfig
	Redis       RedisConfig
	Auth        AuthConfig
	Embedding   EmbeddingConfig
	Originality OriginalityConfig
	Weather     WeatherConfig
	App         AppConfig
}

type ServerConfig struct {
	Port           string
	FrontendOrigin string
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type AuthConfig struct {
	JWTSecret     string
	TokenLifetime time.Duration
}

type EmbeddingConfig struct {
	BaseURL  string
	Model    string
	APIKey   string
	CacheTTL time.Duration
}

type OriginalityConfig struct {
	Threshold float64
	Neighbors int
}

type WeatherConfig struct {
	APIKey    string
	Latitude  float64
	Longitude float64
}

type AppConfig struct {
	Environment string
	Version     string
}

func Load() (*Config, error) {
	// Load .env file if it exists (ignore error in production)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:           getEnv("PORT", "8080"),
			FrontendOrigin: getEnv("FRONTEND_ORIGIN", "http://localhost:3000"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnvAsInt("DB_PORT", 5432),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", ""),
			Name:     getEnv("DB_NAME", "projecthub"),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", ""),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
		},
		Auth: AuthConfig{
			JWTSecret:     getEnv("JWT_SECRET", ""),
			TokenLifetime: time.Duration(getEnvAsInt("TOKEN_LIFETIME_MINUTES", 60)) * time.Minute,
		},
		Embedding: EmbeddingConfig{
			BaseURL:  getEnv("EMBEDDING_BASE_URL", "https://api.openai.com/v1"),
			Model:    getEnv("EMBEDDING_MODEL", "text-embedding-3-small"),
			APIKey:   getEnv("OPENAI_API_KEY", ""),
			CacheTTL: time.Duration(getEnvAsInt("EMBEDDING_CACHE_TTL_HOURS", 24)) * time.Hour,
		},
		Originality: OriginalityConfig{
			Threshold: getEnvAsFloat("SIMILARITY_THRESHOLD", 0.8),
			Neighbors: getEnvAsInt("SIMILARITY_NEIGHBORS", 3),
		},
		Weather: WeatherConfig{
			APIKey:    getEnv("OPENWEATHER_API_KEY", ""),
			Latitude:  getEnvAsFloat("WEATHER_LAT", 12.9716),
			Longitude: getEnvAsFloat("WEATHER_LON", 77.5946),
		},
		App: AppConfig{
			Environment: getEnv("APP_ENV", "development"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("PORT is required")
	}

	if c.Database.Host == "" {
		return fmt.Errorf("DB_HOST is required")
	}

	if c.Auth.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}

	if c.Originality.Neighbors <= 0 {
		return fmt.Errorf("SIMILARITY_NEIGHBORS must be positive")
	}

	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("Warning: Invalid integer for %s, using default: %d", key, defaultValue)
		return defaultValue
	}

	return value
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		log.Printf("Warning: Invalid float for %s, using default: %g", key, defaultValue)
		return defaultValue
	}

	return value
}
