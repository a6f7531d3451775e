package config

import (
	"fmt"
	"os"
	"strconv"
)

// Storage backends
const (
	BackendPostgres = "postgres"
	BackendMemory   = "memory"
	BackendRedis    = "redis"
)

type Config struct {
	// Application
	AppEnv   string
	LogLevel string

	// Storage
	StoreBackend    string
	RelationBackend string

	// Database
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// Redis
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int

	// Ranking
	TopFilmsDefault int
}

func LoadConfig() (*Config, error) {
	cfg := &Config{
		AppEnv:   getEnv("APP_ENV", "development"),
		LogLevel: getEnv("LOG_LEVEL", "info"),

		StoreBackend: getEnv("STORE_BACKEND", BackendPostgres),

		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "filmorate"),
		DBPassword: getEnv("DB_PASSWORD", ""),
		DBName:     getEnv("DB_NAME", "filmorate"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),

		RedisHost:     getEnv("REDIS_HOST", "localhost"),
		RedisPort:     getEnv("REDIS_PORT", "6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getEnvInt("REDIS_DB", 0),

		TopFilmsDefault: getEnvInt("TOP_FILMS_DEFAULT", 10),
	}

	// Relations live next to the entities unless told otherwise
	cfg.RelationBackend = getEnv("RELATION_BACKEND", cfg.StoreBackend)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	switch c.StoreBackend {
	case BackendPostgres, BackendMemory:
	default:
		return fmt.Errorf("STORE_BACKEND must be %q or %q, got %q", BackendPostgres, BackendMemory, c.StoreBackend)
	}

	switch c.RelationBackend {
	case BackendPostgres, BackendMemory, BackendRedis:
	default:
		return fmt.Errorf("RELATION_BACKEND must be %q, %q or %q, got %q", BackendPostgres, BackendRedis, BackendMemory, c.RelationBackend)
	}

	// Relations in memory would not survive next to durable entities, and vice versa
	if c.StoreBackend == BackendMemory && c.RelationBackend != BackendMemory {
		return fmt.Errorf("RELATION_BACKEND must be %q when STORE_BACKEND is %q", BackendMemory, BackendMemory)
	}
	if c.StoreBackend == BackendPostgres && c.RelationBackend == BackendMemory {
		return fmt.Errorf("RELATION_BACKEND cannot be %q when STORE_BACKEND is %q", BackendMemory, BackendPostgres)
	}

	if c.UsesPostgres() && c.DBPassword == "" {
		return fmt.Errorf("DB_PASSWORD is required")
	}
	if c.TopFilmsDefault <= 0 {
		return fmt.Errorf("TOP_FILMS_DEFAULT must be positive")
	}
	return nil
}

func (c *Config) ValidateProductionSecurity() error {
	if c.AppEnv != "production" {
		return nil
	}

	if c.UsesPostgres() && c.DBSSLMode != "require" {
		return fmt.Errorf("DB_SSLMODE must be 'require' in production")
	}
	if c.RelationBackend == BackendRedis && c.RedisPassword == "" {
		return fmt.Errorf("REDIS_PASSWORD must be set in production")
	}
	if c.StoreBackend == BackendMemory {
		return fmt.Errorf("STORE_BACKEND %q is not allowed in production", BackendMemory)
	}

	return nil
}

func (c *Config) UsesPostgres() bool {
	return c.StoreBackend == BackendPostgres
}

func (c *Config) GetDSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSSLMode,
	)
}

func (c *Config) GetRedisAddr() string {
	return c.RedisHost + ":" + c.RedisPort
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}
