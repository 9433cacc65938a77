package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Addr                     string        `yaml:"addr"`
	Environment              string        `yaml:"env"`
	LogLevel                 string        `yaml:"log_level"`
	MongoURI                 string        `yaml:"mongo_uri"`
	MongoDatabase            string        `yaml:"mongo_db"`
	EmployeeCollection       string        `yaml:"employee_collection"`
	MongoTimeout             time.Duration `yaml:"mongo_timeout"`
	DatabaseURL              string        `yaml:"database_url"`
	RunMigrations            bool          `yaml:"run_migrations"`
	JWTSecret                string        `yaml:"jwt_secret"`
	AccessTokenExpireMinutes int           `yaml:"access_token_expire_minutes"`
	SeedAdminUsername        string        `yaml:"seed_admin_username"`
	SeedAdminPassword        string        `yaml:"seed_admin_password"`
	MaxBodyBytes             int64         `yaml:"max_body_bytes"`
	ShutdownTimeout          time.Duration `yaml:"shutdown_timeout"`
	MetricsEnabled           bool          `yaml:"metrics_enabled"`
}

func defaults() Config {
	return Config{
		Addr:                     ":8000",
		Environment:              "development",
		LogLevel:                 "info",
		MongoURI:                 "mongodb://localhost:27017",
		MongoDatabase:            "assessment_db",
		EmployeeCollection:       "employees",
		MongoTimeout:             10 * time.Second,
		RunMigrations:            true,
		AccessTokenExpireMinutes: 30,
		MaxBodyBytes:             1048576,
		ShutdownTimeout:          15 * time.Second,
		MetricsEnabled:           true,
	}
}

// Load resolves configuration from built-in defaults, then the YAML file named by
// CONFIG_FILE, then the environment. A .env file in the working directory is read first.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		slog.Warn("could not read .env file", "err", err)
	}

	cfg := defaults()
	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := loadFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}

	cfg.Addr = getEnv("APP_ADDR", cfg.Addr)
	cfg.Environment = getEnv("APP_ENV", cfg.Environment)
	cfg.LogLevel = getEnv("LOG_LEVEL", cfg.LogLevel)
	cfg.MongoURI = getEnv("MONGO_URI", cfg.MongoURI)
	cfg.MongoDatabase = getEnv("MONGO_DB", cfg.MongoDatabase)
	cfg.EmployeeCollection = getEnv("EMP_COLLECTION", cfg.EmployeeCollection)
	cfg.MongoTimeout = getEnvDuration("MONGO_TIMEOUT", cfg.MongoTimeout)
	cfg.DatabaseURL = getEnv("DATABASE_URL", cfg.DatabaseURL)
	cfg.RunMigrations = getEnvBool("RUN_MIGRATIONS", cfg.RunMigrations)
	cfg.JWTSecret = getEnv("JWT_SECRET", cfg.JWTSecret)
	cfg.AccessTokenExpireMinutes = getEnvInt("ACCESS_TOKEN_EXPIRE_MINUTES", cfg.AccessTokenExpireMinutes)
	cfg.SeedAdminUsername = getEnv("SEED_ADMIN_USERNAME", cfg.SeedAdminUsername)
	cfg.SeedAdminPassword = getEnv("SEED_ADMIN_PASSWORD", cfg.SeedAdminPassword)
	cfg.MaxBodyBytes = int64(getEnvInt("MAX_BODY_BYTES", int(cfg.MaxBodyBytes)))
	cfg.ShutdownTimeout = getEnvDuration("SHUTDOWN_TIMEOUT", cfg.ShutdownTimeout)
	cfg.MetricsEnabled = getEnvBool("METRICS_ENABLED", cfg.MetricsEnabled)
	return cfg, nil
}

func loadFile(path string, cfg *Config) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(raw, cfg); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	return nil
}

func (c Config) AccessTokenTTL() time.Duration {
	return time.Duration(c.AccessTokenExpireMinutes) * time.Minute
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.JWTSecret) == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	if strings.TrimSpace(c.MongoURI) == "" {
		return fmt.Errorf("MONGO_URI is required")
	}
	if strings.TrimSpace(c.MongoDatabase) == "" || strings.TrimSpace(c.EmployeeCollection) == "" {
		return fmt.Errorf("MONGO_DB and EMP_COLLECTION must not be empty")
	}
	if c.MongoTimeout <= 0 {
		return fmt.Errorf("MONGO_TIMEOUT must be positive")
	}
	if c.AccessTokenExpireMinutes <= 0 {
		return fmt.Errorf("ACCESS_TOKEN_EXPIRE_MINUTES must be positive")
	}
	if c.MaxBodyBytes < 1024 {
		return fmt.Errorf("MAX_BODY_BYTES must be at least 1024")
	}
	if c.ShutdownTimeout <= 0 {
		return fmt.Errorf("SHUTDOWN_TIMEOUT must be positive")
	}
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("LOG_LEVEL must be one of debug, info, warn, error")
	}
	if c.Environment == "production" {
		if len(c.JWTSecret) < 32 {
			return fmt.Errorf("JWT_SECRET must be at least 32 characters in production")
		}
		if c.SeedAdminPassword != "" && c.SeedAdminPassword == "admin123" {
			return fmt.Errorf("SEED_ADMIN_PASSWORD must be changed in production")
		}
	}
	return nil
}
