package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Storage  StorageConfig
	Firebase FirebaseConfig
	App      AppConfig
	Jobs     JobsConfig
}

type ServerConfig struct {
	Port           string
	AllowedOrigins []string
	// MaxUploadMB caps the body of admin project requests.
	MaxUploadMB    int
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// StorageConfig describes the bucket project images are written to.
// Driver "memory" keeps objects in process and is meant for local runs.
type StorageConfig struct {
	Driver          string
	Bucket          string
	Region          string
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
	PublicBaseURL   string
	CacheControl    string
}

type FirebaseConfig struct {
	CredentialsPath string
	WebAPIKey       string
}

type AppConfig struct {
	Environment string
	LogLevel    string
	Version     string
	SessionFile string
}

type JobsConfig struct {
	OrphanAuditSchedule string
}

func Load() (*Config, error) {
	// Load .env file if it exists (ignore error in production)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:           getEnv("PORT", "8080"),
			AllowedOrigins: getEnvAsList("ALLOWED_ORIGINS", []string{"http://localhost:3000"}),
			MaxUploadMB:    getEnvAsInt("MAX_UPLOAD_MB", 32),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnvAsInt("DB_PORT", 5432),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", ""),
			Name:     getEnv("DB_NAME", "portfolio"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", ""),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
		},
		Storage: StorageConfig{
			Driver:          getEnv("STORAGE_DRIVER", "s3"),
			Bucket:          getEnv("STORAGE_BUCKET", "projects"),
			Region:          getEnv("STORAGE_REGION", "us-east-1"),
			Endpoint:        getEnv("STORAGE_ENDPOINT", ""),
			AccessKeyID:     getEnv("STORAGE_ACCESS_KEY_ID", ""),
			SecretAccessKey: getEnv("STORAGE_SECRET_ACCESS_KEY", ""),
			PublicBaseURL:   strings.TrimRight(getEnv("STORAGE_PUBLIC_BASE_URL", ""), "/"),
			CacheControl:    getEnv("STORAGE_CACHE_CONTROL", "max-age=3600"),
		},
		Firebase: FirebaseConfig{
			CredentialsPath: getEnv("FIREBASE_CREDENTIALS_PATH", ""),
			WebAPIKey:       getEnv("FIREBASE_WEB_API_KEY", ""),
		},
		App: AppConfig{
			Environment: getEnv("APP_ENV", "development"),
			LogLevel:    getEnv("LOG_LEVEL", "info"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
			SessionFile: getEnv("ADMIN_SESSION_FILE", defaultSessionFile()),
		},
		Jobs: JobsConfig{
			OrphanAuditSchedule: getEnv("ORPHAN_AUDIT_SCHEDULE", ""),
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

	switch c.Storage.Driver {
	case "s3":
		if c.Storage.Bucket == "" {
			return fmt.Errorf("STORAGE_BUCKET is required")
		}
		if c.Storage.PublicBaseURL == "" {
			return fmt.Errorf("STORAGE_PUBLIC_BASE_URL is required")
		}
	case "memory":
	default:
		return fmt.Errorf("unknown STORAGE_DRIVER %q", c.Storage.Driver)
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

func getEnvAsList(key string, defaultValue []string) []string {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	var out []string
	for _, v := range strings.Split(valueStr, ",") {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func defaultSessionFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".portfolio-session.yaml"
	}
	return filepath.Join(home, ".portfolio", "session.yaml")
}
