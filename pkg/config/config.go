package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Pipeline PipelineConfig
	Authors  AuthorsConfig
}

type ServerConfig struct {
	Port         string
	Mode         string
	ReadTimeout  int
	WriteTimeout int
}

type DatabaseConfig struct {
	Path string
}

type PipelineConfig struct {
	ContentDir    string
	ReportPath    string
	BuildWorkers  int
	AuthorWorkers int
}

type AuthorsConfig struct {
	SnapshotPath  string
	CutoffDate    string
	NoreplyDomain string
}

var AppConfig *Config

// Load loads configuration from .env file and environment variables
func Load() error {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	AppConfig = &Config{
		Server: ServerConfig{
			Port:         getEnv("PORT", "8080"),
			Mode:         getEnv("GIN_MODE", "release"),
			ReadTimeout:  getEnvAsInt("READ_TIMEOUT", 15),
			WriteTimeout: getEnvAsInt("WRITE_TIMEOUT", 15),
		},
		Database: DatabaseConfig{
			Path: getEnv("DB_PATH", "./extpipe.db"),
		},
		Pipeline: PipelineConfig{
			ContentDir:    getEnv("CONTENT_DIR", "./extensions"),
			ReportPath:    getEnv("REPORT_PATH", "./build-report.html"),
			BuildWorkers:  getEnvAsInt("BUILD_WORKERS", 2),
			AuthorWorkers: getEnvAsInt("AUTHOR_WORKERS", 2),
		},
		Authors: AuthorsConfig{
			SnapshotPath:  getEnv("SNAPSHOT_PATH", "./contributors.json"),
			CutoffDate:    getEnv("CUTOFF_DATE", "2024-01-01"),
			NoreplyDomain: getEnv("NOREPLY_DOMAIN", "users.noreply.github.com"),
		},
	}

	return nil
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt gets an environment variable as integer or returns a default value
func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
