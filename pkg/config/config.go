package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerPort  string
	BaseURL     string
	Environment string

	DatabasePath string

	// "local" or "s3"
	StorageBackend string
	StorageRoot    string
	TempDir        string

	S3Endpoint  string
	S3Region    string
	S3Bucket    string
	S3AccessKey string
	S3SecretKey string

	// Bounded concurrency for image codec work.
	PreviewWorkers int

	// Objects unreferenced by any database row and older than this many
	// hours are removed by the reconciliation sweep.
	OrphanGraceHours int
}

func Load() (*Config, error) {
	godotenv.Load()

	config := &Config{
		ServerPort:  getEnv("SERVER_PORT", "8080"),
		BaseURL:     getEnv("BASE_URL", "http://localhost:8080"),
		Environment: getEnv("ENVIRONMENT", "development"),

		DatabasePath: getEnv("DATABASE_PATH", "data/sharebin.db"),

		StorageBackend: getEnv("STORAGE_BACKEND", "local"),
		StorageRoot:    getEnv("STORAGE_ROOT", "data/objects"),
		TempDir:        getEnv("TEMP_DIR", os.TempDir()),

		S3Endpoint:  getEnv("S3_ENDPOINT", ""),
		S3Region:    getEnv("S3_REGION", "us-east-1"),
		S3Bucket:    getEnv("S3_BUCKET", ""),
		S3AccessKey: getEnv("S3_ACCESS_KEY", ""),
		S3SecretKey: getEnv("S3_SECRET_KEY", ""),

		PreviewWorkers:   getEnvAsInt("PREVIEW_WORKERS", 4),
		OrphanGraceHours: getEnvAsInt("ORPHAN_GRACE_HOURS", 24),
	}

	return config, nil
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		intValue, err := strconv.Atoi(value)
		if err == nil {
			return intValue
		}
	}
	return defaultValue
}
