package config

import (
	"os"
	"strconv"
)

// Config holds the externally configured settings for the CityFix API.
type Config struct {
	Port             string
	BaseURL          string // public base URL used to build display image URLs
	UploadDir        string
	StorageDriver    string // "disk" or "mongo"
	AIServiceURL     string // external classifier endpoint; empty means mock only
	ReportDailyLimit int
}

// LoadConfig reads configuration from the environment with sensible defaults.
func LoadConfig() Config {
	cfg := Config{
		Port:             getEnv("PORT", "8080"),
		BaseURL:          getEnv("BASE_URL", "http://localhost:8080"),
		UploadDir:        getEnv("UPLOAD_DIR", "uploads"),
		StorageDriver:    getEnv("STORAGE_DRIVER", "disk"),
		AIServiceURL:     os.Getenv("AI_URL"),
		ReportDailyLimit: 20,
	}

	if v := os.Getenv("REPORT_DAILY_LIMIT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.ReportDailyLimit = n
		}
	}

	return cfg
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
