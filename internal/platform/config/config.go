package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type ServerConfig struct {
	Port string
}

type MongoConfig struct {
	URI      string
	Database string
}

type UploadConfig struct {
	Dir string
}

type ReportConfig struct {
	FacetLimit int
}

// Load reads an optional .env file before any config section is built.
// Missing .env is fine, real environments set variables directly.
func Load() {
	_ = godotenv.Load()
}

func LoadMongoConfig() MongoConfig {
	return MongoConfig{
		URI:      GetEnv("MONGO_URI", "mongodb://127.0.0.1:27017"),
		Database: GetEnv("MONGO_DATABASE", "inventory"),
	}
}

func LoadServerConfig(defaultPort string) ServerConfig {
	port := GetEnv("SERVER_PORT", defaultPort)
	return ServerConfig{Port: ":" + port}
}

func LoadUploadConfig() UploadConfig {
	return UploadConfig{
		Dir: GetEnv("UPLOAD_DIR", "uploads"),
	}
}

func LoadReportConfig() ReportConfig {
	return ReportConfig{
		FacetLimit: GetEnvAsInt("REPORT_FACET_LIMIT", 10),
	}
}

func GetEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func GetEnvAsInt(key string, fallback int) int {
	strValue := GetEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}
