package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds every runtime setting the server reads from the environment.
type Config struct {
	Port           string
	MongoURI       string
	MongoDB        string
	ProductPerPage int
	UploadDir      string
	CORSOrigins    []string
}

// Load reads .env if present and builds the config with fallbacks.
func Load() Config {
	// Missing .env is fine, env vars may be set by the host.
	_ = godotenv.Load()

	mongoURI := GetEnv("MONGO_PUBLIC_URL", "")
	if mongoURI == "" {
		mongoURI = GetEnv("MONGO_URI", "mongodb://localhost:27017")
	}

	return Config{
		Port:           GetEnv("PORT", "4000"),
		MongoURI:       mongoURI,
		MongoDB:        GetEnv("MONGO_DB", "swiftcart"),
		ProductPerPage: GetEnvAsInt("PRODUCT_PER_PAGE", 8),
		UploadDir:      GetEnv("UPLOAD_DIR", "uploads"),
		CORSOrigins:    splitOrigins(GetEnv("CORS_ORIGIN", "http://localhost:5173")),
	}
}

func splitOrigins(raw string) []string {
	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	return origins
}

func GetEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func GetEnvAsInt(key string, fallback int) int {
	if value, err := strconv.Atoi(GetEnv(key, "")); err == nil {
		return value
	}
	return fallback
}
