package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/tablomester/tablomester/internal/constants"
)

type Config struct {
	Gallery  GalleryConfig
	Server   ServerConfig
	Database DatabaseConfig
	Upload   UploadConfig
}

type GalleryConfig struct {
	URL   string // base URL of the tabló gallery backend
	Token string // pre-issued API access token
}

type ServerConfig struct {
	Addr           string   // listen address (default :8080)
	SessionSecret  string   // HMAC key for session cookies
	AllowedOrigins []string // frontend origins allowed to call the API cross-origin
}

type DatabaseConfig struct {
	URL          string // PostgreSQL connection URL, empty disables persistence
	MaxOpenConns int    // Maximum open connections (default 25)
	MaxIdleConns int    // Maximum idle connections (default 5)
}

type UploadConfig struct {
	ChunkSize int // files per upload request (default 10)
}

// envInt reads an environment variable and parses it as a positive integer.
// Returns the default value if the env var is unset, empty, or invalid.
func envInt(key string, defaultVal int) int {
	s := os.Getenv(key)
	if s == "" {
		return defaultVal
	}
	if n, err := strconv.Atoi(s); err == nil && n > 0 {
		return n
	}
	return defaultVal
}

// envString reads an environment variable with a fallback default.
func envString(key, defaultVal string) string {
	if s := os.Getenv(key); s != "" {
		return s
	}
	return defaultVal
}

// envList reads a comma-separated environment variable into a slice,
// trimming whitespace and dropping empty entries. Returns nil when unset.
func envList(key string) []string {
	s := os.Getenv(key)
	if s == "" {
		return nil
	}
	var values []string
	for _, v := range strings.Split(s, ",") {
		if v = strings.TrimSpace(v); v != "" {
			values = append(values, v)
		}
	}
	return values
}

func Load() *Config {
	return &Config{
		Gallery: GalleryConfig{
			URL:   os.Getenv("GALLERY_URL"),
			Token: os.Getenv("GALLERY_TOKEN"),
		},
		Server: ServerConfig{
			Addr:           envString("SERVER_ADDR", ":8080"),
			SessionSecret:  os.Getenv("SESSION_SECRET"),
			AllowedOrigins: envList("WEB_ALLOWED_ORIGINS"),
		},
		Database: DatabaseConfig{
			URL:          os.Getenv("DATABASE_URL"),
			MaxOpenConns: envInt("DATABASE_MAX_OPEN_CONNS", 25),
			MaxIdleConns: envInt("DATABASE_MAX_IDLE_CONNS", 5),
		},
		Upload: UploadConfig{
			ChunkSize: envInt("UPLOAD_CHUNK_SIZE", constants.DefaultChunkSize),
		},
	}
}
