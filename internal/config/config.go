package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	HTTPAddr string

	DBDriver string
	DBDSN    string

	CORSOrigins []string
}

// FromEnv builds the config from environment variables, reading a .env
// file first when one is present.
func FromEnv() Config {
	_ = godotenv.Load() // optional; absent file is fine

	return Config{
		HTTPAddr:    envOr("HTTP_ADDR", ":8000"),
		DBDriver:    envOr("DB_DRIVER", "sqlite"),
		DBDSN:       envOr("DB_DSN", ""),
		CORSOrigins: csvOr("CORS_ORIGINS", "http://localhost:3000,http://localhost:8000"),
	}
}

func envOr(k, def string) string {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	return v
}

func csvOr(k, def string) []string {
	v := envOr(k, def)
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			out = append(out, s)
		}
	}
	return out
}
