package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
    Port         string
    DatabaseURL  string // Supabase Postgres connection string
    JWTSecret    string
    UploadDir    string // support screenshots land here, served at /uploads
    GeminiAPIKey string
    GeminiModel  string
}

func Load() Config {
    _ = godotenv.Load()
    cfg := Config{
        Port:         get("PORT", "8080"),
        DatabaseURL:  must("SUPABASE_DB_URL"),
        JWTSecret:    must("JWT_SECRET"),
        UploadDir:    get("UPLOAD_DIR", "./uploads"),
        GeminiAPIKey: get("GEMINI_API_KEY", ""),
        GeminiModel:  get("GEMINI_MODEL", "gemini-2.5-pro"),
    }
    return cfg
}

func get(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func must(k string) string {
	v := os.Getenv(k)
	if v == "" {
		log.Fatalf("missing required env: %s", k)
	}
	return v
}
