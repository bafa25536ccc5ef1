package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

type Config struct {
	MinTextLength int
	MaxChunkSize  int
	WorkerCount   int
	DatabaseURL   string
	Extensions    []string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("No .env file found, using environment variables")
	}

	return &Config{
		MinTextLength: getEnvInt("MIN_TEXT_LENGTH", 3),
		MaxChunkSize:  getEnvInt("MAX_CHUNK_SIZE", 50000),
		WorkerCount:   getEnvInt("WORKER_COUNT", 8),
		DatabaseURL:   getEnv("DATABASE_URL", ""),
		Extensions:    getEnvList("EXTRACT_EXTENSIONS"),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func getEnvList(key string) []string {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	var items []string
	for _, item := range strings.Split(v, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}
