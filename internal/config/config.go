package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Addr             string
	DBPath           string
	LogLevel         string
	ChallengesDir    string
	LeaderboardLimit int
	PlatformURL      string
	CommunityName    string
}

// Load reads configuration from a .env file (if present) and environment variables,
// applying sensible defaults when values are missing or invalid.
func Load() Config {
	// Ignore error so the app still starts when .env is absent in production.
	_ = godotenv.Load()

	return Config{
		Addr:             envOr("ADDR", ":8080"),
		DBPath:           envOr("DB_PATH", "file:echokeys.db"),
		LogLevel:         envOr("LOG_LEVEL", "INFO"),
		ChallengesDir:    envOr("CHALLENGES_DIR", "challenges"),
		LeaderboardLimit: envIntOr("LEADERBOARD_LIMIT", 10),
		PlatformURL:      envOr("PLATFORM_URL", "http://localhost:7070"),
		CommunityName:    envOr("COMMUNITY_NAME", "echokeys"),
	}
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envIntOr(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
		log.Printf("invalid value for %s=%q, using default %d", key, v, def)
	}
	return def
}
