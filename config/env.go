package config

import "os"

// Config carries everything the process needs from the environment.
type Config struct {
	ListenAddr  string
	DatabaseURL string
	RedisAddr   string
	JWTSecret   []byte
}

// Load reads configuration from environment variables. Callers that want
// .env support should load it (godotenv) before calling Load.
func Load() Config {
	return Config{
		ListenAddr:  getenv("LISTEN_ADDR", ":8080"),
		DatabaseURL: os.Getenv("DB_URL"),
		RedisAddr:   os.Getenv("REDIS_ADDR"),
		JWTSecret:   []byte(getenv("JWT_SECRET", "")),
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
