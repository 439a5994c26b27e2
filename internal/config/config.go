package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

type Config struct {
	RemoteAPIBaseURL string
	RemoteAPITimeout time.Duration
	DBDriver         string
	DBHost           string
	DBPort           string
	DBUser           string
	DBPassword       string
	DBName           string
	RedisHost        string
	RedisPort        string
	SessionSecret    string
	GinMode          string
	LogLevel         string
	OpenAIAPIKey     string
	Port             string
}

// Load reads configuration from the environment. A .env file in the working
// directory is loaded first when present; real environment variables win.
func Load() *Config {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.WithError(err).Warn("failed to read .env file")
	}

	return &Config{
		RemoteAPIBaseURL: getEnv("REMOTE_API_BASE_URL", "https://edunutshell-backend.onrender.com"),
		RemoteAPITimeout: getDuration("REMOTE_API_TIMEOUT", 15*time.Second),
		DBDriver:         getEnv("DB_DRIVER", "mysql"),
		DBHost:           getEnv("DB_HOST", "localhost"),
		DBPort:           getEnv("DB_PORT", "3306"),
		DBUser:           getEnv("DB_USER", "onboarding"),
		DBPassword:       getEnv("DB_PASSWORD", "onboarding"),
		DBName:           getEnv("DB_NAME", "onboarding_portal"),
		RedisHost:        getEnv("REDIS_HOST", "localhost"),
		RedisPort:        getEnv("REDIS_PORT", "6379"),
		SessionSecret:    getEnv("SESSION_SECRET", "default-secret-key-change-me"),
		GinMode:          getEnv("GIN_MODE", "debug"),
		LogLevel:         getEnv("LOG_LEVEL", "info"),
		OpenAIAPIKey:     getEnv("OPENAI_API_KEY", ""),
		Port:             getEnv("PORT", "8080"),
	}
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(value)
	if err != nil || d <= 0 {
		log.WithField("key", key).WithField("value", value).Warn("invalid duration, using default")
		return defaultValue
	}
	return d
}
