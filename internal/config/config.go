package config

import (
	"fmt"
	"os"
	"time"
)

// Config holds application configuration loaded from environment variables.
type Config struct {
	Port       string
	DBHost     string
	DBUser     string
	DBPassword string
	DBName     string
	DBPort     string
	RedisAddr  string
	RedisDB    int
	JWTSecret  string

	// TelegramBotToken and TelegramStaffChatID enable the crisis notifier.
	// Both empty disables Telegram notifications.
	TelegramBotToken    string
	TelegramStaffChatID int64

	// RoomWaitingExpiry is how long a WAITING room may sit unclaimed before the
	// sweeper closes it.
	RoomWaitingExpiry time.Duration
}

// Load reads configuration from environment variables.
func Load() *Config {
	cfg := &Config{
		Port:       getEnvWithDefault("PORT", "8080"),
		DBHost:     getEnvWithDefault("DB_HOST", "localhost"),
		DBUser:     getEnvWithDefault("DB_USER", "user"),
		DBPassword: getEnvWithDefault("DB_PASSWORD", "password"),
		DBName:     getEnvWithDefault("DB_NAME", "unicaredb"),
		DBPort:     getEnvWithDefault("DB_PORT", "5432"),
		RedisAddr:  getEnvWithDefault("REDIS_ADDR", "localhost:6379"),
		JWTSecret:  getEnvWithDefault("JWT_SECRET", "dev-secret-change-in-production"),

		TelegramBotToken: os.Getenv("TELEGRAM_BOT_TOKEN"),

		RoomWaitingExpiry: RoomWaitingExpiryDefault,
	}

	if v := os.Getenv("REDIS_DB"); v != "" {
		fmt.Sscanf(v, "%d", &cfg.RedisDB)
	}
	if v := os.Getenv("TELEGRAM_STAFF_CHAT_ID"); v != "" {
		fmt.Sscanf(v, "%d", &cfg.TelegramStaffChatID)
	}
	if v := os.Getenv("ROOM_WAITING_EXPIRY"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.RoomWaitingExpiry = d
		}
	}

	return cfg
}

// DSN builds the Postgres connection string.
func (c *Config) DSN() string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		c.DBHost, c.DBUser, c.DBPassword, c.DBName, c.DBPort)
}

func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
