package config

import (
	"time"

	"proposal-backend/internal/retry"
	"proposal-backend/internal/utils"
)

// Config collects everything the app reads from the environment.
// Components receive their slice of it explicitly; nothing reads env
// vars at call time.
type Config struct {
	Port        string
	DatabaseURL string

	JWTSecret         string
	AdminEmail        string
	AdminPasswordHash string

	TelegramBotToken  string
	TelegramChannelID string

	Retry retry.Config
}

// Load assembles the configuration from the environment.
func Load() Config {
	return Config{
		Port:        utils.GetEnv("PORT", "8001"),
		DatabaseURL: databaseURL(),

		JWTSecret:         utils.GetEnv("JWT_SECRET", "secret"),
		AdminEmail:        utils.GetEnv("ADMIN_EMAIL", ""),
		AdminPasswordHash: utils.GetEnv("ADMIN_PASSWORD_HASH", ""),

		TelegramBotToken:  utils.GetEnv("TELEGRAM_BOT_TOKEN", ""),
		TelegramChannelID: utils.GetEnv("TELEGRAM_FILE_CHANNEL_ID", ""),

		Retry: retry.Config{
			MaxAttempts: utils.GetEnvInt("RETRY_MAX_ATTEMPTS", 3),
			BaseDelay:   time.Duration(utils.GetEnvInt("RETRY_BASE_DELAY_MS", 1000)) * time.Millisecond,
		},
	}
}

func databaseURL() string {
	if url := utils.GetEnv("DATABASE_URL", ""); url != "" {
		return url
	}
	// Fallback to individual vars
	return "postgres://" + utils.GetEnv("POSTGRES_USER", "postgres") + ":" +
		utils.GetEnv("POSTGRES_PASSWORD", "postgres") + "@" +
		utils.GetEnv("POSTGRES_HOST", "localhost") + ":" +
		utils.GetEnv("POSTGRES_PORT", "5432") + "/" +
		utils.GetEnv("POSTGRES_DB", "proposaldb") + "?sslmode=disable"
}
