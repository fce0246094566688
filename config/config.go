package config

import "github.com/caarlos0/env/v6"

type Config struct {
	Server struct {
		Port string `env:"SERVER_PORT" envDefault:"5250"`
	}

	Database struct {
		Path string `env:"DATABASE_PATH" envDefault:"database/inmolista.db"`
	}

	Favorites struct {
		// Path of the single-key favorites store
		Path string `env:"FAVORITES_PATH" envDefault:"database/favorites.json"`
	}

	Workspace struct {
		// Delay before a pending view transition is applied (in milliseconds)
		TransitionDelayMs int `env:"WORKSPACE_TRANSITION_DELAY_MS" envDefault:"150"`
	}

	Catalog struct {
		// Interval between periodic catalog refreshes (in minutes)
		RefreshMinutes int `env:"CATALOG_REFRESH_MINUTES" envDefault:"5"`
	}

	// BatchProcessing configuration for the ingest pipeline
	BatchProcessing struct {
		// Maximum number of properties to accumulate before processing
		MaxBatchSize int `env:"BATCH_MAX_SIZE" envDefault:"100"`

		// Maximum time to wait before processing a non-full batch (in seconds)
		MaxBatchWaitTime int `env:"BATCH_WAIT_TIME" envDefault:"30"`

		// Number of concurrent batch processors
		ProcessorCount int `env:"BATCH_PROCESSOR_COUNT" envDefault:"2"`

		// Maximum number of retries for failed batches
		MaxRetries int `env:"BATCH_MAX_RETRIES" envDefault:"3"`

		// Delay between retries in seconds
		RetryDelay int `env:"BATCH_RETRY_DELAY" envDefault:"5"`
	}

	Telegram struct {
		BotToken  string `env:"TELEGRAM_BOT_TOKEN"`
		ChatID    string `env:"TELEGRAM_CHAT_ID"`
		IsEnabled bool   `env:"TELEGRAM_ENABLED" envDefault:"false"`
	}
}

func LoadConfig() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
