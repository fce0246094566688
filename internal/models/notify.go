package models

// TelegramConfig holds the settings for the Telegram notification forwarder.
type TelegramConfig struct {
	BotToken  string `json:"bot_token"`
	ChatID    string `json:"chat_id"`
	IsEnabled bool   `json:"is_enabled"`
}
