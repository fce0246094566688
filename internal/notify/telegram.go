package notify

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"inmolista/server/internal/models"
	"inmolista/server/internal/pricing"
)

// Telegram forwards notifications to a Telegram chat. Delivery failures are
// logged and swallowed so the sink stays fire-and-forget.
type Telegram struct {
	logger *logrus.Logger
	client *http.Client
	config *models.TelegramConfig
}

func NewTelegram(logger *logrus.Logger, config *models.TelegramConfig) *Telegram {
	return &Telegram{
		logger: logger,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
		config: config,
	}
}

func (t *Telegram) UpdateConfig(config *models.TelegramConfig) {
	t.config = config
}

var kindEmoji = map[Kind]string{
	Success: "✅",
	Warning: "⚠️",
	Info:    "ℹ️",
	Error:   "❌",
}

func (t *Telegram) Notify(kind Kind, message string) {
	if err := t.SendMessage(fmt.Sprintf("%s %s", kindEmoji[kind], message)); err != nil {
		t.logger.WithError(err).Error("Failed to forward notification to Telegram")
	}
}

// SendMessage sends a message to the configured Telegram chat.
func (t *Telegram) SendMessage(message string) error {
	if t.config == nil || !t.config.IsEnabled {
		return nil
	}

	if t.config.BotToken == "" {
		return errors.New("Telegram bot token is not configured")
	}

	if t.config.ChatID == "" {
		return errors.New("Telegram chat ID is not configured")
	}

	url := fmt.Sprintf("https://api.telegram.org/bot%s/sendMessage", t.config.BotToken)
	payload := map[string]interface{}{
		"chat_id":    t.config.ChatID,
		"text":       message,
		"parse_mode": "HTML",
	}

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal message payload: %v", err)
	}

	resp, err := t.client.Post(url, "application/json", bytes.NewBuffer(jsonData))
	if err != nil {
		return fmt.Errorf("failed to send message to Telegram API: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		switch resp.StatusCode {
		case http.StatusUnauthorized:
			return errors.New("invalid bot token - please check your token from @BotFather")
		case http.StatusBadRequest:
			return fmt.Errorf("invalid chat ID or message format: %s", string(body))
		case http.StatusForbidden:
			return errors.New("bot was blocked by the user or chat")
		case http.StatusNotFound:
			return errors.New("bot not found - please check your token from @BotFather")
		default:
			return fmt.Errorf("Telegram API error (status %d): %s", resp.StatusCode, string(body))
		}
	}

	return nil
}

// NotifyNewInquiry sends a formatted notification about a new client inquiry.
func (t *Telegram) NotifyNewInquiry(inq *models.Inquiry) error {
	message := fmt.Sprintf(
		"<b>Nueva consulta recibida</b>\n\n"+
			"👤 %s\n"+
			"📧 %s\n"+
			"🏠 %s\n"+
			"📍 %s\n"+
			"💰 %s\n"+
			"⭐ Prioridad: %s\n\n"+
			"%s",
		inq.ClientName,
		inq.Email,
		inq.PropertyTitle,
		inq.Location,
		inq.Budget,
		inq.Priority,
		inq.Message,
	)

	return t.SendMessage(message)
}

// NotifyNewProperty sends a formatted notification about a freshly listed
// property, including its display price.
func (t *Telegram) NotifyNewProperty(p *models.Property) error {
	message := fmt.Sprintf(
		"<b>Nueva propiedad publicada</b>\n\n"+
			"🏠 %s\n"+
			"📍 %s\n"+
			"💰 %s\n"+
			"📐 %.0f m²\n"+
			"🛏️ %d hab · 🛁 %d baños",
		p.Title,
		p.Location,
		pricing.Format(p.Price),
		p.Area,
		p.Bedrooms,
		p.Bathrooms,
	)

	return t.SendMessage(message)
}
