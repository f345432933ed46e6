package telegram

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// AllowedUpdates limits webhook deliveries to the update types the bot handles.
var AllowedUpdates = []string{"message", "edited_message"}

// WebhookAdmin registers, removes and inspects the bot's webhook.
type WebhookAdmin struct {
	bot    *tgbotapi.BotAPI
	secret string
	logger *slog.Logger
}

// NewWebhookAdmin builds an admin client against apiBase. It does not call
// getMe, so construction never touches the network.
func NewWebhookAdmin(log *slog.Logger, token, apiBase, secret string, hc *http.Client) *WebhookAdmin {
	if log == nil {
		log = slog.Default()
	}
	return &WebhookAdmin{
		bot:    newBotAPI(token, apiBase, hc),
		secret: strings.TrimSpace(secret),
		logger: log.With(slog.String("component", "webhook_admin")),
	}
}

// SetWebhook points the bot at webhookURL. The configured secret is
// registered so the platform echoes it on every delivery.
func (a *WebhookAdmin) SetWebhook(webhookURL string, dropPending bool) error {
	webhookURL = strings.TrimSpace(webhookURL)
	if webhookURL == "" {
		return fmt.Errorf("webhook url is required")
	}
	params := tgbotapi.Params{}
	params.AddNonEmpty("url", webhookURL)
	params.AddNonEmpty("secret_token", a.secret)
	params.AddBool("drop_pending_updates", dropPending)
	if err := params.AddInterface("allowed_updates", AllowedUpdates); err != nil {
		return fmt.Errorf("encode allowed_updates: %w", err)
	}
	if _, err := a.bot.MakeRequest("setWebhook", params); err != nil {
		return fmt.Errorf("setWebhook: %w", stripURL(err))
	}
	a.logger.Info("webhook registered",
		slog.String("url", webhookURL),
		slog.Bool("secret", a.secret != ""),
		slog.Bool("drop_pending", dropPending),
	)
	return nil
}

// DeleteWebhook removes the webhook registration.
func (a *WebhookAdmin) DeleteWebhook(dropPending bool) error {
	params := tgbotapi.Params{}
	params.AddBool("drop_pending_updates", dropPending)
	if _, err := a.bot.MakeRequest("deleteWebhook", params); err != nil {
		return fmt.Errorf("deleteWebhook: %w", stripURL(err))
	}
	a.logger.Info("webhook deleted", slog.Bool("drop_pending", dropPending))
	return nil
}

// WebhookStatus is the subset of getWebhookInfo the CLI prints.
type WebhookStatus struct {
	URL                string   `json:"url"`
	PendingUpdateCount int      `json:"pending_update_count"`
	LastErrorDate      int64    `json:"last_error_date,omitempty"`
	LastErrorMessage   string   `json:"last_error_message,omitempty"`
	MaxConnections     int      `json:"max_connections,omitempty"`
	AllowedUpdates     []string `json:"allowed_updates,omitempty"`
}

// WebhookInfo fetches the current webhook registration.
func (a *WebhookAdmin) WebhookInfo() (WebhookStatus, error) {
	resp, err := a.bot.MakeRequest("getWebhookInfo", nil)
	if err != nil {
		return WebhookStatus{}, fmt.Errorf("getWebhookInfo: %w", stripURL(err))
	}
	var status WebhookStatus
	if err := json.Unmarshal(resp.Result, &status); err != nil {
		return WebhookStatus{}, fmt.Errorf("decode getWebhookInfo: %w", err)
	}
	return status, nil
}
