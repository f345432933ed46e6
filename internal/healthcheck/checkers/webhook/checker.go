package webhookchecker

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"slices"
	"strings"
	"time"

	"github.com/RajAryanIITBHU/file-to-link/internal/healthcheck"
	"github.com/RajAryanIITBHU/file-to-link/internal/telegram"
)

const (
	checkTypeRegistration = "telegram.webhook"
	checkTypeSecret       = "telegram.webhook_secret"
)

// Inspector reads the platform's view of the webhook registration.
type Inspector interface {
	WebhookInfo() (telegram.WebhookStatus, error)
}

// Checker compares the platform's webhook registration with local config.
type Checker struct {
	logger        *slog.Logger
	inspector     Inspector
	webhookPath   string
	secretEnabled bool
}

// NewChecker creates a webhook health checker.
func NewChecker(log *slog.Logger, inspector Inspector, webhookPath string, secretEnabled bool) *Checker {
	if log == nil {
		log = slog.Default()
	}
	return &Checker{
		logger:        log.With(slog.String("checker", "healthcheck_webhook")),
		inspector:     inspector,
		webhookPath:   webhookPath,
		secretEnabled: secretEnabled,
	}
}

// ListChecks evaluates the secret setting and the live registration.
func (c *Checker) ListChecks(ctx context.Context) []healthcheck.CheckResult {
	if ctx == nil {
		ctx = context.Background()
	}
	checks := []healthcheck.CheckResult{c.secretCheck()}
	// getWebhookInfo is context-free; best effort early cancellation guard.
	if err := ctx.Err(); err != nil {
		return checks
	}
	return append(checks, c.registrationCheck())
}

func (c *Checker) secretCheck() healthcheck.CheckResult {
	item := healthcheck.CheckResult{
		ID:      checkTypeSecret,
		Type:    checkTypeSecret,
		Status:  healthcheck.StatusOK,
		Summary: "Webhook calls must carry the shared secret.",
	}
	if !c.secretEnabled {
		item.Status = healthcheck.StatusWarn
		item.Summary = "Webhook secret is not configured."
		item.Detail = "any caller that knows the webhook URL can submit updates"
	}
	return item
}

func (c *Checker) registrationCheck() healthcheck.CheckResult {
	item := healthcheck.CheckResult{
		ID:     checkTypeRegistration,
		Type:   checkTypeRegistration,
		Status: healthcheck.StatusError,
	}
	if c.inspector == nil {
		item.Status = healthcheck.StatusUnknown
		item.Summary = "Webhook inspector is not available."
		return item
	}

	info, err := c.inspector.WebhookInfo()
	if err != nil {
		c.logger.Warn("getWebhookInfo failed", slog.Any("error", err))
		item.Summary = "Could not read the webhook registration."
		item.Detail = err.Error()
		return item
	}

	item.Metadata = map[string]any{
		"pending_update_count": info.PendingUpdateCount,
	}
	if info.URL == "" {
		item.Summary = "No webhook is registered for this bot."
		item.Detail = "run `filelink webhook set --url <public url>`"
		return item
	}
	item.Metadata["url_path"] = urlPath(info.URL)

	var problems []string
	if c.webhookPath != "" && urlPath(info.URL) != c.webhookPath {
		problems = append(problems, fmt.Sprintf("registered path %q does not match %q", urlPath(info.URL), c.webhookPath))
	}
	if len(info.AllowedUpdates) > 0 && !slices.Contains(info.AllowedUpdates, "message") {
		problems = append(problems, "allowed_updates excludes message")
	}
	if msg := strings.TrimSpace(info.LastErrorMessage); msg != "" {
		problems = append(problems, "last delivery error: "+msg)
		if info.LastErrorDate > 0 {
			item.Metadata["last_error_at"] = time.Unix(info.LastErrorDate, 0).UTC().Format(time.RFC3339)
		}
	}

	if len(problems) > 0 {
		item.Status = healthcheck.StatusWarn
		item.Summary = "Webhook is registered with problems."
		item.Detail = strings.Join(problems, "; ")
		return item
	}
	item.Status = healthcheck.StatusOK
	item.Summary = "Webhook is registered."
	return item
}

// urlPath returns the path of a registered URL without exposing its host.
func urlPath(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	if u.Path == "" {
		return "/"
	}
	return u.Path
}
