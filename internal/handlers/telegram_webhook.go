package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/RajAryanIITBHU/file-to-link/internal/config"
	"github.com/RajAryanIITBHU/file-to-link/internal/filelink"
	"github.com/RajAryanIITBHU/file-to-link/internal/payload"
)

type updateProcessor interface {
	Authorize(headers http.Header) bool
	Handle(ctx context.Context, body []byte) filelink.Result
}

// TelegramWebhookHandler receives Bot API webhook deliveries.
type TelegramWebhookHandler struct {
	logger       *slog.Logger
	processor    updateProcessor
	path         string
	maxBodyBytes int64
}

// NewTelegramWebhookHandler creates the webhook endpoint handler.
func NewTelegramWebhookHandler(log *slog.Logger, processor updateProcessor, cfg config.ServerConfig) *TelegramWebhookHandler {
	if log == nil {
		log = slog.Default()
	}
	path := cfg.WebhookPath
	if path == "" {
		path = config.DefaultWebhookPath
	}
	maxBody := cfg.MaxBodyBytes
	if maxBody <= 0 {
		maxBody = config.DefaultMaxBodyBytes
	}
	return &TelegramWebhookHandler{
		logger:       log.With(slog.String("handler", "telegram_webhook")),
		processor:    processor,
		path:         path,
		maxBodyBytes: maxBody,
	}
}

// NewTelegramWebhookServerHandler is the fx constructor, taking concrete types.
func NewTelegramWebhookServerHandler(log *slog.Logger, processor *filelink.Processor, cfg config.Config) *TelegramWebhookHandler {
	return NewTelegramWebhookHandler(log, processor, cfg.Server)
}

func (h *TelegramWebhookHandler) Register(e *echo.Echo) {
	e.GET(h.path, h.HandleProbe)
	e.POST(h.path, h.Handle)
}

// HandleProbe answers GET requests on the webhook URL.
func (h *TelegramWebhookHandler) HandleProbe(c echo.Context) error {
	return c.String(http.StatusOK, "ok")
}

// Handle processes one update delivery.
func (h *TelegramWebhookHandler) Handle(c echo.Context) error {
	req := c.Request()
	if !h.processor.Authorize(req.Header) {
		h.logger.Warn("rejected webhook call", slog.String("remote_ip", c.RealIP()))
		res := filelink.Unauthorized()
		return c.JSON(res.Status, res.Ack)
	}

	body, err := payload.ReadAllWithLimit(req.Body, h.maxBodyBytes)
	if err != nil {
		if errors.Is(err, payload.ErrTooLarge) {
			h.logger.Warn("webhook body too large", slog.Int64("max_bytes", h.maxBodyBytes))
		} else {
			h.logger.Warn("read webhook body failed", slog.Any("error", err))
		}
		res := filelink.Malformed()
		return c.JSON(res.Status, res.Ack)
	}

	res := h.processor.Handle(req.Context(), body)
	return c.JSON(res.Status, res.Ack)
}
