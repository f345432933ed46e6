package handlers

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/RajAryanIITBHU/file-to-link/internal/healthcheck"
	webhookchecker "github.com/RajAryanIITBHU/file-to-link/internal/healthcheck/checkers/webhook"
)

// HealthChecksHandler reports deployment diagnostics such as the webhook
// registration state.
type HealthChecksHandler struct {
	logger   *slog.Logger
	checkers []healthcheck.Checker
}

func NewHealthChecksHandler(log *slog.Logger, checkers ...healthcheck.Checker) *HealthChecksHandler {
	if log == nil {
		log = slog.Default()
	}
	return &HealthChecksHandler{
		logger:   log.With(slog.String("handler", "health_checks")),
		checkers: checkers,
	}
}

// NewHealthChecksServerHandler is the fx constructor.
func NewHealthChecksServerHandler(log *slog.Logger, webhook *webhookchecker.Checker) *HealthChecksHandler {
	return NewHealthChecksHandler(log, webhook)
}

func (h *HealthChecksHandler) Register(e *echo.Echo) {
	e.GET("/health/checks", h.List)
}

// List runs every checker. It answers 503 when any check is in error.
func (h *HealthChecksHandler) List(c echo.Context) error {
	report := healthcheck.Run(c.Request().Context(), h.checkers...)
	status := http.StatusOK
	if report.Status == healthcheck.StatusError {
		h.logger.Warn("health checks failing", slog.Int("checks", len(report.Checks)))
		status = http.StatusServiceUnavailable
	}
	return c.JSON(status, report)
}
