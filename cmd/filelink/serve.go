package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"

	"github.com/RajAryanIITBHU/file-to-link/internal/config"
	"github.com/RajAryanIITBHU/file-to-link/internal/filelink"
	"github.com/RajAryanIITBHU/file-to-link/internal/handlers"
	webhookchecker "github.com/RajAryanIITBHU/file-to-link/internal/healthcheck/checkers/webhook"
	"github.com/RajAryanIITBHU/file-to-link/internal/logger"
	"github.com/RajAryanIITBHU/file-to-link/internal/server"
	"github.com/RajAryanIITBHU/file-to-link/internal/telegram"
	"github.com/RajAryanIITBHU/file-to-link/internal/version"
)

func runServe() {
	fx.New(
		fx.Provide(
			provideConfig,
			provideLogger,
			provideTelegramClient,
			provideProcessor,
			provideWebhookAdmin,
			provideWebhookChecker,
			provideServerHandler(handlers.NewPingHandler),
			provideServerHandler(handlers.NewHealthChecksServerHandler),
			provideServerHandler(handlers.NewTelegramWebhookServerHandler),
			provideServer,
		),
		fx.Invoke(
			startServer,
		),
		fx.WithLogger(func(logger *slog.Logger) fxevent.Logger {
			return &fxevent.SlogLogger{Logger: logger.With(slog.String("component", "fx"))}
		}),
	).Run()
}

func provideServerHandler(fn any) any {
	return fx.Annotate(
		fn,
		fx.As(new(server.Handler)),
		fx.ResultTags(`group:"server_handlers"`),
	)
}

func provideConfig() (config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return config.Config{}, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

func provideLogger(cfg config.Config) *slog.Logger {
	logger.InitWithOptions(logger.Options{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		File:   cfg.Log.File,
	})
	telegram.InstallBotLogger(logger.L)
	return logger.L
}

func provideTelegramClient(log *slog.Logger, cfg config.Config) *telegram.Client {
	return telegram.NewClient(cfg.Telegram.BotToken,
		telegram.WithAPIBase(cfg.Telegram.APIBase),
		telegram.WithHTTPClient(&http.Client{Timeout: cfg.Telegram.RequestTimeout}),
		telegram.WithLogger(log),
	)
}

func provideProcessor(log *slog.Logger, cfg config.Config, client *telegram.Client) *filelink.Processor {
	return filelink.NewProcessor(log, cfg.Telegram, client)
}

func provideWebhookAdmin(log *slog.Logger, cfg config.Config) *telegram.WebhookAdmin {
	return telegram.NewWebhookAdmin(log, cfg.Telegram.BotToken, cfg.Telegram.APIBase, cfg.Telegram.WebhookSecret,
		&http.Client{Timeout: cfg.Telegram.RequestTimeout})
}

func provideWebhookChecker(log *slog.Logger, cfg config.Config, admin *telegram.WebhookAdmin) *webhookchecker.Checker {
	return webhookchecker.NewChecker(log, admin, cfg.Server.WebhookPath, cfg.Telegram.SecretEnabled())
}

type serverParams struct {
	fx.In
	Logger         *slog.Logger
	Config         config.Config
	ServerHandlers []server.Handler `group:"server_handlers"`
}

func provideServer(params serverParams) *server.Server {
	return server.NewServer(params.Logger, params.Config.Server.Addr, params.ServerHandlers...)
}

func startServer(lc fx.Lifecycle, logger *slog.Logger, srv *server.Server, shutdowner fx.Shutdowner, cfg config.Config) {
	fmt.Printf("Starting filelink %s\n", version.GetInfo())
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			logger.Info("webhook endpoint",
				slog.String("path", cfg.Server.WebhookPath),
				slog.Bool("secret", cfg.Telegram.SecretEnabled()),
			)
			go func() {
				if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					logger.Error("server failed", slog.Any("error", err))
					_ = shutdowner.Shutdown()
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			if err := srv.Stop(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("server stop: %w", err)
			}
			return nil
		},
	})
}
