package main

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/RajAryanIITBHU/file-to-link/internal/config"
	"github.com/RajAryanIITBHU/file-to-link/internal/logger"
	"github.com/RajAryanIITBHU/file-to-link/internal/telegram"
)

func newWebhookCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "webhook",
		Short: "Manage the bot's webhook registration",
	}
	cmd.AddCommand(newWebhookSetCommand(), newWebhookDeleteCommand(), newWebhookInfoCommand())
	return cmd
}

func newWebhookSetCommand() *cobra.Command {
	var (
		url         string
		dropPending bool
	)
	cmd := &cobra.Command{
		Use:   "set",
		Short: "Point the bot at this server's webhook URL",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			admin, err := loadWebhookAdmin()
			if err != nil {
				return err
			}
			if err := admin.SetWebhook(url, dropPending); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "webhook set to %s\n", url)
			return nil
		},
	}
	cmd.Flags().StringVar(&url, "url", "", "public HTTPS URL of the webhook endpoint")
	cmd.Flags().BoolVar(&dropPending, "drop-pending", false, "discard updates queued while no webhook was set")
	_ = cmd.MarkFlagRequired("url")
	return cmd
}

func newWebhookDeleteCommand() *cobra.Command {
	var dropPending bool
	cmd := &cobra.Command{
		Use:   "delete",
		Short: "Remove the webhook registration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			admin, err := loadWebhookAdmin()
			if err != nil {
				return err
			}
			if err := admin.DeleteWebhook(dropPending); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "webhook deleted")
			return nil
		},
	}
	cmd.Flags().BoolVar(&dropPending, "drop-pending", false, "discard queued updates")
	return cmd
}

func newWebhookInfoCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Print the current webhook registration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			admin, err := loadWebhookAdmin()
			if err != nil {
				return err
			}
			info, err := admin.WebhookInfo()
			if err != nil {
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(info)
		},
	}
}

func loadWebhookAdmin() (*telegram.WebhookAdmin, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	logger.InitWithOptions(logger.Options{Level: cfg.Log.Level, Format: cfg.Log.Format, File: cfg.Log.File})
	telegram.InstallBotLogger(logger.L)
	return telegram.NewWebhookAdmin(
		logger.L,
		cfg.Telegram.BotToken,
		cfg.Telegram.APIBase,
		cfg.Telegram.WebhookSecret,
		&http.Client{Timeout: cfg.Telegram.RequestTimeout},
	), nil
}
