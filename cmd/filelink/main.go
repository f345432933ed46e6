package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/RajAryanIITBHU/file-to-link/internal/config"
	"github.com/RajAryanIITBHU/file-to-link/internal/version"
)

var (
	configPath string
	dotEnvPath string
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          "filelink",
		Short:        "Telegram bot that replies to uploaded files with a direct download link",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := config.LoadDotEnv(dotEnvPath); err != nil {
				return err
			}
			// CONFIG_PATH may come from the .env file, so resolve it afterwards.
			if configPath == "" {
				configPath = envOr("CONFIG_PATH", config.DefaultConfigPath)
			}
			return nil
		},
	}
	root.PersistentFlags().StringVarP(&configPath, "config", "c", "", "config file, toml or yaml by extension (default $CONFIG_PATH or "+config.DefaultConfigPath+")")
	root.PersistentFlags().StringVar(&dotEnvPath, "env-file", config.DefaultDotEnvPath, ".env file loaded before the environment is read")

	root.AddCommand(newServeCommand())
	root.AddCommand(newWebhookCommand())
	root.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), "filelink", version.GetInfo())
		},
	})
	return root
}

func newServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the webhook server",
		Args:  cobra.NoArgs,
		Run: func(*cobra.Command, []string) {
			runServe()
		},
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
