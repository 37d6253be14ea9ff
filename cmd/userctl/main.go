package main

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/templui/userbase/cmd/userctl/cmd"
	"github.com/templui/userbase/internal/config"
	"github.com/templui/userbase/internal/logger"
)

func main() {
	rootCmd := &cobra.Command{
		Use:          "userctl",
		Short:        "Administration tools for the user service",
		SilenceUsage: true,
		PersistentPreRun: func(c *cobra.Command, args []string) {
			cfg := config.Load()
			logger.Init(cfg.IsDevelopment(), cfg.LogLevel, cfg.SentryDSN)
		},
	}

	rootCmd.AddCommand(cmd.MigrateCmd())
	rootCmd.AddCommand(cmd.UsersCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
