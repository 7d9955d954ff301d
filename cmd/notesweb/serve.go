package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/notekeeper/notesweb/internal/app"
)

func serveCmd() *cobra.Command {
	var (
		addr    string
		base    string
		history string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the server",
		Long: `Start the HTTP server.

Settings come from notesweb.json, then from the environment
(BASE_URL, NOTESWEB_HISTORY, NOTESWEB_ADDR, NOTESWEB_ASSETS_DIR,
NOTESWEB_ASSETS_BUCKET, NOTESWEB_LOG_LEVEL), then from flags.

Examples:
  notesweb serve
  notesweb serve --addr=:8080 --base=/notes/
  notesweb serve --history=memory`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Address = addr
			}
			if base != "" {
				cfg.Base = base
			}
			if history != "" {
				cfg.History = history
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			logger := cfg.NewLogger(os.Stderr)
			slog.SetDefault(logger)

			a, err := app.New(cfg, app.Options{Logger: logger})
			if err != nil {
				return err
			}

			success("notesweb %s listening on %s", version, cfg.Address)
			info("base %s, %s history", cfg.Base, cfg.History)
			return a.Run(context.Background())
		},
	}

	cmd.Flags().StringVarP(&addr, "addr", "a", "", "Address to listen on (default from notesweb.json)")
	cmd.Flags().StringVarP(&base, "base", "b", "", "Deployment base path (default from notesweb.json)")
	cmd.Flags().StringVar(&history, "history", "", "History mode: web or memory")

	return cmd
}
