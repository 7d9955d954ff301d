package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/notekeeper/notesweb/internal/app"
	"github.com/notekeeper/notesweb/internal/views"
	"github.com/notekeeper/notesweb/pkg/history"
	"github.com/notekeeper/notesweb/pkg/router"
)

func resolveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "resolve <path|name:ROUTE>...",
		Short: "Resolve targets against the route table",
		Long: `Navigate an in-memory history through each target in turn and print
the route it lands on. Targets are application paths ("/signup") or
route names ("name:signin").

Examples:
  notesweb resolve /signup
  notesweb resolve name:signin /missing`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			resolver, err := app.NewResolver(cfg.Base, app.Routes(), views.Default())
			if err != nil {
				return err
			}
			return resolveTargets(cmd.OutOrStdout(), resolver, args)
		},
	}
}

// resolveTargets navigates a memory history through targets and prints
// one line per target. Rejected targets are reported and skipped.
func resolveTargets(w io.Writer, resolver *router.Resolver, targets []string) error {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	r := router.NewRouter(resolver, history.NewMemory(resolver.Base()), router.WithLogger(logger))
	defer r.Close()

	for _, arg := range targets {
		target := router.ParseTarget(arg)
		err := r.NavigateTo(context.Background(), target)
		if err != nil && (target.Name != "" || !router.IsNotFound(err)) {
			fmt.Fprintf(w, "%s\terror: %v\n", arg, err)
			continue
		}
		cur := r.CurrentRoute()
		status := "ok"
		if !cur.Matched {
			status = "not found"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", arg, cur.Name(), cur.View(), cur.Href, status)
	}
	return nil
}
