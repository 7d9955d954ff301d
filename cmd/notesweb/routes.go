package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/notekeeper/notesweb/internal/app"
	"github.com/notekeeper/notesweb/internal/views"
	"github.com/notekeeper/notesweb/pkg/router"
)

func routesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "routes",
		Short: "List the route table",
		Long:  `List every route with its name, view and the href it has under the configured base.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			resolver, err := app.NewResolver(cfg.Base, app.Routes(), views.Default())
			if err != nil {
				return err
			}
			return printRoutes(cmd.OutOrStdout(), resolver)
		},
	}
}

func printRoutes(w io.Writer, resolver *router.Resolver) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tPATH\tVIEW\tHREF")
	for _, route := range resolver.Table().Routes() {
		href, err := resolver.Href(router.Named(route.Name, nil))
		if err != nil {
			return err
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", route.Name, route.Path, route.View, href)
	}
	return tw.Flush()
}
