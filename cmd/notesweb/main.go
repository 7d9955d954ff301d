package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/notekeeper/notesweb/internal/errors"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		errors.PrintError(err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "notesweb",
		Short: "Serve the notes web client",
		Long: `notesweb serves the notes web client.

Pages are rendered on the server and kept in sync with the browser
history over a WebSocket. Routes:

  /         note     write a note
  /signup   signup   create an account
  /signin   signin   sign in`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().String("config", "", "Path to the config file (default: ./notesweb.json if present)")

	cmd.AddCommand(
		serveCmd(),
		routesCmd(),
		resolveCmd(),
		versionCmd(),
	)
	return cmd
}

// success prints a success message.
func success(format string, args ...any) {
	fmt.Printf("\033[32m✓\033[0m %s\n", fmt.Sprintf(format, args...))
}

// info prints an info message.
func info(format string, args ...any) {
	fmt.Printf("  %s\n", fmt.Sprintf(format, args...))
}
