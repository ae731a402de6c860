package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "propcell",
		Short: "Observable property cells for Go",
		Long: `Propcell is a library of observable property cells: mutable values
that publish their changes, plus bind/sync combinators that keep
cells tracking each other.

This CLI wraps the library's supporting tools:

  • bench  — measure write and propagation throughput
  • watch  — stream values from a WebSocket feed
  • serve  — run the HTTP inspect/metrics server`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		versionCmd(),
		benchCmd(),
		watchCmd(),
		serveCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}
