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

const banner = `
  ┌─┐┌┐┌┬  ┬┬  ┬┌─┐┌┐┌
  ├┤ │││││  │└┐┌┘├┤ │││
  └─┘┘└┘┴─┘┴ └┘ └─┘┘└┘
`

func main() {
	rootCmd := &cobra.Command{
		Use:   "enliven",
		Short: "Server-driven live document trees for Go",
		Long: `Enliven keeps a markup tree on the server and streams changes
to connected clients as they happen.

  • Server-side document model with change records
  • Pluggable rendering backends
  • Live updates over WebSocket
  • XPath queries against the rendered tree`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		serveCmd(),
		versionCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "\033[31mError:\033[0m %s\n", err)
		os.Exit(1)
	}
}

// printBanner prints the Enliven ASCII art banner.
func printBanner() {
	fmt.Print(banner)
}

// info prints an info message.
func info(format string, args ...any) {
	fmt.Printf("  %s\n", fmt.Sprintf(format, args...))
}
