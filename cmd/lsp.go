// Copyright © 2025 The cssls authors

package cmd

import (
	"fmt"
	"log"
	"os"

	"github.com/luthersystems/cssls/lsp"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	lspStdio bool
	lspPort  int
)

var lspCmd = &cobra.Command{
	Use:   "lsp [flags]",
	Short: "Start the cssls Language Server Protocol server",
	Long: `Start an LSP server for CSS, SCSS, and LESS documents.

The language server provides real-time diagnostics, hover documentation,
completion, go-to-definition, find references, document highlights,
document symbols, rename, and quick fixes. The dialect is chosen per
document from the language identifier sent by the client.

Transport modes:
  --stdio      Use stdin/stdout for LSP communication (default)
  --port N     Listen for an LSP client on TCP port N

Tuning keys read from the config file (see --config):
  cache.capacity      Maximum parsed models kept in memory
  cache.max-age       Idle time before a cached model is dropped
  validation.delay    Debounce delay before publishing diagnostics

Examples:
  cssls lsp                          Start with stdio transport
  cssls lsp --stdio                  Same as above (explicit)
  cssls lsp --port 7998              Start with TCP on port 7998`,
	Args: cobra.NoArgs,
	Run: func(_ *cobra.Command, _ []string) {
		srv := lsp.New(serverOptions()...)

		if !lspStdio && lspPort > 0 {
			addr := fmt.Sprintf("localhost:%d", lspPort)
			log.Printf("cssls LSP server listening on %s", addr)
			if err := srv.RunTCP(addr); err != nil {
				fmt.Fprintf(os.Stderr, "lsp server error: %v\n", err)
				os.Exit(1)
			}
		} else {
			if err := srv.RunStdio(); err != nil {
				fmt.Fprintf(os.Stderr, "lsp server error: %v\n", err)
				os.Exit(1)
			}
		}
	},
}

// serverOptions builds server options from config file keys, leaving the
// server defaults in place for keys that are not set.
func serverOptions() []lsp.Option {
	var opts []lsp.Option
	if viper.IsSet("cache.capacity") {
		opts = append(opts, lsp.WithCacheCapacity(viper.GetInt("cache.capacity")))
	}
	if viper.IsSet("cache.max-age") {
		opts = append(opts, lsp.WithCacheMaxAge(viper.GetDuration("cache.max-age")))
	}
	if viper.IsSet("validation.delay") {
		opts = append(opts, lsp.WithValidationDelay(viper.GetDuration("validation.delay")))
	}
	return opts
}

func init() {
	rootCmd.AddCommand(lspCmd)

	lspCmd.Flags().BoolVar(&lspStdio, "stdio", false,
		"Use stdin/stdout for LSP communication (default behavior)")
	lspCmd.Flags().IntVar(&lspPort, "port", 0,
		"TCP port for LSP server (use instead of --stdio)")
}
