// Copyright © 2025 The cssls authors

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile   string
	colorFlag string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "cssls",
	Short: "cssls — CSS, SCSS, and LESS language server",
	Long: `cssls is a language server and command line checker for CSS-family
stylesheets. It understands plain CSS, SCSS, and LESS, and provides
diagnostics, hover documentation, completion, go-to-definition, find
references, rename, and quick fixes.

Getting started:
  cssls lsp                    Start the language server on stdin/stdout
  cssls lsp --port 7998        Start the language server on a TCP port
  cssls check site.css         Validate stylesheets and report findings
  cssls doc color              Show documentation for a CSS property
  cssls doc --list             List all known properties

The checker applies the same validation the language server publishes as
diagnostics: syntax errors, unknown properties, empty rulesets, duplicate
properties, and undefined dialect variables.

Editor configuration (VS Code):
  Install a generic LSP client extension and configure it to run
  "cssls lsp --stdio" for .css, .scss, and .less files.

More information:
  Source code:     https://github.com/luthersystems/cssls`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.cssls.yaml)")
	rootCmd.PersistentFlags().StringVar(&colorFlag, "color", "auto",
		`Control colored output: "auto", "always", or "never".`)
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}

		// Search config in home directory with name ".cssls" (without extension).
		viper.AddConfigPath(home)
		viper.SetConfigName(".cssls")
	}

	viper.AutomaticEnv() // read in environment variables that match

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}
