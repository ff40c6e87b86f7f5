// Copyright © 2025 The cssls authors

package cmd

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/luthersystems/cssls/css"
	"github.com/muesli/reflow/indent"
	"github.com/muesli/reflow/wordwrap"
	"github.com/spf13/cobra"
)

var docListAll bool

// docCmd represents the doc command
var docCmd = &cobra.Command{
	Use:   "doc [flags] PROPERTY",
	Short: "Show documentation for a CSS property",
	Long: `Show built-in documentation for a CSS property.

The documentation is the same property data the language server uses for
hover and completion: a description, the value syntax, and any known
keyword values.

Examples:
  cssls doc color              Show docs for the color property
  cssls doc flex-direction     Show docs for a flexbox property
  cssls doc --list             List all known properties`,
	Run: func(cmd *cobra.Command, args []string) {
		if docListAll {
			for _, name := range css.PropertyNames() {
				fmt.Println(name)
			}
			return
		}
		if len(args) != 1 {
			_ = cmd.Help()
			os.Exit(1)
		}
		out := bufio.NewWriter(os.Stdout)
		if err := renderPropertyDoc(out, args[0]); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		_ = out.Flush()
	},
}

// renderPropertyDoc writes the documentation for one property, or an
// error naming the closest known property.
func renderPropertyDoc(w io.Writer, name string) error {
	name = strings.ToLower(strings.TrimSpace(name))
	prop, ok := css.LookupProperty(name)
	if !ok {
		if suggestion, found := css.ClosestProperty(name); found {
			return fmt.Errorf("unknown property %q (did you mean %q?)", name, suggestion)
		}
		return fmt.Errorf("unknown property %q", name)
	}

	fmt.Fprintln(w, prop.Name)
	if prop.Doc != "" {
		fmt.Fprintln(w, indent.String(wordwrap.String(prop.Doc, 72), 2))
	}
	if prop.Syntax != "" {
		fmt.Fprintf(w, "\nSyntax:\n  %s\n", prop.Syntax)
	}
	if len(prop.Values) > 0 {
		fmt.Fprintf(w, "\nValues:\n%s\n", indent.String(wordwrap.String(strings.Join(prop.Values, ", "), 72), 2))
	}
	return nil
}

func init() {
	rootCmd.AddCommand(docCmd)

	docCmd.Flags().BoolVarP(&docListAll, "list", "l", false,
		"List all known properties and exit.")
}
