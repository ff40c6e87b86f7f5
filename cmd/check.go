// Copyright © 2025 The cssls authors

package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/luthersystems/cssls/css"
	"github.com/spf13/cobra"
)

var checkJSON bool

var checkCmd = &cobra.Command{
	Use:   "check [flags] [files...]",
	Short: "Validate stylesheets and report findings",
	Long: `Validate CSS, SCSS, and LESS files and report findings.

The checker runs the same validation the language server publishes as
diagnostics: syntax errors, unknown properties, empty rulesets, duplicate
properties, and undefined dialect variables. The dialect is chosen by
file extension (.scss, .less, anything else is plain CSS).

With no files, reads CSS from stdin. With files, checks each file and
reports all findings to stderr.

Exit codes:
  0  No problems found
  1  One or more problems were reported
  2  Bad invocation (unreadable files)

Examples:
  cssls check site.css                 Check a single file
  cssls check styles/*.scss            Check multiple files
  cssls check --json site.css          Output findings as JSON
  cat site.css | cssls check           Check from stdin`,
	Run: func(cmd *cobra.Command, args []string) {
		type finding struct {
			path    string
			content string
			diags   []css.Diagnostic
		}

		var findings []finding
		if len(args) == 0 {
			content, err := readStdin()
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(2)
			}
			findings = append(findings, finding{"<stdin>", content, checkContent("<stdin>", content, css.DialectCSS)})
		} else {
			for _, path := range args {
				data, err := os.ReadFile(path) //nolint:gosec // CLI tool reads user-specified files
				if err != nil {
					fmt.Fprintln(os.Stderr, err)
					os.Exit(2)
				}
				content := string(data)
				findings = append(findings, finding{path, content, checkContent(path, content, dialectForPath(path))})
			}
		}

		total := 0
		for _, f := range findings {
			total += len(f.diags)
		}
		if total == 0 {
			return
		}

		if checkJSON {
			var all []checkFinding
			for _, f := range findings {
				all = append(all, jsonFindings(f.path, f.content, f.diags)...)
			}
			if err := writeFindingsJSON(os.Stdout, all); err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(2)
			}
		} else {
			for _, f := range findings {
				renderDiagnostics(f.path, f.content, f.diags)
			}
		}
		os.Exit(1)
	},
}

// checkContent parses and validates one document with default settings.
func checkContent(path, content string, dialect css.Dialect) []css.Diagnostic {
	svc := css.NewService(dialect)
	return svc.Validate(svc.Parse(path, content), nil)
}

// dialectForPath chooses the dialect by file extension.
func dialectForPath(path string) css.Dialect {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".scss":
		return css.DialectSCSS
	case ".less":
		return css.DialectLESS
	default:
		return css.DialectCSS
	}
}

// checkFinding is the JSON shape of one reported problem.
type checkFinding struct {
	File     string `json:"file"`
	Line     int    `json:"line"`
	Col      int    `json:"col"`
	Severity string `json:"severity"`
	Code     string `json:"code"`
	Message  string `json:"message"`
}

func jsonFindings(path, content string, diags []css.Diagnostic) []checkFinding {
	out := make([]checkFinding, 0, len(diags))
	for _, d := range diags {
		line, col, _ := lineAt(content, d.Start)
		out = append(out, checkFinding{
			File:     path,
			Line:     line,
			Col:      col,
			Severity: mapSeverity(d.Severity).String(),
			Code:     d.Code,
			Message:  d.Message,
		})
	}
	return out
}

func writeFindingsJSON(w io.Writer, findings []checkFinding) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(findings)
}

func readStdin() (string, error) {
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", fmt.Errorf("reading stdin: %w", err)
	}
	return string(data), nil
}

func init() {
	rootCmd.AddCommand(checkCmd)

	checkCmd.Flags().BoolVar(&checkJSON, "json", false,
		"Output findings as JSON.")
}
