// Copyright © 2025 The cssls authors

package diagnostic

import "os"

// ColorMode controls when ANSI color codes are used.
type ColorMode int

const (
	ColorAuto   ColorMode = iota // detect based on terminal and NO_COLOR
	ColorAlways                  // always use colors
	ColorNever                   // never use colors
)

// palette holds the ANSI escape sequences for diagnostic output.
type palette struct {
	bold       string
	cyan       string
	boldRed    string
	boldYellow string
	boldBlue   string
	boldCyan   string
	reset      string
}

var ansiPalette = palette{
	bold:       "\033[1m",
	cyan:       "\033[36m",
	boldRed:    "\033[1;31m",
	boldYellow: "\033[1;33m",
	boldBlue:   "\033[1;34m",
	boldCyan:   "\033[1;36m",
	reset:      "\033[0m",
}

var noPalette = palette{}

// severityColor returns the palette color used for a severity's header
// text and underline.
func (p palette) severityColor(s Severity) string {
	switch s {
	case SeverityError:
		return p.boldRed
	case SeverityWarning:
		return p.boldYellow
	case SeverityInfo:
		return p.boldCyan
	default:
		return p.cyan
	}
}

// choosePalette selects the color palette for the mode and output file
// descriptor.
func choosePalette(mode ColorMode, w *os.File) palette {
	switch mode {
	case ColorAlways:
		return ansiPalette
	case ColorNever:
		return noPalette
	default: // ColorAuto
		if os.Getenv("NO_COLOR") != "" {
			return noPalette
		}
		if !isTerminal(w) {
			return noPalette
		}
		return ansiPalette
	}
}

// isTerminal reports whether f is connected to a terminal.
func isTerminal(f *os.File) bool {
	if f == nil {
		return false
	}
	fi, err := f.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}
