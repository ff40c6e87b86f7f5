// Copyright © 2025 The cssls authors

package css

// Severity levels for diagnostics, ordered from most to least severe.
type Severity int

const (
	SeverityError Severity = iota + 1
	SeverityWarning
	SeverityInformation
	SeverityHint
)

// Lint setting values, matching the strings clients send in
// workspace/didChangeConfiguration.
const (
	LintIgnore  = "ignore"
	LintWarning = "warning"
	LintError   = "error"
	LintHint    = "hint"
)

// Settings controls validation for one dialect. The zero value is not
// useful; use DefaultSettings.
type Settings struct {
	// Validate disables all diagnostics when false.
	Validate bool         `json:"validate"`
	Lint     LintSettings `json:"lint"`
}

// LintSettings holds per-check severities ("ignore", "warning",
// "error", "hint").
type LintSettings struct {
	UnknownProperties   string `json:"unknownProperties"`
	EmptyRules          string `json:"emptyRules"`
	DuplicateProperties string `json:"duplicateProperties"`
	UndefinedVariables  string `json:"undefinedVariables"`

	// IgnoredProperties are property names exempt from the unknown
	// property check (project-specific extensions).
	IgnoredProperties []string `json:"ignoredProperties"`
}

// DefaultSettings returns the validation defaults used until a client
// sends configuration.
func DefaultSettings() *Settings {
	return &Settings{
		Validate: true,
		Lint: LintSettings{
			UnknownProperties:   LintWarning,
			EmptyRules:          LintHint,
			DuplicateProperties: LintIgnore,
			UndefinedVariables:  LintWarning,
		},
	}
}

// severityFor maps a lint setting string to a diagnostic severity.
// Unrecognized strings fall back to the given default; "ignore"
// returns false.
func severityFor(setting string, fallback Severity) (Severity, bool) {
	switch setting {
	case LintIgnore:
		return 0, false
	case LintError:
		return SeverityError, true
	case LintWarning:
		return SeverityWarning, true
	case LintHint:
		return SeverityHint, true
	default:
		return fallback, true
	}
}
