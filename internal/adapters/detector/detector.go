// Package detector picks the item output format from the environment.
package detector

import (
	"io"
	"os"

	"golang.org/x/term"
)

// OutputMode is the format items are written in.
type OutputMode int

const (
	// ModeAuto defers to DetectEnvironment.
	ModeAuto OutputMode = iota
	// ModeText writes items grouped by folder for people.
	ModeText
	// ModeJSON writes items as JSON for other programs.
	ModeJSON
)

// DetectEnvironment returns the recommended mode for output written to w.
// Terminals and CI logs get text; pipes and files get JSON.
func DetectEnvironment(w io.Writer) OutputMode {
	ci := os.Getenv("CI")
	if ci == "true" || ci == "1" {
		return ModeText
	}
	if isTerminal(w) {
		return ModeText
	}
	return ModeJSON
}

// ResolveMode applies the user's --format flag to the detected mode.
// userFlag should be one of: "auto", "text", "json", or empty.
func ResolveMode(autoDetected OutputMode, userFlag string) OutputMode {
	switch userFlag {
	case "text":
		return ModeText
	case "json":
		return ModeJSON
	default:
		return autoDetected
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd())) //nolint:gosec // file descriptors fit in int
}
