package logger

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"
)

// messager describes an error that can report its own message without the chain.
// zerr.Error provides it.
type messager interface {
	Message() string
	Metadata() map[string]any
}

// ErrorEntry is one level of an error chain.
type ErrorEntry struct {
	Message  string
	Metadata map[string]any
}

// collectErrorEntries walks the zerr chain of err, outermost first.
// A level without a message only carries metadata; it is folded into the level below.
func collectErrorEntries(err error) []ErrorEntry {
	var entries []ErrorEntry
	var carried map[string]any

	for current := err; current != nil; {
		m, ok := current.(messager)
		if !ok {
			// Standard error: its Error() already includes anything it wraps.
			entries = append(entries, ErrorEntry{Message: current.Error(), Metadata: carried})
			break
		}

		meta := m.Metadata()
		if carried != nil {
			maps.Copy(meta, carried)
			carried = nil
		}

		if m.Message() == "" && errors.Unwrap(current) != nil {
			carried = meta
		} else {
			entries = append(entries, ErrorEntry{Message: m.Message(), Metadata: meta})
		}
		current = errors.Unwrap(current)
	}

	return entries
}

// formatErrorEntries renders entries as "Error: ..." followed by an indented "Caused by:" list.
func formatErrorEntries(entries []ErrorEntry) string {
	var lines []string

	for i, entry := range entries {
		msgLines := strings.Split(entry.Message, "\n")

		var first, cont, metaIndent string
		if i == 0 {
			first = "Error: "
			cont = "       "
			metaIndent = "       "
		} else {
			if i == 1 {
				lines = append(lines, "", "  Caused by:")
			}
			first = "    → "
			cont = "      "
			metaIndent = "      "
		}

		lines = append(lines, first+msgLines[0])
		for _, line := range msgLines[1:] {
			lines = append(lines, cont+line)
		}
		for _, key := range slices.Sorted(maps.Keys(entry.Metadata)) {
			lines = append(lines, fmt.Sprintf("%s%s: %v", metaIndent, key, entry.Metadata[key]))
		}
	}

	return strings.Join(lines, "\n")
}
