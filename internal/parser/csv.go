// Package parser extracts normalized rows from fitness-tracker export
// files. Extraction is line-tolerant: malformed rows are skipped silently
// and only whole-file failures are reported as errors.
package parser

import "strings"

// splitLines returns the non-blank lines of the raw export text.
func splitLines(text string) []string {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

// splitFields splits one CSV line into trimmed fields. A double quote
// toggles quoted state; commas inside quotes are not separators. Unbalanced
// quotes are tolerated: remaining characters accumulate into the last field.
func splitFields(line string) []string {
	var fields []string
	var current strings.Builder
	inQuotes := false

	for _, ch := range line {
		switch {
		case ch == '"':
			inQuotes = !inQuotes
		case ch == ',' && !inQuotes:
			fields = append(fields, strings.TrimSpace(current.String()))
			current.Reset()
		default:
			current.WriteRune(ch)
		}
	}
	fields = append(fields, strings.TrimSpace(current.String()))
	return fields
}
