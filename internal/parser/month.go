package parser

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/tidefield/wrapped/internal/domain"
)

var (
	isoDatePattern  = regexp.MustCompile(`^(\d{4})-(\d{1,2})-(\d{1,2})`)
	longDatePattern = regexp.MustCompile(`^([A-Za-z]+)\s+(\d+),\s+(\d+)`)
)

// monthYearToken normalizes a date string into the canonical "Mon YYYY"
// form. Two shapes are accepted: ISO dates ("2025-12-10", trailing content
// ignored) and long textual dates ("Jul 9, 2021, 5:04:57 PM", the time part
// ignored). Returns false when the input matches neither; callers skip such
// rows.
func monthYearToken(dateStr string) (string, bool) {
	dateStr = strings.TrimSpace(dateStr)

	if m := isoDatePattern.FindStringSubmatch(dateStr); m != nil {
		month, err := strconv.Atoi(m[2])
		if err != nil || month < 1 || month > 12 {
			return "", false
		}
		return domain.MonthTokens[month-1] + " " + m[1], true
	}

	if m := longDatePattern.FindStringSubmatch(dateStr); m != nil {
		token := m[1]
		if len(token) > 3 {
			token = token[:3]
		}
		if domain.ExpandMonth(token) == token {
			// Leading word is not a month abbreviation or full name.
			return "", false
		}
		return token + " " + m[3], true
	}

	return "", false
}
