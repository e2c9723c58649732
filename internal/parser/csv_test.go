package parser

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSplitLinesSkipsBlank(t *testing.T) {
	lines := splitLines("a\n\n  \nb\r\nc\n")
	require.Equal(t, []string{"a", "b\r", "c"}, lines)
}

func TestSplitFieldsQuotedComma(t *testing.T) {
	fields := splitFields(`Jan 2025,"Run, Trail",42.5`)
	require.Equal(t, []string{"Jan 2025", "Run, Trail", "42.5"}, fields)
}

func TestSplitFieldsTrimsWhitespace(t *testing.T) {
	fields := splitFields(` a , b ,c `)
	require.Equal(t, []string{"a", "b", "c"}, fields)
}

func TestSplitFieldsUnbalancedQuote(t *testing.T) {
	// An unterminated quote swallows the rest of the line into one field.
	fields := splitFields(`a,"b,c`)
	require.Equal(t, []string{"a", "b,c"}, fields)
}

func TestSplitFieldsEmptyLine(t *testing.T) {
	require.Equal(t, []string{""}, splitFields(""))
}
