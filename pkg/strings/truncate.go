package strings

import (
	"strings"
)

// DescriptionColumnWidth bounds operation and category descriptions in
// narrow table output.
const DescriptionColumnWidth = 72

// MinTruncateLen is the smallest maxLen honoured by Truncate; it leaves room
// for one character plus "...".
const MinTruncateLen = 4

// Truncate shortens s to at most maxLen runes, ending in "..." when cut.
// Multi-byte characters are never split.
func Truncate(s string, maxLen int) string {
	if maxLen < MinTruncateLen {
		maxLen = MinTruncateLen
	}
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	return string(runes[:maxLen-3]) + "..."
}

// TruncateLine collapses all whitespace runs in s to single spaces and
// then truncates it like Truncate.
func TruncateLine(s string, maxLen int) string {
	return Truncate(strings.Join(strings.Fields(s), " "), maxLen)
}
