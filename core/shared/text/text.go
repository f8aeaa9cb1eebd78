package text

import "strings"

// Repeat returns s repeated count times. A count of zero or less yields "".
func Repeat(s string, count int) string {
	if count <= 0 {
		return ""
	}
	return strings.Repeat(s, count)
}

// Separator builds the Markdown header separator line for count columns,
// e.g. "---|---|---\n" for three columns.
func Separator(count int) string {
	separators := make([]string, 0, max(count, 0))
	for i := 0; i < count; i++ {
		separators = append(separators, "---")
	}
	return strings.Join(separators, "|") + "\n"
}
