package render

import (
	"fmt"
	"strings"

	"github.com/hyperterse/dataexplorer/core/domain"
)

// Format selects how a result is written out.
type Format string

const (
	FormatMarkdown Format = "markdown"
	FormatJSON     Format = "json"
)

// ParseFormat accepts "markdown" (or "md") and "json", case-insensitively.
// An empty string selects Markdown.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "markdown", "md":
		return FormatMarkdown, nil
	case "json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("unknown format %q (expected markdown or json)", s)
	}
}

// ContentType is the HTTP media type of the rendered output.
func (f Format) ContentType() string {
	if f == FormatJSON {
		return "application/json; charset=utf-8"
	}
	return "text/markdown; charset=utf-8"
}

// Render renders a result in the given format.
func Render(result *domain.QueryResult, format Format) (string, error) {
	if format == FormatJSON {
		return RenderJSON(result)
	}
	return ResultsToTable(result)
}
