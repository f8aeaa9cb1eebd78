package render

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/hyperterse/dataexplorer/core/domain"
	"github.com/hyperterse/dataexplorer/core/shared/text"
)

var (
	ErrNilResult      = errors.New("render: result is nil")
	ErrMissingColumns = errors.New("render: result has no columns field")
	ErrMissingRows    = errors.New("render: result has no rows field")
)

const cellSeparator = " | "

// ResultsToTable renders the columns and rows of a result as a Markdown pipe
// table. Only Columns and Rows are read and both must be present; an empty
// rows list renders the header alone. Cell text is not escaped, so a value
// containing "|" or a newline breaks the table layout.
func ResultsToTable(result *domain.QueryResult) (string, error) {
	if result == nil {
		return "", ErrNilResult
	}
	if result.Columns == nil {
		return "", ErrMissingColumns
	}
	if result.Rows == nil {
		return "", ErrMissingRows
	}

	var b strings.Builder
	b.WriteString(strings.Join(result.Columns, cellSeparator))
	b.WriteString("\n")
	b.WriteString(text.Separator(len(result.Columns)))

	for _, row := range result.Rows {
		for i, cell := range row {
			if i > 0 {
				b.WriteString(cellSeparator)
			}
			b.WriteString(cell.String())
		}
		b.WriteString("\n")
	}

	return b.String(), nil
}

// RenderJSON renders the full result as indented JSON.
func RenderJSON(result *domain.QueryResult) (string, error) {
	if result == nil {
		return "", ErrNilResult
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(result); err != nil {
		return "", fmt.Errorf("render: encode result: %w", err)
	}
	return buf.String(), nil
}
