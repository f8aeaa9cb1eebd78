package render

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hyperterse/dataexplorer/core/domain"
)

func decodeResult(t *testing.T, body string) *domain.QueryResult {
	t.Helper()
	var result domain.QueryResult
	require.NoError(t, json.Unmarshal([]byte(body), &result))
	return &result
}

func TestResultsToTable(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{
			name: "two columns",
			body: `{"columns":["a","b"],"rows":[[1,"x"],[2,"y"]]}`,
			want: "a | b\n---|---\n1 | x\n2 | y\n",
		},
		{
			name: "no rows",
			body: `{"columns":["a","b","c"],"rows":[]}`,
			want: "a | b | c\n---|---|---\n",
		},
		{
			name: "every value kind",
			body: `{"columns":["n","f","b","z","s","arr","obj"],"rows":[[7,1.5,true,null,"text",[1,null,"x"],{"b":1,"a":[2]}]]}`,
			want: "n | f | b | z | s | arr | obj\n---|---|---|---|---|---|---\n7 | 1.5 | true | null | text | 1,,x | {\"b\":1,\"a\":[2]}\n",
		},
		{
			name: "pipes are not escaped",
			body: `{"columns":["a"],"rows":[["x | y"]]}`,
			want: "a\n---\nx | y\n",
		},
		{
			name: "short rows render as-is",
			body: `{"columns":["a","b"],"rows":[[1]]}`,
			want: "a | b\n---|---\n1\n",
		},
		{
			name: "empty columns",
			body: `{"columns":[],"rows":[]}`,
			want: "\n\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ResultsToTable(decodeResult(t, tt.body))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResultsToTable_Shape(t *testing.T) {
	result := &domain.QueryResult{
		Columns: []string{"id", "name", "score", "active"},
		Rows: [][]domain.Value{
			{domain.Int(1), domain.String("sam"), domain.Float(0.25), domain.Bool(true)},
			{domain.Int(2), domain.String("alex"), domain.Null(), domain.Bool(false)},
			{domain.Int(3), domain.String("kim"), domain.Int(-4), domain.Null()},
		},
	}

	got, err := ResultsToTable(result)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSuffix(got, "\n"), "\n")
	require.Len(t, lines, 2+len(result.Rows))
	assert.Len(t, strings.Split(lines[0], " | "), len(result.Columns))
	assert.Equal(t, []string{"---", "---", "---", "---"}, strings.Split(lines[1], "|"))
	assert.Equal(t, "2 | alex | null | false", lines[3])

	again, err := ResultsToTable(result)
	require.NoError(t, err)
	assert.Equal(t, got, again)
}

func TestResultsToTable_MalformedInput(t *testing.T) {
	_, err := ResultsToTable(nil)
	assert.ErrorIs(t, err, ErrNilResult)

	_, err = ResultsToTable(decodeResult(t, `{"rows":[[1]]}`))
	assert.ErrorIs(t, err, ErrMissingColumns)

	_, err = ResultsToTable(decodeResult(t, `{"columns":["a"]}`))
	assert.ErrorIs(t, err, ErrMissingRows)

	_, err = ResultsToTable(decodeResult(t, `{"columns":["a"],"rows":null}`))
	assert.ErrorIs(t, err, ErrMissingRows)
}

func TestRenderJSON(t *testing.T) {
	result := decodeResult(t, `{"columns":["a"],"rows":[["<b>"]],"success":true,"result_count":1}`)

	got, err := RenderJSON(result)
	require.NoError(t, err)
	assert.Contains(t, got, `"<b>"`)
	assert.Contains(t, got, "\n  \"columns\": [")

	var back map[string]any
	require.NoError(t, json.Unmarshal([]byte(got), &back))
	assert.Equal(t, true, back["success"])

	_, err = RenderJSON(nil)
	assert.ErrorIs(t, err, ErrNilResult)
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{in: "", want: FormatMarkdown},
		{in: "markdown", want: FormatMarkdown},
		{in: "MD", want: FormatMarkdown},
		{in: " json ", want: FormatJSON},
		{in: "csv", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFormat(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRender(t *testing.T) {
	result := decodeResult(t, `{"columns":["a"],"rows":[[1]]}`)

	md, err := Render(result, FormatMarkdown)
	require.NoError(t, err)
	assert.Equal(t, "a\n---\n1\n", md)

	js, err := Render(result, FormatJSON)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(js, "{\n"))

	assert.Equal(t, "text/markdown; charset=utf-8", FormatMarkdown.ContentType())
	assert.Equal(t, "application/json; charset=utf-8", FormatJSON.ContentType())
}

func TestRenderDocument(t *testing.T) {
	reports := []*domain.Report{
		{Name: "top_users", Description: "Most active users", Table: "a\n---\n1\n"},
		nil,
		{Name: "flags", Table: "b\n---\n"},
	}

	got := RenderDocument(SectionsFromReports(reports))
	want := "## top_users\n\nMost active users\n\na\n---\n1\n" +
		"\n## flags\n\nb\n---\n"
	assert.Equal(t, want, got)
	assert.Empty(t, RenderDocument(nil))
}
