package discourse

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/hyperterse/dataexplorer/core/domain"
)

const (
	// APIUsername is the user the remote runs queries as
	APIUsername = "system"
	ContentType = "application/json; charset=UTF-8"
)

// BuildURL returns the query-runner endpoint for a query on a forum.
func BuildURL(hostname string, id domain.QueryID) string {
	return fmt.Sprintf("https://%s/admin/plugins/explorer/queries/%s/run", hostname, url.PathEscape(id.String()))
}

type runBody struct {
	Params string `json:"params"`
}

// EncodeBody builds the request body. The params are encoded to a JSON string
// first and that string is embedded in the outer object, which the remote
// expects. The outer object is indented by two spaces.
func EncodeBody(params map[string]string) ([]byte, error) {
	if params == nil {
		params = map[string]string{}
	}

	inner, err := encodeJSON(params, "")
	if err != nil {
		return nil, fmt.Errorf("encode params: %w", err)
	}

	body, err := encodeJSON(runBody{Params: string(inner)}, "  ")
	if err != nil {
		return nil, fmt.Errorf("encode body: %w", err)
	}
	return body, nil
}

func encodeJSON(v any, indent string) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if indent != "" {
		enc.SetIndent("", indent)
	}
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
