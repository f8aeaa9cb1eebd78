package discourse

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
)

// StatusError is returned when the remote answers with anything but 200.
// The response body is discarded.
type StatusError struct {
	StatusCode int
	StatusText string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%d %s", e.StatusCode, e.StatusText)
}

func newStatusError(resp *http.Response) *StatusError {
	text := strings.TrimSpace(strings.TrimPrefix(resp.Status, strconv.Itoa(resp.StatusCode)))
	if text == "" {
		text = http.StatusText(resp.StatusCode)
	}
	return &StatusError{StatusCode: resp.StatusCode, StatusText: text}
}
