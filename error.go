package gqlclient

import (
	"encoding/json"
	"fmt"
)

type ErrorLocation struct {
	Line   int `json:"line"`
	Column int `json:"column"`
}

type Error struct {
	Message    string          `json:"message"`
	Locations  []ErrorLocation `json:"locations,omitempty"`
	Path       []interface{}   `json:"path,omitempty"`
	Extensions json.RawMessage `json:"extensions,omitempty"`
}

func (err *Error) Error() string {
	return "gqlclient: server failure: " + err.Message
}

// HTTPError is returned when the server answers with a non-2xx status and
// no GraphQL response body.
type HTTPError struct {
	StatusCode int
	Body       string
}

func (err *HTTPError) Error() string {
	return fmt.Sprintf("gqlclient: HTTP %d", err.StatusCode)
}
