package gqlclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/sirupsen/logrus"
)

// DefaultPath is the path the inventory backend serves GraphQL on.
const DefaultPath = "/graph/query"

type Client struct {
	endpoint string
	http     *http.Client
	header   http.Header
	log      logrus.FieldLogger
}

type Option func(*Client)

// WithLogger sets the logger used for request tracing.
func WithLogger(l logrus.FieldLogger) Option {
	return func(c *Client) {
		c.log = l
	}
}

// WithHeader adds a header sent with every request.
func WithHeader(key, value string) Option {
	return func(c *Client) {
		c.header.Add(key, value)
	}
}

// New creates a client for the GraphQL endpoint. A nil hc uses
// http.DefaultClient.
func New(endpoint string, hc *http.Client, opts ...Option) *Client {
	if hc == nil {
		hc = http.DefaultClient
	}
	c := &Client{
		endpoint: endpoint,
		http:     hc,
		header:   make(http.Header),
		log:      logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Endpoint returns the URL requests are posted to.
func (c *Client) Endpoint() string {
	return c.endpoint
}

type Operation struct {
	query string
	name  string
	vars  map[string]interface{}
}

func NewOperation(query string) *Operation {
	return &Operation{query: query}
}

func (op *Operation) Var(k string, v interface{}) {
	if op.vars == nil {
		op.vars = make(map[string]interface{})
	}
	op.vars[k] = v
}

// SetVars replaces all variables of the operation.
func (op *Operation) SetVars(vars map[string]interface{}) {
	op.vars = vars
}

// SetName selects the operation to run when the document holds several,
// and is sent as operationName.
func (op *Operation) SetName(name string) {
	op.name = name
}

func (op *Operation) Name() string {
	return op.name
}

// Response is a decoded GraphQL response. Data is the raw "data" member and
// may be JSON null; Errors holds every entry of "errors".
type Response struct {
	Data   json.RawMessage
	Errors []Error
}

// HasData reports whether the response carried a non-null data member.
func (r *Response) HasData() bool {
	return len(r.Data) > 0 && !bytes.Equal(bytes.TrimSpace(r.Data), []byte("null"))
}

// Do sends the operation and returns the decoded response. GraphQL errors
// are returned in Response.Errors; only failures to obtain a GraphQL
// response at all are returned as an error.
func (c *Client) Do(ctx context.Context, op *Operation) (*Response, error) {
	reqData := struct {
		Query         string                 `json:"query"`
		OperationName string                 `json:"operationName,omitempty"`
		Vars          map[string]interface{} `json:"variables"`
	}{
		Query:         op.query,
		OperationName: op.name,
		Vars:          op.vars,
	}

	var reqBuf bytes.Buffer
	if err := json.NewEncoder(&reqBuf).Encode(&reqData); err != nil {
		return nil, fmt.Errorf("failed to encode request payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, &reqBuf)
	if err != nil {
		return nil, fmt.Errorf("failed to create HTTP request: %w", err)
	}
	for k, values := range c.header {
		for _, v := range values {
			req.Header.Add(k, v)
		}
	}
	req.Header.Set("Content-Type", "application/json; charset=utf-8")
	req.Header.Set("Accept", "application/json")

	c.log.WithFields(logrus.Fields{
		"endpoint":  c.endpoint,
		"operation": op.name,
	}).Debug("sending GraphQL request")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	var respData struct {
		Data   json.RawMessage `json:"data"`
		Errors []Error         `json:"errors"`
	}
	decodeErr := json.Unmarshal(body, &respData)
	if resp.StatusCode/100 != 2 && (decodeErr != nil || (respData.Data == nil && len(respData.Errors) == 0)) {
		return nil, &HTTPError{StatusCode: resp.StatusCode, Body: string(body)}
	}
	if decodeErr != nil {
		return nil, fmt.Errorf("failed to decode response payload: %w", decodeErr)
	}

	return &Response{Data: respData.Data, Errors: respData.Errors}, nil
}

// Execute sends the operation, decodes the data member into data and
// returns the first GraphQL error, if any.
func (c *Client) Execute(ctx context.Context, op *Operation, data interface{}) error {
	resp, err := c.Do(ctx, op)
	if err != nil {
		return err
	}

	if data != nil && resp.HasData() {
		if err := json.Unmarshal(resp.Data, data); err != nil {
			return fmt.Errorf("failed to decode response data: %w", err)
		}
	}

	if len(resp.Errors) > 0 {
		return &resp.Errors[0]
	}
	return nil
}
