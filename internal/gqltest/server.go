// Package gqltest provides a scripted GraphQL endpoint for tests.
package gqltest

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
)

// Request is a GraphQL request as received by the server.
type Request struct {
	Query         string                 `json:"query"`
	OperationName string                 `json:"operationName"`
	Variables     map[string]interface{} `json:"variables"`
	Header        http.Header            `json:"-"`
}

// Reply produces the HTTP status and body for a request.
type Reply func(req Request) (status int, body string)

type Server struct {
	*httptest.Server

	mu       sync.Mutex
	replies  map[string]Reply
	requests []Request
}

// NewServer starts a server that is closed when the test ends. Operations
// without a registered reply get {"data":null}.
func NewServer(t testing.TB) *Server {
	s := &Server{replies: make(map[string]Reply)}
	s.Server = httptest.NewServer(http.HandlerFunc(s.serveHTTP))
	t.Cleanup(s.Close)
	return s
}

// Handle registers the reply for an operation name.
func (s *Server) Handle(operationName string, reply Reply) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.replies[operationName] = reply
}

// Respond registers a fixed 200 reply for an operation name.
func (s *Server) Respond(operationName, body string) {
	s.Handle(operationName, func(Request) (int, string) {
		return http.StatusOK, body
	})
}

// Requests returns the requests received so far.
func (s *Server) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Request(nil), s.requests...)
}

// Count returns how many requests named operationName were received.
func (s *Server) Count(operationName string) int {
	n := 0
	for _, req := range s.Requests() {
		if req.OperationName == operationName {
			n++
		}
	}
	return n
}

func (s *Server) serveHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	b, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	var req Request
	if err := json.Unmarshal(b, &req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	req.Header = r.Header.Clone()

	s.mu.Lock()
	s.requests = append(s.requests, req)
	reply, ok := s.replies[req.OperationName]
	s.mu.Unlock()

	status, body := http.StatusOK, `{"data":null}`
	if ok {
		status, body = reply(req)
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = io.WriteString(w, body)
}
