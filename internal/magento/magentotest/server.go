// Package magentotest provides a fake Magento GraphQL endpoint that records
// every operation it receives.
package magentotest

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
)

// Call is one recorded GraphQL operation.
type Call struct {
	Kind      string // "query" or "mutation"
	Operation string
	Variables map[string]any
	Token     string
}

// Responder produces the HTTP status and JSON body for one call.
type Responder func(call Call) (int, any)

// Server is an httptest.Server speaking just enough GraphQL for tests.
// Unregistered operations answer with a GraphQL error.
type Server struct {
	*httptest.Server

	mu       sync.Mutex
	calls    []Call
	handlers map[string]Responder
}

// NewServer starts a fake endpoint and closes it when the test ends.
func NewServer(t testing.TB) *Server {
	t.Helper()
	s := &Server{handlers: make(map[string]Responder)}
	s.Server = httptest.NewServer(http.HandlerFunc(s.serve))
	t.Cleanup(s.Close)
	return s
}

// GraphQLURL returns the endpoint URL to configure clients with.
func (s *Server) GraphQLURL() string {
	return s.Server.URL + "/graphql"
}

// Handle answers op with {"data": data}.
func (s *Server) Handle(op string, data any) {
	s.HandleFunc(op, func(Call) (int, any) {
		return http.StatusOK, map[string]any{"data": data}
	})
}

// HandleErrors answers op with GraphQL errors carrying the given messages.
func (s *Server) HandleErrors(op string, messages ...string) {
	s.HandleFunc(op, func(Call) (int, any) {
		return http.StatusOK, ErrorBody(messages...)
	})
}

// HandleFunc registers a custom responder for op.
func (s *Server) HandleFunc(op string, fn Responder) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.handlers[op] = fn
}

// Calls returns a copy of every recorded call in arrival order.
func (s *Server) Calls() []Call {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Call, len(s.calls))
	copy(out, s.calls)
	return out
}

// Operations returns the recorded operation names in order.
func (s *Server) Operations() []string {
	var ops []string
	for _, c := range s.Calls() {
		ops = append(ops, c.Operation)
	}
	return ops
}

// Mutations returns the recorded mutation names in order.
func (s *Server) Mutations() []string {
	var ops []string
	for _, c := range s.Calls() {
		if c.Kind == "mutation" {
			ops = append(ops, c.Operation)
		}
	}
	return ops
}

// LastCall returns the most recent call for op.
func (s *Server) LastCall(op string) (Call, bool) {
	calls := s.Calls()
	for i := len(calls) - 1; i >= 0; i-- {
		if calls[i].Operation == op {
			return calls[i], true
		}
	}
	return Call{}, false
}

// ErrorBody builds a GraphQL error response body.
func ErrorBody(messages ...string) map[string]any {
	errs := make([]map[string]any, 0, len(messages))
	for _, m := range messages {
		errs = append(errs, map[string]any{"message": m})
	}
	return map[string]any{"errors": errs}
}

func (s *Server) serve(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Query     string         `json:"query"`
		Variables map[string]any `json:"variables"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	call := Call{Variables: req.Variables}
	call.Kind, call.Operation = parseOperation(req.Query)
	call.Token = strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")

	s.mu.Lock()
	s.calls = append(s.calls, call)
	fn := s.handlers[call.Operation]
	s.mu.Unlock()

	status, body := http.StatusOK, any(ErrorBody("unhandled operation "+call.Operation))
	if fn != nil {
		status, body = fn(call)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func parseOperation(query string) (kind, name string) {
	fields := strings.Fields(query)
	for i := 0; i+1 < len(fields); i++ {
		if fields[i] != "query" && fields[i] != "mutation" {
			continue
		}
		name = fields[i+1]
		if j := strings.IndexAny(name, "({"); j >= 0 {
			name = name[:j]
		}
		return fields[i], name
	}
	return "query", ""
}
