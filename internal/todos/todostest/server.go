// Package todostest provides an in-memory todo collection served over HTTP
// for tests. It behaves like a json-server /todos resource.
package todostest

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"

	"github.com/five82/docket/internal/todos"
)

// Request records one call received by the server.
type Request struct {
	Method string
	Path   string
	Body   map[string]any
}

// Server is an httptest.Server backed by an ordered in-memory collection.
type Server struct {
	*httptest.Server

	mu         sync.Mutex
	items      []todos.Item
	requests   []Request
	listStatus int
	listBody   string
	failWrites int
}

// New starts a Server seeded with items and closes it on test cleanup.
func New(t testing.TB, items ...todos.Item) *Server {
	t.Helper()
	s := &Server{items: append([]todos.Item(nil), items...)}
	mux := http.NewServeMux()
	mux.HandleFunc("GET /todos", s.handleList)
	mux.HandleFunc("POST /todos", s.handleCreate)
	mux.HandleFunc("GET /todos/{id}", s.handleGet)
	mux.HandleFunc("PUT /todos/{id}", s.handleUpdate)
	mux.HandleFunc("DELETE /todos/{id}", s.handleDelete)
	s.Server = httptest.NewServer(mux)
	t.Cleanup(s.Close)
	return s
}

// Items returns a copy of the stored collection.
func (s *Server) Items() []todos.Item {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]todos.Item(nil), s.items...)
}

// Requests returns a copy of every request seen so far.
func (s *Server) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Request(nil), s.requests...)
}

// LastWrite returns the most recent non-GET request.
func (s *Server) LastWrite() (Request, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := len(s.requests) - 1; i >= 0; i-- {
		if s.requests[i].Method != http.MethodGet {
			return s.requests[i], true
		}
	}
	return Request{}, false
}

// FailList makes GET /todos answer with status (0 restores normal behaviour).
func (s *Server) FailList(status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listStatus = status
}

// ServeListBody makes GET /todos answer with a raw body ("" restores normal behaviour).
func (s *Server) ServeListBody(body string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listBody = body
}

// FailWrites makes write requests answer with status (0 restores normal behaviour).
func (s *Server) FailWrites(status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failWrites = status
}

func (s *Server) record(r *http.Request) map[string]any {
	var body map[string]any
	if r.Body != nil {
		raw, _ := io.ReadAll(r.Body)
		if len(raw) > 0 {
			_ = json.Unmarshal(raw, &body)
		}
	}
	s.requests = append(s.requests, Request{Method: r.Method, Path: r.URL.Path, Body: body})
	return body
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.record(r)
	if s.listStatus != 0 {
		http.Error(w, "list failed", s.listStatus)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	if s.listBody != "" {
		_, _ = io.WriteString(w, s.listBody)
		return
	}
	out := s.items
	if out == nil {
		out = []todos.Item{}
	}
	_ = json.NewEncoder(w).Encode(out)
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.record(r)
	idx := s.indexOf(r.PathValue("id"))
	if idx < 0 {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(s.items[idx])
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	body := s.record(r)
	if s.failWrites != 0 {
		http.Error(w, "write failed", s.failWrites)
		return
	}
	item := itemFromBody(body)
	if item.ID == 0 {
		item.ID = todos.NextID(todos.IDMax, s.items)
	}
	s.items = append(s.items, item)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(item)
}

func (s *Server) handleUpdate(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	body := s.record(r)
	if s.failWrites != 0 {
		http.Error(w, "write failed", s.failWrites)
		return
	}
	idx := s.indexOf(r.PathValue("id"))
	if idx < 0 {
		http.NotFound(w, r)
		return
	}
	item := itemFromBody(body)
	item.ID = s.items[idx].ID
	s.items[idx] = item
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(item)
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.record(r)
	if s.failWrites != 0 {
		http.Error(w, "write failed", s.failWrites)
		return
	}
	idx := s.indexOf(r.PathValue("id"))
	if idx < 0 {
		http.NotFound(w, r)
		return
	}
	s.items = append(s.items[:idx], s.items[idx+1:]...)
	w.WriteHeader(http.StatusOK)
	_, _ = io.WriteString(w, "{}")
}

func (s *Server) indexOf(raw string) int {
	id, err := strconv.Atoi(raw)
	if err != nil {
		return -1
	}
	for i, it := range s.items {
		if it.ID == id {
			return i
		}
	}
	return -1
}

func itemFromBody(body map[string]any) todos.Item {
	var item todos.Item
	if v, ok := body["id"].(float64); ok {
		item.ID = int(v)
	}
	if v, ok := body["title"].(string); ok {
		item.Title = v
	}
	if v, ok := body["checked"].(bool); ok {
		item.Checked = v
	}
	return item
}
