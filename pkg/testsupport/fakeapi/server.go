// Package fakeapi serves an in-memory rendition of the finance API: every
// resource offers list, deleted list, get, create, update, soft delete,
// restore and force delete. It backs page tests and local development.
package fakeapi

import (
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DefaultResources are the collections served when none are configured.
var DefaultResources = []string{
	"users", "accounts", "categories", "category_types",
	"transactions", "financial_goals", "users_accounts",
}

// Request is one call received by the server.
type Request struct {
	Method string
	Path   string
	Body   map[string]any
}

type failure struct {
	status  int
	message string
}

type collection struct {
	order   []string
	records map[string]map[string]any
}

// Server is the fake API. Its zero value is not usable; call New.
type Server struct {
	mu        sync.Mutex
	data      map[string]*collection
	required  map[string][]string
	failures  map[string]failure
	requests  []Request
	now       func() time.Time
	newID     func() string
	logger    *zap.Logger
	router    chi.Router
	timestamp string
}

// Option configures a Server.
type Option func(*Server)

// WithResources replaces the served collections.
func WithResources(resources ...string) Option {
	return func(s *Server) {
		s.data = make(map[string]*collection, len(resources))
		for _, name := range resources {
			s.data[name] = newCollection()
		}
	}
}

// WithRequired makes create reject payloads missing any of fields with a
// 422 validation response.
func WithRequired(resource string, fields ...string) Option {
	return func(s *Server) {
		s.required[resource] = append([]string(nil), fields...)
	}
}

// WithClock overrides the timestamp source.
func WithClock(now func() time.Time) Option {
	return func(s *Server) {
		if now != nil {
			s.now = now
		}
	}
}

// WithIDs overrides id generation.
func WithIDs(newID func() string) Option {
	return func(s *Server) {
		if newID != nil {
			s.newID = newID
		}
	}
}

// WithLogger logs every request.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

func newCollection() *collection {
	return &collection{records: make(map[string]map[string]any)}
}

// New builds a server with empty collections.
func New(opts ...Option) *Server {
	s := &Server{
		required:  make(map[string][]string),
		failures:  make(map[string]failure),
		now:       time.Now,
		newID:     uuid.NewString,
		logger:    zap.NewNop(),
		timestamp: "2006-01-02T15:04:05.000000",
	}
	WithResources(DefaultResources...)(s)
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	s.router = s.routes()
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(s.record)
	r.Get("/{resource}/all", s.handleList(false))
	r.Get("/{resource}/deleted", s.handleList(true))
	r.Post("/{resource}/create", s.handleCreate)
	r.Get("/{resource}/{id}", s.handleGet)
	r.Patch("/{resource}/{id}/update", s.handleUpdate)
	r.Delete("/{resource}/{id}/delete", s.handleDelete)
	r.Post("/{resource}/{id}/restore", s.handleRestore)
	r.Delete("/{resource}/{id}/force-delete", s.handleForceDelete)
	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusNotFound, map[string]string{"detail": "Not Found"})
	})
	return r
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// record logs the request and answers with an injected failure when one is
// queued for the method and path.
func (s *Server) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		if r.Body != nil {
			data, _ := io.ReadAll(r.Body)
			r.Body.Close()
			if len(data) > 0 {
				_ = json.Unmarshal(data, &body)
			}
			r.Body = io.NopCloser(strings.NewReader(string(data)))
		}

		key := r.Method + " " + r.URL.Path
		s.mu.Lock()
		s.requests = append(s.requests, Request{Method: r.Method, Path: r.URL.Path, Body: body})
		fail, failing := s.failures[key]
		if failing {
			delete(s.failures, key)
		}
		s.mu.Unlock()

		s.logger.Debug("fakeapi request", zap.String("method", r.Method), zap.String("path", r.URL.Path))
		if failing {
			writeJSON(w, fail.status, map[string]string{"message": fail.message})
			return
		}
		next.ServeHTTP(w, r)
	})
}

// FailNext makes the next request to method and path fail with status and a
// {"message": ...} body.
func (s *Server) FailNext(method, path string, status int, message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[strings.ToUpper(method)+" "+path] = failure{status: status, message: message}
}

// Requests returns the calls received so far.
func (s *Server) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Request(nil), s.requests...)
}

// Calls returns the received calls as "METHOD /path" strings.
func (s *Server) Calls() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.requests))
	for i, req := range s.requests {
		out[i] = req.Method + " " + req.Path
	}
	return out
}

// ResetRequests clears the request log.
func (s *Server) ResetRequests() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.requests = nil
}

// Seed stores a live record and returns its id. A missing id is generated.
func (s *Server) Seed(resource string, record map[string]any) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	coll, ok := s.data[resource]
	if !ok {
		coll = newCollection()
		s.data[resource] = coll
	}
	stored := s.stamp(cloneRecord(record), true)
	id := fmt.Sprint(stored["id"])
	coll.put(id, stored)
	return id
}

// Record returns a stored record, live or deleted.
func (s *Server) Record(resource, id string) (map[string]any, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	coll, ok := s.data[resource]
	if !ok {
		return nil, false
	}
	record, ok := coll.records[id]
	if !ok {
		return nil, false
	}
	return cloneRecord(record), true
}

// Count reports the number of stored records, deleted ones included.
func (s *Server) Count(resource string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	coll, ok := s.data[resource]
	if !ok {
		return 0
	}
	return len(coll.order)
}

func (s *Server) stamp(record map[string]any, created bool) map[string]any {
	now := s.now().UTC().Format(s.timestamp)
	if created {
		if id, _ := record["id"].(string); id == "" {
			record["id"] = s.newID()
		}
		if _, ok := record["created_at"]; !ok {
			record["created_at"] = now
		}
		if _, ok := record["deleted_at"]; !ok {
			record["deleted_at"] = nil
		}
	}
	record["updated_at"] = now
	return record
}

func (c *collection) put(id string, record map[string]any) {
	if _, exists := c.records[id]; !exists {
		c.order = append(c.order, id)
	}
	c.records[id] = record
}

func (c *collection) remove(id string) {
	delete(c.records, id)
	for i, existing := range c.order {
		if existing == id {
			c.order = append(c.order[:i], c.order[i+1:]...)
			return
		}
	}
}

func (c *collection) list(deleted bool) []map[string]any {
	out := make([]map[string]any, 0, len(c.order))
	for _, id := range c.order {
		record := c.records[id]
		if isDeleted(record) != deleted {
			continue
		}
		out = append(out, cloneRecord(record))
	}
	return out
}

func isDeleted(record map[string]any) bool {
	value, ok := record["deleted_at"]
	return ok && value != nil
}

func cloneRecord(record map[string]any) map[string]any {
	out := make(map[string]any, len(record))
	for k, v := range record {
		out[k] = v
	}
	return out
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
