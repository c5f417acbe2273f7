// Package pantrytest provides an in-memory stand-in for the Pantry basket API.
package pantrytest

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Request records one call received by the fake service.
type Request struct {
	Method     string
	PantryID   string
	BasketName string
	Body       string
}

type fault struct {
	body   string
	status int
}

// Server is a fake Pantry API backed by a map.
type Server struct {
	srv *httptest.Server

	mu       sync.Mutex
	baskets  map[string][]byte
	requests []Request
	faults   map[string][]fault
}

// New starts a fake service that is closed when the test ends.
func New(t testing.TB) *Server {
	t.Helper()

	s := &Server{
		baskets: make(map[string][]byte),
		faults:  make(map[string][]fault),
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Route("/apiv1/pantry/{pantryID}/basket/{basketName}", func(r chi.Router) {
		r.Use(s.intercept)
		r.Get("/", s.handleGet)
		r.Post("/", s.handlePost)
		r.Delete("/", s.handleDelete)
	})

	s.srv = httptest.NewServer(r)
	t.Cleanup(s.srv.Close)
	return s
}

// BaseURL is the API root to hand to pantry.New.
func (s *Server) BaseURL() string {
	return s.srv.URL + "/apiv1/pantry"
}

// Seed stores contents as the basket's current document.
func (s *Server) Seed(pantryID, basketName string, contents map[string]any) {
	data, err := json.Marshal(contents)
	if err != nil {
		panic(fmt.Sprintf("pantrytest: seed %s: %v", basketName, err))
	}
	s.SeedRaw(pantryID, basketName, string(data))
}

// SeedRaw stores body verbatim, which allows malformed documents.
func (s *Server) SeedRaw(pantryID, basketName, body string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.baskets[key(pantryID, basketName)] = []byte(body)
}

// Basket returns the stored document decoded, and whether it exists.
func (s *Server) Basket(pantryID, basketName string) (map[string]any, bool) {
	s.mu.Lock()
	data, ok := s.baskets[key(pantryID, basketName)]
	s.mu.Unlock()
	if !ok {
		return nil, false
	}

	var contents map[string]any
	if err := json.Unmarshal(data, &contents); err != nil {
		return nil, true
	}
	return contents, true
}

// FailNext makes the next request with method answer status with body.
// Calls queue up in order.
func (s *Server) FailNext(method string, status int, body string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.faults[method] = append(s.faults[method], fault{status: status, body: body})
}

// Requests returns every request received so far.
func (s *Server) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Request, len(s.requests))
	copy(out, s.requests)
	return out
}

// Count returns how many requests used method.
func (s *Server) Count(method string) int {
	n := 0
	for _, r := range s.Requests() {
		if r.Method == method {
			n++
		}
	}
	return n
}

// intercept records the request and applies any queued fault.
func (s *Server) intercept(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		r.Body = io.NopCloser(bytes.NewReader(body))

		s.mu.Lock()
		s.requests = append(s.requests, Request{
			Method:     r.Method,
			PantryID:   param(r, "pantryID"),
			BasketName: param(r, "basketName"),
			Body:       string(body),
		})
		var f *fault
		if queued := s.faults[r.Method]; len(queued) > 0 {
			f = &queued[0]
			s.faults[r.Method] = queued[1:]
		}
		s.mu.Unlock()

		if f != nil {
			http.Error(w, f.body, f.status)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	basket := param(r, "basketName")

	s.mu.Lock()
	data, ok := s.baskets[key(param(r, "pantryID"), basket)]
	s.mu.Unlock()

	if !ok {
		http.Error(w, fmt.Sprintf("Could not get basket %s", basket), http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(data)
}

func (s *Server) handlePost(w http.ResponseWriter, r *http.Request) {
	basket := param(r, "basketName")

	var contents map[string]any
	data, err := io.ReadAll(r.Body)
	if err != nil || json.Unmarshal(data, &contents) != nil || contents == nil {
		http.Error(w, "Basket contents must be a JSON object", http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	s.baskets[key(param(r, "pantryID"), basket)] = data
	s.mu.Unlock()

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	fmt.Fprintf(w, "Your Pantry was updated with basket: %s!", basket)
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	basket := param(r, "basketName")
	k := key(param(r, "pantryID"), basket)

	s.mu.Lock()
	_, ok := s.baskets[k]
	delete(s.baskets, k)
	s.mu.Unlock()

	if !ok {
		http.Error(w, fmt.Sprintf("Could not delete basket %s", basket), http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	fmt.Fprintf(w, "%s was removed from your Pantry!", basket)
}

func param(r *http.Request, name string) string {
	raw := chi.URLParam(r, name)
	if v, err := url.PathUnescape(raw); err == nil {
		return v
	}
	return raw
}

func key(pantryID, basketName string) string {
	return pantryID + "\x00" + basketName
}
