// Package sleepertest serves canned Sleeper API responses for tests.
package sleepertest

import (
	"embed"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"

	"github.com/go-chi/chi/v5"
)

//go:embed testdata
var testdata embed.FS

// LeagueID is the only league the fake server knows about.
const LeagueID = "1180000000000000000"

// Server is an httptest server mimicking the Sleeper v1 API.
type Server struct {
	s        *httptest.Server
	mu       sync.Mutex
	failures map[string]int
	hits     sync.Map
	gate     chan struct{}
	gated    atomic.Bool
}

func NewServer() *Server {
	f := &Server{failures: make(map[string]int)}

	r := chi.NewRouter()
	r.Use(f.count, f.failInjected, f.waitGate)
	r.Route("/v1", func(r chi.Router) {
		r.Get("/state/{sport}", f.file("state.json"))
		r.Get("/players/{sport}", f.file("players.json"))
		r.Route("/league/{leagueID}", func(r chi.Router) {
			r.Get("/users", f.leagueFile("users.json"))
			r.Get("/rosters", f.leagueFile("rosters.json"))
			r.Get("/matchups/{week}", f.matchups)
		})
	})

	f.s = httptest.NewServer(r)
	return f
}

func (f *Server) Close() {
	f.Release()
	f.s.Close()
}

// URL is the base URL including the /v1 prefix.
func (f *Server) URL() string {
	return f.s.URL + "/v1"
}

// FailNext makes the next n requests to path answer with status 503.
func (f *Server) FailNext(path string, n int) {
	f.mu.Lock()
	f.failures["/v1"+path] += n
	f.mu.Unlock()
}

// Hits reports how many requests reached path.
func (f *Server) Hits(path string) int {
	v, ok := f.hits.Load("/v1" + path)
	if !ok {
		return 0
	}
	return int(v.(*atomic.Int64).Load())
}

// Hold blocks every request until Release is called.
func (f *Server) Hold() {
	f.mu.Lock()
	f.gate = make(chan struct{})
	f.mu.Unlock()
	f.gated.Store(true)
}

func (f *Server) Release() {
	if !f.gated.CompareAndSwap(true, false) {
		return
	}
	f.mu.Lock()
	close(f.gate)
	f.mu.Unlock()
}

func (f *Server) count(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		v, _ := f.hits.LoadOrStore(r.URL.Path, &atomic.Int64{})
		v.(*atomic.Int64).Add(1)
		next.ServeHTTP(w, r)
	})
}

func (f *Server) failInjected(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		remaining := f.failures[r.URL.Path]
		if remaining > 0 {
			f.failures[r.URL.Path] = remaining - 1
		}
		f.mu.Unlock()

		if remaining > 0 {
			http.Error(w, `{"error":"upstream unavailable"}`, http.StatusServiceUnavailable)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (f *Server) waitGate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if f.gated.Load() {
			f.mu.Lock()
			gate := f.gate
			f.mu.Unlock()
			select {
			case <-gate:
			case <-r.Context().Done():
				return
			}
		}
		next.ServeHTTP(w, r)
	})
}

func (f *Server) file(name string) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		serveFile(w, name)
	}
}

// leagueFile mirrors Sleeper answering null for unknown leagues.
func (f *Server) leagueFile(name string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if chi.URLParam(r, "leagueID") != LeagueID {
			writeRaw(w, []byte("null"))
			return
		}
		serveFile(w, name)
	}
}

func (f *Server) matchups(w http.ResponseWriter, r *http.Request) {
	if chi.URLParam(r, "leagueID") != LeagueID || chi.URLParam(r, "week") != "5" {
		writeRaw(w, []byte("[]"))
		return
	}
	serveFile(w, "matchups_5.json")
}

func serveFile(w http.ResponseWriter, name string) {
	raw, err := testdata.ReadFile("testdata/" + name)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeRaw(w, raw)
}

func writeRaw(w http.ResponseWriter, raw []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(raw)
}
