package testutil

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
)

// TileServer is an HTTP tile endpoint for tests. Every request is answered
// with its own URL path as the body unless the path was registered as
// failing.
type TileServer struct {
	*httptest.Server

	mu       sync.Mutex
	failures map[string]int
	prefixes map[string]int
	hits     map[string]int
}

// NewTileServer starts a tile server and registers its shutdown with t.
func NewTileServer(t *testing.T) *TileServer {
	t.Helper()
	ts := &TileServer{
		failures: make(map[string]int),
		prefixes: make(map[string]int),
		hits:     make(map[string]int),
	}
	ts.Server = httptest.NewServer(http.HandlerFunc(ts.serve))
	t.Cleanup(ts.Close)
	return ts
}

// FailPath answers the exact path with the given status code.
func (ts *TileServer) FailPath(path string, status int) *TileServer {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	ts.failures[path] = status
	return ts
}

// FailPrefix answers every path below prefix with the given status code.
func (ts *TileServer) FailPrefix(prefix string, status int) *TileServer {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	ts.prefixes[prefix] = status
	return ts
}

// Hits returns how often path was requested.
func (ts *TileServer) Hits(path string) int {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	return ts.hits[path]
}

// Template returns a tile URL template below prefix, e.g. "http://127.0.0.1:1234/base/{z}/{x}/{y}.png".
func (ts *TileServer) Template(prefix string) string {
	base := ts.URL + "/"
	if p := strings.Trim(prefix, "/"); p != "" {
		base += p + "/"
	}
	return base + "{z}/{x}/{y}.png"
}

func (ts *TileServer) serve(w http.ResponseWriter, r *http.Request) {
	ts.mu.Lock()
	ts.hits[r.URL.Path]++
	status, failed := ts.failures[r.URL.Path]
	if !failed {
		for prefix, code := range ts.prefixes {
			if strings.HasPrefix(r.URL.Path, prefix) {
				status, failed = code, true
				break
			}
		}
	}
	ts.mu.Unlock()

	if failed {
		w.WriteHeader(status)
		return
	}
	_, _ = w.Write([]byte(r.URL.Path))
}
