package storefront

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"sync"
	"time"
)

// routeTransport routes requests by "METHOD path" to canned handlers and
// counts every call. Unrouted requests answer 404.
type routeTransport struct {
	mu     sync.Mutex
	routes map[string]func(*http.Request) (*http.Response, error)
	counts map[string]int
	last   map[string]*http.Request
}

func newRouteTransport() *routeTransport {
	return &routeTransport{
		routes: make(map[string]func(*http.Request) (*http.Response, error)),
		counts: make(map[string]int),
		last:   make(map[string]*http.Request),
	}
}

func (t *routeTransport) handle(method, path string, fn func(*http.Request) (*http.Response, error)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.routes[method+" "+path] = fn
}

func (t *routeTransport) respond(method, path string, status int, data any) {
	t.handle(method, path, func(*http.Request) (*http.Response, error) {
		return envelopeResponse(status, data), nil
	})
}

func (t *routeTransport) fail(method, path string) {
	t.handle(method, path, func(*http.Request) (*http.Response, error) {
		return nil, errors.New("dial refused")
	})
}

func (t *routeTransport) count(method, path string) int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.counts[method+" "+path]
}

func (t *routeTransport) lastRequest(method, path string) *http.Request {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.last[method+" "+path]
}

func (t *routeTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	key := req.Method + " " + req.URL.Path
	if req.Body != nil {
		// Buffer the body so handlers and assertions can read it later.
		raw, _ := io.ReadAll(req.Body)
		req.Body = io.NopCloser(bytes.NewReader(raw))
	}

	t.mu.Lock()
	t.counts[key]++
	t.last[key] = req
	fn, ok := t.routes[key]
	t.mu.Unlock()

	if !ok {
		return rawResponse(http.StatusNotFound, "application/json", `{"message":"not found"}`), nil
	}
	return fn(req)
}

func envelopeResponse(status int, data any) *http.Response {
	body, _ := json.Marshal(struct {
		Timestamp int64 `json:"timestamp"`
		Data      any   `json:"data"`
	}{Timestamp: time.Now().Unix(), Data: data})
	return rawResponse(status, "application/json", string(body))
}

func rawResponse(status int, contentType, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Header:     http.Header{"Content-Type": []string{contentType}},
		Body:       io.NopCloser(bytes.NewReader([]byte(body))),
	}
}

// redirectCounter counts navigation redirects.
type redirectCounter struct {
	mu sync.Mutex
	n  int
}

func (r *redirectCounter) RedirectToLogin() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.n++
}

func (r *redirectCounter) total() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.n
}

// newTestClient wires a client to the transport with an in-memory vault.
func newTestClient(rt http.RoundTripper, opts ...Option) *Client {
	cfg := Config{
		BaseURL: "http://api.test",
		Vault:   VaultConfig{Driver: VaultMemory},
	}
	base := []Option{WithHTTPClient(&http.Client{Transport: rt})}
	return New(cfg, append(base, opts...)...)
}
