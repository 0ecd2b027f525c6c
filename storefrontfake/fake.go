// Package storefrontfake provides a deterministic fake of the remote
// e-commerce service plus assertion helpers for tests. It swaps the HTTP
// transport so no network is needed.
package storefrontfake

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/honeykokia/storefront"
)

// Response is one canned reply for a method+path route.
type Response struct {
	Status int
	Data   any    // marshalled into the { timestamp, data } envelope
	HTML   string // raw text/html body instead of JSON
	Raw    string // verbatim JSON body, bypassing the envelope
}

type route struct {
	method string
	path   string
}

// Fake routes gateway traffic to canned responses and records every call.
type Fake struct {
	mu        sync.Mutex
	routes    map[route]Response
	counts    map[route]int
	down      bool
	redirects int
}

// New creates an empty fake; unstubbed routes answer 404.
func New() *Fake {
	return &Fake{
		routes: make(map[route]Response),
		counts: make(map[route]int),
	}
}

// Client builds a storefront client wired to this fake: fake transport,
// in-memory credential vault, and a navigator that counts redirects.
func (f *Fake) Client(opts ...storefront.Option) *storefront.Client {
	base := []storefront.Option{
		storefront.WithHTTPClient(&http.Client{Transport: f}),
		storefront.WithNavigator(storefront.NavigatorFunc(f.recordRedirect)),
	}
	cfg := storefront.Config{
		BaseURL: "http://fake.invalid",
		Vault:   storefront.VaultConfig{Driver: storefront.VaultMemory},
	}
	return storefront.New(cfg, append(base, opts...)...)
}

// Stub registers a canned reply for method+path.
func (f *Fake) Stub(method, path string, res Response) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.routes[route{method, path}] = res
}

// SetDown makes every request fail at the transport level, simulating an
// unreachable service.
func (f *Fake) SetDown(down bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.down = down
}

// RoundTrip implements http.RoundTripper.
func (f *Fake) RoundTrip(req *http.Request) (*http.Response, error) {
	key := route{req.Method, req.URL.Path}

	f.mu.Lock()
	f.counts[key]++
	down := f.down
	res, ok := f.routes[key]
	f.mu.Unlock()

	if down {
		return nil, errors.New("storefrontfake: service down")
	}
	if !ok {
		return jsonResponse(req, http.StatusNotFound, []byte(`{"message":"not found"}`)), nil
	}
	if res.HTML != "" {
		return htmlResponse(req, res.Status, res.HTML), nil
	}
	if res.Raw != "" {
		return jsonResponse(req, res.Status, []byte(res.Raw)), nil
	}
	body, err := json.Marshal(struct {
		Timestamp int64 `json:"timestamp"`
		Data      any   `json:"data"`
	}{Timestamp: time.Now().Unix(), Data: res.Data})
	if err != nil {
		return nil, err
	}
	return jsonResponse(req, res.Status, body), nil
}

// Count returns calls for method+path.
func (f *Fake) Count(method, path string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.counts[route{method, path}]
}

// Redirects returns how many times the navigator was told to redirect.
func (f *Fake) Redirects() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.redirects
}

// Reset clears recorded counts and redirects; stubs survive.
func (f *Fake) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.counts = make(map[route]int)
	f.redirects = 0
}

// AssertCalled verifies method+path was requested the expected number of times.
func (f *Fake) AssertCalled(t *testing.T, method, path string, times int) {
	t.Helper()
	if got := f.Count(method, path); got != times {
		t.Fatalf("expected %s %s called %d times, got %d", method, path, times, got)
	}
}

// AssertNotCalled ensures method+path was never requested.
func (f *Fake) AssertNotCalled(t *testing.T, method, path string) {
	t.Helper()
	if got := f.Count(method, path); got != 0 {
		t.Fatalf("expected %s %s not called, got %d", method, path, got)
	}
}

func (f *Fake) recordRedirect() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.redirects++
}

func jsonResponse(req *http.Request, status int, body []byte) *http.Response {
	if status == 0 {
		status = http.StatusOK
	}
	return &http.Response{
		StatusCode: status,
		Header:     http.Header{"Content-Type": []string{"application/json"}},
		Body:       io.NopCloser(bytes.NewReader(body)),
		Request:    req,
	}
}

func htmlResponse(req *http.Request, status int, body string) *http.Response {
	if status == 0 {
		status = http.StatusOK
	}
	return &http.Response{
		StatusCode: status,
		Header:     http.Header{"Content-Type": []string{"text/html; charset=utf-8"}},
		Body:       io.NopCloser(bytes.NewReader([]byte(body))),
		Request:    req,
	}
}
