package server

import (
	"context"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"go.uber.org/goleak"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type captureRecorder struct {
	mu      sync.Mutex
	ops     []string
	success []bool
}

func (c *captureRecorder) Observe(_ context.Context, op string, success bool, _ time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ops = append(c.ops, op)
	c.success = append(c.success, success)
}

var appHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path == "/boom" {
		http.Error(w, "boom", http.StatusInternalServerError)
		return
	}
	_, _ = io.WriteString(w, "dashboard")
})

func TestNewValidatesConfig(t *testing.T) {
	if _, err := New(Config{}, appHandler, Options{}); err == nil {
		t.Fatalf("expected error for empty address")
	}
	if _, err := New(Config{Addr: "127.0.0.1:0"}, nil, Options{}); err == nil {
		t.Fatalf("expected error for nil handler")
	}
	srv, err := New(Config{Addr: " 127.0.0.1:0 "}, appHandler, Options{})
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if srv.addr != "127.0.0.1:0" || srv.shutdownTimeout != defaultShutdownTimeout {
		t.Fatalf("unexpected defaults %q %s", srv.addr, srv.shutdownTimeout)
	}
}

func TestRoutesAndRequestLogging(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	rec := &captureRecorder{}
	metrics := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, "launchdash_operations_total 1\n")
	})
	srv, err := New(Config{Addr: "127.0.0.1:0"}, appHandler, Options{Logger: zap.New(core), Metrics: rec, MetricsHandler: metrics})
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	h := srv.Handler()

	cases := []struct {
		method string
		path   string
		status int
		body   string
	}{
		{method: http.MethodGet, path: "/healthz", status: http.StatusOK, body: `{"status":"ok"}`},
		{method: http.MethodPost, path: "/healthz", status: http.StatusMethodNotAllowed},
		{method: http.MethodGet, path: "/metrics", status: http.StatusOK, body: "launchdash_operations_total"},
		{method: http.MethodGet, path: "/", status: http.StatusOK, body: "dashboard"},
		{method: http.MethodGet, path: "/boom", status: http.StatusInternalServerError},
	}
	for _, tc := range cases {
		resp := httptest.NewRecorder()
		h.ServeHTTP(resp, httptest.NewRequest(tc.method, tc.path, nil))
		if resp.Code != tc.status {
			t.Fatalf("%s %s: expected %d, got %d", tc.method, tc.path, tc.status, resp.Code)
		}
		if !strings.Contains(resp.Body.String(), tc.body) {
			t.Fatalf("%s %s: body %q missing %q", tc.method, tc.path, resp.Body.String(), tc.body)
		}
	}

	if len(rec.ops) != len(cases) {
		t.Fatalf("expected %d observations, got %d", len(cases), len(rec.ops))
	}
	if rec.ops[0] != OpHTTPRequest || !rec.success[0] || rec.success[4] {
		t.Fatalf("unexpected observations %v %v", rec.ops, rec.success)
	}
	entries := logs.FilterMessage("http request").AllUntimed()
	if len(entries) != len(cases) {
		t.Fatalf("expected %d request logs, got %d", len(cases), len(entries))
	}
	fields := entries[4].ContextMap()
	if fields["path"] != "/boom" || fields["status"] != int64(http.StatusInternalServerError) {
		t.Fatalf("unexpected log fields %v", fields)
	}
}

func TestMetricsRouteAbsentWithoutHandler(t *testing.T) {
	srv, err := New(Config{Addr: "127.0.0.1:0"}, http.NotFoundHandler(), Options{})
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	resp := httptest.NewRecorder()
	srv.Handler().ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected /metrics to fall through to the app, got %d", resp.Code)
	}
}

func TestServeShutsDownOnCancel(t *testing.T) {
	defer goleak.VerifyNone(t)

	srv, err := New(Config{Addr: "127.0.0.1:0", ShutdownTimeout: time.Second}, appHandler, Options{})
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Serve(ctx, ln) }()

	transport := &http.Transport{DisableKeepAlives: true}
	client := &http.Client{Transport: transport, Timeout: 5 * time.Second}
	resp, err := client.Get("http://" + ln.Addr().String() + "/healthz")
	if err != nil {
		cancel()
		t.Fatalf("get: %v", err)
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	_ = resp.Body.Close()
	transport.CloseIdleConnections()
	if resp.StatusCode != http.StatusOK {
		cancel()
		t.Fatalf("unexpected status %d", resp.StatusCode)
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("serve: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("server did not stop")
	}
}

func TestListenAndServeReportsListenErrors(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	defer ln.Close()
	srv, err := New(Config{Addr: ln.Addr().String()}, appHandler, Options{})
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if err := srv.ListenAndServe(context.Background()); err == nil || !strings.Contains(err.Error(), "listen") {
		t.Fatalf("expected listen error, got %v", err)
	}
}
