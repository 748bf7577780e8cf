package server

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sales-dashboard/internal/config"
	"sales-dashboard/internal/models"
	"sales-dashboard/internal/services"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestServer() *Server {
	d := services.NewDashboard()
	d.SetData([]models.Record{
		{Date: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), Sales: 300, Region: models.RegionNorth},
		{Date: time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), Sales: 450, Region: models.RegionEast},
	})
	page := func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, "page")
	}
	return NewServer(d, quietLogger(), &TemplateHandlers{Dashboard: page})
}

func TestServer_Routes(t *testing.T) {
	srv := newTestServer()

	tests := []struct {
		method string
		path   string
		status int
	}{
		{http.MethodGet, "/", http.StatusOK},
		{http.MethodGet, "/health", http.StatusOK},
		{http.MethodGet, "/admin/stats", http.StatusOK},
		{http.MethodGet, "/metrics", http.StatusOK},
		{http.MethodGet, "/api/options", http.StatusOK},
		{http.MethodGet, "/api/dashboard", http.StatusOK},
		{http.MethodGet, "/api/metrics", http.StatusOK},
		{http.MethodGet, "/api/records", http.StatusOK},
		{http.MethodGet, "/api/records.csv", http.StatusOK},
		{http.MethodGet, "/api/daily-sales", http.StatusOK},
		{http.MethodGet, "/api/region-sales", http.StatusOK},
		{http.MethodGet, "/sse/dashboard", http.StatusOK},
		{http.MethodGet, "/sse/metrics", http.StatusOK},
		{http.MethodGet, "/sse/records", http.StatusOK},
		{http.MethodGet, "/sse/daily-sales", http.StatusOK},
		{http.MethodGet, "/sse/region-sales", http.StatusOK},
		{http.MethodGet, "/nope", http.StatusNotFound},
		{http.MethodPost, "/api/metrics", http.StatusMethodNotAllowed},
		{http.MethodDelete, "/sse/dashboard", http.StatusMethodNotAllowed},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, nil)
			w := httptest.NewRecorder()
			srv.ServeHTTP(w, req)
			assert.Equal(t, tt.status, w.Code)
		})
	}
}

func TestServer_MetricsEndpointExposesRenderCounter(t *testing.T) {
	srv := newTestServer()

	srv.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/metrics", nil))

	w := httptest.NewRecorder()
	srv.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "dashboard_renders_total")
}

func testConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{
			Host:            "127.0.0.1",
			Port:            0,
			ShutdownTimeout: 2 * time.Second,
		},
	}
}

func TestGracefulServer_ServeStopsOnCancel(t *testing.T) {
	httpServer := &http.Server{Addr: "127.0.0.1:0", Handler: http.NotFoundHandler()}
	gs := NewGracefulServer(httpServer, quietLogger(), testConfig())

	var ran atomic.Int32
	for range 3 {
		gs.RegisterShutdownHook(func(ctx context.Context) error {
			ran.Add(1)
			return nil
		})
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- gs.Serve(ctx) }()

	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Serve did not return after cancellation")
	}
	assert.Equal(t, int32(3), ran.Load())
}

func TestGracefulServer_ShutdownJoinsHookErrors(t *testing.T) {
	httpServer := &http.Server{Addr: "127.0.0.1:0"}
	gs := NewGracefulServer(httpServer, quietLogger(), testConfig())

	errFirst := errors.New("flush failed")
	errSecond := errors.New("close failed")
	gs.RegisterShutdownHook(func(ctx context.Context) error { return errFirst })
	gs.RegisterShutdownHook(func(ctx context.Context) error { return nil })
	gs.RegisterShutdownHook(func(ctx context.Context) error { return errSecond })

	err := gs.Shutdown(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, errFirst)
	assert.ErrorIs(t, err, errSecond)
	assert.True(t, strings.Contains(err.Error(), "shutdown hook 0 failed"))
}

func TestGracefulServer_ShutdownTimeout(t *testing.T) {
	httpServer := &http.Server{Addr: "127.0.0.1:0"}
	gs := NewGracefulServer(httpServer, quietLogger(), testConfig())

	release := make(chan struct{})
	defer close(release)
	gs.RegisterShutdownHook(func(ctx context.Context) error {
		<-release
		return nil
	})

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	err := gs.Shutdown(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
