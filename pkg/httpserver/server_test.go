package httpserver_test

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/fieldrules/pkg/httpserver"
)

func startServer(t *testing.T, ctx context.Context, srv *httpserver.Server, h http.Handler) (string, <-chan error) {
	t.Helper()

	started := make(chan string, 1)
	done := make(chan error, 1)
	go func() { done <- srv.Run(ctx, h) }()

	go func() {
		for range 100 {
			if addr := srv.Addr(); addr != "" {
				started <- addr
				return
			}
			time.Sleep(10 * time.Millisecond)
		}
	}()

	select {
	case addr := <-started:
		return addr, done
	case err := <-done:
		t.Fatalf("server exited: %v", err)
	case <-time.After(2 * time.Second):
		t.Fatal("server did not start")
	}
	return "", nil
}

func TestServer_RunUntilContextDone(t *testing.T) {
	t.Parallel()

	stopped := make(chan struct{})
	srv := httpserver.New(
		httpserver.WithAddr("127.0.0.1:0"),
		httpserver.WithShutdownTimeout(100*time.Millisecond),
		httpserver.WithStopHook(func() { close(stopped) }),
	)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	addr, done := startServer(t, ctx, srv, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	resp, err := http.Get("http://" + addr)
	require.NoError(t, err)
	require.NoError(t, resp.Body.Close())
	assert.Equal(t, http.StatusTeapot, resp.StatusCode)

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("run did not finish")
	}
	<-stopped
	require.NoError(t, srv.Shutdown(context.Background()), "second shutdown is a no-op")
}

func TestServer_ManualShutdown(t *testing.T) {
	t.Parallel()

	var startedOn string
	srv := httpserver.New(
		httpserver.WithAddr("127.0.0.1:0"),
		httpserver.WithStartHook(func(addr string) { startedOn = addr }),
	)
	addr, done := startServer(t, context.Background(), srv, nil)

	require.NoError(t, srv.Shutdown(context.Background()))
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("run did not finish")
	}
	assert.Equal(t, addr, startedOn)
}

func TestServer_ListenError(t *testing.T) {
	t.Parallel()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	t.Cleanup(func() { _ = ln.Close() })

	srv := httpserver.New(httpserver.WithAddr(ln.Addr().String()))
	err = srv.Run(context.Background(), nil)
	assert.ErrorIs(t, err, httpserver.ErrStart)
}

func TestServer_ShutdownBeforeRun(t *testing.T) {
	t.Parallel()
	assert.NoError(t, httpserver.New().Shutdown(context.Background()))
}

func TestNewFromConfig(t *testing.T) {
	t.Parallel()

	srv := httpserver.NewFromConfig(httpserver.Config{Addr: "127.0.0.1:0", ShutdownTimeout: time.Second})
	ctx, cancel := context.WithCancel(context.Background())
	_, done := startServer(t, ctx, srv, nil)
	cancel()
	require.NoError(t, <-done)
}

func TestHealthCheckHandler(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		checks     map[string]httpserver.Check
		wantStatus int
		wantBody   httpserver.HealthResponse
	}{
		{
			name:       "liveness",
			wantStatus: http.StatusOK,
			wantBody:   httpserver.HealthResponse{Status: "ok"},
		},
		{
			name: "ready",
			checks: map[string]httpserver.Check{
				"redis": func(context.Context) error { return nil },
			},
			wantStatus: http.StatusOK,
			wantBody:   httpserver.HealthResponse{Status: "ok", Checks: map[string]string{"redis": "ok"}},
		},
		{
			name: "not ready",
			checks: map[string]httpserver.Check{
				"redis":    func(context.Context) error { return nil },
				"postgres": func(context.Context) error { return errors.New("down") },
			},
			wantStatus: http.StatusServiceUnavailable,
			wantBody: httpserver.HealthResponse{Status: "unavailable", Checks: map[string]string{
				"redis":    "ok",
				"postgres": "failed",
			}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			rec := httptest.NewRecorder()
			httpserver.HealthCheckHandler(nil, time.Second, tt.checks).
				ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

			var body httpserver.HealthResponse
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
			assert.Equal(t, tt.wantBody, body)
		})
	}
}
