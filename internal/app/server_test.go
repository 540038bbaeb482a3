//go:build !integration

package app

import (
	"context"
	"net"
	"net/http"
	"os"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var okHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
})

func freePort(t *testing.T) string {
	t.Helper()
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	_, port, err := net.SplitHostPort(l.Addr().String())
	require.NoError(t, err)
	require.NoError(t, l.Close())
	return port
}

func TestNewServer(t *testing.T) {
	tests := []struct {
		name                 string
		requestTimeout       time.Duration
		expectedWriteTimeout time.Duration
	}{
		{name: "short request timeout keeps default", requestTimeout: 5 * time.Second, expectedWriteTimeout: 15 * time.Second},
		{name: "long request timeout raises write timeout", requestTimeout: 30 * time.Second, expectedWriteTimeout: 35 * time.Second},
		{name: "no request timeout", expectedWriteTimeout: 15 * time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := NewServer(okHandler, "8080", tt.requestTimeout)

			require.NotNil(t, server.httpServer)
			assert.Equal(t, ":8080", server.httpServer.Addr)
			assert.Equal(t, 15*time.Second, server.httpServer.ReadTimeout)
			assert.Equal(t, tt.expectedWriteTimeout, server.httpServer.WriteTimeout)
			assert.Equal(t, 60*time.Second, server.httpServer.IdleTimeout)
			assert.Equal(t, 10*time.Second, server.shutdownTimeout)
		})
	}
}

func TestServer_Serve(t *testing.T) {
	port := freePort(t)
	server := NewServer(okHandler, port, 0)

	ctx, cancel := context.WithCancel(context.Background())
	errChan := make(chan error, 1)
	go func() {
		errChan <- server.Serve(ctx)
	}()

	require.Eventually(t, func() bool {
		resp, err := http.Get("http://127.0.0.1:" + port + "/")
		if err != nil {
			return false
		}
		_ = resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 2*time.Second, 20*time.Millisecond)

	cancel()

	select {
	case err := <-errChan:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Server did not shutdown in time")
	}
}

func TestServer_Serve_WithError(t *testing.T) {
	server := NewServer(okHandler, "invalid-port", 0)

	select {
	case err := <-serveAsync(server):
		assert.Error(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("listener error was not returned")
	}
}

func serveAsync(s *Server) <-chan error {
	errChan := make(chan error, 1)
	go func() {
		errChan <- s.Serve(context.Background())
	}()
	return errChan
}

func TestServer_Run_GracefulShutdown(t *testing.T) {
	server := NewServer(okHandler, freePort(t), 0)

	done := make(chan error, 1)
	go func() {
		done <- server.Run()
	}()

	time.Sleep(100 * time.Millisecond)

	proc, err := os.FindProcess(os.Getpid())
	require.NoError(t, err)
	require.NoError(t, proc.Signal(syscall.SIGTERM))

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		require.Fail(t, "Server did not shutdown gracefully")
	}
}
