package server_test

import (
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/mailkit/internal/server"
)

func TestServer_Run(t *testing.T) {
	t.Parallel()

	handler := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("pong"))
	})

	hookCalled := make(chan struct{}, 1)
	ready := make(chan net.Addr, 1)
	srv := server.New(server.Config{Addr: "127.0.0.1:0", ShutdownTimeout: time.Second}, handler,
		server.WithReady(ready),
		server.WithShutdownHook(func(context.Context) error {
			hookCalled <- struct{}{}
			return nil
		}),
	)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Run(ctx) }()

	addr := <-ready
	resp, err := http.Get("http://" + addr.String())
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	require.NoError(t, err)
	require.Equal(t, "pong", string(body))

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
	require.Len(t, hookCalled, 1)
}

func TestServer_Run_HookError(t *testing.T) {
	t.Parallel()

	hookErr := errors.New("close failed")
	ready := make(chan net.Addr, 1)
	srv := server.New(server.Config{Addr: "127.0.0.1:0"}, http.NotFoundHandler(),
		server.WithReady(ready),
		server.WithShutdownHook(func(context.Context) error { return hookErr }),
	)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Run(ctx) }()

	<-ready
	cancel()
	require.ErrorIs(t, <-done, hookErr)
}

func TestServer_Run_ListenError(t *testing.T) {
	t.Parallel()

	srv := server.New(server.Config{Addr: "256.0.0.1:bad"}, http.NotFoundHandler())
	require.Error(t, srv.Run(context.Background()))
}
