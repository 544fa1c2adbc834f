package cmd

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/thejerf/suture/v4"
)

type fakeServer struct {
	listenErr error
	stop      chan struct{}
	shutdowns int
}

func (f *fakeServer) ListenAndServe() error {
	if f.listenErr != nil {
		return f.listenErr
	}
	<-f.stop
	return http.ErrServerClosed
}

func (f *fakeServer) Shutdown(ctx context.Context) error {
	f.shutdowns++
	close(f.stop)
	return nil
}

func TestHTTPService_Interface(t *testing.T) {
	var _ suture.Service = (*HTTPService)(nil)
}

func TestHTTPService_GracefulShutdown(t *testing.T) {
	srv := &fakeServer{stop: make(chan struct{})}
	svc := NewHTTPService(srv, time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- svc.Serve(ctx) }()

	cancel()
	select {
	case err := <-errCh:
		assert.True(t, errors.Is(err, context.Canceled))
	case <-time.After(time.Second):
		t.Fatal("Serve did not return")
	}
	assert.Equal(t, 1, srv.shutdowns)
}

func TestHTTPService_ListenFailure(t *testing.T) {
	srv := &fakeServer{listenErr: errors.New("address already in use")}
	svc := NewHTTPService(srv, time.Second)

	err := svc.Serve(context.Background())
	assert.ErrorContains(t, err, "address already in use")
	assert.Equal(t, "http-server", svc.String())
}
