package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"movie-favorites/internal/wire"

	"github.com/thejerf/suture/v4"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

// HTTPServer is the lifecycle surface of *http.Server.
type HTTPServer interface {
	ListenAndServe() error
	Shutdown(ctx context.Context) error
}

// HTTPService runs an HTTP server as a supervised service.
type HTTPService struct {
	server          HTTPServer
	shutdownTimeout time.Duration
}

func NewHTTPService(server HTTPServer, shutdownTimeout time.Duration) *HTTPService {
	return &HTTPService{server: server, shutdownTimeout: shutdownTimeout}
}

// Serve implements suture.Service.
func (s *HTTPService) Serve(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server failed: %w", err)
		}
		return nil

	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
		defer cancel()

		if err := s.server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("http server shutdown failed: %w", err)
		}
		<-errCh
		return ctx.Err()
	}
}

func (s *HTTPService) String() string {
	return "http-server"
}

// NewSupervisor builds the service tree for the API server and the
// refresh job. Supervisor events are logged through zap.
func NewSupervisor(app *wire.App, port string, logger *zap.Logger) *suture.Supervisor {
	log := logger.With(zap.String("component", "supervisor"))

	sup := suture.New("movie-favorites", suture.Spec{
		EventHook: func(e suture.Event) {
			switch ev := e.(type) {
			case suture.EventServicePanic:
				log.Error("Service panicked",
					zap.String("service", ev.ServiceName),
					zap.String("panic", ev.PanicMsg),
					zap.String("stacktrace", ev.Stacktrace),
				)
			case suture.EventServiceTerminate:
				log.Warn("Service terminated",
					zap.String("service", ev.ServiceName),
					zap.Any("error", ev.Err),
				)
			case suture.EventBackoff:
				log.Warn("Supervisor backing off", zap.String("supervisor", ev.SupervisorName))
			case suture.EventResume:
				log.Info("Supervisor resumed", zap.String("supervisor", ev.SupervisorName))
			default:
				log.Info(e.String())
			}
		},
		FailureThreshold: 5,
		FailureDecay:     30,
		FailureBackoff:   15 * time.Second,
		Timeout:          shutdownTimeout,
	})

	server := &http.Server{
		Addr:              fmt.Sprintf(":%s", port),
		Handler:           app.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	sup.Add(NewHTTPService(server, shutdownTimeout))

	if app.RefreshJob != nil {
		sup.Add(app.RefreshJob)
	}
	return sup
}

// APIServer runs the supervised services until ctx is canceled, then waits
// for background refresh runs to return.
func APIServer(ctx context.Context, app *wire.App, port string, logger *zap.Logger) error {
	logger.Info("Server running", zap.String("addr", fmt.Sprintf("http://localhost:%s", port)))

	err := NewSupervisor(app, port, logger).Serve(ctx)
	if app.Refresh != nil {
		app.Refresh.Wait()
	}
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
