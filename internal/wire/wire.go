package wire

import (
	"context"
	"net/http"

	"movie-favorites/internal/adaptor"
	"movie-favorites/internal/catalog"
	"movie-favorites/internal/data/repository"
	"movie-favorites/internal/notify"
	"movie-favorites/internal/scheduler"
	"movie-favorites/internal/usecase"
	"movie-favorites/pkg/middleware"
	"movie-favorites/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// App holds the wired router and background jobs.
type App struct {
	Router     *chi.Mux
	Refresh    usecase.RefreshService
	RefreshJob *scheduler.RefreshJob
}

// Wiring builds the catalog client, services, handlers and routes. Refresh
// runs triggered over HTTP are canceled with ctx.
func Wiring(ctx context.Context, repo *repository.Repository, config *utils.Config, logger *zap.Logger) *App {
	creds := utils.NewCredentials(config.Catalog.CredentialsFile)
	client := catalog.NewClient(catalog.Config{
		BaseURL:        config.Catalog.BaseURL,
		Language:       config.Catalog.Language,
		ConnectTimeout: config.Catalog.ConnectTimeout,
		ReadTimeout:    config.Catalog.ReadTimeout,
		RateLimit:      config.Catalog.RateLimit,
		RateBurst:      config.Catalog.RateBurst,
	}, creds, logger)

	return build(ctx, repo, client, config, logger)
}

func build(ctx context.Context, repo *repository.Repository, client catalog.Source, config *utils.Config, logger *zap.Logger) *App {
	breaker := catalog.NewBreaker(client, catalog.DefaultBreakerSettings(), logger)
	images := catalog.Images{BaseURL: config.Catalog.ImageBaseURL}

	service := usecase.NewService(repo, client, breaker, images, notify.NewLogNotifier(logger), logger)
	handler := adaptor.NewHandler(ctx, service, logger)

	app := &App{
		Router:  setupRouter(handler, repo, logger),
		Refresh: service.Refresh,
	}
	if config.Refresh.Enabled {
		app.RefreshJob = scheduler.NewRefreshJob(service.Refresh, config.Refresh.Interval, logger)
	}
	return app
}

func setupRouter(
	handler *adaptor.Handler,
	repo *repository.Repository,
	logger *zap.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))

	wireCatalog(r, handler.Catalog)
	wireFavorite(r, handler.Favorite)
	wireRefresh(r, handler.Refresh)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		if err := repo.Ping(r.Context()); err != nil {
			logger.Warn("Health check failed", zap.Error(err))
			http.Error(w, "database unavailable", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})
	r.Handle("/metrics", promhttp.Handler())

	return r
}
