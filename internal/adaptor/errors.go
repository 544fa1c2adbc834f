package adaptor

import (
	"context"
	"errors"
	"net/http"

	"movie-favorites/internal/catalog"
	"movie-favorites/internal/usecase"
	"movie-favorites/pkg/utils"

	"go.uber.org/zap"
)

// handleServiceError maps service and catalog errors onto the response
// envelope.
func handleServiceError(w http.ResponseWriter, log *zap.Logger, err error, operation string) {
	fields := []zap.Field{
		zap.Error(err),
		zap.String("operation", operation),
	}

	switch {
	case errors.Is(err, usecase.ErrMovieNotFound), errors.Is(err, catalog.ErrNotFound):
		log.Warn(operation+" failed - not found", fields...)
		utils.ResponseNotFound(w, "Movie not found")

	case errors.Is(err, usecase.ErrRefreshRunning):
		log.Info(operation+" rejected - refresh running", fields...)
		utils.ResponseConflict(w, "Refresh already running")

	case errors.Is(err, catalog.ErrTimeout), errors.Is(err, context.DeadlineExceeded):
		log.Warn(operation+" failed - catalog timeout", fields...)
		utils.ResponseGatewayTimeout(w, "Movie catalog did not respond in time")

	case errors.Is(err, catalog.ErrUnauthorized):
		log.Error(operation+" failed - catalog rejected credentials", fields...)
		utils.ResponseBadGateway(w, "Movie catalog rejected the request")

	case errors.Is(err, catalog.ErrParse), errors.Is(err, catalog.ErrNetwork):
		log.Warn(operation+" failed - catalog unavailable", append(fields,
			zap.Stringer("kind", catalog.KindOf(err)))...)
		utils.ResponseBadGateway(w, "Movie catalog unavailable")

	default:
		log.Error("Failed to "+operation, fields...)
		utils.ResponseInternalError(w, "Internal server error")
	}
}
