package adaptor

import (
	"context"
	"net/http"

	"movie-favorites/internal/dto/response"
	"movie-favorites/internal/usecase"
	"movie-favorites/pkg/utils"

	"go.uber.org/zap"
)

type RefreshHandler struct {
	// runs started over HTTP live as long as ctx, not the request
	ctx     context.Context
	service usecase.RefreshService
	log     *zap.Logger
}

func NewRefreshHandler(ctx context.Context, service usecase.RefreshService, log *zap.Logger) *RefreshHandler {
	return &RefreshHandler{
		ctx:     ctx,
		service: service,
		log:     log.With(zap.String("handler", "refresh")),
	}
}

// TriggerRefresh handles POST /api/refresh. The run continues in the
// background after the response is written.
func (h *RefreshHandler) TriggerRefresh(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Start(h.ctx); err != nil {
		handleServiceError(w, h.log, err, "trigger refresh")
		return
	}

	utils.ResponseAccepted(w, "Refresh started", h.status())
}

// GetRefresh handles GET /api/refresh
func (h *RefreshHandler) GetRefresh(w http.ResponseWriter, r *http.Request) {
	utils.ResponseSuccess(w, "Refresh status retrieved successfully", h.status())
}

type refreshStatus struct {
	State string                    `json:"state"`
	Last  *response.RefreshResponse `json:"last,omitempty"`
}

func (h *RefreshHandler) status() refreshStatus {
	status := refreshStatus{State: string(h.service.State())}
	if last := h.service.LastResult(); last != nil {
		resp := response.RefreshToResponse(last.RunID.String(), string(last.State),
			last.Checked, last.Failed, last.Changed, last.StartedAt, last.FinishedAt)
		status.Last = &resp
	}
	return status
}
