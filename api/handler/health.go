package handler

import (
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/goalpilot/backend/internal/infrastructure/monitor"
	"github.com/goalpilot/backend/pkg/httpcontext"
)

// HealthHandler reports liveness and backing-store connectivity.
type HealthHandler struct {
	baseHandler
	monitor *monitor.Monitor
}

func NewHealthHandler(m *monitor.Monitor, adapter *httpcontext.Adapter, logger *zap.Logger) *HealthHandler {
	return &HealthHandler{
		baseHandler: newBaseHandler(adapter, logger),
		monitor:     m,
	}
}

func (h *HealthHandler) Health(ctx *fasthttp.RequestCtx) {
	payload := map[string]interface{}{"status": "ok"}
	if h.monitor != nil {
		status := h.monitor.GetStatus()
		payload["connections"] = status
		if !h.monitor.IsOnline() {
			payload["status"] = "degraded"
		}
	}
	h.respondSuccess(ctx, http.StatusOK, payload)
}
