package handler

import (
	"encoding/json"
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/goalpilot/backend/api/transport"
	"github.com/goalpilot/backend/pkg/httpcontext"
	"github.com/goalpilot/backend/usecase/insights"
)

// InsightsHandler serves progress analytics and AI-written copy.
type InsightsHandler struct {
	baseHandler
	insights *insights.UseCase
}

func NewInsightsHandler(uc *insights.UseCase, adapter *httpcontext.Adapter, logger *zap.Logger) *InsightsHandler {
	return &InsightsHandler{
		baseHandler: newBaseHandler(adapter, logger),
		insights:    uc,
	}
}

// Stats returns streak, totals and the recent day-by-day history.
func (h *InsightsHandler) Stats(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	stats, err := h.insights.GetStats(stdCtx, userID)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, stats)
}

// Summary returns the dashboard payload for the active goal.
func (h *InsightsHandler) Summary(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	summary, err := h.insights.GetSummary(stdCtx, userID)
	if err != nil {
		h.logger.Warn("summary failed", zap.String("user_id", userID), zap.Error(err))
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, summary)
}

// Notification produces push-notification copy for the user's goal state.
func (h *InsightsHandler) Notification(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}

	var req transport.NotificationRequest
	// The body is optional; defaults apply when absent.
	_ = json.Unmarshal(ctx.PostBody(), &req)

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	notification, err := h.insights.GetNotification(stdCtx, userID, insights.NotificationParams{
		UserName:  req.UserName,
		Mood:      req.Mood,
		TimeOfDay: req.TimeOfDay,
	})
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, notification)
}
