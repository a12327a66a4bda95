package handler

import (
	"encoding/json"
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/goalpilot/backend/api/transport"
	"github.com/goalpilot/backend/domain"
	"github.com/goalpilot/backend/pkg/httpcontext"
	"github.com/goalpilot/backend/usecase/task"
)

// TaskHandler serves today's task list and progress updates.
type TaskHandler struct {
	baseHandler
	tasks *task.UseCase
}

func NewTaskHandler(uc *task.UseCase, adapter *httpcontext.Adapter, logger *zap.Logger) *TaskHandler {
	return &TaskHandler{
		baseHandler: newBaseHandler(adapter, logger),
		tasks:       uc,
	}
}

// Today returns the current day's tasks, generating them on first request.
func (h *TaskHandler) Today(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}
	mood := string(ctx.QueryArgs().Peek("mood"))

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	result, err := h.tasks.Today(stdCtx, userID, mood)
	if err != nil {
		h.logger.Warn("today fetch failed", zap.String("user_id", userID), zap.Error(err))
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, result)
}

// UpdateProgress changes a task's status and refreshes the goal counters.
func (h *TaskHandler) UpdateProgress(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}
	taskID, _ := ctx.UserValue("id").(string)
	if taskID == "" {
		h.respondError(ctx, domain.ErrInvalidPayload)
		return
	}

	var req transport.TaskProgressRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil || req.Status == "" {
		h.respondError(ctx, domain.ErrInvalidPayload)
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	updated, err := h.tasks.UpdateProgress(stdCtx, userID, taskID, req.Status)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, updated)
}
