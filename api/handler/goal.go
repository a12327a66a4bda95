package handler

import (
	"encoding/json"
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/goalpilot/backend/api/transport"
	"github.com/goalpilot/backend/domain"
	"github.com/goalpilot/backend/pkg/httpcontext"
	"github.com/goalpilot/backend/usecase/goal"
)

// GoalHandler serves goal CRUD and AI plan generation.
type GoalHandler struct {
	baseHandler
	goals *goal.UseCase
}

func NewGoalHandler(uc *goal.UseCase, adapter *httpcontext.Adapter, logger *zap.Logger) *GoalHandler {
	return &GoalHandler{
		baseHandler: newBaseHandler(adapter, logger),
		goals:       uc,
	}
}

// Generate builds a full plan for the goal, activates it and seeds day 1.
func (h *GoalHandler) Generate(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}

	var req transport.GenerateGoalRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil || req.Title == "" {
		h.respondError(ctx, domain.ErrInvalidPayload)
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	result, err := h.goals.Generate(stdCtx, goal.GenerateParams{
		UserID:      userID,
		Title:       req.Title,
		Description: req.Description,
		TargetDate:  req.TargetDate,
		DailyTime:   req.DailyTime,
		GoalType:    req.GoalType,
		SkillLevel:  req.SkillLevel,
	})
	if err != nil {
		h.logger.Warn("goal generation failed", zap.String("user_id", userID), zap.Error(err))
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusCreated, result)
}

// Create stores a bare goal without a generated plan.
func (h *GoalHandler) Create(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}

	var req transport.CreateGoalRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil || req.Title == "" {
		h.respondError(ctx, domain.ErrInvalidPayload)
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	created, err := h.goals.Create(stdCtx, userID, req.Title, req.Description)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusCreated, created)
}

func (h *GoalHandler) List(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	goals, err := h.goals.List(stdCtx, userID)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, goals)
}

func (h *GoalHandler) Get(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}
	goalID, _ := ctx.UserValue("id").(string)
	if goalID == "" {
		h.respondError(ctx, domain.ErrInvalidPayload)
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	detail, err := h.goals.Get(stdCtx, userID, goalID)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, detail)
}

// Activate makes the goal the user's single active goal.
func (h *GoalHandler) Activate(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}
	goalID, _ := ctx.UserValue("id").(string)
	if goalID == "" {
		h.respondError(ctx, domain.ErrInvalidPayload)
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	activated, err := h.goals.Activate(stdCtx, userID, goalID)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, activated)
}

func (h *GoalHandler) Delete(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}
	goalID, _ := ctx.UserValue("id").(string)
	if goalID == "" {
		h.respondError(ctx, domain.ErrInvalidPayload)
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	if err := h.goals.Delete(stdCtx, userID, goalID); err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, map[string]bool{"deleted": true})
}
