package handler

import (
	"encoding/json"
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/goalpilot/backend/api/transport"
	"github.com/goalpilot/backend/domain"
	"github.com/goalpilot/backend/pkg/httpcontext"
	"github.com/goalpilot/backend/usecase/profile"
)

// ProfileHandler serves the authenticated user's account record.
type ProfileHandler struct {
	baseHandler
	profile *profile.UseCase
}

func NewProfileHandler(uc *profile.UseCase, adapter *httpcontext.Adapter, logger *zap.Logger) *ProfileHandler {
	return &ProfileHandler{
		baseHandler: newBaseHandler(adapter, logger),
		profile:     uc,
	}
}

func (h *ProfileHandler) Get(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	user, err := h.profile.GetProfile(stdCtx, userID)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, user)
}

func (h *ProfileHandler) Update(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}

	var req transport.ProfileUpdateRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		h.respondError(ctx, domain.ErrInvalidPayload)
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	user, err := h.profile.UpdateProfile(stdCtx, &domain.User{
		ID:          userID,
		Email:       req.Email,
		Phone:       req.Phone,
		DisplayName: req.DisplayName,
		Avatar:      req.Avatar,
		Status:      req.Status,
	})
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, user)
}
