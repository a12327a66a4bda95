package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/goalpilot/backend/api/transport"
	"github.com/goalpilot/backend/domain"
	"github.com/goalpilot/backend/internal/middleware"
	"github.com/goalpilot/backend/pkg/httpcontext"
	"github.com/goalpilot/backend/usecase/auth"
)

const defaultSessionTTL = 30 * 24 * time.Hour

// AuthHandler issues sessions and JWT access tokens.
type AuthHandler struct {
	baseHandler
	auth      *auth.UseCase
	jwtSecret string
	jwtIssuer string
}

func NewAuthHandler(uc *auth.UseCase, adapter *httpcontext.Adapter, jwtSecret, jwtIssuer string, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		baseHandler: newBaseHandler(adapter, logger),
		auth:        uc,
		jwtSecret:   jwtSecret,
		jwtIssuer:   jwtIssuer,
	}
}

type loginResponse struct {
	User      *domain.User    `json:"user"`
	Session   *domain.Session `json:"session"`
	Token     string          `json:"token"`
	ExpiresAt time.Time       `json:"expires_at"`
}

// Login upserts the user and opens a session. First login creates the account.
func (h *AuthHandler) Login(ctx *fasthttp.RequestCtx) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	var req transport.AuthLoginRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		h.respondError(ctx, domain.ErrInvalidPayload)
		return
	}

	ttl := defaultSessionTTL
	if req.TTL > 0 {
		ttl = time.Duration(req.TTL) * time.Second
	}

	user, session, err := h.auth.Login(stdCtx, req.UserID, auth.LoginParams{
		Email:       req.Email,
		Phone:       req.Phone,
		GoogleID:    req.GoogleID,
		DisplayName: req.DisplayName,
		Avatar:      req.Avatar,
		TTL:         ttl,
	})
	if err != nil {
		h.logger.Warn("login failed", zap.Error(err))
		h.respondError(ctx, err)
		return
	}

	token, err := middleware.SignToken(h.jwtSecret, h.jwtIssuer, user.ID, session.ExpiresAt.Unix())
	if err != nil {
		h.logger.Error("token signing failed", zap.Error(err))
		h.respondError(ctx, domain.WrapError(domain.ErrCodeInternal, "failed to issue token", err))
		return
	}

	h.respondSuccess(ctx, http.StatusOK, loginResponse{
		User:      user,
		Session:   session,
		Token:     token,
		ExpiresAt: session.ExpiresAt,
	})
}

// Refresh extends an existing session and issues a fresh token.
func (h *AuthHandler) Refresh(ctx *fasthttp.RequestCtx) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	var req transport.RefreshRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil || req.SessionID == "" {
		h.respondError(ctx, domain.ErrInvalidPayload)
		return
	}

	ttl := defaultSessionTTL
	if req.TTL > 0 {
		ttl = time.Duration(req.TTL) * time.Second
	}

	session, err := h.auth.RefreshSession(stdCtx, req.SessionID, ttl)
	if err != nil {
		h.respondError(ctx, err)
		return
	}

	token, err := middleware.SignToken(h.jwtSecret, h.jwtIssuer, session.UserID, session.ExpiresAt.Unix())
	if err != nil {
		h.logger.Error("token signing failed", zap.Error(err))
		h.respondError(ctx, domain.WrapError(domain.ErrCodeInternal, "failed to issue token", err))
		return
	}

	h.respondSuccess(ctx, http.StatusOK, loginResponse{
		Session:   session,
		Token:     token,
		ExpiresAt: session.ExpiresAt,
	})
}

// Logout revokes the session named in the request body.
func (h *AuthHandler) Logout(ctx *fasthttp.RequestCtx) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	var req transport.RefreshRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil || req.SessionID == "" {
		h.respondError(ctx, domain.ErrInvalidPayload)
		return
	}

	if err := h.auth.RevokeSession(stdCtx, req.SessionID); err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, map[string]bool{"revoked": true})
}
