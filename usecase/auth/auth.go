package auth

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/goalpilot/backend/domain"
	"github.com/goalpilot/backend/repository"
)

type UseCase struct {
	users    repository.UserRepository
	sessions repository.SessionRepository
	logger   *zap.Logger
}

func New(users repository.UserRepository, sessions repository.SessionRepository, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		users:    users,
		sessions: sessions,
		logger:   logger,
	}
}

// LoginParams identify the user; first login creates the account.
type LoginParams struct {
	Email       string
	Phone       string
	GoogleID    string
	DisplayName string
	Avatar      string
	TTL         time.Duration
}

// Login upserts the user record and opens a session. A user without an id is
// assigned one on first authentication.
func (uc *UseCase) Login(ctx context.Context, userID string, params LoginParams) (*domain.User, *domain.Session, error) {
	if userID == "" && params.Email == "" && params.Phone == "" {
		return nil, nil, domain.ErrInvalidPayload
	}
	if userID == "" {
		userID = uuid.NewString()
	}

	user := &domain.User{
		ID:          userID,
		Email:       params.Email,
		Phone:       params.Phone,
		GoogleID:    params.GoogleID,
		DisplayName: params.DisplayName,
		Avatar:      params.Avatar,
		Status:      "active",
	}
	if existing, err := uc.users.GetByID(ctx, userID); err == nil {
		mergeUser(user, existing)
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, nil, err
	}

	if err := uc.users.Upsert(ctx, user); err != nil {
		return nil, nil, err
	}

	session := &domain.Session{
		ID:        uuid.NewString(),
		UserID:    user.ID,
		CreatedAt: time.Now(),
		ExpiresAt: time.Now().Add(params.TTL),
	}
	if err := uc.sessions.Save(ctx, session); err != nil {
		return nil, nil, err
	}

	uc.logger.Info("session created", zap.String("user_id", user.ID))
	return user, session, nil
}

// GetSession resolves a session, evicting it when expired.
func (uc *UseCase) GetSession(ctx context.Context, sessionID string) (*domain.Session, error) {
	session, err := uc.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.IsExpired(time.Now()) {
		_ = uc.sessions.Delete(ctx, sessionID)
		return nil, domain.ErrSessionNotFound
	}
	return session, nil
}

// RefreshSession extends a session's lifetime.
func (uc *UseCase) RefreshSession(ctx context.Context, sessionID string, ttl time.Duration) (*domain.Session, error) {
	session, err := uc.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if err := uc.sessions.Extend(ctx, sessionID, int(ttl.Seconds())); err != nil {
		return nil, err
	}
	session.ExpiresAt = time.Now().Add(ttl)
	return session, nil
}

// RevokeSession drops a session.
func (uc *UseCase) RevokeSession(ctx context.Context, sessionID string) error {
	return uc.sessions.Delete(ctx, sessionID)
}

// mergeUser keeps identity fields already on record when the login request
// omits them.
func mergeUser(fresh, existing *domain.User) {
	if fresh.Email == "" {
		fresh.Email = existing.Email
	}
	if fresh.Phone == "" {
		fresh.Phone = existing.Phone
	}
	if fresh.GoogleID == "" {
		fresh.GoogleID = existing.GoogleID
	}
	if fresh.DisplayName == "" {
		fresh.DisplayName = existing.DisplayName
	}
	if fresh.Avatar == "" {
		fresh.Avatar = existing.Avatar
	}
	fresh.CreatedAt = existing.CreatedAt
}
