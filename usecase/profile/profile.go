package profile

import (
	"context"

	"go.uber.org/zap"

	"github.com/goalpilot/backend/domain"
	"github.com/goalpilot/backend/repository"
)

type UseCase struct {
	users  repository.UserRepository
	logger *zap.Logger
}

func New(users repository.UserRepository, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		users:  users,
		logger: logger,
	}
}

func (uc *UseCase) GetProfile(ctx context.Context, userID string) (*domain.User, error) {
	return uc.users.GetByID(ctx, userID)
}

// UpdateProfile updates display metadata. Identity fields on record win over
// blanks in the request.
func (uc *UseCase) UpdateProfile(ctx context.Context, user *domain.User) (*domain.User, error) {
	if user == nil || user.ID == "" {
		return nil, domain.ErrInvalidPayload
	}

	existing, err := uc.users.GetByID(ctx, user.ID)
	if err == nil {
		if user.Email == "" {
			user.Email = existing.Email
		}
		if user.Phone == "" {
			user.Phone = existing.Phone
		}
		if user.GoogleID == "" {
			user.GoogleID = existing.GoogleID
		}
		user.CreatedAt = existing.CreatedAt
	}

	if err := uc.users.Upsert(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}
