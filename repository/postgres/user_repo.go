package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/goalpilot/backend/domain"
	"github.com/goalpilot/backend/repository"
)

type userRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository instantiates a Postgres-backed user repository.
func NewUserRepository(pool *pgxpool.Pool) repository.UserRepository {
	return &userRepository{pool: pool}
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	const query = `
		SELECT id, email, phone, google_id, display_name, avatar, status, last_login, created_at, updated_at
		FROM users
		WHERE id = $1
	`
	row := r.pool.QueryRow(ctx, query, id)

	var user domain.User
	if err := row.Scan(
		&user.ID,
		&user.Email,
		&user.Phone,
		&user.GoogleID,
		&user.DisplayName,
		&user.Avatar,
		&user.Status,
		&user.LastLogin,
		&user.CreatedAt,
		&user.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}

	return &user, nil
}

func (r *userRepository) Upsert(ctx context.Context, user *domain.User) error {
	if user == nil {
		return domain.ErrInvalidPayload
	}
	if user.Status == "" {
		user.Status = "active"
	}

	const query = `
	INSERT INTO users (id, email, phone, google_id, display_name, avatar, status, last_login, created_at, updated_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), COALESCE($8, NOW()), NOW())
	ON CONFLICT (id) DO UPDATE
	SET email = EXCLUDED.email,
		phone = EXCLUDED.phone,
		google_id = EXCLUDED.google_id,
		display_name = EXCLUDED.display_name,
		avatar = EXCLUDED.avatar,
		status = EXCLUDED.status,
		last_login = NOW(),
		updated_at = NOW()
	RETURNING last_login, created_at, updated_at;
	`

	var lastLogin, createdAt, updatedAt time.Time

	if err := r.pool.QueryRow(ctx, query,
		user.ID,
		user.Email,
		user.Phone,
		user.GoogleID,
		user.DisplayName,
		user.Avatar,
		user.Status,
		nullTime(user.CreatedAt),
	).Scan(&lastLogin, &createdAt, &updatedAt); err != nil {
		return err
	}

	user.LastLogin = lastLogin
	user.CreatedAt = createdAt
	user.UpdatedAt = updatedAt
	return nil
}
