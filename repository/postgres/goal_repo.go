package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/goalpilot/backend/domain"
	"github.com/goalpilot/backend/repository"
)

const goalColumns = `id, user_id, title, description, is_active, target_date, daily_time,
	goal_type, skill_level, total_days, summary, phases, rules, full_plan,
	total_tasks, completed_tasks, created_at, updated_at`

type goalRepository struct {
	pool *pgxpool.Pool
}

// NewGoalRepository returns a Postgres-backed implementation of GoalRepository.
func NewGoalRepository(pool *pgxpool.Pool) repository.GoalRepository {
	return &goalRepository{pool: pool}
}

func (r *goalRepository) GetByID(ctx context.Context, id string) (*domain.Goal, error) {
	query := `SELECT ` + goalColumns + ` FROM goals WHERE id = $1`
	return scanGoal(r.pool.QueryRow(ctx, query, id))
}

func (r *goalRepository) GetActive(ctx context.Context, userID string) (*domain.Goal, error) {
	query := `SELECT ` + goalColumns + ` FROM goals WHERE user_id = $1 AND is_active ORDER BY created_at DESC LIMIT 1`
	goal, err := scanGoal(r.pool.QueryRow(ctx, query, userID))
	if errors.Is(err, domain.ErrGoalNotFound) {
		return nil, domain.ErrNoActiveGoal
	}
	return goal, err
}

func (r *goalRepository) List(ctx context.Context, filter repository.GoalFilter) ([]domain.Goal, error) {
	query := `SELECT ` + goalColumns + `
	FROM goals
	WHERE ($1 = '' OR user_id = $1)
	ORDER BY created_at DESC
	LIMIT $2 OFFSET $3`

	rows, err := r.pool.Query(ctx, query, filter.UserID, clampLimit(filter.Limit), filter.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var goals []domain.Goal
	for rows.Next() {
		goal, err := scanGoal(rows)
		if err != nil {
			return nil, err
		}
		goals = append(goals, *goal)
	}
	return goals, rows.Err()
}

func (r *goalRepository) Create(ctx context.Context, goal *domain.Goal) (*domain.Goal, error) {
	if goal == nil {
		return nil, domain.ErrInvalidPayload
	}
	if goal.ID == "" {
		goal.ID = uuid.NewString()
	}

	const query = `
	INSERT INTO goals (id, user_id, title, description, is_active, target_date, daily_time,
		goal_type, skill_level, total_days, summary, phases, rules, full_plan,
		total_tasks, completed_tasks)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
	RETURNING created_at, updated_at
	`

	if err := r.pool.QueryRow(ctx, query,
		goal.ID,
		goal.UserID,
		goal.Title,
		goal.Description,
		goal.IsActive,
		goal.TargetDate,
		goal.DailyTime,
		goal.GoalType,
		goal.SkillLevel,
		goal.TotalDays,
		goal.Summary,
		marshalJSON(goal.Phases),
		marshalJSON(goal.Rules),
		marshalJSON(goal.FullPlan),
		goal.TotalTasks,
		goal.CompletedTasks,
	).Scan(&goal.CreatedAt, &goal.UpdatedAt); err != nil {
		return nil, err
	}

	return goal, nil
}

// Activate switches the active goal in one statement: the flag is set
// exactly where id matches and cleared everywhere else, so there is no
// window with zero active goals.
func (r *goalRepository) Activate(ctx context.Context, userID, goalID string) (*domain.Goal, error) {
	const query = `
	UPDATE goals
	SET is_active = (id = $2),
	    updated_at = NOW()
	WHERE user_id = $1
	`
	tag, err := r.pool.Exec(ctx, query, userID, goalID)
	if err != nil {
		return nil, err
	}
	if tag.RowsAffected() == 0 {
		return nil, domain.ErrGoalNotFound
	}

	goal, err := r.GetByID(ctx, goalID)
	if err != nil {
		return nil, err
	}
	if goal.UserID != userID || !goal.IsActive {
		return nil, domain.ErrGoalNotFound
	}
	return goal, nil
}

func (r *goalRepository) RefreshTaskCounters(ctx context.Context, goalID string) error {
	const query = `
	UPDATE goals
	SET total_tasks = sub.total,
	    completed_tasks = sub.completed,
	    updated_at = NOW()
	FROM (
		SELECT COUNT(*) AS total,
		       COUNT(*) FILTER (WHERE status = 'completed') AS completed
		FROM tasks WHERE goal_id = $1
	) AS sub
	WHERE id = $1
	`
	tag, err := r.pool.Exec(ctx, query, goalID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrGoalNotFound
	}
	return nil
}

func (r *goalRepository) Delete(ctx context.Context, userID, goalID string) error {
	const query = `DELETE FROM goals WHERE id = $1 AND user_id = $2`
	tag, err := r.pool.Exec(ctx, query, goalID, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrGoalNotFound
	}
	return nil
}

func scanGoal(row interface {
	Scan(dest ...interface{}) error
}) (*domain.Goal, error) {
	var goal domain.Goal
	var phases, rules, fullPlan []byte

	if err := row.Scan(
		&goal.ID,
		&goal.UserID,
		&goal.Title,
		&goal.Description,
		&goal.IsActive,
		&goal.TargetDate,
		&goal.DailyTime,
		&goal.GoalType,
		&goal.SkillLevel,
		&goal.TotalDays,
		&goal.Summary,
		&phases,
		&rules,
		&fullPlan,
		&goal.TotalTasks,
		&goal.CompletedTasks,
		&goal.CreatedAt,
		&goal.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrGoalNotFound
		}
		return nil, err
	}

	unmarshalJSON(phases, &goal.Phases)
	unmarshalJSON(rules, &goal.Rules)
	unmarshalJSON(fullPlan, &goal.FullPlan)

	return &goal, nil
}
