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

const taskColumns = `id, goal_id, user_id, title, status, time_minutes, type, difficulty,
	day_number, date, created_at, updated_at`

type taskRepository struct {
	pool *pgxpool.Pool
}

// NewTaskRepository returns a Postgres-backed implementation of TaskRepository.
func NewTaskRepository(pool *pgxpool.Pool) repository.TaskRepository {
	return &taskRepository{pool: pool}
}

func (r *taskRepository) GetByID(ctx context.Context, id string) (*domain.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE id = $1`
	return scanTask(r.pool.QueryRow(ctx, query, id))
}

func (r *taskRepository) List(ctx context.Context, filter repository.TaskFilter) ([]domain.Task, error) {
	query := `SELECT ` + taskColumns + `
	FROM tasks
	WHERE ($1 = '' OR user_id = $1)
	  AND ($2 = '' OR goal_id = $2)
	  AND ($3 = '' OR date = $3)
	  AND ($4 = '' OR status = $4)
	ORDER BY date DESC, created_at ASC
	LIMIT $5 OFFSET $6`

	rows, err := r.pool.Query(ctx, query,
		filter.UserID, filter.GoalID, filter.Date, filter.Status,
		clampLimit(filter.Limit), filter.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tasks []domain.Task
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, *task)
	}
	return tasks, rows.Err()
}

func (r *taskRepository) CreateBatch(ctx context.Context, tasks []domain.Task) ([]domain.Task, error) {
	if len(tasks) == 0 {
		return nil, nil
	}

	const query = `
	INSERT INTO tasks (id, goal_id, user_id, title, status, time_minutes, type, difficulty, day_number, date)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	RETURNING created_at, updated_at
	`

	batch := &pgx.Batch{}
	for i := range tasks {
		t := &tasks[i]
		if t.ID == "" {
			t.ID = uuid.NewString()
		}
		if t.Status == "" {
			t.Status = domain.TaskStatusPending
		}
		batch.Queue(query,
			t.ID, t.GoalID, t.UserID, t.Title, t.Status,
			t.Time, t.Type, t.Difficulty, t.DayNumber, t.Date)
	}

	results := r.pool.SendBatch(ctx, batch)
	defer results.Close()

	for i := range tasks {
		if err := results.QueryRow().Scan(&tasks[i].CreatedAt, &tasks[i].UpdatedAt); err != nil {
			return nil, err
		}
	}
	return tasks, nil
}

func (r *taskRepository) UpdateStatus(ctx context.Context, id, status string) (*domain.Task, error) {
	query := `
	UPDATE tasks
	SET status = $2, updated_at = NOW()
	WHERE id = $1
	RETURNING ` + taskColumns

	task, err := scanTask(r.pool.QueryRow(ctx, query, id, status))
	if errors.Is(err, domain.ErrTaskNotFound) {
		return nil, domain.ErrTaskNotFound
	}
	return task, err
}

func (r *taskRepository) DeleteByGoal(ctx context.Context, goalID string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM tasks WHERE goal_id = $1`, goalID)
	return err
}

func scanTask(row interface {
	Scan(dest ...interface{}) error
}) (*domain.Task, error) {
	var task domain.Task

	if err := row.Scan(
		&task.ID,
		&task.GoalID,
		&task.UserID,
		&task.Title,
		&task.Status,
		&task.Time,
		&task.Type,
		&task.Difficulty,
		&task.DayNumber,
		&task.Date,
		&task.CreatedAt,
		&task.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTaskNotFound
		}
		return nil, err
	}

	return &task, nil
}
