package usecase

import "context"

// OperationBuffer abstracts the offline write buffer so use cases stay
// storage-agnostic. Writes land here when the primary store is unavailable
// and are replayed later.
type OperationBuffer interface {
	BufferTaskStatus(ctx context.Context, taskID, status string) error
	BufferGoalCounters(ctx context.Context, goalID string) error
}
