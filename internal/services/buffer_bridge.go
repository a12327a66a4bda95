package services

import (
	"context"
	"encoding/json"

	"github.com/goalpilot/backend/domain"
	"github.com/goalpilot/backend/internal/infrastructure/buffer"
	"github.com/goalpilot/backend/usecase"
)

// BufferBridge adapts the processor to the use-case OperationBuffer port.
type BufferBridge struct {
	processor *BufferProcessor
}

func NewBufferBridge(processor *BufferProcessor) *BufferBridge {
	return &BufferBridge{processor: processor}
}

func (b *BufferBridge) BufferTaskStatus(ctx context.Context, taskID, status string) error {
	if b.processor == nil || taskID == "" {
		return domain.ErrInvalidPayload
	}
	payload, err := json.Marshal(buffer.TaskStatusData{TaskID: taskID, Status: status})
	if err != nil {
		return err
	}
	return b.processor.Enqueue(ctx, buffer.Item{
		Entity:   buffer.EntityTaskStatus,
		Data:     payload,
		Priority: 4,
	})
}

func (b *BufferBridge) BufferGoalCounters(ctx context.Context, goalID string) error {
	if b.processor == nil || goalID == "" {
		return domain.ErrInvalidPayload
	}
	payload, err := json.Marshal(buffer.GoalCountersData{GoalID: goalID})
	if err != nil {
		return err
	}
	return b.processor.Enqueue(ctx, buffer.Item{
		Entity:   buffer.EntityGoalCounters,
		Data:     payload,
		Priority: 3,
	})
}

var _ usecase.OperationBuffer = (*BufferBridge)(nil)
