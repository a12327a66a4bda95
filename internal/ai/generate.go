package ai

import (
	"context"

	"go.uber.org/zap"

	"github.com/goalpilot/backend/domain"
)

// Generator exposes the four generation operations. Every method returns a
// well-formed payload even on total upstream failure: errors are logged and
// replaced by the operation's fallback, never propagated.
type Generator struct {
	gateway *Gateway
	logger  *zap.Logger
}

// NewGenerator wraps a gateway with per-operation fallbacks.
func NewGenerator(gateway *Gateway, logger *zap.Logger) *Generator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Generator{gateway: gateway, logger: logger}
}

// generate runs one operation through the gateway and parses the response,
// falling back on any failure. The single wrapper keeps the
// call-parse-fallback sequence identical across operations.
func generate[T any](ctx context.Context, g *Generator, op, prompt string, fallback func() *T) *T {
	raw, err := g.gateway.Generate(ctx, prompt)
	if err != nil {
		g.logger.Error("generation failed, using fallback", zap.String("operation", op), zap.Error(err))
		return fallback()
	}

	out := new(T)
	if err := ExtractJSON(raw, out); err != nil {
		g.logger.Error("response parse failed, using fallback", zap.String("operation", op), zap.Error(err))
		return fallback()
	}
	return out
}

// GeneratePlan produces the full day-wise plan for a new goal. The requested
// duration is floored at one day.
func (g *Generator) GeneratePlan(ctx context.Context, req PlanRequest) *domain.GeneratedPlan {
	if req.TotalDays < 1 {
		req.TotalDays = 1
	}

	plan := generate(ctx, g, OpGeneratePlan, planPrompt(req), func() *domain.GeneratedPlan {
		return fallbackPlan(req)
	})

	if plan.GoalTitle == "" {
		plan.GoalTitle = req.Title
	}
	if plan.TotalDays < 1 {
		plan.TotalDays = req.TotalDays
	}
	return plan
}

// GenerateDailyTasks produces today's mission when no tasks exist yet for the
// current date.
func (g *Generator) GenerateDailyTasks(ctx context.Context, c DailyContext) *domain.DailyPlan {
	plan := generate(ctx, g, OpGenerateDailyTasks, dailyPrompt(c), func() *domain.DailyPlan {
		return fallbackDaily(c)
	})

	if plan.Day == 0 {
		plan.Day = c.CurrentDay
	}
	if len(plan.Tasks) == 0 {
		plan.Tasks = fallbackDaily(c).Tasks
	}
	return plan
}

// GenerateDashboardSummary produces the cockpit summary for the active goal.
func (g *Generator) GenerateDashboardSummary(ctx context.Context, c SummaryContext) *domain.DashboardSummary {
	summary := generate(ctx, g, OpGenerateSummary, summaryPrompt(c), func() *domain.DashboardSummary {
		return fallbackSummary(c)
	})

	if summary.GoalTitle == "" {
		summary.GoalTitle = c.GoalTitle
	}
	return summary
}

// GenerateNotification produces one push-notification payload.
func (g *Generator) GenerateNotification(ctx context.Context, c NotificationContext) *domain.Notification {
	return generate(ctx, g, OpGenerateNotification, notificationPrompt(c), func() *domain.Notification {
		return fallbackNotification(c)
	})
}
