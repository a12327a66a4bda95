package ai

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Operation is a unit of work executed against a model handle, returning the
// raw response text.
type Operation func(ctx context.Context, model ModelClient) (string, error)

// Gateway runs operations against the generative model, rotating credentials
// on rate-limit errors. Any other error fails fast after a single attempt;
// callers wrap operations with their own fallbacks.
type Gateway struct {
	pool        *Pool
	factory     ClientFactory
	logger      *zap.Logger
	callTimeout time.Duration

	mu      sync.Mutex
	clients map[int]ModelClient
}

// NewGateway wires a credential pool to a client factory. A positive
// callTimeout bounds each individual model attempt.
func NewGateway(pool *Pool, factory ClientFactory, callTimeout time.Duration, logger *zap.Logger) *Gateway {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Gateway{
		pool:        pool,
		factory:     factory,
		logger:      logger,
		callTimeout: callTimeout,
		clients:     make(map[int]ModelClient),
	}
}

// Invoke runs the operation with the active credential. A rate-limit error
// advances the pool cursor and retries, at most N-1 extra attempts for N
// credentials; the final attempt's error propagates to the caller.
func (g *Gateway) Invoke(ctx context.Context, op Operation) (string, error) {
	attempts := g.pool.Size()

	var lastErr error
	for attempt := 0; attempt < attempts; attempt++ {
		key, idx := g.pool.Current()

		client, err := g.clientFor(idx, key)
		if err != nil {
			return "", err
		}

		g.logger.Debug("invoking model", zap.Int("credential_index", idx), zap.Int("attempt", attempt+1))

		raw, err := g.attempt(ctx, op, client)
		if err == nil {
			return raw, nil
		}
		lastErr = err

		if !IsRateLimit(err) {
			return "", err
		}
		if attempt == attempts-1 {
			break
		}

		next := g.pool.Advance(idx)
		g.logger.Warn("rate limit hit, rotating credential",
			zap.Int("from_index", idx),
			zap.Int("to_index", next))
	}
	return "", lastErr
}

func (g *Gateway) attempt(ctx context.Context, op Operation, client ModelClient) (string, error) {
	if g.callTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.callTimeout)
		defer cancel()
	}
	return op(ctx, client)
}

// Generate is the common case: a single prompt sent to the model.
func (g *Gateway) Generate(ctx context.Context, prompt string) (string, error) {
	return g.Invoke(ctx, func(ctx context.Context, model ModelClient) (string, error) {
		return model.GenerateText(ctx, prompt)
	})
}

func (g *Gateway) clientFor(idx int, key string) (ModelClient, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if client, ok := g.clients[idx]; ok {
		return client, nil
	}
	client, err := g.factory(key)
	if err != nil {
		return nil, fmt.Errorf("credential %d: %w", idx, err)
	}
	g.clients[idx] = client
	return client, nil
}
