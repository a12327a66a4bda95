package ai

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubClient struct {
	key   string
	calls int
	fn    func(key string) (string, error)
}

func (s *stubClient) GenerateText(ctx context.Context, prompt string) (string, error) {
	s.calls++
	return s.fn(s.key)
}

// stubFactory records one client per credential so tests can count attempts.
func stubFactory(fn func(key string) (string, error)) (ClientFactory, map[string]*stubClient) {
	clients := make(map[string]*stubClient)
	factory := func(apiKey string) (ModelClient, error) {
		c := &stubClient{key: apiKey, fn: fn}
		clients[apiKey] = c
		return c, nil
	}
	return factory, clients
}

var errQuota = errors.New("googleapi: Error 429: quota exceeded")

func TestGatewayInvoke(t *testing.T) {
	t.Run("success on first credential", func(t *testing.T) {
		pool, err := NewPool([]string{"a", "b"})
		require.NoError(t, err)
		factory, clients := stubFactory(func(string) (string, error) {
			return "ok", nil
		})
		gw := NewGateway(pool, factory, 0, nil)

		raw, err := gw.Generate(context.Background(), "prompt")
		require.NoError(t, err)
		assert.Equal(t, "ok", raw)
		assert.Equal(t, 1, clients["a"].calls)
		assert.NotContains(t, clients, "b")
	})

	t.Run("rate limit rotates through every credential", func(t *testing.T) {
		pool, err := NewPool([]string{"a", "b", "c"})
		require.NoError(t, err)
		factory, clients := stubFactory(func(string) (string, error) {
			return "", errQuota
		})
		gw := NewGateway(pool, factory, 0, nil)

		_, err = gw.Generate(context.Background(), "prompt")
		assert.ErrorIs(t, err, errQuota)
		assert.Equal(t, 1, clients["a"].calls)
		assert.Equal(t, 1, clients["b"].calls)
		assert.Equal(t, 1, clients["c"].calls)
	})

	t.Run("recovers when a later credential succeeds", func(t *testing.T) {
		pool, err := NewPool([]string{"a", "b"})
		require.NoError(t, err)
		factory, _ := stubFactory(func(key string) (string, error) {
			if key == "a" {
				return "", errQuota
			}
			return "from-b", nil
		})
		gw := NewGateway(pool, factory, 0, nil)

		raw, err := gw.Generate(context.Background(), "prompt")
		require.NoError(t, err)
		assert.Equal(t, "from-b", raw)

		// The cursor stays on the healthy credential for the next request.
		_, idx := pool.Current()
		assert.Equal(t, 1, idx)
	})

	t.Run("non rate-limit errors fail fast", func(t *testing.T) {
		pool, err := NewPool([]string{"a", "b", "c"})
		require.NoError(t, err)
		boom := errors.New("invalid request payload")
		factory, clients := stubFactory(func(string) (string, error) {
			return "", boom
		})
		gw := NewGateway(pool, factory, 0, nil)

		_, err = gw.Generate(context.Background(), "prompt")
		assert.ErrorIs(t, err, boom)
		assert.Equal(t, 1, clients["a"].calls)
		assert.NotContains(t, clients, "b")
	})
}

func TestIsRateLimit(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"429 in message", errors.New("status 429 too many requests"), true},
		{"quota wording", errors.New("Quota exceeded for model"), true},
		{"resource exhausted", errors.New("rpc error: RESOURCE_EXHAUSTED"), true},
		{"unrelated", errors.New("connection refused"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsRateLimit(tt.err))
		})
	}
}
