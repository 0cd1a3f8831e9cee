package llm

import (
	"context"
	"time"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"
)

// breakerMinRequests is the minimum request count before the trip ratio is
// considered meaningful.
const breakerMinRequests = 3

// BreakerConfig parameterizes the circuit breaker around a Client.
type BreakerConfig struct {
	Enabled          bool          `json:"enabled"`
	Interval         time.Duration `json:"interval"`
	Timeout          time.Duration `json:"timeout"`
	ReadyToTripRatio float64       `json:"ready_to_trip_ratio"`
}

// DefaultBreakerConfig returns the standard breaker settings: trip at a 60%
// failure ratio, probe again after 30s open.
func DefaultBreakerConfig() BreakerConfig {
	return BreakerConfig{
		Enabled:          true,
		Interval:         60 * time.Second,
		Timeout:          30 * time.Second,
		ReadyToTripRatio: 0.6,
	}
}

// BreakerClient wraps a Client with circuit breaking so a dead provider fails
// fast instead of stacking timeouts across concurrent dimension calls.
type BreakerClient struct {
	client Client
	cb     *gobreaker.CircuitBreaker
	logger *zap.Logger
}

// WithBreaker wraps client with a circuit breaker. When cfg.Enabled is false
// the client is returned unwrapped.
func WithBreaker(client Client, cfg BreakerConfig, logger *zap.Logger) Client {
	if !cfg.Enabled {
		return client
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	settings := gobreaker.Settings{
		Name:     "evaluation-capability",
		Interval: cfg.Interval,
		Timeout:  cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.Requests >= breakerMinRequests && failureRatio >= cfg.ReadyToTripRatio
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("circuit breaker state change",
				zap.String("breaker", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
		},
	}

	return &BreakerClient{
		client: client,
		cb:     gobreaker.NewCircuitBreaker(settings),
		logger: logger,
	}
}

// Generate implements Client.
func (c *BreakerClient) Generate(ctx context.Context, prompt string) (string, error) {
	return c.execute(func() (string, error) {
		return c.client.Generate(ctx, prompt)
	})
}

// GenerateJSON implements Client.
func (c *BreakerClient) GenerateJSON(ctx context.Context, prompt string) (string, error) {
	return c.execute(func() (string, error) {
		return c.client.GenerateJSON(ctx, prompt)
	})
}

// Close implements Client.
func (c *BreakerClient) Close() error {
	return c.client.Close()
}

func (c *BreakerClient) execute(fn func() (string, error)) (string, error) {
	out, err := c.cb.Execute(func() (any, error) {
		return fn()
	})
	if err != nil {
		return "", err
	}
	return out.(string), nil
}
