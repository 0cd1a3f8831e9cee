package llm

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// scriptedClient returns queued responses in order, then repeats the last.
type scriptedClient struct {
	responses []string
	errs      []error
	calls     int
}

func (s *scriptedClient) next() (string, error) {
	idx := s.calls
	if idx >= len(s.responses) {
		idx = len(s.responses) - 1
	}
	s.calls++
	var err error
	if idx < len(s.errs) {
		err = s.errs[idx]
	}
	return s.responses[idx], err
}

func (s *scriptedClient) Generate(context.Context, string) (string, error)     { return s.next() }
func (s *scriptedClient) GenerateJSON(context.Context, string) (string, error) { return s.next() }
func (s *scriptedClient) Close() error                                         { return nil }

func TestWithBreaker_DisabledReturnsOriginal(t *testing.T) {
	inner := &scriptedClient{responses: []string{"ok"}}
	wrapped := WithBreaker(inner, BreakerConfig{Enabled: false}, zap.NewNop())

	assert.Same(t, any(inner), any(wrapped))
}

func TestWithBreaker_PassesThroughSuccess(t *testing.T) {
	inner := &scriptedClient{responses: []string{`{"score": 1}`}}
	wrapped := WithBreaker(inner, DefaultBreakerConfig(), zap.NewNop())

	out, err := wrapped.GenerateJSON(context.Background(), "prompt")
	require.NoError(t, err)
	assert.Equal(t, `{"score": 1}`, out)
}

func TestWithBreaker_OpensAfterRepeatedFailures(t *testing.T) {
	boom := errors.New("provider down")
	inner := &scriptedClient{
		responses: []string{"", "", "", ""},
		errs:      []error{boom, boom, boom, boom},
	}
	cfg := BreakerConfig{
		Enabled:          true,
		Interval:         time.Minute,
		Timeout:          time.Minute,
		ReadyToTripRatio: 0.5,
	}
	wrapped := WithBreaker(inner, cfg, zap.NewNop())

	ctx := context.Background()
	for i := 0; i < 3; i++ {
		_, err := wrapped.Generate(ctx, "prompt")
		require.Error(t, err)
	}

	// Breaker should now be open: the inner client is no longer called.
	callsBefore := inner.calls
	_, err := wrapped.Generate(ctx, "prompt")
	require.Error(t, err)
	assert.Equal(t, callsBefore, inner.calls)
}
