// internal/common/camunda/client_test.go
package camunda

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testClient() *Client {
	return &Client{config: &ClientConfig{
		RetryConfig: &RetryConfig{
			MaxRetries: 3,
			BaseDelay:  time.Millisecond,
			MaxDelay:   5 * time.Millisecond,
		},
	}}
}

func TestExecuteWithRetryRecoversTransientFailure(t *testing.T) {
	c := testClient()

	calls := 0
	result, err := c.ExecuteWithRetry(context.Background(), func(context.Context) (interface{}, error) {
		calls++
		if calls < 3 {
			return nil, errors.New("connection refused")
		}
		return "ok", nil
	}, "complete-job")

	require.NoError(t, err)
	assert.Equal(t, "ok", result)
	assert.Equal(t, 3, calls)
}

func TestExecuteWithRetryStopsOnPermanentError(t *testing.T) {
	c := testClient()

	calls := 0
	_, err := c.ExecuteWithRetry(context.Background(), func(context.Context) (interface{}, error) {
		calls++
		return nil, errors.New("invalid argument")
	}, "complete-job")

	require.Error(t, err)
	assert.Equal(t, 1, calls)
}

func TestExecuteWithRetryExhaustsAttempts(t *testing.T) {
	c := testClient()

	calls := 0
	_, err := c.ExecuteWithRetry(context.Background(), func(context.Context) (interface{}, error) {
		calls++
		return nil, errors.New("deadline exceeded")
	}, "fail-job")

	require.Error(t, err)
	assert.Equal(t, c.config.RetryConfig.MaxRetries+1, calls)
}

func TestExecuteWithRetryHonorsCancellation(t *testing.T) {
	c := testClient()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.ExecuteWithRetry(ctx, func(context.Context) (interface{}, error) {
		return nil, errors.New("unavailable")
	}, "throw-error")

	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestIsRetryableZeebeError(t *testing.T) {
	cases := []struct {
		msg       string
		retryable bool
	}{
		{"connection refused", true},
		{"context deadline exceeded", true},
		{"broker UNAVAILABLE", true},
		{"broken pipe while streaming", true},
		{"element not found", false},
		{"invalid variables document", false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.retryable, isRetryableZeebeError(errors.New(tc.msg)), tc.msg)
	}
}

func TestNewClientWithConfigDefaultsRetryConfig(t *testing.T) {
	cfg := &ClientConfig{GatewayAddress: "localhost:1", ConnectionTimeout: 10 * time.Millisecond}
	_, err := NewClientWithConfig(cfg)
	require.Error(t, err, "no broker is listening")
	assert.Equal(t, DefaultRetryConfig, cfg.RetryConfig)
}
