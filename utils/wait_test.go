package utils

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"
)

func TestMain(m *testing.M) {
	SetLogger(zap.NewNop())
	goleak.VerifyTestMain(m)
}

func TestPollSucceedsImmediately(t *testing.T) {
	calls := 0
	err := Poll(context.Background(), time.Hour, func(context.Context) (bool, error) {
		calls++
		return true, nil
	})
	require.NoError(t, err)
	assert.Equal(t, 1, calls)
}

func TestPollSucceedsAfterAttempts(t *testing.T) {
	calls := 0
	err := Poll(context.Background(), time.Millisecond, func(context.Context) (bool, error) {
		calls++
		return calls == 3, nil
	})
	require.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestPollStopsOnHardError(t *testing.T) {
	boom := errors.New("boom")
	calls := 0
	err := Poll(context.Background(), time.Millisecond, func(context.Context) (bool, error) {
		calls++
		return false, boom
	})
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 1, calls)
}

func TestPollTimeoutKeepsLastRetryableError(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	flaky := errors.New("element detached")
	err := Poll(ctx, time.Millisecond, func(context.Context) (bool, error) {
		return false, Retryable(flaky)
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Contains(t, err.Error(), "element detached")
}

func TestPollTimeout(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	err := Poll(ctx, time.Millisecond, func(context.Context) (bool, error) {
		return false, nil
	})
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestRetryableNil(t *testing.T) {
	assert.NoError(t, Retryable(nil))
}

func TestBrowserOptsHeadless(t *testing.T) {
	assert.Len(t, BrowserOpts(true), len(BrowserOpts(false))+1)
}
