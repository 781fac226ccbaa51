package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rockyxcoded/Example-PDF-vector-search/types"
)

func transientErr(msg string) error {
	return types.NewProviderError("test", types.ProviderTransient, errors.New(msg))
}

func TestDo_SucceedsFirstTry(t *testing.T) {
	calls := 0
	v, err := Do(context.Background(), func(context.Context) (int, error) {
		calls++
		return 42, nil
	}, 3, time.Millisecond)
	require.NoError(t, err)
	assert.Equal(t, 42, v)
	assert.Equal(t, 1, calls)
}

func TestDo_RecoversAfterTransientFailures(t *testing.T) {
	calls := 0
	start := time.Now()
	v, err := Do(context.Background(), func(context.Context) (string, error) {
		calls++
		if calls <= 2 {
			return "", transientErr("boom")
		}
		return "ok", nil
	}, 5, 10*time.Millisecond)
	require.NoError(t, err)
	assert.Equal(t, "ok", v)
	assert.Equal(t, 3, calls)
	// two delayed retries: 10ms + 20ms
	assert.GreaterOrEqual(t, time.Since(start), 30*time.Millisecond)
}

func TestDo_ExhaustsAttemptsAndPropagatesFinalError(t *testing.T) {
	calls := 0
	final := transientErr("always down")
	_, err := Do(context.Background(), func(context.Context) (int, error) {
		calls++
		return 0, final
	}, 3, time.Millisecond)
	require.Error(t, err)
	assert.Equal(t, 3, calls)
	assert.Same(t, final, err, "final error must propagate unchanged")
}

func TestDo_PermanentErrorNotRetried(t *testing.T) {
	calls := 0
	perm := types.NewProviderError("test", types.ProviderPermanent, errors.New("bad key"))
	_, err := Do(context.Background(), func(context.Context) (int, error) {
		calls++
		return 0, perm
	}, 5, time.Millisecond)
	require.Error(t, err)
	assert.Equal(t, 1, calls, "permanent failures must surface immediately")
	assert.ErrorIs(t, err, perm)
}

func TestDo_UnclassifiedErrorNotRetried(t *testing.T) {
	calls := 0
	_, err := Do(context.Background(), func(context.Context) (int, error) {
		calls++
		return 0, errors.New("plain error")
	}, 5, time.Millisecond)
	require.Error(t, err)
	assert.Equal(t, 1, calls)
}

func TestDo_ContextCancelledDuringDelay(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(5 * time.Millisecond)
		cancel()
	}()
	_, err := Do(ctx, func(context.Context) (int, error) {
		return 0, transientErr("down")
	}, 3, time.Hour)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestDo_MinimumOneAttempt(t *testing.T) {
	calls := 0
	v, err := Do(context.Background(), func(context.Context) (int, error) {
		calls++
		return 7, nil
	}, 0, time.Millisecond)
	require.NoError(t, err)
	assert.Equal(t, 7, v)
	assert.Equal(t, 1, calls)
}
