package async_test

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shoutboxnet/shoutbox-go/pkg/async"
)

func TestAsync(t *testing.T) {
	t.Parallel()

	t.Run("returns the function result", func(t *testing.T) {
		t.Parallel()
		f := async.Async(context.Background(), 42, func(_ context.Context, n int) (string, error) {
			time.Sleep(10 * time.Millisecond)
			return fmt.Sprintf("n=%d", n), nil
		})

		res, err := f.Await()
		require.NoError(t, err)
		assert.Equal(t, "n=42", res)

		select {
		case <-f.Done():
		default:
			t.Fatal("future should be done after Await")
		}
	})

	t.Run("propagates the function error", func(t *testing.T) {
		t.Parallel()
		boom := errors.New("boom")
		f := async.Async(context.Background(), 1, func(context.Context, int) (int, error) {
			return 0, boom
		})

		_, err := f.Await()
		assert.ErrorIs(t, err, boom)
	})

	t.Run("skips the function when context is already cancelled", func(t *testing.T) {
		t.Parallel()
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		var called atomic.Bool
		f := async.Async(ctx, 1, func(context.Context, int) (int, error) {
			called.Store(true)
			return 1, nil
		})

		res, err := f.Await()
		assert.ErrorIs(t, err, context.Canceled)
		assert.Zero(t, res)
		assert.False(t, called.Load())
	})

	t.Run("multiple awaits return the same result", func(t *testing.T) {
		t.Parallel()
		f := async.Async(context.Background(), "x", func(_ context.Context, s string) (string, error) {
			return s + s, nil
		})

		a, errA := f.Await()
		b, errB := f.Await()
		assert.Equal(t, a, b)
		assert.NoError(t, errA)
		assert.NoError(t, errB)
	})
}

func TestMap(t *testing.T) {
	t.Parallel()

	var inflight, peak atomic.Int32
	futures := async.Map(context.Background(), []int{1, 2, 3, 4}, func(_ context.Context, n int) (int, error) {
		cur := inflight.Add(1)
		for {
			p := peak.Load()
			if cur <= p || peak.CompareAndSwap(p, cur) {
				break
			}
		}
		time.Sleep(20 * time.Millisecond)
		inflight.Add(-1)
		return n * 10, nil
	})
	require.Len(t, futures, 4)

	res, err := async.All(futures...)
	require.NoError(t, err)
	assert.Equal(t, []int{10, 20, 30, 40}, res)
	assert.Greater(t, peak.Load(), int32(1), "calls should overlap")
}

func TestSettle(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	futures := async.Map(context.Background(), []int{1, 2, 3}, func(_ context.Context, n int) (int, error) {
		if n == 2 {
			return 0, boom
		}
		// the first item finishes last; order must still follow input
		time.Sleep(time.Duration(4-n) * 10 * time.Millisecond)
		return n, nil
	})

	results := async.Settle(futures...)
	require.Len(t, results, 3)

	assert.Equal(t, 1, results[0].Value)
	assert.NoError(t, results[0].Err)
	assert.ErrorIs(t, results[1].Err, boom)
	assert.Equal(t, 3, results[2].Value)
	assert.NoError(t, results[2].Err)
}

func TestSettle_Empty(t *testing.T) {
	t.Parallel()
	assert.Empty(t, async.Settle[int]())
}

func TestAll(t *testing.T) {
	t.Parallel()

	t.Run("returns results in input order", func(t *testing.T) {
		t.Parallel()
		futures := async.Map(context.Background(), []int{30, 0, 10}, func(_ context.Context, ms int) (int, error) {
			time.Sleep(time.Duration(ms) * time.Millisecond)
			return ms, nil
		})

		res, err := async.All(futures...)
		require.NoError(t, err)
		assert.Equal(t, []int{30, 0, 10}, res)
	})

	t.Run("fails on the earliest failure without waiting for slow successes", func(t *testing.T) {
		t.Parallel()
		fail := errors.New("fail")
		release := make(chan struct{})
		defer close(release)

		futures := async.Map(context.Background(), []int{0, 1}, func(_ context.Context, n int) (int, error) {
			if n == 0 {
				<-release
				return n, nil
			}
			return 0, fail
		})

		result := make(chan error, 1)
		go func() {
			res, err := async.All(futures...)
			assert.Nil(t, res)
			result <- err
		}()

		select {
		case err := <-result:
			assert.ErrorIs(t, err, fail)
		case <-time.After(5 * time.Second):
			t.Fatal("All waited for a pending success before reporting a failure")
		}
	})

	t.Run("empty input succeeds", func(t *testing.T) {
		t.Parallel()
		res, err := async.All[string]()
		assert.NoError(t, err)
		assert.Empty(t, res)
	})
}
