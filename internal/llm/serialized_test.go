package llm

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSerialized_OneCallAtATime(t *testing.T) {
	var inFlight, maxInFlight int32
	model := ModelFunc(func(_ context.Context, _, _ string) (string, error) {
		n := atomic.AddInt32(&inFlight, 1)
		for {
			m := atomic.LoadInt32(&maxInFlight)
			if n <= m || atomic.CompareAndSwapInt32(&maxInFlight, m, n) {
				break
			}
		}
		time.Sleep(5 * time.Millisecond)
		atomic.AddInt32(&inFlight, -1)
		return "ok", nil
	})

	s := Serialize(model)
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			out, err := s.Generate(context.Background(), "i", "t")
			assert.NoError(t, err)
			assert.Equal(t, "ok", out)
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), atomic.LoadInt32(&maxInFlight))
}

func TestSerialized_WaitRespectsContext(t *testing.T) {
	release := make(chan struct{})
	model := ModelFunc(func(_ context.Context, _, _ string) (string, error) {
		<-release
		return "done", nil
	})
	s := Serialize(model)

	started := make(chan struct{})
	go func() {
		close(started)
		_, _ = s.Generate(context.Background(), "i", "t")
	}()
	<-started
	time.Sleep(10 * time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err := s.Generate(ctx, "i", "t")
	require.Error(t, err)

	var failure *InferenceFailure
	require.True(t, errors.As(err, &failure))
	assert.Equal(t, ReasonTimeout, failure.Reason)

	close(release)
}

func TestSerialize_Idempotent(t *testing.T) {
	s := Serialize(ModelFunc(func(context.Context, string, string) (string, error) { return "", nil }))
	assert.Same(t, s, Serialize(s))
}
