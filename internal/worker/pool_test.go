package worker

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPoolProcessesSubmittedJobs(t *testing.T) {
	var mu sync.Mutex
	processed := make(map[string]bool)

	pool := NewPool(2, 8)
	pool.SetRunner(func(ctx context.Context, job Job) {
		mu.Lock()
		processed[job.ExtractionID] = true
		mu.Unlock()
	})
	pool.Start()

	for _, id := range []string{"e1", "e2", "e3"} {
		require.NoError(t, pool.Submit(Job{ExtractionID: id, SourceName: "Salesforce"}))
	}

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(processed) == 3
	}, 2*time.Second, 5*time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	pool.Stop(ctx)
}

func TestPoolStopDrainsQueuedJobs(t *testing.T) {
	var mu sync.Mutex
	var count int

	pool := NewPool(1, 8)
	pool.SetRunner(func(ctx context.Context, job Job) {
		time.Sleep(5 * time.Millisecond)
		mu.Lock()
		count++
		mu.Unlock()
	})
	pool.Start()

	for i := 0; i < 5; i++ {
		require.NoError(t, pool.Submit(Job{ExtractionID: "e", SourceName: "Salesforce"}))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	pool.Stop(ctx)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, 5, count)
}

func TestPoolQueueLength(t *testing.T) {
	pool := NewPool(1, 8)
	assert.Equal(t, 0, pool.QueueLength())
}
