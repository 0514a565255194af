package httpx

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fastRetryConfig() RetryConfig {
	return RetryConfig{
		MaxAttempts:    3,
		InitialDelayMs: 1,
		MaxDelayMs:     5,
		Multiplier:     2.0,
	}
}

func TestRetryConfigSetDefaults(t *testing.T) {
	var cfg RetryConfig
	cfg.SetDefaults()
	assert.Equal(t, 4, cfg.MaxAttempts)
	assert.Equal(t, 500, cfg.InitialDelayMs)
	assert.Equal(t, 10000, cfg.MaxDelayMs)
	assert.Equal(t, 2.0, cfg.Multiplier)

	custom := RetryConfig{MaxAttempts: 2, InitialDelayMs: 10, MaxDelayMs: 20, Multiplier: 1.5}
	custom.SetDefaults()
	assert.Equal(t, 2, custom.MaxAttempts)
}

func TestRetryingClientSucceedsFirstAttempt(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.Write([]byte(`{"ok":true}`))
	}))
	defer server.Close()

	client := NewRetryingClient(server.Client(), fastRetryConfig())
	resp, err := client.Get(context.Background(), server.URL, nil)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestRetryingClientRetriesRetryableStatus(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte(`{"ok":true}`))
	}))
	defer server.Close()

	client := NewRetryingClient(server.Client(), fastRetryConfig())
	resp, err := client.Get(context.Background(), server.URL, nil)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
}

func TestRetryingClientDoesNotRetryNonRetryableStatus(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	client := NewRetryingClient(server.Client(), fastRetryConfig())
	resp, err := client.Get(context.Background(), server.URL, nil)
	require.NoError(t, err)
	defer resp.Body.Close()

	// The response is handed back for the caller to map; no retries happened.
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestRetryingClientExhaustionInvokesCallback(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client := NewRetryingClient(server.Client(), fastRetryConfig())

	var signaled int32
	client.OnExhausted = func(err error) {
		atomic.AddInt32(&signaled, 1)
	}

	resp, err := client.Get(context.Background(), server.URL, nil)
	require.Error(t, err)
	assert.Nil(t, resp)
	assert.Contains(t, err.Error(), "after 3 attempts")
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
	assert.Equal(t, int32(1), atomic.LoadInt32(&signaled))
}

func TestRetryingClientAppliesHeaders(t *testing.T) {
	var gotAuth, gotAccept string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotAccept = r.Header.Get("Accept")
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	client := NewRetryingClient(server.Client(), fastRetryConfig())
	resp, err := client.Get(context.Background(), server.URL, map[string]string{"Authorization": "Bearer tok"})
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, "Bearer tok", gotAuth)
	assert.Equal(t, "application/json", gotAccept)
}

func TestRetryingClientContextCancellation(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	// A large backoff keeps the client parked in the retry wait
	client := NewRetryingClient(server.Client(), RetryConfig{
		MaxAttempts:    3,
		InitialDelayMs: 60000,
		MaxDelayMs:     60000,
		Multiplier:     1.0,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := client.Get(ctx, server.URL, nil)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestParseRetryAfter(t *testing.T) {
	d, ok := parseRetryAfter("2")
	assert.True(t, ok)
	assert.Equal(t, 2*time.Second, d)

	d, ok = parseRetryAfter("0")
	assert.True(t, ok)
	assert.Equal(t, time.Duration(0), d)

	// HTTP-date in the future
	future := time.Now().Add(30 * time.Second).UTC().Format(http.TimeFormat)
	d, ok = parseRetryAfter(future)
	assert.True(t, ok)
	assert.Greater(t, d, 20*time.Second)

	// HTTP-date in the past collapses to zero
	past := time.Now().Add(-time.Minute).UTC().Format(http.TimeFormat)
	d, ok = parseRetryAfter(past)
	assert.True(t, ok)
	assert.Equal(t, time.Duration(0), d)

	_, ok = parseRetryAfter("")
	assert.False(t, ok)

	_, ok = parseRetryAfter("garbage")
	assert.False(t, ok)
}

func TestRetryingClientHonorsRetryAfter(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) == 1 {
			w.Header().Set("Retry-After", "0")
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	client := NewRetryingClient(server.Client(), fastRetryConfig())

	start := time.Now()
	resp, err := client.Get(context.Background(), server.URL, nil)
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
	assert.Less(t, time.Since(start), time.Second)
}
