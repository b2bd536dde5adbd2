package llm

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// shortCtx returns a context that expires well before a paced slot opens.
func shortCtx(t *testing.T) context.Context {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	t.Cleanup(cancel)
	return ctx
}

func TestNewRateLimiter_Disabled(t *testing.T) {
	assert.Nil(t, NewRateLimiter(0))
	assert.Nil(t, NewRateLimiter(-5))

	var r *RateLimiter
	assert.NoError(t, r.Wait(context.Background()))
	r.RecordRateLimit(&http.Response{StatusCode: http.StatusTooManyRequests})
	assert.NoError(t, r.Wait(context.Background()))
}

func TestRateLimiter_NilHonoursCancelledContext(t *testing.T) {
	var r *RateLimiter
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, r.Wait(ctx), context.Canceled)
}

func TestRateLimiter_BurstOfOne(t *testing.T) {
	r := NewRateLimiter(60)
	require.NotNil(t, r)

	require.NoError(t, r.Wait(shortCtx(t)))
	assert.Error(t, r.Wait(shortCtx(t)))
}

func TestRateLimiter_RecordRateLimit(t *testing.T) {
	r := NewRateLimiter(6000)

	r.RecordRateLimit(&http.Response{StatusCode: http.StatusOK})
	require.NoError(t, r.Wait(shortCtx(t)))

	resp := &http.Response{StatusCode: http.StatusTooManyRequests, Header: http.Header{}}
	resp.Header.Set("Retry-After", "30")
	r.RecordRateLimit(resp)

	assert.ErrorIs(t, r.Wait(shortCtx(t)), context.DeadlineExceeded)
}
