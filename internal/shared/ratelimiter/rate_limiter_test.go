package ratelimiter

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func newTestLimiter(minDelay, maxDelay time.Duration, jitter float64) (*RateLimiter, *[]time.Duration) {
	var slept []time.Duration
	rl := NewRateLimiter(minDelay, maxDelay)
	rl.sleep = func(d time.Duration) { slept = append(slept, d) }
	rl.jitter = func() float64 { return jitter }
	return rl, &slept
}

func TestRateLimiter_WaitIfNeeded(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		min, max  time.Duration
		jitter    float64
		calls     int
		wantSleep []time.Duration
	}{
		{
			name:  "first call does not wait",
			min:   time.Second,
			max:   3 * time.Second,
			calls: 1,
		},
		{
			name:      "randomized delay inside the range",
			min:       time.Second,
			max:       3 * time.Second,
			jitter:    0.5,
			calls:     3,
			wantSleep: []time.Duration{2 * time.Second, 2 * time.Second},
		},
		{
			name:      "lower bound",
			min:       time.Second,
			max:       3 * time.Second,
			jitter:    0,
			calls:     2,
			wantSleep: []time.Duration{time.Second},
		},
		{
			name:      "fixed delay",
			min:       500 * time.Millisecond,
			max:       500 * time.Millisecond,
			jitter:    0.9,
			calls:     3,
			wantSleep: []time.Duration{500 * time.Millisecond, 500 * time.Millisecond},
		},
		{
			name:      "max below min is raised",
			min:       2 * time.Second,
			max:       time.Second,
			jitter:    0.7,
			calls:     2,
			wantSleep: []time.Duration{2 * time.Second},
		},
		{
			name:  "zero delay never sleeps",
			calls: 4,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			rl, slept := newTestLimiter(tt.min, tt.max, tt.jitter)
			for i := 0; i < tt.calls; i++ {
				rl.WaitIfNeeded()
			}

			if len(tt.wantSleep) == 0 {
				assert.Empty(t, *slept)
				return
			}
			assert.Equal(t, tt.wantSleep, *slept)
		})
	}
}

func TestRateLimiter_ImplementsInterface(t *testing.T) {
	t.Parallel()

	var _ RateLimiterInterface = NewRateLimiter(0, 0)
}
