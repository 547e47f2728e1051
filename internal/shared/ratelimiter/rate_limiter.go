package ratelimiter

import (
	"log/slog"
	"math/rand/v2"
	"time"
)

// RateLimiterInterface は、外部サイトへのリクエスト頻度を制限するインターフェースです。
type RateLimiterInterface interface {
	WaitIfNeeded()
}

// RateLimiter は連続するリクエストの間に [minDelay, maxDelay] のランダムな時間だけ待機します。
// 上限と下限が等しい場合は固定の待機時間になります。最初の呼び出しでは待機しません。
type RateLimiter struct {
	minDelay, maxDelay time.Duration
	started            bool

	sleep  func(time.Duration)
	jitter func() float64 // [0, 1) の値
}

// NewRateLimiter は新しい RateLimiter を作成します。
// maxDelay が minDelay より小さい場合は minDelay に揃えます。
func NewRateLimiter(minDelay, maxDelay time.Duration) *RateLimiter {
	if maxDelay < minDelay {
		maxDelay = minDelay
	}
	return &RateLimiter{
		minDelay: minDelay,
		maxDelay: maxDelay,
		sleep:    time.Sleep,
		jitter:   rand.Float64,
	}
}

// WaitIfNeeded は最初の呼び出しを除き、呼び出しのたびに待機します。
func (rl *RateLimiter) WaitIfNeeded() {
	if !rl.started {
		rl.started = true
		return
	}
	d := rl.next()
	if d <= 0 {
		return
	}
	slog.Debug("throttling before next request", "delay", d)
	rl.sleep(d)
}

func (rl *RateLimiter) next() time.Duration {
	span := rl.maxDelay - rl.minDelay
	if span <= 0 {
		return rl.minDelay
	}
	return rl.minDelay + time.Duration(rl.jitter()*float64(span))
}
