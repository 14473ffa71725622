package telegram

import (
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"golang.org/x/time/rate"
)

// chatLimiter throttles inbound messages per chat. Idle chats age out of
// the LRU so long-running deployments don't accumulate limiters.
type chatLimiter struct {
	limiters *expirable.LRU[int64, *rate.Limiter]
	rate     rate.Limit
	burst    int
}

func newChatLimiter(messagesPerMin int) *chatLimiter {
	burst := messagesPerMin / 10
	if burst < 1 {
		burst = 1
	}
	return &chatLimiter{
		limiters: expirable.NewLRU[int64, *rate.Limiter](
			1000,
			nil,
			time.Minute*5,
		),
		rate:  rate.Limit(float64(messagesPerMin) / 60.0),
		burst: burst,
	}
}

// Allow reports whether one more message from chatID fits the limit.
func (cl *chatLimiter) Allow(chatID int64) bool {
	limiter, ok := cl.limiters.Get(chatID)
	if !ok {
		limiter = rate.NewLimiter(cl.rate, cl.burst)
		cl.limiters.Add(chatID, limiter)
	}
	return limiter.Allow()
}
