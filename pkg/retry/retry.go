package retry

import (
	"context"
	"time"
)

// Policy is a bounded retry policy: a function is attempted up to MaxAttempts
// times, sleeping Backoff(attempt) between consecutive attempts. The zero
// backoff and sleep hooks default to a fixed one second delay and time.Sleep.
type Policy struct {
	MaxAttempts int
	Backoff     func(attempt int) time.Duration
	Sleep       func(d time.Duration)
}

// Default mirrors the translation gateway contract: three total attempts with
// a fixed one second pause between them.
func Default() Policy {
	return Policy{MaxAttempts: 3}
}

func (p Policy) backoff(attempt int) time.Duration {
	if p.Backoff != nil {
		return p.Backoff(attempt)
	}
	return time.Second
}

func (p Policy) sleep(d time.Duration) {
	if p.Sleep != nil {
		p.Sleep(d)
		return
	}
	time.Sleep(d)
}

// Do runs fn until it succeeds, the attempt budget is exhausted, or ctx is
// cancelled. The last error is returned as-is so callers can unwrap it.
func (p Policy) Do(ctx context.Context, fn func() error) error {
	attempts := p.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}

	var err error
	for attempt := 1; attempt <= attempts; attempt++ {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}

		if err = fn(); err == nil {
			return nil
		}

		if attempt < attempts {
			p.sleep(p.backoff(attempt))
		}
	}
	return err
}
