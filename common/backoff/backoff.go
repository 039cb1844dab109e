// Package backoff provides a bounded exponential-backoff polling loop
// for waiting on remote asynchronous work without hammering the API.
package backoff

import (
	"context"
	"errors"
	"time"
)

// ErrBudgetExhausted is returned when a poll ends without the condition
// becoming true within the attempt and time budget.
var ErrBudgetExhausted = errors.New("polling budget exhausted")

// Policy bounds a polling loop. The wait between attempts starts at
// Initial and doubles up to Max. The loop stops after MaxAttempts
// attempts or once MaxElapsed has passed, whichever comes first.
type Policy struct {
	Initial     time.Duration
	Max         time.Duration
	MaxAttempts int
	MaxElapsed  time.Duration
}

// DefaultPolicy matches the run-completion budget: ~200ms initial wait
// doubling to a 3s cap, at most 25 attempts within a 30s window.
func DefaultPolicy() Policy {
	return Policy{
		Initial:     200 * time.Millisecond,
		Max:         3 * time.Second,
		MaxAttempts: 25,
		MaxElapsed:  30 * time.Second,
	}
}

// Poll invokes fn until it reports done, an error occurs, the context is
// cancelled, or the policy budget runs out. fn errors are returned
// as-is; budget exhaustion returns ErrBudgetExhausted.
func Poll(ctx context.Context, p Policy, fn func(ctx context.Context) (bool, error)) error {
	if p.Initial <= 0 {
		p.Initial = 200 * time.Millisecond
	}
	if p.Max < p.Initial {
		p.Max = p.Initial
	}
	if p.MaxAttempts <= 0 {
		p.MaxAttempts = 25
	}

	start := time.Now()
	wait := p.Initial

	for attempt := 1; attempt <= p.MaxAttempts; attempt++ {
		done, err := fn(ctx)
		if err != nil {
			return err
		}
		if done {
			return nil
		}

		if p.MaxElapsed > 0 && time.Since(start)+wait > p.MaxElapsed {
			return ErrBudgetExhausted
		}

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}

		wait *= 2
		if wait > p.Max {
			wait = p.Max
		}
	}

	return ErrBudgetExhausted
}
