// Package pacer spaces out browser actions so they resemble a person
// working through a form.
package pacer

import (
	"context"
	"math"
	"math/rand/v2"
	"time"

	"easyapply/internal/application/port/output"

	"golang.org/x/time/rate"
)

var (
	_ output.PacerPort = (*Jitter)(nil)
	_ output.PacerPort = Nop{}
)

// skew biases delays towards the lower bound.
const skew = 1.4

type Config struct {
	MinDelay time.Duration
	MaxDelay time.Duration
	// ActionsPerSecond caps the pause rate independently of the delays; zero
	// disables the cap.
	ActionsPerSecond float64
}

type Jitter struct {
	min, max time.Duration
	limiter  *rate.Limiter
	rand     func() float64
}

func New(cfg Config) *Jitter {
	if cfg.MaxDelay < cfg.MinDelay {
		cfg.MaxDelay = cfg.MinDelay
	}
	limit := rate.Inf
	if cfg.ActionsPerSecond > 0 {
		limit = rate.Limit(cfg.ActionsPerSecond)
	}
	return &Jitter{
		min:     cfg.MinDelay,
		max:     cfg.MaxDelay,
		limiter: rate.NewLimiter(limit, 1),
		rand:    rand.Float64,
	}
}

// Delay draws the next pause as min + u^1.4 * (max - min).
func (j *Jitter) Delay() time.Duration {
	u := math.Pow(j.rand(), skew)
	return j.min + time.Duration(u*float64(j.max-j.min))
}

func (j *Jitter) Pause(ctx context.Context) error {
	if err := j.limiter.Wait(ctx); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return err
	}
	d := j.Delay()
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// Nop never waits.
type Nop struct{}

func (Nop) Pause(ctx context.Context) error {
	return ctx.Err()
}
