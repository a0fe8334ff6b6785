package llm

import (
	"context"
	"errors"
	"net"
	"time"

	"github.com/sethvargo/go-retry"
	"github.com/sirupsen/logrus"
)

// RetryConfig bounds the retry shell around a single-attempt ChatModel.
type RetryConfig struct {
	Timeout    time.Duration // per attempt
	MaxRetries uint64        // retries after the first attempt
	BaseDelay  time.Duration // delay before retry n is BaseDelay*n
}

func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		Timeout:    30 * time.Second,
		MaxRetries: 3,
		BaseDelay:  time.Second,
	}
}

// Retrying wraps a transport with a per-attempt timeout and linear backoff.
// It keeps no state between calls.
type Retrying struct {
	next ChatModel
	cfg  RetryConfig
	log  logrus.FieldLogger
}

func NewRetrying(next ChatModel, cfg RetryConfig, log logrus.FieldLogger) *Retrying {
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultRetryConfig().Timeout
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Retrying{next: next, cfg: cfg, log: log}
}

// Send calls the wrapped model until it succeeds, a non-retryable error occurs,
// the retries are used up or ctx is done. The last attempt's error is returned.
func (r *Retrying) Send(ctx context.Context, messages []Message) (string, error) {
	var (
		reply   string
		attempt int
	)
	err := retry.Do(ctx, r.backoff(), func(ctx context.Context) error {
		attempt++
		out, err := r.attempt(ctx, messages)
		if err == nil {
			reply = out
			return nil
		}
		if !retryable(ctx, err) {
			return err
		}
		r.log.WithError(err).WithField("attempt", attempt).Warn("llm attempt failed")
		return retry.RetryableError(err)
	})
	if err != nil {
		return "", err
	}
	return reply, nil
}

func (r *Retrying) attempt(ctx context.Context, messages []Message) (string, error) {
	attemptCtx, cancel := context.WithTimeout(ctx, r.cfg.Timeout)
	defer cancel()

	out, err := r.next.Send(attemptCtx, messages)
	if err != nil && ctx.Err() == nil && isTimeout(attemptCtx, err) {
		return "", errors.Join(ErrTimeout, err)
	}
	return out, err
}

func (r *Retrying) backoff() retry.Backoff {
	var n time.Duration
	linear := retry.BackoffFunc(func() (time.Duration, bool) {
		n++
		return r.cfg.BaseDelay * n, false
	})
	return retry.WithMaxRetries(r.cfg.MaxRetries, linear)
}

func retryable(ctx context.Context, err error) bool {
	if ctx.Err() != nil {
		return false
	}
	return !errors.Is(err, ErrInvalidResponseFormat) && !errors.Is(err, ErrNotConfigured)
}

func isTimeout(attemptCtx context.Context, err error) bool {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(attemptCtx.Err(), context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
