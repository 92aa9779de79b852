// Copyright 2024 Police Portal Assistant Project
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package resilience provides exponential backoff retry for outbound
// calls, used by the SMS gateway sender.
package resilience

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"go.uber.org/zap"
)

const (
	// DefaultMaxRetries is the default maximum number of retry attempts
	DefaultMaxRetries = 3
	// DefaultMultiplier is the default exponential backoff multiplier
	DefaultMultiplier = 2.0

	defaultBaseDelay = 1 * time.Second
	defaultMaxDelay  = 30 * time.Second
	jitterModulus    = 1000
)

// BackoffConfig holds configuration for exponential backoff retry logic.
// RetryOnFunc decides per error whether another attempt is worthwhile.
type BackoffConfig struct {
	BaseDelay   time.Duration
	MaxRetries  int
	MaxDelay    time.Duration
	Multiplier  float64
	Jitter      bool
	RetryOnFunc func(error) bool
}

// DefaultBackoffConfig returns the default backoff: base delay 1s,
// three retries, delay doubles per attempt.
func DefaultBackoffConfig() BackoffConfig {
	return BackoffConfig{
		BaseDelay:   defaultBaseDelay,
		MaxRetries:  DefaultMaxRetries,
		MaxDelay:    defaultMaxDelay,
		Multiplier:  DefaultMultiplier,
		Jitter:      true,
		RetryOnFunc: DefaultRetryOnFunc,
	}
}

// DefaultRetryOnFunc retries everything except nil and context errors;
// a cancelled context will not resolve itself with another attempt.
func DefaultRetryOnFunc(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	return true
}

// delayFor computes the sleep before the attempt following attempt n.
func (c BackoffConfig) delayFor(attempt int) time.Duration {
	delay := time.Duration(float64(c.BaseDelay) * math.Pow(c.Multiplier, float64(attempt)))
	if delay > c.MaxDelay {
		delay = c.MaxDelay
	}
	if c.Jitter {
		// Up to +-10%, spreads out retries from concurrent senders.
		spread := 2*float64(time.Now().UnixNano()%jitterModulus)/jitterModulus - 1
		delay += time.Duration(float64(delay) * 0.1 * spread)
	}
	return delay
}

// RetryFunc is a function that can be retried with exponential backoff
type RetryFunc func(ctx context.Context) error

// WithExponentialBackoff executes fn, retrying retryable failures with
// exponentially growing delays until MaxRetries is exhausted.
func WithExponentialBackoff(ctx context.Context, logger *zap.Logger, config BackoffConfig, fn RetryFunc) error {
	if logger == nil {
		logger = zap.NewNop()
	}

	attempts := config.MaxRetries + 1
	var lastErr error

	for attempt := 0; attempt < attempts; attempt++ {
		lastErr = fn(ctx)
		if lastErr == nil {
			if attempt > 0 {
				logger.Info("Operation succeeded after retry",
					zap.Int("attempt", attempt+1))
			}
			return nil
		}

		if !config.RetryOnFunc(lastErr) {
			logger.Debug("Error is not retryable, stopping attempts",
				zap.Error(lastErr),
				zap.Int("attempt", attempt+1))
			return lastErr
		}

		if attempt == config.MaxRetries {
			break
		}

		delay := config.delayFor(attempt)
		logger.Debug("Retrying after delay",
			zap.Error(lastErr),
			zap.Int("attempt", attempt+1),
			zap.Duration("delay", delay))

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
	}

	logger.Error("All retry attempts exhausted",
		zap.Error(lastErr),
		zap.Int("total_attempts", attempts))

	return fmt.Errorf("operation failed after %d attempts: %w", attempts, lastErr)
}

// RetryWithMaxAttempts is a convenience wrapper with custom max attempts
func RetryWithMaxAttempts(ctx context.Context, logger *zap.Logger, maxRetries int, fn RetryFunc) error {
	config := DefaultBackoffConfig()
	config.MaxRetries = maxRetries
	return WithExponentialBackoff(ctx, logger, config, fn)
}
