// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package fsutil provides directory operations that retry until the
// filesystem reports the expected state. Removal and creation can lag
// behind the call that issued them while scanners or other processes
// still hold handles.
package fsutil

import (
	"context"
	"errors"
	"fmt"
	"time"
)

const (
	defaultAttempts = 20
	defaultDelay    = 1 * time.Second
)

// ErrRetriesExhausted is returned when the success check never passed and
// no more specific error was captured along the way.
var ErrRetriesExhausted = errors.New("failed")

// Policy bounds how often and how patiently an action is retried.
type Policy struct {
	// Attempts is the maximum number of success checks. When 0 the
	// default (20) is used.
	Attempts int

	// Delay is the wait between failed attempts. When 0 the default (1s)
	// is used.
	Delay time.Duration
}

// DefaultPolicy returns the standard bound: 20 attempts, 1 s apart.
func DefaultPolicy() Policy {
	return Policy{Attempts: defaultAttempts, Delay: defaultDelay}
}

// Until runs action until check reports success. The check runs first so
// an already satisfied condition costs nothing; after that each attempt
// runs the action and checks again, waiting Delay between attempts.
//
// Errors from either function are remembered but do not stop the loop.
// When the attempts run out, Until returns the last remembered error
// wrapped with ErrRetriesExhausted. If ctx is cancelled during a wait the
// function returns ctx.Err().
func (p Policy) Until(ctx context.Context, action func() error, check func() (bool, error)) error {
	attempts := p.Attempts
	if attempts <= 0 {
		attempts = defaultAttempts
	}
	delay := p.Delay
	if delay <= 0 {
		delay = defaultDelay
	}

	var last error
	ok, err := check()
	if ok {
		return nil
	}
	if err != nil {
		last = err
	}

	for attempt := 1; attempt < attempts; attempt++ {
		if attempt > 1 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
		}

		if err := action(); err != nil {
			last = err
		}

		ok, err := check()
		if ok {
			return nil
		}
		if err != nil {
			last = err
		}
	}

	if last == nil {
		return ErrRetriesExhausted
	}
	return fmt.Errorf("%w: %w", ErrRetriesExhausted, last)
}
