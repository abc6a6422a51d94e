// Package notify delivers daily generation digests to chat platforms.
package notify

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Digest summarizes one nightly generation run.
type Digest struct {
	Date    time.Time
	Created int
	Failed  int
}

// Adapter is the interface platform-specific notifiers implement.
type Adapter interface {
	// Send delivers one digest to the platform.
	Send(ctx context.Context, d Digest) error

	// Close gracefully shuts down the adapter connection.
	Close() error
}

// FormatDigest renders a digest as a single chat message line.
func FormatDigest(d Digest) string {
	msg := fmt.Sprintf("swot-coach: generated %d task(s) for %s", d.Created, d.Date.Format("2006-01-02"))
	if d.Failed > 0 {
		msg += fmt.Sprintf(" (%d item(s) skipped)", d.Failed)
	}
	return msg
}

// Fanout delivers a digest to every configured adapter, continuing past
// individual failures.
type Fanout struct {
	adapters []Adapter
}

// NewFanout builds a fanout over the given adapters. Nil adapters are
// skipped so callers can pass optional notifiers unconditionally.
func NewFanout(adapters ...Adapter) *Fanout {
	f := &Fanout{}
	for _, a := range adapters {
		if a != nil {
			f.adapters = append(f.adapters, a)
		}
	}
	return f
}

// Len reports the number of configured adapters.
func (f *Fanout) Len() int {
	return len(f.adapters)
}

// Send delivers d to all adapters. Errors are collected; one failing
// platform never blocks the others.
func (f *Fanout) Send(ctx context.Context, d Digest) error {
	var errs []error
	for _, a := range f.adapters {
		if err := a.Send(ctx, d); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Close shuts down all adapters.
func (f *Fanout) Close() error {
	var errs []error
	for _, a := range f.adapters {
		if err := a.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
