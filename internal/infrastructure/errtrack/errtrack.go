// Package errtrack forwards unexpected errors to an external tracker.
package errtrack

import (
	"context"
	"fmt"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/rs/zerolog/log"
)

type Reporter interface {
	Capture(ctx context.Context, err error, tags map[string]string)
	Flush(timeout time.Duration)
}

type Config struct {
	Enabled     bool
	DSN         string
	Environment string
	Release     string
}

// New returns a Sentry-backed reporter, or a no-op one when tracking is disabled
func New(cfg Config) (Reporter, error) {
	if !cfg.Enabled || cfg.DSN == "" {
		log.Warn().Msg("[ERRTRACK] Sentry disabled, errors are only logged")
		return Noop{}, nil
	}

	if err := sentry.Init(sentry.ClientOptions{
		Dsn:              cfg.DSN,
		Environment:      cfg.Environment,
		Release:          cfg.Release,
		AttachStacktrace: true,
	}); err != nil {
		return nil, fmt.Errorf("sentry init: %w", err)
	}

	log.Info().Str("environment", cfg.Environment).Msg("[ERRTRACK] Sentry initialized")
	return &sentryReporter{hub: sentry.CurrentHub()}, nil
}

type sentryReporter struct {
	hub *sentry.Hub
}

func (r *sentryReporter) Capture(ctx context.Context, err error, tags map[string]string) {
	if err == nil {
		return
	}

	hub := sentry.GetHubFromContext(ctx)
	if hub == nil {
		hub = r.hub.Clone()
	}

	hub.WithScope(func(scope *sentry.Scope) {
		for k, v := range tags {
			scope.SetTag(k, v)
		}
		hub.CaptureException(err)
	})
}

func (r *sentryReporter) Flush(timeout time.Duration) {
	if !sentry.Flush(timeout) {
		log.Warn().Msg("[ERRTRACK] Flush timed out, some events may be lost")
	}
}

type Noop struct{}

func (Noop) Capture(context.Context, error, map[string]string) {}
func (Noop) Flush(time.Duration)                               {}
