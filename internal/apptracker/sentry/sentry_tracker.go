package sentry

import (
	"fmt"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/stellar/go-stellar-sdk/support/log"
)

// We need these variables to be able to mock the sentry package level functions in tests.
var (
	captureMessageFunc   = sentry.CaptureMessage
	captureExceptionFunc = sentry.CaptureException
	InitFunc             = sentry.Init
	FlushFunc            = sentry.Flush
)

type Options struct {
	DSN         string
	Environment string
	// Release is the build commit reported with every event.
	Release      string
	FlushTimeout time.Duration
}

type sentryTracker struct {
	flushTimeout time.Duration
}

func (s *sentryTracker) CaptureMessage(message string) {
	captureMessageFunc(message)
}

func (s *sentryTracker) CaptureException(exception error) {
	captureExceptionFunc(exception)
}

func (s *sentryTracker) Flush() {
	if !FlushFunc(s.flushTimeout) {
		log.Warnf("sentry: some events were not delivered within %s", s.flushTimeout)
	}
}

func NewSentryTracker(opts Options) (*sentryTracker, error) {
	if err := InitFunc(sentry.ClientOptions{
		Dsn:              opts.DSN,
		Environment:      opts.Environment,
		Release:          opts.Release,
		AttachStacktrace: true,
	}); err != nil {
		return nil, fmt.Errorf("unable to initialize sentry: %w", err)
	}
	return &sentryTracker{flushTimeout: opts.FlushTimeout}, nil
}
