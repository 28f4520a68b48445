package utils

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/stellar/go-stellar-sdk/support/config"

	"github.com/samm-evaluation/echo-server/internal/apptracker"
	"github.com/samm-evaluation/echo-server/internal/apptracker/dryrun"
	"github.com/samm-evaluation/echo-server/internal/apptracker/sentry"
)

// sentryFlushTimeout bounds how long shutdown waits for buffered events to reach Sentry.
const sentryFlushTimeout = 5 * time.Second

func DefaultPersistentPreRunE(cfgOpts config.ConfigOptions) func(_ *cobra.Command, _ []string) error {
	return func(_ *cobra.Command, _ []string) error {
		if err := cfgOpts.RequireE(); err != nil {
			return fmt.Errorf("requiring values of config options: %w", err)
		}
		if err := cfgOpts.SetValues(); err != nil {
			return fmt.Errorf("setting values of config options: %w", err)
		}
		return nil
	}
}

// AppTrackerResolver returns a Sentry tracker when a DSN is configured and a log-only tracker otherwise.
func AppTrackerResolver(dsn, environment, release string) (apptracker.AppTracker, error) {
	if dsn == "" {
		return &dryrun.DryRunTracker{}, nil
	}

	tracker, err := sentry.NewSentryTracker(sentry.Options{
		DSN:          dsn,
		Environment:  environment,
		Release:      release,
		FlushTimeout: sentryFlushTimeout,
	})
	if err != nil {
		return nil, fmt.Errorf("instantiating sentry tracker: %w", err)
	}
	return tracker, nil
}
