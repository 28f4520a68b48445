package dryrun

import (
	"github.com/stellar/go-stellar-sdk/support/log"
)

// DryRunTracker only logs what would have been sent to the error tracker.
type DryRunTracker struct{}

func (d *DryRunTracker) CaptureMessage(message string) {
	log.WithField("tracker", "dryrun").Info(message)
}

func (d *DryRunTracker) CaptureException(exception error) {
	log.WithField("tracker", "dryrun").Error(exception)
}

// Flush is a no-op, nothing is buffered.
func (d *DryRunTracker) Flush() {}
