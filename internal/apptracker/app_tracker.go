package apptracker

// AppTracker receives errors and notable messages that should reach an external error tracker.
type AppTracker interface {
	CaptureMessage(message string)
	CaptureException(exception error)
	// Flush blocks until buffered events are delivered or the tracker gives up. Called once on shutdown.
	Flush()
}
