package sync

import "time"

// SyncFileInput selects the document and the target calendar.
type SyncFileInput struct {
	Path       string    // schedule document to parse
	CalendarID string    // target calendar
	Reference  time.Time // wall-clock reference for year inference
	// DefaultColor overrides the configured fallback color for this
	// run (per-agenda colors); empty keeps the configured one.
	DefaultColor string
}

// SyncedEvent reports the outcome for one parsed event.
type SyncedEvent struct {
	Summary  string
	HTMLLink string
	Created  bool // true when inserted, false when updated
}

// SyncFileOutput summarizes a completed run.
type SyncFileOutput struct {
	Events  []SyncedEvent
	Created int
	Updated int
}
