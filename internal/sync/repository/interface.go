package repository

import (
	"context"

	"markdown-calendar-sync/internal/model"
)

// CalendarRepository is the access interface to the remote calendar store.
type CalendarRepository interface {
	// List returns the events overlapping the given window, recurring
	// events expanded, ordered by start time.
	List(ctx context.Context, opt ListOptions) ([]model.Event, error)

	// Insert creates a new remote event and returns it with its
	// server-assigned id and link.
	Insert(ctx context.Context, calendarID string, event model.Event) (model.Event, error)

	// Update replaces the remote event identified by eventID.
	Update(ctx context.Context, calendarID, eventID string, event model.Event) (model.Event, error)
}

// ListOptions defines a list query window. TimeMin and TimeMax are RFC3339
// strings; all-day windows use midnight UTC bounds.
type ListOptions struct {
	CalendarID string
	TimeMin    string
	TimeMax    string
	MaxResults int64
}
