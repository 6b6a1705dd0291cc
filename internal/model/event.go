package model

import "fmt"

// NoSummary is the placeholder summary used when the source document
// gives an item no title. Pushed to the calendar as-is.
const NoSummary = "%"

// EventTime is one bound (start or end) of an event's span.
// It is a two-case variant: a timed bound carries DateTime (RFC3339 with an
// explicit UTC offset), an all-day bound carries Date (YYYY-MM-DD). Exactly
// one of the two is set; TimeZone accompanies both.
type EventTime struct {
	DateTime string
	Date     string
	TimeZone string
}

// NewTimed returns a timed bound.
func NewTimed(dateTime, timeZone string) EventTime {
	return EventTime{DateTime: dateTime, TimeZone: timeZone}
}

// NewAllDay returns an all-day bound.
func NewAllDay(date, timeZone string) EventTime {
	return EventTime{Date: date, TimeZone: timeZone}
}

// IsAllDay reports whether the bound uses the date shape.
func (t EventTime) IsAllDay() bool {
	return t.Date != ""
}

func (t EventTime) validate() error {
	if t.Date == "" && t.DateTime == "" {
		return ErrInvalidEvent
	}
	if t.Date != "" && t.DateTime != "" {
		return ErrInvalidEvent
	}
	if t.TimeZone == "" {
		return ErrInvalidEvent
	}
	return nil
}

// Event is the canonical calendar event record, as parsed from a schedule
// document or fetched from the remote calendar. ID and HTMLLink stay empty
// until the event exists remotely.
type Event struct {
	ID          string
	Start       EventTime
	End         EventTime
	Location    string
	Summary     string
	Description string
	ColorID     string
	HTMLLink    string
}

// IsAllDay reports whether the event spans whole days rather than a clock
// time window.
func (e Event) IsAllDay() bool {
	return e.Start.IsAllDay()
}

// Validate checks the event invariants: start and end are both set, share
// the same shape, and the color id is non-empty.
func (e Event) Validate() error {
	if err := e.Start.validate(); err != nil {
		return fmt.Errorf("%w: bad start %+v", err, e.Start)
	}
	if err := e.End.validate(); err != nil {
		return fmt.Errorf("%w: bad end %+v", err, e.End)
	}
	if e.Start.IsAllDay() != e.End.IsAllDay() {
		return fmt.Errorf("%w: start and end use different shapes", ErrInvalidEvent)
	}
	if e.ColorID == "" {
		return fmt.Errorf("%w: empty colorId", ErrInvalidEvent)
	}
	return nil
}

// Matches reports whether two events describe the same calendar entry.
// Matching is by summary only. Coarse on purpose: two distinct all-day
// events with the same title in the same window collide.
func (e Event) Matches(other Event) bool {
	return e.Summary == other.Summary
}

// Update overwrites the event's content from other while keeping its own
// remote identity (ID and HTMLLink).
func (e *Event) Update(other Event) {
	e.Start = other.Start
	e.End = other.End
	e.Location = other.Location
	e.Summary = other.Summary
	e.Description = other.Description
	e.ColorID = other.ColorID
}
