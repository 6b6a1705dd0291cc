package gcalendar

// EventDateTime is one bound of a Google Calendar event. Timed events set
// DateTime (RFC3339 with explicit offset), all-day events set Date
// (YYYY-MM-DD). Values are carried as raw strings: the Calendar API matches
// updates on the exact string form.
type EventDateTime struct {
	DateTime string
	Date     string
	TimeZone string
}

// EventBody holds the writable fields of a calendar event, used as the
// payload of insert and update calls.
type EventBody struct {
	Summary     string
	Description string
	Location    string
	ColorID     string
	Start       EventDateTime
	End         EventDateTime
}

// Event is a calendar event as returned by the API: a body plus the
// server-assigned identity.
type Event struct {
	ID       string
	HtmlLink string
	EventBody
}

// ListEventsRequest is the input for listing Google Calendar events.
// TimeMin and TimeMax are RFC3339 strings; recurring events are expanded
// and results come back ordered by start time.
type ListEventsRequest struct {
	CalendarID string
	TimeMin    string
	TimeMax    string
	MaxResults int64
}
