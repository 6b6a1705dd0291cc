package weekmd

import "errors"

// Parse errors. Both are fatal to the whole document: a half-parsed
// schedule must never reach the calendar.
var (
	ErrBadFormat    = errors.New("malformed schedule document")
	ErrUnknownMonth = errors.New("unknown month name")
)
