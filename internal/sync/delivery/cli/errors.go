package cli

import "errors"

var (
	ErrUnknownAgenda = errors.New("unknown agenda")
	ErrNoWeekFiles   = errors.New("no week files found")
	ErrAborted       = errors.New("aborted by user")
)
