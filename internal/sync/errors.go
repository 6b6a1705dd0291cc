package sync

import "errors"

// Domain errors for the sync package. Remote failures are wrapped, not
// recovered: a run that fails partway through has already mutated some
// events and stops there.
var (
	ErrParseFailed  = errors.New("failed to parse schedule document")
	ErrRemoteFailed = errors.New("remote calendar call failed")
)
