package model

import "errors"

// ErrInvalidEvent marks an event that breaks the model invariants:
// missing or mixed start/end shapes, or an empty color id.
var ErrInvalidEvent = errors.New("invalid event")
