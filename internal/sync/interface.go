package sync

import "context"

// UseCase is the reconciliation entry point: it makes the remote calendar
// mirror the content of schedule documents.
type UseCase interface {
	// SyncFile parses one schedule document and creates or updates the
	// corresponding remote events, in document order.
	SyncFile(ctx context.Context, input SyncFileInput) (SyncFileOutput, error)
}
