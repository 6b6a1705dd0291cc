package cli

import (
	"context"

	"markdown-calendar-sync/config"
	"markdown-calendar-sync/internal/sync"
	pkgLog "markdown-calendar-sync/pkg/log"
)

// Handler is the interface for the command-line delivery handler.
type Handler interface {
	Run(ctx context.Context, opts RunOptions) error
}

// RunOptions carries the command-line selection. Zero values mean "ask
// interactively" (agenda, period, weeks) or "confirm before pushing" (Yes).
type RunOptions struct {
	Agenda      string
	Period      int
	Weeks       []int
	Yes         bool
	Interactive bool
	// View prints the selected week files before the confirmation; when
	// unset the confirmation flow offers the preview itself.
	View bool
}

// New creates a new command-line delivery handler.
func New(l pkgLog.Logger, cfg *config.Config, uc sync.UseCase) Handler {
	return &handler{
		l:   l,
		cfg: cfg,
		uc:  uc,
	}
}
