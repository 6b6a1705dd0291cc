package usecase

import (
	"markdown-calendar-sync/internal/sync/repository"
	"markdown-calendar-sync/internal/weekmd"
	pkgLog "markdown-calendar-sync/pkg/log"
)

type implUseCase struct {
	l      pkgLog.Logger
	parser *weekmd.Parser
	repo   repository.CalendarRepository
}

// New creates the sync UseCase.
func New(l pkgLog.Logger, parser *weekmd.Parser, repo repository.CalendarRepository) *implUseCase {
	return &implUseCase{
		l:      l,
		parser: parser,
		repo:   repo,
	}
}
