package usecase

import (
	"context"
	"fmt"
	"time"

	"markdown-calendar-sync/internal/model"
	"markdown-calendar-sync/internal/sync"
	"markdown-calendar-sync/internal/sync/repository"
)

// allDayWindow is the bound format of all-day list queries.
const allDayWindow = "2006-01-02T15:04:05Z"

// SyncFile parses a schedule document and reconciles each event against
// the remote calendar, strictly in document order. The first remote
// failure aborts the remaining loop; events already pushed stay pushed,
// and the partial output is returned alongside the error.
func (uc *implUseCase) SyncFile(ctx context.Context, input sync.SyncFileInput) (sync.SyncFileOutput, error) {
	events, err := uc.parser.WithDefaultColor(input.DefaultColor).ParseFile(input.Path, input.Reference)
	if err != nil {
		return sync.SyncFileOutput{}, fmt.Errorf("%w: %v", sync.ErrParseFailed, err)
	}

	uc.l.Infof(ctx, "SyncFile: parsed %d events from %s", len(events), input.Path)

	var out sync.SyncFileOutput
	for _, event := range events {
		synced, err := uc.syncEvent(ctx, input.CalendarID, event)
		if err != nil {
			return out, err
		}
		out.Events = append(out.Events, synced)
		if synced.Created {
			out.Created++
		} else {
			out.Updated++
		}
	}
	return out, nil
}

// syncEvent makes the remote calendar reflect one parsed event: one list
// call to find a match, then one insert or update.
func (uc *implUseCase) syncEvent(ctx context.Context, calendarID string, event model.Event) (sync.SyncedEvent, error) {
	var match model.Event
	var found bool
	var err error
	if event.IsAllDay() {
		match, found, err = uc.findAllDayMatch(ctx, calendarID, event)
	} else {
		match, found, err = uc.findTimedMatch(ctx, calendarID, event)
	}
	if err != nil {
		return sync.SyncedEvent{}, fmt.Errorf("%w: %v", sync.ErrRemoteFailed, err)
	}

	if !found {
		created, err := uc.repo.Insert(ctx, calendarID, event)
		if err != nil {
			return sync.SyncedEvent{}, fmt.Errorf("%w: %v", sync.ErrRemoteFailed, err)
		}
		uc.l.Infof(ctx, "created event: %s", created.HTMLLink)
		return sync.SyncedEvent{Summary: event.Summary, HTMLLink: created.HTMLLink, Created: true}, nil
	}

	match.Update(event)
	updated, err := uc.repo.Update(ctx, calendarID, match.ID, match)
	if err != nil {
		return sync.SyncedEvent{}, fmt.Errorf("%w: %v", sync.ErrRemoteFailed, err)
	}
	uc.l.Infof(ctx, "updated event: %s", updated.HTMLLink)
	return sync.SyncedEvent{Summary: event.Summary, HTMLLink: updated.HTMLLink, Created: false}, nil
}

// findTimedMatch queries the exact requested window and takes the first
// timed candidate by start time. All-day events in the results are
// discarded: the store returns adjacent all-day events that technically
// overlap any timed window touching their date.
func (uc *implUseCase) findTimedMatch(ctx context.Context, calendarID string, event model.Event) (model.Event, bool, error) {
	candidates, err := uc.repo.List(ctx, repository.ListOptions{
		CalendarID: calendarID,
		TimeMin:    event.Start.DateTime,
		TimeMax:    event.End.DateTime,
	})
	if err != nil {
		return model.Event{}, false, err
	}

	sortByStart(candidates)
	for _, candidate := range candidates {
		if candidate.IsAllDay() {
			continue
		}
		// First timed candidate wins; further overlaps are ignored.
		return candidate, true, nil
	}
	return model.Event{}, false, nil
}

// findAllDayMatch pre-filters by a date window widened one day backwards
// (the store filters all-day events on day boundaries), then decides by
// event equality against the all-day candidates.
func (uc *implUseCase) findAllDayMatch(ctx context.Context, calendarID string, event model.Event) (model.Event, bool, error) {
	start, err := time.Parse("2006-01-02", event.Start.Date)
	if err != nil {
		return model.Event{}, false, fmt.Errorf("bad all-day start %q: %w", event.Start.Date, err)
	}
	end, err := time.Parse("2006-01-02", event.End.Date)
	if err != nil {
		return model.Event{}, false, fmt.Errorf("bad all-day end %q: %w", event.End.Date, err)
	}

	candidates, err := uc.repo.List(ctx, repository.ListOptions{
		CalendarID: calendarID,
		TimeMin:    start.AddDate(0, 0, -1).Format(allDayWindow),
		TimeMax:    end.Format(allDayWindow),
	})
	if err != nil {
		return model.Event{}, false, err
	}

	sortByStart(candidates)
	for _, candidate := range candidates {
		if !candidate.IsAllDay() {
			continue
		}
		if candidate.Matches(event) {
			return candidate, true, nil
		}
	}
	return model.Event{}, false, nil
}
