package usecase

import (
	"context"
	"fmt"
	"time"

	"markdown-calendar-sync/internal/model"
	"markdown-calendar-sync/internal/sync/repository"
)

// Mock logger for testing
type mockLogger struct{}

func (m *mockLogger) Debug(ctx context.Context, args ...any)                    {}
func (m *mockLogger) Debugf(ctx context.Context, template string, args ...any)  {}
func (m *mockLogger) Info(ctx context.Context, args ...any)                     {}
func (m *mockLogger) Infof(ctx context.Context, template string, args ...any)   {}
func (m *mockLogger) Warn(ctx context.Context, args ...any)                     {}
func (m *mockLogger) Warnf(ctx context.Context, template string, args ...any)   {}
func (m *mockLogger) Error(ctx context.Context, args ...any)                    {}
func (m *mockLogger) Errorf(ctx context.Context, template string, args ...any)  {}
func (m *mockLogger) Fatal(ctx context.Context, args ...any)                    {}
func (m *mockLogger) Fatalf(ctx context.Context, template string, args ...any)  {}
func (m *mockLogger) DPanic(ctx context.Context, args ...any)                   {}
func (m *mockLogger) DPanicf(ctx context.Context, template string, args ...any) {}
func (m *mockLogger) Panic(ctx context.Context, args ...any)                    {}
func (m *mockLogger) Panicf(ctx context.Context, template string, args ...any)  {}

// fakeCalendar is an in-memory CalendarRepository. Window filtering uses
// inclusive bounds, which is close enough to the store's overlap semantics
// for the windows the reconciler builds.
type fakeCalendar struct {
	events        []model.Event
	nextID        int
	listCalls     int
	failListAfter int // fail when more than this many list calls were made; 0 = never
}

func (f *fakeCalendar) List(ctx context.Context, opt repository.ListOptions) ([]model.Event, error) {
	f.listCalls++
	if f.failListAfter > 0 && f.listCalls > f.failListAfter {
		return nil, fmt.Errorf("simulated remote failure")
	}

	windowMin, err := time.Parse(time.RFC3339, opt.TimeMin)
	if err != nil {
		return nil, fmt.Errorf("bad timeMin %q: %w", opt.TimeMin, err)
	}
	windowMax, err := time.Parse(time.RFC3339, opt.TimeMax)
	if err != nil {
		return nil, fmt.Errorf("bad timeMax %q: %w", opt.TimeMax, err)
	}

	var matches []model.Event
	for _, ev := range f.events {
		start, end := boundsOf(ev)
		if !start.After(windowMax) && !end.Before(windowMin) {
			matches = append(matches, ev)
		}
	}
	return matches, nil
}

func (f *fakeCalendar) Insert(ctx context.Context, calendarID string, event model.Event) (model.Event, error) {
	f.nextID++
	event.ID = fmt.Sprintf("event-%d", f.nextID)
	event.HTMLLink = fmt.Sprintf("https://calendar.google.com/event-%d", f.nextID)
	f.events = append(f.events, event)
	return event, nil
}

func (f *fakeCalendar) Update(ctx context.Context, calendarID, eventID string, event model.Event) (model.Event, error) {
	for i, stored := range f.events {
		if stored.ID == eventID {
			event.ID = stored.ID
			event.HTMLLink = stored.HTMLLink
			f.events[i] = event
			return event, nil
		}
	}
	return model.Event{}, fmt.Errorf("no event with id %s", eventID)
}

func boundsOf(ev model.Event) (time.Time, time.Time) {
	if ev.IsAllDay() {
		start, _ := time.Parse("2006-01-02", ev.Start.Date)
		end, _ := time.Parse("2006-01-02", ev.End.Date)
		return start, end.AddDate(0, 0, 1)
	}
	start, _ := time.Parse(time.RFC3339, ev.Start.DateTime)
	end, _ := time.Parse(time.RFC3339, ev.End.DateTime)
	return start, end
}
