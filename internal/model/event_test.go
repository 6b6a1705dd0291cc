package model

import (
	"errors"
	"testing"
)

func timedEvent() Event {
	return Event{
		Start:    NewTimed("2024-09-04T08:30:00+02:00", "Europe/Paris"),
		End:      NewTimed("2024-09-04T09:25:00+02:00", "Europe/Paris"),
		Location: "s213",
		Summary:  "2nde 3",
		ColorID:  "8",
	}
}

func allDayEvent() Event {
	return Event{
		Start:   NewAllDay("2024-09-11", "Europe/Paris"),
		End:     NewAllDay("2024-09-15", "Europe/Paris"),
		Summary: "Londres",
		ColorID: "11",
	}
}

func TestEventValidate(t *testing.T) {
	t.Run("valid timed event", func(t *testing.T) {
		if err := timedEvent().Validate(); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("valid all-day event", func(t *testing.T) {
		if err := allDayEvent().Validate(); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("mixed shapes rejected", func(t *testing.T) {
		ev := timedEvent()
		ev.End = NewAllDay("2024-09-04", "Europe/Paris")
		if err := ev.Validate(); !errors.Is(err, ErrInvalidEvent) {
			t.Errorf("expected ErrInvalidEvent, got %v", err)
		}
	})

	t.Run("bound with both shapes rejected", func(t *testing.T) {
		ev := timedEvent()
		ev.Start.Date = "2024-09-04"
		if err := ev.Validate(); !errors.Is(err, ErrInvalidEvent) {
			t.Errorf("expected ErrInvalidEvent, got %v", err)
		}
	})

	t.Run("empty bound rejected", func(t *testing.T) {
		ev := timedEvent()
		ev.End = EventTime{TimeZone: "Europe/Paris"}
		if err := ev.Validate(); !errors.Is(err, ErrInvalidEvent) {
			t.Errorf("expected ErrInvalidEvent, got %v", err)
		}
	})

	t.Run("missing timezone rejected", func(t *testing.T) {
		ev := timedEvent()
		ev.Start.TimeZone = ""
		if err := ev.Validate(); !errors.Is(err, ErrInvalidEvent) {
			t.Errorf("expected ErrInvalidEvent, got %v", err)
		}
	})

	t.Run("empty colorId rejected", func(t *testing.T) {
		ev := timedEvent()
		ev.ColorID = ""
		if err := ev.Validate(); !errors.Is(err, ErrInvalidEvent) {
			t.Errorf("expected ErrInvalidEvent, got %v", err)
		}
	})
}

func TestEventIsAllDay(t *testing.T) {
	if timedEvent().IsAllDay() {
		t.Error("timed event reported as all-day")
	}
	if !allDayEvent().IsAllDay() {
		t.Error("all-day event not reported as all-day")
	}
}

func TestEventUpdatePreservesIdentity(t *testing.T) {
	remote := timedEvent()
	remote.ID = "remote-123"
	remote.HTMLLink = "https://calendar.google.com/event-123"

	parsed := Event{
		Start:       NewTimed("2024-09-04T10:00:00+02:00", "Europe/Paris"),
		End:         NewTimed("2024-09-04T10:55:00+02:00", "Europe/Paris"),
		Location:    "s215",
		Summary:     "1ere NSI",
		Description: "<p>TP réseau</p>",
		ColorID:     "1",
	}

	remote.Update(parsed)

	if remote.ID != "remote-123" {
		t.Errorf("ID changed: %s", remote.ID)
	}
	if remote.HTMLLink != "https://calendar.google.com/event-123" {
		t.Errorf("HTMLLink changed: %s", remote.HTMLLink)
	}
	if remote.Start != parsed.Start || remote.End != parsed.End {
		t.Error("start/end not taken from the new event")
	}
	if remote.Location != "s215" || remote.Summary != "1ere NSI" {
		t.Error("location/summary not taken from the new event")
	}
	if remote.Description != "<p>TP réseau</p>" || remote.ColorID != "1" {
		t.Error("description/colorId not taken from the new event")
	}
}

func TestEventMatches(t *testing.T) {
	a := allDayEvent()
	b := allDayEvent()
	b.Start = NewAllDay("2024-10-01", "Europe/Paris")
	b.End = NewAllDay("2024-10-01", "Europe/Paris")

	// Matching ignores everything but the summary.
	if !a.Matches(b) {
		t.Error("events with equal summaries should match")
	}

	b.Summary = "Berlin"
	if a.Matches(b) {
		t.Error("events with different summaries should not match")
	}
}
