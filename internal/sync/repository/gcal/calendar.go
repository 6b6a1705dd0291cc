package gcal

import (
	"context"

	"markdown-calendar-sync/internal/model"
	"markdown-calendar-sync/internal/sync/repository"
	"markdown-calendar-sync/pkg/gcalendar"
	pkgLog "markdown-calendar-sync/pkg/log"
)

type implRepository struct {
	client *gcalendar.Client
	l      pkgLog.Logger
}

// New creates a Google Calendar backed repository.
func New(client *gcalendar.Client, l pkgLog.Logger) repository.CalendarRepository {
	return &implRepository{client: client, l: l}
}

func (r *implRepository) List(ctx context.Context, opt repository.ListOptions) ([]model.Event, error) {
	remote, err := r.client.ListEvents(ctx, gcalendar.ListEventsRequest{
		CalendarID: opt.CalendarID,
		TimeMin:    opt.TimeMin,
		TimeMax:    opt.TimeMax,
		MaxResults: opt.MaxResults,
	})
	if err != nil {
		r.l.Errorf(ctx, "gcal repository: list failed for window [%s, %s]: %v", opt.TimeMin, opt.TimeMax, err)
		return nil, err
	}

	events := make([]model.Event, 0, len(remote))
	for _, item := range remote {
		events = append(events, toModel(item))
	}
	return events, nil
}

func (r *implRepository) Insert(ctx context.Context, calendarID string, event model.Event) (model.Event, error) {
	created, err := r.client.InsertEvent(ctx, calendarID, toBody(event))
	if err != nil {
		r.l.Errorf(ctx, "gcal repository: insert failed for %q: %v", event.Summary, err)
		return model.Event{}, err
	}
	return toModel(created), nil
}

func (r *implRepository) Update(ctx context.Context, calendarID, eventID string, event model.Event) (model.Event, error) {
	updated, err := r.client.UpdateEvent(ctx, calendarID, eventID, toBody(event))
	if err != nil {
		r.l.Errorf(ctx, "gcal repository: update failed for %q (id=%s): %v", event.Summary, eventID, err)
		return model.Event{}, err
	}
	return toModel(updated), nil
}

func toBody(event model.Event) gcalendar.EventBody {
	return gcalendar.EventBody{
		Summary:     event.Summary,
		Description: event.Description,
		Location:    event.Location,
		ColorID:     event.ColorID,
		Start:       toBound(event.Start),
		End:         toBound(event.End),
	}
}

func toBound(t model.EventTime) gcalendar.EventDateTime {
	return gcalendar.EventDateTime{
		DateTime: t.DateTime,
		Date:     t.Date,
		TimeZone: t.TimeZone,
	}
}

func toModel(event gcalendar.Event) model.Event {
	return model.Event{
		ID:          event.ID,
		HTMLLink:    event.HtmlLink,
		Summary:     event.Summary,
		Description: event.Description,
		Location:    event.Location,
		ColorID:     event.ColorID,
		Start:       model.EventTime{DateTime: event.Start.DateTime, Date: event.Start.Date, TimeZone: event.Start.TimeZone},
		End:         model.EventTime{DateTime: event.End.DateTime, Date: event.End.Date, TimeZone: event.End.TimeZone},
	}
}
