package gcalendar

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"golang.org/x/time/rate"
	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"
)

// defaultMaxResults caps list calls when the caller does not ask for a
// specific page size.
const defaultMaxResults = 200

// Client wraps the Google Calendar API service. All calls go through a
// shared rate limiter to stay under the per-user API quota.
type Client struct {
	service *calendar.Service
	limiter *rate.Limiter
}

func newClient(svc *calendar.Service) *Client {
	return &Client{
		service: svc,
		limiter: rate.NewLimiter(rate.Limit(5), 10),
	}
}

// NewClientFromCredentialsFile creates a Calendar client from a credentials
// JSON file path (Service Account or OAuth Desktop App).
func NewClientFromCredentialsFile(ctx context.Context, credentialsPath string) (*Client, error) {
	data, err := os.ReadFile(credentialsPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read credentials file: %w", err)
	}
	return NewClientFromCredentialsJSON(ctx, data)
}

// NewClientFromCredentialsJSON creates a Calendar client from raw
// credentials JSON bytes. Service Account credentials are tried first;
// OAuth Desktop App credentials need a token.json next to the binary
// (see scripts/gcal-auth).
func NewClientFromCredentialsJSON(ctx context.Context, credentialsJSON []byte) (*Client, error) {
	config, err := google.JWTConfigFromJSON(credentialsJSON, calendar.CalendarScope)
	if err == nil {
		tokenSource := config.TokenSource(ctx)
		svc, svcErr := calendar.NewService(ctx, option.WithTokenSource(tokenSource))
		if svcErr != nil {
			return nil, fmt.Errorf("failed to create calendar service: %w", svcErr)
		}
		return newClient(svc), nil
	}

	var oauthCreds struct {
		Installed struct {
			ClientID     string   `json:"client_id"`
			ClientSecret string   `json:"client_secret"`
			RedirectURIs []string `json:"redirect_uris"`
		} `json:"installed"`
	}
	if jsonErr := json.Unmarshal(credentialsJSON, &oauthCreds); jsonErr != nil {
		return nil, fmt.Errorf("unsupported credentials format: %w", err)
	}

	oauthConfig := &oauth2.Config{
		ClientID:     oauthCreds.Installed.ClientID,
		ClientSecret: oauthCreds.Installed.ClientSecret,
		Scopes:       []string{calendar.CalendarScope},
		Endpoint:     google.Endpoint,
	}

	tokenData, tokenErr := os.ReadFile("token.json")
	if tokenErr != nil {
		return nil, fmt.Errorf("google credentials are OAuth Desktop type but no token.json found: run scripts/gcal-auth first")
	}

	var tok oauth2.Token
	if jsonErr := json.Unmarshal(tokenData, &tok); jsonErr != nil {
		return nil, fmt.Errorf("failed to parse token.json: %w", jsonErr)
	}

	tokenSource := oauthConfig.TokenSource(ctx, &tok)
	svc, svcErr := calendar.NewService(ctx, option.WithTokenSource(tokenSource))
	if svcErr != nil {
		return nil, fmt.Errorf("failed to create calendar service from OAuth token: %w", svcErr)
	}
	return newClient(svc), nil
}

// NewClientFromHTTP creates a Calendar client from a pre-configured HTTP
// client. Used by tests to point the service at a fake API.
func NewClientFromHTTP(ctx context.Context, httpClient *http.Client) (*Client, error) {
	svc, err := calendar.NewService(ctx, option.WithHTTPClient(httpClient))
	if err != nil {
		return nil, fmt.Errorf("failed to create calendar service: %w", err)
	}
	return newClient(svc), nil
}

// ListEvents returns the events overlapping [TimeMin, TimeMax], with
// recurring events expanded and ordered by start time.
func (c *Client) ListEvents(ctx context.Context, req ListEventsRequest) ([]Event, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	maxResults := req.MaxResults
	if maxResults <= 0 {
		maxResults = defaultMaxResults
	}

	result, err := c.service.Events.List(req.CalendarID).
		TimeMin(req.TimeMin).
		TimeMax(req.TimeMax).
		MaxResults(maxResults).
		SingleEvents(true).
		OrderBy("startTime").
		Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to list calendar events: %w", err)
	}

	events := make([]Event, 0, len(result.Items))
	for _, item := range result.Items {
		events = append(events, fromAPIEvent(item))
	}
	return events, nil
}

// InsertEvent creates a new event and returns it with its server identity.
func (c *Client) InsertEvent(ctx context.Context, calendarID string, body EventBody) (Event, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return Event{}, err
	}

	created, err := c.service.Events.Insert(calendarID, toAPIEvent(body)).Context(ctx).Do()
	if err != nil {
		return Event{}, fmt.Errorf("failed to insert calendar event: %w", err)
	}
	return fromAPIEvent(created), nil
}

// UpdateEvent replaces the event identified by eventID with the given body.
func (c *Client) UpdateEvent(ctx context.Context, calendarID, eventID string, body EventBody) (Event, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return Event{}, err
	}

	updated, err := c.service.Events.Update(calendarID, eventID, toAPIEvent(body)).Context(ctx).Do()
	if err != nil {
		return Event{}, fmt.Errorf("failed to update calendar event: %w", err)
	}
	return fromAPIEvent(updated), nil
}

func toAPIEvent(body EventBody) *calendar.Event {
	return &calendar.Event{
		Summary:     body.Summary,
		Description: body.Description,
		Location:    body.Location,
		ColorId:     body.ColorID,
		Start:       toAPIDateTime(body.Start),
		End:         toAPIDateTime(body.End),
	}
}

func toAPIDateTime(t EventDateTime) *calendar.EventDateTime {
	return &calendar.EventDateTime{
		DateTime: t.DateTime,
		Date:     t.Date,
		TimeZone: t.TimeZone,
	}
}

func fromAPIEvent(item *calendar.Event) Event {
	ev := Event{
		ID:       item.Id,
		HtmlLink: item.HtmlLink,
		EventBody: EventBody{
			Summary:     item.Summary,
			Description: item.Description,
			Location:    item.Location,
			ColorID:     item.ColorId,
		},
	}
	if item.Start != nil {
		ev.Start = EventDateTime{DateTime: item.Start.DateTime, Date: item.Start.Date, TimeZone: item.Start.TimeZone}
	}
	if item.End != nil {
		ev.End = EventDateTime{DateTime: item.End.DateTime, Date: item.End.Date, TimeZone: item.End.TimeZone}
	}
	return ev
}
