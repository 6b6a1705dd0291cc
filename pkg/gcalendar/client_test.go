package gcalendar_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"markdown-calendar-sync/pkg/gcalendar"
)

type rewriteTransport struct {
	Transport http.RoundTripper
	Host      string
}

func (t *rewriteTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req.URL.Scheme = "http"
	req.URL.Host = t.Host
	return t.Transport.RoundTrip(req)
}

func fakeAPIClient(t *testing.T, handler http.HandlerFunc) *gcalendar.Client {
	t.Helper()
	ts := httptest.NewServer(handler)
	t.Cleanup(ts.Close)

	tsClient := ts.Client()
	tsClient.Transport = &rewriteTransport{
		Transport: tsClient.Transport,
		Host:      strings.TrimPrefix(ts.URL, "http://"),
	}

	client, err := gcalendar.NewClientFromHTTP(context.Background(), tsClient)
	if err != nil {
		t.Fatalf("unexpected error creating client: %v", err)
	}
	return client
}

func TestCalendarClient(t *testing.T) {
	mockCreds := `{
		"installed": {
			"client_id": "test-client-id.apps.googleusercontent.com",
			"project_id": "test-project",
			"auth_uri": "https://accounts.google.com/o/oauth2/auth",
			"token_uri": "https://oauth2.googleapis.com/token",
			"client_secret": "test-secret",
			"redirect_uris": ["http://localhost"]
		}
	}`

	t.Run("Initialize with broken JWT/OAuth config", func(t *testing.T) {
		_, err := gcalendar.NewClientFromCredentialsJSON(context.Background(), []byte(`{"broken":true}`))
		if err == nil {
			t.Errorf("expected decoding failure")
		}
	})

	t.Run("Initialize from installed app config", func(t *testing.T) {
		os.WriteFile("token.json", []byte(`{"access_token": "dummy", "token_type": "Bearer", "expiry": "2030-01-01T00:00:00Z"}`), 0644)
		defer os.Remove("token.json")

		_, err := gcalendar.NewClientFromCredentialsJSON(context.Background(), []byte(mockCreds))
		if err != nil {
			t.Fatalf("expected parsing to succeed: %v", err)
		}
	})

	t.Run("Initialize from installed app config without token", func(t *testing.T) {
		_, err := gcalendar.NewClientFromCredentialsJSON(context.Background(), []byte(mockCreds))
		if err == nil {
			t.Fatal("expected failure without token.json")
		}
	})

	t.Run("Initialize from File", func(t *testing.T) {
		tmpFile, _ := os.CreateTemp("", "creds.json")
		defer os.Remove(tmpFile.Name())
		tmpFile.WriteString(`{"broken":true}`)
		tmpFile.Close()

		_, err := gcalendar.NewClientFromCredentialsFile(context.Background(), tmpFile.Name())
		if err == nil {
			t.Errorf("expected failure loading broken file")
		}

		_, err = gcalendar.NewClientFromCredentialsFile(context.Background(), "non-existent-file-path-12345.json")
		if err == nil {
			t.Errorf("expected reading file error")
		}
	})

	t.Run("Insert Event E2E", func(t *testing.T) {
		client := fakeAPIClient(t, func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path == "/calendar/v3/calendars/agenda-1/events" && r.Method == http.MethodPost {
				w.Write([]byte(`{
					"id": "event-123",
					"htmlLink": "https://calendar.google.com/event-uri",
					"summary": "2nde 3",
					"start": {"dateTime": "2024-09-04T08:30:00+02:00", "timeZone": "Europe/Paris"},
					"end": {"dateTime": "2024-09-04T09:25:00+02:00", "timeZone": "Europe/Paris"}
				}`))
				return
			}
			w.WriteHeader(http.StatusNotFound)
		})

		event, err := client.InsertEvent(context.Background(), "agenda-1", gcalendar.EventBody{
			Summary:  "2nde 3",
			Location: "s213",
			ColorID:  "8",
			Start:    gcalendar.EventDateTime{DateTime: "2024-09-04T08:30:00+02:00", TimeZone: "Europe/Paris"},
			End:      gcalendar.EventDateTime{DateTime: "2024-09-04T09:25:00+02:00", TimeZone: "Europe/Paris"},
		})
		if err != nil {
			t.Fatalf("failed to insert event: %v", err)
		}
		if event.ID != "event-123" {
			t.Errorf("unexpected id: %s", event.ID)
		}
		if event.HtmlLink != "https://calendar.google.com/event-uri" {
			t.Errorf("unexpected link: %s", event.HtmlLink)
		}
		if event.Start.DateTime != "2024-09-04T08:30:00+02:00" {
			t.Errorf("start string not preserved: %s", event.Start.DateTime)
		}
	})

	t.Run("Update Event E2E", func(t *testing.T) {
		client := fakeAPIClient(t, func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path == "/calendar/v3/calendars/agenda-1/events/event-123" && r.Method == http.MethodPut {
				w.Write([]byte(`{
					"id": "event-123",
					"htmlLink": "https://calendar.google.com/event-uri",
					"summary": "1ere NSI"
				}`))
				return
			}
			w.WriteHeader(http.StatusNotFound)
		})

		event, err := client.UpdateEvent(context.Background(), "agenda-1", "event-123", gcalendar.EventBody{
			Summary: "1ere NSI",
			ColorID: "1",
			Start:   gcalendar.EventDateTime{DateTime: "2024-09-04T10:00:00+02:00", TimeZone: "Europe/Paris"},
			End:     gcalendar.EventDateTime{DateTime: "2024-09-04T10:55:00+02:00", TimeZone: "Europe/Paris"},
		})
		if err != nil {
			t.Fatalf("failed to update event: %v", err)
		}
		if event.ID != "event-123" || event.Summary != "1ere NSI" {
			t.Errorf("unexpected event: %+v", event)
		}
	})

	t.Run("List Events E2E", func(t *testing.T) {
		client := fakeAPIClient(t, func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path == "/calendar/v3/calendars/test-fail/events" && r.Method == http.MethodGet {
				w.WriteHeader(http.StatusInternalServerError)
				return
			}
			if r.URL.Path == "/calendar/v3/calendars/agenda-1/events" && r.Method == http.MethodGet {
				q := r.URL.Query()
				if q.Get("singleEvents") != "true" || q.Get("orderBy") != "startTime" {
					t.Errorf("missing expansion/order params: %v", q)
				}
				w.Write([]byte(`{
					"items": [
						{
							"id": "event-123",
							"summary": "Voyage scolaire",
							"start": {"date": "2024-09-11"},
							"end": {"date": "2024-09-15"}
						}
					]
				}`))
				return
			}
			w.WriteHeader(http.StatusNotFound)
		})

		events, err := client.ListEvents(context.Background(), gcalendar.ListEventsRequest{
			CalendarID: "agenda-1",
			TimeMin:    "2024-09-10T00:00:00Z",
			TimeMax:    "2024-09-15T00:00:00Z",
		})
		if err != nil {
			t.Fatalf("failed to list events: %v", err)
		}
		if len(events) != 1 {
			t.Fatalf("expected 1 event, got %d", len(events))
		}
		if events[0].Start.Date != "2024-09-11" {
			t.Errorf("date shape not preserved: %+v", events[0].Start)
		}

		_, err = client.ListEvents(context.Background(), gcalendar.ListEventsRequest{
			CalendarID: "test-fail",
			TimeMin:    "2024-09-10T00:00:00Z",
			TimeMax:    "2024-09-15T00:00:00Z",
		})
		if err == nil {
			t.Fatalf("expected api error on test-fail")
		}
	})
}
