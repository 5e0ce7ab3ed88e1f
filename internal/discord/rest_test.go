package discord

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func testClient(t *testing.T, handler http.HandlerFunc) *RESTClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return &RESTClient{
		httpClient: srv.Client(),
		baseURL:    srv.URL,
		token:      "test-token",
		appID:      11,
		guildID:    22,
	}
}

func TestCreateScheduledEvent(t *testing.T) {
	var gotPath, gotAuth, gotReason string
	var gotBody map[string]any

	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.Method + " " + r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		gotReason = r.Header.Get("X-Audit-Log-Reason")
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("decoding request body: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"123","name":"Game Night","channel_id":"55","creator_id":"9","user_count":0,
			"scheduled_start_time":"2026-09-01T19:00:00-05:00","scheduled_end_time":"2026-09-01T21:00:00-05:00"}`))
	})

	start := time.Date(2026, 9, 1, 19, 0, 0, 0, time.FixedZone("EST", -5*3600))
	ev, err := client.CreateScheduledEvent(context.Background(), CreateParams{
		Name:      "Game Night",
		StartTime: start,
		EndTime:   start.Add(2 * time.Hour),
		ChannelID: 55,
		Reason:    "eventnite: newevent invoked by tester",
	})
	if err != nil {
		t.Fatalf("CreateScheduledEvent: %v", err)
	}

	if gotPath != "POST /guilds/22/scheduled-events" {
		t.Errorf("request = %q", gotPath)
	}
	if gotAuth != "Bot test-token" {
		t.Errorf("Authorization = %q", gotAuth)
	}
	if gotReason == "" {
		t.Error("X-Audit-Log-Reason not set")
	}
	if gotBody["entity_type"] != float64(entityTypeVoice) {
		t.Errorf("entity_type = %v, want %d", gotBody["entity_type"], entityTypeVoice)
	}
	if gotBody["channel_id"] != "55" {
		t.Errorf("channel_id = %v, want \"55\"", gotBody["channel_id"])
	}

	if ev.ID != 123 {
		t.Errorf("ID = %d, want 123", ev.ID)
	}
	if ev.CreatorID != 9 {
		t.Errorf("CreatorID = %d, want 9", ev.CreatorID)
	}
}

func TestCreatePastStartTimeError(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"code":50035,"message":"Cannot schedule event in the past."}`))
	})

	_, err := client.CreateScheduledEvent(context.Background(), CreateParams{Name: "X"})
	if err == nil {
		t.Fatal("expected error")
	}
	if !IsPastStartTime(err) {
		t.Errorf("IsPastStartTime = false for %v", err)
	}
	if IsAlreadyCancelled(err) {
		t.Errorf("IsAlreadyCancelled = true for %v", err)
	}
}

func TestCancelUnknownEvent(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPatch {
			t.Errorf("method = %s, want PATCH", r.Method)
		}
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"code":10070,"message":"Unknown Guild Scheduled Event"}`))
	})

	err := client.CancelScheduledEvent(context.Background(), 999, "cleanup")
	if !IsAlreadyCancelled(err) {
		t.Errorf("IsAlreadyCancelled = false for %v", err)
	}
}

func TestListScheduledEvents(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("with_user_count") != "true" {
			t.Error("with_user_count not requested")
		}
		w.Write([]byte(`[{"id":"1","name":"A","channel_id":"5","creator_id":"9","user_count":3,
			"scheduled_start_time":"2026-09-01T19:00:00Z","scheduled_end_time":"2026-09-01T20:00:00Z"}]`))
	})

	events, err := client.ListScheduledEvents(context.Background())
	if err != nil {
		t.Fatalf("ListScheduledEvents: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("len = %d, want 1", len(events))
	}
	if events[0].Name != "A" || events[0].SubscriberCount != 3 {
		t.Errorf("event = %+v", events[0])
	}
}

func TestNonJSONErrorBody(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("bad gateway"))
	})

	_, err := client.ListScheduledEvents(context.Background())
	if err == nil {
		t.Fatal("expected error")
	}
	var api *APIError
	if !errors.As(err, &api) {
		t.Fatalf("error %v is not an APIError", err)
	}
	if api.Status != http.StatusBadGateway {
		t.Errorf("Status = %d, want 502", api.Status)
	}
}
