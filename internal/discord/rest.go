package discord

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

const defaultBaseURL = "https://discord.com/api/v10"

// Discord wire constants for guild scheduled events.
const (
	privacyGuildOnly  = 2
	entityTypeVoice   = 2
	statusCancelled   = 4
	optionTypeString  = 3
	optionTypeInteger = 4
)

// RESTClient talks to the Discord HTTP API for a single guild.
type RESTClient struct {
	httpClient *http.Client
	baseURL    string
	token      string
	appID      int64
	guildID    int64
}

// NewRESTClient creates a client authenticated with the given bot token,
// scoped to one application and guild.
func NewRESTClient(token string, appID, guildID int64) *RESTClient {
	return &RESTClient{
		httpClient: &http.Client{Timeout: 15 * time.Second},
		baseURL:    defaultBaseURL,
		token:      token,
		appID:      appID,
		guildID:    guildID,
	}
}

// CreateScheduledEvent schedules a new voice-channel event on the guild.
func (c *RESTClient) CreateScheduledEvent(ctx context.Context, p CreateParams) (*ScheduledEvent, error) {
	body := map[string]any{
		"name":                 p.Name,
		"description":          p.Description,
		"channel_id":           fmt.Sprintf("%d", p.ChannelID),
		"scheduled_start_time": p.StartTime.Format(time.RFC3339),
		"scheduled_end_time":   p.EndTime.Format(time.RFC3339),
		"privacy_level":        privacyGuildOnly,
		"entity_type":          entityTypeVoice,
	}

	var out ScheduledEvent
	path := fmt.Sprintf("/guilds/%d/scheduled-events", c.guildID)
	if err := c.do(ctx, http.MethodPost, path, p.Reason, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListScheduledEvents returns the guild's live scheduled events, including
// subscriber counts.
func (c *RESTClient) ListScheduledEvents(ctx context.Context) ([]ScheduledEvent, error) {
	var out []ScheduledEvent
	path := fmt.Sprintf("/guilds/%d/scheduled-events?with_user_count=true", c.guildID)
	if err := c.do(ctx, http.MethodGet, path, "", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CancelScheduledEvent marks a scheduled event as cancelled.
func (c *RESTClient) CancelScheduledEvent(ctx context.Context, id int64, reason string) error {
	body := map[string]any{"status": statusCancelled}
	path := fmt.Sprintf("/guilds/%d/scheduled-events/%d", c.guildID, id)
	return c.do(ctx, http.MethodPatch, path, reason, body, nil)
}

// EditScheduledEvent updates name, description, and timing of a scheduled
// event and returns Discord's view of the result.
func (c *RESTClient) EditScheduledEvent(ctx context.Context, id int64, p EditParams) (*ScheduledEvent, error) {
	body := map[string]any{
		"name":                 p.Name,
		"description":          p.Description,
		"scheduled_start_time": p.StartTime.Format(time.RFC3339),
		"scheduled_end_time":   p.EndTime.Format(time.RFC3339),
	}

	var out ScheduledEvent
	path := fmt.Sprintf("/guilds/%d/scheduled-events/%d", c.guildID, id)
	if err := c.do(ctx, http.MethodPatch, path, p.Reason, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// RegisterCommands overwrites the guild's slash commands with the bot's set.
func (c *RESTClient) RegisterCommands(ctx context.Context) error {
	path := fmt.Sprintf("/applications/%d/guilds/%d/commands", c.appID, c.guildID)
	return c.do(ctx, http.MethodPut, path, "", commandDefinitions, nil)
}

func (c *RESTClient) do(ctx context.Context, method, path, reason string, body, out any) error {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return fmt.Errorf("encoding request body: %w", err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, &buf)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Authorization", "Bot "+c.token)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if reason != "" {
		req.Header.Set("X-Audit-Log-Reason", url.PathEscape(reason))
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		apiErr := &APIError{Status: resp.StatusCode}
		if err := json.NewDecoder(resp.Body).Decode(apiErr); err != nil {
			apiErr.Message = resp.Status
		}
		return apiErr
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decoding %s %s response: %w", method, path, err)
		}
	}
	return nil
}

// commandDefinitions is the slash-command set registered on the guild. The
// command layer in internal/server dispatches on these names.
var commandDefinitions = []map[string]any{
	{
		"name":        "newevent",
		"description": "Schedules a new event.",
		"options": []map[string]any{
			{"type": optionTypeString, "name": "name", "description": "The name of the event.", "required": true},
			{"type": optionTypeString, "name": "date", "description": "The date and time of the event, timezone included.", "required": true},
			{"type": optionTypeInteger, "name": "hours", "description": "The length of the event in hours (default 1)."},
			{"type": optionTypeString, "name": "description", "description": "A description for the event."},
		},
	},
	{
		"name":        "deleteevent",
		"description": "Cancels a scheduled event.",
		"options": []map[string]any{
			{"type": optionTypeString, "name": "name", "description": "The name of the event.", "required": true},
		},
	},
	{
		"name":        "editevent",
		"description": "Reschedules or renames an event.",
		"options": []map[string]any{
			{"type": optionTypeString, "name": "name", "description": "The current name of the event.", "required": true},
			{"type": optionTypeString, "name": "date", "description": "The new date and time, timezone included.", "required": true},
			{"type": optionTypeInteger, "name": "hours", "description": "The new length of the event in hours.", "required": true},
			{"type": optionTypeString, "name": "new_name", "description": "A new name for the event."},
			{"type": optionTypeString, "name": "description", "description": "A new description for the event."},
		},
	},
	{
		"name":        "listevents",
		"description": "Lists the events this bot is tracking.",
	},
}
