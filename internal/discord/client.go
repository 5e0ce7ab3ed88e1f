package discord

import (
	"context"
	"time"
)

// ScheduledEvent is the subset of a Discord guild scheduled event the bot
// reads back. Discord owns these fields; local copies are never recomputed.
type ScheduledEvent struct {
	ID              int64     `json:"id,string"`
	Name            string    `json:"name"`
	Description     string    `json:"description"`
	ChannelID       int64     `json:"channel_id,string"`
	StartTime       time.Time `json:"scheduled_start_time"`
	EndTime         time.Time `json:"scheduled_end_time"`
	CreatorID       int64     `json:"creator_id,string"`
	SubscriberCount int       `json:"user_count"`
}

// CreateParams describes a scheduled event to be created. Reason is sent as
// the audit-log reason and identifies the acting user.
type CreateParams struct {
	Name        string
	Description string
	StartTime   time.Time
	EndTime     time.Time
	ChannelID   int64
	Reason      string
}

// EditParams describes changes to an existing scheduled event. Start and
// end are always sent together; there is no partial timing update.
type EditParams struct {
	Name        string
	Description string
	StartTime   time.Time
	EndTime     time.Time
	Reason      string
}

// Client is the surface of the scheduling API the event manager consumes.
type Client interface {
	CreateScheduledEvent(ctx context.Context, p CreateParams) (*ScheduledEvent, error)
	ListScheduledEvents(ctx context.Context) ([]ScheduledEvent, error)
	CancelScheduledEvent(ctx context.Context, id int64, reason string) error
	EditScheduledEvent(ctx context.Context, id int64, p EditParams) (*ScheduledEvent, error)
}
