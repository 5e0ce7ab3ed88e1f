// Package manager reconciles the local event snapshot with Discord's
// scheduled events. Every mutating operation re-reads the snapshot before
// acting, so edits made to the backing file out-of-band are honored, and
// persists only after the remote call has succeeded — the local store never
// records an action Discord has not confirmed.
package manager

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"eventnite/internal/discord"
	"eventnite/internal/event"
	"eventnite/internal/types"
)

// provenanceMarker is appended to non-empty descriptions so events this bot
// manages are recognizable on Discord.
const provenanceMarker = "[Event managed by EventNite]"

// Manager orchestrates the event lifecycle: none → scheduled → cancelled.
// It does not serialize concurrent calls for the same event name; the
// dispatch layer owns that.
type Manager struct {
	store    event.Store
	client   discord.Client
	location int64          // voice channel new events are placed in
	zone     *time.Location // reference zone for evaluating "now"
	logger   *slog.Logger

	now func() time.Time // overridable in tests
}

// New creates a Manager. location is the voice channel identifier new
// events are scheduled into; zone is the reference zone used to validate
// that new events are in the future.
func New(store event.Store, client discord.Client, location int64, zone *time.Location, logger *slog.Logger) *Manager {
	return &Manager{
		store:    store,
		client:   client,
		location: location,
		zone:     zone,
		logger:   logger,
		now:      time.Now,
	}
}

// Events returns the current local snapshot.
func (m *Manager) Events() ([]types.Event, error) {
	return m.store.Load()
}

// AddNewEvent validates, schedules the event on Discord, and persists it
// locally. actor names the requesting user for the audit log. A start time
// not strictly in the future fails with ErrPastEvent; a name already
// tracked locally fails with ErrDuplicate. If Discord reports the start
// time as already past — the clock moved between our check and theirs —
// the call fails with ErrRemotePast and nothing is persisted.
func (m *Manager) AddNewEvent(ctx context.Context, name string, date time.Time, hours int, description, actor string) (*types.Event, error) {
	if !date.After(m.now().In(m.zone)) {
		return nil, ErrPastEvent
	}

	events, err := m.store.Load()
	if err != nil {
		return nil, fmt.Errorf("loading events: %w", err)
	}

	switch n := countByName(events, name); {
	case n > 1:
		return nil, fmt.Errorf("%w (name %q)", ErrCorruptState, name)
	case n == 1:
		return nil, ErrDuplicate
	}

	if description != "" {
		description += "\n\n"
	}
	description += provenanceMarker

	ev := types.Event{
		Name:        name,
		Date:        date,
		Hours:       hours,
		Description: description,
		Location:    m.location,
	}

	created, err := m.client.CreateScheduledEvent(ctx, discord.CreateParams{
		Name:        name,
		Description: description,
		StartTime:   ev.Date,
		EndTime:     ev.EndDate(),
		ChannelID:   m.location,
		Reason:      fmt.Sprintf("eventnite: newevent invoked by %s", actor),
	})
	if err != nil {
		m.logger.Error("create scheduled event failed", "name", name, "error", err)
		if discord.IsPastStartTime(err) {
			return nil, ErrRemotePast
		}
		return nil, fmt.Errorf("creating scheduled event: %w", err)
	}

	ev.RemoteID = created.ID
	ev.SubscriberCount = created.SubscriberCount
	ev.CreatorID = created.CreatorID

	events = append(events, ev)
	if err := m.store.Save(events); err != nil {
		// The remote event exists but local bookkeeping failed. Surface
		// it; the caller must not report "nothing happened".
		return nil, fmt.Errorf("event scheduled on discord but not saved locally: %w", err)
	}

	m.logger.Info("event scheduled", "name", name, "remote_id", ev.RemoteID, "start", ev.Date)
	return &ev, nil
}

// DeleteEvent cancels the named event on Discord and removes it from the
// local snapshot. Matches are resolved against Discord's live list, not the
// local store: cancellation must act on what the platform currently
// considers scheduled. Removal of local entries is defensive — every entry
// with the name goes, even if corruption produced more than one.
func (m *Manager) DeleteEvent(ctx context.Context, name, actor string) error {
	remote, err := m.client.ListScheduledEvents(ctx)
	if err != nil {
		return fmt.Errorf("listing scheduled events: %w", err)
	}

	matches := filterByName(remote, name)
	switch {
	case len(matches) == 0:
		return fmt.Errorf("%w (name %q)", ErrNotFound, name)
	case len(matches) > 1:
		return fmt.Errorf("%w (name %q)", ErrCorruptState, name)
	}

	reason := fmt.Sprintf("eventnite: deleteevent invoked by %s", actor)
	if err := m.client.CancelScheduledEvent(ctx, matches[0].ID, reason); err != nil {
		m.logger.Error("cancel scheduled event failed", "name", name, "remote_id", matches[0].ID, "error", err)
		return fmt.Errorf("cancelling scheduled event: %w", err)
	}

	events, err := m.store.Load()
	if err != nil {
		return fmt.Errorf("loading events: %w", err)
	}

	kept := make([]types.Event, 0, len(events))
	for _, e := range events {
		if e.Name != name {
			kept = append(kept, e)
		}
	}

	if err := m.store.Save(kept); err != nil {
		return fmt.Errorf("event cancelled on discord but not removed locally: %w", err)
	}

	m.logger.Info("event cancelled", "name", name, "remote_id", matches[0].ID)
	return nil
}

// EditEvent reschedules the named event on Discord and replaces its local
// record. newName falls back to the current name when empty. date and hours
// are always required together; the end time is recomputed from the pair,
// there is no partial timing update.
func (m *Manager) EditEvent(ctx context.Context, name, newName string, date time.Time, hours int, description, actor string) (*types.Event, error) {
	remote, err := m.client.ListScheduledEvents(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing scheduled events: %w", err)
	}

	matches := filterByName(remote, name)
	switch {
	case len(matches) == 0:
		return nil, fmt.Errorf("%w (name %q)", ErrNotFound, name)
	case len(matches) > 1:
		return nil, fmt.Errorf("%w (name %q)", ErrCorruptState, name)
	}

	if newName == "" {
		newName = name
	}

	updated, err := m.client.EditScheduledEvent(ctx, matches[0].ID, discord.EditParams{
		Name:        newName,
		Description: description,
		StartTime:   date,
		EndTime:     date.Add(time.Duration(hours) * time.Hour),
		Reason:      fmt.Sprintf("eventnite: editevent invoked by %s", actor),
	})
	if err != nil {
		m.logger.Error("edit scheduled event failed", "name", name, "remote_id", matches[0].ID, "error", err)
		return nil, fmt.Errorf("editing scheduled event: %w", err)
	}

	events, err := m.store.Load()
	if err != nil {
		return nil, fmt.Errorf("loading events: %w", err)
	}

	kept := make([]types.Event, 0, len(events)+1)
	for _, e := range events {
		if e.Name != name {
			kept = append(kept, e)
		}
	}

	ev := types.Event{
		Name:            updated.Name,
		Date:            date,
		Hours:           hours,
		Description:     updated.Description,
		Location:        updated.ChannelID,
		RemoteID:        updated.ID,
		SubscriberCount: updated.SubscriberCount,
		CreatorID:       updated.CreatorID,
	}
	kept = append(kept, ev)

	if err := m.store.Save(kept); err != nil {
		return nil, fmt.Errorf("event edited on discord but not saved locally: %w", err)
	}

	m.logger.Info("event edited", "name", name, "new_name", ev.Name, "remote_id", ev.RemoteID)
	return &ev, nil
}

func countByName(events []types.Event, name string) int {
	n := 0
	for _, e := range events {
		if e.Name == name {
			n++
		}
	}
	return n
}

func filterByName(events []discord.ScheduledEvent, name string) []discord.ScheduledEvent {
	var matches []discord.ScheduledEvent
	for _, e := range events {
		if e.Name == name {
			matches = append(matches, e)
		}
	}
	return matches
}
