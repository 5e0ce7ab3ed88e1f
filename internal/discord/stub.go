package discord

import (
	"context"
	"log/slog"
	"sync"
)

// StubClient is a Client that keeps scheduled events in memory. Useful for
// tests and for poking at the bot without a real guild.
type StubClient struct {
	Logger *slog.Logger

	mu     sync.Mutex
	nextID int64
	events []ScheduledEvent
}

// Events returns a copy of the stub's current scheduled events.
func (s *StubClient) Events() []ScheduledEvent {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]ScheduledEvent, len(s.events))
	copy(out, s.events)
	return out
}

func (s *StubClient) CreateScheduledEvent(_ context.Context, p CreateParams) (*ScheduledEvent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	ev := ScheduledEvent{
		ID:          s.nextID,
		Name:        p.Name,
		Description: p.Description,
		ChannelID:   p.ChannelID,
		StartTime:   p.StartTime,
		EndTime:     p.EndTime,
		CreatorID:   1,
	}
	s.events = append(s.events, ev)

	if s.Logger != nil {
		s.Logger.Info("stub: created scheduled event", "id", ev.ID, "name", ev.Name, "reason", p.Reason)
	}
	return &ev, nil
}

func (s *StubClient) ListScheduledEvents(_ context.Context) ([]ScheduledEvent, error) {
	return s.Events(), nil
}

func (s *StubClient) CancelScheduledEvent(_ context.Context, id int64, reason string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, ev := range s.events {
		if ev.ID == id {
			s.events = append(s.events[:i], s.events[i+1:]...)
			if s.Logger != nil {
				s.Logger.Info("stub: cancelled scheduled event", "id", id, "reason", reason)
			}
			return nil
		}
	}
	return &APIError{Status: 404, Code: codeUnknownScheduledEvent, Message: "Unknown Guild Scheduled Event"}
}

func (s *StubClient) EditScheduledEvent(_ context.Context, id int64, p EditParams) (*ScheduledEvent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.events {
		if s.events[i].ID == id {
			s.events[i].Name = p.Name
			s.events[i].Description = p.Description
			s.events[i].StartTime = p.StartTime
			s.events[i].EndTime = p.EndTime
			ev := s.events[i]
			if s.Logger != nil {
				s.Logger.Info("stub: edited scheduled event", "id", id, "name", ev.Name, "reason", p.Reason)
			}
			return &ev, nil
		}
	}
	return nil, &APIError{Status: 404, Code: codeUnknownScheduledEvent, Message: "Unknown Guild Scheduled Event"}
}
