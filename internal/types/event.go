package types

import "time"

// Event is the normalized representation of one managed guild event,
// independent of its persisted or wire encoding. Two events are the same
// event when their names match exactly (case-sensitive).
type Event struct {
	Name        string
	Date        time.Time
	Hours       int
	Description string
	Location    int64

	// Remote bookkeeping, zero until Discord has confirmed the event.
	// Snowflakes are never zero, so zero safely means "not assigned yet".
	RemoteID        int64
	SubscriberCount int
	CreatorID       int64
}

// EndDate returns the instant the event finishes.
func (e Event) EndDate() time.Time {
	return e.Date.Add(time.Duration(e.Hours) * time.Hour)
}

// Record is the persisted shape of an Event. The UTC offset and zone name
// are stored alongside the epoch timestamp so reloading reconstructs the
// same zoned instant, not merely a UTC one. The description is not
// persisted; Discord owns it once the event is scheduled.
type Record struct {
	Name            string `json:"name"`
	Date            int64  `json:"date"`
	TZOffset        int    `json:"tz_offset"`
	TZName          string `json:"tz_name"`
	Hours           int    `json:"hours"`
	Location        int64  `json:"location"`
	SubscriberCount int    `json:"subscriber_count,omitempty"`
	CreatorID       int64  `json:"creator_id,omitempty"`
	ID              int64  `json:"id,omitempty"`
}

// ToRecord converts the event to its persisted shape.
func (e Event) ToRecord() Record {
	zone, offset := e.Date.Zone()
	return Record{
		Name:            e.Name,
		Date:            e.Date.Unix(),
		TZOffset:        offset,
		TZName:          zone,
		Hours:           e.Hours,
		Location:        e.Location,
		SubscriberCount: e.SubscriberCount,
		CreatorID:       e.CreatorID,
		ID:              e.RemoteID,
	}
}

// FromRecord reconstructs an Event from its persisted shape, restoring the
// zone it was written with.
func FromRecord(r Record) Event {
	loc := time.FixedZone(r.TZName, r.TZOffset)
	return Event{
		Name:            r.Name,
		Date:            time.Unix(r.Date, 0).In(loc),
		Hours:           r.Hours,
		Location:        r.Location,
		SubscriberCount: r.SubscriberCount,
		CreatorID:       r.CreatorID,
		RemoteID:        r.ID,
	}
}
