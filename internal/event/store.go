package event

import "eventnite/internal/types"

// Store persists the full set of tracked events as a single snapshot.
// Implementations hold no state between calls; callers own the
// load-modify-save cycle and must serialize concurrent writers themselves.
type Store interface {
	// Load returns every persisted event. A store that has never been
	// written reads as empty, not as an error.
	Load() ([]types.Event, error)

	// Save replaces the entire persisted snapshot in one step.
	Save(events []types.Event) error
}
