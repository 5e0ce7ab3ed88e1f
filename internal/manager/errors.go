package manager

import "errors"

var (
	// ErrPastEvent is returned when a new event's start time is not
	// strictly in the future of the reference zone's "now".
	ErrPastEvent = errors.New("cannot create events in the past")

	// ErrDuplicate is returned when the local snapshot already tracks an
	// event with the requested name.
	ErrDuplicate = errors.New("an event with that name already exists")

	// ErrNotFound is returned when no live scheduled event matches the
	// requested name.
	ErrNotFound = errors.New("no active schedule found with that name")

	// ErrCorruptState is returned when more than one event carries a name
	// that must be unique. The manager never produces this state itself;
	// it signals the data was damaged elsewhere and is never repaired
	// silently on the create path.
	ErrCorruptState = errors.New("multiple events share that name; were some added by mistake?")

	// ErrRemotePast means Discord rejected the start time as already
	// passed even though local validation accepted it. Expected outcome
	// of a slow command, not a fault.
	ErrRemotePast = errors.New("discord rejected the event as scheduled in the past")
)
