package discord

import (
	"errors"
	"fmt"
	"strings"
)

// Discord JSON error codes the bot branches on.
const (
	codeUnknownScheduledEvent = 10070
)

// APIError is a Discord API error response.
type APIError struct {
	Status  int    // HTTP status
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("discord api: %s (code %d, http %d)", e.Message, e.Code, e.Status)
}

// IsPastStartTime reports whether err is Discord rejecting a start time
// that has already passed. This can happen even after local validation: the
// clock keeps moving between our check and Discord's.
func IsPastStartTime(err error) bool {
	var api *APIError
	return errors.As(err, &api) && strings.Contains(api.Message, "Cannot schedule event in the past")
}

// IsAlreadyCancelled reports whether err means the scheduled event no
// longer exists on Discord, typically because someone cancelled it there
// directly. Callers may treat this as a benign outcome.
func IsAlreadyCancelled(err error) bool {
	var api *APIError
	return errors.As(err, &api) && api.Code == codeUnknownScheduledEvent
}
