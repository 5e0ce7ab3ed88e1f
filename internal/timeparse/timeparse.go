// Package timeparse turns user-supplied date strings into zone-aware
// instants. Inputs carry either a North-American zone abbreviation, an
// explicit numeric offset, or an RFC 3339 timestamp; anything without a
// resolvable zone is rejected, since a zoneless instant cannot be compared
// against "now".
package timeparse

import (
	"fmt"
	"strings"
	"time"
)

// ParseError reports a date string that could not be resolved to an
// absolute instant. The Reason is safe to show to users.
type ParseError struct {
	Input       string
	Reason      string
	MissingZone bool
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("cannot parse %q: %s", e.Input, e.Reason)
}

// IsMissingZone reports whether err is a ParseError caused by a date that
// was otherwise valid but carried no timezone.
func IsMissingZone(err error) bool {
	pe, ok := err.(*ParseError)
	return ok && pe.MissingZone
}

var layouts = []string{
	"2006-01-02 15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 3:04 PM",
	"01/02/2006 15:04",
	"01/02/2006 3:04 PM",
	"Jan 2 2006 15:04",
	"Jan 2, 2006 3:04 PM",
}

// Fixed-offset abbreviations. The bare regional forms (ET, CT, ...) map to
// IANA zones instead so daylight saving is resolved against the supplied
// date, not against whenever the bot happens to be running.
var fixedZones = map[string]int{
	"UT":  0,
	"GMT": 0,
	"UTC": 0,
	"EST": -5 * 3600,
	"EDT": -4 * 3600,
	"CST": -6 * 3600,
	"CDT": -5 * 3600,
	"MST": -7 * 3600,
	"MDT": -6 * 3600,
	"PST": -8 * 3600,
	"PDT": -7 * 3600,
}

var regionZones = map[string]string{
	"ET": "America/New_York",
	"CT": "America/Chicago",
	"MT": "America/Denver",
	"PT": "America/Los_Angeles",
}

// Parse resolves raw to a zone-aware instant.
func Parse(raw string) (time.Time, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return time.Time{}, &ParseError{Input: raw, Reason: "empty date"}
	}

	fields := strings.Fields(s)
	last := strings.ToUpper(fields[len(fields)-1])

	if loc, ok := lookupZone(last); ok {
		rest := strings.Join(fields[:len(fields)-1], " ")
		for _, layout := range layouts {
			if t, err := time.ParseInLocation(layout, rest, loc); err == nil {
				return t, nil
			}
		}
		return time.Time{}, &ParseError{Input: raw, Reason: "unrecognized date format"}
	}

	for _, layout := range layouts {
		if t, err := time.Parse(layout+" -0700", s); err == nil {
			return t, nil
		}
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}

	// The date itself may be fine with no zone attached; distinguish that
	// from garbage so the user gets told what to add rather than what to fix.
	for _, layout := range layouts {
		if _, err := time.Parse(layout, s); err == nil {
			return time.Time{}, &ParseError{
				Input:       raw,
				Reason:      "no timezone given; add one like EST, PT, or -0500",
				MissingZone: true,
			}
		}
	}
	return time.Time{}, &ParseError{Input: raw, Reason: "unrecognized date format"}
}

func lookupZone(abbr string) (*time.Location, bool) {
	if name, ok := regionZones[abbr]; ok {
		if loc, err := time.LoadLocation(name); err == nil {
			return loc, true
		}
	}
	if offset, ok := fixedZones[abbr]; ok {
		return time.FixedZone(abbr, offset), true
	}
	return nil, false
}
