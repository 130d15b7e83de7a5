package models

import (
	"time"

	"github.com/verlow/clientele/internal/apperr"
)

// DateTimeConstraints is surfaced when a date string fails to parse.
const DateTimeConstraints = "dates should be of the form yyyy-MM-dd or yyyy-MM-dd HH:mm"

// DateTime layouts accepted on input. The first is the canonical output
// layout, so String round-trips through NewDateTime.
var dateTimeLayouts = []string{
	"2006-01-02 15:04",
	"2006-01-02",
}

// DateTime is a minute-precision timestamp attached to reminders,
// meetings, and sales.
type DateTime struct {
	t time.Time
}

// NewDateTime parses and validates a date string.
func NewDateTime(s string) (DateTime, error) {
	for _, layout := range dateTimeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return DateTime{t: t}, nil
		}
	}
	return DateTime{}, apperr.Validation("date", DateTimeConstraints)
}

// DateTimeOf wraps an existing time truncated to minute precision.
func DateTimeOf(t time.Time) DateTime {
	return DateTime{t: t.Truncate(time.Minute)}
}

// Time returns the underlying timestamp.
func (d DateTime) Time() time.Time { return d.t }

// Equal reports whether two DateTimes denote the same instant.
func (d DateTime) Equal(o DateTime) bool { return d.t.Equal(o.t) }

// Before reports whether d precedes o.
func (d DateTime) Before(o DateTime) bool { return d.t.Before(o.t) }

func (d DateTime) String() string { return d.t.Format(dateTimeLayouts[0]) }
