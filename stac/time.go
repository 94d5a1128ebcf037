package stac

import (
	"fmt"
	"time"
)

// Catalog documents in the wild do not agree on a single datetime layout, so
// parsing tries each accepted layout in turn.

// StandardTimeLayout is the layout used when writing datetimes
const StandardTimeLayout = "2006-01-02T15:04:05.999999999Z" // time.RFC3339Nano, always in UTC

var datetimeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999Z",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05Z",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02",
}

// ParseDatetime is a drop-in replacement for time.Parse, matching against every accepted layout
func ParseDatetime(value string) (time.Time, error) {
	for _, layout := range datetimeLayouts {
		if output, err := time.Parse(layout, value); err == nil {
			return output, nil
		}
	}
	return time.Time{}, fmt.Errorf("Date could not be parsed by any expected time format: `%s`", value)
}

// FormatDatetime formats a datetime with StandardTimeLayout; the zero time formats as nil
func FormatDatetime(t time.Time) interface{} {
	if t.IsZero() {
		return nil
	}
	return t.UTC().Format(StandardTimeLayout)
}
