// Package localtime provides the wire timestamp type used by the HTTP
// surface: ISO-8601 local date-time with no timezone offset. Values are
// read and written verbatim so a round trip preserves the input exactly.
package localtime

import (
	"fmt"
	"strings"
	"time"
)

// Layout trims trailing fractional zeros on output, so "12:30:00" stays
// "12:30:00" and "12:30:00.123" stays "12:30:00.123".
const layout = "2006-01-02T15:04:05.999999999"

var parseLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
}

// LocalDateTime is a timestamp without timezone information.
type LocalDateTime struct {
	time.Time
}

// Of wraps a time.Time as a LocalDateTime.
func Of(t time.Time) LocalDateTime {
	return LocalDateTime{Time: t}
}

// Now returns the current wall-clock time as a LocalDateTime.
func Now() LocalDateTime {
	return LocalDateTime{Time: time.Now()}
}

// Parse reads an offset-less ISO-8601 date-time string.
func Parse(s string) (LocalDateTime, error) {
	for _, l := range parseLayouts {
		if t, err := time.ParseInLocation(l, s, time.Local); err == nil {
			return LocalDateTime{Time: t}, nil
		}
	}
	return LocalDateTime{}, fmt.Errorf("invalid local date-time: %q", s)
}

// String formats the value in the wire layout.
func (t LocalDateTime) String() string {
	return t.Format(layout)
}

// MarshalJSON writes the value as a quoted offset-less date-time, or
// null for the zero value.
func (t LocalDateTime) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return []byte(`"` + t.Format(layout) + `"`), nil
}

// UnmarshalJSON reads a quoted offset-less date-time or null.
func (t *LocalDateTime) UnmarshalJSON(data []byte) error {
	s := string(data)
	if s == "null" {
		t.Time = time.Time{}
		return nil
	}
	s = strings.Trim(s, `"`)
	parsed, err := Parse(s)
	if err != nil {
		return err
	}
	t.Time = parsed.Time
	return nil
}
