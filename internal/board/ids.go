package board

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// dateLayout is the calendar-date wire format (ISO 8601, date only).
const dateLayout = "2006-01-02"

// Date is a calendar date in YYYY-MM-DD form with no time component.
// The zero value means "no date".
type Date string

// ParseDate validates raw as a YYYY-MM-DD calendar date.
func ParseDate(raw string) (Date, error) {
	if _, err := time.Parse(dateLayout, raw); err != nil {
		return "", fmt.Errorf("%w: invalid date %q", ErrValidation, raw)
	}
	return Date(raw), nil
}

// DateOf returns the calendar date of t in t's own location.
func DateOf(t time.Time) Date {
	return Date(t.Format(dateLayout))
}

// Today returns the local calendar date, not the UTC one.
func Today() Date {
	return DateOf(time.Now().Local())
}

// IsZero reports whether d is unset.
func (d Date) IsZero() bool {
	return d == ""
}

// NewID returns "<prefix>_<suffix>" where suffix is a random UUIDv4 in compact
// hex form.
func NewID(prefix string) string {
	return prefix + "_" + strings.ReplaceAll(uuid.NewString(), "-", "")
}
