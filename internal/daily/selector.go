// Package daily maps calendar days to answer identifiers.
//
// A day is encoded as the base-10 number MMDDYYYY (October 17, 2026 is
// 10172026). Every writer of the answer table and every reader must use the
// same encoding, so it lives here and nowhere else.
package daily

import (
	"fmt"
	"strings"
	"time"
)

// Modulus bounds identifiers to [0, Modulus).
const Modulus = 2308

// Identifier keys one secret word in the answer store.
type Identifier int

// Encode returns the MMDDYYYY number for the calendar day of t.
func Encode(t time.Time) int {
	y, m, d := t.Date()
	return int(m)*1_000_000 + d*10_000 + y
}

// IdentifierFor hashes an encoded day: round(encoded*3/13*23) mod Modulus.
//
// The product is computed in integers as round(encoded*69/13). A multiple of
// 1/13 is never exactly one half, so adding 6 before dividing rounds to
// nearest.
func IdentifierFor(encoded int) Identifier {
	return Identifier(((encoded*69 + 6) / 13) % Modulus)
}

// Selector resolves dates to identifiers against a clock and time zone.
// The zero value uses time.Now in the local zone.
type Selector struct {
	Now      func() time.Time
	Location *time.Location
}

// NewSelector returns a Selector for the given zone. A nil zone means local time.
func NewSelector(loc *time.Location) Selector {
	return Selector{Now: time.Now, Location: loc}
}

// Today returns the current calendar day, truncated to midnight.
func (s Selector) Today() time.Time {
	now := time.Now
	if s.Now != nil {
		now = s.Now
	}
	return s.day(now())
}

// Day returns date truncated to midnight, or today when date is nil.
func (s Selector) Day(date *time.Time) time.Time {
	if date == nil {
		return s.Today()
	}
	return s.day(*date)
}

// Identifier returns the answer identifier for date, or for today when date
// is nil. It never fails.
func (s Selector) Identifier(date *time.Time) Identifier {
	return IdentifierFor(Encode(s.Day(date)))
}

func (s Selector) day(t time.Time) time.Time {
	loc := s.Location
	if loc == nil {
		loc = time.Local
	}
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}

// ParseDate reads a day in ISO form (2026-10-17) or in the numeric MMDDYYYY
// form (10172026). The numeric month may drop its leading zero, as Encode
// does: 1012023 is 1 January 2023. The result is midnight in loc, or local
// time when loc is nil.
func ParseDate(value string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	value = strings.TrimSpace(value)
	if t, err := time.ParseInLocation(time.DateOnly, value, loc); err == nil {
		return t, nil
	}
	if (len(value) == 7 || len(value) == 8) && isDigits(value) {
		if len(value) == 7 {
			value = "0" + value
		}
		if t, err := time.ParseInLocation("01022006", value, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q: want YYYY-MM-DD or MMDDYYYY", value)
}

func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
