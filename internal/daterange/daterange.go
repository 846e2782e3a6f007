package daterange

import (
	"errors"
	"time"
)

const dayLayout = "2006-01-02"

var ErrBadDate = errors.New("dates must be YYYY-MM-DD or RFC3339")

// Range is an inclusive date window. Either bound may be absent, in which
// case the query is unbounded on that side.
type Range struct {
	Start    time.Time
	End      time.Time
	HasStart bool
	HasEnd   bool
}

// Parse reads the optional start/end query values. Inverted bounds are
// swapped rather than rejected.
func Parse(start, end string) (Range, error) {
	var r Range
	var err error

	if start != "" {
		r.Start, err = ParseDate(start)
		if err != nil {
			return Range{}, err
		}
		r.HasStart = true
	}
	if end != "" {
		r.End, err = ParseDate(end)
		if err != nil {
			return Range{}, err
		}
		r.HasEnd = true
	}

	if r.HasStart && r.HasEnd && r.Start.After(r.End) {
		r.Start, r.End = r.End, r.Start
	}
	return r, nil
}

// ExtendToDayEnd pushes the end bound to the last nanosecond of its day so
// records created any time on the end date are included.
func (r Range) ExtendToDayEnd() Range {
	if !r.HasEnd {
		return r
	}
	y, m, d := r.End.Date()
	r.End = time.Date(y, m, d, 23, 59, 59, int(time.Second-time.Nanosecond), r.End.Location())
	return r
}

// Contains reports whether t falls inside the range.
func (r Range) Contains(t time.Time) bool {
	if r.HasStart && t.Before(r.Start) {
		return false
	}
	if r.HasEnd && t.After(r.End) {
		return false
	}
	return true
}

// ParseDate accepts a YYYY-MM-DD day or a full RFC3339 timestamp.
func ParseDate(s string) (time.Time, error) {
	if t, err := time.Parse(dayLayout, s); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Time{}, ErrBadDate
}
