package validation

import (
	"errors"
	"strconv"
	"time"
)

// ErrWindowBoundMissing reports a ticket whose access window lacks a start
// or end value.
var ErrWindowBoundMissing = errors.New("start or end cannot be null.")

// Window is the access interval extracted from a ticket.
type Window struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether t lies strictly inside the window.
func (w Window) Contains(t time.Time) bool {
	return t.After(w.Start) && t.Before(w.End)
}

// ParseWindow parses the start and end strings of an access window.
func ParseWindow(start, end string) (Window, error) {
	if start == "" || end == "" {
		return Window{}, ErrWindowBoundMissing
	}
	startTime, err := parseWindowTime(start)
	if err != nil {
		return Window{}, err
	}
	endTime, err := parseWindowTime(end)
	if err != nil {
		return Window{}, err
	}
	return Window{Start: startTime, End: endTime}, nil
}

// parseWindowTime reads a "MM/DD/YYYY HH:MM:SS" value by fixed positional
// offsets, the exact layout the ticketing API returns for window fields.
func parseWindowTime(s string) (time.Time, error) {
	if len(s) < 19 {
		return time.Time{}, errors.New("access window value is malformed.")
	}

	fields := []struct {
		from, to int
	}{
		{0, 2},   // month
		{3, 5},   // day
		{6, 10},  // year
		{11, 13}, // hour
		{14, 16}, // minute
		{17, 19}, // second
	}
	values := make([]int, len(fields))
	for i, f := range fields {
		v, err := strconv.Atoi(s[f.from:f.to])
		if err != nil {
			return time.Time{}, errors.New("access window value is malformed.")
		}
		values[i] = v
	}

	return time.Date(values[2], time.Month(values[0]), values[1],
		values[3], values[4], values[5], 0, time.Local), nil
}
