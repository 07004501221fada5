package calendar

import (
	"errors"
	"time"
)

// ErrInvalidTimeWindow is returned when an event would end at or before its
// start.
var ErrInvalidTimeWindow = errors.New("end time must be after start time")

// ValidateEventWindow rejects events whose end is not strictly after their
// start. Equal start and end is invalid.
func ValidateEventWindow(start, end time.Time) error {
	if !end.After(start) {
		return ErrInvalidTimeWindow
	}
	return nil
}

// DedupeUserIDs drops repeated ids while preserving first-seen order.
// Attendee sets are replaced wholesale on every update, so duplicates
// submitted in one request must collapse before the insert.
func DedupeUserIDs(ids []uint) []uint {
	seen := make(map[uint]struct{}, len(ids))
	out := make([]uint, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
