package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestValidateEventWindow(t *testing.T) {
	start := time.Date(2026, time.February, 14, 9, 0, 0, 0, time.UTC)

	assert.NoError(t, ValidateEventWindow(start, start.Add(time.Hour)))
	// Sub-second differences are enough.
	assert.NoError(t, ValidateEventWindow(start, start.Add(time.Nanosecond)))

	assert.ErrorIs(t, ValidateEventWindow(start, start), ErrInvalidTimeWindow)
	assert.ErrorIs(t, ValidateEventWindow(start, start.Add(-time.Hour)), ErrInvalidTimeWindow)
}

func TestDedupeUserIDs(t *testing.T) {
	assert.Equal(t, []uint{3, 1, 2}, DedupeUserIDs([]uint{3, 1, 3, 2, 1}))
	assert.Equal(t, []uint{7}, DedupeUserIDs([]uint{7, 7, 7}))
	assert.Empty(t, DedupeUserIDs(nil))
}
