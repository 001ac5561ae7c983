package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestValidReminderTime(t *testing.T) {
	assert.True(t, ValidReminderTime(""))
	assert.True(t, ValidReminderTime("07:30"))
	assert.True(t, ValidReminderTime("23:59"))
	assert.True(t, ValidReminderTime("00:00"))

	assert.False(t, ValidReminderTime("24:00"))
	assert.False(t, ValidReminderTime("7:30"))
	assert.False(t, ValidReminderTime("07:60"))
	assert.False(t, ValidReminderTime("noon"))
}

func TestReminderDue(t *testing.T) {
	// 12:00 UTC is 08:00 in New York during DST
	now := time.Date(2026, time.July, 15, 12, 0, 0, 0, time.UTC)

	assert.True(t, ReminderDue("08:00", "America/New_York", now))
	assert.False(t, ReminderDue("09:00", "America/New_York", now))

	// a minute of slack covers scheduler drift
	assert.True(t, ReminderDue("07:59", "America/New_York", now))
	assert.False(t, ReminderDue("07:58", "America/New_York", now))

	// empty time never fires
	assert.False(t, ReminderDue("", "America/New_York", now))

	// bad timezone falls back to UTC
	assert.True(t, ReminderDue("12:00", "Not/AZone", now))
}
