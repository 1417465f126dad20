package booking

import (
	"testing"
	"time"

	"movebook/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRules() SlotRules {
	return SlotRules{
		Open:        "08:00",
		Close:       "18:00",
		SlotMinutes: 30,
		HorizonDays: 60,
		Location:    time.UTC,
	}
}

func fixedCapacity(n int) func(date, timeOfDay string) int {
	return func(string, string) int { return n }
}

func TestSlotGrid(t *testing.T) {
	grid, err := testRules().Grid()
	require.NoError(t, err)

	// 08:00 through 17:30 at 30-minute granularity.
	assert.Len(t, grid, 20)
	assert.Equal(t, "08:00", grid[0])
	assert.Equal(t, "17:30", grid[len(grid)-1])
}

func TestAvailableSlots_ExcludesExactlyFullSlots(t *testing.T) {
	now := time.Date(2025, 10, 20, 9, 0, 0, 0, time.UTC)
	booked := []models.Appointment{
		{Date: "2025-10-24", Time: "10:00", Status: models.StatusConfirmed},
		{Date: "2025-10-24", Time: "10:00", Status: models.StatusConfirmed},
		{Date: "2025-10-24", Time: "11:00", Status: models.StatusConfirmed},
		{Date: "2025-10-24", Time: "12:00", Status: models.StatusCancelled}, // cancelled never counts
	}

	free, err := AvailableSlots(testRules(), "2025-10-24", now, booked, fixedCapacity(2))
	require.NoError(t, err)

	assert.NotContains(t, free, "10:00") // at capacity
	assert.Contains(t, free, "11:00")    // one of two taken
	assert.Contains(t, free, "12:00")    // cancelled booking does not occupy
	assert.Contains(t, free, "10:30")
}

func TestAvailableSlots_PastAndHorizonDatesAreEmpty(t *testing.T) {
	now := time.Date(2025, 10, 20, 9, 0, 0, 0, time.UTC)

	past, err := AvailableSlots(testRules(), "2025-10-19", now, nil, fixedCapacity(1))
	require.NoError(t, err)
	assert.Empty(t, past)

	beyond, err := AvailableSlots(testRules(), "2026-03-01", now, nil, fixedCapacity(1))
	require.NoError(t, err)
	assert.Empty(t, beyond)
}

func TestAvailableSlots_TodaySkipsStartedSlots(t *testing.T) {
	now := time.Date(2025, 10, 20, 13, 10, 0, 0, time.UTC)

	free, err := AvailableSlots(testRules(), "2025-10-20", now, nil, fixedCapacity(1))
	require.NoError(t, err)

	assert.NotContains(t, free, "13:00")
	assert.Equal(t, "13:30", free[0])
}

func TestAvailableSlots_CapacityOnePerSlot(t *testing.T) {
	now := time.Date(2025, 10, 20, 9, 0, 0, 0, time.UTC)
	booked := []models.Appointment{
		{Date: "2025-10-24", Time: "10:00", Status: models.StatusConfirmed},
	}

	free, err := AvailableSlots(testRules(), "2025-10-24", now, booked, fixedCapacity(1))
	require.NoError(t, err)

	assert.NotContains(t, free, "10:00")
	assert.Contains(t, free, "10:30")
}

func TestAvailableSlots_BadDate(t *testing.T) {
	now := time.Date(2025, 10, 20, 9, 0, 0, 0, time.UTC)
	_, err := AvailableSlots(testRules(), "24/10/2025", now, nil, fixedCapacity(1))

	var valErr *ValidationError
	assert.ErrorAs(t, err, &valErr)
}
