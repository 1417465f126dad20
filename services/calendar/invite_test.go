package calendar

import (
	"testing"
	"time"

	"movebook/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func inviteAppointment() *models.Appointment {
	return &models.Appointment{
		ID: "b-42",
		Customer: models.Customer{
			FirstName: "Ada",
			LastName:  "Okafor",
			Email:     "ada@example.com",
		},
		Date:           "2025-10-24",
		Time:           "10:00",
		ServiceType:    "2-bedroom move",
		PickupAddress:  "12 Elm St",
		DropoffAddress: "48 Oak Ave",
		Notes:          "piano on 3rd floor",
		Status:         models.StatusConfirmed,
	}
}

func TestEventWindow(t *testing.T) {
	start, end, err := EventWindow(inviteAppointment(), time.UTC, 30)
	require.NoError(t, err)

	assert.Equal(t, time.Date(2025, 10, 24, 10, 0, 0, 0, time.UTC), start)
	assert.Equal(t, 30*time.Minute, end.Sub(start))
}

func TestEventWindow_BadTime(t *testing.T) {
	appt := inviteAppointment()
	appt.Time = "10am"
	_, _, err := EventWindow(appt, time.UTC, 30)
	assert.Error(t, err)
}

func TestBuildInvite_Request(t *testing.T) {
	appt := inviteAppointment()
	start, end, err := EventWindow(appt, time.UTC, 30)
	require.NoError(t, err)

	out := BuildInvite(appt, "bookings@movebook.example", start, end, false)

	assert.Contains(t, out, "BEGIN:VCALENDAR")
	assert.Contains(t, out, "METHOD:REQUEST")
	assert.Contains(t, out, "BEGIN:VEVENT")
	assert.Contains(t, out, "UID:b-42@movebook")
	assert.Contains(t, out, "SUMMARY:Moving service: 2-bedroom move")
	assert.Contains(t, out, "mailto:bookings@movebook.example")
	assert.Contains(t, out, "ada@example.com")
	assert.Contains(t, out, "STATUS:CONFIRMED")
	assert.NotContains(t, out, "METHOD:CANCEL")
}

func TestBuildInvite_Cancel(t *testing.T) {
	appt := inviteAppointment()
	start, end, err := EventWindow(appt, time.UTC, 30)
	require.NoError(t, err)

	out := BuildInvite(appt, "bookings@movebook.example", start, end, true)

	assert.Contains(t, out, "METHOD:CANCEL")
	assert.Contains(t, out, "STATUS:CANCELLED")
	assert.Contains(t, out, "SEQUENCE:1")
}
