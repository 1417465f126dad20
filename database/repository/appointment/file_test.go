package appointmentRepo

import (
	"context"
	"path/filepath"
	"sync"
	"testing"

	"movebook/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRepo(t *testing.T) AppointmentRepository {
	t.Helper()
	repo, err := NewFileAppointmentRepo(filepath.Join(t.TempDir(), "appointments.json"))
	require.NoError(t, err)
	return repo
}

func sampleAppointment(id, date, timeOfDay string) *models.Appointment {
	return &models.Appointment{
		ID: id,
		Customer: models.Customer{
			FirstName: "Ada",
			LastName:  "Okafor",
			Email:     "ada@example.com",
			Phone:     "+15550100",
		},
		Date:           date,
		Time:           timeOfDay,
		ServiceType:    "2-bedroom move",
		PickupAddress:  "12 Elm St",
		DropoffAddress: "48 Oak Ave",
		Status:         models.StatusConfirmed,
	}
}

func TestAppendAndFind(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	appt := sampleAppointment("b-1", "2025-10-24", "10:00")
	require.NoError(t, repo.Append(ctx, appt))
	assert.False(t, appt.CreatedAt.IsZero())

	got, err := repo.FindByID(ctx, "b-1")
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", got.Customer.Email)
	assert.Equal(t, models.StatusConfirmed, got.Status)

	_, err = repo.FindByID(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAppendDuplicateID(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Append(ctx, sampleAppointment("b-1", "2025-10-24", "10:00")))
	err := repo.Append(ctx, sampleAppointment("b-1", "2025-10-25", "11:00"))
	assert.ErrorIs(t, err, ErrDuplicateBooking)
}

func TestAppendWithinCapacity(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.AppendWithinCapacity(ctx, sampleAppointment("b-1", "2025-10-24", "10:00"), 1))

	err := repo.AppendWithinCapacity(ctx, sampleAppointment("b-2", "2025-10-24", "10:00"), 1)
	assert.ErrorIs(t, err, ErrSlotFull)

	// A different slot on the same date is unaffected.
	require.NoError(t, repo.AppendWithinCapacity(ctx, sampleAppointment("b-3", "2025-10-24", "10:30"), 1))
}

func TestAppendWithinCapacity_CancelledDoesNotOccupy(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.AppendWithinCapacity(ctx, sampleAppointment("b-1", "2025-10-24", "10:00"), 1))
	status := models.StatusCancelled
	_, err := repo.Update(ctx, "b-1", models.AppointmentPatch{Status: &status})
	require.NoError(t, err)

	require.NoError(t, repo.AppendWithinCapacity(ctx, sampleAppointment("b-2", "2025-10-24", "10:00"), 1))
}

func TestConcurrentAppendsRespectCapacity(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	const contenders = 8
	var wg sync.WaitGroup
	errs := make([]error, contenders)

	for i := 0; i < contenders; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			appt := sampleAppointment(string(rune('a'+i)), "2025-10-24", "10:00")
			errs[i] = repo.AppendWithinCapacity(ctx, appt, 1)
		}(i)
	}
	wg.Wait()

	winners := 0
	for _, err := range errs {
		if err == nil {
			winners++
		} else {
			assert.ErrorIs(t, err, ErrSlotFull)
		}
	}
	assert.Equal(t, 1, winners, "exactly one concurrent booking may take the last opening")
}

func TestListByDateOrderingAndFilter(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Append(ctx, sampleAppointment("b-late", "2025-10-24", "14:00")))
	require.NoError(t, repo.Append(ctx, sampleAppointment("b-early", "2025-10-24", "09:00")))
	require.NoError(t, repo.Append(ctx, sampleAppointment("b-other-day", "2025-10-25", "09:00")))
	require.NoError(t, repo.Append(ctx, sampleAppointment("b-cancelled", "2025-10-24", "08:00")))

	status := models.StatusCancelled
	_, err := repo.Update(ctx, "b-cancelled", models.AppointmentPatch{Status: &status})
	require.NoError(t, err)

	out, err := repo.ListByDate(ctx, "2025-10-24")
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, "b-early", out[0].ID)
	assert.Equal(t, "b-late", out[1].ID)
}

func TestUpdatePatchesAndRefreshesTimestamp(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Append(ctx, sampleAppointment("b-1", "2025-10-24", "10:00")))
	before, err := repo.FindByID(ctx, "b-1")
	require.NoError(t, err)

	updated, err := repo.Update(ctx, "b-1", models.AppointmentPatch{
		ExternalEventIDs: map[string]string{"google": "evt-123"},
	})
	require.NoError(t, err)
	assert.Equal(t, "evt-123", updated.ExternalEventIDs["google"])
	assert.Equal(t, models.StatusConfirmed, updated.Status)
	assert.False(t, updated.UpdatedAt.Before(before.UpdatedAt))

	// Entries merge rather than replace.
	updated, err = repo.Update(ctx, "b-1", models.AppointmentPatch{
		ExternalEventIDs: map[string]string{"caldav": "b-1"},
	})
	require.NoError(t, err)
	assert.Equal(t, "evt-123", updated.ExternalEventIDs["google"])
	assert.Equal(t, "b-1", updated.ExternalEventIDs["caldav"])

	_, err = repo.Update(ctx, "missing", models.AppointmentPatch{})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStoreSurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "appointments.json")
	ctx := context.Background()

	repo, err := NewFileAppointmentRepo(path)
	require.NoError(t, err)
	require.NoError(t, repo.Append(ctx, sampleAppointment("b-1", "2025-10-24", "10:00")))

	reopened, err := NewFileAppointmentRepo(path)
	require.NoError(t, err)
	got, err := reopened.FindByID(ctx, "b-1")
	require.NoError(t, err)
	assert.Equal(t, "2025-10-24", got.Date)
}
