// File: database/repository/appointment/interface.go
package appointmentRepo

import (
	"context"
	"errors"

	"movebook/models"
)

var (
	// ErrNotFound is returned when no appointment exists for the given booking id.
	ErrNotFound = errors.New("appointment not found")
	// ErrDuplicateBooking is returned when an append collides with an existing booking id.
	ErrDuplicateBooking = errors.New("booking id already exists")
	// ErrSlotFull is returned by AppendWithinCapacity when the slot has no remaining capacity.
	ErrSlotFull = errors.New("slot capacity reached")
)

// AppointmentRepository is the sole writer of persisted appointment state.
// Every mutating operation is an atomic, exclusive read-modify-write over the
// underlying durable collection: two concurrent bookings never interleave
// between the capacity count and the append.
type AppointmentRepository interface {
	// Append adds a new record, failing with ErrDuplicateBooking on id collision.
	Append(ctx context.Context, appt *models.Appointment) error

	// AppendWithinCapacity appends only if the number of non-cancelled
	// appointments already occupying appt's date+time slot is below capacity.
	// The count and the append happen inside one exclusive transaction, so a
	// pair of near-simultaneous requests for the last opening cannot both
	// succeed. Fails with ErrSlotFull or ErrDuplicateBooking.
	AppendWithinCapacity(ctx context.Context, appt *models.Appointment, capacity int) error

	// FindByID returns the record or ErrNotFound.
	FindByID(ctx context.Context, bookingID string) (*models.Appointment, error)

	// ListByDate returns all non-cancelled records for a date, ordered by
	// time then createdAt (stable tie-break).
	ListByDate(ctx context.Context, date string) ([]models.Appointment, error)

	// Update applies a partial mutation and refreshes UpdatedAt, or ErrNotFound.
	Update(ctx context.Context, bookingID string, patch models.AppointmentPatch) (*models.Appointment, error)
}
