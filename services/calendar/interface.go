package calendar

import (
	"context"

	"movebook/models"
)

// Provider is the capability set every external calendar must offer. Providers
// are configured independently and treated as peers; the syncer fans out to
// all of them and never reads calendar data back beyond the event identifier
// returned on create.
type Provider interface {
	// Name identifies the provider in Appointment.ExternalEventIDs.
	Name() string

	// CreateEvent pushes the appointment and returns the provider-assigned event id.
	CreateEvent(ctx context.Context, appt *models.Appointment) (string, error)

	// UpdateEvent rewrites an existing event.
	UpdateEvent(ctx context.Context, eventID string, appt *models.Appointment) error

	// DeleteEvent removes an existing event.
	DeleteEvent(ctx context.Context, eventID string) error
}
