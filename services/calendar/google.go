package calendar

import (
	"context"
	"fmt"
	"time"

	"movebook/models"

	gcal "google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"
)

// GoogleProvider syncs appointments to a Google Calendar via the Calendar API.
type GoogleProvider struct {
	svc         *gcal.Service
	calendarID  string
	location    *time.Location
	slotMinutes int
}

// NewGoogleProvider builds a provider from a service-account credentials file.
func NewGoogleProvider(ctx context.Context, credentialsFile, calendarID string, loc *time.Location, slotMinutes int) (*GoogleProvider, error) {
	svc, err := gcal.NewService(ctx,
		option.WithCredentialsFile(credentialsFile),
		option.WithScopes(gcal.CalendarEventsScope),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize google calendar client: %w", err)
	}
	return &GoogleProvider{
		svc:         svc,
		calendarID:  calendarID,
		location:    loc,
		slotMinutes: slotMinutes,
	}, nil
}

func (p *GoogleProvider) Name() string { return "google" }

func (p *GoogleProvider) CreateEvent(ctx context.Context, appt *models.Appointment) (string, error) {
	ev, err := p.event(appt)
	if err != nil {
		return "", err
	}
	created, err := p.svc.Events.Insert(p.calendarID, ev).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("google event insert failed: %w", err)
	}
	return created.Id, nil
}

func (p *GoogleProvider) UpdateEvent(ctx context.Context, eventID string, appt *models.Appointment) error {
	ev, err := p.event(appt)
	if err != nil {
		return err
	}
	if _, err := p.svc.Events.Update(p.calendarID, eventID, ev).Context(ctx).Do(); err != nil {
		return fmt.Errorf("google event update failed: %w", err)
	}
	return nil
}

func (p *GoogleProvider) DeleteEvent(ctx context.Context, eventID string) error {
	if err := p.svc.Events.Delete(p.calendarID, eventID).Context(ctx).Do(); err != nil {
		return fmt.Errorf("google event delete failed: %w", err)
	}
	return nil
}

func (p *GoogleProvider) event(appt *models.Appointment) (*gcal.Event, error) {
	start, end, err := EventWindow(appt, p.location, p.slotMinutes)
	if err != nil {
		return nil, err
	}
	return &gcal.Event{
		Summary:     fmt.Sprintf("Moving service: %s (%s %s)", appt.ServiceType, appt.Customer.FirstName, appt.Customer.LastName),
		Location:    appt.PickupAddress,
		Description: inviteDescription(appt),
		Start: &gcal.EventDateTime{
			DateTime: start.Format(time.RFC3339),
			TimeZone: p.location.String(),
		},
		End: &gcal.EventDateTime{
			DateTime: end.Format(time.RFC3339),
			TimeZone: p.location.String(),
		},
	}, nil
}
