package calendar

import (
	"context"
	"sync"
	"time"

	"movebook/models"

	"go.uber.org/zap"
)

// Syncer fans an appointment out to every configured provider. Sync is a
// convenience, not a booking precondition: a provider failure or timeout is
// logged for operator follow-up and shows up only as an absent entry in the
// appointment's ExternalEventIDs.
type Syncer struct {
	Providers []Provider
	Logger    *zap.Logger
	Timeout   time.Duration
}

func NewSyncer(providers []Provider, logger *zap.Logger) *Syncer {
	return &Syncer{
		Providers: providers,
		Logger:    logger,
		Timeout:   15 * time.Second,
	}
}

// CreateAll pushes the appointment to every provider concurrently and returns
// the event ids of the providers that acknowledged.
func (s *Syncer) CreateAll(ctx context.Context, appt *models.Appointment) map[string]string {
	return s.createFor(ctx, appt, func(Provider) bool { return true })
}

// CreateMissing pushes only to providers with no entry in ExternalEventIDs.
// Used by the resync pass for appointments that were confirmed while a
// provider was down.
func (s *Syncer) CreateMissing(ctx context.Context, appt *models.Appointment) map[string]string {
	return s.createFor(ctx, appt, func(p Provider) bool {
		_, synced := appt.ExternalEventIDs[p.Name()]
		return !synced
	})
}

func (s *Syncer) createFor(ctx context.Context, appt *models.Appointment, include func(Provider) bool) map[string]string {
	eventIDs := make(map[string]string)
	var mu sync.Mutex
	var wg sync.WaitGroup

	for _, p := range s.Providers {
		if !include(p) {
			continue
		}
		wg.Add(1)
		go func(p Provider) {
			defer wg.Done()
			callCtx, cancel := context.WithTimeout(ctx, s.Timeout)
			defer cancel()

			eventID, err := p.CreateEvent(callCtx, appt)
			if err != nil {
				s.Logger.Warn("calendar sync failed",
					zap.String("provider", p.Name()),
					zap.String("bookingId", appt.ID),
					zap.Error(err))
				return
			}
			mu.Lock()
			eventIDs[p.Name()] = eventID
			mu.Unlock()
		}(p)
	}
	wg.Wait()
	return eventIDs
}

// DeleteAll removes the appointment's events from every provider that holds
// one. Failures are logged and ignored; the cancellation proceeds regardless.
func (s *Syncer) DeleteAll(ctx context.Context, appt *models.Appointment) {
	var wg sync.WaitGroup
	for _, p := range s.Providers {
		eventID, ok := appt.ExternalEventIDs[p.Name()]
		if !ok {
			continue
		}
		wg.Add(1)
		go func(p Provider, eventID string) {
			defer wg.Done()
			callCtx, cancel := context.WithTimeout(ctx, s.Timeout)
			defer cancel()

			if err := p.DeleteEvent(callCtx, eventID); err != nil {
				s.Logger.Warn("calendar event delete failed",
					zap.String("provider", p.Name()),
					zap.String("bookingId", appt.ID),
					zap.String("eventId", eventID),
					zap.Error(err))
			}
		}(p, eventID)
	}
	wg.Wait()
}
