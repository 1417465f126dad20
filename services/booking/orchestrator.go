package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	appointmentRepo "movebook/database/repository/appointment"
	"movebook/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// BookAppointment runs the booking saga: validate the slot, persist the
// appointment, then fan out to calendars and mail the customer. Once the
// append commits the booking is confirmed; sync and notification failures
// degrade gracefully and never roll it back.
func (s *DefaultBookingService) BookAppointment(ctx context.Context, req models.BookingRequest) (*models.Appointment, error) {
	if err := s.validateRequest(req); err != nil {
		return nil, err
	}

	// Availability is checked against the freshest store state; the append
	// below re-checks inside the store's exclusive transaction, so two
	// near-simultaneous requests for the last opening cannot both pass here
	// and both succeed.
	free, err := s.AvailableSlots(ctx, req.Date)
	if err != nil {
		return nil, err
	}
	if !contains(free, req.Time) {
		return nil, &SlotUnavailableError{Date: req.Date, Time: req.Time}
	}

	appt := &models.Appointment{
		ID: uuid.New().String(),
		Customer: models.Customer{
			FirstName: req.FirstName,
			LastName:  req.LastName,
			Email:     req.Email,
			Phone:     req.Phone,
		},
		Date:            req.Date,
		Time:            req.Time,
		ServiceType:     req.ServiceType,
		PickupAddress:   req.PickupAddress,
		DropoffAddress:  req.DropoffAddress,
		Notes:           req.Notes,
		EstimateDetails: req.EstimateDetails,
		Status:          models.StatusConfirmed,
	}

	capacity := s.CapacityFor(req.Date, req.Time)
	err = s.Repo.AppendWithinCapacity(ctx, appt, capacity)
	if errors.Is(err, appointmentRepo.ErrDuplicateBooking) {
		// Identifier collision is astronomically rare; regenerate and retry once.
		appt.ID = uuid.New().String()
		err = s.Repo.AppendWithinCapacity(ctx, appt, capacity)
	}
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrSlotFull) {
			return nil, &SlotUnavailableError{Date: req.Date, Time: req.Time}
		}
		return nil, fmt.Errorf("failed to persist appointment: %w", err)
	}

	s.Logger.Info("appointment confirmed",
		zap.String("bookingId", appt.ID),
		zap.String("date", appt.Date),
		zap.String("time", appt.Time))

	s.syncAndNotify(ctx, appt)
	return appt, nil
}

// syncAndNotify runs the post-commit side effects of a confirmed booking.
func (s *DefaultBookingService) syncAndNotify(ctx context.Context, appt *models.Appointment) {
	eventIDs := s.Syncer.CreateAll(ctx, appt)
	if len(eventIDs) > 0 {
		updated, err := s.Repo.Update(ctx, appt.ID, models.AppointmentPatch{ExternalEventIDs: eventIDs})
		if err != nil {
			s.Logger.Error("failed to record external event ids",
				zap.String("bookingId", appt.ID), zap.Error(err))
		} else {
			*appt = *updated
		}
	}

	if err := s.NotificationSvc.SendConfirmation(ctx, appt); err != nil {
		s.Logger.Warn("confirmation mail failed",
			zap.String("bookingId", appt.ID), zap.Error(err))
	}
}

// CancelAppointment follows the symmetric shorter path: delete provider
// events (non-fatal), flip the status, mail the customer (non-fatal).
// Cancelling an already-cancelled booking is a no-op returning the record.
func (s *DefaultBookingService) CancelAppointment(ctx context.Context, bookingID string) (*models.Appointment, error) {
	appt, err := s.Repo.FindByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	if appt.Status == models.StatusCancelled {
		return appt, nil
	}
	if !models.CanTransition(appt.Status, models.StatusCancelled) {
		return nil, &StateConflictError{BookingID: bookingID, Status: appt.Status}
	}

	s.Syncer.DeleteAll(ctx, appt)

	status := models.StatusCancelled
	updated, err := s.Repo.Update(ctx, bookingID, models.AppointmentPatch{Status: &status})
	if err != nil {
		return nil, fmt.Errorf("failed to cancel appointment: %w", err)
	}

	s.Logger.Info("appointment cancelled", zap.String("bookingId", bookingID))

	if err := s.NotificationSvc.SendCancellation(ctx, updated); err != nil {
		s.Logger.Warn("cancellation mail failed",
			zap.String("bookingId", bookingID), zap.Error(err))
	}
	return updated, nil
}

func (s *DefaultBookingService) GetAppointment(ctx context.Context, bookingID string) (*models.Appointment, error) {
	return s.Repo.FindByID(ctx, bookingID)
}

// AvailableSlots returns the ordered free slots for a date, re-derived from
// the store on every call.
func (s *DefaultBookingService) AvailableSlots(ctx context.Context, date string) ([]string, error) {
	booked, err := s.Repo.ListByDate(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings for %s: %w", date, err)
	}
	return AvailableSlots(s.Rules, date, time.Now(), booked, s.CapacityFor)
}

// ResyncCalendars re-attempts CreateEvent for every provider still missing an
// entry in ExternalEventIDs. Triggered manually or by the resync worker.
func (s *DefaultBookingService) ResyncCalendars(ctx context.Context, bookingID string) (*models.Appointment, error) {
	appt, err := s.Repo.FindByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if appt.Status != models.StatusConfirmed {
		return appt, nil
	}

	eventIDs := s.Syncer.CreateMissing(ctx, appt)
	if len(eventIDs) == 0 {
		return appt, nil
	}
	updated, err := s.Repo.Update(ctx, bookingID, models.AppointmentPatch{ExternalEventIDs: eventIDs})
	if err != nil {
		return nil, fmt.Errorf("failed to record external event ids: %w", err)
	}
	return updated, nil
}

func (s *DefaultBookingService) validateRequest(req models.BookingRequest) error {
	if _, err := time.ParseInLocation("2006-01-02", req.Date, s.Rules.Location); err != nil {
		return &ValidationError{Field: "date", Message: "must be YYYY-MM-DD"}
	}
	if _, err := time.Parse("15:04", req.Time); err != nil {
		return &ValidationError{Field: "time", Message: "must be HH:MM (24h)"}
	}
	grid, err := s.Rules.Grid()
	if err != nil {
		return err
	}
	if !contains(grid, req.Time) {
		return &ValidationError{Field: "time", Message: fmt.Sprintf("must fall on a %d-minute slot within business hours", s.Rules.SlotMinutes)}
	}
	if req.Email == "" {
		return &ValidationError{Field: "email", Message: "is required"}
	}
	return nil
}

func contains(slots []string, want string) bool {
	for _, s := range slots {
		if s == want {
			return true
		}
	}
	return false
}
