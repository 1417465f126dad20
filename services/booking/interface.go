package booking

import (
	"context"

	appointmentRepo "movebook/database/repository/appointment"
	"movebook/models"
	"movebook/services/calendar"
	"movebook/services/notification"

	"go.uber.org/zap"
)

// BookingService is the only component with business-rule authority over
// appointments: it validates requests, persists them, and coordinates
// calendar sync and customer notification as best-effort side effects.
type BookingService interface {
	BookAppointment(ctx context.Context, req models.BookingRequest) (*models.Appointment, error)
	CancelAppointment(ctx context.Context, bookingID string) (*models.Appointment, error)
	GetAppointment(ctx context.Context, bookingID string) (*models.Appointment, error)
	AvailableSlots(ctx context.Context, date string) ([]string, error)
	ResyncCalendars(ctx context.Context, bookingID string) (*models.Appointment, error)
}

// DefaultBookingService implements BookingService.
type DefaultBookingService struct {
	Repo            appointmentRepo.AppointmentRepository
	Syncer          *calendar.Syncer
	NotificationSvc notification.NotificationService
	Rules           SlotRules
	CapacityFor     func(date, timeOfDay string) int
	Logger          *zap.Logger
}
