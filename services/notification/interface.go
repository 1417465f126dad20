package notification

import (
	"context"
	"fmt"
	"io"
	"time"

	"movebook/models"
	"movebook/services/calendar"

	"gopkg.in/gomail.v2"
)

// NotificationService defines methods for sending booking mail to customers.
// Delivery failures are reported to the caller but never roll back a booking:
// the authoritative state lives in the store, not in the customer's inbox.
type NotificationService interface {
	SendConfirmation(ctx context.Context, appt *models.Appointment) error
	SendCancellation(ctx context.Context, appt *models.Appointment) error
}

// MailSender abstracts gomail's dialer so tests can capture outgoing messages.
type MailSender interface {
	DialAndSend(m ...*gomail.Message) error
}

// DefaultNotificationService is the production SMTP implementation.
type DefaultNotificationService struct {
	Sender      MailSender
	From        string
	Location    *time.Location
	SlotMinutes int
}

func NewDefaultNotificationService(host string, port int, user, pass, from string, loc *time.Location, slotMinutes int) *DefaultNotificationService {
	return &DefaultNotificationService{
		Sender:      gomail.NewDialer(host, port, user, pass),
		From:        from,
		Location:    loc,
		SlotMinutes: slotMinutes,
	}
}

func (s *DefaultNotificationService) SendConfirmation(ctx context.Context, appt *models.Appointment) error {
	subject := fmt.Sprintf("Your move on %s at %s is confirmed", appt.Date, appt.Time)
	body := fmt.Sprintf(
		"Hi %s,\r\n\r\nYour %s appointment is confirmed.\r\n\r\nDate: %s\r\nTime: %s\r\nPickup: %s\r\nDropoff: %s\r\n\r\nBooking reference: %s\r\n\r\nA calendar invite is attached.\r\n",
		appt.Customer.FirstName, appt.ServiceType,
		appt.Date, appt.Time, appt.PickupAddress, appt.DropoffAddress, appt.ID,
	)
	return s.send(ctx, appt, subject, body, false)
}

func (s *DefaultNotificationService) SendCancellation(ctx context.Context, appt *models.Appointment) error {
	subject := fmt.Sprintf("Your move on %s at %s has been cancelled", appt.Date, appt.Time)
	body := fmt.Sprintf(
		"Hi %s,\r\n\r\nYour %s appointment for %s at %s has been cancelled.\r\n\r\nBooking reference: %s\r\n\r\nIf this was a mistake, please book again or contact us.\r\n",
		appt.Customer.FirstName, appt.ServiceType, appt.Date, appt.Time, appt.ID,
	)
	return s.send(ctx, appt, subject, body, true)
}

func (s *DefaultNotificationService) send(ctx context.Context, appt *models.Appointment, subject, body string, cancelled bool) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	msg, err := s.buildMessage(appt, subject, body, cancelled)
	if err != nil {
		return err
	}
	if err := s.Sender.DialAndSend(msg); err != nil {
		return fmt.Errorf("mail delivery failed for booking %s: %w", appt.ID, err)
	}
	return nil
}

func (s *DefaultNotificationService) buildMessage(appt *models.Appointment, subject, body string, cancelled bool) (*gomail.Message, error) {
	start, end, err := calendar.EventWindow(appt, s.Location, s.SlotMinutes)
	if err != nil {
		return nil, err
	}
	invite := calendar.BuildInvite(appt, s.From, start, end, cancelled)

	method := "REQUEST"
	if cancelled {
		method = "CANCEL"
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.From)
	m.SetHeader("To", appt.Customer.Email)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)
	m.Attach("invite.ics",
		gomail.SetCopyFunc(func(w io.Writer) error {
			_, err := w.Write([]byte(invite))
			return err
		}),
		gomail.SetHeader(map[string][]string{
			"Content-Type": {fmt.Sprintf("text/calendar; charset=UTF-8; method=%s", method)},
		}),
	)
	return m, nil
}
