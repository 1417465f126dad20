package calendar

import (
	"fmt"
	"time"

	"movebook/models"

	ics "github.com/arran4/golang-ical"
)

// EventWindow resolves the appointment's start and end instants from its
// date and time-of-day slot.
func EventWindow(appt *models.Appointment, loc *time.Location, slotMinutes int) (time.Time, time.Time, error) {
	start, err := time.ParseInLocation("2006-01-02 15:04", appt.Date+" "+appt.Time, loc)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid appointment date/time %q %q: %w", appt.Date, appt.Time, err)
	}
	return start, start.Add(time.Duration(slotMinutes) * time.Minute), nil
}

// BuildInvite renders the appointment as an iCalendar object. The same body is
// attached to confirmation mail (METHOD:REQUEST) and uploaded to CalDAV
// collections; cancellations carry METHOD:CANCEL with a bumped sequence so
// clients replace the original event.
func BuildInvite(appt *models.Appointment, organizer string, start, end time.Time, cancelled bool) string {
	cal := ics.NewCalendar()
	cal.SetProductId("-//movebook//booking//EN")
	if cancelled {
		cal.SetMethod(ics.MethodCancel)
	} else {
		cal.SetMethod(ics.MethodRequest)
	}

	event := cal.AddEvent(appt.ID + "@movebook")
	event.SetDtStampTime(time.Now().UTC())
	event.SetStartAt(start)
	event.SetEndAt(end)
	event.SetSummary(fmt.Sprintf("Moving service: %s", appt.ServiceType))
	event.SetLocation(appt.PickupAddress)
	event.SetDescription(inviteDescription(appt))
	event.SetOrganizer("mailto:"+organizer, ics.WithCN("Movebook Bookings"))
	event.AddAttendee(appt.Customer.Email,
		ics.CalendarUserTypeIndividual,
		ics.ParticipationStatusNeedsAction,
		ics.WithCN(appt.Customer.FirstName+" "+appt.Customer.LastName),
	)
	if cancelled {
		event.SetStatus(ics.ObjectStatusCancelled)
		event.SetSequence(1)
	} else {
		event.SetStatus(ics.ObjectStatusConfirmed)
	}

	return cal.Serialize()
}

func inviteDescription(appt *models.Appointment) string {
	desc := fmt.Sprintf("Pickup: %s\nDropoff: %s", appt.PickupAddress, appt.DropoffAddress)
	if appt.Notes != "" {
		desc += "\nNotes: " + appt.Notes
	}
	return desc
}
