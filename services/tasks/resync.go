package tasks

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

const TypeCalendarResync = "calendar:resync"

// CalendarResyncPayload identifies the booking whose calendar events should be
// re-attempted.
type CalendarResyncPayload struct {
	BookingID string `json:"bookingId"`
}

func NewCalendarResyncTask(bookingID string) (*asynq.Task, error) {
	b, err := json.Marshal(CalendarResyncPayload{BookingID: bookingID})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeCalendarResync, b), nil
}
