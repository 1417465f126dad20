package booking

import "fmt"

// SlotUnavailableError reports that a requested date/time has no remaining
// crew capacity. The booking aborts and nothing is persisted.
type SlotUnavailableError struct {
	Date string
	Time string
}

func (e *SlotUnavailableError) Error() string {
	return fmt.Sprintf("no capacity left for %s %s", e.Date, e.Time)
}

// ValidationError reports a malformed or out-of-window booking request.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// StateConflictError reports a status transition the appointment lifecycle
// forbids, such as cancelling a completed move.
type StateConflictError struct {
	BookingID string
	Status    string
}

func (e *StateConflictError) Error() string {
	return fmt.Sprintf("booking %s is %s and cannot be cancelled", e.BookingID, e.Status)
}
