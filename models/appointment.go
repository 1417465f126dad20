package models

import "time"

// Appointment statuses. Transitions are monotonic:
// pending -> confirmed -> completed, or pending/confirmed -> cancelled.
const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
)

// Customer holds the contact fields collected by the front end.
type Customer struct {
	FirstName string `bson:"firstName" json:"firstName"`
	LastName  string `bson:"lastName" json:"lastName"`
	Email     string `bson:"email" json:"email"`
	Phone     string `bson:"phone" json:"phone"`
}

// Appointment represents a confirmed moving-service booking record.
type Appointment struct {
	ID               string            `bson:"id" json:"bookingId"` // Unique booking identifier (UUID), immutable
	Customer         Customer          `bson:"customer" json:"customer"`
	Date             string            `bson:"date" json:"date"` // "YYYY-MM-DD"
	Time             string            `bson:"time" json:"time"` // "HH:MM", 24h, slot-aligned
	ServiceType      string            `bson:"serviceType" json:"serviceType"`
	PickupAddress    string            `bson:"pickupAddress" json:"pickupAddress"`
	DropoffAddress   string            `bson:"dropoffAddress" json:"dropoffAddress"`
	Notes            string            `bson:"notes,omitempty" json:"notes,omitempty"`
	EstimateDetails  map[string]any    `bson:"estimateDetails,omitempty" json:"estimateDetails,omitempty"` // opaque, passed through from the estimate flow
	Status           string            `bson:"status" json:"status"`
	ExternalEventIDs map[string]string `bson:"externalEventIds,omitempty" json:"externalEventIds"` // provider name -> provider event id; entry absent until sync succeeds
	CreatedAt        time.Time         `bson:"createdAt" json:"createdAt"`
	UpdatedAt        time.Time         `bson:"updatedAt" json:"updatedAt"`
}

// Terminal reports whether the appointment is in a terminal status.
func (a *Appointment) Terminal() bool {
	return a.Status == StatusCompleted || a.Status == StatusCancelled
}

// CanTransition reports whether a status change is permitted. There is no un-cancel.
func CanTransition(from, to string) bool {
	switch from {
	case StatusPending:
		return to == StatusConfirmed || to == StatusCancelled
	case StatusConfirmed:
		return to == StatusCompleted || to == StatusCancelled
	default:
		return false
	}
}

// AppointmentPatch is a partial mutation applied by the store. Nil fields are
// left untouched; the store refreshes UpdatedAt on every write.
type AppointmentPatch struct {
	Status           *string           `bson:"status,omitempty" json:"status,omitempty"`
	ExternalEventIDs map[string]string `bson:"externalEventIds,omitempty" json:"externalEventIds,omitempty"` // merged into the existing mapping
}
