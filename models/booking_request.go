package models

// BookingRequest is the payload submitted by the front-end collector.
type BookingRequest struct {
	FirstName       string         `json:"firstName" binding:"required"`
	LastName        string         `json:"lastName" binding:"required"`
	Email           string         `json:"email" binding:"required,email"`
	Phone           string         `json:"phone" binding:"required"`
	Date            string         `json:"date" binding:"required"` // "YYYY-MM-DD"
	Time            string         `json:"time" binding:"required"` // "HH:MM"
	ServiceType     string         `json:"serviceType" binding:"required"`
	PickupAddress   string         `json:"pickupAddress" binding:"required"`
	DropoffAddress  string         `json:"dropoffAddress" binding:"required"`
	Notes           string         `json:"notes"`
	EstimateDetails map[string]any `json:"estimateDetails"`
}

// BookingResponse is returned once an appointment is confirmed.
type BookingResponse struct {
	BookingID string `json:"bookingId"`
	Status    string `json:"status"`
}
