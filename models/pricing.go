package models

// RateTable is the pricing catalog payload served to the estimate flow.
// The coordinator never interprets individual rates; it only caches and
// hands the table through.
type RateTable struct {
	Currency  string             `json:"currency"`
	BaseRates map[string]float64 `json:"baseRates"` // service type -> base rate
	CrewTiers []CrewTier         `json:"crewTiers,omitempty"`
	UpdatedAt string             `json:"updatedAt,omitempty"`
}

type CrewTier struct {
	Name        string  `json:"name"`
	CrewSize    int     `json:"crewSize"`
	HourlyRate  float64 `json:"hourlyRate"`
	MinimumHrs  float64 `json:"minimumHours,omitempty"`
	TruckCount  int     `json:"truckCount,omitempty"`
	Description string  `json:"description,omitempty"`
}
