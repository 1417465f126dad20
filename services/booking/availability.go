package booking

import (
	"fmt"
	"time"

	"movebook/models"
)

// SlotRules describes the fixed business-hour grid candidate slots are drawn
// from, plus how far ahead bookings are accepted.
type SlotRules struct {
	Open        string // "08:00"
	Close       string // "18:00"
	SlotMinutes int
	HorizonDays int
	Location    *time.Location
}

// Grid returns every candidate time-of-day slot between Open (inclusive) and
// Close (exclusive) at the configured granularity.
func (r SlotRules) Grid() ([]string, error) {
	open, err := minutesOfDay(r.Open)
	if err != nil {
		return nil, fmt.Errorf("invalid business open time: %w", err)
	}
	closeAt, err := minutesOfDay(r.Close)
	if err != nil {
		return nil, fmt.Errorf("invalid business close time: %w", err)
	}
	if r.SlotMinutes <= 0 || closeAt <= open {
		return nil, fmt.Errorf("invalid slot rules: open=%s close=%s granularity=%d", r.Open, r.Close, r.SlotMinutes)
	}

	var grid []string
	for m := open; m < closeAt; m += r.SlotMinutes {
		grid = append(grid, fmt.Sprintf("%02d:%02d", m/60, m%60))
	}
	return grid, nil
}

// AvailableSlots derives the free slots for a date: the business-hour grid
// minus every slot whose non-cancelled booking count has reached that slot's
// crew capacity. Past dates, dates beyond the horizon, and (for today)
// already-started slots yield nothing. Results are always computed from the
// booked list passed in — callers wanting booking-time freshness must fetch
// it inside the same request, never cache it across the validate/append gap.
func AvailableSlots(rules SlotRules, date string, now time.Time, booked []models.Appointment, capacityFor func(date, timeOfDay string) int) ([]string, error) {
	day, err := time.ParseInLocation("2006-01-02", date, rules.Location)
	if err != nil {
		return nil, &ValidationError{Field: "date", Message: "must be YYYY-MM-DD"}
	}

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, rules.Location)
	if day.Before(today) || day.After(today.AddDate(0, 0, rules.HorizonDays)) {
		return []string{}, nil
	}

	grid, err := rules.Grid()
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int, len(booked))
	for i := range booked {
		if booked[i].Status != models.StatusCancelled {
			counts[booked[i].Time]++
		}
	}

	free := []string{}
	for _, slot := range grid {
		if day.Equal(today) {
			start, _ := minutesOfDay(slot)
			if start <= now.In(rules.Location).Hour()*60+now.In(rules.Location).Minute() {
				continue
			}
		}
		if counts[slot] >= capacityFor(date, slot) {
			continue
		}
		free = append(free, slot)
	}
	return free, nil
}

func minutesOfDay(hhmm string) (int, error) {
	t, err := time.Parse("15:04", hhmm)
	if err != nil {
		return 0, err
	}
	return t.Hour()*60 + t.Minute(), nil
}
