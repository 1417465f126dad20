// File: database/repository/appointment/file.go
package appointmentRepo

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"movebook/models"
)

// fileAppointmentRepo keeps the full appointment collection in one ordered JSON
// file. All mutations funnel through a single writer lock: each read-modify-write
// cycle holds exclusive access from load to durable rename, which is what keeps
// the capacity invariant under concurrent bookings.
type fileAppointmentRepo struct {
	path string
	mu   sync.Mutex
}

// NewFileAppointmentRepo constructs a file-backed AppointmentRepository,
// creating the parent directory and an empty collection when absent.
func NewFileAppointmentRepo(path string) (AppointmentRepository, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create store directory: %w", err)
	}
	repo := &fileAppointmentRepo{path: path}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err := repo.save(nil); err != nil {
			return nil, err
		}
	}
	return repo, nil
}

func (r *fileAppointmentRepo) load() ([]models.Appointment, error) {
	data, err := os.ReadFile(r.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read appointment store: %w", err)
	}
	var records []models.Appointment
	if len(data) > 0 {
		if err := json.Unmarshal(data, &records); err != nil {
			return nil, fmt.Errorf("failed to decode appointment store: %w", err)
		}
	}
	return records, nil
}

// save writes through a temp file and renames, so a crash mid-write never
// leaves a truncated collection behind.
func (r *fileAppointmentRepo) save(records []models.Appointment) error {
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode appointment store: %w", err)
	}
	tmp := r.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to write appointment store: %w", err)
	}
	if err := os.Rename(tmp, r.path); err != nil {
		return fmt.Errorf("failed to commit appointment store: %w", err)
	}
	return nil
}

func (r *fileAppointmentRepo) Append(ctx context.Context, appt *models.Appointment) error {
	return r.AppendWithinCapacity(ctx, appt, 0)
}

func (r *fileAppointmentRepo) AppendWithinCapacity(_ context.Context, appt *models.Appointment, capacity int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	records, err := r.load()
	if err != nil {
		return err
	}

	booked := 0
	for i := range records {
		if records[i].ID == appt.ID {
			return ErrDuplicateBooking
		}
		if records[i].Status != models.StatusCancelled &&
			records[i].Date == appt.Date && records[i].Time == appt.Time {
			booked++
		}
	}
	// capacity <= 0 means no capacity precondition (plain Append).
	if capacity > 0 && booked >= capacity {
		return ErrSlotFull
	}

	now := time.Now().UTC()
	appt.CreatedAt = now
	appt.UpdatedAt = now
	records = append(records, *appt)
	return r.save(records)
}

func (r *fileAppointmentRepo) FindByID(_ context.Context, bookingID string) (*models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	records, err := r.load()
	if err != nil {
		return nil, err
	}
	for i := range records {
		if records[i].ID == bookingID {
			appt := records[i]
			return &appt, nil
		}
	}
	return nil, ErrNotFound
}

func (r *fileAppointmentRepo) ListByDate(_ context.Context, date string) ([]models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	records, err := r.load()
	if err != nil {
		return nil, err
	}
	var out []models.Appointment
	for i := range records {
		if records[i].Date == date && records[i].Status != models.StatusCancelled {
			out = append(out, records[i])
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Time != out[j].Time {
			return out[i].Time < out[j].Time
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (r *fileAppointmentRepo) Update(_ context.Context, bookingID string, patch models.AppointmentPatch) (*models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	records, err := r.load()
	if err != nil {
		return nil, err
	}
	for i := range records {
		if records[i].ID != bookingID {
			continue
		}
		if patch.Status != nil {
			records[i].Status = *patch.Status
		}
		if len(patch.ExternalEventIDs) > 0 {
			if records[i].ExternalEventIDs == nil {
				records[i].ExternalEventIDs = make(map[string]string, len(patch.ExternalEventIDs))
			}
			for provider, eventID := range patch.ExternalEventIDs {
				records[i].ExternalEventIDs[provider] = eventID
			}
		}
		records[i].UpdatedAt = time.Now().UTC()
		if err := r.save(records); err != nil {
			return nil, err
		}
		appt := records[i]
		return &appt, nil
	}
	return nil, ErrNotFound
}
