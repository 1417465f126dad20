package calendar

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"movebook/models"
)

// CalDAVProvider syncs appointments to an Apple-style CalDAV collection by
// uploading iCalendar objects keyed by the booking id.
type CalDAVProvider struct {
	baseURL     string
	username    string
	password    string
	organizer   string
	client      *http.Client
	location    *time.Location
	slotMinutes int
}

// NewCalDAVProvider builds a provider for the calendar collection at baseURL.
// Authentication uses basic auth with an app-specific password.
func NewCalDAVProvider(baseURL, username, password, organizer string, loc *time.Location, slotMinutes int) *CalDAVProvider {
	return &CalDAVProvider{
		baseURL:     strings.TrimRight(baseURL, "/"),
		username:    username,
		password:    password,
		organizer:   organizer,
		client:      &http.Client{Timeout: 10 * time.Second},
		location:    loc,
		slotMinutes: slotMinutes,
	}
}

func (p *CalDAVProvider) Name() string { return "caldav" }

func (p *CalDAVProvider) CreateEvent(ctx context.Context, appt *models.Appointment) (string, error) {
	// The resource name doubles as the event id; CalDAV lets the client choose it.
	eventID := appt.ID
	if err := p.put(ctx, eventID, appt, false); err != nil {
		return "", err
	}
	return eventID, nil
}

func (p *CalDAVProvider) UpdateEvent(ctx context.Context, eventID string, appt *models.Appointment) error {
	return p.put(ctx, eventID, appt, false)
}

func (p *CalDAVProvider) DeleteEvent(ctx context.Context, eventID string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, p.resourceURL(eventID), nil)
	if err != nil {
		return err
	}
	req.SetBasicAuth(p.username, p.password)

	resp, err := p.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNoContent && resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNotFound {
		return fmt.Errorf("caldav delete error: status %d", resp.StatusCode)
	}
	return nil
}

func (p *CalDAVProvider) put(ctx context.Context, eventID string, appt *models.Appointment, cancelled bool) error {
	start, end, err := EventWindow(appt, p.location, p.slotMinutes)
	if err != nil {
		return err
	}
	body := BuildInvite(appt, p.organizer, start, end, cancelled)

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, p.resourceURL(eventID), strings.NewReader(body))
	if err != nil {
		return err
	}
	req.SetBasicAuth(p.username, p.password)
	req.Header.Set("Content-Type", "text/calendar; charset=utf-8")

	resp, err := p.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusNoContent && resp.StatusCode != http.StatusOK {
		return fmt.Errorf("caldav put error: status %d", resp.StatusCode)
	}
	return nil
}

func (p *CalDAVProvider) resourceURL(eventID string) string {
	return fmt.Sprintf("%s/%s.ics", p.baseURL, eventID)
}
