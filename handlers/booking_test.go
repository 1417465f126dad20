package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	appointmentRepo "movebook/database/repository/appointment"
	"movebook/models"
	"movebook/services/booking"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeBookingService struct {
	bookFn      func(ctx context.Context, req models.BookingRequest) (*models.Appointment, error)
	cancelFn    func(ctx context.Context, bookingID string) (*models.Appointment, error)
	getFn       func(ctx context.Context, bookingID string) (*models.Appointment, error)
	availableFn func(ctx context.Context, date string) ([]string, error)
	resyncFn    func(ctx context.Context, bookingID string) (*models.Appointment, error)
}

func (f *fakeBookingService) BookAppointment(ctx context.Context, req models.BookingRequest) (*models.Appointment, error) {
	return f.bookFn(ctx, req)
}

func (f *fakeBookingService) CancelAppointment(ctx context.Context, bookingID string) (*models.Appointment, error) {
	return f.cancelFn(ctx, bookingID)
}

func (f *fakeBookingService) GetAppointment(ctx context.Context, bookingID string) (*models.Appointment, error) {
	return f.getFn(ctx, bookingID)
}

func (f *fakeBookingService) AvailableSlots(ctx context.Context, date string) ([]string, error) {
	return f.availableFn(ctx, date)
}

func (f *fakeBookingService) ResyncCalendars(ctx context.Context, bookingID string) (*models.Appointment, error) {
	return f.resyncFn(ctx, bookingID)
}

func newTestRouter(svc booking.BookingService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewBookingHandler(svc, nil)

	r := gin.New()
	r.POST("/api/bookings", h.CreateBooking)
	r.GET("/api/bookings/:bookingId", h.GetBooking)
	r.DELETE("/api/bookings/:bookingId", h.CancelBooking)
	r.GET("/api/availability", h.GetAvailability)
	return r
}

const validBookingJSON = `{
	"firstName": "Ada",
	"lastName": "Okafor",
	"email": "ada@example.com",
	"phone": "+15550100",
	"date": "2025-10-24",
	"time": "10:00",
	"serviceType": "2-bedroom move",
	"pickupAddress": "12 Elm St",
	"dropoffAddress": "48 Oak Ave"
}`

func TestCreateBooking_Created(t *testing.T) {
	svc := &fakeBookingService{
		bookFn: func(_ context.Context, req models.BookingRequest) (*models.Appointment, error) {
			return &models.Appointment{ID: "b-1", Status: models.StatusConfirmed, Date: req.Date, Time: req.Time}, nil
		},
	}
	r := newTestRouter(svc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/bookings", strings.NewReader(validBookingJSON))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)
	assert.JSONEq(t, `{"bookingId":"b-1","status":"confirmed"}`, w.Body.String())
}

func TestCreateBooking_SlotConflict(t *testing.T) {
	svc := &fakeBookingService{
		bookFn: func(context.Context, models.BookingRequest) (*models.Appointment, error) {
			return nil, &booking.SlotUnavailableError{Date: "2025-10-24", Time: "10:00"}
		},
	}
	r := newTestRouter(svc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/bookings", strings.NewReader(validBookingJSON))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "slot unavailable")
}

func TestCreateBooking_MissingFields(t *testing.T) {
	svc := &fakeBookingService{
		bookFn: func(context.Context, models.BookingRequest) (*models.Appointment, error) {
			t.Fatal("service must not be called on a binding failure")
			return nil, nil
		},
	}
	r := newTestRouter(svc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/bookings", strings.NewReader(`{"firstName":"Ada"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetBooking_NotFound(t *testing.T) {
	svc := &fakeBookingService{
		getFn: func(context.Context, string) (*models.Appointment, error) {
			return nil, appointmentRepo.ErrNotFound
		},
	}
	r := newTestRouter(svc)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/bookings/missing", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCancelBooking_OK(t *testing.T) {
	svc := &fakeBookingService{
		cancelFn: func(_ context.Context, bookingID string) (*models.Appointment, error) {
			return &models.Appointment{ID: bookingID, Status: models.StatusCancelled}, nil
		},
	}
	r := newTestRouter(svc)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/api/bookings/b-1", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"bookingId":"b-1","status":"cancelled"}`, w.Body.String())
}

func TestCancelBooking_StateConflict(t *testing.T) {
	svc := &fakeBookingService{
		cancelFn: func(context.Context, string) (*models.Appointment, error) {
			return nil, &booking.StateConflictError{BookingID: "b-1", Status: models.StatusCompleted}
		},
	}
	r := newTestRouter(svc)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/api/bookings/b-1", nil))

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestGetAvailability_EmptyIsNeverNull(t *testing.T) {
	svc := &fakeBookingService{
		availableFn: func(context.Context, string) ([]string, error) {
			return []string{}, nil
		},
	}
	r := newTestRouter(svc)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/availability?date=2025-10-24", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"date":"2025-10-24","slots":[]}`, w.Body.String())
}

func TestGetAvailability_RequiresDate(t *testing.T) {
	svc := &fakeBookingService{
		availableFn: func(context.Context, string) ([]string, error) {
			t.Fatal("service must not be called without a date")
			return nil, nil
		},
	}
	r := newTestRouter(svc)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/availability", nil))

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetAvailability_BadDate(t *testing.T) {
	svc := &fakeBookingService{
		availableFn: func(context.Context, string) ([]string, error) {
			return nil, &booking.ValidationError{Field: "date", Message: "must be YYYY-MM-DD"}
		},
	}
	r := newTestRouter(svc)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/availability?date=24-10-2025", nil))

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
