package handlers

import (
	"errors"
	"net/http"

	appointmentRepo "movebook/database/repository/appointment"
	"movebook/models"
	"movebook/services/booking"
	"movebook/services/tasks"
	"movebook/utils"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
)

// BookingHandler exposes the booking engine over HTTP.
type BookingHandler struct {
	Service    booking.BookingService
	TaskClient *asynq.Client
}

func NewBookingHandler(svc booking.BookingService, taskClient *asynq.Client) *BookingHandler {
	return &BookingHandler{Service: svc, TaskClient: taskClient}
}

// CreateBooking handles POST /api/bookings.
func (h *BookingHandler) CreateBooking(c *gin.Context) {
	var req models.BookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	appt, err := h.Service.BookAppointment(c.Request.Context(), req)
	if err != nil {
		var slotErr *booking.SlotUnavailableError
		var valErr *booking.ValidationError
		switch {
		case errors.As(err, &slotErr):
			utils.JSONError(c, http.StatusConflict, "slot unavailable", slotErr.Error())
		case errors.As(err, &valErr):
			utils.JSONError(c, http.StatusBadRequest, "invalid booking request", valErr.Error())
		default:
			utils.JSONError(c, http.StatusInternalServerError, "booking failed", err.Error())
		}
		return
	}

	c.JSON(http.StatusCreated, models.BookingResponse{
		BookingID: appt.ID,
		Status:    appt.Status,
	})
}

// CancelBooking handles DELETE /api/bookings/:bookingId. Repeated cancels are
// acknowledged with the already-cancelled record.
func (h *BookingHandler) CancelBooking(c *gin.Context) {
	bookingID := c.Param("bookingId")

	appt, err := h.Service.CancelAppointment(c.Request.Context(), bookingID)
	if err != nil {
		var stateErr *booking.StateConflictError
		switch {
		case errors.Is(err, appointmentRepo.ErrNotFound):
			utils.JSONError(c, http.StatusNotFound, "booking not found", bookingID)
		case errors.As(err, &stateErr):
			utils.JSONError(c, http.StatusConflict, "cannot cancel booking", stateErr.Error())
		default:
			utils.JSONError(c, http.StatusInternalServerError, "cancellation failed", err.Error())
		}
		return
	}

	c.JSON(http.StatusOK, models.BookingResponse{
		BookingID: appt.ID,
		Status:    appt.Status,
	})
}

// GetBooking handles GET /api/bookings/:bookingId.
func (h *BookingHandler) GetBooking(c *gin.Context) {
	bookingID := c.Param("bookingId")

	appt, err := h.Service.GetAppointment(c.Request.Context(), bookingID)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrNotFound) {
			utils.JSONError(c, http.StatusNotFound, "booking not found", bookingID)
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "lookup failed", err.Error())
		return
	}
	c.JSON(http.StatusOK, appt)
}

// GetAvailability handles GET /api/availability?date=YYYY-MM-DD. The slot list
// is empty, never null, when the date is fully booked or out of window.
func (h *BookingHandler) GetAvailability(c *gin.Context) {
	date := c.Query("date")
	if date == "" {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", "date query parameter is required")
		return
	}

	slots, err := h.Service.AvailableSlots(c.Request.Context(), date)
	if err != nil {
		var valErr *booking.ValidationError
		if errors.As(err, &valErr) {
			utils.JSONError(c, http.StatusBadRequest, "invalid date", valErr.Error())
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "availability lookup failed", err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"date":  date,
		"slots": slots,
	})
}

// ResyncBooking handles POST /api/bookings/:bookingId/resync by enqueueing a
// background calendar resync for the appointment.
func (h *BookingHandler) ResyncBooking(c *gin.Context) {
	bookingID := c.Param("bookingId")

	if _, err := h.Service.GetAppointment(c.Request.Context(), bookingID); err != nil {
		if errors.Is(err, appointmentRepo.ErrNotFound) {
			utils.JSONError(c, http.StatusNotFound, "booking not found", bookingID)
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "lookup failed", err.Error())
		return
	}

	task, err := tasks.NewCalendarResyncTask(bookingID)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to build resync task", err.Error())
		return
	}
	if _, err := h.TaskClient.Enqueue(task); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to enqueue resync task", err.Error())
		return
	}

	c.JSON(http.StatusAccepted, gin.H{"bookingId": bookingID, "resync": "queued"})
}
