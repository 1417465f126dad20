package routes

import (
	"movebook/handlers"

	"github.com/gin-gonic/gin"
)

// RegisterBookingRoutes registers all endpoints for the booking engine.
func RegisterBookingRoutes(r *gin.Engine, bh *handlers.BookingHandler) {
	api := r.Group("/api")
	{
		api.POST("/bookings", bh.CreateBooking)
		api.GET("/bookings/:bookingId", bh.GetBooking)
		api.DELETE("/bookings/:bookingId", bh.CancelBooking)
		api.POST("/bookings/:bookingId/resync", bh.ResyncBooking)
		api.GET("/availability", bh.GetAvailability)
	}
}

// RegisterPricingRoutes registers the rate-table endpoints used by the
// estimate flow.
func RegisterPricingRoutes(r *gin.Engine, ph *handlers.PricingHandler) {
	api := r.Group("/api/pricing")
	{
		api.GET("/rates", ph.GetRates)
		api.POST("/invalidate", ph.InvalidateRates)
	}
}
