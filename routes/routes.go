package routes

import (
	"net/http"
	"time"

	"movebook/handlers"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// Register wires every endpoint onto the router.
func Register(r *gin.Engine, bh *handlers.BookingHandler, ph *handlers.PricingHandler) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	RegisterBookingRoutes(r, bh)
	RegisterPricingRoutes(r, ph)
}
