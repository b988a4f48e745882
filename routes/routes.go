package routes

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"mentorhub/handlers"
	"mentorhub/middleware"
)

// HandlerBundle groups the handlers the route registrars wire up.
type HandlerBundle struct {
	Booking  *handlers.BookingHandler
	Provider *handlers.ProviderHandler
	User     *handlers.UserHandler
}

// RegisterBookingRoutes sets up the endpoints for the allocation engine.
func RegisterBookingRoutes(r *gin.Engine, hb *HandlerBundle) {
	bookingGroup := r.Group("/api/booking")
	{
		bookingGroup.Use(middleware.JWTAuthUserMiddleware())
		bookingGroup.POST("/interview", hb.Booking.BookInterview)
		bookingGroup.POST("/guidance", hb.Booking.BookGuidance)
		bookingGroup.GET("", hb.Booking.ListMyBookings)
		bookingGroup.DELETE("/:bookingID", hb.Booking.CancelBooking)
	}
}

// RegisterProviderRoutes registers availability management endpoints.
func RegisterProviderRoutes(r *gin.Engine, hb *HandlerBundle) {
	api := r.Group("/api/providers")
	{
		// Consumers may browse a provider's free windows without a token.
		api.GET("/:providerID/availability", hb.Provider.GetAvailability)

		protected := api.Group("")
		protected.Use(middleware.JWTAuthProviderMiddleware())
		protected.PUT("/availability", hb.Provider.PublishWindows)
		protected.DELETE("/availability/:windowID", hb.Provider.DeleteWindow)
		protected.GET("/bookings/upcoming", hb.Provider.ListUpcoming)
	}
}

// RegisterUserRoutes registers plan and notification endpoints.
func RegisterUserRoutes(r *gin.Engine, hb *HandlerBundle) {
	api := r.Group("/api/users/me")
	{
		api.Use(middleware.JWTAuthUserMiddleware())
		api.GET("/plan", hb.User.GetPlan)
		api.POST("/plan/upgrade", hb.User.UpgradePlan)
		api.GET("/notifications", hb.User.ListNotifications)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "Hi, I'm MentorHub"})
	})
}

// RegisterRoutes centralizes registration of all endpoints and global middleware.
func RegisterRoutes(r *gin.Engine, hb *HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	r.Use(middleware.RateLimitMiddleware())

	RegisterHealthRoute(r)
	RegisterBookingRoutes(r, hb)
	RegisterProviderRoutes(r, hb)
	RegisterUserRoutes(r, hb)
}
