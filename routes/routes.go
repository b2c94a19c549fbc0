package routes

import (
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"property-backend/controllers"
	"property-backend/middleware"
	"property-backend/utils"
)

func parseCorsOrigins() []string {
	raw := strings.TrimSpace(os.Getenv("CORS_ORIGINS"))
	if raw == "" {
		return []string{"*"}
	}

	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, part := range parts {
		origin := strings.TrimSpace(part)
		if origin != "" {
			origins = append(origins, origin)
		}
	}
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}

// SetupRouter wires controllers into the route tree. Everything under /api
// except login and the public inquiry endpoint requires a Bearer token.
func SetupRouter(
	bc *controllers.BookingController,
	ac *controllers.AvailabilityController,
	cc *controllers.ContactController,
	ic *controllers.ImportController,
	rc *controllers.RequestController,
	resc *controllers.ResourceController,
) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.Logger())
	r.Static("/uploads", utils.EnvOrDefault("UPLOAD_DIR", "./uploads"))

	origins := parseCorsOrigins()
	allowCredentials := true
	for _, origin := range origins {
		if origin == "*" {
			allowCredentials = false
			break
		}
	}

	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: allowCredentials,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")

	// Public surface: login + the website inquiry form.
	api.POST("/auth/login", controllers.Login)
	api.POST("/availability-requests", rc.CreateRequest)

	auth := api.Group("")
	auth.Use(middleware.RequireAuth())
	{
		properties := auth.Group("/properties")
		{
			properties.GET("", controllers.GetProperties)
			properties.POST("", controllers.CreateProperty)
			properties.GET("/:id", controllers.GetProperty)
			properties.PUT("/:id", controllers.UpdateProperty)
			properties.PATCH("/:id", controllers.UpdateProperty)
			properties.DELETE("/:id", controllers.DeleteProperty)

			properties.GET("/:id/calendar", ac.GetCalendar)
			properties.GET("/:id/quote", ac.GetQuote)

			properties.GET("/:id/resources", resc.GetResources)
			properties.POST("/:id/resources", resc.UploadResource)
			properties.POST("/:id/resources/image", resc.UploadImage)
		}

		contacts := auth.Group("/contacts")
		{
			// export must come before /:id
			contacts.GET("/export", cc.ExportContacts)

			contacts.GET("", cc.GetContacts)
			contacts.POST("", cc.CreateContact)
			contacts.GET("/:id", cc.GetContact)
			contacts.PUT("/:id", cc.UpdateContact)
			contacts.PATCH("/:id", cc.UpdateContact)
			contacts.DELETE("/:id", cc.DeleteContact)

			contacts.POST("/:id/properties", cc.LinkProperty)
			contacts.DELETE("/:id/properties/:propertyId", cc.UnlinkProperty)
		}

		bookings := auth.Group("/bookings")
		{
			bookings.GET("/export", ic.ExportBookings)
			bookings.POST("/import", ic.ImportBookings)
			bookings.POST("/availability", ac.CheckAvailability)

			bookings.GET("", bc.GetBookings)
			bookings.POST("", bc.CreateBooking)
			bookings.GET("/:id", bc.GetBookingDetails)
			bookings.PUT("/:id", bc.UpdateBooking)
			bookings.PATCH("/:id", bc.UpdateBooking)
			bookings.DELETE("/:id", bc.DeleteBooking)
		}

		requests := auth.Group("/availability-requests")
		{
			requests.GET("", rc.GetRequests)
			requests.POST("/:id/confirm", rc.ConfirmRequest)
			requests.POST("/:id/reject", rc.RejectRequest)
		}

		priceRanges := auth.Group("/price-ranges")
		{
			priceRanges.GET("", controllers.GetPriceRanges)
			priceRanges.POST("", controllers.CreatePriceRange)
			priceRanges.PUT("/:id", controllers.UpdatePriceRange)
			priceRanges.DELETE("/:id", controllers.DeletePriceRange)
		}

		stayRules := auth.Group("/minimum-stay-rules")
		{
			stayRules.GET("", controllers.GetStayRules)
			stayRules.POST("", controllers.CreateStayRule)
			stayRules.PUT("/:id", controllers.UpdateStayRule)
			stayRules.DELETE("/:id", controllers.DeleteStayRule)
		}

		costs := auth.Group("/operational-costs")
		{
			costs.GET("", controllers.GetOperationalCosts)
			costs.POST("", controllers.CreateOperationalCost)
			costs.PATCH("/:id", controllers.UpdateOperationalCost)
			costs.DELETE("/:id", controllers.DeleteOperationalCost)
		}

		auth.GET("/settings/agency", controllers.GetAgencySettings)
		auth.PUT("/settings/agency", controllers.UpdateAgencySettings)

		admins := auth.Group("/admins")
		{
			admins.GET("", controllers.GetAdmins)
			admins.POST("", controllers.CreateAdmin)
			admins.DELETE("/:id", controllers.DeleteAdmin)
		}

		auth.DELETE("/resources/:id", resc.DeleteResource)
	}

	return r
}
