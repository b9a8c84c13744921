package api

import (
	"log"
	stdhttp "net/http"
	"strings"
	"time"

	intconfig "tourops/internal/config"
	"tourops/internal/domain"
	h "tourops/internal/http/handlers"
	"tourops/internal/http/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func NewRouter(env intconfig.Env, cache *redis.Client) *gin.Engine {
	middleware.SetJWTSecret([]byte(env.JWTSecret))
	h.SetReportsCache(cache)

	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logger(), gin.Recovery(), corsMiddleware(env))

	if err := r.SetTrustedProxies(nil); err != nil {
		log.Printf("warning: failed to set trusted proxies: %v", err)
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(stdhttp.StatusNotFound, gin.H{
			"error":  "route not found",
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
		})
	})

	api := r.Group("/api")
	{
		api.GET("/health", h.Health)
		api.GET("/db-check", h.DBCheck)

		auth := api.Group("/auth")
		auth.POST("/login", h.Login)
		auth.POST("/register", h.Register)

		authed := api.Group("")
		authed.Use(middleware.Auth())

		users := authed.Group("/users")
		users.GET("", h.GetUsers)
		users.GET("/:id", h.GetUserByID)
		users.PUT("/:id/commission-rate", middleware.RequireRoles(domain.RoleAdmin, domain.RoleManager), h.UpdateUserCommissionRate)

		trips := authed.Group("/trips")
		trips.GET("", h.GetTrips)
		trips.GET("/:id", h.GetTripByID)
		trips.POST("", h.CreateTrip)
		trips.PUT("/:id", h.UpdateTrip)

		customers := authed.Group("/customers")
		customers.GET("", h.GetCustomers)
		customers.GET("/:id", h.GetCustomerByID)
		customers.POST("", h.CreateCustomer)
		customers.PUT("/:id", h.UpdateCustomer)
		customers.GET("/:id/passports", h.GetCustomerPassports)
		customers.POST("/:id/passports", h.AddCustomerPassport)

		bookings := authed.Group("/bookings")
		bookings.GET("", h.ListBookings)
		bookings.GET("/:id", h.GetBooking)
		bookings.POST("", h.CreateBooking)
		bookings.PUT("/:id", h.UpdateBooking)
		bookings.POST("/:id/cancel", h.CancelBooking)
		bookings.POST("/:id/payments", h.RecordPayment)
		bookings.GET("/:id/payments", h.ListBookingPayments)

		payments := authed.Group("/payments")
		payments.GET("/:id", h.GetPayment)
		payments.GET("/:id/receipt", h.GetPaymentReceiptPDF)

		leads := authed.Group("/leads")
		leads.GET("", h.GetLeads)
		leads.GET("/:id", h.GetLeadByID)
		leads.POST("", h.CreateLead)
		leads.PUT("/:id/status", h.UpdateLeadStatus)
		leads.PUT("/:id/notes", h.UpdateLeadNotes)

		tasks := authed.Group("/tasks")
		tasks.GET("", h.GetTasks)
		tasks.POST("", h.CreateTask)
		tasks.PUT("/:id/status", h.UpdateTaskStatus)

		reports := authed.Group("/reports")
		reports.Use(middleware.RequireRoles(domain.RoleAdmin, domain.RoleManager))
		reports.GET("/commissions", h.CommissionSummary)
		reports.GET("/commissions/:agent_id", h.CommissionDetail)
		reports.GET("/commissions/:agent_id/statement", h.GetCommissionStatementPDF)

		exports := authed.Group("/exports")
		exports.Use(middleware.RequireRoles(domain.RoleAdmin, domain.RoleManager))
		exports.GET("/bookings", h.ExportBookingsCSV)
		exports.GET("/commissions", h.ExportCommissionsCSV)
	}

	return r
}

func corsMiddleware(env intconfig.Env) gin.HandlerFunc {
	cfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", "Authorization", "Accept", "Origin", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           24 * time.Hour,
	}
	if env.CORSOrigins != "" {
		for _, o := range strings.Split(env.CORSOrigins, ",") {
			if o = strings.TrimSpace(o); o != "" {
				cfg.AllowOrigins = append(cfg.AllowOrigins, o)
			}
		}
	} else {
		cfg.AllowOrigins = []string{
			"http://localhost:3000",
			"http://localhost:5173",
		}
	}
	return cors.New(cfg)
}
