package routes

import (
	"localgov-backend/internal/handlers"
	"localgov-backend/internal/middleware"

	"github.com/gin-gonic/gin"
)

// Handlers bundles everything main wires up so SetupRoutes stays one call.
type Handlers struct {
	Auth         *handlers.AuthHandler
	User         *handlers.UserHandler
	Appointment  *handlers.AppointmentHandler
	Document     *handlers.DocumentHandler
	Notification *handlers.NotificationHandler
	Service      *handlers.ServiceHandler
	Payment      *handlers.PaymentHandler
	Admin        *handlers.AdminHandler
}

func SetupRoutes(r *gin.Engine, h Handlers) {

	r.Use(middleware.RateLimitMiddleware())

	api := r.Group("/api/v1")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/register", h.Auth.Register)
			auth.POST("/login", h.Auth.Login)
			auth.POST("/forgot-password", h.Auth.ForgotPassword)
			auth.PUT("/reset-password/:token", h.Auth.ResetPassword)
			auth.GET("/verify-email/:token", h.Auth.VerifyEmail)
		}

		// Public: citizens can browse services and fees before registering
		api.GET("/services", h.Service.List)
		api.GET("/services/:id", h.Service.Get)

		// Payment gateway webhook (called by Midtrans, not by users)
		api.POST("/payment/notification", h.Payment.HandleNotification)

		protected := api.Group("/")
		protected.Use(middleware.AuthMiddleware())
		{
			protected.GET("/profile", h.User.GetProfile)
			protected.PUT("/profile", h.User.UpdateProfile)
			protected.PUT("/profile/password", h.User.ChangePassword)

			// Appointments
			protected.GET("/appointments", h.Appointment.List)
			protected.GET("/appointments/dashboard", h.Appointment.Dashboard)
			protected.GET("/appointments/slots/:serviceId/:date", h.Appointment.Slots)
			protected.POST("/appointments", h.Appointment.Create)
			protected.GET("/appointments/:id", h.Appointment.Get)
			protected.PUT("/appointments/:id", h.Appointment.Update)
			protected.DELETE("/appointments/:id", h.Appointment.Cancel)
			protected.POST("/appointments/:id/pay", h.Payment.Pay)

			// Documents
			protected.POST("/documents", h.Document.Upload)
			protected.GET("/documents", h.Document.List)
			protected.GET("/documents/:id/download", h.Document.Download)
			protected.DELETE("/documents/:id", h.Document.Delete)

			// Notifications
			protected.GET("/notifications", h.Notification.List)
			protected.PUT("/notifications/read-all", h.Notification.MarkAllRead)
			protected.PUT("/notifications/:id/read", h.Notification.MarkRead)
			protected.DELETE("/notifications/:id", h.Notification.Delete)

			// Counter staff: review documents, run the day's queue
			officer := protected.Group("/officer")
			officer.Use(middleware.OfficerOnly())
			{
				officer.GET("/appointments", h.Appointment.ListAll)
				officer.PUT("/appointments/:id/status", h.Appointment.UpdateStatus)
				officer.GET("/documents", h.Document.ListForReview)
				officer.PUT("/documents/:id/verify", h.Document.Verify)
			}

			admin := protected.Group("/admin")
			admin.Use(middleware.AdminOnly())
			{
				admin.GET("/dashboard", h.Admin.DashboardStats)
				admin.GET("/users", h.Admin.ListUsers)
				admin.PUT("/users/:id/active", h.Admin.SetUserActive)
				admin.POST("/services", h.Service.Create)
				admin.PUT("/services/:id", h.Service.Update)
				admin.DELETE("/services/:id", h.Service.Delete)
			}
		}
	}
}
