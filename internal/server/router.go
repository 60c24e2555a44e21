package server

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/harentsoaR/laskin-api/internal/handlers"
	"github.com/harentsoaR/laskin-api/internal/logging"
	"github.com/harentsoaR/laskin-api/internal/middleware"
	"github.com/harentsoaR/laskin-api/internal/models"
)

// NewRouter wires every route onto a fresh engine.
func NewRouter(h *handlers.Handler, origins []string, logger zerolog.Logger) *gin.Engine {
	r := gin.New()
	r.Use(logging.RequestLogger(logger), gin.Recovery())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	r.GET("/healthz", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })

	authRoutes := r.Group("/auth")
	{
		authRoutes.POST("/login", h.Login)
	}

	apiRoutes := r.Group("/api")
	apiRoutes.Use(middleware.AuthMiddleware(h.Auth)) // Protect all /api routes
	{
		apiRoutes.POST("/logout", h.Logout)
		apiRoutes.GET("/me", h.GetCurrentUser)
		apiRoutes.GET("/dashboard", h.GetDashboard)

		patients := apiRoutes.Group("/patients")
		patients.GET("", h.GetPatients)
		patients.POST("", middleware.RequirePermission(models.CategoryAppointmentsAndSchedule, models.PermAddTreatmentOrPatient), h.CreatePatient)
		patients.GET("/:id", middleware.RequirePermission(models.CategoryPatientManagement, models.PermViewClinicalHistory), h.GetPatient)
		patients.POST("/:id/notes", middleware.RequirePermission(models.CategoryPatientManagement, models.PermAddNotesAndPhotos), h.AddPatientNote)

		treatments := apiRoutes.Group("/treatments")
		treatments.GET("", h.GetTreatments)
		treatments.POST("", middleware.RequirePermission(models.CategoryAppointmentsAndSchedule, models.PermAddTreatmentOrPatient), h.CreateTreatment)

		apiRoutes.GET("/appointments", middleware.RequirePermission(models.CategoryAppointmentsAndSchedule, models.PermViewOwnSchedule), h.GetAppointments)

		alerts := apiRoutes.Group("/alerts")
		alerts.GET("", h.GetAlerts)
		alerts.POST("/:id/review", h.ReviewAlert)
		alerts.POST("/:id/dismiss", h.DismissAlert)

		apiRoutes.GET("/config", h.GetClinicConfig)
		apiRoutes.PATCH("/config", middleware.RequireAdmin(), h.UpdateClinicConfig)
		apiRoutes.POST("/config/logo", middleware.RequireAdmin(), h.UploadClinicLogo)

		apiRoutes.GET("/roles", middleware.RequireAdmin(), h.GetRoles)
		apiRoutes.PUT("/roles/:roleType/permissions", middleware.RequireAdmin(), h.UpdateRolePermissions)
	}

	return r
}
