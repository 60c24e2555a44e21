package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/harentsoaR/laskin-api/internal/services"
)

// Handler carries the services every route needs.
type Handler struct {
	Auth         *services.AuthService
	Roles        *services.RoleService
	Alerts       *services.AlertEngine
	Patients     *services.PatientService
	Treatments   *services.TreatmentService
	Appointments *services.AppointmentService
	Clinic       *services.ClinicService
	Dashboard    *services.DashboardService
	Logger       zerolog.Logger
}

// respondError maps service errors onto status codes.
func (h *Handler) respondError(c *gin.Context, err error) {
	var verr *services.ValidationError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Por favor complete todos los campos requeridos", "fields": verr.Fields})
	case errors.Is(err, services.ErrConsentRequired):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired session"})
	case errors.Is(err, services.ErrPatientNotFound),
		errors.Is(err, services.ErrAlertNotFound),
		errors.Is(err, services.ErrRoleTemplateNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrInvalidAlertTransition):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		_ = c.Error(err)
		h.Logger.Error().Err(err).Str("path", c.FullPath()).Msg("request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
