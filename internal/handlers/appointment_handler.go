package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/harentsoaR/laskin-api/internal/middleware"
	"github.com/harentsoaR/laskin-api/internal/models"
	"github.com/harentsoaR/laskin-api/internal/services"
)

// GetAppointments lists the schedule, e.g.
// /api/appointments?startDate=2024-07-01&endDate=2024-07-31&patientId=P789-1234.
// Staff without viewOthersSchedule only see their own appointments.
func (h *Handler) GetAppointments(c *gin.Context) {
	filter := services.AppointmentFilter{PatientID: c.Query("patientId")}

	for param, dst := range map[string]*string{"startDate": &filter.StartDate, "endDate": &filter.EndDate} {
		v := c.Query(param)
		if v == "" {
			continue
		}
		if _, err := time.Parse("2006-01-02", v); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + param + ", use YYYY-MM-DD"})
			return
		}
		*dst = v
	}

	appointments := h.Appointments.List(filter)

	user := middleware.CurrentUser(c)
	if !services.HasPermission(user, models.CategoryAppointmentsAndSchedule, models.PermViewOthersSchedule) {
		own := make([]*models.Appointment, 0, len(appointments))
		for _, a := range appointments {
			if user != nil && a.Professional == user.Name {
				own = append(own, a)
			}
		}
		appointments = own
	}

	c.JSON(http.StatusOK, appointments)
}
