package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/harentsoaR/laskin-api/internal/services"
)

// GetAlerts supports ?search=, ?status= and ?priority= ("Todas" means any).
func (h *Handler) GetAlerts(c *gin.Context) {
	alerts := h.Alerts.List(services.AlertFilter{
		Search:   c.Query("search"),
		Status:   c.Query("status"),
		Priority: c.Query("priority"),
	})
	c.JSON(http.StatusOK, alerts)
}

func (h *Handler) ReviewAlert(c *gin.Context) {
	alert, err := h.Alerts.Review(c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, alert)
}

func (h *Handler) DismissAlert(c *gin.Context) {
	alert, err := h.Alerts.Dismiss(c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, alert)
}
