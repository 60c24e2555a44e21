package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (h *Handler) GetDashboard(c *gin.Context) {
	c.JSON(http.StatusOK, h.Dashboard.Summary())
}
