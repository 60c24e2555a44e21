package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/harentsoaR/laskin-api/internal/models"
	"github.com/harentsoaR/laskin-api/internal/services"
)

func (h *Handler) GetClinicConfig(c *gin.Context) {
	c.JSON(http.StatusOK, h.Clinic.Get())
}

// UpdateClinicConfig merges the provided keys into the configuration.
func (h *Handler) UpdateClinicConfig(c *gin.Context) {
	var patch models.ClinicConfigPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	c.JSON(http.StatusOK, h.Clinic.Update(patch))
}

func (h *Handler) UploadClinicLogo(c *gin.Context) {
	upload, err := formFileDataURL(c, "logo", "image/")
	if err != nil {
		h.respondError(c, err)
		return
	}
	if upload == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "logo file required"})
		return
	}
	cfg := h.Clinic.Update(models.ClinicConfigPatch{Logo: models.SomeString(upload.DataURL)})
	c.JSON(http.StatusOK, cfg)
}

func (h *Handler) GetRoles(c *gin.Context) {
	c.JSON(http.StatusOK, h.Roles.ListRoles())
}

// UpdateRolePermissions replaces a role's permissions for the template and
// every user holding that role.
func (h *Handler) UpdateRolePermissions(c *gin.Context) {
	var perms models.UserPermissions
	if err := c.ShouldBindJSON(&perms); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	roleType := c.Param("roleType")
	updated, err := h.Roles.UpdateRolePermissions(roleType, perms)
	if err != nil {
		if errors.Is(err, services.ErrRoleTemplateNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error(), "usersUpdated": updated})
			return
		}
		h.respondError(c, err)
		return
	}

	role, err := h.Roles.Role(roleType)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":      "Permisos actualizados correctamente para todos los usuarios del rol",
		"usersUpdated": updated,
		"role":         role,
	})
}
