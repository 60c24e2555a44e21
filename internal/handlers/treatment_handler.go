package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/harentsoaR/laskin-api/internal/services"
)

// CreateTreatment accepts a JSON body, or a multipart form with the
// treatment JSON in "treatment" and optional "beforeImage"/"afterImage" files.
func (h *Handler) CreateTreatment(c *gin.Context) {
	var req services.RegisterTreatmentInput

	if isMultipart(c) {
		if err := json.Unmarshal([]byte(c.PostForm("treatment")), &req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid treatment field"})
			return
		}
		for field, dst := range map[string]*string{"beforeImage": &req.BeforeImage, "afterImage": &req.AfterImage} {
			upload, err := formFileDataURL(c, field, "image/")
			if err != nil {
				h.respondError(c, err)
				return
			}
			if upload != nil {
				*dst = upload.DataURL
			}
		}
	} else if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	treatment, err := h.Treatments.Register(c.Request.Context(), req)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, treatment)
}

func (h *Handler) GetTreatments(c *gin.Context) {
	c.JSON(http.StatusOK, h.Treatments.List(c.Query("search")))
}
