package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/harentsoaR/laskin-api/internal/middleware"
	"github.com/harentsoaR/laskin-api/internal/services"
)

// CreatePatient accepts either a JSON body or a multipart form with the
// patient JSON in "patient" and the consent file in "consent".
func (h *Handler) CreatePatient(c *gin.Context) {
	var req services.RegisterPatientInput

	if isMultipart(c) {
		if err := json.Unmarshal([]byte(c.PostForm("patient")), &req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid patient field"})
			return
		}
		upload, err := formFileDataURL(c, "consent", "image/", "application/pdf")
		if err != nil {
			h.respondError(c, err)
			return
		}
		if upload != nil {
			req.Consent = upload
		}
	} else if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	patient, err := h.Patients.Register(c.Request.Context(), req)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, patient)
}

func (h *Handler) GetPatients(c *gin.Context) {
	c.JSON(http.StatusOK, h.Patients.Search(c.Query("search")))
}

func (h *Handler) GetPatient(c *gin.Context) {
	rec, err := h.Patients.Get(c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, rec)
}

func (h *Handler) AddPatientNote(c *gin.Context) {
	var req struct {
		Content string `json:"content"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	author := ""
	if u := middleware.CurrentUser(c); u != nil {
		author = u.Name
	}
	note, err := h.Patients.AddNote(c.Param("id"), req.Content, author)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, note)
}
