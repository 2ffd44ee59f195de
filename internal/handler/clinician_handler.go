package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/PittsfordPerformanceCare/ppc-outcome-registry-sub002/internal/repository"
)

type ClinicianHandler struct {
	clinicianRepo *repository.ClinicianRepository
}

func NewClinicianHandler(clinicianRepo *repository.ClinicianRepository) *ClinicianHandler {
	return &ClinicianHandler{clinicianRepo: clinicianRepo}
}

type ClinicianResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// GET /clinicians
func (h *ClinicianHandler) List(c *gin.Context) {
	clinicians, err := h.clinicianRepo.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve clinicians"})
		return
	}

	response := make([]ClinicianResponse, len(clinicians))
	for i, clinician := range clinicians {
		response[i] = ClinicianResponse{
			ID:   clinician.ID.String(),
			Name: clinician.Name,
		}
	}
	c.JSON(http.StatusOK, response)
}
