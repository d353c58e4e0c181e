package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"salespipeline/internal/models"
	"salespipeline/internal/services"
)

type ReportHandler struct {
	Service *services.LeadService
}

func NewReportHandler(service *services.LeadService) *ReportHandler {
	return &ReportHandler{Service: service}
}

type StageCount struct {
	Stage models.Stage `json:"stage"`
	Leads int          `json:"leads"`
}

// @Summary      Pipeline summary
// @Description  Lead counts per stage in pipeline order.
// @Tags         Reports
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Security     BearerAuth
// @Router       /reports/summary [get]
func (h *ReportHandler) GetSummary(c *gin.Context) {
	counts, err := h.Service.Summary(c.Request.Context())
	if err != nil {
		respondError(c, "reports][summary", err)
		return
	}
	stages := make([]StageCount, 0, len(models.Stages))
	total := 0
	for _, s := range models.Stages {
		stages = append(stages, StageCount{Stage: s, Leads: counts[s]})
		total += counts[s]
	}
	c.JSON(http.StatusOK, gin.H{"total": total, "stages": stages})
}
