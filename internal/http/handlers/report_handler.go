// README: Report handlers for aggregated report and single-section reads.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"voyage/internal/modules/report"
	"voyage/internal/types"
)

type ReportHandler struct {
	reports *report.Service
}

func NewReportHandler(svc *report.Service) *ReportHandler {
	return &ReportHandler{reports: svc}
}

// GetReport handles GET /api/trips/:id/report.
func (h *ReportHandler) GetReport(c *gin.Context) {
	tripID := c.Param("id")
	if !isValidID(tripID) {
		writeError(c, http.StatusBadRequest, "invalid trip id")
		return
	}
	rep, err := h.reports.AggregateReport(c.Request.Context(), types.ID(tripID))
	if err != nil {
		writeTripError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, rep)
}

// GetSection handles GET /api/trips/:id/report/:section.
func (h *ReportHandler) GetSection(c *gin.Context) {
	tripID := c.Param("id")
	if !isValidID(tripID) {
		writeError(c, http.StatusBadRequest, "invalid trip id")
		return
	}
	section, err := h.reports.GetSection(c.Request.Context(), types.ID(tripID), c.Param("section"))
	if err != nil {
		writeTripError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, section)
}
