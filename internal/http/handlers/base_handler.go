// README: Base handler utilities (JSON helpers, error mapping).
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"voyage/internal/modules/orchestrator"
	"voyage/internal/modules/report"
	"voyage/internal/trip"
)

type errorResponse struct {
	Error string `json:"error"`
}

// isValidID ensures trip IDs are well-formed UUIDs (matches the generator).
func isValidID(v string) bool {
	_, err := uuid.Parse(v)
	return err == nil
}

func writeJSON(c *gin.Context, status int, v any) {
	c.JSON(status, v)
}

func writeError(c *gin.Context, status int, msg string) {
	writeJSON(c, status, errorResponse{Error: msg})
}

func writeTripError(c *gin.Context, err error) {
	var vErr *orchestrator.ValidationError
	switch {
	case errors.As(err, &vErr):
		writeError(c, http.StatusBadRequest, vErr.Error())
	case errors.Is(err, trip.ErrNotFound), errors.Is(err, report.ErrNotFound), errors.Is(err, report.ErrSectionNotFound):
		writeError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, orchestrator.ErrRunInProgress):
		writeError(c, http.StatusConflict, err.Error())
	case errors.Is(err, orchestrator.ErrUnknownAgent), errors.Is(err, trip.ErrBadSnapshot):
		writeError(c, http.StatusBadRequest, err.Error())
	default:
		writeError(c, http.StatusInternalServerError, "internal error")
	}
}
