// README: Trip handlers for create/edit/preview/regenerate/status.
package handlers

import (
	"context"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"voyage/internal/modules/changes"
	"voyage/internal/modules/orchestrator"
	"voyage/internal/trip"
	"voyage/internal/types"
)

type TripHandler struct {
	trips *trip.Store
	orch  *orchestrator.Service
	jobs  orchestrator.JobStore
}

func NewTripHandler(trips *trip.Store, orch *orchestrator.Service, jobs orchestrator.JobStore) *TripHandler {
	return &TripHandler{trips: trips, orch: orch, jobs: jobs}
}

// Create handles POST /api/trips. The snapshot is validated synchronously;
// the full generation run happens in the background.
func (h *TripHandler) Create(c *gin.Context) {
	var payload map[string]any
	if err := c.ShouldBindJSON(&payload); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	snap, err := trip.SnapshotFromAny(payload)
	if err != nil {
		writeTripError(c, err)
		return
	}
	if err := orchestrator.ValidateSnapshot(snap); err != nil {
		writeTripError(c, err)
		return
	}

	tripID := types.ID(uuid.NewString())
	if err := h.trips.Create(c.Request.Context(), tripID, snap); err != nil {
		writeTripError(c, err)
		return
	}

	go h.runInBackground(tripID, snap, nil)
	writeJSON(c, http.StatusAccepted, gin.H{"trip_id": tripID, "status": orchestrator.StatusPending})
}

// Update handles PUT /api/trips/:id. The edited snapshot replaces the stored
// one wholesale; only agents affected by the diff re-run.
func (h *TripHandler) Update(c *gin.Context) {
	tripID := c.Param("id")
	if !isValidID(tripID) {
		writeError(c, http.StatusBadRequest, "invalid trip id")
		return
	}
	var payload map[string]any
	if err := c.ShouldBindJSON(&payload); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	snap, err := trip.SnapshotFromAny(payload)
	if err != nil {
		writeTripError(c, err)
		return
	}
	if err := orchestrator.ValidateSnapshot(snap); err != nil {
		writeTripError(c, err)
		return
	}

	prev, err := h.trips.UpdateSnapshot(c.Request.Context(), types.ID(tripID), snap)
	if err != nil {
		writeTripError(c, err)
		return
	}

	result := changes.DetectChanges(prev, snap)
	if result.HasChanges && len(result.AffectedAgents) > 0 {
		go h.runInBackground(types.ID(tripID), snap, result.AffectedAgents)
	}
	writeJSON(c, http.StatusAccepted, gin.H{"trip_id": tripID, "changes": result})
}

// Preview handles POST /api/trips/:id/preview: change detection against the
// stored snapshot without persisting or executing anything.
func (h *TripHandler) Preview(c *gin.Context) {
	tripID := c.Param("id")
	if !isValidID(tripID) {
		writeError(c, http.StatusBadRequest, "invalid trip id")
		return
	}
	var payload map[string]any
	if err := c.ShouldBindJSON(&payload); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	snap, err := trip.SnapshotFromAny(payload)
	if err != nil {
		writeTripError(c, err)
		return
	}
	current, err := h.trips.Get(c.Request.Context(), types.ID(tripID))
	if err != nil {
		writeTripError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, changes.DetectChanges(current, snap))
}

// Generate handles POST /api/trips/:id/generate: a synchronous full re-run,
// the retry path for failed jobs.
func (h *TripHandler) Generate(c *gin.Context) {
	tripID := c.Param("id")
	if !isValidID(tripID) {
		writeError(c, http.StatusBadRequest, "invalid trip id")
		return
	}
	snap, err := h.trips.Get(c.Request.Context(), types.ID(tripID))
	if err != nil {
		writeTripError(c, err)
		return
	}
	out, err := h.orch.Generate(c.Request.Context(), orchestrator.GenerateCommand{
		TripID:   types.ID(tripID),
		Snapshot: snap,
	})
	if err != nil {
		writeTripError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, out)
}

// Status handles GET /api/trips/:id/status.
func (h *TripHandler) Status(c *gin.Context) {
	tripID := c.Param("id")
	if !isValidID(tripID) {
		writeError(c, http.StatusBadRequest, "invalid trip id")
		return
	}
	if _, err := h.trips.Header(c.Request.Context(), types.ID(tripID)); err != nil {
		writeTripError(c, err)
		return
	}
	status, err := h.jobs.Status(c.Request.Context(), types.ID(tripID))
	if err != nil {
		writeTripError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, gin.H{"trip_id": tripID, "status": status})
}

// runInBackground executes a generation run detached from the request.
// agents nil means a full run.
func (h *TripHandler) runInBackground(tripID types.ID, snap trip.Snapshot, agents []string) {
	ctx := context.Background()
	out, err := h.orch.Generate(ctx, orchestrator.GenerateCommand{TripID: tripID, Snapshot: snap, Agents: agents})
	if err != nil {
		log.Printf("background generation for trip %s: %v", tripID, err)
		_ = h.trips.UpdateStatus(ctx, tripID, trip.StatusFailed)
		return
	}
	status := trip.StatusCompleted
	if len(out.Sections) == 0 && len(out.Errors) > 0 {
		status = trip.StatusFailed
	}
	if err := h.trips.UpdateStatus(ctx, tripID, status); err != nil {
		log.Printf("update trip %s status: %v", tripID, err)
	}
}
