package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/dateplanhq/dateplan/backend/internal/domain/entities"
	"github.com/dateplanhq/dateplan/backend/internal/domain/repositories"
)

// HistoryHandler handles activity-history HTTP requests
type HistoryHandler struct {
	historyRepo  repositories.HistoryRepository
	activityRepo repositories.ActivityRepository
}

// NewHistoryHandler creates a new history handler
func NewHistoryHandler(historyRepo repositories.HistoryRepository, activityRepo repositories.ActivityRepository) *HistoryHandler {
	return &HistoryHandler{
		historyRepo:  historyRepo,
		activityRepo: activityRepo,
	}
}

// ListHistory handles GET /api/history
func (h *HistoryHandler) ListHistory(w http.ResponseWriter, r *http.Request) {
	entries, err := h.historyRepo.List(r.Context())
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "failed to list history")
		return
	}

	respondWithJSON(w, http.StatusOK, entries)
}

// GetHistory handles GET /api/history/{id}
func (h *HistoryHandler) GetHistory(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		respondWithError(w, http.StatusBadRequest, "history ID is required")
		return
	}

	entry, err := h.historyRepo.GetByID(r.Context(), id)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, entry)
}

// CreateHistory handles POST /api/history
func (h *HistoryHandler) CreateHistory(w http.ResponseWriter, r *http.Request) {
	var entry entities.ActivityHistory
	if err := json.NewDecoder(r.Body).Decode(&entry); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if entry.Title == "" || entry.EventStartDate.IsZero() || entry.EventEndDate.IsZero() {
		respondWithError(w, http.StatusBadRequest, "title, event_start_date and event_end_date are required")
		return
	}

	entry.ID = uuid.New().String()
	if entry.CompletedDate.IsZero() {
		entry.CompletedDate = time.Now().UTC()
	}

	if err := h.historyRepo.Create(r.Context(), &entry); err != nil {
		respondWithError(w, http.StatusInternalServerError, "failed to create history entry")
		return
	}

	created, err := h.historyRepo.GetByID(r.Context(), entry.ID)
	if err != nil {
		respondWithJSON(w, http.StatusCreated, entry)
		return
	}

	respondWithJSON(w, http.StatusCreated, created)
}

// DeleteHistory handles DELETE /api/history/{id}
func (h *HistoryHandler) DeleteHistory(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		respondWithError(w, http.StatusBadRequest, "history ID is required")
		return
	}

	if err := h.historyRepo.Delete(r.Context(), id); err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]string{
		"message": "history entry deleted successfully",
	})
}

// MoveToIdeas handles POST /api/history/{id}/move-to-ideas. It restores a
// completed activity's snapshot as a fresh activity without touching the
// history entry.
func (h *HistoryHandler) MoveToIdeas(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		respondWithError(w, http.StatusBadRequest, "history ID is required")
		return
	}

	entry, err := h.historyRepo.GetByID(r.Context(), id)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	activity := &entities.Activity{
		ID:            uuid.New().String(),
		Title:         entry.Title,
		Description:   entry.Description,
		Category:      entry.Category,
		Location:      entry.Location,
		Duration:      entry.Duration,
		URL:           entry.URL,
		ImageURL:      entry.ImageURL,
		EstimatedCost: entry.EstimatedCost,
		Excitement:    entry.Excitement,
	}

	if err := h.activityRepo.Create(r.Context(), activity); err != nil {
		respondWithError(w, http.StatusInternalServerError, "failed to restore activity")
		return
	}

	created, err := h.activityRepo.GetByID(r.Context(), activity.ID)
	if err != nil {
		created = activity
	}

	respondWithJSON(w, http.StatusCreated, map[string]interface{}{
		"message":  "activity moved back to ideas successfully",
		"activity": created,
	})
}
