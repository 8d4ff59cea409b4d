package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"

	"github.com/dateplanhq/dateplan/backend/internal/domain/entities"
	"github.com/dateplanhq/dateplan/backend/internal/domain/repositories"
)

// ActivityHandler handles activity-related HTTP requests
type ActivityHandler struct {
	activityRepo repositories.ActivityRepository
	categoryRepo repositories.CategoryRepository
}

// NewActivityHandler creates a new activity handler
func NewActivityHandler(activityRepo repositories.ActivityRepository, categoryRepo repositories.CategoryRepository) *ActivityHandler {
	return &ActivityHandler{
		activityRepo: activityRepo,
		categoryRepo: categoryRepo,
	}
}

// ListActivities handles GET /api/activities
func (h *ActivityHandler) ListActivities(w http.ResponseWriter, r *http.Request) {
	activities, err := h.activityRepo.List(r.Context())
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "failed to list activities")
		return
	}

	respondWithJSON(w, http.StatusOK, activities)
}

// GetActivity handles GET /api/activities/{id}
func (h *ActivityHandler) GetActivity(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		respondWithError(w, http.StatusBadRequest, "activity ID is required")
		return
	}

	activity, err := h.activityRepo.GetByID(r.Context(), id)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, activity)
}

// CreateActivity handles POST /api/activities
func (h *ActivityHandler) CreateActivity(w http.ResponseWriter, r *http.Request) {
	var activity entities.Activity
	if err := json.NewDecoder(r.Body).Decode(&activity); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if activity.Title == "" {
		respondWithError(w, http.StatusBadRequest, "title is required")
		return
	}

	activity.ID = uuid.New().String()
	if activity.Excitement == 0 {
		activity.Excitement = 5
	}

	if err := h.activityRepo.Create(r.Context(), &activity); err != nil {
		respondWithError(w, http.StatusInternalServerError, "failed to create activity")
		return
	}

	created, err := h.activityRepo.GetByID(r.Context(), activity.ID)
	if err != nil {
		respondWithJSON(w, http.StatusCreated, activity)
		return
	}

	respondWithJSON(w, http.StatusCreated, created)
}

// UpdateActivity handles PUT /api/activities/{id}
func (h *ActivityHandler) UpdateActivity(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		respondWithError(w, http.StatusBadRequest, "activity ID is required")
		return
	}

	var activity entities.Activity
	if err := json.NewDecoder(r.Body).Decode(&activity); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if activity.Title == "" {
		respondWithError(w, http.StatusBadRequest, "title is required")
		return
	}

	activity.ID = id
	if err := h.activityRepo.Update(r.Context(), &activity); err != nil {
		respondWithAppError(w, err)
		return
	}

	updated, err := h.activityRepo.GetByID(r.Context(), id)
	if err != nil {
		respondWithJSON(w, http.StatusOK, activity)
		return
	}

	respondWithJSON(w, http.StatusOK, updated)
}

// DeleteActivity handles DELETE /api/activities/{id}
func (h *ActivityHandler) DeleteActivity(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		respondWithError(w, http.StatusBadRequest, "activity ID is required")
		return
	}

	if err := h.activityRepo.Delete(r.Context(), id); err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]string{
		"message": "activity deleted successfully",
	})
}

// ListCategories handles GET /api/activities/categories/all
func (h *ActivityHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.categoryRepo.List(r.Context())
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "failed to list categories")
		return
	}

	respondWithJSON(w, http.StatusOK, categories)
}
