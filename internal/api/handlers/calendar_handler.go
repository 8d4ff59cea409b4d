package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/dateplanhq/dateplan/backend/internal/domain/entities"
	"github.com/dateplanhq/dateplan/backend/internal/domain/repositories"
)

// CalendarHandler handles calendar event HTTP requests
type CalendarHandler struct {
	calendarRepo repositories.CalendarRepository
}

// NewCalendarHandler creates a new calendar handler
func NewCalendarHandler(calendarRepo repositories.CalendarRepository) *CalendarHandler {
	return &CalendarHandler{calendarRepo: calendarRepo}
}

// ListEvents handles GET /api/calendar
func (h *CalendarHandler) ListEvents(w http.ResponseWriter, r *http.Request) {
	filter := repositories.EventFilter{}
	if start := r.URL.Query().Get("start"); start != "" {
		if t, err := time.Parse(time.RFC3339, start); err == nil {
			filter.Start = &t
		}
	}
	if end := r.URL.Query().Get("end"); end != "" {
		if t, err := time.Parse(time.RFC3339, end); err == nil {
			filter.End = &t
		}
	}

	events, err := h.calendarRepo.List(r.Context(), filter)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "failed to list calendar events")
		return
	}

	respondWithJSON(w, http.StatusOK, events)
}

// GetEvent handles GET /api/calendar/{id}
func (h *CalendarHandler) GetEvent(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		respondWithError(w, http.StatusBadRequest, "event ID is required")
		return
	}

	event, err := h.calendarRepo.GetByID(r.Context(), id)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, event)
}

// CreateEvent handles POST /api/calendar
func (h *CalendarHandler) CreateEvent(w http.ResponseWriter, r *http.Request) {
	var event entities.CalendarEvent
	if err := json.NewDecoder(r.Body).Decode(&event); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if event.Title == "" || event.StartDate.IsZero() || event.EndDate.IsZero() {
		respondWithError(w, http.StatusBadRequest, "title, start_date and end_date are required")
		return
	}

	event.ID = uuid.New().String()
	if err := h.calendarRepo.Create(r.Context(), &event); err != nil {
		respondWithError(w, http.StatusInternalServerError, "failed to create calendar event")
		return
	}

	created, err := h.calendarRepo.GetByID(r.Context(), event.ID)
	if err != nil {
		respondWithJSON(w, http.StatusCreated, event)
		return
	}

	respondWithJSON(w, http.StatusCreated, created)
}

// UpdateEvent handles PUT /api/calendar/{id}
func (h *CalendarHandler) UpdateEvent(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		respondWithError(w, http.StatusBadRequest, "event ID is required")
		return
	}

	var event entities.CalendarEvent
	if err := json.NewDecoder(r.Body).Decode(&event); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if event.Title == "" || event.StartDate.IsZero() || event.EndDate.IsZero() {
		respondWithError(w, http.StatusBadRequest, "title, start_date and end_date are required")
		return
	}

	event.ID = id
	if err := h.calendarRepo.Update(r.Context(), &event); err != nil {
		respondWithAppError(w, err)
		return
	}

	updated, err := h.calendarRepo.GetByID(r.Context(), id)
	if err != nil {
		respondWithJSON(w, http.StatusOK, event)
		return
	}

	respondWithJSON(w, http.StatusOK, updated)
}

// DeleteEvent handles DELETE /api/calendar/{id}
func (h *CalendarHandler) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		respondWithError(w, http.StatusBadRequest, "event ID is required")
		return
	}

	if err := h.calendarRepo.Delete(r.Context(), id); err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]string{
		"message": "calendar event deleted successfully",
	})
}

type completeEventRequest struct {
	Completed bool `json:"completed"`
}

// CompleteEvent handles PATCH /api/calendar/{id}/complete
func (h *CalendarHandler) CompleteEvent(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		respondWithError(w, http.StatusBadRequest, "event ID is required")
		return
	}

	var req completeEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.calendarRepo.SetCompleted(r.Context(), id, req.Completed); err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"message":   "calendar event updated successfully",
		"completed": req.Completed,
	})
}
