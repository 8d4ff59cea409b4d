package handlers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dateplanhq/dateplan/backend/internal/api/handlers"
	"github.com/dateplanhq/dateplan/backend/internal/domain/entities"
	apperrors "github.com/dateplanhq/dateplan/backend/pkg/errors"
)

type stubHistoryRepo struct {
	entries map[string]*entities.ActivityHistory
}

func newStubHistoryRepo() *stubHistoryRepo {
	return &stubHistoryRepo{entries: map[string]*entities.ActivityHistory{}}
}

func (s *stubHistoryRepo) Create(ctx context.Context, entry *entities.ActivityHistory) error {
	s.entries[entry.ID] = entry
	return nil
}

func (s *stubHistoryRepo) GetByID(ctx context.Context, id string) (*entities.ActivityHistory, error) {
	if entry, ok := s.entries[id]; ok {
		return entry, nil
	}
	return nil, apperrors.NewNotFoundError("history entry not found")
}

func (s *stubHistoryRepo) Delete(ctx context.Context, id string) error {
	if _, ok := s.entries[id]; !ok {
		return apperrors.NewNotFoundError("history entry not found")
	}
	delete(s.entries, id)
	return nil
}

func (s *stubHistoryRepo) List(ctx context.Context) ([]*entities.ActivityHistory, error) {
	result := make([]*entities.ActivityHistory, 0, len(s.entries))
	for _, entry := range s.entries {
		result = append(result, entry)
	}
	return result, nil
}

func TestHistoryHandler_CreateHistory(t *testing.T) {
	repo := newStubHistoryRepo()
	handler := handlers.NewHistoryHandler(repo, newStubActivityRepo())

	body := `{"title":"Wine tasting","event_start_date":"2026-08-20T18:00:00Z","event_end_date":"2026-08-20T21:00:00Z"}`
	req := httptest.NewRequest("POST", "/api/history", strings.NewReader(body))
	w := httptest.NewRecorder()

	handler.CreateHistory(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	require.Len(t, repo.entries, 1)
	for _, entry := range repo.entries {
		assert.False(t, entry.CompletedDate.IsZero(), "completed date defaults to now")
	}
}

func TestHistoryHandler_CreateHistory_RequiresTitleAndDates(t *testing.T) {
	repo := newStubHistoryRepo()
	handler := handlers.NewHistoryHandler(repo, newStubActivityRepo())

	req := httptest.NewRequest("POST", "/api/history", strings.NewReader(`{"title":"No dates"}`))
	w := httptest.NewRecorder()

	handler.CreateHistory(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, repo.entries)
}

func TestHistoryHandler_MoveToIdeas(t *testing.T) {
	repo := newStubHistoryRepo()
	repo.entries["h1"] = &entities.ActivityHistory{
		ID:            "h1",
		Title:         "Sunset kayaking",
		Description:   "Great evening on the water",
		Category:      "Outdoor",
		Location:      "Marina del Rey",
		Duration:      180,
		EstimatedCost: 45,
		Excitement:    8,
		CompletedDate: time.Now(),
	}
	activityRepo := newStubActivityRepo()
	handler := handlers.NewHistoryHandler(repo, activityRepo)

	req := httptest.NewRequest("POST", "/api/history/h1/move-to-ideas", nil)
	req.SetPathValue("id", "h1")
	w := httptest.NewRecorder()

	handler.MoveToIdeas(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	require.Len(t, activityRepo.created, 1)

	restored := activityRepo.created[0]
	assert.Equal(t, "Sunset kayaking", restored.Title)
	assert.Equal(t, "Outdoor", restored.Category)
	assert.Equal(t, 8, restored.Excitement)
	assert.NotEqual(t, "h1", restored.ID)

	// the history entry itself stays put
	assert.Contains(t, repo.entries, "h1")

	var response map[string]interface{}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
	assert.Contains(t, response, "activity")
}

func TestHistoryHandler_MoveToIdeas_NotFound(t *testing.T) {
	handler := handlers.NewHistoryHandler(newStubHistoryRepo(), newStubActivityRepo())

	req := httptest.NewRequest("POST", "/api/history/missing/move-to-ideas", nil)
	req.SetPathValue("id", "missing")
	w := httptest.NewRecorder()

	handler.MoveToIdeas(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHistoryHandler_DeleteHistory(t *testing.T) {
	repo := newStubHistoryRepo()
	repo.entries["h1"] = &entities.ActivityHistory{ID: "h1", Title: "Done"}
	handler := handlers.NewHistoryHandler(repo, newStubActivityRepo())

	req := httptest.NewRequest("DELETE", "/api/history/h1", nil)
	req.SetPathValue("id", "h1")
	w := httptest.NewRecorder()

	handler.DeleteHistory(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, repo.entries)
}
