package handlers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dateplanhq/dateplan/backend/internal/api/handlers"
	"github.com/dateplanhq/dateplan/backend/internal/domain/entities"
	apperrors "github.com/dateplanhq/dateplan/backend/pkg/errors"
)

type stubActivityRepo struct {
	activities map[string]*entities.Activity
	created    []*entities.Activity
}

func newStubActivityRepo() *stubActivityRepo {
	return &stubActivityRepo{activities: map[string]*entities.Activity{}}
}

func (s *stubActivityRepo) Create(ctx context.Context, activity *entities.Activity) error {
	s.activities[activity.ID] = activity
	s.created = append(s.created, activity)
	return nil
}

func (s *stubActivityRepo) GetByID(ctx context.Context, id string) (*entities.Activity, error) {
	if activity, ok := s.activities[id]; ok {
		return activity, nil
	}
	return nil, apperrors.NewNotFoundError("activity not found")
}

func (s *stubActivityRepo) Update(ctx context.Context, activity *entities.Activity) error {
	if _, ok := s.activities[activity.ID]; !ok {
		return apperrors.NewNotFoundError("activity not found")
	}
	s.activities[activity.ID] = activity
	return nil
}

func (s *stubActivityRepo) Delete(ctx context.Context, id string) error {
	if _, ok := s.activities[id]; !ok {
		return apperrors.NewNotFoundError("activity not found")
	}
	delete(s.activities, id)
	return nil
}

func (s *stubActivityRepo) List(ctx context.Context) ([]*entities.Activity, error) {
	result := make([]*entities.Activity, 0, len(s.activities))
	for _, activity := range s.activities {
		result = append(result, activity)
	}
	return result, nil
}

type stubCategoryRepo struct{}

func (s *stubCategoryRepo) List(ctx context.Context) ([]*entities.Category, error) {
	return []*entities.Category{
		{ID: 1, Name: "Food & Dining", Color: "#FF6B6B"},
		{ID: 2, Name: "Outdoor", Color: "#95E1D3"},
	}, nil
}

func TestActivityHandler_CreateActivity(t *testing.T) {
	repo := newStubActivityRepo()
	handler := handlers.NewActivityHandler(repo, &stubCategoryRepo{})

	body := `{"title":"Picnic at the park","category":"Outdoor","estimated_cost":15}`
	req := httptest.NewRequest("POST", "/api/activities", strings.NewReader(body))
	w := httptest.NewRecorder()

	handler.CreateActivity(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	require.Len(t, repo.created, 1)
	assert.NotEmpty(t, repo.created[0].ID)
	// unset excitement defaults to the middle of the scale
	assert.Equal(t, 5, repo.created[0].Excitement)
}

func TestActivityHandler_CreateActivity_RequiresTitle(t *testing.T) {
	repo := newStubActivityRepo()
	handler := handlers.NewActivityHandler(repo, &stubCategoryRepo{})

	req := httptest.NewRequest("POST", "/api/activities", strings.NewReader(`{"category":"Outdoor"}`))
	w := httptest.NewRecorder()

	handler.CreateActivity(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, repo.created)
}

func TestActivityHandler_GetActivity_NotFound(t *testing.T) {
	handler := handlers.NewActivityHandler(newStubActivityRepo(), &stubCategoryRepo{})

	req := httptest.NewRequest("GET", "/api/activities/missing", nil)
	req.SetPathValue("id", "missing")
	w := httptest.NewRecorder()

	handler.GetActivity(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestActivityHandler_UpdateActivity(t *testing.T) {
	repo := newStubActivityRepo()
	repo.activities["a1"] = &entities.Activity{ID: "a1", Title: "Old title"}
	handler := handlers.NewActivityHandler(repo, &stubCategoryRepo{})

	body := `{"title":"New title","excitement":8}`
	req := httptest.NewRequest("PUT", "/api/activities/a1", strings.NewReader(body))
	req.SetPathValue("id", "a1")
	w := httptest.NewRecorder()

	handler.UpdateActivity(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "New title", repo.activities["a1"].Title)
	assert.Equal(t, 8, repo.activities["a1"].Excitement)
}

func TestActivityHandler_DeleteActivity(t *testing.T) {
	repo := newStubActivityRepo()
	repo.activities["a1"] = &entities.Activity{ID: "a1", Title: "Doomed"}
	handler := handlers.NewActivityHandler(repo, &stubCategoryRepo{})

	req := httptest.NewRequest("DELETE", "/api/activities/a1", nil)
	req.SetPathValue("id", "a1")
	w := httptest.NewRecorder()

	handler.DeleteActivity(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, repo.activities)
}

func TestActivityHandler_ListCategories(t *testing.T) {
	handler := handlers.NewActivityHandler(newStubActivityRepo(), &stubCategoryRepo{})

	req := httptest.NewRequest("GET", "/api/activities/categories/all", nil)
	w := httptest.NewRecorder()

	handler.ListCategories(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var categories []entities.Category
	require.NoError(t, json.NewDecoder(w.Body).Decode(&categories))
	assert.Len(t, categories, 2)
	assert.Equal(t, "Food & Dining", categories[0].Name)
}
