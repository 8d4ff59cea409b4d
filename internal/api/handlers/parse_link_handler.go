package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/dateplanhq/dateplan/backend/internal/linkparse"
	apperrors "github.com/dateplanhq/dateplan/backend/pkg/errors"
)

// ParseLinkHandler handles link-parsing HTTP requests
type ParseLinkHandler struct {
	parser *linkparse.Service
}

// NewParseLinkHandler creates a new parse-link handler
func NewParseLinkHandler(parser *linkparse.Service) *ParseLinkHandler {
	return &ParseLinkHandler{parser: parser}
}

type parseLinkRequest struct {
	URL   string `json:"url"`
	Debug bool   `json:"debug"`
}

// ParseLink handles POST /api/parse-link
func (h *ParseLinkHandler) ParseLink(w http.ResponseWriter, r *http.Request) {
	var req parseLinkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.URL == "" {
		respondWithError(w, http.StatusBadRequest, "URL is required")
		return
	}

	suggestion, err := h.parser.Parse(r.Context(), req.URL, req.Debug)
	if err != nil {
		if appErr, ok := err.(*apperrors.AppError); ok {
			switch appErr.Type {
			case apperrors.ErrorTypeValidation:
				respondWithError(w, http.StatusBadRequest, appErr.Message)
			default:
				respondWithErrorDetails(w, http.StatusInternalServerError, appErr.Message, detailOf(appErr))
			}
			return
		}
		respondWithError(w, http.StatusInternalServerError, "failed to parse link")
		return
	}

	respondWithJSON(w, http.StatusOK, suggestion)
}

func detailOf(appErr *apperrors.AppError) string {
	if appErr.Err != nil {
		return appErr.Err.Error()
	}
	return appErr.Message
}

// Helper functions
func respondWithJSON(w http.ResponseWriter, statusCode int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(payload)
}

func respondWithError(w http.ResponseWriter, statusCode int, message string) {
	respondWithJSON(w, statusCode, map[string]string{
		"error": message,
	})
}

func respondWithErrorDetails(w http.ResponseWriter, statusCode int, message, details string) {
	respondWithJSON(w, statusCode, map[string]string{
		"error":   message,
		"details": details,
	})
}

// respondWithAppError maps an application error to an HTTP status.
func respondWithAppError(w http.ResponseWriter, err error) {
	if appErr, ok := err.(*apperrors.AppError); ok {
		switch appErr.Type {
		case apperrors.ErrorTypeNotFound:
			respondWithError(w, http.StatusNotFound, appErr.Message)
			return
		case apperrors.ErrorTypeValidation:
			respondWithError(w, http.StatusBadRequest, appErr.Message)
			return
		}
	}
	respondWithError(w, http.StatusInternalServerError, "internal server error")
}
