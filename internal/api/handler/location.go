package handler

import (
	"net/http"

	"github.com/skycast/skycast/internal/api/response"
	"github.com/skycast/skycast/internal/location"
	"github.com/skycast/skycast/internal/widget"
)

// LocationHandler serves search suggestions.
type LocationHandler struct {
	controller *widget.Controller
}

// NewLocationHandler creates a new LocationHandler.
func NewLocationHandler(controller *widget.Controller) *LocationHandler {
	return &LocationHandler{controller: controller}
}

// suggestionsResponse wraps the suggestion list.
type suggestionsResponse struct {
	Suggestions []location.Suggestion `json:"suggestions"`
}

// Suggest handles GET /v1/locations/suggest?q=<partial>.
// Always responds 200; an unusable or unmatched query yields an empty list so
// the type-ahead dropdown simply stays closed.
func (h *LocationHandler) Suggest(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	suggestions := h.controller.Suggest(r.Context(), q)
	if suggestions == nil {
		suggestions = []location.Suggestion{}
	}
	response.JSON(w, r, http.StatusOK, suggestionsResponse{Suggestions: suggestions})
}
