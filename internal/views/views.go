// Package views renders operation results and maps store errors onto http
// status codes. Not available and not found are deliberately the same 404 so
// an expired or exhausted paste is indistinguishable from one that never
// existed.
package views

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/vanishbin/vanishbin/internal/models"
	"github.com/vanishbin/vanishbin/internal/parsers"
)

type View[T any] interface {
	Render(w http.ResponseWriter, r *http.Request, data T)
	RenderError(w http.ResponseWriter, r *http.Request, err error)
}

func renderJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("JSON encode failed", "error", err)
	}
}

func renderError(w http.ResponseWriter, err error) {
	var maxBytesErr *http.MaxBytesError
	switch {
	case errors.Is(err, models.ErrPasteNotAvailable),
		errors.Is(err, models.ErrPasteNotFound):
		http.Error(w, "Not Found", http.StatusNotFound)
	case errors.Is(err, models.ErrDuplicateID):
		http.Error(w, "Conflict", http.StatusConflict)
	case errors.As(err, &maxBytesErr):
		http.Error(w, "Too Large", http.StatusRequestEntityTooLarge)
	case errors.Is(err, parsers.ErrInvalidContent),
		errors.Is(err, parsers.ErrInvalidTTL),
		errors.Is(err, parsers.ErrInvalidMaxViews),
		errors.Is(err, parsers.ErrInvalidID),
		errors.Is(err, parsers.ErrInvalidLimit),
		errors.Is(err, parsers.ErrRequestParse):
		http.Error(w, "Bad Request", http.StatusBadRequest)
	default:
		slog.Error("request failed", "error", err)
		http.Error(w, "Internal Error", http.StatusInternalServerError)
	}
}

// PasteMetaResponse is the wire shape of paste metadata. Timestamps are ms
// epoch integers, absent limits stay absent instead of degrading to zero.
type PasteMetaResponse struct {
	ID             string `json:"id"`
	CreatedAt      int64  `json:"created_at"`
	ExpiresAt      *int64 `json:"expires_at,omitempty"`
	RemainingViews *int64 `json:"remaining_views,omitempty"`
	ContentLength  int64  `json:"content_length"`
}

// BuildMetaResponse converts store metadata to its wire shape.
func BuildMetaResponse(meta *models.PasteMeta) PasteMetaResponse {
	resp := PasteMetaResponse{
		ID:            meta.ID,
		CreatedAt:     meta.Created.UnixMilli(),
		ContentLength: meta.ContentLength,
	}
	if meta.Expire != nil {
		expiresAt := meta.Expire.UnixMilli()
		resp.ExpiresAt = &expiresAt
	}
	if meta.RemainingViews != nil {
		views := *meta.RemainingViews
		resp.RemainingViews = &views
	}
	return resp
}
