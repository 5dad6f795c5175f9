package views

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/vanishbin/vanishbin/internal/models"
)

// PasteReadResponse is the JSON shape of a consumed paste.
type PasteReadResponse struct {
	ID             string `json:"id"`
	Content        string `json:"content"`
	CreatedAt      int64  `json:"created_at"`
	ExpiresAt      *int64 `json:"expires_at,omitempty"`
	RemainingViews *int64 `json:"remaining_views,omitempty"`
}

// PasteReadView renders consumed pastes. The default rendering is the raw
// content with metadata in headers, JSON is opt-in through the Accept header.
type PasteReadView struct{}

func NewPasteReadView() PasteReadView {
	return PasteReadView{}
}

func (PasteReadView) Render(w http.ResponseWriter, r *http.Request, paste *models.Paste) {
	if paste.RemainingViews != nil {
		w.Header().Set("x-paste-remaining-views", strconv.FormatInt(*paste.RemainingViews, 10))
	}
	if paste.Expire != nil {
		w.Header().Set("x-paste-expires-at", strconv.FormatInt(paste.Expire.UnixMilli(), 10))
	}

	if r.Header.Get("Accept") == "application/json" {
		resp := PasteReadResponse{
			ID:        paste.ID,
			Content:   string(paste.Content),
			CreatedAt: paste.Created.UnixMilli(),
		}
		if paste.Expire != nil {
			expiresAt := paste.Expire.UnixMilli()
			resp.ExpiresAt = &expiresAt
		}
		if paste.RemainingViews != nil {
			views := *paste.RemainingViews
			resp.RemainingViews = &views
		}
		renderJSON(w, http.StatusOK, resp)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	fmt.Fprintf(w, "%s", paste.Content)
}

func (PasteReadView) RenderError(w http.ResponseWriter, r *http.Request, err error) {
	renderError(w, err)
}
