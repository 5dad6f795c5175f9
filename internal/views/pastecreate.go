package views

import (
	"net/http"

	"github.com/vanishbin/vanishbin/internal/models"
)

// PasteCreatedResponse is returned after a successful create.
type PasteCreatedResponse struct {
	ID             string `json:"id"`
	CreatedAt      int64  `json:"created_at"`
	ExpiresAt      *int64 `json:"expires_at,omitempty"`
	RemainingViews *int64 `json:"remaining_views,omitempty"`
}

// BuildCreatedResponse converts the stored metadata of a fresh paste.
func BuildCreatedResponse(meta *models.PasteMeta) PasteCreatedResponse {
	resp := PasteCreatedResponse{
		ID:        meta.ID,
		CreatedAt: meta.Created.UnixMilli(),
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

type PasteCreateView struct{}

func NewPasteCreateView() PasteCreateView {
	return PasteCreateView{}
}

func (PasteCreateView) Render(w http.ResponseWriter, r *http.Request, data PasteCreatedResponse) {
	renderJSON(w, http.StatusCreated, data)
}

func (PasteCreateView) RenderError(w http.ResponseWriter, r *http.Request, err error) {
	renderError(w, err)
}
