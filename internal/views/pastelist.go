package views

import (
	"net/http"

	"github.com/vanishbin/vanishbin/internal/models"
)

// PasteListResponse wraps the listed metadata.
type PasteListResponse struct {
	Pastes []PasteMetaResponse `json:"pastes"`
}

// BuildListResponse converts listed metadata to its wire shape. The slice is
// never null in the response, an empty store lists as an empty array.
func BuildListResponse(metas []models.PasteMeta) PasteListResponse {
	resp := PasteListResponse{Pastes: make([]PasteMetaResponse, 0, len(metas))}
	for i := range metas {
		resp.Pastes = append(resp.Pastes, BuildMetaResponse(&metas[i]))
	}
	return resp
}

type PasteListView struct{}

func NewPasteListView() PasteListView {
	return PasteListView{}
}

func (PasteListView) Render(w http.ResponseWriter, r *http.Request, data PasteListResponse) {
	renderJSON(w, http.StatusOK, data)
}

func (PasteListView) RenderError(w http.ResponseWriter, r *http.Request, err error) {
	renderError(w, err)
}
