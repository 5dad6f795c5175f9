package views

import (
	"net/http"

	"github.com/vanishbin/vanishbin/internal/models"
)

type PasteDeleteView struct{}

func NewPasteDeleteView() PasteDeleteView {
	return PasteDeleteView{}
}

// Render answers 204 when a record was removed. A missing record renders
// through RenderError as 404 so delete stays idempotent at the store level
// while the http caller still learns nothing happened.
func (PasteDeleteView) Render(w http.ResponseWriter, r *http.Request, existed bool) {
	if !existed {
		renderError(w, models.ErrPasteNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (PasteDeleteView) RenderError(w http.ResponseWriter, r *http.Request, err error) {
	renderError(w, err)
}
