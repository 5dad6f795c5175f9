package views

import (
	"net/http"
)

type PasteStatsView struct{}

func NewPasteStatsView() PasteStatsView {
	return PasteStatsView{}
}

func (PasteStatsView) Render(w http.ResponseWriter, r *http.Request, data PasteMetaResponse) {
	renderJSON(w, http.StatusOK, data)
}

func (PasteStatsView) RenderError(w http.ResponseWriter, r *http.Request, err error) {
	renderError(w, err)
}
