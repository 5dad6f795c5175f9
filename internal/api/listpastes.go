package api

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/vanishbin/vanishbin/internal/models"
	"github.com/vanishbin/vanishbin/internal/parsers"
	"github.com/vanishbin/vanishbin/internal/views"
)

// ListPastesParser is an interface for parsing the list request
type ListPastesParser interface {
	Parse(r *http.Request) (*parsers.ListPastesRequestData, error)
}

// PasteLister is an interface for listing paste metadata newest first
type PasteLister interface {
	ListPastes(ctx context.Context, limit int) ([]models.PasteMeta, error)
}

// ListHandler is an http.Handler implementation which lists pastes
type ListHandler struct {
	parser ListPastesParser
	store  PasteLister
	view   views.View[views.PasteListResponse]
	logger *slog.Logger
}

// NewListHandler creates a new ListHandler
func NewListHandler(
	parser ListPastesParser,
	store PasteLister,
	view views.View[views.PasteListResponse],
	logger *slog.Logger,
) ListHandler {
	return ListHandler{
		parser: parser,
		store:  store,
		view:   view,
		logger: logger,
	}
}

func (h ListHandler) handle(w http.ResponseWriter, r *http.Request) error {
	data, err := h.parser.Parse(r)
	if err != nil {
		return err
	}

	metas, err := h.store.ListPastes(r.Context(), data.Limit)
	if err != nil {
		return err
	}

	h.view.Render(w, r, views.BuildListResponse(metas))
	return nil
}

// Handle handles http requests to list pastes
func (h ListHandler) Handle(w http.ResponseWriter, r *http.Request) {
	if err := h.handle(w, r); err != nil {
		h.logger.Error("list pastes", "error", err)
		h.view.RenderError(w, r, err)
	}
}
