package api

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/vanishbin/vanishbin/internal/observe"
	"github.com/vanishbin/vanishbin/internal/views"
)

// PasteDeleter is an interface for removing a paste
type PasteDeleter interface {
	DeletePaste(ctx context.Context, id string) (bool, error)
}

// DeleteHandler is an http.Handler implementation which deletes pastes
type DeleteHandler struct {
	parser  GetPasteParser
	store   PasteDeleter
	view    views.View[bool]
	metrics *observe.Metrics
	logger  *slog.Logger
}

// NewDeleteHandler creates a new DeleteHandler
func NewDeleteHandler(
	parser GetPasteParser,
	store PasteDeleter,
	view views.View[bool],
	metrics *observe.Metrics,
	logger *slog.Logger,
) DeleteHandler {
	return DeleteHandler{
		parser:  parser,
		store:   store,
		view:    view,
		metrics: metrics,
		logger:  logger,
	}
}

func (h DeleteHandler) handle(w http.ResponseWriter, r *http.Request) error {
	data, err := h.parser.Parse(r)
	if err != nil {
		return err
	}

	existed, err := h.store.DeletePaste(r.Context(), data.ID)
	if err != nil {
		return err
	}

	if existed {
		h.metrics.PastesDeleted.Inc()
	}
	h.view.Render(w, r, existed)
	return nil
}

// Handle handles http requests to delete a paste
func (h DeleteHandler) Handle(w http.ResponseWriter, r *http.Request) {
	if err := h.handle(w, r); err != nil {
		h.logger.Error("delete paste", "error", err)
		h.view.RenderError(w, r, err)
	}
}
