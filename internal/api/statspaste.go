package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/vanishbin/vanishbin/internal/models"
	"github.com/vanishbin/vanishbin/internal/views"
)

// PasteStater is an interface for inspecting a paste without consuming it
type PasteStater interface {
	PasteStats(ctx context.Context, id string) (*models.PasteMeta, error)
}

// StatsHandler is an http.Handler implementation which reports paste metadata.
// It never spends a view and reports expired and exhausted pastes as they are.
type StatsHandler struct {
	parser GetPasteParser
	store  PasteStater
	view   views.View[views.PasteMetaResponse]
	logger *slog.Logger
}

// NewStatsHandler creates a new StatsHandler
func NewStatsHandler(
	parser GetPasteParser,
	store PasteStater,
	view views.View[views.PasteMetaResponse],
	logger *slog.Logger,
) StatsHandler {
	return StatsHandler{
		parser: parser,
		store:  store,
		view:   view,
		logger: logger,
	}
}

func (h StatsHandler) handle(w http.ResponseWriter, r *http.Request) error {
	data, err := h.parser.Parse(r)
	if err != nil {
		return err
	}

	meta, err := h.store.PasteStats(r.Context(), data.ID)
	if err != nil {
		return err
	}

	h.view.Render(w, r, views.BuildMetaResponse(meta))
	return nil
}

// Handle handles http requests for paste metadata
func (h StatsHandler) Handle(w http.ResponseWriter, r *http.Request) {
	if err := h.handle(w, r); err != nil {
		if !errors.Is(err, models.ErrPasteNotFound) {
			h.logger.Error("paste stats", "error", err)
		}
		h.view.RenderError(w, r, err)
	}
}
