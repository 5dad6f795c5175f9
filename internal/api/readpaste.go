package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/vanishbin/vanishbin/internal/models"
	"github.com/vanishbin/vanishbin/internal/observe"
	"github.com/vanishbin/vanishbin/internal/parsers"
	"github.com/vanishbin/vanishbin/internal/services"
	"github.com/vanishbin/vanishbin/internal/views"
)

// GetPasteParser is an interface for extracting the paste id from a request
type GetPasteParser interface {
	Parse(r *http.Request) (*parsers.GetPasteRequestData, error)
}

// PasteReader is an interface for consuming a paste. A successful read spends
// one view.
type PasteReader interface {
	ReadPaste(ctx context.Context, id string, now time.Time) (*models.Paste, error)
}

// ReadHandler is an http.Handler implementation which consumes pastes
type ReadHandler struct {
	parser  GetPasteParser
	store   PasteReader
	view    views.View[*models.Paste]
	clock   services.Clock
	metrics *observe.Metrics
	logger  *slog.Logger
}

// NewReadHandler creates a new ReadHandler
func NewReadHandler(
	parser GetPasteParser,
	store PasteReader,
	view views.View[*models.Paste],
	clock services.Clock,
	metrics *observe.Metrics,
	logger *slog.Logger,
) ReadHandler {
	return ReadHandler{
		parser:  parser,
		store:   store,
		view:    view,
		clock:   clock,
		metrics: metrics,
		logger:  logger,
	}
}

func (h ReadHandler) handle(w http.ResponseWriter, r *http.Request) error {
	data, err := h.parser.Parse(r)
	if err != nil {
		return err
	}

	paste, err := h.store.ReadPaste(r.Context(), data.ID, h.clock.Now())
	if err != nil {
		switch {
		case errors.Is(err, models.ErrPasteNotAvailable):
			h.metrics.PasteReads.WithLabelValues(observe.ReadOutcomeUnavailable).Inc()
		default:
			h.metrics.PasteReads.WithLabelValues(observe.ReadOutcomeError).Inc()
		}
		return err
	}

	h.metrics.PasteReads.WithLabelValues(observe.ReadOutcomeHit).Inc()
	h.view.Render(w, r, paste)
	return nil
}

// Handle handles http requests to read a paste
func (h ReadHandler) Handle(w http.ResponseWriter, r *http.Request) {
	if err := h.handle(w, r); err != nil {
		if !errors.Is(err, models.ErrPasteNotAvailable) {
			h.logger.Error("read paste", "error", err)
		}
		h.view.RenderError(w, r, err)
	}
}
