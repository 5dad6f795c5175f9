package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/vanishbin/vanishbin/internal/models"
	"github.com/vanishbin/vanishbin/internal/observe"
	"github.com/vanishbin/vanishbin/internal/parsers"
	"github.com/vanishbin/vanishbin/internal/views"
)

// CreatePasteParser is an interface for parsing the create paste request
type CreatePasteParser interface {
	Parse(r *http.Request) (*parsers.CreatePasteRequestData, error)
}

// PasteCreator is an interface for creating pastes
type PasteCreator interface {
	CreatePaste(ctx context.Context, content []byte, ttl *time.Duration, maxViews *int64) (*models.PasteMeta, error)
}

// CreateHandler is an http.Handler implementation which creates pastes
type CreateHandler struct {
	maxDataSize int64
	parser      CreatePasteParser
	store       PasteCreator
	view        views.View[views.PasteCreatedResponse]
	metrics     *observe.Metrics
	logger      *slog.Logger
}

// NewCreateHandler creates a new CreateHandler
func NewCreateHandler(
	maxDataSize int64,
	parser CreatePasteParser,
	store PasteCreator,
	view views.View[views.PasteCreatedResponse],
	metrics *observe.Metrics,
	logger *slog.Logger,
) CreateHandler {
	return CreateHandler{
		maxDataSize: maxDataSize,
		parser:      parser,
		store:       store,
		view:        view,
		metrics:     metrics,
		logger:      logger,
	}
}

func (c CreateHandler) handle(w http.ResponseWriter, r *http.Request) error {
	if c.maxDataSize > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, c.maxDataSize)
	}

	data, err := c.parser.Parse(r)
	if err != nil {
		return err
	}

	meta, err := c.store.CreatePaste(r.Context(), data.Content, data.TTL, data.MaxViews)
	if err != nil {
		return err
	}

	c.metrics.PastesCreated.Inc()
	c.view.Render(w, r, views.BuildCreatedResponse(meta))
	return nil
}

// Handle handles http requests to create a paste
func (c CreateHandler) Handle(w http.ResponseWriter, r *http.Request) {
	if err := c.handle(w, r); err != nil {
		c.logger.Error("create paste", "error", err)
		c.view.RenderError(w, r, err)
	}
}
