package services

import (
	"context"
	"database/sql"
	"time"

	"github.com/vanishbin/vanishbin/internal/models"
)

// PasteManager provides the paste service on top of a SQL database. It holds
// no record state of its own, every call starts from the latest committed
// rows.
type PasteManager struct {
	db    *sql.DB
	model PasteModel
	idgen IDGenerator
	clock Clock
}

// NewPasteManager creates a new PasteManager
func NewPasteManager(db *sql.DB, model PasteModel, idgen IDGenerator, clock Clock) *PasteManager {
	if clock == nil {
		clock = SystemClock{}
	}
	return &PasteManager{
		db:    db,
		model: model,
		idgen: idgen,
		clock: clock,
	}
}

// CreatePaste stores a new paste under a freshly generated identifier. The
// record is visible to readers only once this returns nil.
func (m *PasteManager) CreatePaste(ctx context.Context, content []byte, ttl *time.Duration, maxViews *int64) (*models.PasteMeta, error) {
	id, err := m.idgen.NewID()
	if err != nil {
		return nil, err
	}

	var meta *models.PasteMeta
	err = withTx(ctx, m.db, func(tx *sql.Tx) error {
		meta, err = m.model.CreatePaste(ctx, tx, id, content, m.clock.Now(), ttl, maxViews)
		return err
	})
	if err != nil {
		return nil, err
	}

	return meta, nil
}

// ReadPaste is the consuming read. Expiry is evaluated against the caller
// supplied now, not against the wall clock, and the view budget is spent
// inside the same transaction that read the record.
func (m *PasteManager) ReadPaste(ctx context.Context, id string, now time.Time) (*models.Paste, error) {
	var paste *models.Paste
	err := withTx(ctx, m.db, func(tx *sql.Tx) (err error) {
		paste, err = m.model.ConsumePaste(ctx, tx, id, now)
		return err
	})
	if err != nil {
		return nil, err
	}

	return paste, nil
}

// PasteStats returns the true current state of a paste, dead or alive.
func (m *PasteManager) PasteStats(ctx context.Context, id string) (*models.PasteMeta, error) {
	var meta *models.PasteMeta
	err := withTx(ctx, m.db, func(tx *sql.Tx) (err error) {
		meta, err = m.model.GetPasteMeta(ctx, tx, id)
		return err
	})
	if err != nil {
		return nil, err
	}

	return meta, nil
}

// DeletePaste removes a paste unconditionally and reports whether it existed.
func (m *PasteManager) DeletePaste(ctx context.Context, id string) (bool, error) {
	var existed bool
	err := withTx(ctx, m.db, func(tx *sql.Tx) (err error) {
		existed, err = m.model.DeletePaste(ctx, tx, id)
		return err
	})
	if err != nil {
		return false, err
	}

	return existed, nil
}

// ListPastes returns paste metadata newest first, capped at limit.
func (m *PasteManager) ListPastes(ctx context.Context, limit int) ([]models.PasteMeta, error) {
	var metas []models.PasteMeta
	err := withTx(ctx, m.db, func(tx *sql.Tx) (err error) {
		metas, err = m.model.ListPastes(ctx, tx, limit)
		return err
	})
	if err != nil {
		return nil, err
	}

	return metas, nil
}

// DeleteExpired removes pastes whose expiry is at or before now and returns
// how many rows went away.
func (m *PasteManager) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	var removed int64
	err := withTx(ctx, m.db, func(tx *sql.Tx) (err error) {
		removed, err = m.model.DeleteExpired(ctx, tx, now)
		return err
	})
	if err != nil {
		return 0, err
	}

	return removed, nil
}
