package services

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/vanishbin/vanishbin/internal/models"
)

// ErrStore wraps transport and transaction failures of the backing medium.
// Callers may retry, the failed operation was rolled back and never partially
// applied.
var ErrStore = errors.New("paste store failure")

// PasteModel is the interface for the paste model. All methods run inside the
// transaction they receive.
type PasteModel interface {
	CreatePaste(ctx context.Context, tx *sql.Tx, id string, content []byte, now time.Time, ttl *time.Duration, maxViews *int64) (*models.PasteMeta, error)
	ConsumePaste(ctx context.Context, tx *sql.Tx, id string, now time.Time) (*models.Paste, error)
	GetPasteMeta(ctx context.Context, tx *sql.Tx, id string) (*models.PasteMeta, error)
	DeletePaste(ctx context.Context, tx *sql.Tx, id string) (bool, error)
	ListPastes(ctx context.Context, tx *sql.Tx, limit int) ([]models.PasteMeta, error)
	DeleteExpired(ctx context.Context, tx *sql.Tx, now time.Time) (int64, error)
}

// IDGenerator produces fresh opaque paste identifiers. Uniqueness is a
// convention of the generator, the store still rejects collisions with
// models.ErrDuplicateID as a safety net.
type IDGenerator interface {
	NewID() (string, error)
}

// PasteStore is the boundary the presentation layer talks to. Every backend
// variant implements it with the same semantics:
//
//   - ReadPaste spends one view of a limited paste and reports absent,
//     expired and exhausted pastes uniformly as models.ErrPasteNotAvailable.
//   - PasteStats and ListPastes never mutate and never filter, dead pastes
//     stay visible until deleted.
//   - DeletePaste is idempotent and returns whether a record existed.
type PasteStore interface {
	CreatePaste(ctx context.Context, content []byte, ttl *time.Duration, maxViews *int64) (*models.PasteMeta, error)
	ReadPaste(ctx context.Context, id string, now time.Time) (*models.Paste, error)
	PasteStats(ctx context.Context, id string) (*models.PasteMeta, error)
	DeletePaste(ctx context.Context, id string) (bool, error)
	ListPastes(ctx context.Context, limit int) ([]models.PasteMeta, error)
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}
