package models

import (
	"context"
	"database/sql"
	"errors"
	"time"

	// importing pq also registers the postgresql driver
	"github.com/lib/pq"
)

var ErrPasteNotFound = errors.New("paste not found")
var ErrPasteNotAvailable = errors.New("paste not available")
var ErrDuplicateID = errors.New("paste id already exists")
var ErrCreatePaste = errors.New("failed to create paste")

// pq unique_violation
const uniqueViolation = "23505"

// PasteMeta is the metadata of a paste without its content.
//
// Expire and RemainingViews are nil when the paste has no expiry or no view
// budget. A nil never means zero: a paste with zero views left carries a
// non-nil RemainingViews pointing at 0.
type PasteMeta struct {
	ID             string
	Created        time.Time
	Expire         *time.Time
	RemainingViews *int64
	ContentLength  int64
}

// Expired reports whether the paste is past its expiry at the given time.
func (m PasteMeta) Expired(now time.Time) bool {
	return m.Expire != nil && now.UnixMilli() >= m.Expire.UnixMilli()
}

// Paste is a full paste record as returned by a consuming read.
type Paste struct {
	PasteMeta
	Content []byte
}

// PasteModel implements the pastes table operations. Every method runs its
// statements on the transaction it receives, the caller owns commit and
// rollback.
type PasteModel struct {
}

// CreatePaste inserts a new paste. The expiry is computed once here, from the
// caller supplied now, and never re-evaluated on writes. A ttl of nil means
// the paste never expires by time, a maxViews of nil means unlimited views.
func (m *PasteModel) CreatePaste(ctx context.Context, tx *sql.Tx, id string, content []byte, now time.Time, ttl *time.Duration, maxViews *int64) (*PasteMeta, error) {
	meta := &PasteMeta{
		ID:            id,
		Created:       now,
		ContentLength: int64(len(content)),
	}

	var expiresAt sql.NullInt64
	if ttl != nil {
		expire := now.Add(*ttl)
		expiresAt = sql.NullInt64{Int64: expire.UnixMilli(), Valid: true}
		meta.Expire = &expire
	}

	var remainingViews sql.NullInt64
	if maxViews != nil {
		views := *maxViews
		remainingViews = sql.NullInt64{Int64: views, Valid: true}
		meta.RemainingViews = &views
	}

	res, err := tx.ExecContext(ctx,
		"INSERT INTO pastes (id, content, created_at, expires_at, remaining_views) VALUES ($1, $2, $3, $4, $5)",
		id, content, now.UnixMilli(), expiresAt, remainingViews)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return nil, errors.Join(ErrDuplicateID, err)
		}
		return nil, errors.Join(ErrCreatePaste, err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return nil, errors.Join(ErrCreatePaste, err)
	}
	if rows != 1 {
		return nil, ErrCreatePaste
	}

	return meta, nil
}

// ConsumePaste reads a paste and spends one view of its budget, all inside
// the caller's transaction. The row is locked first so two concurrent
// consumers of the same id serialize, then expiry is checked against the
// caller supplied now, then the budget is spent with a conditional update
// whose affected row count guards against spending a view that is no longer
// there.
//
// Absent, expired and exhausted pastes all come back as ErrPasteNotAvailable,
// the row itself is left in place.
func (m *PasteModel) ConsumePaste(ctx context.Context, tx *sql.Tx, id string, now time.Time) (*Paste, error) {
	row := tx.QueryRowContext(ctx,
		"SELECT content, created_at, expires_at, remaining_views FROM pastes WHERE id = $1 FOR UPDATE",
		id)

	var (
		content        []byte
		createdAt      int64
		expiresAt      sql.NullInt64
		remainingViews sql.NullInt64
	)
	if err := row.Scan(&content, &createdAt, &expiresAt, &remainingViews); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPasteNotAvailable
		}
		return nil, err
	}

	if expiresAt.Valid && now.UnixMilli() >= expiresAt.Int64 {
		return nil, ErrPasteNotAvailable
	}

	paste := &Paste{
		PasteMeta: PasteMeta{
			ID:            id,
			Created:       time.UnixMilli(createdAt),
			ContentLength: int64(len(content)),
		},
		Content: content,
	}
	if expiresAt.Valid {
		expire := time.UnixMilli(expiresAt.Int64)
		paste.Expire = &expire
	}

	if remainingViews.Valid {
		if remainingViews.Int64 <= 0 {
			return nil, ErrPasteNotAvailable
		}

		res, err := tx.ExecContext(ctx,
			"UPDATE pastes SET remaining_views = remaining_views - 1 WHERE id = $1 AND remaining_views > 0",
			id)
		if err != nil {
			return nil, err
		}
		rows, err := res.RowsAffected()
		if err != nil {
			return nil, err
		}
		if rows != 1 {
			return nil, ErrPasteNotAvailable
		}

		left := remainingViews.Int64 - 1
		paste.RemainingViews = &left
	}

	return paste, nil
}

// GetPasteMeta returns the metadata of a paste without touching its view
// budget and without filtering dead pastes, so an expired or exhausted paste
// still reports its true state until it is deleted.
func (m *PasteModel) GetPasteMeta(ctx context.Context, tx *sql.Tx, id string) (*PasteMeta, error) {
	row := tx.QueryRowContext(ctx,
		"SELECT created_at, expires_at, remaining_views, octet_length(content) FROM pastes WHERE id = $1",
		id)

	meta, err := scanPasteMeta(row, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPasteNotFound
		}
		return nil, err
	}

	return meta, nil
}

// DeletePaste removes a paste regardless of its expiry or view state.
// Returns whether a row existed.
func (m *PasteModel) DeletePaste(ctx context.Context, tx *sql.Tx, id string) (bool, error) {
	res, err := tx.ExecContext(ctx, "DELETE FROM pastes WHERE id = $1", id)
	if err != nil {
		return false, err
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return false, err
	}

	return rows > 0, nil
}

// ListPastes returns metadata of all pastes, newest first, capped at limit.
// Dead pastes are included.
func (m *PasteModel) ListPastes(ctx context.Context, tx *sql.Tx, limit int) ([]PasteMeta, error) {
	rows, err := tx.QueryContext(ctx,
		"SELECT id, created_at, expires_at, remaining_views, octet_length(content) FROM pastes ORDER BY created_at DESC, id ASC LIMIT $1",
		limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var metas []PasteMeta
	for rows.Next() {
		var (
			id             string
			createdAt      int64
			expiresAt      sql.NullInt64
			remainingViews sql.NullInt64
			contentLength  int64
		)
		if err := rows.Scan(&id, &createdAt, &expiresAt, &remainingViews, &contentLength); err != nil {
			return nil, err
		}
		metas = append(metas, buildPasteMeta(id, createdAt, expiresAt, remainingViews, contentLength))
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return metas, nil
}

// DeleteExpired removes every paste whose expiry is at or before now.
func (m *PasteModel) DeleteExpired(ctx context.Context, tx *sql.Tx, now time.Time) (int64, error) {
	res, err := tx.ExecContext(ctx,
		"DELETE FROM pastes WHERE expires_at IS NOT NULL AND expires_at <= $1",
		now.UnixMilli())
	if err != nil {
		return 0, err
	}

	return res.RowsAffected()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPasteMeta(row rowScanner, id string) (*PasteMeta, error) {
	var (
		createdAt      int64
		expiresAt      sql.NullInt64
		remainingViews sql.NullInt64
		contentLength  int64
	)
	if err := row.Scan(&createdAt, &expiresAt, &remainingViews, &contentLength); err != nil {
		return nil, err
	}

	meta := buildPasteMeta(id, createdAt, expiresAt, remainingViews, contentLength)
	return &meta, nil
}

func buildPasteMeta(id string, createdAt int64, expiresAt, remainingViews sql.NullInt64, contentLength int64) PasteMeta {
	meta := PasteMeta{
		ID:            id,
		Created:       time.UnixMilli(createdAt),
		ContentLength: contentLength,
	}
	if expiresAt.Valid {
		expire := time.UnixMilli(expiresAt.Int64)
		meta.Expire = &expire
	}
	if remainingViews.Valid {
		views := remainingViews.Int64
		meta.RemainingViews = &views
	}
	return meta
}
