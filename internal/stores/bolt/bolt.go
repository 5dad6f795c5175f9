// Package bolt provides an embedded paste store variant backed by bbolt.
// bbolt allows a single read-write transaction at a time, which gives the
// consuming read its serialization for free: the check-then-decrement runs
// inside one Update call.
package bolt

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	bbolt "go.etcd.io/bbolt"

	"github.com/vanishbin/vanishbin/internal/models"
	"github.com/vanishbin/vanishbin/internal/services"
)

var pasteBucket = []byte("pastes")

type record struct {
	Content        []byte `json:"content"`
	CreatedAt      int64  `json:"created_at"`
	ExpiresAt      *int64 `json:"expires_at,omitempty"`
	RemainingViews *int64 `json:"remaining_views,omitempty"`
}

// Store implements services.PasteStore on a bbolt database.
type Store struct {
	db    *bbolt.DB
	idgen services.IDGenerator
	clock services.Clock
}

// Open initializes a bbolt backed store at path.
func Open(path string, idgen services.IDGenerator, clock services.Clock) (*Store, error) {
	db, err := bbolt.Open(path, 0o600, &bbolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("open bolt db: %w", err)
	}

	if err := db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(pasteBucket)
		return err
	}); err != nil {
		db.Close()
		return nil, fmt.Errorf("create paste bucket: %w", err)
	}

	if clock == nil {
		clock = services.SystemClock{}
	}

	return &Store{db: db, idgen: idgen, clock: clock}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) CreatePaste(ctx context.Context, content []byte, ttl *time.Duration, maxViews *int64) (*models.PasteMeta, error) {
	id, err := s.idgen.NewID()
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	rec := record{
		Content:   content,
		CreatedAt: now.UnixMilli(),
	}
	if ttl != nil {
		expiresAt := now.Add(*ttl).UnixMilli()
		rec.ExpiresAt = &expiresAt
	}
	if maxViews != nil {
		views := *maxViews
		rec.RemainingViews = &views
	}

	raw, err := json.Marshal(rec)
	if err != nil {
		return nil, errors.Join(models.ErrCreatePaste, err)
	}

	err = s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(pasteBucket)
		if bucket.Get([]byte(id)) != nil {
			return models.ErrDuplicateID
		}
		return bucket.Put([]byte(id), raw)
	})
	if err != nil {
		return nil, err
	}

	return rec.meta(id), nil
}

func (s *Store) ReadPaste(ctx context.Context, id string, now time.Time) (*models.Paste, error) {
	var paste *models.Paste
	err := s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(pasteBucket)
		raw := bucket.Get([]byte(id))
		if raw == nil {
			return models.ErrPasteNotAvailable
		}

		var rec record
		if err := json.Unmarshal(raw, &rec); err != nil {
			return fmt.Errorf("unmarshal paste: %w", err)
		}

		if rec.ExpiresAt != nil && now.UnixMilli() >= *rec.ExpiresAt {
			return models.ErrPasteNotAvailable
		}

		if rec.RemainingViews != nil {
			if *rec.RemainingViews <= 0 {
				return models.ErrPasteNotAvailable
			}
			*rec.RemainingViews--

			updated, err := json.Marshal(rec)
			if err != nil {
				return fmt.Errorf("marshal paste: %w", err)
			}
			if err := bucket.Put([]byte(id), updated); err != nil {
				return fmt.Errorf("save paste: %w", err)
			}
		}

		paste = &models.Paste{
			PasteMeta: *rec.meta(id),
			Content:   rec.Content,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return paste, nil
}

func (s *Store) PasteStats(ctx context.Context, id string) (*models.PasteMeta, error) {
	var meta *models.PasteMeta
	err := s.db.View(func(tx *bbolt.Tx) error {
		raw := tx.Bucket(pasteBucket).Get([]byte(id))
		if raw == nil {
			return models.ErrPasteNotFound
		}

		var rec record
		if err := json.Unmarshal(raw, &rec); err != nil {
			return fmt.Errorf("unmarshal paste: %w", err)
		}

		meta = rec.meta(id)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return meta, nil
}

func (s *Store) DeletePaste(ctx context.Context, id string) (bool, error) {
	var existed bool
	err := s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(pasteBucket)
		if bucket.Get([]byte(id)) == nil {
			return nil
		}
		existed = true
		return bucket.Delete([]byte(id))
	})
	if err != nil {
		return false, err
	}

	return existed, nil
}

func (s *Store) ListPastes(ctx context.Context, limit int) ([]models.PasteMeta, error) {
	var metas []models.PasteMeta
	err := s.db.View(func(tx *bbolt.Tx) error {
		return tx.Bucket(pasteBucket).ForEach(func(k, v []byte) error {
			var rec record
			if err := json.Unmarshal(v, &rec); err != nil {
				return fmt.Errorf("unmarshal paste %s: %w", k, err)
			}
			metas = append(metas, *rec.meta(string(k)))
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(metas, func(i, j int) bool {
		if !metas[i].Created.Equal(metas[j].Created) {
			return metas[i].Created.After(metas[j].Created)
		}
		return metas[i].ID < metas[j].ID
	})

	if limit > 0 && len(metas) > limit {
		metas = metas[:limit]
	}

	return metas, nil
}

func (s *Store) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	var removed int64
	err := s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(pasteBucket)
		cursor := bucket.Cursor()
		for k, v := cursor.First(); k != nil; k, v = cursor.Next() {
			var rec record
			if err := json.Unmarshal(v, &rec); err != nil {
				return fmt.Errorf("unmarshal paste %s: %w", k, err)
			}
			if rec.ExpiresAt != nil && now.UnixMilli() >= *rec.ExpiresAt {
				if err := cursor.Delete(); err != nil {
					return err
				}
				removed++
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	return removed, nil
}

func (r record) meta(id string) *models.PasteMeta {
	meta := &models.PasteMeta{
		ID:            id,
		Created:       time.UnixMilli(r.CreatedAt),
		ContentLength: int64(len(r.Content)),
	}
	if r.ExpiresAt != nil {
		expire := time.UnixMilli(*r.ExpiresAt)
		meta.Expire = &expire
	}
	if r.RemainingViews != nil {
		views := *r.RemainingViews
		meta.RemainingViews = &views
	}
	return meta
}
