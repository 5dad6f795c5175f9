// Package memory provides an in-process paste store variant. It keeps the
// same consumption semantics as the SQL backed store, mutations are
// serialized by a single mutex instead of row locks. Intended for tests and
// single-node dev setups, nothing survives a restart.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/vanishbin/vanishbin/internal/models"
	"github.com/vanishbin/vanishbin/internal/services"
)

type record struct {
	content        []byte
	created        time.Time
	expire         *time.Time
	remainingViews *int64
}

// Store implements services.PasteStore with a mutex guarded map.
type Store struct {
	idgen services.IDGenerator
	clock services.Clock

	mu     sync.Mutex
	pastes map[string]*record
}

func New(idgen services.IDGenerator, clock services.Clock) *Store {
	if clock == nil {
		clock = services.SystemClock{}
	}
	return &Store{
		idgen:  idgen,
		clock:  clock,
		pastes: make(map[string]*record),
	}
}

func (s *Store) CreatePaste(ctx context.Context, content []byte, ttl *time.Duration, maxViews *int64) (*models.PasteMeta, error) {
	id, err := s.idgen.NewID()
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.pastes[id]; ok {
		return nil, models.ErrDuplicateID
	}

	now := s.clock.Now()
	rec := &record{
		content: append([]byte(nil), content...),
		created: now,
	}
	if ttl != nil {
		expire := now.Add(*ttl)
		rec.expire = &expire
	}
	if maxViews != nil {
		views := *maxViews
		rec.remainingViews = &views
	}
	s.pastes[id] = rec

	return rec.meta(id), nil
}

func (s *Store) ReadPaste(ctx context.Context, id string, now time.Time) (*models.Paste, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.pastes[id]
	if !ok {
		return nil, models.ErrPasteNotAvailable
	}

	if rec.expire != nil && now.UnixMilli() >= rec.expire.UnixMilli() {
		return nil, models.ErrPasteNotAvailable
	}

	if rec.remainingViews != nil {
		if *rec.remainingViews <= 0 {
			return nil, models.ErrPasteNotAvailable
		}
		*rec.remainingViews--
	}

	meta := rec.meta(id)
	return &models.Paste{
		PasteMeta: *meta,
		Content:   append([]byte(nil), rec.content...),
	}, nil
}

func (s *Store) PasteStats(ctx context.Context, id string) (*models.PasteMeta, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.pastes[id]
	if !ok {
		return nil, models.ErrPasteNotFound
	}

	return rec.meta(id), nil
}

func (s *Store) DeletePaste(ctx context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.pastes[id]; !ok {
		return false, nil
	}

	delete(s.pastes, id)
	return true, nil
}

func (s *Store) ListPastes(ctx context.Context, limit int) ([]models.PasteMeta, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	metas := make([]models.PasteMeta, 0, len(s.pastes))
	for id, rec := range s.pastes {
		metas = append(metas, *rec.meta(id))
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
	s.mu.Lock()
	defer s.mu.Unlock()

	var removed int64
	for id, rec := range s.pastes {
		if rec.expire != nil && now.UnixMilli() >= rec.expire.UnixMilli() {
			delete(s.pastes, id)
			removed++
		}
	}

	return removed, nil
}

func (r *record) meta(id string) *models.PasteMeta {
	meta := &models.PasteMeta{
		ID:            id,
		Created:       r.created,
		ContentLength: int64(len(r.content)),
	}
	if r.expire != nil {
		expire := *r.expire
		meta.Expire = &expire
	}
	if r.remainingViews != nil {
		views := *r.remainingViews
		meta.RemainingViews = &views
	}
	return meta
}
