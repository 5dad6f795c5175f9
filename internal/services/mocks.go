package services

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/vanishbin/vanishbin/internal/models"
)

type MockIDGenerator struct {
	mock.Mock
}

func (m *MockIDGenerator) NewID() (string, error) {
	args := m.Called()
	return args.String(0), args.Error(1)
}

type MockPasteStore struct {
	mock.Mock
}

func (m *MockPasteStore) CreatePaste(ctx context.Context, content []byte, ttl *time.Duration, maxViews *int64) (*models.PasteMeta, error) {
	args := m.Called(ctx, content, ttl, maxViews)
	return args.Get(0).(*models.PasteMeta), args.Error(1)
}

func (m *MockPasteStore) ReadPaste(ctx context.Context, id string, now time.Time) (*models.Paste, error) {
	args := m.Called(ctx, id, now)
	return args.Get(0).(*models.Paste), args.Error(1)
}

func (m *MockPasteStore) PasteStats(ctx context.Context, id string) (*models.PasteMeta, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(*models.PasteMeta), args.Error(1)
}

func (m *MockPasteStore) DeletePaste(ctx context.Context, id string) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockPasteStore) ListPastes(ctx context.Context, limit int) ([]models.PasteMeta, error) {
	args := m.Called(ctx, limit)
	return args.Get(0).([]models.PasteMeta), args.Error(1)
}

func (m *MockPasteStore) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	args := m.Called(ctx, now)
	return args.Get(0).(int64), args.Error(1)
}
