package models

import (
	"context"
	"database/sql"
	"time"

	"github.com/stretchr/testify/mock"
)

type MockPasteModel struct {
	mock.Mock
}

func (m *MockPasteModel) CreatePaste(
	ctx context.Context,
	tx *sql.Tx,
	id string,
	content []byte,
	now time.Time,
	ttl *time.Duration,
	maxViews *int64) (*PasteMeta, error) {
	args := m.Called(ctx, tx, id, content, now, ttl, maxViews)
	return args.Get(0).(*PasteMeta), args.Error(1)
}

func (m *MockPasteModel) ConsumePaste(ctx context.Context, tx *sql.Tx, id string, now time.Time) (*Paste, error) {
	args := m.Called(ctx, tx, id, now)
	return args.Get(0).(*Paste), args.Error(1)
}

func (m *MockPasteModel) GetPasteMeta(ctx context.Context, tx *sql.Tx, id string) (*PasteMeta, error) {
	args := m.Called(ctx, tx, id)
	return args.Get(0).(*PasteMeta), args.Error(1)
}

func (m *MockPasteModel) DeletePaste(ctx context.Context, tx *sql.Tx, id string) (bool, error) {
	args := m.Called(ctx, tx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockPasteModel) ListPastes(ctx context.Context, tx *sql.Tx, limit int) ([]PasteMeta, error) {
	args := m.Called(ctx, tx, limit)
	return args.Get(0).([]PasteMeta), args.Error(1)
}

func (m *MockPasteModel) DeleteExpired(ctx context.Context, tx *sql.Tx, now time.Time) (int64, error) {
	args := m.Called(ctx, tx, now)
	return args.Get(0).(int64), args.Error(1)
}
