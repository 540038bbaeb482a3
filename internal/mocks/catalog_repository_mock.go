// Package mocks holds testify mocks for repository and service interfaces.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/egorTorshin/EnergyValue-Telegram-Bot/internal/domain/model"
	"github.com/egorTorshin/EnergyValue-Telegram-Bot/internal/repository"
)

// MockCatalogRepository mocks repository.CatalogRepositoryInterface.
type MockCatalogRepository struct {
	mock.Mock
}

var _ repository.CatalogRepositoryInterface = (*MockCatalogRepository)(nil)

func (m *MockCatalogRepository) GetActive(ctx context.Context) (*repository.DensityCatalog, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.DensityCatalog), args.Error(1)
}

func (m *MockCatalogRepository) Create(ctx context.Context, entries []model.CatalogEntry, createdBy string) (*repository.DensityCatalog, error) {
	args := m.Called(ctx, entries, createdBy)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.DensityCatalog), args.Error(1)
}

func (m *MockCatalogRepository) List(ctx context.Context, limit int) ([]repository.DensityCatalog, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repository.DensityCatalog), args.Error(1)
}

// MockLogsRepository mocks repository.LogsRepositoryInterface.
type MockLogsRepository struct {
	mock.Mock
}

var _ repository.LogsRepositoryInterface = (*MockLogsRepository)(nil)

func (m *MockLogsRepository) Create(ctx context.Context, entry *repository.LogEntryDocument) error {
	return m.Called(ctx, entry).Error(0)
}

func (m *MockLogsRepository) CreateMany(ctx context.Context, entries []*repository.LogEntryDocument) error {
	return m.Called(ctx, entries).Error(0)
}

func (m *MockLogsRepository) Query(ctx context.Context, opts repository.LogQueryOptions) ([]*repository.LogEntryDocument, error) {
	args := m.Called(ctx, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*repository.LogEntryDocument), args.Error(1)
}

func (m *MockLogsRepository) Count(ctx context.Context, opts repository.LogQueryOptions) (int64, error) {
	args := m.Called(ctx, opts)
	return args.Get(0).(int64), args.Error(1)
}
