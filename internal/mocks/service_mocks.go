package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/egorTorshin/EnergyValue-Telegram-Bot/internal/domain/model"
	"github.com/egorTorshin/EnergyValue-Telegram-Bot/internal/repository"
	"github.com/egorTorshin/EnergyValue-Telegram-Bot/internal/service"
)

// MockAllocator mocks service.Allocator.
type MockAllocator struct {
	mock.Mock
}

var _ service.Allocator = (*MockAllocator)(nil)

func (m *MockAllocator) AllocateSingleDay(items []model.Item, mealsPerDay int) (model.SlotAssignment, error) {
	args := m.Called(items, mealsPerDay)
	return args.Get(0).(model.SlotAssignment), args.Error(1)
}

func (m *MockAllocator) AllocateMultiDay(items []model.Item, resolver service.DensityResolver, dailyCap, excessCap float64, mealsPerDay int) ([]model.SlotAssignment, error) {
	args := m.Called(items, resolver, dailyCap, excessCap, mealsPerDay)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.SlotAssignment), args.Error(1)
}

func (m *MockAllocator) Allocate(req service.AllocationRequest) (model.MealPlan, error) {
	args := m.Called(req)
	return args.Get(0).(model.MealPlan), args.Error(1)
}

func (m *MockAllocator) InvalidateCache() {
	m.Called()
}

// MockCatalogService mocks service.CatalogService.
type MockCatalogService struct {
	mock.Mock
}

var _ service.CatalogService = (*MockCatalogService)(nil)

func (m *MockCatalogService) Active(ctx context.Context) (*service.CatalogSnapshot, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.CatalogSnapshot), args.Error(1)
}

func (m *MockCatalogService) Replace(ctx context.Context, entries []model.CatalogEntry, createdBy string) (*repository.DensityCatalog, error) {
	args := m.Called(ctx, entries, createdBy)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.DensityCatalog), args.Error(1)
}

func (m *MockCatalogService) History(ctx context.Context, limit int) ([]repository.DensityCatalog, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repository.DensityCatalog), args.Error(1)
}

func (m *MockCatalogService) NewResolver(entries []model.CatalogEntry) *service.CatalogResolver {
	args := m.Called(entries)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).(*service.CatalogResolver)
}

// MockLoggingService mocks service.LoggingService.
type MockLoggingService struct {
	mock.Mock
}

var _ service.LoggingService = (*MockLoggingService)(nil)

func (m *MockLoggingService) CreateLog(ctx context.Context, entry *model.LogEntry) error {
	return m.Called(ctx, entry).Error(0)
}

func (m *MockLoggingService) CreateLogs(ctx context.Context, entries []*model.LogEntry) error {
	return m.Called(ctx, entries).Error(0)
}

func (m *MockLoggingService) QueryLogs(ctx context.Context, opts model.LogQueryOptions) ([]model.LogEntry, error) {
	args := m.Called(ctx, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.LogEntry), args.Error(1)
}

func (m *MockLoggingService) CountLogs(ctx context.Context, opts model.LogQueryOptions) (int64, error) {
	args := m.Called(ctx, opts)
	return args.Get(0).(int64), args.Error(1)
}
