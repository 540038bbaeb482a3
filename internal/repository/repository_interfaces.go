package repository

import (
	"context"

	"github.com/egorTorshin/EnergyValue-Telegram-Bot/internal/domain/model"
)

// CatalogRepositoryInterface defines the density catalog storage operations.
type CatalogRepositoryInterface interface {
	GetActive(ctx context.Context) (*DensityCatalog, error)
	Create(ctx context.Context, entries []model.CatalogEntry, createdBy string) (*DensityCatalog, error)
	List(ctx context.Context, limit int) ([]DensityCatalog, error)
}

// LogsRepositoryInterface defines the log storage operations.
type LogsRepositoryInterface interface {
	Create(ctx context.Context, entry *LogEntryDocument) error
	CreateMany(ctx context.Context, entries []*LogEntryDocument) error
	Query(ctx context.Context, opts LogQueryOptions) ([]*LogEntryDocument, error)
	Count(ctx context.Context, opts LogQueryOptions) (int64, error)
}

var (
	_ CatalogRepositoryInterface = (*CatalogRepository)(nil)
	_ CatalogRepositoryInterface = (*CatalogRepositoryWithCircuitBreaker)(nil)
	_ LogsRepositoryInterface    = (*LogsRepository)(nil)
	_ LogsRepositoryInterface    = (*LogsRepositoryWithCircuitBreaker)(nil)
)
