package repository

import (
	"context"
	"errors"

	"github.com/egorTorshin/EnergyValue-Telegram-Bot/internal/circuitbreaker"
	"github.com/egorTorshin/EnergyValue-Telegram-Bot/internal/domain/model"
)

// CatalogRepositoryWithCircuitBreaker guards catalog storage with a circuit breaker.
type CatalogRepositoryWithCircuitBreaker struct {
	repo           CatalogRepositoryInterface
	circuitBreaker *circuitbreaker.CircuitBreaker
}

// NewCatalogRepositoryWithCircuitBreaker wraps repo with cb.
func NewCatalogRepositoryWithCircuitBreaker(repo CatalogRepositoryInterface, cb *circuitbreaker.CircuitBreaker) *CatalogRepositoryWithCircuitBreaker {
	return &CatalogRepositoryWithCircuitBreaker{repo: repo, circuitBreaker: cb}
}

// GetActive returns the active catalog. An open circuit reads as "no catalog
// stored" so callers fall back to the built-in one.
func (r *CatalogRepositoryWithCircuitBreaker) GetActive(ctx context.Context) (*DensityCatalog, error) {
	var result *DensityCatalog
	err := r.circuitBreaker.Execute(ctx, func() error {
		var cbErr error
		result, cbErr = r.repo.GetActive(ctx)
		return cbErr
	})
	if errors.Is(err, circuitbreaker.ErrCircuitOpen) {
		return nil, nil
	}
	return result, err
}

// Create stores a new catalog version.
func (r *CatalogRepositoryWithCircuitBreaker) Create(ctx context.Context, entries []model.CatalogEntry, createdBy string) (*DensityCatalog, error) {
	var result *DensityCatalog
	err := r.circuitBreaker.Execute(ctx, func() error {
		var cbErr error
		result, cbErr = r.repo.Create(ctx, entries, createdBy)
		return cbErr
	})
	return result, err
}

// List returns stored catalog versions.
func (r *CatalogRepositoryWithCircuitBreaker) List(ctx context.Context, limit int) ([]DensityCatalog, error) {
	var result []DensityCatalog
	err := r.circuitBreaker.Execute(ctx, func() error {
		var cbErr error
		result, cbErr = r.repo.List(ctx, limit)
		return cbErr
	})
	return result, err
}

// GetCircuitBreaker returns the underlying circuit breaker for monitoring.
func (r *CatalogRepositoryWithCircuitBreaker) GetCircuitBreaker() *circuitbreaker.CircuitBreaker {
	return r.circuitBreaker
}

// LogsRepositoryWithCircuitBreaker guards log storage with a circuit breaker.
type LogsRepositoryWithCircuitBreaker struct {
	repo           LogsRepositoryInterface
	circuitBreaker *circuitbreaker.CircuitBreaker
}

// NewLogsRepositoryWithCircuitBreaker wraps repo with cb.
func NewLogsRepositoryWithCircuitBreaker(repo LogsRepositoryInterface, cb *circuitbreaker.CircuitBreaker) *LogsRepositoryWithCircuitBreaker {
	return &LogsRepositoryWithCircuitBreaker{repo: repo, circuitBreaker: cb}
}

// Create stores one entry. Writes are dropped while the circuit is open.
func (r *LogsRepositoryWithCircuitBreaker) Create(ctx context.Context, entry *LogEntryDocument) error {
	err := r.circuitBreaker.Execute(ctx, func() error {
		return r.repo.Create(ctx, entry)
	})
	if errors.Is(err, circuitbreaker.ErrCircuitOpen) {
		return nil
	}
	return err
}

// CreateMany stores a batch. Writes are dropped while the circuit is open.
func (r *LogsRepositoryWithCircuitBreaker) CreateMany(ctx context.Context, entries []*LogEntryDocument) error {
	err := r.circuitBreaker.Execute(ctx, func() error {
		return r.repo.CreateMany(ctx, entries)
	})
	if errors.Is(err, circuitbreaker.ErrCircuitOpen) {
		return nil
	}
	return err
}

// Query returns matching entries.
func (r *LogsRepositoryWithCircuitBreaker) Query(ctx context.Context, opts LogQueryOptions) ([]*LogEntryDocument, error) {
	var result []*LogEntryDocument
	err := r.circuitBreaker.Execute(ctx, func() error {
		var cbErr error
		result, cbErr = r.repo.Query(ctx, opts)
		return cbErr
	})
	return result, err
}

// Count returns the number of matching entries.
func (r *LogsRepositoryWithCircuitBreaker) Count(ctx context.Context, opts LogQueryOptions) (int64, error) {
	var result int64
	err := r.circuitBreaker.Execute(ctx, func() error {
		var cbErr error
		result, cbErr = r.repo.Count(ctx, opts)
		return cbErr
	})
	return result, err
}

// GetCircuitBreaker returns the underlying circuit breaker for monitoring.
func (r *LogsRepositoryWithCircuitBreaker) GetCircuitBreaker() *circuitbreaker.CircuitBreaker {
	return r.circuitBreaker
}
