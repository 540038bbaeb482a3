package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/egorTorshin/EnergyValue-Telegram-Bot/internal/domain/model"
	"github.com/egorTorshin/EnergyValue-Telegram-Bot/internal/logger"
	"github.com/egorTorshin/EnergyValue-Telegram-Bot/internal/repository"
)

var (
	// ErrRepositoryNotConfigured is returned for write or history calls without MongoDB.
	ErrRepositoryNotConfigured = errors.New("repository not configured")
	// ErrInvalidCatalog is returned for catalogs with empty, duplicate or non-positive entries.
	ErrInvalidCatalog = errors.New("invalid catalog")
)

// Catalog sources.
const (
	CatalogSourceDefault = "default"
	CatalogSourceStore   = "mongodb"
)

// DefaultCatalog is the built-in density catalog in lookup order, kcal per 100 g.
var DefaultCatalog = []model.CatalogEntry{
	{Name: "chicken", KcalPer100g: 165},
	{Name: "buckwheat", KcalPer100g: 343},
	{Name: "rice", KcalPer100g: 344},
	{Name: "eggs", KcalPer100g: 157},
	{Name: "cottage cheese", KcalPer100g: 88},
	{Name: "milk", KcalPer100g: 42},
	{Name: "bread", KcalPer100g: 265},
	{Name: "potato", KcalPer100g: 77},
	{Name: "carrot", KcalPer100g: 41},
	{Name: "apple", KcalPer100g: 52},
	{Name: "banana", KcalPer100g: 89},
	{Name: "borscht", KcalPer100g: 85},
	{Name: "dumplings", KcalPer100g: 275},
}

// ValidateCatalog case-folds entry names and rejects empty names,
// duplicates and densities that are not positive finite numbers.
func ValidateCatalog(entries []model.CatalogEntry) ([]model.CatalogEntry, error) {
	if len(entries) == 0 {
		return nil, fmt.Errorf("%w: no entries", ErrInvalidCatalog)
	}

	seen := make(map[string]struct{}, len(entries))
	normalized := make([]model.CatalogEntry, 0, len(entries))
	for i, e := range entries {
		name := model.NormalizeName(e.Name)
		switch {
		case name == "":
			return nil, fmt.Errorf("%w: entry %d has an empty name", ErrInvalidCatalog, i)
		case !(e.KcalPer100g > 0) || math.IsInf(e.KcalPer100g, 0):
			return nil, fmt.Errorf("%w: %q has density %v", ErrInvalidCatalog, name, e.KcalPer100g)
		}
		if _, dup := seen[name]; dup {
			return nil, fmt.Errorf("%w: duplicate entry %q", ErrInvalidCatalog, name)
		}
		seen[name] = struct{}{}
		normalized = append(normalized, model.CatalogEntry{Name: name, KcalPer100g: e.KcalPer100g})
	}
	return normalized, nil
}

// CatalogSnapshot is an immutable view of the catalog in effect.
type CatalogSnapshot struct {
	Version  int
	Source   string
	Entries  []model.CatalogEntry
	Resolver *CatalogResolver
}

// CatalogService serves the density catalog used by allocations.
type CatalogService interface {
	// Active returns the catalog in effect, falling back to the built-in one.
	Active(ctx context.Context) (*CatalogSnapshot, error)
	// Replace stores a new catalog version and makes it active.
	Replace(ctx context.Context, entries []model.CatalogEntry, createdBy string) (*repository.DensityCatalog, error)
	// History lists stored catalog versions, newest first.
	History(ctx context.Context, limit int) ([]repository.DensityCatalog, error)
	// NewResolver builds a resolver over caller supplied entries.
	NewResolver(entries []model.CatalogEntry) *CatalogResolver
}

// CatalogOption configures a CatalogServiceImpl.
type CatalogOption func(*CatalogServiceImpl)

// WithSnapshotTTL sets how long the active catalog is reused before it is re-read.
func WithSnapshotTTL(ttl time.Duration) CatalogOption {
	return func(s *CatalogServiceImpl) {
		s.snapshotTTL = ttl
	}
}

// WithResolverOptions passes options to every resolver the service builds.
func WithResolverOptions(opts ...ResolverOption) CatalogOption {
	return func(s *CatalogServiceImpl) {
		s.resolverOpts = append(s.resolverOpts, opts...)
	}
}

// CatalogServiceImpl implements CatalogService on an optional repository.
type CatalogServiceImpl struct {
	repo         repository.CatalogRepositoryInterface
	resolverOpts []ResolverOption
	snapshotTTL  time.Duration

	mu        sync.Mutex
	snapshot  *CatalogSnapshot
	expiresAt time.Time
	fallback  *CatalogSnapshot
}

// NewCatalogService creates a catalog service. A nil repo serves the built-in catalog only.
func NewCatalogService(repo repository.CatalogRepositoryInterface, opts ...CatalogOption) *CatalogServiceImpl {
	s := &CatalogServiceImpl{
		repo:        repo,
		snapshotTTL: 30 * time.Second,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.fallback = s.newSnapshot(0, CatalogSourceDefault, DefaultCatalog)
	return s
}

func (s *CatalogServiceImpl) newSnapshot(version int, source string, entries []model.CatalogEntry) *CatalogSnapshot {
	resolver := NewCatalogResolver(entries, s.resolverOpts...)
	return &CatalogSnapshot{
		Version:  version,
		Source:   source,
		Entries:  resolver.Entries(),
		Resolver: resolver,
	}
}

// NewResolver builds a resolver over entries with the service's resolver options.
func (s *CatalogServiceImpl) NewResolver(entries []model.CatalogEntry) *CatalogResolver {
	return NewCatalogResolver(entries, s.resolverOpts...)
}

// Active returns the cached snapshot or reloads it from the repository.
// Store errors are logged and answered with the built-in catalog.
func (s *CatalogServiceImpl) Active(ctx context.Context) (*CatalogSnapshot, error) {
	if s.repo == nil {
		return s.fallback, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.snapshot != nil && time.Now().Before(s.expiresAt) {
		return s.snapshot, nil
	}

	stored, err := s.repo.GetActive(ctx)
	if err != nil {
		log := logger.Component("catalog")
		log.Warn().Err(err).Msg("Failed to load active catalog, using built-in catalog")
		return s.fallback, nil
	}

	snapshot := s.fallback
	if stored != nil && len(stored.Entries) > 0 {
		snapshot = s.newSnapshot(stored.Version, CatalogSourceStore, stored.Entries)
	}
	s.snapshot = snapshot
	s.expiresAt = time.Now().Add(s.snapshotTTL)
	return snapshot, nil
}

// Replace validates entries, stores them and drops the cached snapshot.
func (s *CatalogServiceImpl) Replace(ctx context.Context, entries []model.CatalogEntry, createdBy string) (*repository.DensityCatalog, error) {
	if s.repo == nil {
		return nil, ErrRepositoryNotConfigured
	}

	normalized, err := ValidateCatalog(entries)
	if err != nil {
		return nil, err
	}

	stored, err := s.repo.Create(ctx, normalized, createdBy)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.snapshot = nil
	s.mu.Unlock()
	return stored, nil
}

// History lists stored catalog versions.
func (s *CatalogServiceImpl) History(ctx context.Context, limit int) ([]repository.DensityCatalog, error) {
	if s.repo == nil {
		return nil, ErrRepositoryNotConfigured
	}
	return s.repo.List(ctx, limit)
}
