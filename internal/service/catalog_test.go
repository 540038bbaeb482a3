//go:build !integration

package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/egorTorshin/EnergyValue-Telegram-Bot/internal/domain/model"
	"github.com/egorTorshin/EnergyValue-Telegram-Bot/internal/mocks"
	"github.com/egorTorshin/EnergyValue-Telegram-Bot/internal/repository"
	"github.com/egorTorshin/EnergyValue-Telegram-Bot/internal/service"
)

func storedCatalog(version int, entries ...model.CatalogEntry) *repository.DensityCatalog {
	return &repository.DensityCatalog{Version: version, Active: true, Entries: entries}
}

func TestCatalogService_Active(t *testing.T) {
	tests := []struct {
		name        string
		repo        func() *mocks.MockCatalogRepository
		wantSource  string
		wantVersion int
		wantRice    float64
	}{
		{
			name:        "no repository serves built-in catalog",
			repo:        func() *mocks.MockCatalogRepository { return nil },
			wantSource:  service.CatalogSourceDefault,
			wantVersion: 0,
			wantRice:    344,
		},
		{
			name: "stored catalog",
			repo: func() *mocks.MockCatalogRepository {
				m := new(mocks.MockCatalogRepository)
				m.On("GetActive", mock.Anything).Return(storedCatalog(3, model.CatalogEntry{Name: "rice", KcalPer100g: 130}), nil)
				return m
			},
			wantSource:  service.CatalogSourceStore,
			wantVersion: 3,
			wantRice:    130,
		},
		{
			name: "empty store falls back",
			repo: func() *mocks.MockCatalogRepository {
				m := new(mocks.MockCatalogRepository)
				m.On("GetActive", mock.Anything).Return(nil, nil)
				return m
			},
			wantSource: service.CatalogSourceDefault,
			wantRice:   344,
		},
		{
			name: "store error falls back",
			repo: func() *mocks.MockCatalogRepository {
				m := new(mocks.MockCatalogRepository)
				m.On("GetActive", mock.Anything).Return(nil, errors.New("connection refused"))
				return m
			},
			wantSource: service.CatalogSourceDefault,
			wantRice:   344,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var svc *service.CatalogServiceImpl
			if repo := tt.repo(); repo != nil {
				svc = service.NewCatalogService(repo)
			} else {
				svc = service.NewCatalogService(nil)
			}

			snapshot, err := svc.Active(context.Background())
			require.NoError(t, err)

			assert.Equal(t, tt.wantSource, snapshot.Source)
			assert.Equal(t, tt.wantVersion, snapshot.Version)
			assert.Equal(t, tt.wantRice, snapshot.Resolver.Resolve("rice"))
			assert.Equal(t, snapshot.Resolver.Entries(), snapshot.Entries)
		})
	}
}

func TestCatalogService_Active_ReusesSnapshot(t *testing.T) {
	repo := new(mocks.MockCatalogRepository)
	repo.On("GetActive", mock.Anything).Return(storedCatalog(1, model.CatalogEntry{Name: "rice", KcalPer100g: 130}), nil).Once()
	svc := service.NewCatalogService(repo, service.WithSnapshotTTL(time.Hour))

	first, err := svc.Active(context.Background())
	require.NoError(t, err)
	second, err := svc.Active(context.Background())
	require.NoError(t, err)

	assert.Same(t, first, second)
	repo.AssertNumberOfCalls(t, "GetActive", 1)
}

func TestCatalogService_Replace(t *testing.T) {
	t.Run("stores normalized entries and reloads", func(t *testing.T) {
		repo := new(mocks.MockCatalogRepository)
		repo.On("GetActive", mock.Anything).Return(storedCatalog(1, model.CatalogEntry{Name: "rice", KcalPer100g: 130}), nil).Once()
		repo.On("Create", mock.Anything, []model.CatalogEntry{{Name: "rice", KcalPer100g: 344}}, "1001").
			Return(storedCatalog(2, model.CatalogEntry{Name: "rice", KcalPer100g: 344}), nil)
		repo.On("GetActive", mock.Anything).Return(storedCatalog(2, model.CatalogEntry{Name: "rice", KcalPer100g: 344}), nil).Once()
		svc := service.NewCatalogService(repo, service.WithSnapshotTTL(time.Hour))

		_, err := svc.Active(context.Background())
		require.NoError(t, err)

		stored, err := svc.Replace(context.Background(), []model.CatalogEntry{{Name: " Rice ", KcalPer100g: 344}}, "1001")
		require.NoError(t, err)
		assert.Equal(t, 2, stored.Version)

		snapshot, err := svc.Active(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 2, snapshot.Version)
		assert.Equal(t, 344.0, snapshot.Resolver.Resolve("rice"))
		repo.AssertExpectations(t)
	})

	t.Run("invalid catalog is rejected before storing", func(t *testing.T) {
		repo := new(mocks.MockCatalogRepository)
		svc := service.NewCatalogService(repo)

		_, err := svc.Replace(context.Background(), []model.CatalogEntry{{Name: "rice", KcalPer100g: 0}}, "1001")

		assert.ErrorIs(t, err, service.ErrInvalidCatalog)
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("without repository", func(t *testing.T) {
		_, err := service.NewCatalogService(nil).Replace(context.Background(), service.DefaultCatalog, "1001")
		assert.ErrorIs(t, err, service.ErrRepositoryNotConfigured)
	})
}

func TestCatalogService_History(t *testing.T) {
	repo := new(mocks.MockCatalogRepository)
	repo.On("List", mock.Anything, 5).Return([]repository.DensityCatalog{{Version: 2}, {Version: 1}}, nil)

	history, err := service.NewCatalogService(repo).History(context.Background(), 5)
	require.NoError(t, err)
	assert.Len(t, history, 2)

	_, err = service.NewCatalogService(nil).History(context.Background(), 5)
	assert.ErrorIs(t, err, service.ErrRepositoryNotConfigured)
}

func TestValidateCatalog(t *testing.T) {
	tests := []struct {
		name    string
		entries []model.CatalogEntry
		wantErr bool
	}{
		{name: "built-in catalog", entries: service.DefaultCatalog},
		{name: "empty", entries: nil, wantErr: true},
		{name: "blank name", entries: []model.CatalogEntry{{Name: " ", KcalPer100g: 10}}, wantErr: true},
		{name: "zero density", entries: []model.CatalogEntry{{Name: "water", KcalPer100g: 0}}, wantErr: true},
		{name: "negative density", entries: []model.CatalogEntry{{Name: "x", KcalPer100g: -1}}, wantErr: true},
		{
			name:    "case-folded duplicate",
			entries: []model.CatalogEntry{{Name: "Rice", KcalPer100g: 344}, {Name: "rice", KcalPer100g: 130}},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			normalized, err := service.ValidateCatalog(tt.entries)
			if tt.wantErr {
				assert.ErrorIs(t, err, service.ErrInvalidCatalog)
				return
			}
			require.NoError(t, err)
			assert.Len(t, normalized, len(tt.entries))
		})
	}
}

func TestCatalogService_ResolverOptions(t *testing.T) {
	svc := service.NewCatalogService(nil, service.WithResolverOptions(service.WithDefaultDensity(250)))

	snapshot, err := svc.Active(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 250.0, snapshot.Resolver.Resolve("quinoa"))
	assert.Equal(t, 250.0, svc.NewResolver(nil).Resolve("quinoa"))
}
