package repository

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/egorTorshin/EnergyValue-Telegram-Bot/internal/domain/model"
)

// DensityCatalog is one stored version of the density catalog.
// Exactly one document is active at a time.
type DensityCatalog struct {
	ID        primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Entries   []model.CatalogEntry `bson:"entries" json:"entries"`
	Active    bool                 `bson:"active" json:"active"`
	Version   int                  `bson:"version" json:"version"`
	CreatedAt time.Time            `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time            `bson:"updated_at" json:"updated_at"`
	CreatedBy string               `bson:"created_by,omitempty" json:"created_by,omitempty"`
}

// CatalogRepository stores density catalogs.
type CatalogRepository struct {
	collection *mongo.Collection
}

// NewCatalogRepository creates a new catalog repository.
func NewCatalogRepository(db *MongoDB) *CatalogRepository {
	return &CatalogRepository{collection: db.DensityCatalogs}
}

// GetActive returns the active catalog, or nil when none was stored yet.
// While Create is between its insert and the deactivation of older
// versions two documents are active; the newest wins.
func (r *CatalogRepository) GetActive(ctx context.Context) (*DensityCatalog, error) {
	var catalog DensityCatalog
	opts := options.FindOne().SetSort(bson.D{{Key: "version", Value: -1}})
	err := r.collection.FindOne(ctx, bson.M{"active": true}, opts).Decode(&catalog)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &catalog, nil
}

// Create stores entries as the next catalog version and makes it active.
func (r *CatalogRepository) Create(ctx context.Context, entries []model.CatalogEntry, createdBy string) (*DensityCatalog, error) {
	latest, err := r.latestVersion(ctx)
	if err != nil {
		return nil, err
	}
	return r.createVersion(ctx, entries, createdBy, latest+1)
}

// createVersion inserts the catalog before deactivating the others, so a
// failed insert (a racing writer taking the same version) leaves the
// previous catalog active.
func (r *CatalogRepository) createVersion(ctx context.Context, entries []model.CatalogEntry, createdBy string, version int) (*DensityCatalog, error) {
	now := time.Now().UTC()
	catalog := DensityCatalog{
		ID:        primitive.NewObjectID(),
		Entries:   entries,
		Active:    true,
		Version:   version,
		CreatedAt: now,
		UpdatedAt: now,
		CreatedBy: createdBy,
	}
	if _, err := r.collection.InsertOne(ctx, catalog); err != nil {
		return nil, err
	}

	_, err := r.collection.UpdateMany(
		ctx,
		bson.M{"active": true, "_id": bson.M{"$ne": catalog.ID}},
		bson.M{"$set": bson.M{"active": false, "updated_at": now}},
	)
	if err != nil {
		return nil, err
	}

	return &catalog, nil
}

// List returns catalogs newest first.
func (r *CatalogRepository) List(ctx context.Context, limit int) ([]DensityCatalog, error) {
	opts := options.Find().SetSort(bson.D{{Key: "version", Value: -1}})
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = cursor.Close(ctx)
	}()

	var catalogs []DensityCatalog
	if err := cursor.All(ctx, &catalogs); err != nil {
		return nil, err
	}
	return catalogs, nil
}

func (r *CatalogRepository) latestVersion(ctx context.Context) (int, error) {
	var latest DensityCatalog
	opts := options.FindOne().
		SetSort(bson.D{{Key: "version", Value: -1}}).
		SetProjection(bson.M{"version": 1})
	err := r.collection.FindOne(ctx, bson.M{}, opts).Decode(&latest)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return latest.Version, nil
}
