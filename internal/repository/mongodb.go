// Package repository provides the MongoDB data access layer.
package repository

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Collection names.
const (
	densityCatalogsCollection = "density_catalogs"
	logsCollection            = "logs"
	logsTTLIndexName          = "timestamp_1"
)

// MongoConfig holds MongoDB connection pool configuration.
type MongoConfig struct {
	MaxPoolSize            uint64
	MinPoolSize            uint64
	MaxConnIdleTime        time.Duration
	ConnectTimeout         time.Duration
	ServerSelectionTimeout time.Duration
	SocketTimeout          time.Duration
	// EnableCompression turns on zstd/snappy/zlib wire compression.
	EnableCompression bool
}

// DefaultMongoConfig returns the pool settings used in production.
func DefaultMongoConfig() MongoConfig {
	return MongoConfig{
		MaxPoolSize:            20,
		MinPoolSize:            2,
		MaxConnIdleTime:        10 * time.Minute,
		ConnectTimeout:         10 * time.Second,
		ServerSelectionTimeout: 5 * time.Second,
		SocketTimeout:          30 * time.Second,
		EnableCompression:      true,
	}
}

// MongoDB provides MongoDB client and collection access.
type MongoDB struct {
	Client          *mongo.Client
	Database        *mongo.Database
	DensityCatalogs *mongo.Collection
	Logs            *mongo.Collection
}

// NewMongoDB connects with the default configuration.
func NewMongoDB(uri, databaseName string) (*MongoDB, error) {
	return NewMongoDBWithConfig(uri, databaseName, DefaultMongoConfig())
}

// NewMongoDBWithConfig connects, pings and ensures indexes.
func NewMongoDBWithConfig(uri, databaseName string, cfg MongoConfig) (*MongoDB, error) {
	ctx, cancel := context.WithTimeout(context.Background(), cfg.ConnectTimeout)
	defer cancel()

	clientOptions := options.Client().
		ApplyURI(uri).
		SetMaxPoolSize(cfg.MaxPoolSize).
		SetMinPoolSize(cfg.MinPoolSize).
		SetMaxConnIdleTime(cfg.MaxConnIdleTime).
		SetConnectTimeout(cfg.ConnectTimeout).
		SetServerSelectionTimeout(cfg.ServerSelectionTimeout).
		SetSocketTimeout(cfg.SocketTimeout).
		SetRetryWrites(true).
		SetRetryReads(true)

	if cfg.EnableCompression {
		clientOptions.SetCompressors([]string{"zstd", "snappy", "zlib"})
	}

	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, err
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}

	db := client.Database(databaseName)
	m := &MongoDB{
		Client:          client,
		Database:        db,
		DensityCatalogs: db.Collection(densityCatalogsCollection),
		Logs:            db.Collection(logsCollection),
	}

	if err := m.createIndexes(ctx); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}

	return m, nil
}

func (m *MongoDB) createIndexes(ctx context.Context) error {
	_, err := m.DensityCatalogs.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "active", Value: 1}}},
		{Keys: bson.D{{Key: "version", Value: -1}}, Options: options.Index().SetUnique(true)},
	})
	if err != nil {
		return err
	}

	// The timestamp TTL index is owned by SetLogsTTL.
	_, err = m.Logs.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "request_id", Value: 1}}},
		{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "timestamp", Value: -1}}},
	})
	return err
}

// SetLogsTTL replaces the expiry index of the logs collection.
func (m *MongoDB) SetLogsTTL(ctx context.Context, ttlDays int) error {
	_, _ = m.Logs.Indexes().DropOne(ctx, logsTTLIndexName)

	ttlIndex := mongo.IndexModel{
		Keys:    bson.D{{Key: "timestamp", Value: 1}},
		Options: options.Index().SetName(logsTTLIndexName).SetExpireAfterSeconds(int32(ttlDays * 24 * 60 * 60)),
	}
	_, err := m.Logs.Indexes().CreateOne(ctx, ttlIndex)

	var cmdErr mongo.CommandError
	if errors.As(err, &cmdErr) && (cmdErr.Name == "IndexOptionsConflict" || cmdErr.Name == "IndexKeySpecsConflict") {
		return nil
	}
	return err
}

// Close closes the MongoDB connection.
func (m *MongoDB) Close(ctx context.Context) error {
	return m.Client.Disconnect(ctx)
}

// HealthCheck pings the server with a short timeout.
func (m *MongoDB) HealthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return m.Client.Ping(ctx, nil)
}
