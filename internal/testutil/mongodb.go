//go:build integration

// Package testutil starts MongoDB testcontainers for integration tests.
package testutil

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/mongodb"
)

const mongoImage = "mongo:7.0"

// MongoDBContainer wraps a running MongoDB testcontainer.
type MongoDBContainer struct {
	Container testcontainers.Container
	URI       string
}

// SetupMongoDB starts a fresh MongoDB container.
func SetupMongoDB(ctx context.Context) (*MongoDBContainer, error) {
	container, err := mongodb.Run(ctx, mongoImage)
	if err != nil {
		return nil, fmt.Errorf("start mongodb container: %w", err)
	}

	uri, err := container.ConnectionString(ctx)
	if err != nil {
		_ = container.Terminate(ctx)
		return nil, fmt.Errorf("mongodb connection string: %w", err)
	}

	return &MongoDBContainer{Container: container, URI: uri}, nil
}

// Cleanup terminates the container.
func (m *MongoDBContainer) Cleanup(ctx context.Context) error {
	if m.Container == nil {
		return nil
	}
	return m.Container.Terminate(ctx)
}

var (
	shared     *MongoDBContainer
	sharedErr  error
	sharedOnce sync.Once
)

// SetupTestMainWithMongoDB runs m against one container shared by the package.
//
//	func TestMain(m *testing.M) {
//		os.Exit(testutil.SetupTestMainWithMongoDB(context.Background(), m))
//	}
func SetupTestMainWithMongoDB(ctx context.Context, m *testing.M) int {
	sharedOnce.Do(func() {
		shared, sharedErr = SetupMongoDB(ctx)
	})
	if sharedErr != nil {
		_, _ = fmt.Fprintf(os.Stderr, "mongodb container: %v\n", sharedErr)
		return 1
	}

	code := m.Run()

	if err := shared.Cleanup(ctx); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "warning: mongodb container cleanup: %v\n", err)
	}
	return code
}

// SharedMongoURI returns the URI of the package's shared container.
func SharedMongoURI() string {
	if shared == nil {
		panic("shared mongodb container not started; use SetupTestMainWithMongoDB")
	}
	return shared.URI
}

// DBName turns a test name into a unique database name.
func DBName(testName string) string {
	name := strings.NewReplacer("/", "_", "\\", "_", " ", "_", ".", "_").Replace(testName)
	if len(name) > 40 {
		name = name[:40]
	}
	return fmt.Sprintf("%s_%d", name, time.Now().UnixNano()%1_000_000)
}
