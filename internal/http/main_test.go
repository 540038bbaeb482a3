//go:build integration

package http

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/egorTorshin/EnergyValue-Telegram-Bot/internal/repository"
	"github.com/egorTorshin/EnergyValue-Telegram-Bot/internal/testutil"
)

// TestMain sets up a shared MongoDB container for all HTTP integration tests in this package.
func TestMain(m *testing.M) {
	os.Exit(testutil.SetupTestMainWithMongoDB(context.Background(), m))
}

func setupTestDB(t *testing.T) *repository.MongoDB {
	t.Helper()
	db, err := repository.NewMongoDB(testutil.SharedMongoURI(), testutil.DBName(t.Name()))
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = db.Database.Drop(context.Background())
		_ = db.Close(context.Background())
	})
	return db
}
