package testutil

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"portfolio/internal/db"
)

// NewDB opens a fresh, migrated in-memory sqlite database with foreign keys
// enforced. The database disappears when the test finishes.
func NewDB(t testing.TB) *gorm.DB {
	t.Helper()

	gormDB, err := db.Open("sqlite", db.SQLiteDSN(uuid.NewString()), "silent")
	require.NoError(t, err)
	require.NoError(t, db.Migrate(gormDB))

	sqlDB, err := gormDB.DB()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	return gormDB
}
