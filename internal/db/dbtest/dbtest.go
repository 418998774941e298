// Package dbtest opens throwaway in-memory SQLite databases for tests.
package dbtest

import (
	"context"
	"fmt"
	"testing"

	"github.com/d9705996/teamconnect/internal/config"
	"github.com/d9705996/teamconnect/internal/db"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// New returns a migrated, empty database private to the calling test.
func New(t testing.TB) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	gormDB, _, err := db.New(context.Background(), &config.DBConfig{Driver: "sqlite", File: dsn})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close(gormDB, nil) })
	return gormDB
}
