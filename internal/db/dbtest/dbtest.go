// Package dbtest opens throwaway in-memory databases for tests.
package dbtest

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/Skotchmaster/storefront/internal/db"
)

func New(t *testing.T) *gorm.DB {
	t.Helper()

	conn, err := db.Open(context.Background(), "sqlite://:memory:")
	require.NoError(t, err, "open in-memory db")
	require.NoError(t, db.Migrate(conn))

	t.Cleanup(func() {
		_ = db.Close(conn)
	})
	return conn
}
