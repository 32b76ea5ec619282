package database

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/bookshelf/internal/entities"
)

func TestNewDatabase(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "audit.db")

	db, err := NewDatabase(dbPath)
	require.NoError(t, err)

	t.Run("migrates audit events", func(t *testing.T) {
		assert.True(t, db.DB.Migrator().HasTable(&entities.AuditEvent{}))
	})

	t.Run("ping succeeds while open", func(t *testing.T) {
		assert.NoError(t, db.Ping())
	})

	t.Run("ping fails after close", func(t *testing.T) {
		require.NoError(t, db.Close())
		assert.Error(t, db.Ping())
	})
}

func TestNewDatabase_InvalidPath(t *testing.T) {
	_, err := NewDatabase(filepath.Join(t.TempDir(), "missing", "dir", "audit.db"))
	assert.Error(t, err)
}
