package db

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestAutoMigrateRequiresInitialize(t *testing.T) {
	DB = nil
	assert.Error(t, AutoMigrate(Models()...))
	assert.NoError(t, Close())
}

func TestInitializeAndMigrate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.db")

	require.NoError(t, Initialize(path, "production", zap.NewNop()))
	t.Cleanup(func() {
		Close()
		DB = nil
	})

	require.NoError(t, AutoMigrate(Models()...))
	for _, table := range []string{"notaries", "partners", "act_categories", "appointments"} {
		assert.True(t, DB.Migrator().HasTable(table), table)
	}

	var mode string
	require.NoError(t, DB.Raw("PRAGMA journal_mode").Scan(&mode).Error)
	assert.Equal(t, "wal", mode)
}
