package database_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/mealboard/backend/internal/database"
	"github.com/pageza/mealboard/backend/internal/testhelpers"
)

func TestMigrateCreatesTables(t *testing.T) {
	db := testhelpers.NewSQLiteDB(t)

	for _, m := range database.Models() {
		assert.True(t, db.Migrator().HasTable(m), "missing table for %T", m)
	}
	// SQL files are Postgres only.
	require.NoError(t, database.Migrate(db, "../../migrations", nil))
	assert.False(t, db.Migrator().HasTable("migrations"))
}

func TestMigrateAppliesSQLFilesOnce(t *testing.T) {
	db := testhelpers.SetupPostgres(t)

	require.NoError(t, database.Migrate(db, "../../migrations", nil))
	require.NoError(t, database.Migrate(db, "../../migrations", nil))

	var applied int64
	require.NoError(t, db.Table("migrations").Count(&applied).Error)
	assert.Equal(t, int64(1), applied)

	var indexes int64
	require.NoError(t, db.Raw(
		"SELECT COUNT(*) FROM pg_indexes WHERE indexname = ?", "idx_recipes_title_lower",
	).Scan(&indexes).Error)
	assert.Equal(t, int64(1), indexes)
}
