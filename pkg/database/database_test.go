package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"neolink/internal/models"
	"neolink/pkg/logger"
)

func TestDialector(t *testing.T) {
	for _, driver := range []string{"", "postgres", "mysql", "sqlite"} {
		d, err := Dialector(Config{Driver: driver, Path: ":memory:"})
		require.NoError(t, err, driver)
		assert.NotNil(t, d, driver)
	}

	_, err := Dialector(Config{Driver: "oracle"})
	assert.Error(t, err)
}

func TestConnectAndMigrateSQLite(t *testing.T) {
	log := logger.Nop()

	db, err := Connect(Config{Driver: "sqlite", Path: "file::memory:"}, log)
	require.NoError(t, err)

	require.NoError(t, Migrate(db, log))
	// second run must be a no-op
	require.NoError(t, Migrate(db, log))

	assert.True(t, db.Migrator().HasTable(&models.NEORecord{}))
	assert.True(t, db.Migrator().HasTable(&models.ApproachRecord{}))
	assert.True(t, db.Migrator().HasIndex(&models.ApproachRecord{}, "idx_approach_designation_time"))
}
