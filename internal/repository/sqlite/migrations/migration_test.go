package migrations

import (
	"database/sql"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestRunMigrations_CreatesTasksTable(t *testing.T) {
	db := openTestDB(t)

	require.NoError(t, RunMigrations(db))

	_, err := db.Exec(`INSERT INTO tasks (id, name, status) VALUES ('a', 'Buy milk', 'Incomplete')`)
	require.NoError(t, err)

	var description string
	require.NoError(t, db.QueryRow(`SELECT description FROM tasks WHERE id = 'a'`).Scan(&description))
	assert.Equal(t, "", description)
}

func TestRunMigrations_Idempotent(t *testing.T) {
	db := openTestDB(t)

	require.NoError(t, RunMigrations(db))
	require.NoError(t, RunMigrations(db))

	var count int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM migrations").Scan(&count))
	assert.Equal(t, 1, count)
}

func TestRunMigrations_StatusConstraint(t *testing.T) {
	db := openTestDB(t)
	require.NoError(t, RunMigrations(db))

	_, err := db.Exec(`INSERT INTO tasks (id, name, status) VALUES ('a', 'x', 'Done')`)
	assert.Error(t, err)

	_, err = db.Exec(`INSERT INTO tasks (id, name, status) VALUES ('b', '', 'Complete')`)
	assert.Error(t, err)
}

func TestRunMigrations_DirtyDatabase(t *testing.T) {
	db := openTestDB(t)

	_, err := db.Exec(`
		CREATE TABLE migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			dirty BOOLEAN DEFAULT FALSE
		)
	`)
	require.NoError(t, err)

	_, err = db.Exec("INSERT INTO migrations (version, dirty) VALUES (1, TRUE)")
	require.NoError(t, err)

	err = RunMigrations(db)
	require.Error(t, err)
	if !strings.Contains(err.Error(), "database is in a dirty state") {
		t.Errorf("expected error to mention dirty state, got: %v", err)
	}
	if !strings.Contains(err.Error(), "failed migration(s): [1]") {
		t.Errorf("expected error to mention failed migration version 1, got: %v", err)
	}
}

func TestMarkDirty(t *testing.T) {
	db := openTestDB(t)
	require.NoError(t, createMigrationsTable(db))

	require.NoError(t, markDirty(db, 2))
	dirty, err := getDirtyMigrations(db)
	require.NoError(t, err)
	assert.Equal(t, []int{2}, dirty)

	require.NoError(t, db.Close())
	assert.Error(t, markDirty(db, 3), "a failed write must be reported")
}

func TestLoadMigrations_UpOnly(t *testing.T) {
	migrations, err := loadMigrations()
	require.NoError(t, err)
	require.Len(t, migrations, 1)
	assert.Equal(t, 1, migrations[0].Version)
	assert.Contains(t, migrations[0].Up, "CREATE TABLE IF NOT EXISTS tasks")
}

func TestExtractVersion(t *testing.T) {
	assert.Equal(t, 1, extractVersion("000001_create_tasks.up.sql"))
	assert.Equal(t, 0, extractVersion("readme.sql"))
}
