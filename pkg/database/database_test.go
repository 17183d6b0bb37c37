package database

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenCreatesSchema(t *testing.T) {
	db, err := Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	defer db.Close()

	for _, table := range []string{"users", "charity_projects", "donations"} {
		var name string
		err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?`, table).Scan(&name)
		assert.NoError(t, err, "table %s", table)
	}
}

func TestRunSQLScriptsIsIdempotent(t *testing.T) {
	db, err := Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	defer db.Close()

	assert.NoError(t, RunSQLScripts(db))
}

func TestCloseDateCheckConstraint(t *testing.T) {
	db, err := Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	defer db.Close()

	_, err = db.Exec(`
		INSERT INTO charity_projects (name, description, full_amount, invested_amount, fully_invested, create_date)
		VALUES ('p', 'd', '10', '10', 1, CURRENT_TIMESTAMP)
	`)
	assert.Error(t, err, "closed project without close_date must be rejected")
}
