package database_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/billbook/internal/database"
)

func TestNew_SQLiteCreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "bills.db")

	db, err := database.New("sqlite", path)
	require.NoError(t, err)
	defer db.Close()

	var one int
	require.NoError(t, db.QueryRow("SELECT 1").Scan(&one))
	assert.Equal(t, 1, one)
	assert.DirExists(t, filepath.Dir(path))
}

func TestNew_UnknownDriver(t *testing.T) {
	_, err := database.New("mssql", "whatever")
	assert.Error(t, err)
}
