package database

import (
	"database/sql"
	"os"
	"path/filepath"
	"testing"

	"taskmanager-backend/pkg/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConnection_SQLiteFile(t *testing.T) {
	cfg := config.Defaults()
	cfg.DBDriver = config.DriverSQLite
	cfg.DatabaseURL = filepath.Join(t.TempDir(), "nested", "tasks.db")

	db, err := NewConnection(cfg)
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	defer sqlDB.Close()

	require.NoError(t, sqlDB.Ping())
	_, err = os.Stat(cfg.DatabaseURL)
	assert.NoError(t, err)
}

func TestNewConnection_UnknownDriver(t *testing.T) {
	cfg := config.Defaults()
	cfg.DBDriver = "mongo"

	_, err := NewConnection(cfg)
	assert.Error(t, err)
}

func TestNewSQLiteConnection_UnicodeLower(t *testing.T) {
	db, err := NewSQLiteConnection(":memory:")
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	defer sqlDB.Close()

	tests := []struct {
		in   any
		want sql.NullString
	}{
		{"ÉTÉ Plans", sql.NullString{String: "été plans", Valid: true}},
		{"ÇA VA", sql.NullString{String: "ça va", Valid: true}},
		{"ascii", sql.NullString{String: "ascii", Valid: true}},
		{nil, sql.NullString{}},
	}
	for _, tt := range tests {
		var got sql.NullString
		require.NoError(t, sqlDB.QueryRow("SELECT LOWER(?)", tt.in).Scan(&got))
		assert.Equal(t, tt.want, got, "%v", tt.in)
	}
}
