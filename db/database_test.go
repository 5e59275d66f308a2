package db

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTursoDSN(t *testing.T) {
	assert.Equal(t, "libsql://metanoia.turso.io", tursoDSN("libsql://metanoia.turso.io", ""))

	dsn := tursoDSN("libsql://metanoia.turso.io", "tok123")
	u, err := url.Parse(dsn)
	require.NoError(t, err)
	assert.Equal(t, "tok123", u.Query().Get("authToken"))
	assert.Equal(t, "metanoia.turso.io", u.Host)
}

func TestInitializeLocalAndClose(t *testing.T) {
	path := t.TempDir() + "/test.db"
	require.NoError(t, Initialize(Options{Path: path, Environment: "production"}))
	assert.NotNil(t, DB)

	type sample struct {
		ID   uint
		Name string
	}
	require.NoError(t, AutoMigrate(&sample{}))
	assert.NoError(t, DB.Create(&sample{Name: "ok"}).Error)
	assert.NoError(t, Close())
}

func TestAutoMigrateWithoutDB(t *testing.T) {
	saved := DB
	DB = nil
	defer func() { DB = saved }()

	assert.Error(t, AutoMigrate())
	assert.NoError(t, Close())
}
