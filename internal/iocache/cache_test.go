package iocache

import (
	"database/sql"
	"os"
	"path/filepath"
	"testing"

	"github.com/huangsam/visulog/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCacheStoreSQLiteRoundTrip(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "cache.db")
	store, err := NewCacheStore(resultsTable, schema.SQLiteBackend, dbPath)
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	key := "abc123:authors"
	value := []byte(`{"text":"hello","div":"<div>hello</div>"}`)

	require.NoError(t, store.Set(key, value, 1, 1700000000))

	got, version, ts, err := store.Get(key)
	require.NoError(t, err)
	assert.Equal(t, value, got)
	assert.Equal(t, 1, version)
	assert.Equal(t, int64(1700000000), ts)
}

func TestCacheStoreSQLiteOverwrite(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "cache.db")
	store, err := NewCacheStore(resultsTable, schema.SQLiteBackend, dbPath)
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	key := "abc123:churn"
	require.NoError(t, store.Set(key, []byte("old"), 1, 100))
	require.NoError(t, store.Set(key, []byte("new"), 2, 200))

	got, version, ts, err := store.Get(key)
	require.NoError(t, err)
	assert.Equal(t, []byte("new"), got)
	assert.Equal(t, 2, version)
	assert.Equal(t, int64(200), ts)
}

func TestCacheStoreSQLiteMissingKey(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "cache.db")
	store, err := NewCacheStore(resultsTable, schema.SQLiteBackend, dbPath)
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	_, _, _, err = store.Get("no-such-key")
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestCacheStoreNoneBackend(t *testing.T) {
	store, err := NewCacheStore(resultsTable, schema.NoneBackend, "")
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	// Writes are silently dropped and reads always miss
	require.NoError(t, store.Set("key", []byte("value"), 1, 100))
	_, _, _, err = store.Get("key")
	assert.ErrorIs(t, err, sql.ErrNoRows)

	status, err := store.GetStatus()
	require.NoError(t, err)
	assert.False(t, status.Connected)
	assert.Equal(t, string(schema.NoneBackend), status.Backend)
}

func TestCacheStoreInvalidTableName(t *testing.T) {
	_, err := NewCacheStore("visulog; DROP TABLE x", schema.SQLiteBackend, filepath.Join(t.TempDir(), "cache.db"))
	require.Error(t, err)
}

func TestCacheStoreUnsupportedBackend(t *testing.T) {
	_, err := NewCacheStore(resultsTable, schema.DatabaseBackend("oracle"), "")
	require.Error(t, err)
}

func TestCacheStoreStatus(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "cache.db")
	store, err := NewCacheStore(resultsTable, schema.SQLiteBackend, dbPath)
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	require.NoError(t, store.Set("a", []byte("1"), 1, 100))
	require.NoError(t, store.Set("b", []byte("2"), 1, 300))

	status, err := store.GetStatus()
	require.NoError(t, err)
	assert.True(t, status.Connected)
	assert.Equal(t, int64(2), status.TotalEntries)
	assert.Equal(t, int64(300), status.LastEntryTime.Unix())
	assert.Equal(t, int64(100), status.OldestEntryTime.Unix())
}

func TestClearCacheSQLite(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "cache.db")
	store, err := NewCacheStore(resultsTable, schema.SQLiteBackend, dbPath)
	require.NoError(t, err)
	require.NoError(t, store.Set("a", []byte("1"), 1, 100))
	require.NoError(t, store.Close())

	require.NoError(t, ClearCache(schema.SQLiteBackend, dbPath, ""))
	_, err = os.Stat(dbPath)
	assert.True(t, os.IsNotExist(err))

	// Clearing again is a no-op
	require.NoError(t, ClearCache(schema.SQLiteBackend, dbPath, ""))
}

func TestClearCacheRequiresPath(t *testing.T) {
	err := ClearCache(schema.SQLiteBackend, "", "")
	require.Error(t, err)
}

func TestClearCacheNoneBackend(t *testing.T) {
	require.NoError(t, ClearCache(schema.NoneBackend, "", ""))
}
