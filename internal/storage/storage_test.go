package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := New(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestNew(t *testing.T) {
	tempDir := t.TempDir()

	store, err := New(tempDir)
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	defer store.Close()

	if store.db == nil {
		t.Error("Store database is nil")
	}

	dbPath := filepath.Join(tempDir, "houseprice.db")
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestNew_InvalidPath(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "does", "not", "exist")

	_, err := New(missing)
	if err == nil {
		t.Error("Expected error for missing directory, got nil")
	}
}

func TestStore_Close(t *testing.T) {
	store, err := New(t.TempDir())
	require.NoError(t, err)

	assert.NoError(t, store.Close())
	assert.NoError(t, store.Close(), "closing twice should be a no-op")
}

func TestStore_CloseNilDB(t *testing.T) {
	store := &Store{db: nil}
	assert.NoError(t, store.Close())
}

func TestStore_PutAndReadSamples(t *testing.T) {
	store := newTestStore(t)

	samples := []Sample{
		{Surface: 50, Pieces: 2, Prix: 150000},
		{Surface: 60, Pieces: 2, Prix: 180000},
		{Surface: 70, Pieces: 3, Prix: 210000},
	}
	require.NoError(t, store.PutSamples(samples))

	got, err := store.Samples()
	require.NoError(t, err)
	assert.Equal(t, samples, got)

	n, err := store.Count()
	require.NoError(t, err)
	assert.Equal(t, 3, n)
}

func TestStore_InsertionOrderBeyondTenKeys(t *testing.T) {
	store := newTestStore(t)

	var samples []Sample
	for i := 0; i < 25; i++ {
		samples = append(samples, Sample{Surface: float64(i), Pieces: 1, Prix: float64(i) * 1000})
	}
	// Two batches so sequences continue across transactions.
	require.NoError(t, store.PutSamples(samples[:12]))
	require.NoError(t, store.PutSamples(samples[12:]))

	got, err := store.Samples()
	require.NoError(t, err)
	assert.Equal(t, samples, got)
}

func TestStore_EmptyStore(t *testing.T) {
	store := newTestStore(t)

	got, err := store.Samples()
	require.NoError(t, err)
	assert.Empty(t, got)

	n, err := store.Count()
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}

func TestStore_Reset(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.PutSamples([]Sample{{Surface: 1, Pieces: 1, Prix: 1}}))

	require.NoError(t, store.Reset())

	n, err := store.Count()
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	require.NoError(t, store.PutSamples([]Sample{{Surface: 2, Pieces: 2, Prix: 2}}))
	got, err := store.Samples()
	require.NoError(t, err)
	assert.Equal(t, []Sample{{Surface: 2, Pieces: 2, Prix: 2}}, got)
}

func TestStore_Persistence(t *testing.T) {
	dir := t.TempDir()

	store, err := New(dir)
	require.NoError(t, err)
	require.NoError(t, store.PutSamples([]Sample{{Surface: 100, Pieces: 4, Prix: 300000}}))
	require.NoError(t, store.Close())

	reopened, err := New(dir)
	require.NoError(t, err)
	defer reopened.Close()

	got, err := reopened.Samples()
	require.NoError(t, err)
	assert.Equal(t, []Sample{{Surface: 100, Pieces: 4, Prix: 300000}}, got)
}
