// Unit tests for catalog get/put/delete, self-heal, and rebuild.
package catalog

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/keepsake/internal/docstore"
	"github.com/mesh-intelligence/keepsake/pkg/types"
)

const testUser = "default"

func setupStore(t *testing.T) (*Store, string) {
	t.Helper()
	dir := t.TempDir()
	return New(dir), dir
}

func TestPutGetDelete(t *testing.T) {
	s, _ := setupStore(t)

	sum := types.BankSummary{BankID: "b1", Name: "Family", SessionCount: 2, TopicCount: 5}
	require.NoError(t, s.Put(testUser, sum))

	got, err := s.Get(testUser, "b1")
	require.NoError(t, err)
	assert.Equal(t, sum, got)

	// Upsert replaces in place.
	sum.TopicCount = 7
	require.NoError(t, s.Put(testUser, sum))
	entries, err := s.List(testUser)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, 7, entries[0].TopicCount)

	require.NoError(t, s.Delete(testUser, "b1"))
	_, err = s.Get(testUser, "b1")
	assert.ErrorIs(t, err, types.ErrNotFound)
}

func TestDeleteAbsentEntryIsNoop(t *testing.T) {
	s, _ := setupStore(t)
	require.NoError(t, s.Put(testUser, types.BankSummary{BankID: "keep"}))
	require.NoError(t, s.Delete(testUser, "missing"))

	entries, err := s.List(testUser)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestCorruptCatalogSelfHeals(t *testing.T) {
	s, dir := setupStore(t)
	layout := docstore.Layout{DataDir: dir}

	path := layout.CatalogPath(testUser)
	require.NoError(t, os.MkdirAll(layout.UserDir(testUser), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("not json"), 0o644))

	entries, err := s.List(testUser)
	require.NoError(t, err)
	assert.Empty(t, entries)

	// The healed document is valid for subsequent writes.
	require.NoError(t, s.Put(testUser, types.BankSummary{BankID: "b1"}))
	entries, err = s.List(testUser)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestRebuildRegeneratesFromDetailDocuments(t *testing.T) {
	s, dir := setupStore(t)
	layout := docstore.Layout{DataDir: dir}

	older := types.Bank{
		ID:        "b1",
		Name:      "Family",
		CreatedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		Sessions: []types.Session{
			{ID: 1, Title: "Roots", Questions: []string{"a", "b"}},
		},
	}
	newer := types.Bank{
		ID:        "b2",
		Name:      "Travel",
		CreatedAt: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		Sessions: []types.Session{
			{ID: 1, Title: "Trips", Questions: []string{"a", "b", "c"}},
		},
	}
	require.NoError(t, docstore.Write(layout.BankPath(testUser, older.ID), older))
	require.NoError(t, docstore.Write(layout.BankPath(testUser, newer.ID), newer))

	// Seed a drifted catalog: wrong counts plus a dangling entry.
	require.NoError(t, s.Put(testUser, types.BankSummary{BankID: "b1", SessionCount: 99}))
	require.NoError(t, s.Put(testUser, types.BankSummary{BankID: "ghost"}))

	require.NoError(t, s.Rebuild(testUser))

	entries, err := s.List(testUser)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "b1", entries[0].BankID)
	assert.Equal(t, 1, entries[0].SessionCount)
	assert.Equal(t, 2, entries[0].TopicCount)
	assert.Equal(t, "b2", entries[1].BankID)
	assert.Equal(t, 3, entries[1].TopicCount)
}

func TestRebuildSkipsCorruptDetail(t *testing.T) {
	s, dir := setupStore(t)
	layout := docstore.Layout{DataDir: dir}

	good := types.Bank{ID: "good", Name: "Good", Sessions: []types.Session{{ID: 1, Questions: []string{"q"}}}}
	require.NoError(t, docstore.Write(layout.BankPath(testUser, good.ID), good))
	require.NoError(t, os.WriteFile(layout.BankPath(testUser, "bad"), []byte("{"), 0o644))

	require.NoError(t, s.Rebuild(testUser))
	entries, err := s.List(testUser)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "good", entries[0].BankID)
}
