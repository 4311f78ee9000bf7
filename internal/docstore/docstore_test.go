// Unit tests for whole-document read/write and corruption classification.
package docstore

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/keepsake/pkg/types"
)

type sampleDoc struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func TestWriteReadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "doc.json")

	want := sampleDoc{Name: "family", Count: 3}
	require.NoError(t, Write(path, want))

	var got sampleDoc
	require.NoError(t, Read(path, &got))
	assert.Equal(t, want, got)
}

func TestReadMissingFile(t *testing.T) {
	var got sampleDoc
	err := Read(filepath.Join(t.TempDir(), "absent.json"), &got)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestReadCorruptDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.json")
	require.NoError(t, os.WriteFile(path, []byte("{truncated"), 0o644))

	var got sampleDoc
	err := Read(path, &got)
	require.Error(t, err)
	assert.True(t, types.IsCorruption(err), "expected CorruptionError, got %v", err)
}

func TestWritePreservesCommittedStateOnOverwrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.json")
	require.NoError(t, Write(path, sampleDoc{Name: "first"}))
	require.NoError(t, Write(path, sampleDoc{Name: "second"}))

	var got sampleDoc
	require.NoError(t, Read(path, &got))
	assert.Equal(t, "second", got.Name)

	// No temp files left behind.
	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestRemove(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.json")
	require.NoError(t, Write(path, sampleDoc{}))

	assert.True(t, Exists(path))
	require.NoError(t, Remove(path))
	assert.False(t, Exists(path))
	assert.ErrorIs(t, Remove(path), types.ErrNotFound)
}

func TestLayoutPaths(t *testing.T) {
	l := Layout{DataDir: "/data"}
	assert.Equal(t, "/data/users/default/banks/b1.json", l.BankPath("default", "b1"))
	assert.Equal(t, "/data/users/default/catalog.json", l.CatalogPath("default"))
	assert.Equal(t, "/data/users/default/media", l.MediaDir("default"))
	assert.Equal(t, "/data/index.db", l.IndexPath())
}
