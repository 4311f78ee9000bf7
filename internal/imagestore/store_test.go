// Unit tests for image upload validation, resizing, deletion, and
// metadata self-healing.
package imagestore

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"testing"

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

// pngBytes renders a w×h PNG for upload tests.
func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x += 10 {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: 200, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestUploadRejectsOversizedFile(t *testing.T) {
	s, _ := setupStore(t)

	_, err := s.Upload(testUser, 1, "big.png", make([]byte, 6*1024*1024), "")
	var ve *types.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, ve.Reason, "5 MB")
}

func TestUploadRejectsUnsupportedExtension(t *testing.T) {
	s, _ := setupStore(t)

	_, err := s.Upload(testUser, 1, "notes.pdf", []byte("%PDF"), "")
	var ve *types.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, ve.Reason, ".pdf")
}

func TestUploadRejectsUndecodableContent(t *testing.T) {
	s, _ := setupStore(t)

	_, err := s.Upload(testUser, 1, "fake.png", []byte("not an image"), "")
	var ve *types.ValidationError
	assert.ErrorAs(t, err, &ve)
}

func TestUploadStoresBothRenditions(t *testing.T) {
	s, _ := setupStore(t)

	img, err := s.Upload(testUser, 3, "holiday.png", pngBytes(t, 640, 480), "beach day")
	require.NoError(t, err)

	assert.NotEmpty(t, img.ID)
	assert.Equal(t, 3, img.SessionID)
	assert.Equal(t, 640, img.Width)
	assert.Equal(t, 480, img.Height)
	assert.FileExists(t, img.OriginalPath)
	assert.FileExists(t, img.ThumbPath)

	rows, err := s.List(testUser, 3)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "beach day", rows[0].Description)
}

func TestUploadBoundsLargeImages(t *testing.T) {
	s, _ := setupStore(t)

	img, err := s.Upload(testUser, 1, "pano.png", pngBytes(t, 3840, 1080), "")
	require.NoError(t, err)

	// Longest dimension capped at 1920, aspect preserved.
	assert.Equal(t, 1920, img.Width)
	assert.Equal(t, 540, img.Height)

	data, err := os.ReadFile(img.ThumbPath)
	require.NoError(t, err)
	thumb, _, err := image.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.LessOrEqual(t, thumb.Bounds().Dx(), 400)
	assert.LessOrEqual(t, thumb.Bounds().Dy(), 400)
}

func TestDeleteRemovesRowAndBlobs(t *testing.T) {
	s, _ := setupStore(t)

	img, err := s.Upload(testUser, 2, "a.png", pngBytes(t, 100, 100), "")
	require.NoError(t, err)
	other, err := s.Upload(testUser, 2, "b.png", pngBytes(t, 100, 100), "")
	require.NoError(t, err)

	require.NoError(t, s.Delete(testUser, 2, img.ID))
	assert.NoFileExists(t, img.OriginalPath)
	assert.NoFileExists(t, img.ThumbPath)

	rows, err := s.List(testUser, 2)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, other.ID, rows[0].ID)

	assert.ErrorIs(t, s.Delete(testUser, 2, img.ID), types.ErrNotFound)
}

func TestDeleteLastImageDropsSessionKey(t *testing.T) {
	s, dir := setupStore(t)

	img, err := s.Upload(testUser, 5, "only.png", pngBytes(t, 50, 50), "")
	require.NoError(t, err)
	require.NoError(t, s.Delete(testUser, 5, img.ID))

	var raw map[string]any
	layout := docstore.Layout{DataDir: dir}
	require.NoError(t, docstore.Read(layout.ImagesPath(testUser), &raw))
	_, exists := raw["5"]
	assert.False(t, exists, "emptied session key should be removed")
}

func TestMetadataSelfHeals(t *testing.T) {
	s, dir := setupStore(t)
	layout := docstore.Layout{DataDir: dir}
	require.NoError(t, os.MkdirAll(layout.UserDir(testUser), 0o755))

	t.Run("unreadable document resets to empty", func(t *testing.T) {
		require.NoError(t, os.WriteFile(layout.ImagesPath(testUser), []byte("]["), 0o644))
		rows, err := s.List(testUser, 1)
		require.NoError(t, err)
		assert.Empty(t, rows)
	})

	t.Run("non-list session value resets that portion only", func(t *testing.T) {
		doc := `{"1": "not a list", "2": [{"id":"keep","session_id":2,"original_filename":"x.png"}]}`
		require.NoError(t, os.WriteFile(layout.ImagesPath(testUser), []byte(doc), 0o644))

		rows, err := s.List(testUser, 1)
		require.NoError(t, err)
		assert.Empty(t, rows)

		rows, err = s.List(testUser, 2)
		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Equal(t, "keep", rows[0].ID)
	})
}
