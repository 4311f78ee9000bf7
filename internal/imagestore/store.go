// Package imagestore handles per-session image uploads: validation,
// bounded resizing, thumbnailing, and metadata bookkeeping in the
// per-user image document.
// See docs/ARCHITECTURE.md § Images.
package imagestore

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/mesh-intelligence/keepsake/internal/docstore"
	"github.com/mesh-intelligence/keepsake/internal/ident"
	"github.com/mesh-intelligence/keepsake/pkg/types"
)

// Store reads and writes image blobs and the per-user metadata document.
type Store struct {
	layout docstore.Layout
}

// New creates an image store rooted at dataDir.
func New(dataDir string) *Store {
	return &Store{layout: docstore.Layout{DataDir: dataDir}}
}

// Upload validates the file, derives the bounded original and thumbnail
// renditions, persists both blobs, and appends one metadata row to the
// session's list. Oversized or unsupported files are rejected with a
// ValidationError before anything is written.
func (s *Store) Upload(user string, sessionID int, filename string, data []byte, description string) (types.Image, error) {
	if len(data) > types.MaxUploadBytes {
		return types.Image{}, &types.ValidationError{
			Field:  "file",
			Reason: fmt.Sprintf("%d bytes exceeds the 5 MB limit", len(data)),
		}
	}
	if !types.AllowedImageExt(filename) {
		return types.Image{}, &types.ValidationError{
			Field:  "file",
			Reason: fmt.Sprintf("unsupported extension %q", filepath.Ext(filename)),
		}
	}

	src, err := decode(data)
	if err != nil {
		return types.Image{}, &types.ValidationError{Field: "file", Reason: err.Error()}
	}

	doc, err := s.load(user)
	if err != nil {
		return types.Image{}, err
	}

	id, err := ident.NewToken(func(candidate string) bool {
		return doc.hasID(candidate)
	})
	if err != nil {
		return types.Image{}, err
	}

	mediaDir := s.layout.MediaDir(user)
	if err := os.MkdirAll(mediaDir, 0o755); err != nil {
		return types.Image{}, fmt.Errorf("creating media dir: %w", err)
	}

	original := fitWithin(src, types.OriginalMaxWidth, types.OriginalMaxHeight)
	thumb := fitWithin(src, types.ThumbMaxWidth, types.ThumbMaxHeight)

	origBytes, ext, err := encode(original, filename)
	if err != nil {
		return types.Image{}, err
	}
	thumbBytes, _, err := encode(thumb, filename)
	if err != nil {
		return types.Image{}, err
	}

	origPath := filepath.Join(mediaDir, id+ext)
	thumbPath := filepath.Join(mediaDir, id+"_thumb"+ext)
	if err := os.WriteFile(origPath, origBytes, 0o644); err != nil {
		return types.Image{}, fmt.Errorf("writing original: %w", err)
	}
	if err := os.WriteFile(thumbPath, thumbBytes, 0o644); err != nil {
		os.Remove(origPath)
		return types.Image{}, fmt.Errorf("writing thumbnail: %w", err)
	}

	bounds := original.Bounds()
	img := types.Image{
		ID:               id,
		SessionID:        sessionID,
		OriginalFilename: filename,
		Description:      description,
		UploadDate:       time.Now().UTC(),
		Width:            bounds.Dx(),
		Height:           bounds.Dy(),
		OriginalPath:     origPath,
		ThumbPath:        thumbPath,
	}

	sk := strconv.Itoa(sessionID)
	doc.sessions[sk] = append(doc.sessions[sk], img)
	if err := s.save(user, doc); err != nil {
		os.Remove(origPath)
		os.Remove(thumbPath)
		return types.Image{}, err
	}
	return img, nil
}

// List returns the metadata rows for one session in upload order.
func (s *Store) List(user string, sessionID int) ([]types.Image, error) {
	doc, err := s.load(user)
	if err != nil {
		return nil, err
	}
	return doc.sessions[strconv.Itoa(sessionID)], nil
}

// ListAll returns every metadata row for the user, ordered by session id
// then upload order.
func (s *Store) ListAll(user string) ([]types.Image, error) {
	doc, err := s.load(user)
	if err != nil {
		return nil, err
	}
	keys := make([]string, 0, len(doc.sessions))
	for k := range doc.sessions {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		a, _ := strconv.Atoi(keys[i])
		b, _ := strconv.Atoi(keys[j])
		return a < b
	})
	var out []types.Image
	for _, k := range keys {
		out = append(out, doc.sessions[k]...)
	}
	return out, nil
}

// Delete removes the metadata row and both stored blobs together. A
// session whose image list becomes empty loses its key entirely. Returns
// types.ErrNotFound if the id is absent from the session.
func (s *Store) Delete(user string, sessionID int, imageID string) error {
	doc, err := s.load(user)
	if err != nil {
		return err
	}

	sk := strconv.Itoa(sessionID)
	rows := doc.sessions[sk]
	idx := -1
	for i, img := range rows {
		if img.ID == imageID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return types.ErrNotFound
	}

	removed := rows[idx]
	rows = append(rows[:idx], rows[idx+1:]...)
	if len(rows) == 0 {
		delete(doc.sessions, sk)
	} else {
		doc.sessions[sk] = rows
	}
	if err := s.save(user, doc); err != nil {
		return err
	}

	// Blobs go with the row. Missing blobs are not an error: the row is
	// already gone and a re-delete must not fail.
	for _, path := range []string{removed.OriginalPath, removed.ThumbPath} {
		if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
			return err
		}
	}
	return nil
}

// metadataDoc is the in-memory form of the per-user image document:
// session id → ordered image rows.
type metadataDoc struct {
	sessions map[string][]types.Image
}

func (d metadataDoc) hasID(id string) bool {
	for _, rows := range d.sessions {
		for _, img := range rows {
			if img.ID == id {
				return true
			}
		}
	}
	return false
}

// load reads the metadata document, self-healing anything unreadable: a
// corrupt document resets to empty, and a session value that is not
// list-shaped resets that portion, in both cases with a logged
// diagnostic rather than a failure.
func (s *Store) load(user string) (metadataDoc, error) {
	path := s.layout.ImagesPath(user)
	doc := metadataDoc{sessions: map[string][]types.Image{}}

	var raw map[string]json.RawMessage
	err := docstore.Read(path, &raw)
	switch {
	case errors.Is(err, os.ErrNotExist):
		return doc, nil
	case types.IsCorruption(err):
		slog.Warn("imagestore: resetting corrupt metadata document", "path", path, "err", err)
		return doc, nil
	case err != nil:
		return doc, err
	}

	for sk, val := range raw {
		var rows []types.Image
		if err := json.Unmarshal(val, &rows); err != nil {
			slog.Warn("imagestore: resetting malformed session entry", "path", path, "session", sk, "err", err)
			continue
		}
		if rows != nil {
			doc.sessions[sk] = rows
		}
	}
	return doc, nil
}

func (s *Store) save(user string, doc metadataDoc) error {
	return docstore.Write(s.layout.ImagesPath(user), doc.sessions)
}
