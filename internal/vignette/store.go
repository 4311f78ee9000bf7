// Package vignette stores freeform narrative entries with a
// draft/published lifecycle and attached image references.
// See docs/ARCHITECTURE.md § Vignettes.
package vignette

import (
	"encoding/json"
	"errors"
	"log/slog"
	"os"
	"sort"
	"time"

	"github.com/mesh-intelligence/keepsake/internal/docstore"
	"github.com/mesh-intelligence/keepsake/internal/ident"
	"github.com/mesh-intelligence/keepsake/pkg/types"
)

// Store reads and writes the per-user vignette document.
type Store struct {
	layout docstore.Layout
}

// New creates a vignette store rooted at dataDir.
func New(dataDir string) *Store {
	return &Store{layout: docstore.Layout{DataDir: dataDir}}
}

// Fields carries optional field changes for Update and Publish. Nil
// pointers leave the stored value untouched.
type Fields struct {
	Title   *string
	Content *string
	Theme   *string
	Mood    *string
	Images  *[]string
}

// Create stores a new vignette in draft or published state and returns
// it. The word count is computed from the markup-stripped content.
func (s *Store) Create(user, title, content, theme, mood string, draft bool, images []string) (types.Vignette, error) {
	entries, err := s.load(user)
	if err != nil {
		return types.Vignette{}, err
	}

	now := time.Now().UTC()
	v := types.Vignette{
		ID:        ident.NewID(),
		Title:     title,
		Content:   content,
		Theme:     theme,
		Mood:      mood,
		WordCount: CountWords(content),
		Draft:     draft,
		CreatedAt: now,
		UpdatedAt: now,
		Images:    images,
	}
	if !draft {
		v.PublishedAt = &now
	}

	entries = append(entries, v)
	if err := s.save(user, entries); err != nil {
		return types.Vignette{}, err
	}
	return v, nil
}

// Get returns one vignette by id. Returns types.ErrNotFound if absent.
func (s *Store) Get(user, id string) (types.Vignette, error) {
	entries, err := s.load(user)
	if err != nil {
		return types.Vignette{}, err
	}
	for _, v := range entries {
		if v.ID == id {
			return v, nil
		}
	}
	return types.Vignette{}, types.ErrNotFound
}

// Update applies the given field changes. The boolean reports whether
// the id was found; callers must check it rather than assume success.
func (s *Store) Update(user, id string, fields Fields) (types.Vignette, bool, error) {
	return s.mutate(user, id, func(v *types.Vignette) {
		applyFields(v, fields)
	})
}

// Publish transitions the vignette to published as one atomic update:
// the draft flag clears, PublishedAt is stamped, and any simultaneously
// supplied field changes persist in the same write.
func (s *Store) Publish(user, id string, fields Fields) (types.Vignette, bool, error) {
	return s.mutate(user, id, func(v *types.Vignette) {
		applyFields(v, fields)
		now := time.Now().UTC()
		v.Draft = false
		v.PublishedAt = &now
	})
}

// SetFeedback stores the AI-feedback collaborator's returned record
// verbatim against the vignette. The record is never inspected.
func (s *Store) SetFeedback(user, id string, record json.RawMessage) (bool, error) {
	_, ok, err := s.mutate(user, id, func(v *types.Vignette) {
		v.Feedback = record
	})
	return ok, err
}

// Delete removes the vignette entry. Attached image blobs are left in
// place: image ownership belongs to the image store, and its delete path
// is the only one that touches blobs. Returns types.ErrNotFound if the
// id is absent; every other stored entity is left unchanged.
func (s *Store) Delete(user, id string) error {
	entries, err := s.load(user)
	if err != nil {
		return err
	}
	kept := entries[:0]
	found := false
	for _, v := range entries {
		if v.ID == id {
			found = true
			continue
		}
		kept = append(kept, v)
	}
	if !found {
		return types.ErrNotFound
	}
	return s.save(user, kept)
}

// List returns vignettes matching the filter, sorted by UpdatedAt
// descending with ties broken by original insertion order.
func (s *Store) List(user string, filter types.VignetteFilter) ([]types.Vignette, error) {
	entries, err := s.load(user)
	if err != nil {
		return nil, err
	}

	var out []types.Vignette
	for _, v := range entries {
		switch filter {
		case types.VignettesPublished:
			if v.Draft {
				continue
			}
		case types.VignettesDrafts:
			if !v.Draft {
				continue
			}
		}
		out = append(out, v)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].UpdatedAt.After(out[j].UpdatedAt)
	})
	return out, nil
}

// mutate runs fn against the entry with the given id, recomputes the
// word count, stamps UpdatedAt, and persists. The boolean reports
// whether the id was found.
func (s *Store) mutate(user, id string, fn func(*types.Vignette)) (types.Vignette, bool, error) {
	entries, err := s.load(user)
	if err != nil {
		return types.Vignette{}, false, err
	}
	for i := range entries {
		if entries[i].ID != id {
			continue
		}
		fn(&entries[i])
		entries[i].WordCount = CountWords(entries[i].Content)
		entries[i].UpdatedAt = time.Now().UTC()
		if err := s.save(user, entries); err != nil {
			return types.Vignette{}, false, err
		}
		return entries[i], true, nil
	}
	return types.Vignette{}, false, nil
}

func applyFields(v *types.Vignette, fields Fields) {
	if fields.Title != nil {
		v.Title = *fields.Title
	}
	if fields.Content != nil {
		v.Content = *fields.Content
	}
	if fields.Theme != nil {
		v.Theme = *fields.Theme
	}
	if fields.Mood != nil {
		v.Mood = *fields.Mood
	}
	if fields.Images != nil {
		v.Images = *fields.Images
	}
}

// load reads the vignette document. The document is primary content:
// corruption surfaces as an empty list with a logged diagnostic instead
// of failing the caller.
func (s *Store) load(user string) ([]types.Vignette, error) {
	path := s.layout.VignettesPath(user)
	var entries []types.Vignette
	err := docstore.Read(path, &entries)
	switch {
	case err == nil || errors.Is(err, os.ErrNotExist):
		return entries, nil
	case types.IsCorruption(err):
		slog.Error("vignette: document corrupt, returning empty content", "path", path, "err", err)
		return nil, nil
	default:
		return nil, err
	}
}

func (s *Store) save(user string, entries []types.Vignette) error {
	if entries == nil {
		entries = []types.Vignette{}
	}
	return docstore.Write(s.layout.VignettesPath(user), entries)
}
