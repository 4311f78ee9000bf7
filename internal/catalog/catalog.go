// Package catalog maintains the cached per-user bank summaries. The
// catalog is a plain keyed summary store over the bank detail documents
// and is never authoritative: counts are recomputed by callers at save
// time, and Rebuild regenerates the whole document from the detail files
// when the two have drifted.
// See docs/ARCHITECTURE.md § Catalog.
package catalog

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/mesh-intelligence/keepsake/internal/docstore"
	"github.com/mesh-intelligence/keepsake/pkg/types"
)

// Store reads and writes the per-user catalog document.
type Store struct {
	layout docstore.Layout
}

// New creates a catalog store rooted at dataDir.
func New(dataDir string) *Store {
	return &Store{layout: docstore.Layout{DataDir: dataDir}}
}

// List returns the catalog entries for a user in stored order.
func (s *Store) List(user string) ([]types.BankSummary, error) {
	return s.load(user)
}

// Get returns the catalog entry for one bank.
// Returns types.ErrNotFound if no entry exists.
func (s *Store) Get(user, bankID string) (types.BankSummary, error) {
	entries, err := s.load(user)
	if err != nil {
		return types.BankSummary{}, err
	}
	for _, e := range entries {
		if e.BankID == bankID {
			return e, nil
		}
	}
	return types.BankSummary{}, types.ErrNotFound
}

// Put inserts or replaces the entry for sum.BankID, preserving the
// position of an existing entry and appending new ones.
func (s *Store) Put(user string, sum types.BankSummary) error {
	entries, err := s.load(user)
	if err != nil {
		return err
	}
	replaced := false
	for i, e := range entries {
		if e.BankID == sum.BankID {
			entries[i] = sum
			replaced = true
			break
		}
	}
	if !replaced {
		entries = append(entries, sum)
	}
	return s.save(user, entries)
}

// Delete removes the entry for bankID. Removing an absent entry is not an
// error: the catalog is a cache, and deleteBank's ordering can legally
// leave it without a matching detail document.
func (s *Store) Delete(user, bankID string) error {
	entries, err := s.load(user)
	if err != nil {
		return err
	}
	kept := entries[:0]
	for _, e := range entries {
		if e.BankID != bankID {
			kept = append(kept, e)
		}
	}
	return s.save(user, kept)
}

// Rebuild discards the existing catalog and regenerates every entry by
// rescanning the user's bank detail documents. This is the designated
// recovery path after catalog/detail drift. Detail documents that fail to
// parse are skipped with a logged diagnostic.
func (s *Store) Rebuild(user string) error {
	dir := s.layout.BanksDir(user)
	dirEntries, err := os.ReadDir(dir)
	if errors.Is(err, os.ErrNotExist) {
		return s.save(user, nil)
	}
	if err != nil {
		return err
	}

	var entries []types.BankSummary
	for _, de := range dirEntries {
		name := de.Name()
		if de.IsDir() || !strings.HasSuffix(name, ".json") {
			continue
		}
		var bank types.Bank
		path := filepath.Join(dir, name)
		if err := docstore.Read(path, &bank); err != nil {
			slog.Warn("catalog: skipping unreadable bank detail", "path", path, "err", err)
			continue
		}
		entries = append(entries, bank.Summarize())
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].CreatedAt.Before(entries[j].CreatedAt)
	})
	return s.save(user, entries)
}

// load reads the catalog document. A missing document is an empty
// catalog; a corrupt one self-heals to empty with a logged diagnostic.
func (s *Store) load(user string) ([]types.BankSummary, error) {
	path := s.layout.CatalogPath(user)
	var entries []types.BankSummary
	err := docstore.Read(path, &entries)
	switch {
	case err == nil:
		return entries, nil
	case errors.Is(err, os.ErrNotExist):
		return nil, nil
	case types.IsCorruption(err):
		slog.Warn("catalog: resetting corrupt document", "path", path, "err", err)
		return nil, s.save(user, nil)
	default:
		return nil, err
	}
}

func (s *Store) save(user string, entries []types.BankSummary) error {
	if entries == nil {
		entries = []types.BankSummary{}
	}
	return docstore.Write(s.layout.CatalogPath(user), entries)
}
