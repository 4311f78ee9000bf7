// Package bank implements the bank repository: CRUD over per-user
// question banks, the read-only default banks, and the flat-row
// interchange used for export and import.
// See docs/ARCHITECTURE.md § Bank Repository.
package bank

import (
	"errors"
	"log/slog"
	"os"
	"time"

	"github.com/mesh-intelligence/keepsake/internal/catalog"
	"github.com/mesh-intelligence/keepsake/internal/docstore"
	"github.com/mesh-intelligence/keepsake/internal/ident"
	"github.com/mesh-intelligence/keepsake/pkg/types"
)

// CustomBankID is the reserved per-user bank holding sessions created
// outside any bank. Its sessions use the custom id offset so the
// flattened all-sessions view stays collision-free.
const CustomBankID = "custom"

// Repository provides bank CRUD. Every mutation is a whole-document
// read-modify-write; the catalog entry is refreshed on each save with
// counts recomputed from the just-saved content.
type Repository struct {
	layout  docstore.Layout
	catalog *catalog.Store
}

// New creates a repository rooted at dataDir, sharing the given catalog
// store.
func New(dataDir string, cat *catalog.Store) *Repository {
	return &Repository{
		layout:  docstore.Layout{DataDir: dataDir},
		catalog: cat,
	}
}

// ListDefaultBanks returns catalog-shaped summaries of the embedded
// banks, recomputed on each call.
func (r *Repository) ListDefaultBanks() []types.BankSummary {
	var out []types.BankSummary
	for _, db := range defaultBanks {
		b, err := loadDefaultBank(db.id)
		if err != nil {
			// Embedded content; a parse failure is a build defect.
			slog.Error("bank: embedded bank failed to load", "id", db.id, "err", err)
			continue
		}
		sum := b.Summarize()
		sum.Default = true
		out = append(out, sum)
	}
	return out
}

// ListUserBanks returns the persisted catalog entries for the user.
func (r *Repository) ListUserBanks(user string) ([]types.BankSummary, error) {
	return r.catalog.List(user)
}

// CreateBank allocates a new bank. With copyFrom set, the source bank
// (default or user) is deep-copied so the new bank is independently
// mutable; an unresolved source fails with types.ErrNotFound. The detail
// document is persisted first, then the catalog entry with recomputed
// counts.
func (r *Repository) CreateBank(user, name, description, copyFrom string) (types.Bank, error) {
	b := types.Bank{Name: name, Description: description, Sessions: []types.Session{}}

	if copyFrom != "" {
		src, err := r.LoadBank(user, copyFrom)
		if err != nil {
			return types.Bank{}, err
		}
		b.Sessions = src.Clone().Sessions
	}

	id, err := ident.NewToken(func(candidate string) bool {
		return isDefaultBank(candidate) || docstore.Exists(r.layout.BankPath(user, candidate))
	})
	if err != nil {
		return types.Bank{}, err
	}

	now := time.Now().UTC()
	b.ID = id
	b.CreatedAt = now
	b.UpdatedAt = now

	if err := docstore.Write(r.layout.BankPath(user, b.ID), b); err != nil {
		return types.Bank{}, err
	}
	if err := r.catalog.Put(user, b.Summarize()); err != nil {
		return types.Bank{}, err
	}
	return b, nil
}

// LoadBank returns the full bank content. User banks shadow nothing:
// default ids resolve to the embedded banks, everything else to the
// user's detail documents. Returns types.ErrNotFound if neither exists.
// A corrupt detail document surfaces as the bank with no sessions, with
// a logged diagnostic, rather than failing the caller.
func (r *Repository) LoadBank(user, bankID string) (types.Bank, error) {
	if isDefaultBank(bankID) {
		return loadDefaultBank(bankID)
	}

	path := r.layout.BankPath(user, bankID)
	var b types.Bank
	err := docstore.Read(path, &b)
	switch {
	case err == nil:
		return b, nil
	case errors.Is(err, os.ErrNotExist):
		return types.Bank{}, types.ErrNotFound
	case types.IsCorruption(err):
		slog.Error("bank: detail document corrupt, returning empty content", "path", path, "err", err)
		return types.Bank{ID: bankID, Sessions: []types.Session{}}, nil
	default:
		return types.Bank{}, err
	}
}

// SaveBank overwrites the bank's session list, stamps UpdatedAt, and
// refreshes the catalog entry with counts recomputed from the saved
// content. Fails with types.ErrNotFound if the bank does not exist and
// types.ErrBankReadOnly for default banks.
func (r *Repository) SaveBank(user, bankID string, sessions []types.Session) (types.Bank, error) {
	if isDefaultBank(bankID) {
		return types.Bank{}, types.ErrBankReadOnly
	}
	b, err := r.LoadBank(user, bankID)
	if err != nil {
		return types.Bank{}, err
	}

	b.Sessions = sessions
	b.UpdatedAt = time.Now().UTC()

	if err := docstore.Write(r.layout.BankPath(user, bankID), b); err != nil {
		return types.Bank{}, err
	}
	if err := r.catalog.Put(user, b.Summarize()); err != nil {
		return types.Bank{}, err
	}
	return b, nil
}

// DeleteBank removes the detail document, then the catalog entry. The
// ordering is deliberate: a crash in between leaves a dangling catalog
// entry (cleared by rebuild) rather than unreachable detail content.
func (r *Repository) DeleteBank(user, bankID string) error {
	if isDefaultBank(bankID) {
		return types.ErrBankReadOnly
	}
	if err := docstore.Remove(r.layout.BankPath(user, bankID)); err != nil {
		return err
	}
	return r.catalog.Delete(user, bankID)
}

// ExportFlatRows flattens the bank to the canonical interchange rows.
func (r *Repository) ExportFlatRows(user, bankID string) ([]types.FlatRow, error) {
	b, err := r.LoadBank(user, bankID)
	if err != nil {
		return nil, err
	}
	return FlattenSessions(b.Sessions), nil
}

// ImportFlatRows merges flat rows into sessions and saves them as the
// bank's new content.
func (r *Repository) ImportFlatRows(user, bankID string, rows []types.FlatRow) (types.Bank, error) {
	return r.SaveBank(user, bankID, MergeSessions(rows))
}

// CreateCustomSession appends a session to the user's reserved custom
// bank, creating the bank on first use. Ids are allocated from the
// custom offset so they never collide with bank-local session ids.
func (r *Repository) CreateCustomSession(user, title, guidance string, questions []string, wordTarget int) (types.Session, error) {
	b, err := r.LoadBank(user, CustomBankID)
	if errors.Is(err, types.ErrNotFound) {
		now := time.Now().UTC()
		b = types.Bank{
			ID:        CustomBankID,
			Name:      "Custom Sessions",
			CreatedAt: now,
			UpdatedAt: now,
			Sessions:  []types.Session{},
		}
		if err := docstore.Write(r.layout.BankPath(user, CustomBankID), b); err != nil {
			return types.Session{}, err
		}
		if err := r.catalog.Put(user, b.Summarize()); err != nil {
			return types.Session{}, err
		}
	} else if err != nil {
		return types.Session{}, err
	}

	nextID := types.CustomSessionIDOffset
	for _, s := range b.Sessions {
		if s.ID >= nextID {
			nextID = s.ID + 1
		}
	}
	if wordTarget == 0 {
		wordTarget = types.DefaultWordTarget
	}
	s := types.Session{
		ID:         nextID,
		Title:      title,
		Guidance:   guidance,
		Questions:  questions,
		WordTarget: wordTarget,
	}

	if _, err := r.SaveBank(user, CustomBankID, append(b.Sessions, s)); err != nil {
		return types.Session{}, err
	}
	return s, nil
}

// AllSessions returns the flattened merged view for one bank: its
// sessions followed by the user's custom sessions. Bank-local ids stay
// below the custom offset, so the combined view is collision-free.
func (r *Repository) AllSessions(user, bankID string) ([]types.Session, error) {
	b, err := r.LoadBank(user, bankID)
	if err != nil {
		return nil, err
	}
	out := append([]types.Session{}, b.Sessions...)
	if bankID == CustomBankID {
		return out, nil
	}

	custom, err := r.LoadBank(user, CustomBankID)
	if err != nil && !errors.Is(err, types.ErrNotFound) {
		return nil, err
	}
	out = append(out, custom.Sessions...)
	return out, nil
}
