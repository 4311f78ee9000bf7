// Package index maintains the SQLite search index over sessions and
// vignettes. The per-user JSON documents remain the source of truth: the
// index is recreated from scratch on open and only ever written by
// Rebuild, so it can never drift in a way a rebuild does not fix.
// See docs/ARCHITECTURE.md § Search Index.
package index

import (
	"database/sql"
	_ "embed"
	"fmt"
	"os"
	"strings"

	_ "modernc.org/sqlite"

	"github.com/mesh-intelligence/keepsake/pkg/types"
)

//go:embed schema.sql
var schemaSQL string

// Index wraps the search database.
type Index struct {
	db *sql.DB
}

// Open creates a fresh index database at path. Any existing file is
// removed first; the index is disposable by design.
func Open(path string) (*Index, error) {
	_ = os.Remove(path)

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening index: %w", err)
	}
	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating index schema: %w", err)
	}
	return &Index{db: db}, nil
}

// Close releases the database handle.
func (x *Index) Close() error {
	return x.db.Close()
}

// Rebuild loads the given banks and vignettes into the index inside one
// transaction, replacing whatever was there.
func (x *Index) Rebuild(banks []types.Bank, vignettes []types.Vignette) error {
	tx, err := x.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning rebuild: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM sessions"); err != nil {
		return err
	}
	if _, err := tx.Exec("DELETE FROM vignettes"); err != nil {
		return err
	}

	for _, b := range banks {
		for _, s := range b.Sessions {
			for _, q := range s.Questions {
				_, err := tx.Exec(
					"INSERT INTO sessions (bank_id, bank_name, session_id, title, guidance, question) VALUES (?, ?, ?, ?, ?, ?)",
					b.ID, b.Name, s.ID, s.Title, s.Guidance, q,
				)
				if err != nil {
					return fmt.Errorf("indexing bank %s session %d: %w", b.ID, s.ID, err)
				}
			}
		}
	}

	for _, v := range vignettes {
		published := 0
		if v.Published() {
			published = 1
		}
		_, err := tx.Exec(
			"INSERT INTO vignettes (vignette_id, title, content, theme, mood, published) VALUES (?, ?, ?, ?, ?, ?)",
			v.ID, v.Title, v.Content, v.Theme, v.Mood, published,
		)
		if err != nil {
			return fmt.Errorf("indexing vignette %s: %w", v.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing rebuild: %w", err)
	}
	return nil
}

// Hit kinds.
const (
	HitSession  = "session"
	HitVignette = "vignette"
)

// Hit is one search result with enough provenance to jump to the match.
type Hit struct {
	Kind       string
	BankID     string
	BankName   string
	SessionID  int
	VignetteID string
	Title      string
	Snippet    string
}

// snippetLen bounds the matched text carried back in a hit.
const snippetLen = 120

// Search returns case-insensitive substring matches over session titles,
// guidance, and questions, and vignette titles and content. Session hits
// come first, then vignettes, each in storage order.
func (x *Index) Search(query string) ([]Hit, error) {
	pattern := "%" + strings.ToLower(query) + "%"
	var hits []Hit

	rows, err := x.db.Query(
		`SELECT bank_id, bank_name, session_id, title, question FROM sessions
		 WHERE lower(title) LIKE ?1 OR lower(guidance) LIKE ?1 OR lower(question) LIKE ?1`,
		pattern,
	)
	if err != nil {
		return nil, fmt.Errorf("searching sessions: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var h Hit
		var question string
		if err := rows.Scan(&h.BankID, &h.BankName, &h.SessionID, &h.Title, &question); err != nil {
			return nil, err
		}
		h.Kind = HitSession
		h.Snippet = snippet(question)
		hits = append(hits, h)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	vrows, err := x.db.Query(
		`SELECT vignette_id, title, content FROM vignettes
		 WHERE lower(title) LIKE ?1 OR lower(content) LIKE ?1`,
		pattern,
	)
	if err != nil {
		return nil, fmt.Errorf("searching vignettes: %w", err)
	}
	defer vrows.Close()
	for vrows.Next() {
		var h Hit
		var content string
		if err := vrows.Scan(&h.VignetteID, &h.Title, &content); err != nil {
			return nil, err
		}
		h.Kind = HitVignette
		h.Snippet = snippet(content)
		hits = append(hits, h)
	}
	if err := vrows.Err(); err != nil {
		return nil, err
	}

	return hits, nil
}

func snippet(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	if len(s) > snippetLen {
		return s[:snippetLen] + "…"
	}
	return s
}
