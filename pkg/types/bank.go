package types

import "time"

// Bank is a named, ordered collection of sessions. Default banks are
// compiled in and read-only; user banks are per-user documents.
type Bank struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	Sessions    []Session `json:"sessions"`
}

// Clone returns a deep copy of the bank. Copied banks are independently
// mutable; edits to the copy never reach the source.
func (b Bank) Clone() Bank {
	out := b
	out.Sessions = make([]Session, len(b.Sessions))
	for i, s := range b.Sessions {
		out.Sessions[i] = s.Clone()
	}
	return out
}

// SessionCount returns the number of sessions in the bank.
func (b Bank) SessionCount() int { return len(b.Sessions) }

// TopicCount returns the total number of questions across all sessions.
func (b Bank) TopicCount() int {
	n := 0
	for _, s := range b.Sessions {
		n += len(s.Questions)
	}
	return n
}

// BankSummary is the catalog entry cached for a bank: identifying fields
// plus counts recomputed from the detail document at the moment of the
// last save. It is a cache, never authoritative.
type BankSummary struct {
	BankID       string    `json:"bank_id"`
	Name         string    `json:"name"`
	Description  string    `json:"description,omitempty"`
	SessionCount int       `json:"session_count"`
	TopicCount   int       `json:"topic_count"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
	Default      bool      `json:"default,omitempty"`
}

// Summarize recomputes the bank's catalog entry from its detail content.
func (b Bank) Summarize() BankSummary {
	return BankSummary{
		BankID:       b.ID,
		Name:         b.Name,
		Description:  b.Description,
		SessionCount: b.SessionCount(),
		TopicCount:   b.TopicCount(),
		CreatedAt:    b.CreatedAt,
		UpdatedAt:    b.UpdatedAt,
	}
}
