package types

// DefaultWordTarget is the word-count goal applied to a session when none
// is specified.
const DefaultWordTarget = 500

// CustomSessionIDOffset is the first id available to custom sessions
// created outside any bank. Bank-local session ids stay below the offset,
// so the flattened "all sessions" view is collision-free.
const CustomSessionIDOffset = 1000

// Session is a titled, ordered set of questions presented together, with
// an optional guidance note and a word-count target. Ids are unique within
// the owning bank.
type Session struct {
	ID         int      `json:"id"`
	Title      string   `json:"title"`
	Guidance   string   `json:"guidance,omitempty"`
	Questions  []string `json:"questions"`
	WordTarget int      `json:"word_target"`
}

// Clone returns a deep copy of the session. Mutating the copy never
// alters the original.
func (s Session) Clone() Session {
	out := s
	out.Questions = make([]string, len(s.Questions))
	copy(out.Questions, s.Questions)
	return out
}

// FlatRow is one row of the canonical flat interchange shape for bank
// content. Title, guidance, and word target are populated only on the
// first row of each session's group; question carries one question per
// row.
type FlatRow struct {
	SessionID  int
	Title      string
	Guidance   string
	Question   string
	WordTarget int
}
