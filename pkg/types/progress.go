package types

import "time"

// Progress states. A record moves from not_started through in_progress to
// completed as answers accumulate.
const (
	ProgressNotStarted = "not_started"
	ProgressInProgress = "in_progress"
	ProgressCompleted  = "completed"
)

// Progress is the per-user completion state for one session, accumulated
// from answer submissions. QuestionsAnswered and WordCount are set only by
// explicit updates, never recomputed on read.
type Progress struct {
	SessionID         int        `json:"session_id"`
	Status            string     `json:"status"`
	StartedAt         *time.Time `json:"started_at,omitempty"`
	CompletedAt       *time.Time `json:"completed_at,omitempty"`
	QuestionsAnswered int        `json:"questions_answered"`
	TotalQuestions    int        `json:"total_questions"`
	WordCount         int        `json:"word_count"`
}

// Percent returns the completion percentage. Defined as 0 when
// TotalQuestions is zero; capped at 100 so a session whose question list
// shrank after answers were recorded never reads as over-complete.
func (p Progress) Percent() float64 {
	if p.TotalQuestions == 0 {
		return 0
	}
	pct := float64(p.QuestionsAnswered) / float64(p.TotalQuestions) * 100
	if pct > 100 {
		return 100
	}
	return pct
}
