// Package progress tracks per-user per-session completion state derived
// from answer submissions. Counts are set only by explicit updates,
// never recomputed on read.
// See docs/ARCHITECTURE.md § Progress.
package progress

import (
	"errors"
	"log/slog"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/mesh-intelligence/keepsake/internal/docstore"
	"github.com/mesh-intelligence/keepsake/pkg/types"
)

// Tracker reads and writes the per-user progress and answer documents.
type Tracker struct {
	layout docstore.Layout
}

// New creates a tracker rooted at dataDir.
func New(dataDir string) *Tracker {
	return &Tracker{layout: docstore.Layout{DataDir: dataDir}}
}

// Get returns the progress record for one session. A missing record
// reads as a zero-valued not_started record; Get never writes.
func (t *Tracker) Get(user string, sessionID int) (types.Progress, error) {
	records, err := t.loadProgress(user)
	if err != nil {
		return types.Progress{}, err
	}
	if p, ok := records[key(sessionID)]; ok {
		return p, nil
	}
	return types.Progress{SessionID: sessionID, Status: types.ProgressNotStarted}, nil
}

// List returns every progress record for the user, ordered by session id.
func (t *Tracker) List(user string) ([]types.Progress, error) {
	records, err := t.loadProgress(user)
	if err != nil {
		return nil, err
	}
	out := make([]types.Progress, 0, len(records))
	for _, p := range records {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SessionID < out[j].SessionID })
	return out, nil
}

// Update creates the record on first call (stamping StartedAt) and
// mutates fields in place thereafter. completed stamps Status and
// CompletedAt; otherwise the record is in_progress once any question is
// answered. questions_answered is not clamped to total_questions when a
// session's question list later shrinks; Percent caps the display value
// instead.
func (t *Tracker) Update(user string, sessionID, questionsAnswered, wordCount, totalQuestions int, completed bool) (types.Progress, error) {
	records, err := t.loadProgress(user)
	if err != nil {
		return types.Progress{}, err
	}

	now := time.Now().UTC()
	p, ok := records[key(sessionID)]
	if !ok {
		p = types.Progress{
			SessionID: sessionID,
			Status:    types.ProgressNotStarted,
			StartedAt: &now,
		}
	}

	p.QuestionsAnswered = questionsAnswered
	p.WordCount = wordCount
	p.TotalQuestions = totalQuestions
	if completed {
		p.Status = types.ProgressCompleted
		p.CompletedAt = &now
	} else if questionsAnswered > 0 {
		p.Status = types.ProgressInProgress
	}

	records[key(sessionID)] = p
	if err := docstore.Write(t.layout.ProgressPath(user), records); err != nil {
		return types.Progress{}, err
	}
	return p, nil
}

// RecordAnswer stores one answer in the per-user answer log and feeds
// the derived counts into Update. The answer keeps its submission
// timestamp; re-answering a question replaces the earlier text.
func (t *Tracker) RecordAnswer(user string, sessionID, questionIdx int, text string, totalQuestions int) (types.Progress, error) {
	log, err := t.loadAnswers(user)
	if err != nil {
		return types.Progress{}, err
	}

	sk := key(sessionID)
	if log[sk] == nil {
		log[sk] = map[string]types.Answer{}
	}
	now := time.Now().UTC()
	log[sk][key(questionIdx)] = types.Answer{Text: text, Timestamp: &now}

	if err := docstore.Write(t.layout.AnswersPath(user), log); err != nil {
		return types.Progress{}, err
	}

	answered := 0
	words := 0
	for _, a := range log[sk] {
		if strings.TrimSpace(a.Text) == "" {
			continue
		}
		answered++
		words += len(strings.Fields(a.Text))
	}
	completed := totalQuestions > 0 && answered >= totalQuestions
	return t.Update(user, sessionID, answered, words, totalQuestions, completed)
}

// Answers returns the recorded answers for one session keyed by question
// index.
func (t *Tracker) Answers(user string, sessionID int) (map[int]types.Answer, error) {
	log, err := t.loadAnswers(user)
	if err != nil {
		return nil, err
	}
	out := map[int]types.Answer{}
	for k, a := range log[key(sessionID)] {
		idx, err := strconv.Atoi(k)
		if err != nil {
			continue
		}
		out[idx] = a
	}
	return out, nil
}

// Reset wipes the user's progress and answer documents. This is the
// explicit account-level data reset; records otherwise persist
// indefinitely.
func (t *Tracker) Reset(user string) error {
	for _, path := range []string{t.layout.ProgressPath(user), t.layout.AnswersPath(user)} {
		if err := docstore.Remove(path); err != nil && !errors.Is(err, types.ErrNotFound) {
			return err
		}
	}
	return nil
}

// loadProgress reads the progress document, self-healing corruption to
// an empty valid document.
func (t *Tracker) loadProgress(user string) (map[string]types.Progress, error) {
	path := t.layout.ProgressPath(user)
	records := map[string]types.Progress{}
	err := docstore.Read(path, &records)
	switch {
	case err == nil || errors.Is(err, os.ErrNotExist):
		return records, nil
	case types.IsCorruption(err):
		slog.Warn("progress: resetting corrupt document", "path", path, "err", err)
		return map[string]types.Progress{}, nil
	default:
		return nil, err
	}
}

// loadAnswers reads the answer log: session id → question index →
// answer. Legacy bare-string answers normalize via types.Answer.
func (t *Tracker) loadAnswers(user string) (map[string]map[string]types.Answer, error) {
	path := t.layout.AnswersPath(user)
	log := map[string]map[string]types.Answer{}
	err := docstore.Read(path, &log)
	switch {
	case err == nil || errors.Is(err, os.ErrNotExist):
		return log, nil
	case types.IsCorruption(err):
		slog.Warn("progress: resetting corrupt answer log", "path", path, "err", err)
		return map[string]map[string]types.Answer{}, nil
	default:
		return nil, err
	}
}

func key(id int) string { return strconv.Itoa(id) }
