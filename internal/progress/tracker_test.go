// Unit tests for progress tracking and the answer log.
package progress

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/keepsake/internal/docstore"
	"github.com/mesh-intelligence/keepsake/pkg/types"
)

const testUser = "default"

func setupTracker(t *testing.T) (*Tracker, string) {
	t.Helper()
	dir := t.TempDir()
	return New(dir), dir
}

func TestGetMissingIsNotStarted(t *testing.T) {
	tr, dir := setupTracker(t)

	p, err := tr.Get(testUser, 3)
	require.NoError(t, err)
	assert.Equal(t, types.ProgressNotStarted, p.Status)
	assert.Equal(t, 3, p.SessionID)
	assert.Nil(t, p.StartedAt)

	// A pure read: no document was created.
	assert.False(t, docstore.Exists(docstore.Layout{DataDir: dir}.ProgressPath(testUser)))
}

func TestUpdateLifecycle(t *testing.T) {
	tr, _ := setupTracker(t)

	p, err := tr.Update(testUser, 3, 1, 40, 4, false)
	require.NoError(t, err)
	assert.Equal(t, types.ProgressInProgress, p.Status)
	assert.NotNil(t, p.StartedAt)
	assert.Nil(t, p.CompletedAt)

	p, err = tr.Update(testUser, 3, 4, 120, 4, true)
	require.NoError(t, err)
	assert.Equal(t, types.ProgressCompleted, p.Status)
	assert.NotNil(t, p.CompletedAt)

	got, err := tr.Get(testUser, 3)
	require.NoError(t, err)
	assert.Equal(t, types.ProgressCompleted, got.Status)
	assert.Equal(t, 4, got.QuestionsAnswered)
	assert.Equal(t, 120, got.WordCount)
	assert.NotNil(t, got.CompletedAt)
}

func TestUpdateZeroAnsweredStaysNotStarted(t *testing.T) {
	tr, _ := setupTracker(t)

	p, err := tr.Update(testUser, 1, 0, 0, 5, false)
	require.NoError(t, err)
	assert.Equal(t, types.ProgressNotStarted, p.Status)
	assert.NotNil(t, p.StartedAt)
}

func TestUpdateDoesNotClampShrunkSession(t *testing.T) {
	tr, _ := setupTracker(t)

	_, err := tr.Update(testUser, 2, 5, 200, 5, true)
	require.NoError(t, err)

	// Session shrank to 3 questions; the count stays as set.
	p, err := tr.Update(testUser, 2, 5, 200, 3, false)
	require.NoError(t, err)
	assert.Equal(t, 5, p.QuestionsAnswered)
	assert.Equal(t, 3, p.TotalQuestions)
	assert.Equal(t, float64(100), p.Percent())
}

func TestRecordAnswer(t *testing.T) {
	tr, _ := setupTracker(t)

	p, err := tr.RecordAnswer(testUser, 7, 0, "I was born in a small harbor town.", 2)
	require.NoError(t, err)
	assert.Equal(t, types.ProgressInProgress, p.Status)
	assert.Equal(t, 1, p.QuestionsAnswered)
	assert.Equal(t, 8, p.WordCount)

	p, err = tr.RecordAnswer(testUser, 7, 1, "Two words.", 2)
	require.NoError(t, err)
	assert.Equal(t, types.ProgressCompleted, p.Status)
	assert.Equal(t, 2, p.QuestionsAnswered)

	answers, err := tr.Answers(testUser, 7)
	require.NoError(t, err)
	require.Len(t, answers, 2)
	assert.Equal(t, "Two words.", answers[1].Text)
	assert.NotNil(t, answers[0].Timestamp)

	// Re-answering replaces, not appends.
	p, err = tr.RecordAnswer(testUser, 7, 1, "Replaced answer text.", 2)
	require.NoError(t, err)
	assert.Equal(t, 2, p.QuestionsAnswered)
}

func TestLegacyBareStringAnswers(t *testing.T) {
	tr, dir := setupTracker(t)
	layout := docstore.Layout{DataDir: dir}

	raw := []byte(`{"7": {"0": "legacy bare answer", "1": {"text": "object answer"}}}`)
	require.NoError(t, os.MkdirAll(layout.UserDir(testUser), 0o755))
	require.NoError(t, os.WriteFile(layout.AnswersPath(testUser), raw, 0o644))

	answers, err := tr.Answers(testUser, 7)
	require.NoError(t, err)
	assert.Equal(t, "legacy bare answer", answers[0].Text)
	assert.Equal(t, "object answer", answers[1].Text)
}

func TestCorruptDocumentsSelfHeal(t *testing.T) {
	tr, dir := setupTracker(t)
	layout := docstore.Layout{DataDir: dir}

	require.NoError(t, os.MkdirAll(layout.UserDir(testUser), 0o755))
	require.NoError(t, os.WriteFile(layout.ProgressPath(testUser), []byte("garbage"), 0o644))
	require.NoError(t, os.WriteFile(layout.AnswersPath(testUser), []byte("[1,2"), 0o644))

	p, err := tr.Get(testUser, 1)
	require.NoError(t, err)
	assert.Equal(t, types.ProgressNotStarted, p.Status)

	_, err = tr.RecordAnswer(testUser, 1, 0, "fresh start", 3)
	require.NoError(t, err)
}

func TestReset(t *testing.T) {
	tr, dir := setupTracker(t)

	_, err := tr.RecordAnswer(testUser, 1, 0, "answer", 1)
	require.NoError(t, err)
	require.NoError(t, tr.Reset(testUser))

	layout := docstore.Layout{DataDir: dir}
	assert.False(t, docstore.Exists(layout.ProgressPath(testUser)))
	assert.False(t, docstore.Exists(layout.AnswersPath(testUser)))

	// Idempotent.
	require.NoError(t, tr.Reset(testUser))
}
