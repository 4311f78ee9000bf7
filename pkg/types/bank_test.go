// Unit tests for bank deep-copy independence and summary counts.
package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func sampleBank() Bank {
	return Bank{
		ID:   "legacy",
		Name: "Legacy",
		Sessions: []Session{
			{ID: 1, Title: "Childhood", Questions: []string{"Where were you born?", "First memory?"}, WordTarget: 500},
			{ID: 2, Title: "Work", Questions: []string{"First job?", "Proudest moment?", "Mentors?"}, WordTarget: 750},
		},
	}
}

func TestBankCloneIndependence(t *testing.T) {
	src := sampleBank()
	cp := src.Clone()

	cp.Name = "Copy"
	cp.Sessions[0].Title = "Changed"
	cp.Sessions[0].Questions[0] = "Changed question"
	cp.Sessions = append(cp.Sessions, Session{ID: 3, Title: "Extra", Questions: []string{"q"}})

	assert.Equal(t, "Legacy", src.Name)
	assert.Equal(t, "Childhood", src.Sessions[0].Title)
	assert.Equal(t, "Where were you born?", src.Sessions[0].Questions[0])
	assert.Len(t, src.Sessions, 2)
}

func TestBankCounts(t *testing.T) {
	b := sampleBank()
	assert.Equal(t, 2, b.SessionCount())
	assert.Equal(t, 5, b.TopicCount())

	sum := b.Summarize()
	assert.Equal(t, "legacy", sum.BankID)
	assert.Equal(t, 2, sum.SessionCount)
	assert.Equal(t, 5, sum.TopicCount)
}

func TestProgressPercent(t *testing.T) {
	tests := []struct {
		name string
		p    Progress
		want float64
	}{
		{"zero total", Progress{QuestionsAnswered: 3, TotalQuestions: 0}, 0},
		{"half", Progress{QuestionsAnswered: 2, TotalQuestions: 4}, 50},
		{"complete", Progress{QuestionsAnswered: 4, TotalQuestions: 4}, 100},
		{"over-answered caps at 100", Progress{QuestionsAnswered: 6, TotalQuestions: 4}, 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.p.Percent())
		})
	}
}

func TestConfigValidate(t *testing.T) {
	assert.ErrorIs(t, Config{}.Validate(), ErrDataDirEmpty)
	assert.ErrorIs(t, Config{DataDir: "/tmp/x"}.Validate(), ErrUserEmpty)
	assert.NoError(t, Config{DataDir: "/tmp/x", User: DefaultUser}.Validate())
}

func TestAllowedImageExt(t *testing.T) {
	assert.True(t, AllowedImageExt("photo.JPG"))
	assert.True(t, AllowedImageExt("scan.webp"))
	assert.False(t, AllowedImageExt("notes.pdf"))
	assert.False(t, AllowedImageExt("archive"))
}
