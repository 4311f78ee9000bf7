// Unit tests for answer-shape normalization at the read boundary.
package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnswerUnmarshal(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantText string
		wantTS   bool
	}{
		{
			name:     "legacy bare string",
			input:    `"I grew up by the sea"`,
			wantText: "I grew up by the sea",
			wantTS:   false,
		},
		{
			name:     "object without timestamp",
			input:    `{"text":"First job"}`,
			wantText: "First job",
			wantTS:   false,
		},
		{
			name:     "object with timestamp",
			input:    `{"text":"Moved abroad","timestamp":"2024-03-01T10:00:00Z"}`,
			wantText: "Moved abroad",
			wantTS:   true,
		},
		{
			name:     "empty string",
			input:    `""`,
			wantText: "",
			wantTS:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var a Answer
			require.NoError(t, json.Unmarshal([]byte(tt.input), &a))
			assert.Equal(t, tt.wantText, a.Text)
			assert.Equal(t, tt.wantTS, a.Timestamp != nil)
		})
	}
}

func TestAnswerMarshalWritesObjectShape(t *testing.T) {
	data, err := json.Marshal(Answer{Text: "hello"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"text":"hello"}`, string(data))

	// Round-trip through the bare-string legacy shape normalizes to the
	// object shape on the next write.
	var a Answer
	require.NoError(t, json.Unmarshal([]byte(`"legacy"`), &a))
	data, err = json.Marshal(a)
	require.NoError(t, err)
	assert.JSONEq(t, `{"text":"legacy"}`, string(data))
}
