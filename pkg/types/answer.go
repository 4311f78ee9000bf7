package types

import (
	"encoding/json"
	"time"
)

// Answer is one recorded response to a session question. Legacy documents
// stored answers either as a bare string or as an object with a
// timestamp; both shapes normalize to this struct at the read boundary,
// so nothing past the decoder branches on shape.
type Answer struct {
	Text      string     `json:"text"`
	Timestamp *time.Time `json:"timestamp,omitempty"`
}

// answerJSON mirrors the object form on disk.
type answerJSON struct {
	Text      string     `json:"text"`
	Timestamp *time.Time `json:"timestamp,omitempty"`
}

// UnmarshalJSON accepts both the bare-string and object shapes.
func (a *Answer) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		a.Text = s
		a.Timestamp = nil
		return nil
	}
	var obj answerJSON
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	a.Text = obj.Text
	a.Timestamp = obj.Timestamp
	return nil
}

// MarshalJSON always writes the object shape; the bare-string form is
// read-only legacy.
func (a Answer) MarshalJSON() ([]byte, error) {
	return json.Marshal(answerJSON{Text: a.Text, Timestamp: a.Timestamp})
}
