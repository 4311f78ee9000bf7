package types

import (
	"encoding/json"
	"time"
)

// Vignette is a freeform narrative entry independent of any session or
// bank. A vignette is exclusively a draft or published; publishing stamps
// PublishedAt and clears the draft flag as one update.
type Vignette struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Content     string     `json:"content"`
	Theme       string     `json:"theme,omitempty"`
	Mood        string     `json:"mood,omitempty"`
	WordCount   int        `json:"word_count"`
	Draft       bool       `json:"is_draft"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	PublishedAt *time.Time `json:"published_at,omitempty"`

	// Images holds ids of attached images, by reference. Deleting the
	// vignette does not delete the referenced blobs.
	Images []string `json:"images,omitempty"`

	// Feedback is the AI-feedback collaborator's returned record, stored
	// verbatim and never inspected.
	Feedback json.RawMessage `json:"feedback,omitempty"`
}

// Published reports whether the vignette has been published.
func (v Vignette) Published() bool { return !v.Draft }

// VignetteFilter selects which vignettes a listing returns.
type VignetteFilter string

const (
	VignettesAll       VignetteFilter = "all"
	VignettesPublished VignetteFilter = "published"
	VignettesDrafts    VignetteFilter = "drafts"
)
