package domain

import "time"

// VocabularyItem is one decoded deck entry, ready to serve.
// Values are copied, never mutated in place: enrichment works on a copy
// so the catalog's own items stay untouched.
type VocabularyItem struct {
	NoteID         int64  `json:"noteId"`
	ModelID        int64  `json:"modelId"`
	German         string `json:"german"`
	English        string `json:"english"`
	SampleSentence string `json:"sampleSentence"`
	Audio          string `json:"audio"`
}

// User is a registered learner.
type User struct {
	ID           int64
	Username     string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}
